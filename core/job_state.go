package core

type JobState int

const (
	JobStateUnknown JobState = iota
	JobStatePreparing
	JobStatePreparingFailed
	JobStateCombining
	JobStateCombiningFailed
	JobStateArchived
	JobStateArchiveFailed
	JobStateCanceled
)

func JobStateFromString(s string) JobState {
	switch s {
	case JobStateUnknown.String():
		return JobStateUnknown

	case JobStatePreparing.String():
		return JobStatePreparing
	case JobStatePreparingFailed.String():
		return JobStatePreparingFailed

	case JobStateCombining.String():
		return JobStateCombining
	case JobStateCombiningFailed.String():
		return JobStateCombiningFailed

	case JobStateArchived.String():
		return JobStateArchived
	case JobStateArchiveFailed.String():
		return JobStateArchiveFailed

	case JobStateCanceled.String():
		return JobStateCanceled

	default:
		return JobStateUnknown
	}
}

func (s JobState) String() string {
	switch s {
	case JobStateUnknown:
		return "unknown"

	case JobStatePreparing:
		return "preparing"
	case JobStatePreparingFailed:
		return "preparing_failed"

	case JobStateCombining:
		return "combining"
	case JobStateCombiningFailed:
		return "combining_failed"

	case JobStateArchived:
		return "archived"
	case JobStateArchiveFailed:
		return "archive_failed"

	case JobStateCanceled:
		return "canceled"

	default:
		return "unknown"
	}
}

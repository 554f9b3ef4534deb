package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type (
	JobID string

	// Job is one background run of a combination: it prepares the
	// stream through the executor, drains it into a cached result and
	// archives the rows to disk.
	Job struct {
		id        JobID
		label     string
		state     JobState
		timeTaken time.Duration
		timestamp time.Time

		result     *Result
		archive    *archive
		cancelFunc func()

		// any error that might occur during the run
		err  error
		done chan struct{}
	}
)

// jobPersistent is used for marshaling and unmarshaling the job
type jobPersistent struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	State     string `json:"state"`
	TimeTaken int64  `json:"time_taken_us"`
	Timestamp int64  `json:"timestamp_us"`
	Error     string `json:"error,omitempty"`
}

func (j *Job) toPersistent() *jobPersistent {
	errMsg := ""
	if j.err != nil {
		errMsg = j.err.Error()
	}

	return &jobPersistent{
		ID:        string(j.id),
		Label:     j.label,
		State:     j.state.String(),
		TimeTaken: j.timeTaken.Microseconds(),
		Timestamp: j.timestamp.UnixMicro(),
		Error:     errMsg,
	}
}

func (j *Job) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.toPersistent())
}

func (j *Job) UnmarshalJSON(data []byte) error {
	var alias jobPersistent

	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	done := make(chan struct{})
	close(done)

	archive := newArchive(JobID(alias.ID))
	state := JobStateFromString(alias.State)
	if state == JobStateArchived && archive.isEmpty() {
		state = JobStateUnknown
	}

	var jobErr error
	if alias.Error != "" {
		jobErr = errors.New(alias.Error)
	}

	*j = Job{
		id:        JobID(alias.ID),
		label:     alias.Label,
		state:     state,
		timeTaken: time.Duration(alias.TimeTaken) * time.Microsecond,
		timestamp: time.UnixMicro(alias.Timestamp),
		err:       jobErr,

		result:  new(Result),
		archive: archive,

		done: done,
	}

	return nil
}

// StartJob runs the executor in the background and reports every state
// change through onEvent. The returned job is already running.
func StartJob(executor func(context.Context) (ResultStream, error), label string, onEvent func(JobState, *Job)) *Job {
	id := JobID(uuid.New().String())
	j := &Job{
		id:    id,
		label: label,
		state: JobStateUnknown,

		result:  new(Result),
		archive: newArchive(id),

		done: make(chan struct{}),
	}

	eventsCh := make(chan JobState, 10)

	ctx, cancel := context.WithCancel(context.Background())
	j.timestamp = time.Now()
	j.cancelFunc = func() {
		cancel()
		j.timeTaken = time.Since(j.timestamp)
		eventsCh <- JobStateCanceled
	}

	// event function handler
	go func() {
		for state := range eventsCh {
			if j.state == JobStatePreparingFailed ||
				j.state == JobStateCombiningFailed ||
				j.state == JobStateCanceled {
				return
			}
			j.state = state

			// trigger event callback
			if onEvent != nil {
				onEvent(state, j)
			}
		}
	}()

	go func() {
		defer close(eventsCh)

		// prepare the stream
		eventsCh <- JobStatePreparing
		iter, err := executor(ctx)
		if err != nil {
			j.timeTaken = time.Since(j.timestamp)
			j.err = err
			eventsCh <- JobStatePreparingFailed
			close(j.done)
			return
		}

		// drain the stream into the result
		err = j.result.SetIter(iter, func() { eventsCh <- JobStateCombining })
		if err != nil {
			j.timeTaken = time.Since(j.timestamp)
			j.err = err
			eventsCh <- JobStateCombiningFailed
			close(j.done)
			return
		}

		// archive the result
		err = j.archive.setResult(j.result)
		if err != nil {
			j.timeTaken = time.Since(j.timestamp)
			j.err = err
			eventsCh <- JobStateArchiveFailed
			close(j.done)
			return
		}

		j.timeTaken = time.Since(j.timestamp)
		eventsCh <- JobStateArchived
		close(j.done)
	}()

	return j
}

func (j *Job) GetID() JobID {
	return j.id
}

func (j *Job) GetLabel() string {
	return j.label
}

func (j *Job) GetState() JobState {
	return j.state
}

func (j *Job) GetTimeTaken() time.Duration {
	return j.timeTaken
}

func (j *Job) GetTimestamp() time.Time {
	return j.timestamp
}

func (j *Job) Err() error {
	return j.err
}

// Done returns a non-buffered channel that is closed when
// the job finishes.
func (j *Job) Done() chan struct{} {
	return j.done
}

func (j *Job) Cancel() {
	if j.state > JobStatePreparing {
		return
	}
	if j.cancelFunc != nil {
		j.cancelFunc()
	}
}

// GetResult returns the cached result, restoring it from the archive
// when needed.
func (j *Job) GetResult() (*Result, error) {
	if j.result.IsEmpty() {
		iter, err := j.archive.getResult()
		if err != nil {
			return nil, fmt.Errorf("j.archive.getResult: %w", err)
		}
		err = j.result.SetIter(iter, nil)
		if err != nil {
			return nil, fmt.Errorf("j.result.SetIter: %w", err)
		}
	}

	return j.result, nil
}

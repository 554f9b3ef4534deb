package core_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rowzip/rowzip/core"
	"github.com/rowzip/rowzip/core/mock"
)

func TestJob_Success(t *testing.T) {
	r := require.New(t)

	rows := mock.NewRows(0, 10)

	source, err := core.NewSource(&core.SourceParams{}, mock.NewAdapter(rows,
		mock.AdapterWithResultStreamOpts(mock.ResultStreamWithNextSleep(300*time.Millisecond)),
	))
	r.NoError(err)

	expectedEvents := []core.JobState{
		core.JobStatePreparing,
		core.JobStateCombining,
		core.JobStateArchived,
	}

	eventIndex := 0
	job := source.Execute("_", func(state core.JobState, j *core.Job) {
		// make sure events were in order
		r.Equal(expectedEvents[eventIndex], state)
		eventIndex++

		if state == core.JobStateCombining {
			result, err := j.GetResult()
			r.NoError(err)

			actualRows, err := result.Rows(0, len(rows))
			r.NoError(err)

			r.Equal(rows, actualRows)
		}
	})

	// wait for job to finish
	select {
	case <-job.Done():
		// wait a bit for event index to stabilize
		time.Sleep(100 * time.Millisecond)
	case <-time.After(5 * time.Second):
		t.Error("job did not finish in expected time")
	}

	// make sure all events passed
	r.Equal(len(expectedEvents), eventIndex)
}

func TestJob_Cancel(t *testing.T) {
	r := require.New(t)

	rows := mock.NewRows(0, 10)

	adapter := mock.NewAdapter(rows,
		mock.AdapterWithQuerySideEffect("wait", func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(10 * time.Second):
			}
			return nil
		}),
		mock.AdapterWithResultStreamOpts(mock.ResultStreamWithNextSleep(300*time.Millisecond)),
	)

	source, err := core.NewSource(&core.SourceParams{}, adapter)
	r.NoError(err)

	expectedEvents := []core.JobState{
		core.JobStatePreparing,
		core.JobStateCanceled,
	}

	eventIndex := 0
	job := source.Execute("wait", func(state core.JobState, j *core.Job) {
		// wait for first event and cancel request
		j.Cancel()
		// make sure events were in order
		r.Equal(expectedEvents[eventIndex], state)
		eventIndex++
	})

	// wait for job to finish
	select {
	case <-job.Done():
		// wait a bit for event index to stabilize
		time.Sleep(100 * time.Millisecond)
	case <-time.After(5 * time.Second):
		t.Error("job did not finish in expected time")
	}

	// make sure all events passed
	r.Equal(len(expectedEvents), eventIndex)
}

func TestJob_FailedQuery(t *testing.T) {
	r := require.New(t)

	rows := mock.NewRows(0, 10)

	adapter := mock.NewAdapter(rows,
		mock.AdapterWithQuerySideEffect("fail", func(ctx context.Context) error {
			return errors.New("query failed")
		}),
		mock.AdapterWithResultStreamOpts(mock.ResultStreamWithNextSleep(300*time.Millisecond)),
	)

	source, err := core.NewSource(&core.SourceParams{}, adapter)
	r.NoError(err)

	expectedEvents := []core.JobState{
		core.JobStatePreparing,
		core.JobStatePreparingFailed,
	}

	eventIndex := 0
	job := source.Execute("fail", func(state core.JobState, j *core.Job) {
		// make sure events were in order
		r.Equal(expectedEvents[eventIndex], state)
		eventIndex++

		if state == core.JobStatePreparingFailed {
			r.NotNil(j.Err())
		}
	})

	// wait for job to finish
	select {
	case <-job.Done():
		// wait a bit for event index to stabilize
		time.Sleep(100 * time.Millisecond)
	case <-time.After(5 * time.Second):
		t.Error("job did not finish in expected time")
	}

	// make sure all events passed
	r.Equal(len(expectedEvents), eventIndex)
}

func TestJob_FailedCombining(t *testing.T) {
	r := require.New(t)

	rows := mock.NewRows(0, 10)

	adapter := mock.NewAdapter(rows,
		mock.AdapterWithResultStreamOpts(mock.ResultStreamWithFailAfter(3, errors.New("stream broke"))),
	)

	source, err := core.NewSource(&core.SourceParams{}, adapter)
	r.NoError(err)

	expectedEvents := []core.JobState{
		core.JobStatePreparing,
		core.JobStateCombining,
		core.JobStateCombiningFailed,
	}

	eventIndex := 0
	job := source.Execute("_", func(state core.JobState, j *core.Job) {
		// make sure events were in order
		r.Equal(expectedEvents[eventIndex], state)
		eventIndex++

		if state == core.JobStateCombiningFailed {
			r.NotNil(j.Err())
		}
	})

	// wait for job to finish
	select {
	case <-job.Done():
		// wait a bit for event index to stabilize
		time.Sleep(100 * time.Millisecond)
	case <-time.After(5 * time.Second):
		t.Error("job did not finish in expected time")
	}

	// make sure all events passed
	r.Equal(len(expectedEvents), eventIndex)
}

func TestJob_ZipExecutor(t *testing.T) {
	r := require.New(t)

	job := core.StartJob(func(ctx context.Context) (core.ResultStream, error) {
		stream, err := core.NewZip([]core.Column{
			{Name: "id", Seq: mock.NewSequence([]any{1, 2, 3})},
			{Name: "tag", Seq: mock.NewSequence([]any{"a", "b"}), Policy: core.Previous()},
		})
		if err != nil {
			return nil, err
		}
		return stream, nil
	}, "zip", nil)

	// wait for job to finish
	select {
	case <-job.Done():
		time.Sleep(100 * time.Millisecond)
	case <-time.After(5 * time.Second):
		t.Error("job did not finish in expected time")
	}

	r.Equal(core.JobStateArchived, job.GetState())

	result, err := job.GetResult()
	r.NoError(err)

	r.Equal(core.Header{"id", "tag"}, result.Header())

	rows, err := result.Rows(0, 3)
	r.NoError(err)
	r.Equal([]core.Row{{1, "a"}, {2, "b"}, {3, "b"}}, rows)
}

func TestJob_Archive(t *testing.T) {
	r := require.New(t)

	rows := mock.NewRows(0, 10)

	source, err := core.NewSource(&core.SourceParams{}, mock.NewAdapter(rows,
		mock.AdapterWithResultStreamOpts(mock.ResultStreamWithNextSleep(300*time.Millisecond)),
	))
	r.NoError(err)

	job := source.Execute("_", nil)

	// wait for job to finish
	select {
	case <-job.Done():
		// wait a bit for event index to stabilize
		time.Sleep(100 * time.Millisecond)
	case <-time.After(5 * time.Second):
		t.Error("job did not finish in expected time")
	}

	// check result
	result, err := job.GetResult()
	r.NoError(err)
	actualRows, err := result.Rows(0, len(rows))
	r.NoError(err)
	r.Equal(rows, actualRows)

	// marshal to json
	b, err := json.Marshal(job)
	r.NoError(err)

	// marshal back
	restoredJob := new(core.Job)
	err = json.Unmarshal(b, restoredJob)
	r.NoError(err)

	// check result again
	result, err = restoredJob.GetResult()
	r.NoError(err)
	actualRows, err = result.Rows(0, len(rows))
	r.NoError(err)
	r.Equal(rows, actualRows)
}

package hub

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rowzip/rowzip/adapters"
	"github.com/rowzip/rowzip/core"
	"github.com/rowzip/rowzip/core/format"
)

// Hub tracks sources and the jobs running against them.
type Hub struct {
	log core.Logger

	lookupSource    map[core.SourceID]*core.Source
	lookupJob       map[core.JobID]*core.Job
	lookupSourceJob map[core.SourceID][]core.JobID

	currentSourceID core.SourceID

	jobLogPath string
}

func New(opts ...Option) *Hub {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	h := &Hub{
		log: config.logger,

		lookupSource:    make(map[core.SourceID]*core.Source),
		lookupJob:       make(map[core.JobID]*core.Job),
		lookupSourceJob: make(map[core.SourceID][]core.JobID),

		jobLogPath: config.jobLogPath,
	}

	// restore the job log
	if err := h.restoreJobLog(); err != nil {
		h.log.Infof("h.restoreJobLog: %s", err)
	}

	return h
}

func (h *Hub) Close() {
	// wait for unfinished jobs
	for _, j := range h.lookupJob {
		select {
		case <-j.Done():
		case <-time.After(10 * time.Second):
		}
	}

	// store job log
	if err := h.storeJobLog(); err != nil {
		h.log.Infof("h.storeJobLog: %s", err)
	}

	// close sources
	for _, s := range h.lookupSource {
		s.Close()
	}
}

// CreateSource connects a new source through the adapter registry.
func (h *Hub) CreateSource(params *core.SourceParams) (core.SourceID, error) {
	s, err := adapters.NewSource(params)
	if err != nil {
		return "", fmt.Errorf("adapters.NewSource: %w", err)
	}

	return h.AddSource(s), nil
}

// AddSource registers an already connected source. A source with the
// same id replaces the old one.
func (h *Hub) AddSource(s *core.Source) core.SourceID {
	old, ok := h.lookupSource[s.GetID()]
	if ok {
		go old.Close()
	}

	h.lookupSource[s.GetID()] = s
	_ = h.SetCurrentSource(s.GetID())

	return s.GetID()
}

func (h *Hub) GetSources(ids []core.SourceID) []*core.Source {
	var sources []*core.Source

	for _, s := range h.lookupSource {
		if len(ids) > 0 && !slices.Contains(ids, s.GetID()) {
			continue
		}
		sources = append(sources, s)
	}

	return sources
}

func (h *Hub) GetCurrentSource() (*core.Source, error) {
	s, ok := h.lookupSource[h.currentSourceID]
	if !ok {
		return nil, fmt.Errorf("current source has not been set yet")
	}
	return s, nil
}

func (h *Hub) SetCurrentSource(sourceID core.SourceID) error {
	_, ok := h.lookupSource[sourceID]
	if !ok {
		return fmt.Errorf("unknown source with id: %q", sourceID)
	}

	h.currentSourceID = sourceID

	return nil
}

func (h *Hub) onJobEvent(state core.JobState, j *core.Job) {
	if err := j.Err(); err != nil {
		h.log.Errorf("j.Err: %s", err)
	}

	h.log.Debugf("job %s: %s", j.GetID(), state)
}

func (h *Hub) registerJob(sourceID core.SourceID, job *core.Job) {
	id := job.GetID()
	h.lookupJob[id] = job
	h.lookupSourceJob[sourceID] = append(h.lookupSourceJob[sourceID], id)
}

// SourceExecute runs a query on the source as a background job.
func (h *Hub) SourceExecute(sourceID core.SourceID, query string) (*core.Job, error) {
	s, ok := h.lookupSource[sourceID]
	if !ok {
		return nil, fmt.Errorf("unknown source with id: %q", sourceID)
	}

	job := s.Execute(query, h.onJobEvent)

	h.registerJob(sourceID, job)
	_ = h.SetCurrentSource(sourceID)

	return job, nil
}

// ColumnSpec selects one column of one source's query result and the
// policy it follows once its values run out.
type ColumnSpec struct {
	SourceID core.SourceID
	Query    string
	Index    int
	Name     string
	Policy   core.Policy
}

// ZipExecute combines columns from any number of sources row by row
// as a background job.
func (h *Hub) ZipExecute(specs []ColumnSpec, opts ...core.ZipOption) (*core.Job, error) {
	if len(specs) < 1 {
		return nil, fmt.Errorf("no columns provided")
	}

	sources := make([]*core.Source, len(specs))
	names := make([]string, len(specs))
	for i, spec := range specs {
		s, ok := h.lookupSource[spec.SourceID]
		if !ok {
			return nil, fmt.Errorf("unknown source with id: %q", spec.SourceID)
		}
		sources[i] = s
		names[i] = spec.Name
	}

	executor := func(ctx context.Context) (core.ResultStream, error) {
		closeAll := func(cols []core.Column) {
			for _, col := range cols {
				col.Seq.Close()
			}
		}

		cols := make([]core.Column, 0, len(specs))
		for i, spec := range specs {
			seq, err := sources[i].Column(ctx, spec.Query, spec.Index)
			if err != nil {
				closeAll(cols)
				return nil, fmt.Errorf("source.Column: %w", err)
			}
			cols = append(cols, core.Column{Name: spec.Name, Seq: seq, Policy: spec.Policy})
		}

		stream, err := core.NewZip(cols, opts...)
		if err != nil {
			closeAll(cols)
			return nil, fmt.Errorf("core.NewZip: %w", err)
		}

		return stream, nil
	}

	job := core.StartJob(executor, "zip("+strings.Join(names, ", ")+")", h.onJobEvent)

	// the combination is tracked under the first column's source
	h.registerJob(specs[0].SourceID, job)

	return job, nil
}

func (h *Hub) SourceGetJobs(sourceID core.SourceID) ([]*core.Job, error) {
	_, ok := h.lookupSource[sourceID]
	if !ok {
		return nil, fmt.Errorf("unknown source with id: %q", sourceID)
	}

	var jobs []*core.Job
	jobIDs, ok := h.lookupSourceJob[sourceID]
	if !ok {
		return jobs, nil
	}
	for _, jID := range jobIDs {
		j, ok := h.lookupJob[jID]
		if !ok {
			continue
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}

func (h *Hub) JobCancel(jobID core.JobID) error {
	job, ok := h.lookupJob[jobID]
	if !ok {
		return fmt.Errorf("unknown job with id: %q", jobID)
	}

	job.Cancel()
	return nil
}

// JobDisplayResult renders the job's rows as a table to the writer and
// reports the total row count.
func (h *Hub) JobDisplayResult(jobID core.JobID, writer io.Writer, from, to int) (int, error) {
	job, ok := h.lookupJob[jobID]
	if !ok {
		return 0, fmt.Errorf("unknown job with id: %q", jobID)
	}

	res, err := job.GetResult()
	if err != nil {
		return 0, fmt.Errorf("job.GetResult: %w", err)
	}

	text, err := res.Format(format.NewTable(), from, to)
	if err != nil {
		return 0, fmt.Errorf("res.Format: %w", err)
	}

	_, err = writer.Write(text)
	if err != nil {
		return 0, fmt.Errorf("writer.Write: %w", err)
	}

	return res.Len(), nil
}

// JobStoreResult writes the job's rows to the writer in the requested
// format ("json", "csv" or "table").
func (h *Hub) JobStoreResult(jobID core.JobID, fmat string, writer io.Writer, from, to int) error {
	job, ok := h.lookupJob[jobID]
	if !ok {
		return fmt.Errorf("unknown job with id: %q", jobID)
	}

	var formatter core.Formatter
	switch fmat {
	case "json":
		formatter = format.NewJSON()
	case "csv":
		formatter = format.NewCSV()
	case "table":
		formatter = format.NewTable()
	default:
		return fmt.Errorf("store output: %q is not supported", fmat)
	}

	res, err := job.GetResult()
	if err != nil {
		return fmt.Errorf("job.GetResult: %w", err)
	}

	text, err := res.Format(formatter, from, to)
	if err != nil {
		return fmt.Errorf("res.Format: %w", err)
	}

	_, err = writer.Write(text)
	if err != nil {
		return fmt.Errorf("writer.Write: %w", err)
	}

	return nil
}

// JobStoreResultToFile is JobStoreResult writing to a freshly created file.
func (h *Hub) JobStoreResultToFile(jobID core.JobID, fmat, path string, from, to int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	defer file.Close()

	return h.JobStoreResult(jobID, fmat, file, from, to)
}

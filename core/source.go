package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type (
	// Adapter is an object which allows to connect to a backend via url
	Adapter interface {
		Connect(url string) (Driver, error)
	}

	// Driver is an interface for a specific backend driver
	Driver interface {
		Query(context.Context, string) (ResultStream, error)
		Close()
	}
)

type SourceID string

// Source is a configured connection to one backend whose query results
// feed columns.
type Source struct {
	params           *SourceParams
	unexpandedParams *SourceParams

	driver Driver
}

func (s *Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.params)
}

func NewSource(params *SourceParams, adapter Adapter) (*Source, error) {
	expanded := params.Expand()

	if expanded.ID == "" {
		expanded.ID = SourceID(uuid.New().String())
	}

	driver, err := adapter.Connect(expanded.URL)
	if err != nil {
		return nil, fmt.Errorf("adapter.Connect: %w", err)
	}

	s := &Source{
		params:           expanded,
		unexpandedParams: params,

		driver: driver,
	}

	return s, nil
}

func (s *Source) GetID() SourceID {
	return s.params.ID
}

func (s *Source) GetName() string {
	return s.params.Name
}

func (s *Source) GetType() string {
	return s.params.Type
}

func (s *Source) GetURL() string {
	return s.params.URL
}

// GetParams returns the original parameters for this source
func (s *Source) GetParams() *SourceParams {
	return s.unexpandedParams
}

// Query runs the query against the backend and returns its rows.
func (s *Source) Query(ctx context.Context, query string) (ResultStream, error) {
	return s.driver.Query(ctx, query)
}

// Execute runs the query as a background job.
func (s *Source) Execute(query string, onEvent func(JobState, *Job)) *Job {
	exec := func(ctx context.Context) (ResultStream, error) {
		return s.driver.Query(ctx, query)
	}

	return StartJob(exec, query, onEvent)
}

// Column runs the query and projects a single column of its result
// into a sequence.
func (s *Source) Column(ctx context.Context, query string, index int) (Sequence, error) {
	if index < 0 {
		return nil, fmt.Errorf("invalid column index: %d", index)
	}

	stream, err := s.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("s.Query: %w", err)
	}

	return &streamColumn{stream: stream, index: index}, nil
}

func (s *Source) Close() {
	s.driver.Close()
}

// streamColumn projects one column of a stream as a sequence.
// Basically the same as builders/ColumnSequence, but is copy-pasted
// because of import cycles.
type streamColumn struct {
	stream ResultStream
	index  int
}

func (c *streamColumn) HasNext() bool {
	return c.stream.HasNext()
}

func (c *streamColumn) Next() (any, error) {
	row, err := c.stream.Next()
	if err != nil {
		return nil, err
	}
	if c.index >= len(row) {
		return nil, fmt.Errorf("no column %d in a row with %d values", c.index, len(row))
	}

	return row[c.index], nil
}

func (c *streamColumn) Close() {
	c.stream.Close()
}

package mock

import (
	"time"

	"github.com/rowzip/rowzip/core"
)

var _ core.Sequence = (*Sequence)(nil)

type Sequence struct {
	values []any
	index  int
	config *sequenceConfig
}

// NewSequence returns a mocked sequence serving the provided values.
func NewSequence(values []any, opts ...SequenceOption) *Sequence {
	config := &sequenceConfig{
		nextSleep: 0,
		failAfter: -1,
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Sequence{
		values: values,
		config: config,
	}
}

func (s *Sequence) Next() (any, error) {
	time.Sleep(s.config.nextSleep)

	if s.config.failAfter >= 0 && s.index >= s.config.failAfter {
		return nil, s.config.failError
	}

	if s.index >= len(s.values) {
		return nil, core.ErrNoNextRow
	}

	value := s.values[s.index]
	s.index++
	return value, nil
}

func (s *Sequence) HasNext() bool {
	if s.config.failAfter >= 0 && s.index >= s.config.failAfter {
		return true
	}
	return s.index < len(s.values)
}

func (s *Sequence) Close() {}

// NewValues returns a slice of ints from "from" up to one less than "to".
func NewValues(from, to int) []any {
	var values []any

	for i := from; i < to; i++ {
		values = append(values, i)
	}
	return values
}

package builders

import (
	"sync"

	"github.com/rowzip/rowzip/core"
)

var _ core.Sequence = (*Sequence)(nil)

// Sequence fills the core.Sequence interface with plugged functions
type Sequence struct {
	next     func() (any, error)
	hasNext  func() bool
	close    func()
	callback func()
	once     sync.Once
}

func (s *Sequence) SetCallback(callback func()) {
	s.callback = callback
}

func (s *Sequence) HasNext() bool {
	return s.hasNext()
}

func (s *Sequence) Next() (any, error) {
	value, err := s.next()
	if err != nil {
		s.Close()
		return nil, err
	}
	return value, nil
}

func (s *Sequence) Close() {
	s.close()
	if s.callback != nil {
		s.once.Do(s.callback)
	}
	s.hasNext = func() bool {
		return false
	}
}

// SequenceBuilder builds the sequence
type SequenceBuilder struct {
	next    func() (any, error)
	hasNext func() bool
	close   func()
}

func NewSequenceBuilder() *SequenceBuilder {
	return &SequenceBuilder{
		next:    func() (any, error) { return nil, core.ErrNoNextRow },
		hasNext: func() bool { return false },
		close:   func() {},
	}
}

func (b *SequenceBuilder) WithNextFunc(fn func() (any, error), has func() bool) *SequenceBuilder {
	b.next = fn
	b.hasNext = has
	return b
}

func (b *SequenceBuilder) WithCloseFunc(fn func()) *SequenceBuilder {
	b.close = fn
	return b
}

func (b *SequenceBuilder) Build() *Sequence {
	return &Sequence{
		next:    b.next,
		hasNext: b.hasNext,
		close:   b.close,
		once:    sync.Once{},
	}
}

// FromValues wraps literal values in a sequence.
func FromValues(values ...any) *Sequence {
	next, hasNext := NextSlice(values, nil)

	return NewSequenceBuilder().
		WithNextFunc(next, hasNext).
		Build()
}

package builders

import (
	"iter"

	"github.com/rowzip/rowzip/core"
)

// FromIter bridges an iter.Seq into a sequence. The pull iterator is
// stopped when the sequence closes.
func FromIter[T any](seq iter.Seq[T]) *Sequence {
	next, stop := iter.Pull(seq)

	var pending any
	has := false

	// hasNext pulls ahead, next hands the buffered value out
	hasNext := func() bool {
		if has {
			return true
		}

		value, ok := next()
		if !ok {
			return false
		}

		pending = value
		has = true
		return true
	}

	nextFunc := func() (any, error) {
		if !hasNext() {
			return nil, core.ErrNoNextRow
		}

		has = false
		return pending, nil
	}

	return NewSequenceBuilder().
		WithNextFunc(nextFunc, hasNext).
		WithCloseFunc(stop).
		Build()
}

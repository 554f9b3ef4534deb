package builders

import (
	"errors"
	"time"

	"github.com/rowzip/rowzip/core"
)

// NextSingle creates next and hasNext functions from a provided single value
func NextSingle(value any) (func() (any, error), func() bool) {
	has := true

	// iterator functions
	next := func() (any, error) {
		if !has {
			return nil, core.ErrNoNextRow
		}
		has = false
		return value, nil
	}

	hasNext := func() bool {
		return has
	}

	return next, hasNext
}

// NextSlice creates next and hasNext functions from provided values.
// preprocess is an optional function which parses a single value before handing it over
func NextSlice[T any](values []T, preprocess func(T) any) (func() (any, error), func() bool) {
	if preprocess == nil {
		preprocess = func(val T) any { return val }
	}

	index := 0

	hasNext := func() bool {
		return index < len(values)
	}

	// iterator functions
	next := func() (any, error) {
		if !hasNext() {
			return nil, core.ErrNoNextRow
		}

		value := preprocess(values[index])
		index++
		return value, nil
	}

	return next, hasNext
}

// NextNil creates next and hasNext functions that don't return anything (no values)
func NextNil() (func() (any, error), func() bool) {
	hasNext := func() bool {
		return false
	}

	// iterator functions
	next := func() (any, error) {
		return nil, core.ErrNoNextRow
	}

	return next, hasNext
}

// NextYield creates next and hasNext functions from a generator function.
// hasNext blocks until the generator either produces a value or quits.
func NextYield(fn func(yield func(any)) error) (func() (any, error), func() bool) {
	ch := make(chan any, 10)
	errCh := make(chan error, 1)

	// spawn channel function
	go func() {
		err := fn(func(v any) {
			ch <- v
		})
		if err != nil {
			errCh <- err
		}
		close(ch)
	}()

	var pending any
	var pendingErr error
	has := false

	hasNext := func() bool {
		if has || pendingErr != nil {
			return true
		}

		select {
		case value, ok := <-ch:
			if !ok {
				// the generator is gone, surface its error if it left one
				select {
				case err := <-errCh:
					pendingErr = err
					return true
				default:
					return false
				}
			}
			pending = value
			has = true
			return true
		case <-time.After(5 * time.Second):
			pendingErr = errors.New("next value timeout")
			return true
		}
	}

	next := func() (any, error) {
		if !hasNext() {
			return nil, core.ErrNoNextRow
		}

		if pendingErr != nil {
			err := pendingErr
			pendingErr = nil
			return nil, err
		}

		has = false
		return pending, nil
	}

	return next, hasNext
}

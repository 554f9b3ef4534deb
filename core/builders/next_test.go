package builders_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rowzip/rowzip/core"
	"github.com/rowzip/rowzip/core/builders"
)

func testNextYield(t *testing.T, sleep bool) {
	r := require.New(t)

	values := []any{"first", "second", "third", "fourth", "fifth", "last"}

	next, hasNext := builders.NextYield(func(yield func(any)) error {
		for i, value := range values {
			if sleep && (i == 2 || i == 4) {
				time.Sleep(500 * time.Millisecond)
			}
			yield(value)
		}

		return nil
	})

	i := 0
	for hasNext() {
		value, err := next()

		r.NoError(err)
		r.Equal(values[i], value)

		i++
	}

	r.Equal(len(values), i)
}

func TestNextYield_Success(t *testing.T) {
	// test with random sleeping
	testNextYield(t, true)

	for i := 0; i < 1000; i++ {
		testNextYield(t, false)
	}
}

func TestNextYield_Error(t *testing.T) {
	expectedError := errors.New("expected error")

	next, hasNext := builders.NextYield(func(yield func(any)) error {
		return expectedError
	})

	for hasNext() {
		_, err := next()
		require.ErrorIs(t, err, expectedError)
	}
}

func TestNextYield_NoValues(t *testing.T) {
	_, hasNext := builders.NextYield(func(yield func(any)) error {
		time.Sleep(1 * time.Second)
		return nil
	})

	require.Equal(t, false, hasNext())
}

func TestNextYield_SingleValue(t *testing.T) {
	r := require.New(t)
	next, hasNext := builders.NextYield(func(yield func(any)) error {
		yield(1)
		time.Sleep(1 * time.Second)
		return nil
	})

	r.True(hasNext())

	value, err := next()
	r.NoError(err)
	r.Equal(1, value)

	r.Equal(false, hasNext())
}

func TestNextSingle(t *testing.T) {
	r := require.New(t)

	next, hasNext := builders.NextSingle("lonely")

	r.True(hasNext())
	value, err := next()
	r.NoError(err)
	r.Equal("lonely", value)

	r.False(hasNext())
	_, err = next()
	r.ErrorIs(err, core.ErrNoNextRow)
}

func TestNextSlice(t *testing.T) {
	r := require.New(t)

	next, hasNext := builders.NextSlice([]int{1, 2, 3}, func(v int) any { return v * 10 })

	var got []any
	for hasNext() {
		value, err := next()
		r.NoError(err)
		got = append(got, value)
	}

	r.Equal([]any{10, 20, 30}, got)

	_, err := next()
	r.ErrorIs(err, core.ErrNoNextRow)
}

func TestNextNil(t *testing.T) {
	r := require.New(t)

	next, hasNext := builders.NextNil()

	r.False(hasNext())
	_, err := next()
	r.ErrorIs(err, core.ErrNoNextRow)
}

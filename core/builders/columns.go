package builders

import (
	"fmt"

	"github.com/rowzip/rowzip/core"
)

// ColumnSequence projects a single column of a row stream into a
// sequence. Closing the sequence closes the underlying stream.
func ColumnSequence(stream core.ResultStream, index int) (*Sequence, error) {
	if index < 0 {
		return nil, fmt.Errorf("invalid column index: %d", index)
	}

	next := func() (any, error) {
		row, err := stream.Next()
		if err != nil {
			return nil, err
		}
		if index >= len(row) {
			return nil, fmt.Errorf("no column %d in a row with %d values", index, len(row))
		}

		return row[index], nil
	}

	seq := NewSequenceBuilder().
		WithNextFunc(next, stream.HasNext).
		WithCloseFunc(stream.Close).
		Build()

	return seq, nil
}

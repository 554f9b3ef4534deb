package core

import "errors"

// ErrNoNextRow is returned by Next methods once the underlying
// iterator has no more values to produce.
var ErrNoNextRow = errors.New("no next row")

type (
	// FormatterOpts provide various options for formatters
	FormatterOpts struct {
		// ChunkStart is the absolute index of the first formatted row
		ChunkStart int
	}

	// Formatter converts header and rows to bytes
	Formatter interface {
		Format(header Header, rows []Row, opts *FormatterOpts) ([]byte, error)
	}
)

type (
	// Row and Header are attributes of the ResultStream iterator
	Row    []any
	Header []string

	// Sequence is a single-pass producer of values for one column.
	// HasNext reports whether another value is available and Next
	// retrieves it; Next on a drained sequence returns ErrNoNextRow.
	// A sequence cannot be restarted once consumed.
	Sequence interface {
		Next() (any, error)
		HasNext() bool
		Close()
	}

	// ResultStream is a single-pass iterator over rows.
	ResultStream interface {
		Header() Header
		Next() (Row, error)
		HasNext() bool
		Close()
	}
)

package core

import (
	"errors"
	"fmt"
)

// Column binds one sequence to the policy applied once that sequence is
// exhausted. Name is optional and only used for the stream header.
type Column struct {
	Name   string
	Seq    Sequence
	Policy Policy
}

type zipConfig struct {
	logger Logger
	header Header
}

type ZipOption func(*zipConfig)

// ZipWithLogger enables the per-row diagnostic trace.
func ZipWithLogger(logger Logger) ZipOption {
	return func(c *zipConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// ZipWithHeader overrides the column names of the produced stream.
func ZipWithHeader(header Header) ZipOption {
	return func(c *zipConfig) {
		c.header = header
	}
}

type zipColumn struct {
	seq       Sequence
	policy    Policy
	exhausted bool
	last      any
}

// ZipStream combines independently lengthed sequences into a stream of
// rows. Columns are evaluated left to right; an exhausted column
// contributes whatever its policy dictates until every column is
// exhausted or a stop_all or raise policy ends the iteration.
// A ZipStream is single-pass and not safe for concurrent use.
type ZipStream struct {
	cols   []*zipColumn
	header Header
	log    Logger

	rowIndex int
	stopped  int
	done     bool
	closed   bool

	pending    Row
	pendingErr error
}

var _ ResultStream = (*ZipStream)(nil)

// NewZip validates the columns and prepares a stream over them.
// No sequence is pulled until the first HasNext or Next call, so
// combining over endless sequences is fine.
func NewZip(cols []Column, opts ...ZipOption) (*ZipStream, error) {
	if len(cols) < 1 {
		return nil, errors.New("no columns to combine")
	}

	config := &zipConfig{
		logger: nopLogger{},
	}
	for _, opt := range opts {
		opt(config)
	}

	header := config.header
	if header == nil {
		header = make(Header, len(cols))
		for i, col := range cols {
			if col.Name != "" {
				header[i] = col.Name
			} else {
				header[i] = fmt.Sprintf("column_%d", i)
			}
		}
	}
	if len(header) != len(cols) {
		return nil, fmt.Errorf("header has %d names for %d columns", len(header), len(cols))
	}

	zipCols := make([]*zipColumn, len(cols))
	for i, col := range cols {
		if col.Seq == nil {
			return nil, fmt.Errorf("column %d: no sequence", i)
		}
		if err := col.Policy.validate(); err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		zipCols[i] = &zipColumn{
			seq:    col.Seq,
			policy: col.Policy,
		}
	}

	return &ZipStream{
		cols:   zipCols,
		header: header,
		log:    config.logger,
	}, nil
}

// ZipSequences combines sequences with their positional policies.
// A nil policy list applies StopAll to every column, which reduces the
// iteration to a classic shortest-sequence zip.
func ZipSequences(seqs []Sequence, policies []Policy, opts ...ZipOption) (*ZipStream, error) {
	if policies == nil {
		policies = make([]Policy, len(seqs))
	}
	if len(seqs) != len(policies) {
		return nil, fmt.Errorf("%d sequences with %d policies", len(seqs), len(policies))
	}

	cols := make([]Column, len(seqs))
	for i, seq := range seqs {
		cols[i] = Column{Seq: seq, Policy: policies[i]}
	}

	return NewZip(cols, opts...)
}

func (zs *ZipStream) Header() Header {
	return zs.header
}

// HasNext reports whether another row can be produced. It computes the
// row ahead of time, so underlying sequences may advance. It returns
// false only on a clean end; a pending raise or sequence failure keeps
// it true so the error surfaces through Next.
func (zs *ZipStream) HasNext() bool {
	if zs.pending != nil || zs.pendingErr != nil {
		return true
	}
	if zs.done {
		return false
	}

	row, ok, err := zs.advance()
	if err != nil {
		zs.pendingErr = err
		return true
	}
	if !ok {
		return false
	}

	zs.pending = row
	return true
}

func (zs *ZipStream) Next() (Row, error) {
	if zs.pending == nil && zs.pendingErr == nil && !zs.done {
		_ = zs.HasNext()
	}

	if err := zs.pendingErr; err != nil {
		zs.pendingErr = nil
		return nil, err
	}
	if row := zs.pending; row != nil {
		zs.pending = nil
		return row, nil
	}

	return nil, ErrNoNextRow
}

// advance computes the next row. ok is false on a clean end, either
// through a stop_all column or on the request after the closing row of
// a fully exhausted column set.
func (zs *ZipStream) advance() (row Row, ok bool, err error) {
	row = make(Row, len(zs.cols))

	for i, col := range zs.cols {
		if !col.exhausted && col.seq.HasNext() {
			value, err := col.seq.Next()
			if err != nil {
				zs.finish()
				return nil, false, fmt.Errorf("column %d: %w", i, err)
			}

			row[i] = value
			if col.policy.kind == PolicyKindPrevious {
				col.last = value
			}
			continue
		}

		if !col.exhausted {
			col.exhausted = true
			zs.stopped++
			zs.log.Debugf("column %d exhausted on row %d (%d/%d stopped)", i, zs.rowIndex, zs.stopped, len(zs.cols))
		}

		switch col.policy.kind {
		case PolicyKindStopAll:
			zs.log.Debugf("column %d stops the iteration on row %d", i, zs.rowIndex)
			zs.finish()
			return nil, false, nil
		case PolicyKindRaise:
			zs.finish()
			return nil, false, col.policy.err
		case PolicyKindDefault:
			row[i] = col.policy.value
		case PolicyKindPrevious:
			row[i] = col.last
		}
	}

	zs.log.Debugf("row %d: %d/%d stopped, values: %v", zs.rowIndex, zs.stopped, len(zs.cols), row)
	zs.rowIndex++

	// the fully substituted row is still produced, the request after
	// it ends the iteration
	if zs.stopped == len(zs.cols) {
		zs.finish()
	}

	return row, true, nil
}

func (zs *ZipStream) finish() {
	zs.done = true
	zs.closeColumns()
}

// Close releases every column sequence. The stream also closes itself
// once the iteration ends, so calling it is only required when a
// consumer abandons the stream early.
func (zs *ZipStream) Close() {
	zs.done = true
	zs.pending = nil
	zs.pendingErr = nil
	zs.closeColumns()
}

func (zs *ZipStream) closeColumns() {
	if zs.closed {
		return
	}
	zs.closed = true

	for _, col := range zs.cols {
		col.seq.Close()
	}
}

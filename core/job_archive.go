package core

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
)

func init() {
	// gob doesn't know how to encode/decode time otherwise
	gob.Register(time.Time{})
}

var archiveBasePath = filepath.Join(os.TempDir(), "rowzip-archive")

// these variables create a file name for a specified type
var (
	archiveDir = func(jobID JobID) string {
		return filepath.Join(archiveBasePath, string(jobID))
	}

	headerFile = func(jobID JobID) string {
		return filepath.Join(archiveDir(jobID), "header.gob")
	}
	rowFile = func(jobID JobID, i int) string {
		return filepath.Join(archiveDir(jobID), fmt.Sprintf("row_%d.gob", i))
	}
)

type archive struct {
	id       JobID
	isFilled bool
}

func newArchive(id JobID) *archive {
	isFilled := true
	_, err := os.Stat(archiveDir(id))
	if os.IsNotExist(err) {
		isFilled = false
	}
	return &archive{
		id:       id,
		isFilled: isFilled,
	}
}

func (a *archive) isEmpty() bool {
	return !a.isFilled
}

// setResult stores the cached rows to disk as a set of gob files
func (a *archive) setResult(result *Result) error {
	if a.isFilled {
		return nil
	}

	// create the directory for the archive record
	err := os.MkdirAll(archiveDir(a.id), os.ModePerm)
	if err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	// serialize the data
	// files inside the directory ..../job_id/:
	// header.gob - header
	// row_0.gob - first chunk of rows
	// row_n.gob - n-th chunk of rows

	// header
	file, err := os.Create(headerFile(a.id))
	if err != nil {
		return fmt.Errorf("os.Create: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	err = encoder.Encode(result.Header())
	if err != nil {
		return fmt.Errorf("encoder.Encode: %w", err)
	}

	// rows
	chunkSize := 500
	length := result.Len()

	// write chunks concurrently
	g := &errgroup.Group{}
	g.SetLimit(10)
	for i := 0; i <= length/chunkSize; i++ {
		i := i
		g.Go(func() error {
			// get chunk
			chunkStart := chunkSize * i
			chunkEnd := chunkSize * (i + 1)
			if chunkEnd > length {
				chunkEnd = length
			}
			chunk, err := result.Rows(chunkStart, chunkEnd)
			if err != nil {
				return err
			}
			if len(chunk) == 0 {
				return nil
			}

			file, err := os.Create(rowFile(a.id, i))
			if err != nil {
				return fmt.Errorf("os.Create: %w", err)
			}
			defer file.Close()

			encoder := gob.NewEncoder(file)
			err = encoder.Encode(chunk)
			if err != nil {
				return fmt.Errorf("encoder.Encode: %w", err)
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a.isFilled = true

	return nil
}

// getResult loads the archived rows in form of an iterator
func (a *archive) getResult() (*archiveRows, error) {
	if !a.isFilled {
		return nil, errors.New("archive does not contain a result")
	}
	return newArchiveRows(a.id)
}

// archiveRows streams archived chunk files back in order, one chunk
// buffered at a time.
type archiveRows struct {
	id     JobID
	header Header
	buffer []Row
	file   int
}

func newArchiveRows(id JobID) (*archiveRows, error) {
	r := &archiveRows{
		id: id,
	}

	err := r.readHeader()
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *archiveRows) readHeader() error {
	var header Header
	file, err := os.Open(headerFile(r.id))
	if err != nil {
		return fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	err = decoder.Decode(&header)
	if err != nil {
		return fmt.Errorf("decoder.Decode: %w", err)
	}

	r.header = header

	return nil
}

// readChunk returns rows of the i-th chunk file
func (r *archiveRows) readChunk(i int) ([]Row, error) {
	file, err := os.Open(rowFile(r.id, i))
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	var rows []Row

	decoder := gob.NewDecoder(file)
	err = decoder.Decode(&rows)
	if err != nil {
		return nil, fmt.Errorf("decoder.Decode: %w", err)
	}

	return rows, nil
}

func (r *archiveRows) chunkExists(i int) bool {
	_, err := os.Stat(rowFile(r.id, i))
	return err == nil
}

func (r *archiveRows) Header() Header {
	return r.header
}

func (r *archiveRows) HasNext() bool {
	return len(r.buffer) > 0 || r.chunkExists(r.file)
}

func (r *archiveRows) Next() (Row, error) {
	if len(r.buffer) < 1 {
		if !r.chunkExists(r.file) {
			return nil, ErrNoNextRow
		}

		rows, err := r.readChunk(r.file)
		if err != nil {
			return nil, err
		}
		r.file++
		r.buffer = rows
	}

	if len(r.buffer) < 1 {
		return nil, ErrNoNextRow
	}

	row := r.buffer[0]
	r.buffer = r.buffer[1:]
	return row, nil
}

func (r *archiveRows) Close() {
	// no-op
}

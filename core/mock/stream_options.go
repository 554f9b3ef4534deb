package mock

import (
	"time"

	"github.com/rowzip/rowzip/core"
)

type resultStreamConfig struct {
	nextSleep time.Duration
	header    core.Header
	failAfter int
	failError error
}

type ResultStreamOption func(*resultStreamConfig)

func ResultStreamWithNextSleep(s time.Duration) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.nextSleep = s
	}
}

func ResultStreamWithHeader(header core.Header) ResultStreamOption {
	return func(c *resultStreamConfig) {
		c.header = header
	}
}

// ResultStreamWithFailAfter makes the stream return err once n rows
// have been served.
func ResultStreamWithFailAfter(n int, err error) ResultStreamOption {
	return func(c *resultStreamConfig) {
		if err == nil {
			panic("fail error must not be nil")
		}

		c.failAfter = n
		c.failError = err
	}
}

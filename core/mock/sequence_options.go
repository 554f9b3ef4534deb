package mock

import "time"

type sequenceConfig struct {
	nextSleep time.Duration
	failAfter int
	failError error
}

type SequenceOption func(*sequenceConfig)

func SequenceWithNextSleep(s time.Duration) SequenceOption {
	return func(c *sequenceConfig) {
		c.nextSleep = s
	}
}

// SequenceWithFailAfter makes the sequence return err once n values
// have been served.
func SequenceWithFailAfter(n int, err error) SequenceOption {
	return func(c *sequenceConfig) {
		if err == nil {
			panic("fail error must not be nil")
		}

		c.failAfter = n
		c.failError = err
	}
}

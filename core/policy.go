package core

import (
	"errors"
	"fmt"
)

// PolicyKind enumerates the exhaustion policies a column can carry.
type PolicyKind int

const (
	PolicyKindStopAll PolicyKind = iota
	PolicyKindDefault
	PolicyKindPrevious
	PolicyKindRaise
)

func (k PolicyKind) String() string {
	switch k {
	case PolicyKindStopAll:
		return "stop_all"
	case PolicyKindDefault:
		return "default"
	case PolicyKindPrevious:
		return "previous"
	case PolicyKindRaise:
		return "raise"
	default:
		return "unknown"
	}
}

// Policy determines what a column contributes to rows produced after its
// own sequence is exhausted. The zero value is StopAll.
type Policy struct {
	kind  PolicyKind
	value any
	err   error
}

// StopAll ends the entire iteration as soon as the column is exhausted.
func StopAll() Policy {
	return Policy{kind: PolicyKindStopAll}
}

// Default substitutes value for every row produced after exhaustion.
func Default(value any) Policy {
	return Policy{kind: PolicyKindDefault, value: value}
}

// Previous repeats the last value the column actually produced.
// A column that exhausts before producing any value substitutes nil.
func Previous() Policy {
	return Policy{kind: PolicyKindPrevious}
}

// Raise surfaces err from the iterator once the column is exhausted.
func Raise(err error) Policy {
	return Policy{kind: PolicyKindRaise, err: err}
}

func (p Policy) Kind() PolicyKind { return p.kind }

func (p Policy) String() string {
	switch p.kind {
	case PolicyKindDefault:
		return fmt.Sprintf("default(%v)", p.value)
	case PolicyKindRaise:
		return fmt.Sprintf("raise(%v)", p.err)
	default:
		return p.kind.String()
	}
}

func (p Policy) validate() error {
	switch p.kind {
	case PolicyKindStopAll, PolicyKindDefault, PolicyKindPrevious:
		return nil
	case PolicyKindRaise:
		if p.err == nil {
			return errors.New("raise policy requires a non-nil error")
		}
		return nil
	default:
		return fmt.Errorf("unknown policy kind: %d", int(p.kind))
	}
}

package agents

import (
	"errors"
	"fmt"
)

var ErrNoProvider = errors.New("no provider")

// InitError reports a failure to construct the agent or its ledger.
type InitError struct {
	Err error
}

var _ error = new(InitError)

func (i *InitError) Error() string {
	return fmt.Sprintf("init failed: %v", i.Err)
}

func (i *InitError) Unwrap() error {
	return i.Err
}

// StepError reports a generation failure; Round counts from 1.
type StepError struct {
	Round int
	Err   error
}

var _ error = new(StepError)

func (s *StepError) Error() string {
	return fmt.Sprintf("generation failed at round %d: %v", s.Round, s.Err)
}

func (s *StepError) Unwrap() error {
	return s.Err
}

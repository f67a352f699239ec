package notebooks

import (
	"errors"
	"fmt"
)

var ErrSnapshot = errors.New("snapshot ledgers cannot execute steps")

// ParseError names the field a model response lacked.
type ParseError struct {
	Field  string
	Reason string
}

var _ error = new(ParseError)

func (p *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", p.Field, p.Reason)
}

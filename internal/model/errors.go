package model

import (
	"errors"
	"fmt"
)

// ErrMissingInput marks a source or stage-input file that does not exist.
// At merge time it is recovered locally (the source contributes zero rows);
// at pipeline time it blocks the stage that needs the file.
var ErrMissingInput = errors.New("input file missing")

// ErrNoData marks an aggregate query over an empty dataset.
var ErrNoData = errors.New("no data")

// CredentialError reports a required API credential that is not configured.
// Stages recover by emitting null results, but the condition must stay
// visible to the operator.
type CredentialError struct {
	Service string
	EnvVar  string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s credential missing (set %s)", e.Service, e.EnvVar)
}

// QuotaError reports that an external service quota cap was reached.
type QuotaError struct {
	Service string
	Limit   int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s quota exhausted after %d records", e.Service, e.Limit)
}

// SchemaError reports a stage input that lacks a required column,
// typically a stage run out of order.
type SchemaError struct {
	Column string
	Path   string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("required column %q missing from input", e.Column)
	}
	return fmt.Sprintf("column %q missing from %s", e.Column, e.Path)
}

// InsufficientDataError reports a corpus too small for the topic model.
type InsufficientDataError struct {
	Need int
	Got  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("topic model needs at least %d documents, got %d", e.Need, e.Got)
}

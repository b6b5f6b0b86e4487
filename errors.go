package litsense

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidChunkSize   = errors.New("chunk size must be at least 1")
	ErrUnknownTextType    = errors.New("unknown text type")
	ErrUnknownAggregation = errors.New("unknown aggregation method")
	ErrEmptyKeywordTable  = errors.New("emotion keyword table is empty")
)

// InsufficientInputError reports text that is empty or cannot be segmented.
type InsufficientInputError struct {
	Stage  Stage
	Reason string
}

func (e *InsufficientInputError) Error() string {
	return fmt.Sprintf("insufficient input at %s: %s", e.Stage, e.Reason)
}

// ModelUnavailableError reports that no trained classifier could be loaded.
// It is informational: the sentiment scorer falls back to the polarity lexicon.
type ModelUnavailableError struct {
	Path string
	Err  error
}

func (e *ModelUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sentiment model unavailable at %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("sentiment model unavailable at %q", e.Path)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Err
}

// CollaboratorFailure wraps an error raised by a text processor, lexicon or classifier.
type CollaboratorFailure struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorFailure) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorFailure) Unwrap() error {
	return e.Err
}

// StageError tags a pipeline failure with the stage that was running.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("analysis failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage recorded in err, if any.
func FailedStage(err error) (Stage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}
	var inputErr *InsufficientInputError
	if errors.As(err, &inputErr) {
		return inputErr.Stage, true
	}
	return "", false
}

func collaboratorFailure(name string, err error) error {
	if err == nil {
		return nil
	}
	var failure *CollaboratorFailure
	if errors.As(err, &failure) {
		return err
	}
	return &CollaboratorFailure{Collaborator: name, Err: err}
}

package model

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateQuestionName = errors.New("question names must be unique")
	ErrInvalidChoiceValue    = errors.New("value unavailable in question choices")
	ErrDecodeFailure         = errors.New("cannot decode answer")
	ErrNotImplemented        = errors.New("not implemented")
	ErrAnswerCountMismatch   = errors.New("questions hold different numbers of answers")
)

// InvalidChoiceError is returned when an answer is not a key of the question's choices
type InvalidChoiceError struct {
	Question string
	Value    any
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("value %v unavailable in question %s", e.Value, e.Question)
}

func (e *InvalidChoiceError) Unwrap() error {
	return ErrInvalidChoiceValue
}

// DecodeError is returned when a raw answer cannot be converted to the question's data type
type DecodeError struct {
	Question string
	Value    any
	Target   DataType
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %v (%T) as %s in question %s", e.Value, e.Value, e.Target, e.Question)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecodeFailure
}

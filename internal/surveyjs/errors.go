package surveyjs

import "errors"

var (
	ErrUnsupportedQuestionType = errors.New("unsupported question type")
	ErrMalformedChoiceList     = errors.New("choice list entry must be a string or a {value, text} object")
	ErrMalformedResult         = errors.New("result must be a JSON object")
	ErrMalformedDefinition     = errors.New("malformed survey definition")
)

package errors

import "net/http"

// Kind classifies a harness generation failure
type Kind int

const (
	Unknown Kind = iota
	SchemaValidation
	InputArity
	InputParse
	UnsupportedType
	TemplateIntegrity
)

var kindNames = map[Kind]string{
	Unknown:           "UnknownError",
	SchemaValidation:  "SchemaValidationError",
	InputArity:        "InputArityError",
	InputParse:        "InputParseError",
	UnsupportedType:   "UnsupportedTypeError",
	TemplateIntegrity: "TemplateIntegrityError",
}

var kindMessages = map[Kind]string{
	Unknown:           "harness generation failed",
	SchemaValidation:  "execution config is invalid",
	InputArity:        "test input does not match the declared parameters",
	InputParse:        "test input is malformed",
	UnsupportedType:   "type is not supported by the target language",
	TemplateIntegrity: "wrapper template is malformed",
}

// String returns the error kind name, e.g. "InputParseError"
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[Unknown]
}

// Message returns the default message for the kind
func (k Kind) Message() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return kindMessages[Unknown]
}

// HTTPStatus maps the kind to the status code returned by the API.
// Template problems are the operator's fault, everything else is the author's input.
func (k Kind) HTTPStatus() int {
	switch k {
	case SchemaValidation, InputArity, InputParse, UnsupportedType:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

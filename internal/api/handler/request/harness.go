package request

import "codemasti/internal/gen/schema"

// ValidateConfig carries an execution config being authored
type ValidateConfig struct {
	Config schema.ExecutionConfig `json:"config" validate:"-"`
}

// GenerateInline generates one program from a config sent with the request
type GenerateInline struct {
	Config   schema.ExecutionConfig `json:"config" validate:"-"`
	TestCase schema.TestCase        `json:"testCase" validate:"-"`
	Target   string                 `json:"target" validate:"required"`
	Code     string                 `json:"code"`
}

// GenerateForProblem generates the programs of a stored problem. Without a
// test case id every test case is generated.
type GenerateForProblem struct {
	TestCaseID *uint  `json:"testCaseId,omitempty"`
	Target     string `json:"target" validate:"required"`
	Code       string `json:"code" validate:"required"`
}

// Submit dispatches a candidate's code for every test case of a problem
type Submit struct {
	Target string `json:"target" validate:"required"`
	Code   string `json:"code" validate:"required"`
}

// Verdict classifies execution output, against either an explicit expected
// output or a stored test case
type Verdict struct {
	Stdout     string  `json:"stdout"`
	Stderr     string  `json:"stderr"`
	Expected   *string `json:"expected,omitempty" validate:"required_without=TestCaseID"`
	ProblemID  uint    `json:"problemId" validate:"required_with=TestCaseID"`
	TestCaseID uint    `json:"testCaseId"`
}

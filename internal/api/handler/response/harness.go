package response

import (
	"codemasti/internal/api/service"
	"codemasti/internal/gen/schema"
)

// HarnessErrorData is the data of an APIError raised by harness generation
type HarnessErrorData struct {
	Kind       string                 `json:"kind"`
	Violations []string               `json:"violations,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// ValidateConfigResponse reports which targets a valid config supports
type ValidateConfigResponse struct {
	Valid   bool                    `json:"valid"`
	Targets []service.TargetSupport `json:"targets"`
}

// ProgramsResponse lists generated programs in test case order
type ProgramsResponse struct {
	Programs []service.TestCaseProgram `json:"programs"`
}

// ProgramResponse wraps a single generated program
type ProgramResponse struct {
	TestCaseID uint                     `json:"testCaseId,omitempty"`
	Program    *schema.GeneratedProgram `json:"program"`
}

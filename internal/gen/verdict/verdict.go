// Package verdict reads the output of an executed harness.
package verdict

import (
	"strings"
)

// RuntimeErrorMarker starts every line a harness prints when the candidate's
// code or the harness itself fails
const RuntimeErrorMarker = "RUNTIME_ERROR:"

// Status is the outcome of one test case
type Status string

const (
	Accepted     Status = "ACCEPTED"
	WrongAnswer  Status = "WRONG_ANSWER"
	RuntimeError Status = "RUNTIME_ERROR"
)

// Verdict is the classified output of one run
type Verdict struct {
	Status  Status `json:"status"`
	Actual  string `json:"actual"`
	Message string `json:"message,omitempty"`
}

// Classify compares the captured output of a harness with the expected
// canonical output. The result line is the last non-empty stdout line.
func Classify(stdout, stderr, expected string) Verdict {
	if msg, ok := runtimeError(stdout); ok {
		return Verdict{Status: RuntimeError, Message: msg}
	}
	if msg, ok := runtimeError(stderr); ok {
		return Verdict{Status: RuntimeError, Message: msg}
	}

	actual := lastLine(stdout)
	if actual == strings.TrimSpace(expected) {
		return Verdict{Status: Accepted, Actual: actual}
	}
	return Verdict{Status: WrongAnswer, Actual: actual}
}

func runtimeError(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, RuntimeErrorMarker) {
			return strings.TrimSpace(strings.TrimPrefix(line, RuntimeErrorMarker)), true
		}
	}
	return "", false
}

func lastLine(output string) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimRight(lines[i], " \t\r"); line != "" {
			return line
		}
	}
	return ""
}

package realtime

import (
	"encoding/json"
	"fmt"

	"codemasti/internal/gen/verdict"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// ExecutionResult is what the execution backend reports for one dispatched
// request.
type ExecutionResult struct {
	RequestID    string `json:"requestId"`
	SubmissionID string `json:"submissionId"`
	ProblemID    uint   `json:"problemId"`
	TestCaseID   uint   `json:"testCaseId"`
	Stdout       string `json:"stdout"`
	Stderr       string `json:"stderr"`
}

// VerdictEvent is the envelope pushed to subscribed clients.
type VerdictEvent struct {
	Type         string          `json:"type"`
	SubmissionID string          `json:"submissionId"`
	RequestID    string          `json:"requestId"`
	TestCaseID   uint            `json:"testCaseId"`
	Verdict      verdict.Verdict `json:"verdict"`
}

// JudgeFunc classifies a result against the stored test case
type JudgeFunc func(problemID, testCaseID uint, stdout, stderr string) (verdict.Verdict, error)

// ResultListener consumes execution results from NATS, judges them and
// publishes the verdicts to the hub.
type ResultListener struct {
	conn    *nats.Conn
	subject string
	judge   JudgeFunc
	hub     *Hub
	sub     *nats.Subscription
	logger  zerolog.Logger
}

func NewResultListener(conn *nats.Conn, subject string, judge JudgeFunc, hub *Hub, logger zerolog.Logger) *ResultListener {
	return &ResultListener{conn: conn, subject: subject, judge: judge, hub: hub, logger: logger}
}

// Subscribe starts consuming the result subject
func (l *ResultListener) Subscribe() error {
	sub, err := l.conn.Subscribe(l.subject, func(msg *nats.Msg) {
		l.handle(msg.Data)
	})
	if err != nil {
		return fmt.Errorf("nats subscribe %q: %w", l.subject, err)
	}
	l.sub = sub
	l.logger.Info().Str("subject", l.subject).Msg("Listening for execution results")
	return nil
}

// Close stops consuming results.
func (l *ResultListener) Close() {
	if l.sub == nil {
		return
	}
	if err := l.sub.Unsubscribe(); err != nil {
		l.logger.Warn().Err(err).Msg("Failed to unsubscribe from execution results")
	}
}

func (l *ResultListener) handle(data []byte) {
	var result ExecutionResult
	if err := json.Unmarshal(data, &result); err != nil {
		l.logger.Warn().Err(err).Msg("Invalid execution result")
		return
	}
	if result.SubmissionID == "" {
		l.logger.Warn().Str("requestId", result.RequestID).Msg("Execution result without submission id")
		return
	}

	v, err := l.judge(result.ProblemID, result.TestCaseID, result.Stdout, result.Stderr)
	if err != nil {
		l.logger.Error().Err(err).
			Str("submissionId", result.SubmissionID).
			Uint("testCaseId", result.TestCaseID).
			Msg("Error judging execution result")
		return
	}

	payload, err := json.Marshal(VerdictEvent{
		Type:         "verdict",
		SubmissionID: result.SubmissionID,
		RequestID:    result.RequestID,
		TestCaseID:   result.TestCaseID,
		Verdict:      v,
	})
	if err != nil {
		l.logger.Error().Err(err).Msg("Error encoding verdict")
		return
	}
	l.hub.Publish(result.SubmissionID, payload)
}

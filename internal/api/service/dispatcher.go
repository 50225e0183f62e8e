package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"codemasti/internal/gen/schema"

	"github.com/nats-io/nats.go"
)

// ErrDispatcherUnavailable is returned when no execution broker is connected
var ErrDispatcherUnavailable = errors.New("execution dispatcher is not connected")

// ExecutionRequest is the message the execution backend consumes
type ExecutionRequest struct {
	ID             string        `json:"id"`
	SubmissionID   string        `json:"submissionId"`
	ProblemID      uint          `json:"problemId"`
	TestCaseID     uint          `json:"testCaseId"`
	Target         schema.Target `json:"target"`
	LanguageID     int           `json:"languageId"`
	SourceText     string        `json:"sourceText"`
	ExpectedOutput string        `json:"expectedOutput"`
	TimeoutMs      int           `json:"timeoutMs,omitempty"`
	MemoryLimitKb  int           `json:"memoryLimitKb,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// Dispatcher hands generated programs to the execution backend
type Dispatcher interface {
	Dispatch(ctx context.Context, req ExecutionRequest) error
}

type natsDispatcher struct {
	conn    *nats.Conn
	subject string
}

// NewNatsDispatcher publishes execution requests as JSON on subject
func NewNatsDispatcher(conn *nats.Conn, subject string) Dispatcher {
	return &natsDispatcher{conn: conn, subject: subject}
}

func (d *natsDispatcher) Dispatch(ctx context.Context, req ExecutionRequest) error {
	if d.conn == nil || !d.conn.IsConnected() {
		return ErrDispatcherUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(req)
	if err != nil {
		return err
	}

	msg := nats.NewMsg(d.subject)
	msg.Data = data
	// lets a JetStream stream drop duplicates of a retried publish
	msg.Header.Set(nats.MsgIdHdr, req.ID)
	msg.Header.Set("Submission-Id", req.SubmissionID)
	return d.conn.PublishMsg(msg)
}

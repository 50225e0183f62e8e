package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"codemasti/internal/api/models"
	"codemasti/internal/gen/schema"
	"codemasti/pkg"

	"github.com/redis/go-redis/v9"
)

const memoPrefix = "harness:program:"

// ProgramMemo remembers generated programs between identical requests
type ProgramMemo interface {
	// Get returns nil without error when nothing is stored under key
	Get(ctx context.Context, key string) (*schema.GeneratedProgram, error)
	Set(ctx context.Context, key string, program *schema.GeneratedProgram) error
	// Forget drops every program of a problem
	Forget(ctx context.Context, problemID uint) error
}

type redisProgramMemo struct {
	store *pkg.RedisStore
	ttl   time.Duration
}

// NewRedisProgramMemo creates a memo backed by Redis. Nothing is stored
// when client is nil.
func NewRedisProgramMemo(client *redis.Client, ttl time.Duration) ProgramMemo {
	if client == nil {
		return noopProgramMemo{}
	}
	return &redisProgramMemo{store: pkg.NewRedisStore(client), ttl: ttl}
}

func (m *redisProgramMemo) Get(ctx context.Context, key string) (*schema.GeneratedProgram, error) {
	var program schema.GeneratedProgram
	if err := m.store.Get(ctx, key, &program); err != nil {
		if pkg.IsRedisNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return &program, nil
}

func (m *redisProgramMemo) Set(ctx context.Context, key string, program *schema.GeneratedProgram) error {
	return m.store.Set(ctx, key, program, m.ttl)
}

func (m *redisProgramMemo) Forget(ctx context.Context, problemID uint) error {
	_, err := m.store.DeletePrefix(ctx, fmt.Sprintf("%s%d:", memoPrefix, problemID))
	return err
}

type noopProgramMemo struct{}

func (noopProgramMemo) Get(context.Context, string) (*schema.GeneratedProgram, error) {
	return nil, nil
}

func (noopProgramMemo) Set(context.Context, string, *schema.GeneratedProgram) error {
	return nil
}

func (noopProgramMemo) Forget(context.Context, uint) error {
	return nil
}

// memoKey identifies a program by problem, config version, test case, target,
// and digests of the test input and the candidate's code. Test cases are
// edited in place without a version bump, so the input digest is part of the key.
func memoKey(problem models.Problem, testCase models.ProblemTestCase, t schema.Target, code string) string {
	return fmt.Sprintf("%s%d:v%d:%d:%s:%s:%s", memoPrefix, problem.ID, problem.ConfigVersion, testCase.ID, t,
		digest(testCase.Input), digest(code))
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:12])
}

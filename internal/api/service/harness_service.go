package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"codemasti"
	"codemasti/internal/api/models"
	"codemasti/internal/api/repo"
	"codemasti/internal/gen"
	"codemasti/internal/gen/render"
	"codemasti/internal/gen/schema"
	"codemasti/internal/gen/verdict"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrProblemNotFound  = errors.New("problem not found")
	ErrTestCaseNotFound = errors.New("test case not found")
	ErrNoTestCases      = errors.New("problem has no test cases")
)

// ProblemStore is the read side of the problem repository
type ProblemStore interface {
	FindByID(id uint) (models.Problem, error)
	FindTestCases(problemID uint) ([]models.ProblemTestCase, error)
	FindTestCase(problemID, testCaseID uint) (models.ProblemTestCase, error)
}

// TargetInfo describes one supported target language
type TargetInfo struct {
	Target          schema.Target `json:"target"`
	LanguageID      int           `json:"languageId"`
	Dynamic         bool          `json:"dynamic"`
	TemplateVersion string        `json:"templateVersion"`
}

// TargetSupport tells whether a config can be generated for a target
type TargetSupport struct {
	Target    schema.Target `json:"target"`
	Supported bool          `json:"supported"`
	Reason    string        `json:"reason,omitempty"`
}

// TestCaseProgram is the program generated for one stored test case
type TestCaseProgram struct {
	TestCaseID uint                     `json:"testCaseId"`
	Program    *schema.GeneratedProgram `json:"program"`
}

// Submission lists the execution requests dispatched for one submission
type Submission struct {
	ID       string              `json:"id"`
	Requests []DispatchedRequest `json:"requests"`
}

// DispatchedRequest is the handle of one dispatched test case run
type DispatchedRequest struct {
	ID         string `json:"id"`
	TestCaseID uint   `json:"testCaseId"`
}

type HarnessService struct {
	assembler   *gen.Assembler
	problems    ProblemStore
	configs     *configCache
	memo        ProgramMemo
	dispatcher  Dispatcher
	maxParallel int
	logger      zerolog.Logger
}

func NewHarnessService() *HarnessService {
	cfg := codemasti.GetConfig()
	s := newHarnessService(
		repo.NewProblemRepository(),
		NewRedisProgramMemo(codemasti.Redis, cfg.HarnessConfig.ProgramTTL),
		NewNatsDispatcher(codemasti.Nats, cfg.NatsConfig.Subject),
		codemasti.Logger,
	)
	s.configs = newConfigCache(cfg.HarnessConfig.ConfigCacheSize, cfg.HarnessConfig.ConfigCacheTTL)
	if cfg.HarnessConfig.MaxParallel > 0 {
		s.maxParallel = cfg.HarnessConfig.MaxParallel
	}
	return s
}

func newHarnessService(problems ProblemStore, memo ProgramMemo, dispatcher Dispatcher, logger zerolog.Logger) *HarnessService {
	return &HarnessService{
		assembler:   gen.NewAssembler(gen.WithLogger(logger)),
		problems:    problems,
		configs:     newConfigCache(128, time.Minute),
		memo:        memo,
		dispatcher:  dispatcher,
		maxParallel: 4,
		logger:      logger,
	}
}

// Targets lists every supported target with its default backend id
func (slf *HarnessService) Targets() []TargetInfo {
	targets := schema.Targets()
	out := make([]TargetInfo, 0, len(targets))
	for _, t := range targets {
		out = append(out, TargetInfo{
			Target:          t,
			LanguageID:      schema.DefaultLanguageIDs[t],
			Dynamic:         t.IsDynamic(),
			TemplateVersion: render.DefaultVersion,
		})
	}
	return out
}

// ValidateConfig checks a config the way problem authoring needs it: every
// schema violation at once, then template integrity, then per-target support
func (slf *HarnessService) ValidateConfig(cfg schema.ExecutionConfig) ([]TargetSupport, error) {
	if err := schema.ValidateExecutionConfig(cfg); err != nil {
		return nil, err
	}
	if err := slf.assembler.ValidateTemplates(cfg); err != nil {
		return nil, err
	}

	support := make([]TargetSupport, 0, len(schema.Targets()))
	for _, t := range schema.Targets() {
		s := TargetSupport{Target: t, Supported: true}
		if err := slf.assembler.Validate(cfg.IO, t); err != nil {
			s.Supported = false
			s.Reason = err.Error()
		}
		support = append(support, s)
	}
	return support, nil
}

// GenerateInline assembles a program from a config supplied by the caller,
// for authoring previews. Nothing is memoised.
func (slf *HarnessService) GenerateInline(cfg schema.ExecutionConfig, code string, testCase schema.TestCase, t schema.Target) (*schema.GeneratedProgram, error) {
	program, err := slf.assembler.Assemble(cfg, code, testCase, t)
	if err != nil {
		slf.logger.Debug().Err(err).Str("target", string(t)).Msg("Inline generation failed")
		return nil, err
	}
	return program, nil
}

// Generate assembles the program of one stored test case
func (slf *HarnessService) Generate(ctx context.Context, problemID, testCaseID uint, t schema.Target, code string) (*schema.GeneratedProgram, error) {
	problem, err := slf.loadProblem(problemID)
	if err != nil {
		return nil, err
	}

	testCase, err := slf.problems.FindTestCase(problemID, testCaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestCaseNotFound
		}
		slf.logger.Error().Err(err).Uint("problemId", problemID).Uint("testCaseId", testCaseID).Msg("Error getting test case")
		return nil, err
	}

	return slf.generate(ctx, problem, testCase, t, code)
}

// GenerateAll assembles the programs of every test case of a problem. Output
// keeps the test case order; the first failure cancels the rest.
func (slf *HarnessService) GenerateAll(ctx context.Context, problemID uint, t schema.Target, code string) ([]TestCaseProgram, error) {
	problem, testCases, err := slf.loadWithTestCases(problemID)
	if err != nil {
		return nil, err
	}
	return slf.generateAll(ctx, problem, testCases, t, code)
}

// Submit generates every test case program and hands them to the execution backend
func (slf *HarnessService) Submit(ctx context.Context, problemID uint, t schema.Target, code string) (*Submission, error) {
	problem, testCases, err := slf.loadWithTestCases(problemID)
	if err != nil {
		return nil, err
	}
	programs, err := slf.generateAll(ctx, problem, testCases, t, code)
	if err != nil {
		return nil, err
	}

	cfg := problem.ExecutionConfig.Config()
	submission := &Submission{ID: uuid.NewString()}
	now := time.Now().UTC()
	for i, p := range programs {
		req := ExecutionRequest{
			ID:             uuid.NewString(),
			SubmissionID:   submission.ID,
			ProblemID:      problemID,
			TestCaseID:     p.TestCaseID,
			Target:         t,
			LanguageID:     p.Program.TargetLanguageID,
			SourceText:     p.Program.SourceText,
			ExpectedOutput: testCases[i].Output,
			TimeoutMs:      cfg.TimeoutMs,
			MemoryLimitKb:  cfg.MemoryLimitKb,
			CreatedAt:      now,
		}
		if err := slf.dispatcher.Dispatch(ctx, req); err != nil {
			slf.logger.Error().Err(err).Str("submissionId", submission.ID).Uint("testCaseId", p.TestCaseID).Msg("Error dispatching execution request")
			return nil, err
		}
		submission.Requests = append(submission.Requests, DispatchedRequest{ID: req.ID, TestCaseID: p.TestCaseID})
	}

	slf.logger.Info().
		Str("submissionId", submission.ID).
		Uint("problemId", problemID).
		Str("target", string(t)).
		Int("requests", len(submission.Requests)).
		Msg("Submission dispatched")
	return submission, nil
}

// Judge classifies backend output against the stored expected output of a test case
func (slf *HarnessService) Judge(problemID, testCaseID uint, stdout, stderr string) (verdict.Verdict, error) {
	testCase, err := slf.problems.FindTestCase(problemID, testCaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return verdict.Verdict{}, ErrTestCaseNotFound
		}
		return verdict.Verdict{}, err
	}
	return verdict.Classify(stdout, stderr, testCase.Output), nil
}

// JudgeOutput classifies backend output against an explicit expected output
func (slf *HarnessService) JudgeOutput(stdout, stderr, expected string) verdict.Verdict {
	return verdict.Classify(stdout, stderr, expected)
}

// Invalidate drops the cached config and memoised programs of a problem
func (slf *HarnessService) Invalidate(ctx context.Context, problemID uint) error {
	slf.configs.Remove(problemID)
	return slf.memo.Forget(ctx, problemID)
}

func (slf *HarnessService) generateAll(ctx context.Context, problem models.Problem, testCases []models.ProblemTestCase, t schema.Target, code string) ([]TestCaseProgram, error) {
	programs := make([]TestCaseProgram, len(testCases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(slf.maxParallel)
	for i, tc := range testCases {
		i, tc := i, tc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			program, err := slf.generate(ctx, problem, tc, t, code)
			if err != nil {
				return fmt.Errorf("test case %d: %w", tc.ID, err)
			}
			programs[i] = TestCaseProgram{TestCaseID: tc.ID, Program: program}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return programs, nil
}

func (slf *HarnessService) generate(ctx context.Context, problem models.Problem, testCase models.ProblemTestCase, t schema.Target, code string) (*schema.GeneratedProgram, error) {
	key := memoKey(problem, testCase, t, code)
	if program, err := slf.memo.Get(ctx, key); err != nil {
		slf.logger.Warn().Err(err).Str("key", key).Msg("Program memo lookup failed")
	} else if program != nil {
		return program, nil
	}

	program, err := slf.assembler.Assemble(problem.ExecutionConfig.Config(), code, testCase.TestCase(), t)
	if err != nil {
		return nil, err
	}

	if err := slf.memo.Set(ctx, key, program); err != nil {
		slf.logger.Warn().Err(err).Str("key", key).Msg("Program memo store failed")
	}
	return program, nil
}

func (slf *HarnessService) loadWithTestCases(problemID uint) (models.Problem, []models.ProblemTestCase, error) {
	problem, err := slf.loadProblem(problemID)
	if err != nil {
		return models.Problem{}, nil, err
	}
	testCases, err := slf.problems.FindTestCases(problemID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("problemId", problemID).Msg("Error getting test cases")
		return models.Problem{}, nil, err
	}
	if len(testCases) == 0 {
		return models.Problem{}, nil, ErrNoTestCases
	}
	return problem, testCases, nil
}

func (slf *HarnessService) loadProblem(id uint) (models.Problem, error) {
	if problem, ok := slf.configs.Get(id); ok {
		return problem, nil
	}
	problem, err := slf.problems.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slf.logger.Error().Uint("problemId", id).Msg("Problem not found")
			return models.Problem{}, ErrProblemNotFound
		}
		slf.logger.Error().Err(err).Uint("problemId", id).Msg("Error getting problem")
		return models.Problem{}, err
	}
	slf.configs.Add(problem)
	return problem, nil
}

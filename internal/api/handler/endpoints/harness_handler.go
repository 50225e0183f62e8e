package endpoints

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"codemasti"
	"codemasti/internal/api/handler/middleware"
	"codemasti/internal/api/handler/request"
	"codemasti/internal/api/handler/response"
	"codemasti/internal/api/service"
	"codemasti/internal/gen/schema"
	"codemasti/internal/gen/verdict"
	"codemasti/pkg"
	herrors "codemasti/pkg/errors"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// harnessService is the part of service.HarnessService the handler uses
type harnessService interface {
	Targets() []service.TargetInfo
	ValidateConfig(cfg schema.ExecutionConfig) ([]service.TargetSupport, error)
	GenerateInline(cfg schema.ExecutionConfig, code string, testCase schema.TestCase, t schema.Target) (*schema.GeneratedProgram, error)
	Generate(ctx context.Context, problemID, testCaseID uint, t schema.Target, code string) (*schema.GeneratedProgram, error)
	GenerateAll(ctx context.Context, problemID uint, t schema.Target, code string) ([]service.TestCaseProgram, error)
	Submit(ctx context.Context, problemID uint, t schema.Target, code string) (*service.Submission, error)
	Judge(problemID, testCaseID uint, stdout, stderr string) (verdict.Verdict, error)
	JudgeOutput(stdout, stderr, expected string) verdict.Verdict
	Invalidate(ctx context.Context, problemID uint) error
}

type harnessHandler struct {
	harnessService harnessService
	logger         zerolog.Logger
}

func newHarnessHandler(svc harnessService, logger zerolog.Logger) *harnessHandler {
	return &harnessHandler{
		harnessService: svc,
		logger:         logger,
	}
}

func HarnessHandler(router *graceful.Graceful, svc *service.HarnessService) {
	h := newHarnessHandler(svc, codemasti.Logger)
	routes := router.Group("/api/v1/harness")
	routes.Use(middleware.AuthMiddleware(codemasti.GetConfig()))
	h.register(routes)
}

func (slf *harnessHandler) register(routes *gin.RouterGroup) {
	routes.GET("/targets", slf.targets)

	// Authoring
	routes.POST("/validate", slf.validate)
	routes.POST("/generate", slf.generateInline)

	// Stored problems
	routes.POST("/problems/:problemId/generate", slf.generateForProblem)
	routes.POST("/problems/:problemId/submit", slf.submit)
	routes.DELETE("/problems/:problemId/cache", slf.invalidate)

	// Execution output
	routes.POST("/verdict", slf.verdict)
}

// targets lists the supported target languages
func (slf *harnessHandler) targets(c *gin.Context) {
	c.JSON(http.StatusOK, slf.harnessService.Targets())
}

// validate checks an execution config and reports per-target support
func (slf *harnessHandler) validate(c *gin.Context) {
	var req request.ValidateConfig
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.badRequest(c, err)
		return
	}

	support, err := slf.harnessService.ValidateConfig(req.Config)
	if err != nil {
		slf.fail(c, err, "Failed to validate config")
		return
	}

	c.JSON(http.StatusOK, response.ValidateConfigResponse{Valid: true, Targets: support})
}

// generateInline assembles one program from the config in the request body
func (slf *harnessHandler) generateInline(c *gin.Context) {
	var req request.GenerateInline
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.badRequest(c, err)
		return
	}
	t, ok := slf.target(c, req.Target)
	if !ok {
		return
	}

	program, err := slf.harnessService.GenerateInline(req.Config, req.Code, req.TestCase, t)
	if err != nil {
		slf.fail(c, err, "Failed to generate program")
		return
	}

	c.JSON(http.StatusOK, response.ProgramResponse{Program: program})
}

// generateForProblem assembles one or every test case program of a stored problem
func (slf *harnessHandler) generateForProblem(c *gin.Context) {
	problemID, ok := slf.problemID(c)
	if !ok {
		return
	}
	var req request.GenerateForProblem
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.badRequest(c, err)
		return
	}
	t, ok := slf.target(c, req.Target)
	if !ok {
		return
	}

	if req.TestCaseID != nil {
		program, err := slf.harnessService.Generate(c.Request.Context(), problemID, *req.TestCaseID, t, req.Code)
		if err != nil {
			slf.fail(c, err, "Failed to generate program")
			return
		}
		c.JSON(http.StatusOK, response.ProgramResponse{TestCaseID: *req.TestCaseID, Program: program})
		return
	}

	programs, err := slf.harnessService.GenerateAll(c.Request.Context(), problemID, t, req.Code)
	if err != nil {
		slf.fail(c, err, "Failed to generate programs")
		return
	}
	c.JSON(http.StatusOK, response.ProgramsResponse{Programs: programs})
}

// submit dispatches every test case program to the execution backend
func (slf *harnessHandler) submit(c *gin.Context) {
	problemID, ok := slf.problemID(c)
	if !ok {
		return
	}
	var req request.Submit
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.badRequest(c, err)
		return
	}
	t, ok := slf.target(c, req.Target)
	if !ok {
		return
	}

	submission, err := slf.harnessService.Submit(c.Request.Context(), problemID, t, req.Code)
	if err != nil {
		slf.fail(c, err, "Failed to submit")
		return
	}

	c.JSON(http.StatusAccepted, submission)
}

// invalidate drops cached configs and programs after a problem edit
func (slf *harnessHandler) invalidate(c *gin.Context) {
	problemID, ok := slf.problemID(c)
	if !ok {
		return
	}

	if err := slf.harnessService.Invalidate(c.Request.Context(), problemID); err != nil {
		slf.fail(c, err, "Failed to invalidate cache")
		return
	}

	c.Status(http.StatusNoContent)
}

// verdict classifies the output of an executed program
func (slf *harnessHandler) verdict(c *gin.Context) {
	var req request.Verdict
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.badRequest(c, err)
		return
	}

	if req.Expected != nil {
		c.JSON(http.StatusOK, slf.harnessService.JudgeOutput(req.Stdout, req.Stderr, *req.Expected))
		return
	}

	v, err := slf.harnessService.Judge(req.ProblemID, req.TestCaseID, req.Stdout, req.Stderr)
	if err != nil {
		slf.fail(c, err, "Failed to judge output")
		return
	}
	c.JSON(http.StatusOK, v)
}

func (slf *harnessHandler) problemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("problemId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid problem ID"})
		return 0, false
	}
	return uint(id), true
}

func (slf *harnessHandler) target(c *gin.Context, name string) (schema.Target, bool) {
	t, ok := schema.ParseTarget(name)
	if !ok {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Unknown target: " + name})
		return "", false
	}
	return t, true
}

func (slf *harnessHandler) badRequest(c *gin.Context, err error) {
	slf.logger.Error().Err(err).Str("path", c.FullPath()).Msg("Failed to parse harness request")
	c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid request", Data: pkg.ValidationMessages(err)})
}

// fail maps service and generation errors onto HTTP responses
func (slf *harnessHandler) fail(c *gin.Context, err error, msg string) {
	var he *herrors.Error
	switch {
	case errors.As(err, &he):
		slf.logger.Warn().Err(err).Str("kind", he.Kind.String()).Msg(msg)
		c.JSON(he.Kind.HTTPStatus(), response.APIError{
			Message: err.Error(),
			Data: response.HarnessErrorData{
				Kind:       he.Kind.String(),
				Violations: he.Violations,
				Details:    he.Details,
			},
		})
	case errors.Is(err, service.ErrProblemNotFound), errors.Is(err, service.ErrTestCaseNotFound):
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
	case errors.Is(err, service.ErrNoTestCases):
		c.JSON(http.StatusUnprocessableEntity, response.APIError{Message: err.Error()})
	case errors.Is(err, service.ErrDispatcherUnavailable):
		slf.logger.Error().Err(err).Msg(msg)
		c.JSON(http.StatusServiceUnavailable, response.APIError{Message: err.Error()})
	default:
		slf.logger.Error().Err(err).Msg(msg)
		c.JSON(http.StatusInternalServerError, response.APIError{Message: msg})
	}
}

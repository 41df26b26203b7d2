package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pypircgen/internal/service"
	"pypircgen/pkg/models"
)

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error string `json:"error" example:"At least one API token is required"`
}

// GenerateRequest carries the tokens to write. Both fields are optional but
// at least one must be non-blank.
type GenerateRequest struct {
	PypiToken     string `json:"pypi_token" example:"pypi-AgEIcHlwaS5vcmc..."`
	TestpypiToken string `json:"testpypi_token" example:""`
}

// GenerateResponse reports where the file was written
type GenerateResponse struct {
	Message string `json:"message" example:".pypirc file generated successfully at /home/user/.pypirc"`
	Path    string `json:"path" example:"/home/user/.pypirc"`
}

// Generator writes credential files
type Generator interface {
	Generate(ctx context.Context, source string, tokens models.CredentialSet) (string, error)
}

// Checker runs configuration checks
type Checker interface {
	Run(ctx context.Context, opts service.CheckOptions) *models.ValidationReport
}

// PypircHandler serves the credential file API
type PypircHandler struct {
	generator Generator
	checker   Checker
	logger    *slog.Logger
}

// NewPypircHandler creates a new credential file handler
func NewPypircHandler(generator Generator, checker Checker, logger *slog.Logger) *PypircHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PypircHandler{generator: generator, checker: checker, logger: logger}
}

// GeneratePypirc handles POST /generate-pypirc
// @Summary Generate a .pypirc file
// @Description Write ~/.pypirc with token credentials for PyPI and/or TestPyPI, replacing any existing file
// @Tags pypirc
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "API tokens"
// @Success 200 {object} GenerateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /generate-pypirc [post]
func (h *PypircHandler) GeneratePypirc(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(c.Request.Context(), "invalid generate request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	tokens := models.NewCredentialSet(req.PypiToken, req.TestpypiToken)
	path, err := h.generator.Generate(c.Request.Context(), "api", tokens)
	if err != nil {
		if errors.Is(err, service.ErrNoTokens) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least one API token is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate .pypirc file: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Message: ".pypirc file generated successfully at " + path,
		Path:    path,
	})
}

// CheckPypirc handles GET /api/v1/pypirc/check
// @Summary Check the .pypirc file
// @Description Validate the structure of ~/.pypirc and verify its tokens against the index servers
// @Tags pypirc
// @Produce json
// @Param probe query bool false "Run live authentication checks" default(true)
// @Success 200 {object} models.ValidationReport
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/pypirc/check [get]
func (h *PypircHandler) CheckPypirc(c *gin.Context) {
	probe := true
	if raw := c.Query("probe"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid probe parameter: " + raw})
			return
		}
		probe = parsed
	}

	report := h.checker.Run(c.Request.Context(), service.CheckOptions{SkipProbe: !probe})
	c.JSON(http.StatusOK, report)
}

// ListTargets handles GET /api/v1/targets
// @Summary List supported package indexes
// @Description List the package indexes credentials can be generated for
// @Tags pypirc
// @Produce json
// @Success 200 {array} models.TargetDefinition
// @Router /api/v1/targets [get]
func (h *PypircHandler) ListTargets(c *gin.Context) {
	c.JSON(http.StatusOK, models.DefaultTargets)
}

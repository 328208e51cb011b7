package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JGunda88/battery-trade-optimiser/internal/align"
	"github.com/JGunda88/battery-trade-optimiser/internal/api/models"
	"github.com/JGunda88/battery-trade-optimiser/internal/fileio"
	"github.com/JGunda88/battery-trade-optimiser/internal/milp"
	"github.com/JGunda88/battery-trade-optimiser/internal/runner"
)

// OptimiseHandler handles optimisation requests.
type OptimiseHandler struct {
	runner *runner.Runner
	log    zerolog.Logger
}

func NewOptimiseHandler(r *runner.Runner, log zerolog.Logger) *OptimiseHandler {
	return &OptimiseHandler{runner: r, log: log}
}

// Optimise handles POST /api/v1/optimise.
func (h *OptimiseHandler) Optimise(c *gin.Context) {
	var req models.OptimiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	jobID := uuid.NewString()
	start := time.Now()
	log := h.log.With().Str("job_id", jobID).Logger()

	resp, err := h.runner.Run(c.Request.Context(), runner.Request{
		BatteryPath:    req.BatteryCSVPath,
		HalfHourlyPath: req.MarketHalfHourlyCSVPath,
		HourlyPath:     req.MarketHourlyCSVPath,
		OutputPath:     req.ResultsOutputPath,
	})
	if err != nil {
		status, code := classify(err)
		log.Error().Err(err).Str("code", code).Msg("optimisation request failed")
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{Code: code, Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.OptimiseResponse{
		JobID:          jobID,
		JobStatus:      string(resp.JobStatus),
		ObjectiveGBP:   resp.ObjectiveGBP,
		Messages:       resp.Messages,
		Outputs:        resp.Outputs,
		JobServingTime: time.Since(start).Seconds(),
	})
}

// classify maps pipeline errors onto response classes: validation and
// alignment failures are client faults, backend failures are server faults.
func classify(err error) (int, string) {
	var inputErr *fileio.InputFileError
	var outputErr *fileio.OutputPathError
	var cfgErr *align.ConfigurationError
	var alignErr *align.AlignmentError
	var backendErr *milp.BackendError

	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, "INVALID_INPUT_FILE"
	case errors.As(err, &outputErr):
		return http.StatusBadRequest, "INVALID_OUTPUT_PATH"
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest, "CONFIGURATION_ERROR"
	case errors.As(err, &alignErr):
		return http.StatusBadRequest, "ALIGNMENT_ERROR"
	case errors.As(err, &backendErr):
		return http.StatusInternalServerError, "SOLVER_BACKEND_ERROR"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

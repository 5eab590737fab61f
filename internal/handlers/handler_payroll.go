package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kudipay/payledger/internal/core/ports/services"
	"github.com/kudipay/payledger/internal/dto"
	"github.com/kudipay/payledger/internal/middleware"
)

// payrollHandler handles HTTP requests related to payroll runs.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

// registerPayrollRoutes registers routes related to payroll runs.
func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := &payrollHandler{payrollService: payrollService}

	runs := rg.Group("/payroll-runs")
	{
		runs.POST("", h.createRun)
		runs.GET("", h.listRuns)
		runs.GET("/:id", h.getRun)
		runs.GET("/:id/entries", h.getRunEntries)
		runs.POST("/:id/close", h.closeRun)
	}
}

func (h *payrollHandler) createRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePayrollRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePayrollRun", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	run, err := h.payrollService.CreatePayrollRun(c.Request.Context(), req, actorID(c))
	if err != nil {
		logger.Warn("Failed to create payroll run", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPayrollRunResponse(run))
}

func (h *payrollHandler) getRun(c *gin.Context) {
	run, err := h.payrollService.GetPayrollRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPayrollRunResponse(run))
}

func (h *payrollHandler) getRunEntries(c *gin.Context) {
	entries, err := h.payrollService.GetRunEntries(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.RunEntryResponse, len(entries))
	for i := range entries {
		resp[i] = dto.ToRunEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, gin.H{"entries": resp})
}

func (h *payrollHandler) listRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	runs, err := h.payrollService.ListPayrollRuns(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.PayrollRunResponse, len(runs))
	for i := range runs {
		resp[i] = dto.ToPayrollRunResponse(&runs[i])
	}
	c.JSON(http.StatusOK, gin.H{"runs": resp})
}

// closeRun posts the run's journal and marks it CLOSED. Closing twice is
// safe: the second request gets the journal the first one posted.
func (h *payrollHandler) closeRun(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.payrollService.ClosePayrollRun(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		logger.Warn("Failed to close payroll run", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	resp := dto.CloseRunResponse{
		Run:           dto.ToPayrollRunResponse(result.Run),
		AlreadyClosed: result.AlreadyClosed,
		NoOp:          result.NoOp,
	}
	if result.Journal != nil {
		journal := dto.ToJournalResponse(result.Journal)
		resp.Journal = &journal
	}

	status := http.StatusCreated
	if result.AlreadyClosed || result.NoOp {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}

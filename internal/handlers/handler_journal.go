package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kudipay/payledger/internal/core/domain"
	portssvc "github.com/kudipay/payledger/internal/core/ports/services"
	"github.com/kudipay/payledger/internal/dto"
	"github.com/kudipay/payledger/internal/middleware"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// registerJournalRoutes registers routes related to journals.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:id", h.getJournal)
		journals.POST("/:id/post", h.postJournal)
		journals.POST("/:id/void", h.voidJournal)
		journals.POST("/:id/reverse", h.reverseJournal)
	}
}

func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), req, actorID(c))
	if err != nil {
		logger.Warn("Failed to create journal", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Journal created",
		slog.String("journal_id", journal.JournalID),
		slog.String("status", string(journal.Status)),
	)
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

func (h *journalHandler) getJournal(c *gin.Context) {
	journal, err := h.journalService.GetJournalByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals supports either cursor pagination or a source-reference
// lookup via the sourceKind/sourceID query pair.
func (h *journalHandler) listJournals(c *gin.Context) {
	if kind := c.Query("sourceKind"); kind != "" {
		ref := domain.SourceReference{Kind: kind, ID: c.Query("sourceID")}
		if ref.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sourceID is required with sourceKind"})
			return
		}
		journal, err := h.journalService.GetJournalBySourceRef(c.Request.Context(), ref)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journal, err := h.journalService.PostJournal(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		logger.Warn("Failed to post journal", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

func (h *journalHandler) voidJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journal, err := h.journalService.VoidJournal(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		logger.Warn("Failed to void journal", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journal, err := h.journalService.ReverseJournal(c.Request.Context(), c.Param("id"), actorID(c))
	if err != nil {
		logger.Warn("Failed to reverse journal", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Journal reversed",
		slog.String("original_journal_id", c.Param("id")),
		slog.String("reversing_journal_id", journal.JournalID),
	)
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

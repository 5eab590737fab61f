package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	portssvc "github.com/kudipay/payledger/internal/core/ports/services"
)

// JournalPostedHandler consumes journal-posted tasks. Delivery targets hang
// off this handler; today it records the event for operators.
type JournalPostedHandler struct {
	logger *slog.Logger
}

// NewJournalPostedHandler creates the handler with its logger.
func NewJournalPostedHandler(logger *slog.Logger) *JournalPostedHandler {
	return &JournalPostedHandler{logger: logger}
}

// ProcessTask handles one journal-posted notification. An unmarshalable
// payload is dropped rather than retried forever.
func (h *JournalPostedHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var n portssvc.PostingNotification
	if err := json.Unmarshal(t.Payload(), &n); err != nil {
		h.logger.Error("Dropping malformed posting notification", slog.String("error", err.Error()))
		return fmt.Errorf("unmarshal posting notification: %w: %w", err, asynq.SkipRetry)
	}

	h.logger.Info("Journal posted",
		slog.String("event_kind", n.EventKind),
		slog.String("event_id", n.EventID),
		slog.String("journal_id", n.JournalID),
		slog.String("total_amount", n.TotalAmount.StringFixed(2)),
	)
	return nil
}

// RegisterHandlers attaches all notification handlers to the worker mux.
func RegisterHandlers(mux *asynq.ServeMux, logger *slog.Logger) {
	mux.Handle(TypeJournalPosted, NewJournalPostedHandler(logger))
}

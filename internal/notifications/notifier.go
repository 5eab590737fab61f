package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	portssvc "github.com/kudipay/payledger/internal/core/ports/services"
)

// TypeJournalPosted is the task type for committed journal notifications.
const TypeJournalPosted = "ledger:journal_posted"

// AsynqNotifier enqueues posting notifications onto Redis for the worker
// process. It implements services.PostingNotifier.
type AsynqNotifier struct {
	client *asynq.Client
}

// NewAsynqNotifier creates a notifier over the given Redis connection.
func NewAsynqNotifier(redisOpt asynq.RedisClientOpt) *AsynqNotifier {
	return &AsynqNotifier{client: asynq.NewClient(redisOpt)}
}

var _ portssvc.PostingNotifier = (*AsynqNotifier)(nil)

// NotifyJournalPosted enqueues one task per posted journal. The task is
// retried by the worker on failure; enqueueing itself is best-effort from the
// caller's point of view.
func (n *AsynqNotifier) NotifyJournalPosted(ctx context.Context, notification portssvc.PostingNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal posting notification: %w", err)
	}
	task := asynq.NewTask(TypeJournalPosted, payload)
	_, err = n.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue posting notification: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (n *AsynqNotifier) Close() error {
	return n.client.Close()
}

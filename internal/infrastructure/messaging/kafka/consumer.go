package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"poscore/internal/application/bypass"
	"poscore/internal/domain/model"
	"poscore/internal/domain/repository"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// InvalidationEvent is published by the order-management backend when an
// order changes server-side: the named order's cached panel payloads can no
// longer be trusted and the category owes a fresh fetch round.
type InvalidationEvent struct {
	OrderID  string         `json:"order_id"`
	Category model.Category `json:"category"`
}

// ConsumeInvalidations drops cache entries and triggers refresh bypasses for
// order-change events arriving on the invalidation topic.
func ConsumeInvalidations(ctx context.Context, wg *sync.WaitGroup, broker, topic, groupID string, cache repository.ContextCache, coord *bypass.Coordinator, logger *zap.Logger) {
	defer wg.Done()
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
		MaxWait:  1 * time.Second,
	})
	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close Kafka reader", zap.Error(err))
		}
	}()

	logger.Info("Starting invalidation consumer", zap.String("topic", topic), zap.String("groupID", groupID))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("Invalidation consumer context canceled, stopping...")
				return
			}
			logger.Error("Failed to fetch message from Kafka", zap.Error(err))
			continue
		}

		var ev InvalidationEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			logger.Error("Failed to unmarshal invalidation event", zap.Error(err), zap.String("message", string(msg.Value)))
			if err := reader.CommitMessages(ctx, msg); err != nil {
				logger.Error("Failed to commit message", zap.Error(err))
			}
			continue
		}

		if ev.OrderID == "" || len(model.PanelsOf(ev.Category)) == 0 {
			logger.Info("Skipping malformed invalidation event",
				zap.String("order_id", ev.OrderID), zap.String("category", string(ev.Category)))
		} else {
			cache.Invalidate(ev.OrderID, model.PanelsOf(ev.Category)...)
			coord.TriggerRefresh(ev.Category)
			logger.Info("Invalidation applied",
				zap.String("order_id", ev.OrderID), zap.String("category", string(ev.Category)))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error("Failed to commit message", zap.Error(err), zap.String("order_id", ev.OrderID))
		}
	}
}

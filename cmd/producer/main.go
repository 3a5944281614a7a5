package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poscore/internal/domain/model"
	"poscore/internal/infrastructure/config"
	kafkamsg "poscore/internal/infrastructure/messaging/kafka"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	intervalFlag = flag.Duration("interval", 5*time.Second, "Time interval between messages")
	badDataRate  = flag.Float64("bad-rate", 0.2, "Rate of bad data messages")
)

func main() {
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", err)
		}
	}()

	cfg, err := config.LoadProducerConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Kafka.Broker),
		Topic:                  cfg.Kafka.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Error("Failed to close Kafka writer", zap.Error(err))
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	logger.Info("Producer started", zap.String("broker", cfg.Kafka.Broker), zap.Float64("bad_rate", *badDataRate), zap.Duration("interval", *intervalFlag))

	ticker := time.NewTicker(*intervalFlag)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping producer...")
			return
		case <-ticker.C:
			if err := produce(ctx, writer, logger); err != nil {
				logger.Error("Failed to produce message", zap.Error(err))
			}
		}
	}
}

func produce(ctx context.Context, writer *kafka.Writer, logger *zap.Logger) error {
	if rand.Float64() < *badDataRate {
		return sendGarbage(ctx, writer)
	}
	return sendInvalidation(ctx, writer, logger)
}

func sendInvalidation(ctx context.Context, writer *kafka.Writer, logger *zap.Logger) error {
	ev := generateEvent()

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := writer.WriteMessages(ctx, kafka.Message{Key: []byte(ev.OrderID), Value: payload}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	logger.Info("Invalidation sent", zap.String("order_id", ev.OrderID), zap.String("category", string(ev.Category)))
	return nil
}

func sendGarbage(ctx context.Context, writer *kafka.Writer) error {
	garbage := []byte(fmt.Sprintf(`{"order_id: "%s", "broken": true,`, gofakeit.UUID()))

	return writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(gofakeit.UUID()),
		Value: garbage,
	})
}

func generateEvent() kafkamsg.InvalidationEvent {
	categories := []string{
		string(model.CategoryProduct),
		string(model.CategoryCustomer),
		string(model.CategoryPrints),
		string(model.CategoryPayments),
		string(model.CategoryOrders),
	}
	return kafkamsg.InvalidationEvent{
		OrderID:  fmt.Sprintf("SO-%04d", gofakeit.Number(1, 9999)),
		Category: model.Category(gofakeit.RandomString(categories)),
	}
}

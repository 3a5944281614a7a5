package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"poscore/internal/domain/model"
	"poscore/internal/domain/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// tabsKey is the fixed key the registry snapshot lives under.
const tabsKey = "pos:tabs"

type snapshot struct {
	Tabs     []model.Tab `json:"tabs"`
	ActiveID string      `json:"active_id"`
}

// TabStore persists the tab registry snapshot in Redis. Cleared explicitly
// on logout.
type TabStore struct {
	client *redis.Client
	logger *zap.Logger
}

var _ repository.TabStore = (*TabStore)(nil)

func NewTabStore(addr string, logger *zap.Logger) *TabStore {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     "",
		DB:           0,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxRetries:   3,
	})

	ctx := context.Background()
	for i := range 3 {
		_, err := client.Ping(ctx).Result()
		if err == nil {
			logger.Info("Connected to Redis", zap.String("addr", addr))
			break
		}
		logger.Warn("Failed to connect to Redis, retrying...", zap.Error(err), zap.Int("attempt", i+1))
		time.Sleep(2 * time.Second)
	}
	return &TabStore{client: client, logger: logger}
}

func (s *TabStore) Save(ctx context.Context, tabs []model.Tab, activeID string) error {
	data, err := json.Marshal(snapshot{Tabs: tabs, ActiveID: activeID})
	if err != nil {
		s.logger.Error("Failed to marshal tab snapshot", zap.Error(err))
		return err
	}
	if err := s.client.Set(ctx, tabsKey, data, 0).Err(); err != nil {
		s.logger.Error("Failed to save tab snapshot to Redis", zap.Error(err))
		return fmt.Errorf("redis set failed: %w", err)
	}
	s.logger.Debug("Tab snapshot persisted", zap.Int("tabs", len(tabs)))
	return nil
}

func (s *TabStore) Load(ctx context.Context) ([]model.Tab, string, error) {
	data, err := s.client.Get(ctx, tabsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		s.logger.Info("No persisted tab snapshot")
		return nil, "", nil
	}
	if err != nil {
		s.logger.Error("Failed to get tab snapshot from Redis", zap.Error(err))
		return nil, "", fmt.Errorf("redis get failed: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Error("Failed to unmarshal tab snapshot", zap.Error(err))
		return nil, "", fmt.Errorf("unmarshal failed: %w", err)
	}
	s.logger.Info("Tab snapshot loaded", zap.Int("tabs", len(snap.Tabs)))
	return snap.Tabs, snap.ActiveID, nil
}

func (s *TabStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, tabsKey).Err(); err != nil {
		s.logger.Error("Failed to clear tab snapshot", zap.Error(err))
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (s *TabStore) Close() error {
	if err := s.client.Close(); err != nil {
		s.logger.Error("Failed to close Redis client", zap.Error(err))
		return err
	}
	return nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"RehabSense/internal/entity"
)

// IRedis caches the latest per-session metrics so other consumers (and a
// restarted frontend) can read the live scoreboard without touching the
// session's in-memory state.
type IRedis interface {
	SetSessionMetrics(ctx context.Context, sessionID string, metrics entity.SessionMetrics, expiration time.Duration) error
	GetSessionMetrics(ctx context.Context, sessionID string) (entity.SessionMetrics, error)
	DeleteSessionMetrics(ctx context.Context, sessionID string) error
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func metricsKey(sessionID string) string {
	return "workout:metrics:" + sessionID
}

func (r *redisClient) SetSessionMetrics(ctx context.Context, sessionID string, metrics entity.SessionMetrics, expiration time.Duration) error {
	payload, err := json.Marshal(metrics)
	if err != nil {
		logrus.Error(fmt.Sprintf("Error marshaling metrics for session %s: %v", sessionID, err))
		return err
	}

	if err := r.client.Set(ctx, metricsKey(sessionID), payload, expiration).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error caching metrics for session %s: %v", sessionID, err))
		return err
	}

	return nil
}

func (r *redisClient) GetSessionMetrics(ctx context.Context, sessionID string) (entity.SessionMetrics, error) {
	val, err := r.client.Get(ctx, metricsKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		logrus.Debug(fmt.Sprintf("No cached metrics for session %s", sessionID))
		return entity.SessionMetrics{}, err
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error reading cached metrics for session %s: %v", sessionID, err))
		return entity.SessionMetrics{}, err
	}

	var metrics entity.SessionMetrics
	if err := json.Unmarshal([]byte(val), &metrics); err != nil {
		logrus.Error(fmt.Sprintf("Error unmarshaling cached metrics for session %s: %v", sessionID, err))
		return entity.SessionMetrics{}, err
	}

	return metrics, nil
}

func (r *redisClient) DeleteSessionMetrics(ctx context.Context, sessionID string) error {
	if _, err := r.client.Del(ctx, metricsKey(sessionID)).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Error deleting cached metrics for session %s: %v", sessionID, err))
		return err
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-signal-scanner/internal/entity"
	"golang-signal-scanner/pkg/common"
	"golang-signal-scanner/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// redisDispatchRepository shares the dedup keyspace across processes through Redis.
type redisDispatchRepository struct {
	redisClient *redis.Client
	logger      *logger.Logger
}

// NewRedisDispatchRepository creates a DispatchRepository backed by Redis.
func NewRedisDispatchRepository(redisClient *redis.Client, log *logger.Logger) DispatchRepository {
	return &redisDispatchRepository{redisClient: redisClient, logger: log}
}

func (r *redisDispatchRepository) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := r.redisClient.SetNX(ctx, fmt.Sprintf(common.RedisKeyDispatch, key), 1, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve dispatch key %s: %w", key, err)
	}
	return ok, nil
}

func (r *redisDispatchRepository) Save(ctx context.Context, record entity.DispatchRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch record: %w", err)
	}
	if err := r.redisClient.LPush(ctx, common.RedisKeyDispatchRecords, payload).Err(); err != nil {
		return fmt.Errorf("failed to save dispatch record %s: %w", record.Key, err)
	}
	return nil
}

// List returns records newest first. Entries that fail to decode are logged and skipped.
func (r *redisDispatchRepository) List(ctx context.Context) ([]entity.DispatchRecord, error) {
	raw, err := r.redisClient.LRange(ctx, common.RedisKeyDispatchRecords, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list dispatch records: %w", err)
	}

	records := make([]entity.DispatchRecord, 0, len(raw))
	for _, item := range raw {
		var record entity.DispatchRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			r.logger.Warn("Skipping malformed dispatch record", logger.ErrorField(err))
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

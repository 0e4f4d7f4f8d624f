package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/monitoring"
)

const submissionKeyPrefix = "ppob:submission:"

type submissionRepository struct {
	redis *redis.Client
}

func NewSubmissionRepository(redisClient *redis.Client) SubmissionRepository {
	return &submissionRepository{redis: redisClient}
}

func submissionKey(requestID string) string {
	return submissionKeyPrefix + requestID
}

func (r *submissionRepository) Get(ctx context.Context, requestID string) (rec models.SubmissionRecord, found bool, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	val, err := r.redis.Get(ctx, submissionKey(requestID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return rec, false, nil
		}
		return rec, false, err
	}

	if err = json.Unmarshal([]byte(val), &rec); err != nil {
		return rec, false, fmt.Errorf("corrupt submission record for %s: %w", requestID, err)
	}

	return rec, true, nil
}

func (r *submissionRepository) Save(ctx context.Context, rec models.SubmissionRecord, ttl time.Duration) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	rec.UpdatedAt = time.Now()

	val, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return r.redis.Set(ctx, submissionKey(rec.RequestID), string(val), ttl).Err()
}

func (r *submissionRepository) SetInFlight(ctx context.Context, rec models.SubmissionRecord, ttl time.Duration) (claimed bool, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	rec.Status = models.SubmissionInFlight
	rec.UpdatedAt = time.Now()

	val, err := json.Marshal(rec)
	if err != nil {
		return false, err
	}

	return r.redis.SetNX(ctx, submissionKey(rec.RequestID), string(val), ttl).Result()
}

func (r *submissionRepository) Delete(ctx context.Context, requestID string) error {
	return r.redis.Del(ctx, submissionKey(requestID)).Err()
}

// ListAmbiguous walks all submission records and returns those awaiting
// status reconciliation.
func (r *submissionRepository) ListAmbiguous(ctx context.Context) (out []models.SubmissionRecord, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	iter := r.redis.Scan(ctx, 0, submissionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		val, err := r.redis.Get(ctx, iter.Val()).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}

		var rec models.SubmissionRecord
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			continue
		}

		if rec.Status == models.SubmissionAmbiguous {
			out = append(out, rec)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

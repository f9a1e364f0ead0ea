package redisstore

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vytor/funzone/internal/logger"
	"github.com/vytor/funzone/internal/models"
	"github.com/vytor/funzone/internal/repository"
)

// writeBest replaces the stored value only when the candidate is strictly
// better. KEYS: values hash, timestamps hash. ARGV: field, candidate,
// lower-is-better flag, timestamp in unix ms.
var writeBest = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], ARGV[1])
local cand = tonumber(ARGV[2])
if cur then
  cur = tonumber(cur)
  local better = cand > cur
  if ARGV[3] == '1' then better = cand < cur end
  if not better then
    local at = redis.call('HGET', KEYS[2], ARGV[1]) or '0'
    return {cur, tonumber(at), 0}
  end
end
redis.call('HSET', KEYS[1], ARGV[1], cand)
redis.call('HSET', KEYS[2], ARGV[1], ARGV[4])
return {cand, tonumber(ARGV[4]), 1}
`)

type scoreRepository struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewScoreRepository stores each visitor's scores in two hashes keyed by
// prefix and visitor, with "game:key" fields.
func NewScoreRepository(client redis.UniversalClient, prefix string) repository.ScoreRepository {
	if prefix == "" {
		prefix = "funzone"
	}
	return &scoreRepository{client: client, prefix: prefix, now: time.Now}
}

func (r *scoreRepository) keys(visitorID string) (string, string) {
	return r.prefix + ":best:" + visitorID, r.prefix + ":best_at:" + visitorID
}

func field(gameID, key string) string { return gameID + ":" + key }

func (r *scoreRepository) Get(ctx context.Context, visitorID, gameID, key string) (*models.ScoreRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("redis_score_repo")
	values, stamps := r.keys(visitorID)
	f := field(gameID, key)

	v, err := r.client.HGet(ctx, values, f).Int()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to get best score: %v", err)
		return nil, err
	}
	at, err := r.client.HGet(ctx, stamps, f).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Error("failed to get best score timestamp: %v", err)
		return nil, err
	}
	return &models.ScoreRecord{VisitorID: visitorID, GameID: gameID, Key: key, Value: v, UpdatedAt: time.UnixMilli(at).UTC()}, nil
}

func (r *scoreRepository) Write(ctx context.Context, rec models.ScoreRecord, lowerIsBetter bool) (*models.ScoreRecord, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("redis_score_repo")
	log.Debug("writing best score candidate: game=%s, key=%s, value=%d", rec.GameID, rec.Key, rec.Value)

	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = r.now().UTC()
	}
	flag := "0"
	if lowerIsBetter {
		flag = "1"
	}
	values, stamps := r.keys(rec.VisitorID)
	out, err := writeBest.Run(ctx, r.client, []string{values, stamps},
		field(rec.GameID, rec.Key), rec.Value, flag, rec.UpdatedAt.UnixMilli()).Int64Slice()
	if err != nil {
		log.Error("failed to write best score: %v", err)
		return nil, false, err
	}
	if len(out) != 3 {
		return nil, false, errors.New("unexpected script reply")
	}
	stored := &models.ScoreRecord{
		VisitorID: rec.VisitorID,
		GameID:    rec.GameID,
		Key:       rec.Key,
		Value:     int(out[0]),
		UpdatedAt: time.UnixMilli(out[1]).UTC(),
	}
	return stored, out[2] == 1, nil
}

func (r *scoreRepository) List(ctx context.Context, visitorID string) ([]models.ScoreRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("redis_score_repo")
	values, stamps := r.keys(visitorID)

	vals, err := r.client.HGetAll(ctx, values).Result()
	if err != nil {
		log.Error("failed to list best scores: %v", err)
		return nil, err
	}
	ats, err := r.client.HGetAll(ctx, stamps).Result()
	if err != nil {
		log.Error("failed to list best score timestamps: %v", err)
		return nil, err
	}

	records := make([]models.ScoreRecord, 0, len(vals))
	for f, raw := range vals {
		gameID, key, ok := strings.Cut(f, ":")
		if !ok {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("skipping malformed score %s=%q", f, raw)
			continue
		}
		at, _ := strconv.ParseInt(ats[f], 10, 64)
		records = append(records, models.ScoreRecord{
			VisitorID: visitorID,
			GameID:    gameID,
			Key:       key,
			Value:     v,
			UpdatedAt: time.UnixMilli(at).UTC(),
		})
	}
	sortRecords(records)
	return records, nil
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"surveytoolkit/internal/model"
)

// SummaryCache handles Redis operations for computed survey views.
// Entries of a survey are dropped together when its results change.
type SummaryCache interface {
	GetSummary(ctx context.Context, surveyID, language string) ([]model.Summary, error)
	SetSummary(ctx context.Context, surveyID, language string, summaries []model.Summary) error

	GetMetadata(ctx context.Context, surveyID string, opts model.MetadataOptions) ([]model.VariableMetadata, error)
	SetMetadata(ctx context.Context, surveyID string, opts model.MetadataOptions, meta []model.VariableMetadata) error

	Invalidate(ctx context.Context, surveyID string) error
}

type summaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new summary cache
func NewSummaryCache(client *redis.Client, ttl time.Duration) SummaryCache {
	return &summaryCache{
		client: client,
		ttl:    ttl,
	}
}

// Key helpers
func summaryKey(surveyID, language string) string {
	return fmt.Sprintf("survey:%s:summary:%s", surveyID, language)
}

func metadataKey(surveyID string, opts model.MetadataOptions) string {
	return fmt.Sprintf("survey:%s:metadata:d%t:o%t", surveyID, opts.ToDummies, opts.Optimize)
}

// keysKey is the set of every cached key of a survey
func keysKey(surveyID string) string {
	return fmt.Sprintf("survey:%s:keys", surveyID)
}

func (c *summaryCache) GetSummary(ctx context.Context, surveyID, language string) ([]model.Summary, error) {
	var out []model.Summary
	found, err := c.get(ctx, summaryKey(surveyID, language), &out)
	if err != nil || !found {
		return nil, err
	}
	return out, nil
}

func (c *summaryCache) SetSummary(ctx context.Context, surveyID, language string, summaries []model.Summary) error {
	return c.set(ctx, surveyID, summaryKey(surveyID, language), summaries)
}

func (c *summaryCache) GetMetadata(ctx context.Context, surveyID string, opts model.MetadataOptions) ([]model.VariableMetadata, error) {
	var out []model.VariableMetadata
	found, err := c.get(ctx, metadataKey(surveyID, opts), &out)
	if err != nil || !found {
		return nil, err
	}
	return out, nil
}

func (c *summaryCache) SetMetadata(ctx context.Context, surveyID string, opts model.MetadataOptions, meta []model.VariableMetadata) error {
	return c.set(ctx, surveyID, metadataKey(surveyID, opts), meta)
}

func (c *summaryCache) Invalidate(ctx context.Context, surveyID string) error {
	keys, err := c.client.SMembers(ctx, keysKey(surveyID)).Result()
	if err != nil {
		return err
	}
	keys = append(keys, keysKey(surveyID))
	return c.client.Del(ctx, keys...).Err()
}

func (c *summaryCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *summaryCache) set(ctx context.Context, surveyID, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, c.ttl)
		pipe.SAdd(ctx, keysKey(surveyID), key)
		pipe.Expire(ctx, keysKey(surveyID), c.ttl)
		return nil
	})
	return err
}

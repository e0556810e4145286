package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const leadDedupePrefix = "lead_dedupe:"

// LeadDeduper remembers recent submissions in Redis with a TTL.
type LeadDeduper struct {
	client *redis.Client
	window time.Duration
}

func NewLeadDeduper(client *redis.Client, window time.Duration) *LeadDeduper {
	return &LeadDeduper{client: client, window: window}
}

// Claim sets the key if absent and reports whether this call set it.
func (d *LeadDeduper) Claim(ctx context.Context, key string) (bool, error) {
	return d.client.SetNX(ctx, leadDedupePrefix+key, 1, d.window).Result()
}

func (d *LeadDeduper) Release(ctx context.Context, key string) error {
	return d.client.Del(ctx, leadDedupePrefix+key).Err()
}

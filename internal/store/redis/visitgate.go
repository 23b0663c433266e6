package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// VisitGate answers "is this the first hit for this key inside the
// cooldown window?" backed by Redis SET NX with a TTL. The SET is atomic,
// so concurrent hits from the same session cannot both pass.
type VisitGate struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*VisitGate, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &VisitGate{client: client}, nil
}

func (g *VisitGate) Close() error {
	if err := g.client.Close(); err != nil {
		return fmt.Errorf("redis.VisitGate.Close: %w", err)
	}
	return nil
}

// FirstSeen reports true when the key was not present; the key then stays
// set for ttl, after which the next hit counts as first again.
func (g *VisitGate) FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis.VisitGate.FirstSeen: %w", err)
	}
	return ok, nil
}

// VisitKey returns the dedup key for one session viewing one path.
func VisitKey(sessionID uuid.UUID, path string) string {
	return "visit:" + sessionID.String() + ":" + path
}

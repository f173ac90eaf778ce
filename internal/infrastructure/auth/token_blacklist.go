package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records revoked token ids (jti) until the moment the token
// would have expired on its own. Logout writes to it; the JWT middleware
// reads it.
type TokenBlacklist interface {
	// Revoke marks jti as revoked until the given instant. Instants in the
	// past are ignored.
	Revoke(ctx context.Context, jti string, until time.Time) error

	// IsRevoked reports whether jti is currently revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const revokedKeyPrefix = "lawai:token:revoked:"

// RedisTokenBlacklistConfig holds the Redis connection settings
type RedisTokenBlacklistConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisTokenBlacklist keeps one expiring key per revoked token, so entries
// vanish with the token and are shared by every server instance.
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewRedisTokenBlacklist connects to Redis and verifies the connection
func NewRedisTokenBlacklist(cfg RedisTokenBlacklistConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisTokenBlacklistWithClient(client), nil
}

// NewRedisTokenBlacklistWithClient wraps an existing client
func NewRedisTokenBlacklistWithClient(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// Revoke implements TokenBlacklist
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, revokedKeyPrefix+jti, until.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked implements TokenBlacklist
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to read token revocation: %w", err)
	}
	return n > 0, nil
}

// Close closes the Redis client
func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

// InMemoryTokenBlacklist is used when Redis is disabled. Revocations do not
// survive a restart and are not shared between instances.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewInMemoryTokenBlacklist creates an empty in-memory blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke implements TokenBlacklist. Expired entries are swept on each call.
func (b *InMemoryTokenBlacklist) Revoke(_ context.Context, jti string, until time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for id, exp := range b.revoked {
		if !now.Before(exp) {
			delete(b.revoked, id)
		}
	}
	if until.After(now) {
		b.revoked[jti] = until
	}
	return nil
}

// IsRevoked implements TokenBlacklist
func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	until, ok := b.revoked[jti]
	return ok && b.now().Before(until), nil
}

// Len returns the number of tracked revocations
func (b *InMemoryTokenBlacklist) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.revoked)
}

var (
	_ TokenBlacklist = (*RedisTokenBlacklist)(nil)
	_ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
)

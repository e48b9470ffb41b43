package archive

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tenantdex/internal/db"
	"github.com/kailas-cloud/tenantdex/internal/domain"
	"github.com/kailas-cloud/tenantdex/internal/domain/upload"
)

// DefaultKeyPrefix namespaces archive keys.
const DefaultKeyPrefix = "tenantdex:"

// store is the consumer interface for the archive (ISP).
type store interface {
	Ping(ctx context.Context) error
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repository keeps raw uploads in a key-value store.
type Repository struct {
	store  store
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// New creates an archive repository. ttl <= 0 keeps records forever.
func New(s store, prefix string, ttl time.Duration, logger *zap.Logger) *Repository {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{store: s, prefix: prefix + "upload:", ttl: ttl, logger: logger}
}

func (r *Repository) key(id string) string { return r.prefix + id }

// Ping checks the underlying store.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrArchiveUnavailable, err)
	}
	return nil
}

// Save stores an upload under its id.
func (r *Repository) Save(ctx context.Context, u upload.Upload) error {
	data, err := encode(u)
	if err != nil {
		return fmt.Errorf("encode upload %s: %w", u.ID, err)
	}
	if err := r.store.SetWithTTL(ctx, r.key(u.ID), data, r.ttl); err != nil {
		return fmt.Errorf("%w: save %s: %w", domain.ErrArchiveUnavailable, u.ID, err)
	}
	return nil
}

// Purge removes every archived upload and returns how many records were deleted.
// Deletion stops at the first store error.
func (r *Repository) Purge(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return 0, fmt.Errorf("%w: scan: %w", domain.ErrArchiveUnavailable, err)
	}
	for i, k := range keys {
		if err := r.store.Del(ctx, k); err != nil {
			return i, fmt.Errorf("%w: delete %s: %w", domain.ErrArchiveUnavailable, k, err)
		}
	}
	if len(keys) > 0 {
		r.logger.Debug("Archive purged", zap.Int("records", len(keys)))
	}
	return len(keys), nil
}

// List returns every archived upload ordered by receive time.
// Records that vanish or fail to decode are skipped.
func (r *Repository) List(ctx context.Context) ([]upload.Upload, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("%w: scan: %w", domain.ErrArchiveUnavailable, err)
	}

	out := make([]upload.Upload, 0, len(keys))
	for _, k := range keys {
		data, err := r.store.Get(ctx, k)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("%w: get %s: %w", domain.ErrArchiveUnavailable, k, err)
		}
		u, err := decode(data)
		if err != nil {
			r.logger.Warn("Skipping unreadable archive record", zap.String("key", k), zap.Error(err))
			continue
		}
		out = append(out, u)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ReceivedAt.Equal(out[j].ReceivedAt) {
			return out[i].ReceivedAt.Before(out[j].ReceivedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

package implementations

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"

	"ycsbgen/benchmark"
)

const cscTTL = 10 * time.Minute

// RueidisStore is a benchmark.Store backed by Rueidis client-side caching:
// reads are issued through DoCache so Rueidis tracks invalidation itself,
// with no separate pub/sub channel required.
type RueidisStore struct {
	client        rueidis.Client
	keyCountLimit int
	addr          string
}

// NewRueidisStore builds a RueidisStore against addr, sizing the
// client-side cache for keyCountLimit keys.
func NewRueidisStore(addr string, keyCountLimit int) *RueidisStore {
	return &RueidisStore{addr: addr, keyCountLimit: keyCountLimit}
}

func (s *RueidisStore) Name() string {
	return "Rueidis Client-Side Caching"
}

func (s *RueidisStore) Init(ctx context.Context) error {
	var err error
	s.client, err = rueidis.NewClient(rueidis.ClientOption{
		InitAddress:       []string{s.addr},
		CacheSizeEachConn: s.keyCountLimit,
	})
	return err
}

func (s *RueidisStore) Close(ctx context.Context) error {
	s.client.Close()
	return nil
}

func (s *RueidisStore) Read(ctx context.Context, key string, field uint64) (value string, hit bool, err error) {
	cacheKey := fieldKey(key, field)
	cmd := s.client.B().Get().Key(cacheKey).Cache()
	resp := s.client.DoCache(ctx, cmd, cscTTL)

	if err = resp.Error(); err == nil {
		value, err = resp.ToString()
	}
	return value, resp.IsCacheHit(), err
}

func (s *RueidisStore) Update(ctx context.Context, key string, field uint64, value string) error {
	cacheKey := fieldKey(key, field)
	return s.client.Do(ctx, s.client.B().Set().Key(cacheKey).Value(value).Build()).Error()
}

func (s *RueidisStore) Insert(ctx context.Context, key string, field uint64, value string) error {
	return s.Update(ctx, key, field, value)
}

func (s *RueidisStore) Scan(ctx context.Context, startKey string, count uint64) ([]string, error) {
	start, err := strconv.ParseUint(startKey, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("rueidis store: scan start key %q is not numeric: %w", startKey, err)
	}

	values := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		value, hit, err := s.Read(ctx, strconv.FormatUint(start+i, 10), 0)
		if err != nil {
			continue
		}
		if hit || value != "" {
			values = append(values, value)
		}
	}
	return values, nil
}

func (s *RueidisStore) ReadModifyWrite(ctx context.Context, key string, field uint64, value string) (old string, err error) {
	old, _, err = s.Read(ctx, key, field)
	if err != nil && !rueidis.IsRedisNil(err) {
		return "", err
	}
	if writeErr := s.Update(ctx, key, field, value); writeErr != nil {
		return old, writeErr
	}
	return old, nil
}

func (s *RueidisStore) Delete(ctx context.Context, key string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(fieldKey(key, 0)).Build()).Error()
}

var _ benchmark.Store = (*RueidisStore)(nil)

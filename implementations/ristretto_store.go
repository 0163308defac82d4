// Package implementations provides concrete benchmark.Store backends that
// a cmd/ycsbgen run can drive: an in-process Ristretto cache fronting Redis
// with pub/sub invalidation, and a Rueidis client-side-caching client.
package implementations

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/dgraph-io/ristretto"
	"github.com/redis/rueidis"

	"ycsbgen/benchmark"
)

const invalidationChannel = "ycsbgen-invalidation"

// RistrettoStore fronts Redis with an in-process Ristretto L1 cache,
// invalidated via Redis pub/sub whenever a write lands. Every
// benchmark.Store operation addresses one field of a record as the Redis
// key "<key>:<field>".
type RistrettoStore struct {
	l1Cache       *ristretto.Cache
	redisClient   rueidis.Client
	pubsubClient  rueidis.Client
	cancelBgTasks context.CancelFunc
	maxCost       int64
	redisAddr     string
}

type invalidationMessage struct {
	Key string `json:"key"`
}

// NewRistrettoStore builds a RistrettoStore with an L1 budget of maxCost
// bytes against the Redis instance at redisAddr.
func NewRistrettoStore(maxCost int64, redisAddr string) *RistrettoStore {
	return &RistrettoStore{maxCost: maxCost, redisAddr: redisAddr}
}

func (s *RistrettoStore) Name() string {
	return "Ristretto L1 + Redis Pub/Sub"
}

func (s *RistrettoStore) Init(ctx context.Context) error {
	var err error
	s.l1Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     s.maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}

	s.redisClient, err = rueidis.NewClient(rueidis.ClientOption{InitAddress: []string{s.redisAddr}})
	if err != nil {
		return err
	}
	s.pubsubClient, err = rueidis.NewClient(rueidis.ClientOption{InitAddress: []string{s.redisAddr}})
	if err != nil {
		return err
	}

	bgCtx, cancel := context.WithCancel(context.Background())
	s.cancelBgTasks = cancel
	go s.listenForInvalidations(bgCtx)

	return nil
}

func (s *RistrettoStore) Close(ctx context.Context) error {
	s.cancelBgTasks()
	s.l1Cache.Close()
	s.redisClient.Close()
	s.pubsubClient.Close()
	return nil
}

func (s *RistrettoStore) Read(ctx context.Context, key string, field uint64) (value string, hit bool, err error) {
	cacheKey := fieldKey(key, field)
	if val, found := s.l1Cache.Get(cacheKey); found {
		return val.(string), true, nil
	}

	value, err = s.redisClient.Do(ctx, s.redisClient.B().Get().Key(cacheKey).Build()).ToString()
	if err == nil {
		s.l1Cache.Set(cacheKey, value, int64(len(value)))
	}
	return value, false, err
}

func (s *RistrettoStore) Update(ctx context.Context, key string, field uint64, value string) error {
	return s.writeAndInvalidate(ctx, fieldKey(key, field), value)
}

func (s *RistrettoStore) Insert(ctx context.Context, key string, field uint64, value string) error {
	return s.writeAndInvalidate(ctx, fieldKey(key, field), value)
}

func (s *RistrettoStore) Scan(ctx context.Context, startKey string, count uint64) ([]string, error) {
	start, err := strconv.ParseUint(startKey, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ristretto store: scan start key %q is not numeric: %w", startKey, err)
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

func (s *RistrettoStore) ReadModifyWrite(ctx context.Context, key string, field uint64, value string) (old string, err error) {
	old, _, err = s.Read(ctx, key, field)
	if err != nil && !rueidis.IsRedisNil(err) {
		return "", err
	}
	if writeErr := s.Update(ctx, key, field, value); writeErr != nil {
		return old, writeErr
	}
	return old, nil
}

func (s *RistrettoStore) Delete(ctx context.Context, key string) error {
	cacheKey := fieldKey(key, 0)
	s.l1Cache.Del(cacheKey)
	return s.redisClient.Do(ctx, s.redisClient.B().Del().Key(cacheKey).Build()).Error()
}

func (s *RistrettoStore) writeAndInvalidate(ctx context.Context, cacheKey, value string) error {
	if err := s.redisClient.Do(ctx, s.redisClient.B().Set().Key(cacheKey).Value(value).Build()).Error(); err != nil {
		return err
	}

	msg, _ := json.Marshal(invalidationMessage{Key: cacheKey})
	return s.redisClient.Do(ctx, s.redisClient.B().Publish().Channel(invalidationChannel).Message(string(msg)).Build()).Error()
}

func (s *RistrettoStore) listenForInvalidations(ctx context.Context) {
	err := s.pubsubClient.Receive(ctx, s.pubsubClient.B().Subscribe().Channel(invalidationChannel).Build(), func(msg rueidis.PubSubMessage) {
		var inval invalidationMessage
		if err := json.Unmarshal([]byte(msg.Message), &inval); err == nil && inval.Key != "" {
			s.l1Cache.Del(inval.Key)
		}
	})
	if err != nil && err != context.Canceled {
		log.Printf("ristretto store: pub/sub listener error: %v", err)
	}
}

func fieldKey(key string, field uint64) string {
	return key + ":" + strconv.FormatUint(field, 10)
}

var _ benchmark.Store = (*RistrettoStore)(nil)

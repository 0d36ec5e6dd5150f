package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"photostudio-server/models"
)

// Draft key per client: draft:booking:{client_email}
const keyBookingDraft = "draft:booking:%s"

// DraftTTL is how long an abandoned draft stays resumable
var DraftTTL = 24 * time.Hour

// DraftStore is the pluggable storage backend behind the resumable-draft
// capability: Redis in production, in-memory in tests.
type DraftStore interface {
	Save(ctx context.Context, key string, envelope models.DraftEnvelope) error
	Load(ctx context.Context, key string) (*models.DraftEnvelope, error)
	Clear(ctx context.Context, key string) error
}

// RedisDraftStore keeps drafts in Redis. The TTL doubles as a hard expiry so
// stale envelopes disappear even if nobody loads them.
type RedisDraftStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDraftStore(rdb *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{rdb: rdb, ttl: ttl}
}

func (s *RedisDraftStore) Save(ctx context.Context, key string, envelope models.DraftEnvelope) error {
	data, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, s.ttl).Err()
}

func (s *RedisDraftStore) Load(ctx context.Context, key string) (*models.DraftEnvelope, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var envelope models.DraftEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

func (s *RedisDraftStore) Clear(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// MemoryDraftStore is the in-memory DraftStore used in tests
type MemoryDraftStore struct {
	mu    sync.RWMutex
	items map[string]models.DraftEnvelope
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{items: make(map[string]models.DraftEnvelope)}
}

func (s *MemoryDraftStore) Save(ctx context.Context, key string, envelope models.DraftEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = envelope
	return nil
}

func (s *MemoryDraftStore) Load(ctx context.Context, key string) (*models.DraftEnvelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	envelope, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	return &envelope, nil
}

func (s *MemoryDraftStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// DraftService wraps a DraftStore with the envelope timestamping and the
// expiry policy.
type DraftService struct {
	store DraftStore
	ttl   time.Duration
	now   func() time.Time
}

func NewDraftService(store DraftStore, ttl time.Duration) *DraftService {
	return &DraftService{store: store, ttl: ttl, now: time.Now}
}

// WithClock overrides the clock, for tests
func (d *DraftService) WithClock(now func() time.Time) *DraftService {
	d.now = now
	return d
}

func draftKey(clientEmail string) string {
	return fmt.Sprintf(keyBookingDraft, strings.ToLower(strings.TrimSpace(clientEmail)))
}

// Save overwrites the client's draft with a fresh capture timestamp
func (d *DraftService) Save(ctx context.Context, clientEmail string, draft models.BookingDraft) error {
	envelope := models.DraftEnvelope{
		Data:    draft,
		SavedAt: d.now().Unix(),
	}
	return d.store.Save(ctx, draftKey(clientEmail), envelope)
}

// Load returns the client's draft, or nil when none exists or the saved one
// is 24 hours old or more. A stale draft is cleared so it is not offered
// again.
func (d *DraftService) Load(ctx context.Context, clientEmail string) (*models.BookingDraft, error) {
	key := draftKey(clientEmail)
	envelope, err := d.store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if envelope == nil {
		return nil, nil
	}

	age := d.now().Sub(time.Unix(envelope.SavedAt, 0))
	if age >= d.ttl {
		log.Printf("⏰ Discarding stale booking draft for %s (age %s)", clientEmail, age)
		if err := d.store.Clear(ctx, key); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &envelope.Data, nil
}

// Clear removes the client's draft, e.g. after a successful submission
func (d *DraftService) Clear(ctx context.Context, clientEmail string) error {
	return d.store.Clear(ctx, draftKey(clientEmail))
}

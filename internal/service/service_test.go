package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/illineats/backend/internal/schedule"
	"github.com/illineats/backend/internal/testhelpers"
)

const (
	ike       = "Ikenberry Dining Center (Ike)"
	isr       = "Illinois Street Dining Center (ISR)"
	infinitea = "InfiniTEA"
	yesterday = "Sunday, October 6, 2024"
	today     = "Monday, October 7, 2024"
	tomorrow  = "Tuesday, October 8, 2024"
)

type env struct {
	db       *gorm.DB
	schedule *schedule.Schedule
	now      time.Time
	clock    Clock
}

// newEnv opens a fresh database with the clock at 11:00 on Monday, October 7, 2024,
// when Ike lunch is being served.
func newEnv(t *testing.T) *env {
	t.Helper()
	s, err := schedule.Default()
	require.NoError(t, err)
	now := time.Date(2024, time.October, 7, 11, 0, 0, 0, s.Location())
	return &env{
		db:       testhelpers.SetupTestDB(t),
		schedule: s,
		now:      now,
		clock:    func() time.Time { return now },
	}
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[uuid.UUID]cached
	invalidated []uuid.UUID
	err         error
}

type cached struct {
	day string
	ids []uuid.UUID
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[uuid.UUID]cached)}
}

func (c *fakeCache) Get(ctx context.Context, userID uuid.UUID, day string) ([]uuid.UUID, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, false, c.err
	}
	e, ok := c.entries[userID]
	if !ok || e.day != day {
		return nil, false, nil
	}
	return e.ids, true, nil
}

func (c *fakeCache) Set(ctx context.Context, userID uuid.UUID, day string, ids []uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.entries[userID] = cached{day: day, ids: ids}
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, userID)
	delete(c.entries, userID)
	return c.err
}

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = buf.Bytes()
	return "https://cdn.test/" + key, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[key]; !ok {
		return errors.New("no such key")
	}
	delete(s.objects, key)
	return nil
}

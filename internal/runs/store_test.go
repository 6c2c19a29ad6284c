package runs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPutGet(t *testing.T) {
	s := NewStore(time.Hour, time.Hour)
	defer s.Close()

	r := s.Put(KindTatonnement, "params", 42)
	require.NotEmpty(t, r.ID)

	got, ok := s.Get(r.ID)
	require.True(t, ok)
	assert.Equal(t, KindTatonnement, got.Kind)
	assert.Equal(t, 42, got.Result)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	s := NewStore(time.Minute, time.Hour)
	defer s.Close()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	now := base
	s.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}

	r := s.Put(KindSticky, nil, nil)
	mu.Lock()
	now = base.Add(2 * time.Minute)
	mu.Unlock()

	_, ok := s.Get(r.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	s.sweep()
	assert.Equal(t, 0, s.Len())
}

func TestSweeperRuns(t *testing.T) {
	s := NewStore(time.Nanosecond, time.Millisecond)
	defer s.Close()

	s.Put(KindEquilibrium, nil, nil)
	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNilStore(t *testing.T) {
	var s *Store
	r := s.Put(KindProduction, nil, nil)
	assert.NotEmpty(t, r.ID)
	_, ok := s.Get(r.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	s.Clear()
	s.Close()
}

func TestCloseIsIdempotent(t *testing.T) {
	s := NewStore(time.Hour, time.Hour)
	s.Close()
	s.Close()
}

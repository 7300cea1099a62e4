package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryService(t *testing.T) {
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	m := NewMemoryService()
	m.now = func() time.Time { return now }

	_, err := m.Get("block")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, m.Set("block", []byte("1"), 5*time.Minute))
	v, err := m.Get("block")
	require.NoError(t, err)
	assert.Equal(t, "1", string(v))

	now = now.Add(5 * time.Minute)
	_, err = m.Get("block")
	assert.ErrorIs(t, err, ErrMiss, "expired entries miss")

	require.NoError(t, m.Set("forever", []byte("x"), 0))
	now = now.Add(24 * time.Hour)
	_, err = m.Get("forever")
	assert.NoError(t, err)

	require.NoError(t, m.Delete("forever"))
	_, err = m.Get("forever")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryServiceCopiesValue(t *testing.T) {
	m := NewMemoryService()
	buf := []byte("abc")
	require.NoError(t, m.Set("k", buf, time.Minute))
	buf[0] = 'z'

	v, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(v))
}

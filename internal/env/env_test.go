package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	t.Setenv("CANTEEN_TEST_STR", "value")
	t.Setenv("CANTEEN_TEST_INT", "42")
	t.Setenv("CANTEEN_TEST_BAD_INT", "forty")
	t.Setenv("CANTEEN_TEST_BOOL", "true")
	t.Setenv("CANTEEN_TEST_DUR", "90s")
	t.Setenv("CANTEEN_TEST_URL", "http://backend:5000/api/")

	assert.Equal(t, "value", GetEnv("CANTEEN_TEST_STR", "def"))
	assert.Equal(t, "def", GetEnv("CANTEEN_TEST_MISSING", "def"))
	assert.Equal(t, 42, GetInt("CANTEEN_TEST_INT", 1))
	assert.Equal(t, 1, GetInt("CANTEEN_TEST_BAD_INT", 1))
	assert.True(t, GetBool("CANTEEN_TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, GetDuration("CANTEEN_TEST_DUR", time.Second))
	assert.Equal(t, time.Second, GetDuration("CANTEEN_TEST_MISSING", time.Second))
	assert.Equal(t, "http://backend:5000/api", GetURL("CANTEEN_TEST_URL", ""))
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, ":8080", DefaultListenAddr)
	assert.Equal(t, "http://localhost:5000/api", DefaultAPIBaseURL)
	assert.Equal(t, "loc-1", DefaultLocationID)
	assert.Equal(t, "./internal/databases/web.db", DefaultSQLitePath)
	assert.Equal(t, "redis://localhost:6379/2", DefaultRedisURL)
}

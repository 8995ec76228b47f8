package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("STOREFRONT_TEST_INT", "42")
	t.Setenv("STOREFRONT_TEST_BOOL", "true")
	t.Setenv("STOREFRONT_TEST_DURATION", "3s")
	t.Setenv("STOREFRONT_TEST_EMPTY", "")

	assert.Equal(t, 42, GetEnv("STOREFRONT_TEST_INT", 1))
	assert.True(t, GetEnv("STOREFRONT_TEST_BOOL", false))
	assert.Equal(t, 3*time.Second, GetEnv("STOREFRONT_TEST_DURATION", time.Second))
	assert.Equal(t, "fallback", GetEnv("STOREFRONT_TEST_EMPTY", "fallback"))
	assert.Equal(t, 1.5, GetEnv("STOREFRONT_TEST_MISSING", 1.5))
}

func TestGetEnv_InvalidValuePanics(t *testing.T) {
	t.Setenv("STOREFRONT_TEST_INT", "forty-two")

	assert.Panics(t, func() { GetEnv("STOREFRONT_TEST_INT", 1) })
}

func TestGetFirstEnv(t *testing.T) {
	t.Setenv("STOREFRONT_TEST_ALIAS", "postgres://alias")

	assert.Equal(t, "postgres://alias", GetFirstEnv("", "STOREFRONT_TEST_PRIMARY", "STOREFRONT_TEST_ALIAS"))
	assert.Equal(t, "default", GetFirstEnv("default", "STOREFRONT_TEST_PRIMARY"))
}

package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPHeadersExtractor(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", " 10.0.0.1 ")
	r.Header.Set("X-Tenant", "acme")

	got, err := NewHTTPHeadersExtractor("X-Forwarded-For", "X-Tenant").Extract(r)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1-acme", got)

	_, err = NewHTTPHeadersExtractor("X-Missing").Extract(r)
	assert.EqualError(t, err, "the header X-Missing must have a value set")
}

func TestRequestIDExtractor(t *testing.T) {
	extractor := NewRequestIDExtractor("X-Request-Id")

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Request-Id", "abc-123")
	got, err := extractor.Extract(r)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", got)

	generated, err := extractor.Extract(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	_, err = uuid.Parse(generated)
	assert.NoError(t, err, "a missing header yields a generated UUID")
}

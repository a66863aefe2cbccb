package cldr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"supplemental": {"likelySubtags": {"fi": "fi-Latn-FI", "et": "et-Latn-EE"}}}`))
	}))
	defer server.Close()

	data, n, err := NewClient(server.URL, "").Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, string(data), "fi-Latn-FI")
}

func TestFetchRejectsGarbage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>rate limited</html>`))
	}))
	defer server.Close()

	_, _, err := NewClient(server.URL, "").Fetch(context.Background())
	assert.Error(t, err)
}

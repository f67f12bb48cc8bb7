package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rates.yaml")
		require.NoError(t, os.WriteFile(path, []byte("name: test\n"), 0o600))

		b, err := Fetch(ctx, path, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "name: test\n", string(b))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Fetch(ctx, filepath.Join(t.TempDir(), "missing.yaml"), time.Second)
		assert.Error(t, err)
	})

	t.Run("url", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("name: remote\n"))
		}))
		defer server.Close()

		b, err := Fetch(ctx, server.URL, time.Second)
		require.NoError(t, err)
		assert.Equal(t, "name: remote\n", string(b))
	})

	t.Run("url error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := Fetch(ctx, server.URL, time.Second)
		assert.Error(t, err)
	})
}

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigsight/gaslog-cli/internal/fetcher"
)

func TestFetchWithETag_SkipsUnchanged(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Write([]byte("well,depth,tg")) //nolint:errcheck
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "export.csv")
	hf := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{RequestsPerSec: 100})

	// first fetch downloads and records the ETag sidecar
	n, changed, err := fetchWithETag(context.Background(), hf, srv.URL, out)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, int64(13), n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "well,depth,tg", string(data))

	tag, err := os.ReadFile(etagPath(out))
	require.NoError(t, err)
	assert.Equal(t, `"v1"`, string(tag))

	// second fetch sends If-None-Match and skips on the 304
	n, changed, err = fetchWithETag(context.Background(), hf, srv.URL, out)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, int64(0), n)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchWithETag_NoETagHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload")) //nolint:errcheck
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "export.csv")
	hf := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{RequestsPerSec: 100})

	_, changed, err := fetchWithETag(context.Background(), hf, srv.URL, out)
	require.NoError(t, err)
	assert.True(t, changed)

	// without an ETag no sidecar is written
	_, err = os.Stat(etagPath(out))
	assert.True(t, os.IsNotExist(err))
}

package extraction

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>Resume content here</body></html>"))
	}))
	defer srv.Close()

	data, docType, err := NewFetcher().Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, DocTypeHTML, docType)
	assert.Contains(t, string(data), "Resume content here")
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := NewFetcher().Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "status 404")
}

func TestFetchConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, _, err := NewFetcher().Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

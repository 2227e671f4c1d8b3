package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValidatesBaseURL(t *testing.T) {
	for _, bad := range []string{"", "localhost:8080", "ftp://host", "/relative"} {
		_, err := New(bad, 0)
		assert.Error(t, err, bad)
	}

	c, err := New("http://localhost:8080/", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL)
	assert.Equal(t, DefaultTimeout, c.HTTP.Timeout)
}

func TestClient_HealthAndLists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"status":"ok","backend":"memory"}`))
	})
	mux.HandleFunc("/api/kinds", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"1","name":"dog","food":"dogfood","sound":"bark"}]`))
	})
	mux.HandleFunc("/api/pets", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewWithTransport(srv.URL, time.Second, srv.Client().Transport)
	require.NoError(t, err)
	ctx := context.Background()

	h, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, Health{Status: "ok", Backend: "memory"}, h)

	ks, err := c.ListKinds(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Kind{{ID: "1", Name: "dog", Food: "dogfood", Sound: "bark"}}, ks)

	_, err = c.ListPets(ctx)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.Contains(t, err.Error(), "internal error")
}

package mirror

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	mu       sync.Mutex
	method   string
	path     string
	body     string
	auth     string
	requests int
}

func newServer(t *testing.T, status int, c *capture) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		c.mu.Lock()
		c.method = r.Method
		c.path = r.URL.EscapedPath()
		c.body = string(body)
		c.auth = r.Header.Get("Authorization")
		c.requests++
		c.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Publish(t *testing.T) {
	var c capture
	server := newServer(t, http.StatusOK, &c)

	client := New(server.URL+"/", WithToken("secret"))
	client.Publish("u 1", "bookmarks", []byte(`["l1"]`))
	client.Wait()

	assert.Equal(t, http.MethodPut, c.method)
	assert.Equal(t, "/users/u%201/bookmarks", c.path)
	assert.Equal(t, `["l1"]`, c.body)
	assert.Equal(t, "Bearer secret", c.auth)
	assert.Equal(t, 1, c.requests)
}

func TestClient_PutReportsStatus(t *testing.T) {
	var c capture
	server := newServer(t, http.StatusInternalServerError, &c)

	err := New(server.URL).Put(context.Background(), "u1", "notes", []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	// no retry
	assert.Equal(t, 1, c.requests)
}

func TestClient_PublishFailureIsSwallowed(t *testing.T) {
	client := New("http://127.0.0.1:1", WithTimeout(200*time.Millisecond))
	client.Publish("u1", "notes", []byte(`[]`))
	client.Wait()
}

//go:build unit

package gerrit_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gerritforge/internal/infrastructure/repositories/gerrit"
)

func TestPushMetrics(t *testing.T) {
	t.Parallel()

	t.Run("should push the request metrics under the gerritforge job", func(t *testing.T) {
		t.Parallel()

		// given
		var (
			mu     sync.Mutex
			method string
			path   string
			body   []byte
		)
		gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			defer mu.Unlock()
			method, path = r.Method, r.URL.Path
			body, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer gateway.Close()

		// when
		err := gerrit.PushMetrics(context.Background(), gateway.URL)

		// then
		require.NoError(t, err)
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, http.MethodPut, method)
		assert.Equal(t, "/metrics/job/gerritforge", path)
		assert.NotEmpty(t, body)
	})

	t.Run("should report a failing gateway", func(t *testing.T) {
		t.Parallel()

		// given
		gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer gateway.Close()

		// when
		err := gerrit.PushMetrics(context.Background(), gateway.URL)

		// then
		require.Error(t, err)
	})
}

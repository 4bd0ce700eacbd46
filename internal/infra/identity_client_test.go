package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/At1ass/Bakery/internal/domain"
)

func TestIdentityClient_Resolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/me", r.URL.Path)
		switch r.Header.Get("Authorization") {
		case "Bearer good-token":
			json.NewEncoder(w).Encode(domain.Identity{ID: "user-1", Email: "user@example.com", Role: domain.RoleSeller})
		case "Bearer no-role-token":
			json.NewEncoder(w).Encode(map[string]string{"id": "user-2", "email": "plain@example.com"})
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer srv.Close()

	client := NewIdentityClient(srv.URL, time.Second, zap.NewNop())

	t.Run("valid credential", func(t *testing.T) {
		identity, err := client.Resolve(context.Background(), "good-token")
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.ID)
		assert.Equal(t, domain.RoleSeller, identity.Role)
	})

	t.Run("missing role defaults to customer", func(t *testing.T) {
		identity, err := client.Resolve(context.Background(), "no-role-token")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleCustomer, identity.Role)
	})

	t.Run("rejected credential", func(t *testing.T) {
		identity, err := client.Resolve(context.Background(), "bad-token")
		assert.Nil(t, identity)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("empty credential short-circuits", func(t *testing.T) {
		_, err := client.Resolve(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestIdentityClient_RetriesOnceOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewIdentityClient(srv.URL, time.Second, zap.NewNop())
	_, err := client.Resolve(context.Background(), "token")

	assert.ErrorIs(t, err, domain.ErrDependencyUnavailable)
	assert.Equal(t, int32(2), calls.Load(), "exactly one immediate retry")
}

func TestIdentityClient_DoesNotRetryUnauthorized(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewIdentityClient(srv.URL, time.Second, zap.NewNop())
	_, err := client.Resolve(context.Background(), "token")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestIdentityClient_UnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nobody listening anymore

	client := NewIdentityClient(srv.URL, 200*time.Millisecond, zap.NewNop())
	_, err := client.Resolve(context.Background(), "token")

	assert.ErrorIs(t, err, domain.ErrDependencyUnavailable)
}

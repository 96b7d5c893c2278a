package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, opts...)
}

func TestClient_BearerHeader(t *testing.T) {
	t.Run("token present", func(t *testing.T) {
		var gotAuth string
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
		}, WithTokenSource(TokenSourceFunc(func() string { return "tok-1" })))

		var out struct{}
		require.NoError(t, c.get(context.Background(), "/user/profile", &out))
		assert.Equal(t, "Bearer tok-1", gotAuth)
	})

	t.Run("no token no header", func(t *testing.T) {
		var gotAuth string
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
		}, WithTokenSource(TokenSourceFunc(func() string { return "" })))

		var out struct{}
		require.NoError(t, c.get(context.Background(), "/services", &out))
		assert.Empty(t, gotAuth)
	})
}

func TestClient_UnauthorizedFiresHook(t *testing.T) {
	hookCalls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"token expired"}`))
	}, WithUnauthorizedHook(func() { hookCalls++ }))

	_, err := c.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, hookCalls)
	assert.Equal(t, "token expired", UserMessage(err))
}

func TestClient_BackendErrorMessageVerbatim(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"Service is already booked for this time"}`))
	})

	_, err := c.ListServices(context.Background())
	require.Error(t, err)
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, "Service is already booked for this time", UserMessage(err))
}

func TestClient_SuccessFalseWithOKStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"no wallet found"}`))
	})

	_, err := c.WalletDetails(context.Background())
	require.Error(t, err)
	assert.Equal(t, "no wallet found", UserMessage(err))
}

func TestClient_GenericMessageFallback(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`oops`))
	})

	_, err := c.ListServices(context.Background())
	require.Error(t, err)
	assert.Equal(t, genericFailureMessage, UserMessage(err))
}

func TestClient_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>gateway error</html>`},
		{"missing data", `{"success":true}`},
		{"data of wrong shape", `{"success":true,"data":"a string"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.WalletDetails(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 250*time.Millisecond)
	_, err := c.ListServices(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
	assert.False(t, IsUnauthorized(err))
	// Network failures carry no backend message.
	assert.Equal(t, genericFailureMessage, UserMessage(err))
}

func TestClient_ContextCancellation(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.ListServices(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

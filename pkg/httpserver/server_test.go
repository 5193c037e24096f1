package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lexicon/pkg/httpserver"
)

func TestRunAndShutdown(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: 200 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
	}()

	addrCtx, addrCancel := context.WithTimeout(ctx, time.Second)
	defer addrCancel()
	addr, err := srv.Addr(addrCtx)
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr.String())
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not finish")
	}
}

func TestRun_Restart(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: 200 * time.Millisecond})
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for i := range 2 {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx, handler) }()

		require.Eventually(t, func() bool {
			addrCtx, addrCancel := context.WithTimeout(ctx, 100*time.Millisecond)
			defer addrCancel()
			addr, err := srv.Addr(addrCtx)
			if err != nil {
				return false
			}
			resp, err := http.Get("http://" + addr.String())
			if err != nil {
				return false
			}
			_ = resp.Body.Close()
			return resp.StatusCode == http.StatusNoContent
		}, 2*time.Second, 20*time.Millisecond, "run %d did not serve", i)

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			require.Fail(t, "run did not finish", "run %d", i)
		}
	}
}

func TestRun_AddressInUse(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := httpserver.New(httpserver.Config{Addr: ln.Addr().String()})
	err = srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	serve := func(h http.Handler) (int, string) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		return rec.Code, rec.Body.String()
	}

	code, body := serve(httpserver.Health(nil))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ALIVE", body)

	code, body = serve(httpserver.Health(nil, func(context.Context) error { return nil }))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "READY", body)

	code, body = serve(httpserver.Health(nil,
		func(context.Context) error { return nil },
		func(context.Context) error { return errors.New("db down") },
	))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "NOT_READY", body)
}

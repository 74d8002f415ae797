// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

type mockServer struct {
	listenErr   error
	shutdownErr error
	started     chan struct{}
	release     chan struct{}
	shutdowns   int
}

func newMockServer() *mockServer {
	return &mockServer{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (m *mockServer) ListenAndServe() error {
	close(m.started)
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.release
	return http.ErrServerClosed
}

func (m *mockServer) Shutdown(context.Context) error {
	m.shutdowns++
	close(m.release)
	return m.shutdownErr
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	t.Parallel()

	srv := newMockServer()
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-srv.started
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Serve() did not return after cancellation")
	}

	if srv.shutdowns != 1 {
		t.Errorf("Shutdown called %d times, want 1", srv.shutdowns)
	}
}

func TestHTTPServerServiceStartupFailure(t *testing.T) {
	t.Parallel()

	srv := newMockServer()
	srv.listenErr = errors.New("address in use")
	svc := NewHTTPServerService(srv, time.Second)

	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatalf("Serve() = nil, want startup error")
	}
	if !errors.Is(err, srv.listenErr) && err.Error() == "" {
		t.Errorf("Serve() = %v, want wrapped listen error", err)
	}
	if srv.shutdowns != 0 {
		t.Errorf("Shutdown called on startup failure")
	}
}

func TestHTTPServerServiceShutdownError(t *testing.T) {
	t.Parallel()

	srv := newMockServer()
	srv.shutdownErr = errors.New("connections still draining")
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-srv.started
	cancel()

	select {
	case err := <-done:
		if err == nil || errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want shutdown error surfaced", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Serve() did not return")
	}
}

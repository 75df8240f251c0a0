// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-stock-keeper/internal/config"
	"github.com/MKhiriev/go-stock-keeper/internal/logger"
	"github.com/MKhiriev/go-stock-keeper/models"
)

// fakeBackend is a minimal in-memory rendition of the REST backend: it
// confirms pushes with server-assigned IDs and versions and can be flipped
// between healthy and unreachable.
type fakeBackend struct {
	mu       sync.Mutex
	healthy  atomic.Bool
	nextID   int64
	entities map[int64]models.Entity
}

func newFakeBackend() *fakeBackend {
	f := &fakeBackend{nextID: 500, entities: make(map[int64]models.Entity)}
	f.healthy.Store(true)
	return f
}

func (f *fakeBackend) router() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !f.healthy.Load() {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Get("/api/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/api/{type}/changes", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	r.Post("/api/{type}", func(w http.ResponseWriter, req *http.Request) {
		var push models.PushRequest
		if err := json.NewDecoder(req.Body).Decode(&push); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		f.nextID++
		entity := models.Entity{
			ID:      f.nextID,
			Type:    models.EntityType(chi.URLParam(req, "type")),
			Version: 1,
			Payload: push.Payload,
		}
		f.entities[entity.ID] = entity
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PushResult{Entity: entity})
	})

	return r
}

func newTestEngine(t *testing.T, serverURL string) Engine {
	t.Helper()

	cfg := &config.ClientConfig{
		App:     config.ClientApp{Token: "test-token"},
		Adapter: config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second},
		Storage: config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "client.db")}},
		Sync: config.ClientSync{
			Concurrency: 2,
			MaxAttempts: 5,
			BackoffBase: 10 * time.Millisecond,
			BackoffCap:  100 * time.Millisecond,
			PushTimeout: 2 * time.Second,
		},
		Workers: config.ClientWorkers{
			SyncInterval: 50 * time.Millisecond,
			PingInterval: 20 * time.Millisecond,
		},
	}

	e, err := NewEngine(cfg, logger.Nop())
	require.NoError(t, err)
	return e
}

func TestEngine_CreateSyncsEndToEnd(t *testing.T) {
	backend := newFakeBackend()
	srv := httptest.NewServer(backend.router())
	defer srv.Close()

	e := newTestEngine(t, srv.URL)
	require.NoError(t, e.Start(context.Background()))
	defer e.Stop()

	require.Eventually(t, func() bool { return !e.SyncState().IsOffline },
		2*time.Second, 10*time.Millisecond, "engine never came online")

	event, err := e.Mutate(context.Background(), models.Mutation{
		Type:      models.EntityItem,
		Operation: models.OperationCreate,
		Payload:   json.RawMessage(`{"name":"hammer"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), event.EntityID)

	require.Eventually(t, func() bool { return e.SyncState().PendingEvents == 0 },
		2*time.Second, 10*time.Millisecond, "create never synced")

	items := e.Entities(models.EntityItem)
	require.Len(t, items, 1)
	assert.Equal(t, int64(501), items[0].ID, "temporary ID collapsed into the server-assigned one")
	assert.JSONEq(t, `{"name":"hammer"}`, string(items[0].Payload))
	assert.Empty(t, e.SyncState().SyncErrors)
}

func TestEngine_OfflineQueuesUntilReconnect(t *testing.T) {
	backend := newFakeBackend()
	backend.healthy.Store(false)
	srv := httptest.NewServer(backend.router())
	defer srv.Close()

	e := newTestEngine(t, srv.URL)
	require.NoError(t, e.Start(context.Background()))
	defer e.Stop()

	assert.True(t, e.SyncState().IsOffline)

	_, err := e.Mutate(context.Background(), models.Mutation{
		Type:      models.EntityItem,
		Operation: models.OperationCreate,
		Payload:   json.RawMessage(`{"name":"wrench"}`),
	})
	require.NoError(t, err)

	total, byType := e.LocalChanges()
	assert.Equal(t, 1, total)
	assert.Equal(t, map[models.EntityType]int{models.EntityItem: 1}, byType)

	// nothing was pushed while offline
	backend.mu.Lock()
	assert.Empty(t, backend.entities)
	backend.mu.Unlock()

	backend.healthy.Store(true)

	// the offline→online transition drains the queue without waiting for
	// the next ticker interval
	require.Eventually(t, func() bool { return e.SyncState().PendingEvents == 0 },
		2*time.Second, 10*time.Millisecond, "queue never drained after reconnect")

	items := e.Entities(models.EntityItem)
	require.Len(t, items, 1)
	assert.JSONEq(t, `{"name":"wrench"}`, string(items[0].Payload))
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-stock-keeper/internal/config"
	"github.com/MKhiriev/go-stock-keeper/internal/logger"
	"github.com/MKhiriev/go-stock-keeper/models"
)

func newTestBackend(t *testing.T, serverURL string) *httpBackend {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}
	appCfg := config.ClientApp{Token: "test-token"}

	b, err := NewHTTPBackend(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return b.(*httpBackend)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "scheme added when missing", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash trimmed", raw: "https://api.example.com/", want: "https://api.example.com"},
		{name: "empty address", raw: "   ", wantErr: true},
		{name: "missing host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/ping", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	b := newTestBackend(t, srv.URL)
	assert.NoError(t, b.Ping(context.Background()))
}

func TestPing_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	b := newTestBackend(t, srv.URL)
	assert.ErrorIs(t, b.Ping(context.Background()), ErrTransient)
}

func TestPing_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	b := newTestBackend(t, srv.URL)
	assert.ErrorIs(t, b.Ping(context.Background()), ErrTransient)
}

func TestPushEvent_Create(t *testing.T) {
	confirmed := models.Entity{
		ID:      101,
		Type:    models.EntityItem,
		Version: 1,
		Payload: []byte(`{"name":"crate","quantity":5}`),
	}

	r := chi.NewRouter()
	r.Post("/api/{type}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "item", chi.URLParam(req, "type"))
		assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))

		var push models.PushRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&push))
		assert.Equal(t, "evt-1", push.EventID)
		assert.Zero(t, push.BaseVersion)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PushResult{Entity: confirmed})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	b := newTestBackend(t, srv.URL)
	got, err := b.PushEvent(context.Background(), models.OfflineEvent{
		EventID:    "evt-1",
		EntityType: models.EntityItem,
		Operation:  models.OperationCreate,
		Payload:    []byte(`{"name":"crate","quantity":5}`),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(101), got.ID)
	assert.Equal(t, int64(1), got.Version)
}

func TestPushEvent_Update_Conflict(t *testing.T) {
	remote := models.Entity{
		ID:      10,
		Type:    models.EntityItem,
		Version: 4,
		Payload: []byte(`{"price":15}`),
	}

	r := chi.NewRouter()
	r.Patch("/api/{type}/{id}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "item", chi.URLParam(req, "type"))
		assert.Equal(t, "10", chi.URLParam(req, "id"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(models.ConflictResponse{Remote: remote})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	b := newTestBackend(t, srv.URL)
	_, err := b.PushEvent(context.Background(), models.OfflineEvent{
		EventID:     "evt-1",
		EntityType:  models.EntityItem,
		EntityID:    10,
		Operation:   models.OperationUpdate,
		BaseVersion: 3,
		Payload:     []byte(`{"price":12}`),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(4), conflictErr.Remote.Version)
	assert.JSONEq(t, `{"price":15}`, string(conflictErr.Remote.Payload))
}

func TestPushEvent_Conflict_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	b := newTestBackend(t, srv.URL)
	_, err := b.PushEvent(context.Background(), models.OfflineEvent{
		EventID:    "evt-1",
		EntityType: models.EntityItem,
		EntityID:   10,
		Operation:  models.OperationUpdate,
	})

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	// the unparseable body survives verbatim inside the snapshot payload
	assert.True(t, json.Valid(conflictErr.Remote.Payload))
	assert.Contains(t, string(conflictErr.Remote.Payload), "not json at all")
}

func TestPushEvent_Validation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("quantity must be non-negative"))
	}))
	defer srv.Close()

	b := newTestBackend(t, srv.URL)
	_, err := b.PushEvent(context.Background(), models.OfflineEvent{
		EventID:    "evt-1",
		EntityType: models.EntityItem,
		Operation:  models.OperationCreate,
		Payload:    []byte(`{"quantity":-1}`),
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrTransient)
}

func TestPushEvent_Delete(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/api/{type}/{id}", func(w http.ResponseWriter, req *http.Request) {
		tombstone := models.Entity{ID: 7, Type: models.EntityContainer, Version: 3, Deleted: true}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PushResult{Entity: tombstone})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	b := newTestBackend(t, srv.URL)
	got, err := b.PushEvent(context.Background(), models.OfflineEvent{
		EventID:     "evt-1",
		EntityType:  models.EntityContainer,
		EntityID:    7,
		Operation:   models.OperationDelete,
		BaseVersion: 2,
	})

	require.NoError(t, err)
	assert.True(t, got.Deleted)
	assert.Equal(t, int64(3), got.Version)
}

func TestPushEvent_UnknownOperation(t *testing.T) {
	b := newTestBackend(t, "http://localhost:1")

	_, err := b.PushEvent(context.Background(), models.OfflineEvent{Operation: "upsert"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFetchEntity(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/{type}/{id}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "location", chi.URLParam(req, "type"))
		assert.Equal(t, "3", chi.URLParam(req, "id"))

		entity := models.Entity{ID: 3, Type: models.EntityLocation, Version: 9}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(entity)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	b := newTestBackend(t, srv.URL)
	got, err := b.FetchEntity(context.Background(), models.EntityKey{Type: models.EntityLocation, ID: 3})

	require.NoError(t, err)
	assert.Equal(t, int64(9), got.Version)
}

func TestFetchEntity_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	b := newTestBackend(t, srv.URL)
	_, err := b.FetchEntity(context.Background(), models.EntityKey{Type: models.EntityItem, ID: 99})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchChangedSince(t *testing.T) {
	since := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	changed := []models.Entity{
		{ID: 1, Type: models.EntityItem, Version: 2},
		{ID: 2, Type: models.EntityItem, Version: 5, Deleted: true},
	}

	r := chi.NewRouter()
	r.Get("/api/{type}/changes", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "item", chi.URLParam(req, "type"))
		assert.Equal(t, since.Format(time.RFC3339Nano), req.URL.Query().Get("since"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(changed)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	b := newTestBackend(t, srv.URL)
	got, err := b.FetchChangedSince(context.Background(), models.EntityItem, since)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[1].Deleted)
}

func TestFetchChangedSince_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("token expired"))
	}))
	defer srv.Close()

	b := newTestBackend(t, srv.URL)
	_, err := b.FetchChangedSince(context.Background(), models.EntityItem, time.Now())

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, errors.Is(err, ErrTransient))
}

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-stock-keeper/internal/config"
	"github.com/MKhiriev/go-stock-keeper/internal/logger"
	"github.com/MKhiriev/go-stock-keeper/models"
)

type httpBackend struct {
	client *resty.Client
	token  string

	logger *logger.Logger
}

// NewHTTPBackend constructs an HTTP/REST implementation of [Backend].
// It normalises and validates the base URL from adapterCfg.HTTPAddress,
// configures the underlying HTTP client with the resolved base URL and request
// timeout, and stores appCfg.Token as the initial bearer token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPBackend(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (Backend, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	backend := &httpBackend{client: client, logger: logger}
	backend.SetToken(appCfg.Token)

	return backend, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [Backend]. It stores token (whitespace-trimmed) for use
// in the Authorization header of all subsequent authenticated requests.
func (h *httpBackend) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [Backend]. It returns the bearer token currently held by
// the adapter, or an empty string if none has been set.
func (h *httpBackend) Token() string {
	return h.token
}

// Ping implements [Backend]. It GETs the unauthenticated liveness endpoint
// GET /api/ping. Any transport error or non-2xx status is reported as a
// failed probe.
func (h *httpBackend) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/ping")
	if err != nil {
		return fmt.Errorf("%w: ping request: %w", ErrTransient, err)
	}

	return mapHTTPError(resp)
}

// PushEvent implements [Backend]. It maps the event operation to the REST
// verb of the entity collection:
//
//	create → POST   /api/{type}
//	update → PATCH  /api/{type}/{id}
//	delete → DELETE /api/{type}/{id}
//
// The request body carries the event's idempotency key, the base version the
// mutation was built on, and the payload. On success the confirmed entity is
// decoded from the response. On HTTP 409 the returned error is a
// [*ConflictError] carrying the remote snapshot.
func (h *httpBackend) PushEvent(ctx context.Context, event models.OfflineEvent) (models.Entity, error) {
	body := models.PushRequest{
		EventID:     event.EventID,
		BaseVersion: event.BaseVersion,
		Payload:     event.Payload,
	}

	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)

	var (
		resp *resty.Response
		err  error
	)

	switch event.Operation {
	case models.OperationCreate:
		resp, err = req.Post(fmt.Sprintf("/api/%s", event.EntityType))
	case models.OperationUpdate:
		resp, err = req.Patch(fmt.Sprintf("/api/%s/%d", event.EntityType, event.EntityID))
	case models.OperationDelete:
		resp, err = req.Delete(fmt.Sprintf("/api/%s/%d", event.EntityType, event.EntityID))
	default:
		return models.Entity{}, fmt.Errorf("%w: unknown operation %q", ErrValidation, event.Operation)
	}

	if err != nil {
		return models.Entity{}, fmt.Errorf("%w: push request: %w", ErrTransient, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Entity{}, err
	}

	var result models.PushResult
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return models.Entity{}, fmt.Errorf("decode push response: %w", err)
	}

	return result.Entity, nil
}

// FetchEntity implements [Backend]. It GETs the current snapshot of a single
// record from GET /api/{type}/{id}. Requires a valid bearer token.
func (h *httpBackend) FetchEntity(ctx context.Context, key models.EntityKey) (models.Entity, error) {
	resp, err := h.authedRequest(ctx).
		Get(fmt.Sprintf("/api/%s/%d", key.Type, key.ID))
	if err != nil {
		return models.Entity{}, fmt.Errorf("%w: fetch entity request: %w", ErrTransient, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Entity{}, err
	}

	var entity models.Entity
	if err = json.Unmarshal(resp.Body(), &entity); err != nil {
		return models.Entity{}, fmt.Errorf("decode entity response: %w", err)
	}

	return entity, nil
}

// FetchChangedSince implements [Backend]. It GETs the per-type delta endpoint
// GET /api/{type}/changes?since={RFC3339} and decodes the response into a
// slice of entities, deleted tombstones included. Requires a valid bearer
// token.
func (h *httpBackend) FetchChangedSince(ctx context.Context, entityType models.EntityType, since time.Time) ([]models.Entity, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("since", since.UTC().Format(time.RFC3339Nano)).
		Get(fmt.Sprintf("/api/%s/changes", entityType))
	if err != nil {
		return nil, fmt.Errorf("%w: fetch changes request: %w", ErrTransient, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var entities []models.Entity
	if err = json.Unmarshal(resp.Body(), &entities); err != nil {
		return nil, fmt.Errorf("decode changes response: %w", err)
	}

	return entities, nil
}

func (h *httpBackend) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

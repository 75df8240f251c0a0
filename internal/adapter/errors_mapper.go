package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-stock-keeper/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidation, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return mapConflict(resp.Body())
	default:
		if resp.StatusCode() >= http.StatusInternalServerError {
			return fmt.Errorf("%w: http %d: %s", ErrTransient, resp.StatusCode(), body)
		}
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// mapConflict decodes the remote snapshot carried by a 409 response. A body
// that cannot be decoded is preserved verbatim as the snapshot payload so no
// server-side state is lost.
func mapConflict(body []byte) error {
	var conflict models.ConflictResponse
	if err := json.Unmarshal(body, &conflict); err == nil && conflict.Remote.ID != 0 {
		return &ConflictError{Remote: conflict.Remote}
	}

	payload := body
	if !json.Valid(payload) {
		payload = []byte(strconv.Quote(string(body)))
	}

	return &ConflictError{Remote: models.Entity{Payload: payload}}
}

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "lendgate/pkg/domain-errors"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantCode       string
		hasDescription bool
	}{
		{
			name:           "validation maps to 400",
			err:            dErrors.New(dErrors.CodeValidation, "field is required"),
			wantStatus:     http.StatusBadRequest,
			wantCode:       "validation",
			hasDescription: true,
		},
		{
			name:           "bad request maps to 400",
			err:            dErrors.New(dErrors.CodeBadRequest, "invalid body"),
			wantStatus:     http.StatusBadRequest,
			wantCode:       "bad_request",
			hasDescription: true,
		},
		{
			name:           "not found maps to 404",
			err:            dErrors.New(dErrors.CodeNotFound, "no such session"),
			wantStatus:     http.StatusNotFound,
			wantCode:       "not_found",
			hasDescription: true,
		},
		{
			name:           "precondition maps to 412",
			err:            dErrors.New(dErrors.CodePrecondition, "threshold not met"),
			wantStatus:     http.StatusPreconditionFailed,
			wantCode:       "precondition_failed",
			hasDescription: true,
		},
		{
			name:           "conflict maps to 409",
			err:            dErrors.New(dErrors.CodeConflict, "already exists"),
			wantStatus:     http.StatusConflict,
			wantCode:       "conflict",
			hasDescription: true,
		},
		{
			name:           "internal hides the description",
			err:            dErrors.New(dErrors.CodeInternal, "database exploded"),
			wantStatus:     http.StatusInternalServerError,
			wantCode:       "internal_error",
			hasDescription: false,
		},
		{
			name:           "uncoded error maps to internal",
			err:            errors.New("plain failure"),
			wantStatus:     http.StatusInternalServerError,
			wantCode:       "internal_error",
			hasDescription: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
			if tt.hasDescription {
				assert.NotEmpty(t, body["error_description"])
			} else {
				assert.Empty(t, body["error_description"])
			}
		})
	}
}

type probeRequest struct {
	Name string `json:"name"`
}

func (r *probeRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "bad" {
		return dErrors.New(dErrors.CodeValidation, "name is invalid")
	}
	return nil
}

func TestDecodeAndPrepare(t *testing.T) {
	t.Run("decodes and validates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))

		got, ok := DecodeAndPrepare[probeRequest](rec, req, nil, context.Background(), "req-1")
		require.True(t, ok)
		assert.Equal(t, "ok", got.Name)
	})

	t.Run("empty body skips decoding but still validates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)

		got, ok := DecodeAndPrepare[probeRequest](rec, req, nil, context.Background(), "req-2")
		require.True(t, ok)
		assert.Empty(t, got.Name)
	})

	t.Run("malformed json writes bad request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

		_, ok := DecodeAndPrepare[probeRequest](rec, req, nil, context.Background(), "req-3")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure writes mapped error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"bad"}`))

		_, ok := DecodeAndPrepare[probeRequest](rec, req, nil, context.Background(), "req-4")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "validation")
	})
}

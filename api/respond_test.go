package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arcvista/backend/errs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestResponderWriteData(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()

	responder.WriteData(rec, http.StatusOK, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)
	assert.Empty(t, body.Message)
	assert.Empty(t, body.Error)
}

func TestResponderWriteCreated(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()

	responder.WriteCreated(rec, "Project created", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "Project created", body.Message)
	assert.NotNil(t, body.Data)
}

func TestResponderWriteErrorWithApiErr(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()

	responder.WriteError(rec, errs.NewNotFoundError("project not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "project not found", body.Message)
	assert.Empty(t, body.Error)
}

func TestResponderWriteErrorHidesUnexpectedCause(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()

	responder.WriteError(rec, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "An unexpected error occurred", body.Message)
	assert.Equal(t, "pq: connection reset", body.Error)
}

func TestResponderWriteErrorIncludesCauseDetail(t *testing.T) {
	responder := NewResponder(zerolog.Nop())
	rec := httptest.NewRecorder()

	apiErr := errs.NewDatabaseError("create", "project", errors.New("duplicate key value violates unique constraint"))
	responder.WriteError(rec, apiErr)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "duplicate key")
}

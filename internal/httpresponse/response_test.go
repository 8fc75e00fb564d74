package httpresponse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "baduk/internal/errors"
)

func TestWriteResponseWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusCreated, map[string]string{"a": "b"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"Status":201,"Body":{"a":"b"}}`, rec.Body.String())
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", apperrors.ErrUnknownBot), http.StatusNotFound},
		{apperrors.ErrGameNotFound, http.StatusNotFound},
		{fmt.Errorf("move 3: %w", apperrors.ErrIllegalMove), http.StatusBadRequest},
		{apperrors.ErrInvalidCoords, http.StatusBadRequest},
		{apperrors.ErrInvalidBoardSize, http.StatusBadRequest},
		{apperrors.ErrGameOver, http.StatusBadRequest},
		{assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFromError(tt.err), tt.err.Error())
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("move 2: %w", apperrors.ErrIllegalMove))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp Response[ErrorResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "move 2: illegal move", resp.Body.ErrorDescription)

	rec = httptest.NewRecorder()
	WriteError(rec, assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, INTERNALERRORJSON, rec.Body.String())
}

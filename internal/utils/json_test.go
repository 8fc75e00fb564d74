package utils

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDecodeJSONRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","count":2}`))
	var p payload
	require.NoError(t, DecodeJSONRequest(httptest.NewRecorder(), r, &p))
	assert.Equal(t, payload{Name: "x", Count: 2}, p)
}

func TestDecodeJSONRequestErrors(t *testing.T) {
	tests := map[string]string{
		"unknown field": `{"name":"x","colour":"b"}`,
		"malformed":     `{"name":`,
		"trailing":      `{"name":"x"} {"name":"y"}`,
		"wrong type":    `{"count":"two"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(body))
			var p payload
			assert.Error(t, DecodeJSONRequest(httptest.NewRecorder(), r, &p))
		})
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(""))
	var p payload
	assert.ErrorIs(t, DecodeJSONRequest(httptest.NewRecorder(), r, &p), ErrEmptyBody)
}

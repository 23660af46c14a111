package scaleapi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStatusError(t *testing.T) {
	tests := []struct {
		status   int
		wantKind ErrorKind
	}{
		{400, KindInvalidRequest},
		{401, KindAPI},
		{403, KindAPI},
		{404, KindAPI},
		{429, KindAPI},
		{500, KindAPI},
		{502, KindAPI},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := newStatusError(tt.status, "boom")
			assert.Equal(t, tt.wantKind, err.Kind)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, fmt.Sprintf("<Response [%d]> boom", tt.status), err.Error())
		})
	}
}

func TestError_Is(t *testing.T) {
	invalid := newInvalidRequestError("illegal parameter %s for %s", "color", "ListTasks")
	assert.ErrorIs(t, invalid, ErrInvalidRequest)
	assert.NotErrorIs(t, invalid, ErrAPI)
	assert.Equal(t, "invalid_request: illegal parameter color for ListTasks", invalid.Error())

	api := newStatusError(500, "server exploded")
	assert.ErrorIs(t, api, ErrAPI)
	assert.NotErrorIs(t, api, ErrInvalidRequest)

	wrapped := fmt.Errorf("loading tasks: %w", api)
	assert.ErrorIs(t, wrapped, ErrAPI)
	assert.True(t, IsAPIError(wrapped))
	assert.Equal(t, 500, StatusCode(wrapped))
}

func TestErrorHelpers_NonAPIErrors(t *testing.T) {
	plain := errors.New("dial tcp: connection refused")

	assert.False(t, IsInvalidRequest(plain))
	assert.False(t, IsAPIError(plain))
	assert.Equal(t, 0, StatusCode(plain))

	assert.False(t, IsInvalidRequest(nil))
	assert.False(t, IsAPIError(nil))
	assert.Equal(t, 0, StatusCode(nil))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json error", `{"status_code": 400, "error": "bad field"}`, "bad field"},
		{"plain text", "server exploded", "server exploded"},
		{"non-string error", `{"error": {"code": 7}}`, `{"error": {"code": 7}}`},
		{"empty body", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body)))
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "invalid_request", KindInvalidRequest.String())
	assert.Equal(t, "api_error", KindAPI.String())
	assert.Equal(t, "unknown", ErrorKind(0).String())
}

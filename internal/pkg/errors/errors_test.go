package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Is(t *testing.T) {
	err := NewHTTPError(http.StatusNotFound, "missing")

	assert.True(t, stderrors.Is(err, ErrHTTP))
	assert.False(t, stderrors.Is(err, ErrTransport))

	wrapped := fmt.Errorf("fetch styles: %w", err)
	assert.True(t, stderrors.Is(wrapped, ErrHTTP))
}

func TestAppError_WithDetailsDoesNotMutateTemplate(t *testing.T) {
	e := ErrInvalidRequest.WithDetails(map[string]interface{}{"field": "lat"})

	assert.Equal(t, "lat", e.Details["field"])
	assert.NotContains(t, ErrInvalidRequest.Details, "field")
}

func TestHasCode(t *testing.T) {
	cause := NewHTTPError(http.StatusUnauthorized, `{"message":"Not Authorized"}`)
	err := NewProviderError("mapbox", "Not Authorized", cause)

	assert.True(t, HasCode(err, CodeProvider))
	assert.True(t, HasCode(err, CodeHTTP))
	assert.False(t, HasCode(err, CodeTransport))
	assert.False(t, HasCode(stderrors.New("plain"), CodeHTTP))
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection reset by peer")
	err := NewTransportError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset by peer")

	appErr, ok := As(fmt.Errorf("wrap: %w", err))
	require.True(t, ok)
	assert.Equal(t, CodeTransport, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.StatusCode)
}

func TestInvalidResponseError_Details(t *testing.T) {
	err := NewInvalidResponseError("<html>", "text/html", nil)

	body, ok := err.Detail(DetailBody)
	require.True(t, ok)
	assert.Equal(t, "<html>", body)
	assert.Equal(t, "text/html", err.Details[DetailContentType])
}

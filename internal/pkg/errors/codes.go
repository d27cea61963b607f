package errors

import "net/http"

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeTransport       = "TRANSPORT_ERROR"
	CodeHTTP            = "HTTP_ERROR"
	CodeInvalidResponse = "INVALID_RESPONSE"
	CodeProvider        = "PROVIDER_ERROR"
	CodeInvalidInput    = "INVALID_INPUT"
)

// Ключи Details
const (
	DetailStatus      = "status"
	DetailBody        = "body"
	DetailContentType = "content_type"
	DetailProvider    = "provider"
)

var (
	ErrValidation = New(
		CodeValidation,
		"Invalid coordinate input",
		http.StatusBadRequest,
	)

	ErrTransport = New(
		CodeTransport,
		"Upstream request failed",
		http.StatusBadGateway,
	)

	ErrHTTP = New(
		CodeHTTP,
		"Upstream returned non-2xx status",
		http.StatusBadGateway,
	)

	ErrInvalidResponse = New(
		CodeInvalidResponse,
		"Upstream returned an invalid JSON response",
		http.StatusBadGateway,
	)

	ErrProvider = New(
		CodeProvider,
		"Map provider error",
		http.StatusBadGateway,
	)

	ErrProviderNotFound = New(
		"PROVIDER_NOT_FOUND",
		"Map provider not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

// NewValidationError - некорректный ввод координат
func NewValidationError(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// NewTransportError - сбой на уровне транспорта (DNS, таймаут, TLS, размер ответа, редиректы)
func NewTransportError(cause error) *AppError {
	return Wrap(CodeTransport, "Upstream request failed", http.StatusBadGateway, cause)
}

// NewHTTPError - ответ со статусом вне диапазона 2xx
func NewHTTPError(status int, body string) *AppError {
	e := New(CodeHTTP, http.StatusText(status), http.StatusBadGateway)
	e.Details[DetailStatus] = status
	e.Details[DetailBody] = body
	return e
}

// NewInvalidResponseError - тело ответа не JSON или пустое после разбора
func NewInvalidResponseError(body, contentType string, cause error) *AppError {
	e := Wrap(CodeInvalidResponse, "Upstream returned an invalid JSON response", http.StatusBadGateway, cause)
	e.Details[DetailBody] = body
	e.Details[DetailContentType] = contentType
	return e
}

// NewProviderError - ошибка вендора с его собственным сообщением
func NewProviderError(provider, message string, cause error) *AppError {
	e := Wrap(CodeProvider, message, http.StatusBadGateway, cause)
	e.Details[DetailProvider] = provider
	return e
}

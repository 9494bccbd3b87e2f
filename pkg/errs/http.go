package errs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

var responses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "nada_tablemetadata",
	Name:      "error_responses_total",
	Help:      "Error responses written to HTTP clients, by kind and status code.",
}, []string{"kind", "status"})

// Metrics returns the collectors owned by this package.
func Metrics() []prometheus.Collector {
	return []prometheus.Collector{responses}
}

// ErrResponse is used as the response body for errors.
type ErrResponse struct {
	Error ServiceError `json:"error"`
}

// ServiceError has fields for the service errors. All fields are set with
// omitempty so that only those fields that are populated are returned.
type ServiceError struct {
	StatusCode int    `json:"statusCode,omitempty"`
	Kind       string `json:"kind,omitempty"`
	Code       string `json:"code,omitempty"`
	Param      string `json:"param,omitempty"`
	Message    string `json:"message,omitempty"`
}

// HTTPErrorResponse takes a writer, a logger and an error, logs the error and
// writes a JSON error response matching the kind of the error.
func HTTPErrorResponse(w http.ResponseWriter, lgr zerolog.Logger, err error) {
	if err == nil {
		nilErrorResponse(w, lgr)
		return
	}

	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case Unauthenticated:
			unauthenticatedErrorResponse(w, lgr, e)
			return
		case Unauthorized:
			unauthorizedErrorResponse(w, lgr, e)
			return
		default:
			typicalErrorResponse(w, lgr, e)
			return
		}
	}

	unknownErrorResponse(w, lgr, err)
}

func typicalErrorResponse(w http.ResponseWriter, lgr zerolog.Logger, e *Error) {
	const op Op = "errs.typicalErrorResponse"

	status := httpErrorStatusCode(e.Kind)

	lgr.Error().
		Err(e.Err).
		Strs("ops", OpStack(e)).
		Str("kind", e.Kind.String()).
		Str("param", string(e.Param)).
		Str("code", string(e.Code)).
		Str("user", string(e.User)).
		Int("status", status).
		Msg("error response sent to client")

	// Internal details are only for the logs
	message := e.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	writeResponse(w, lgr, op, status, ErrResponse{
		Error: ServiceError{
			StatusCode: status,
			Kind:       e.Kind.String(),
			Code:       string(e.Code),
			Param:      string(e.Param),
			Message:    message,
		},
	}, e.Kind)
}

func unauthenticatedErrorResponse(w http.ResponseWriter, lgr zerolog.Logger, e *Error) {
	lgr.Error().
		Err(e.Err).
		Strs("ops", OpStack(e)).
		Str("param", string(e.Param)).
		Msg("unauthenticated request")

	w.Header().Set("WWW-Authenticate", `Bearer realm="nada-tablemetadata"`)
	responses.WithLabelValues(e.Kind.String(), "401").Inc()
	w.WriteHeader(http.StatusUnauthorized)
}

func unauthorizedErrorResponse(w http.ResponseWriter, lgr zerolog.Logger, e *Error) {
	lgr.Error().
		Err(e.Err).
		Strs("ops", OpStack(e)).
		Str("user", string(e.User)).
		Msg("unauthorized request")

	responses.WithLabelValues(e.Kind.String(), "403").Inc()
	w.WriteHeader(http.StatusForbidden)
}

func nilErrorResponse(w http.ResponseWriter, lgr zerolog.Logger) {
	const op Op = "errs.nilErrorResponse"

	lgr.Error().Msg("nil error sent to HTTPErrorResponse")

	writeResponse(w, lgr, op, http.StatusInternalServerError, ErrResponse{
		Error: ServiceError{
			StatusCode: http.StatusInternalServerError,
			Kind:       Unanticipated.String(),
			Code:       "Unanticipated",
			Message:    "unexpected error, contact support",
		},
	}, Unanticipated)
}

func unknownErrorResponse(w http.ResponseWriter, lgr zerolog.Logger, err error) {
	const op Op = "errs.unknownErrorResponse"

	lgr.Error().Err(err).Msg("unknown error")

	writeResponse(w, lgr, op, http.StatusInternalServerError, ErrResponse{
		Error: ServiceError{
			StatusCode: http.StatusInternalServerError,
			Kind:       Unanticipated.String(),
			Code:       "Unanticipated",
			Message:    "unexpected error, contact support",
		},
	}, Unanticipated)
}

func writeResponse(w http.ResponseWriter, lgr zerolog.Logger, op Op, status int, body ErrResponse, kind Kind) {
	responses.WithLabelValues(kind.String(), strconv.Itoa(status)).Inc()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		lgr.Error().Err(err).Str("op", string(op)).Msg("encoding error response")
	}
}

// httpErrorStatusCode maps an error Kind to an HTTP Status Code
func httpErrorStatusCode(k Kind) int {
	switch k {
	case Invalid, Validation, InvalidRequest, BrokenLink, Private:
		return http.StatusBadRequest
	case Exist:
		return http.StatusConflict
	case NotExist:
		return http.StatusNotFound
	case UnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case Unauthenticated:
		return http.StatusUnauthorized
	case Unauthorized:
		return http.StatusForbidden
	case Other, IO, Internal, Database, Unanticipated:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

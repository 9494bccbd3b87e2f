// Package transport provides a generic HTTP transport layer for services.
//
// Inspired by:
// - https://www.willem.dev/articles/generic-http-handlers/ - for use of generics
// - https://github.com/go-kit/kit - for StatusCoder interface

package transport

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"

	"github.com/navikt/nada-tablemetadata/pkg/errs"
)

const queryTagName = "query"

type StatusCoder interface {
	StatusCode() int
}

type Encoder interface {
	Encode(w http.ResponseWriter) error
}

// DecoderFunc is a function that decodes a request into a struct
type DecoderFunc[In any] func(r *http.Request) (In, error)

// TargetFunc is a function that handles the request and returns a response, ideally
// we shouldn't have to use the http.Request, but sometimes we need it to fetch
// headers or similar
type TargetFunc[In any, Out any] func(context.Context, *http.Request, In) (Out, error)

type Transport[In any, Out any] struct {
	decoderFn DecoderFunc[In]
	targetFn  TargetFunc[In, Out]
}

func For[In any, Out any](target TargetFunc[In, Out]) *Transport[In, Out] {
	return &Transport[In, Out]{
		targetFn: target,
	}
}

func (h *Transport[In, Out]) RequestFromJSON() *Transport[In, Out] {
	h.decoderFn = func(r *http.Request) (In, error) {
		var in In

		err := json.NewDecoder(r.Body).Decode(&in)
		if err != nil {
			return in, err
		}

		return in, nil
	}

	return h
}

// RequestFromQuery decodes the query string into In, using the `query` struct
// tag for the parameter names. Only the first value of a parameter is used.
func (h *Transport[In, Out]) RequestFromQuery() *Transport[In, Out] {
	h.decoderFn = func(r *http.Request) (In, error) {
		var in In

		values := map[string]string{}
		for k, v := range r.URL.Query() {
			if len(v) > 0 {
				values[k] = v[0]
			}
		}

		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          queryTagName,
			WeaklyTypedInput: true,
			Result:           &in,
		})
		if err != nil {
			return in, err
		}

		err = dec.Decode(values)
		if err != nil {
			return in, err
		}

		return in, nil
	}

	return h
}

func (h *Transport[In, Out]) encode(w http.ResponseWriter, out Out) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	// If the output implements the StatusCoder interface, use the status code from it
	code := http.StatusOK
	if sc, ok := any(out).(StatusCoder); ok {
		code = sc.StatusCode()
	}

	w.WriteHeader(code)
	if code == http.StatusNoContent {
		return nil
	}

	err := json.NewEncoder(w).Encode(out)
	if err != nil {
		return err
	}

	return nil
}

func (h *Transport[In, Out]) Build(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op errs.Op = "transport.Build"

		logger.Debug().Str("method", r.Method).Str("url", r.URL.RequestURI()).Msg("handling request")

		var in In
		var err error

		if h.decoderFn != nil {
			in, err = h.decoderFn(r)
			if err != nil {
				errs.HTTPErrorResponse(w, logger, errs.E(errs.InvalidRequest, op, err))
				return
			}

			// Decoded input that knows how to validate itself is rejected
			// before the target is invoked
			if v, ok := any(in).(validation.Validatable); ok {
				err = v.Validate()
				if err != nil {
					errs.HTTPErrorResponse(w, logger, errs.E(errs.Validation, op, err))
					return
				}
			}
		}

		out, err := h.targetFn(r.Context(), r, in)
		if err != nil {
			errs.HTTPErrorResponse(w, logger, err)
			return
		}

		// If the output implements the Encoder interface, use it
		if v, ok := any(out).(Encoder); ok {
			err := v.Encode(w)
			if err != nil {
				errs.HTTPErrorResponse(w, logger, errs.E(errs.Internal, op, err))
				return
			}

			return
		}

		// By default, we always encode the response as JSON, you can use
		// the Encoder or StatusCoder interfaces to customize the response
		err = h.encode(w, out)
		if err != nil {
			errs.HTTPErrorResponse(w, logger, errs.E(errs.Internal, op, err))
			return
		}
	}
}

// Empty provides a convenience struct for returning an empty response
type Empty struct{}

func (e *Empty) StatusCode() int {
	return http.StatusNoContent
}

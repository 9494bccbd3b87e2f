package errs_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/navikt/nada-tablemetadata/pkg/errs"
)

func TestE(t *testing.T) {
	inner := errs.E(errs.NotExist, errs.Op("inner.Get"), errs.Parameter("key"), fmt.Errorf("no such table"))
	outer := errs.E(errs.Op("outer.Get"), inner)

	e, ok := outer.(*errs.Error)
	assert.True(t, ok)
	assert.Equal(t, errs.NotExist, e.Kind)
	assert.Equal(t, errs.Parameter("key"), e.Param)
	assert.Equal(t, "no such table", outer.Error())
	assert.Equal(t, []string{"outer.Get", "inner.Get"}, errs.OpStack(outer))
	assert.True(t, errs.KindIs(errs.NotExist, outer))
	assert.False(t, errs.KindIs(errs.IO, outer))
}

func TestE_OuterKindWins(t *testing.T) {
	inner := errs.E(errs.NotExist, errs.Op("inner.Get"), fmt.Errorf("gone"))
	outer := errs.E(errs.IO, errs.Op("outer.Get"), inner)

	assert.True(t, errs.KindIs(errs.IO, outer))
}

func TestHTTPErrorResponse(t *testing.T) {
	log := zerolog.New(os.Stdout)

	testCases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "not exist",
			err:    errs.E(errs.NotExist, errs.Op("test"), errs.Parameter("type_metadata_key"), fmt.Errorf("type metadata not found")),
			status: http.StatusNotFound,
			body:   `{"error":{"statusCode":404,"kind":"item_does_not_exist","param":"type_metadata_key","message":"type metadata not found"}}` + "\n",
		},
		{
			name:   "invalid request",
			err:    errs.E(errs.InvalidRequest, errs.Op("test"), fmt.Errorf("bad key")),
			status: http.StatusBadRequest,
			body:   `{"error":{"statusCode":400,"kind":"invalid_request_error","message":"bad key"}}` + "\n",
		},
		{
			name:   "io error hides details",
			err:    errs.E(errs.IO, errs.Op("test"), fmt.Errorf("dial tcp: connection refused")),
			status: http.StatusInternalServerError,
			body:   `{"error":{"statusCode":500,"kind":"I/O_error","message":"internal server error"}}` + "\n",
		},
		{
			name:   "unknown error",
			err:    fmt.Errorf("plain"),
			status: http.StatusInternalServerError,
			body:   `{"error":{"statusCode":500,"kind":"unanticipated_error","code":"Unanticipated","message":"unexpected error, contact support"}}` + "\n",
		},
		{
			name:   "message is html escaped",
			err:    errs.E(errs.InvalidRequest, errs.Op("test"), errs.Parameter("key"), fmt.Errorf("key must look like <table>/<column>")),
			status: http.StatusBadRequest,
			body:   `{"error":{"statusCode":400,"kind":"invalid_request_error","param":"key","message":"key must look like \u003ctable\u003e/\u003ccolumn\u003e"}}` + "\n",
		},
		{
			name:   "unauthenticated",
			err:    errs.E(errs.Unauthenticated, errs.Op("test"), fmt.Errorf("no token")),
			status: http.StatusUnauthorized,
			body:   "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			errs.HTTPErrorResponse(rr, log, tc.err)

			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, tc.body, rr.Body.String())
		})
	}
}

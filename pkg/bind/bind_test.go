package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type restockBody struct {
	Quantity int64 `json:"quantity" validate:"required,integer,gt=0"`
}

func request(body string) *http.Request {
	return httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
}

func TestJSONDecodesAndValidates(t *testing.T) {
	var in restockBody
	errs, err := JSON(request(`{"quantity": 5}`), &in)
	require.NoError(t, err)
	assert.Nil(t, errs)
	assert.Equal(t, int64(5), in.Quantity)
}

func TestJSONReturnsValidationErrors(t *testing.T) {
	var in restockBody
	errs, err := JSON(request(`{}`), &in)
	require.NoError(t, err)
	require.NotNil(t, errs)
	assert.Equal(t, "The quantity field is required.", errs["quantity"])

	errs, err = JSON(request(`{"quantity": -2}`), &in)
	require.NoError(t, err)
	assert.Equal(t, "The quantity must be greater than 0.", errs["quantity"])
}

func TestJSONRejectsMalformedBody(t *testing.T) {
	var in restockBody
	_, err := JSON(request(`{"quantity":`), &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

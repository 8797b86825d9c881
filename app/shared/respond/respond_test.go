package respond

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	rr := httptest.NewRecorder()

	Error(rr, http.StatusNotFound, "Round not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Round not found"}`, rr.Body.String())
}

func TestDecode(t *testing.T) {
	var body struct {
		Username string `json:"username"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"admin"}`))
	require.NoError(t, Decode(httptest.NewRecorder(), req, &body))
	assert.Equal(t, "admin", body.Username)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"bob","extra":1}`))
	require.NoError(t, Decode(httptest.NewRecorder(), req, &body))
	assert.Equal(t, "bob", body.Username)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.Error(t, Decode(httptest.NewRecorder(), req, &body))
}

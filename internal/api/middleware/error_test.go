package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoverBody(t *testing.T, panicWith interface{}) (int, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { panic(panicWith) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp.Error.Code, resp.Error.Message
}

func TestErrorHandler_RecoversErrorPanic(t *testing.T) {
	status, code, msg := recoverBody(t, errors.New("sim blew up"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", code)
	assert.Equal(t, "sim blew up", msg)
}

func TestErrorHandler_RecoversStringPanic(t *testing.T) {
	status, code, msg := recoverBody(t, "bad state")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", code)
	assert.Equal(t, "bad state", msg)
}

func TestErrorHandler_RecoversOtherPanic(t *testing.T) {
	status, code, msg := recoverBody(t, 42)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", code)
	assert.Equal(t, "an unexpected error occurred", msg)
}

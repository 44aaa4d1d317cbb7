package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doccstock/internal/core/apperror"
	appctx "doccstock/internal/core/context"
	"doccstock/internal/core/id"
)

type staticValidator struct {
	user *appctx.UserContext
	err  error
}

func (v staticValidator) ValidateToken(string) (*appctx.UserContext, error) {
	return v.user, v.err
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), Trace(), ErrorHandler())
	r.GET("/", append(handlers, func(c *gin.Context) {
		var user string
		if u := appctx.GetUser(c.Request.Context()); u != nil {
			user = u.UserID.String()
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	})...)
	return r
}

func serve(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTrace_EchoesRequestID(t *testing.T) {
	rec := serve(newEngine(), map[string]string{HeaderRequestID: "req-1"})

	assert.Equal(t, "req-1", rec.Header().Get(HeaderRequestID))
	assert.Equal(t, "req-1", rec.Header().Get(HeaderTraceID))
}

func TestAuth_HeaderFormats(t *testing.T) {
	user := &appctx.UserContext{UserID: id.New(), Username: "u", Role: appctx.RoleUser}
	r := newEngine(Auth(staticValidator{user: user}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"no scheme", "token", http.StatusUnauthorized},
		{"basic scheme", "Basic abc", http.StatusUnauthorized},
		{"bearer", "Bearer abc", http.StatusOK},
		{"lowercase bearer", "bearer abc", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := map[string]string{}
			if tt.header != "" {
				h["Authorization"] = tt.header
			}
			rec := serve(r, h)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAuth_InvalidTokenHidesCause(t *testing.T) {
	r := newEngine(Auth(staticValidator{err: errors.New("signature is invalid")}))

	rec := serve(r, map[string]string{"Authorization": "Bearer abc"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "signature")
}

func TestRequireRole(t *testing.T) {
	admin := &appctx.UserContext{UserID: id.New(), Role: appctx.RoleAdmin}
	user := &appctx.UserContext{UserID: id.New(), Role: appctx.RoleUser}

	rec := serve(newEngine(Auth(staticValidator{user: admin}), RequireRole(appctx.RoleAdmin)),
		map[string]string{"Authorization": "Bearer x"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(newEngine(Auth(staticValidator{user: user}), RequireRole(appctx.RoleAdmin)),
		map[string]string{"Authorization": "Bearer x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(newEngine(RequireRole(appctx.RoleAdmin)), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestErrorHandler_PlainErrorIsInternal(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.Abort()
	})

	rec := serve(r, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apperror.CodeInternal)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestBindingError_NonValidatorError(t *testing.T) {
	err := BindingError("invalid request body", errors.New("unexpected EOF"))

	require.NotNil(t, err)
	assert.Equal(t, apperror.CodeValidation, err.Code)
	assert.Equal(t, "unexpected EOF", err.Details["error"])
}

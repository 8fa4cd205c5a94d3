package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whiteboardLabeler/internal/enums"
	"whiteboardLabeler/internal/errs"
)

var testSecret = []byte("k")

func TestPlainSessionIsTheName(t *testing.T) {
	token, err := CreateSessionToken(enums.SESSION_MODE_PLAIN, "alice", nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", token)

	name, err := ParseSessionToken(enums.SESSION_MODE_PLAIN, token, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)
}

func TestEmptyTokenIsUnauthenticated(t *testing.T) {
	for _, mode := range []string{enums.SESSION_MODE_PLAIN, enums.SESSION_MODE_JWT} {
		_, err := ParseSessionToken(mode, "", testSecret)
		assert.ErrorIs(t, err, errs.ErrUnauthenticated, mode)
	}
}

func TestJwtSessionRoundTrip(t *testing.T) {
	token, err := CreateSessionToken(enums.SESSION_MODE_JWT, "alice", testSecret)
	require.NoError(t, err)
	assert.NotEqual(t, "alice", token)

	name, err := ParseSessionToken(enums.SESSION_MODE_JWT, token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	claims, err := VerifyToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Name)
	assert.NotNil(t, claims.IssuedAt)
	assert.Nil(t, claims.ExpiresAt)
}

func TestJwtSessionRejectsForgedValues(t *testing.T) {
	signed, err := CreateJwtToken("alice", []byte("other key"), time.Now())
	require.NoError(t, err)

	for name, token := range map[string]string{
		"wrong key": signed,
		"bare name": "alice",
		"truncated": signed[:len(signed)-4],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSessionToken(enums.SESSION_MODE_JWT, token, testSecret)
			assert.ErrorIs(t, err, errs.ErrInvalidToken)
			assert.True(t, errs.IsUnauthenticated(err))
		})
	}
}

func TestSessionCookieLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	SetSessionCookie(ctx, "alice")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, "alice", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)

	rec = httptest.NewRecorder()
	ctx, _ = gin.CreateTestContext(rec)
	ClearSessionCookie(ctx)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)

	rec = httptest.NewRecorder()
	ctx, _ = gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSessionCookie(ctx)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	assert.Empty(t, GetContractorFromContext(ctx))

	ctx.Request.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bob"})
	value, err := GetSessionCookie(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", value)

	ctx.Set(ContractorCtxKey, "bob")
	assert.Equal(t, "bob", GetContractorFromContext(ctx))
}

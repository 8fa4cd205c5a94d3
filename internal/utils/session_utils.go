package utils

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"whiteboardLabeler/internal/enums"
	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/models"
)

const (
	SessionCookieName = "contractor"
	ContractorCtxKey  = "contractor"
)

// CreateSessionToken builds the cookie value for name. In plain mode the
// value is the name itself: it is a bare claim, not a credential, and any
// client can forge it.
func CreateSessionToken(mode, name string, secretKey []byte) (string, error) {
	switch mode {
	case enums.SESSION_MODE_JWT:
		return CreateJwtToken(name, secretKey, time.Now())
	default:
		return name, nil
	}
}

// ParseSessionToken returns the contractor name bound to token.
func ParseSessionToken(mode, token string, secretKey []byte) (string, error) {
	if token == "" {
		return "", errs.ErrUnauthenticated
	}
	switch mode {
	case enums.SESSION_MODE_JWT:
		claims, err := VerifyToken(token, secretKey)
		if err != nil {
			return "", err
		}
		return claims.Name, nil
	default:
		return token, nil
	}
}

// CreateJwtToken signs name with HS256. No expiry is set; sessions end when
// the client drops the cookie.
func CreateJwtToken(name string, secretKey []byte, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		models.Claims{
			Name: name,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt: jwt.NewNumericDate(issuedAt),
			},
		})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func VerifyToken(tokenString string, secretKey []byte) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Name == "" {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}

func SetSessionCookie(ctx *gin.Context, value string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookieName, value, 0, "/", "", false, true)
}

// ClearSessionCookie expires the cookie immediately.
func ClearSessionCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

func GetSessionCookie(ctx *gin.Context) (string, error) {
	value, err := ctx.Cookie(SessionCookieName)
	if err != nil {
		return "", errs.ErrUnauthenticated
	}
	return value, nil
}

// GetContractorFromContext returns the name stored by the session gate.
func GetContractorFromContext(ctx *gin.Context) string {
	name, ok := ctx.Get(ContractorCtxKey)
	if !ok {
		return ""
	}
	value, _ := name.(string)
	return value
}

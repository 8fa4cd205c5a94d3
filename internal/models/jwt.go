package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of a signed session cookie.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

package jwt

import "github.com/golang-jwt/jwt"

// Payload is the claim set of a signed auth cookie.
type Payload struct {
	// StandardClaims carries expiry, issue time and issuer.
	jwt.StandardClaims

	// Username is the account the cookie was issued to.
	Username string `json:"username"`
}

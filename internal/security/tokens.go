package security

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/rsa"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, has a bad
	// signature, or carries the wrong issuer or audience.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a token is past its expiry (beyond
	// the configured clock tolerance).
	ErrTokenExpired = errors.New("token expired")
	// ErrNoSigningKey is returned by Issue when the provider was built
	// without a private key (verification-only deployment).
	ErrNoSigningKey = errors.New("no signing key configured")
)

// SessionClaims holds the claims embedded in a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	// Name is the user's display name, carried as a custom claim.
	Name string `json:"name,omitempty"`
}

// TokenProvider issues and parses session JWTs signed with RS256 or ES256.
// The private key is used only for issuance and may be nil; parsing needs
// only the public key, so verification-only deployments are possible.
type TokenProvider struct {
	privateKey crypto.Signer
	publicKey  crypto.PublicKey
	issuer     string
	audience   string
	ttl        time.Duration
	leeway     time.Duration
}

// NewTokenProvider returns a TokenProvider. privateKey may be nil for a
// verifier-only provider. ttl is the default token lifetime; leeway is the
// clock tolerance applied to expiry on parse (0 disables it).
func NewTokenProvider(privateKey crypto.Signer, publicKey crypto.PublicKey, issuer, audience string, ttl, leeway time.Duration) *TokenProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenProvider{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		audience:   audience,
		ttl:        ttl,
		leeway:     leeway,
	}
}

// Issue signs a session token for subject, issued at issuedAt. The iat claim
// has second resolution on the wire; callers that need the exact issuance
// instant should keep the time they passed in. A non-positive ttl uses the
// provider default.
func (p *TokenProvider) Issue(subject, name string, issuedAt time.Time, ttl time.Duration) (string, error) {
	if p.privateKey == nil {
		return "", ErrNoSigningKey
	}
	jti, err := generateJTI()
	if err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = p.ttl
	}
	issuedAt = issuedAt.UTC()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   subject,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		Name: name,
	}
	var method jwt.SigningMethod
	switch p.privateKey.Public().(type) {
	case *rsa.PublicKey:
		method = jwt.SigningMethodRS256
	case *ecdsa.PublicKey:
		method = jwt.SigningMethodES256
	default:
		return "", ErrInvalidKey
	}
	return jwt.NewWithClaims(method, claims).SignedString(p.privateKey)
}

// Parse verifies the token signature, expiry (with leeway), issuer, and
// audience, and returns the claims. Callers must still check the claims
// against the subject's session state before trusting the token.
func (p *TokenProvider) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodRSA, *jwt.SigningMethodECDSA:
			return p.publicKey, nil
		default:
			return nil, ErrInvalidToken
		}
	},
		jwt.WithLeeway(p.leeway),
		jwt.WithIssuer(p.issuer),
		jwt.WithAudience(p.audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func generateJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

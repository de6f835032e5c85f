// AngelaMos | 2026
// jwt.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jws"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/carterperez-dev/lifehacking-api/internal/config"
	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

// Verifier validates identity tokens against either a single ES256 public
// key or a JWKS document that is refreshed in the background.
type Verifier struct {
	issuer   string
	audience string

	mu        sync.RWMutex
	publicKey jwk.Key
	keySet    jwk.Set
}

func NewVerifier(ctx context.Context, cfg config.AuthConfig) (*Verifier, error) {
	if cfg.JWKSURL != "" {
		return NewRemoteVerifier(ctx, cfg.JWKSURL, cfg.JWKSRefresh, cfg.Issuer, cfg.Audience)
	}

	publicKeyPEM, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}

	publicKey, err := jwk.ParseKey(publicKeyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return NewStaticVerifier(publicKey, cfg.Issuer, cfg.Audience), nil
}

func NewStaticVerifier(publicKey jwk.Key, issuer, audience string) *Verifier {
	return &Verifier{
		issuer:    issuer,
		audience:  audience,
		publicKey: publicKey,
	}
}

// NewRemoteVerifier fetches the key set once and keeps refreshing it until
// ctx is cancelled. A failed refresh keeps the previous set.
func NewRemoteVerifier(
	ctx context.Context,
	jwksURL string,
	refresh time.Duration,
	issuer, audience string,
) (*Verifier, error) {
	set, err := jwk.Fetch(ctx, jwksURL)
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}

	v := &Verifier{
		issuer:   issuer,
		audience: audience,
		keySet:   set,
	}

	if refresh > 0 {
		go v.refreshLoop(ctx, jwksURL, refresh)
	}

	return v, nil
}

func (v *Verifier) refreshLoop(ctx context.Context, jwksURL string, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			set, err := jwk.Fetch(ctx, jwksURL)
			if err != nil {
				slog.WarnContext(ctx, "jwks refresh failed", "error", err, "url", jwksURL)
				continue
			}

			v.mu.Lock()
			v.keySet = set
			v.mu.Unlock()
		}
	}
}

func (v *Verifier) keyOption() jwt.ParseOption {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.keySet != nil {
		return jwt.WithKeySet(v.keySet, jws.WithInferAlgorithmFromKey(true))
	}
	return jwt.WithKey(jwa.ES256(), v.publicKey)
}

func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		v.keyOption(),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf(
			"verify token: missing subject: %w",
			core.ErrTokenInvalid,
		)
	}

	identity := &Identity{Subject: subject}

	//nolint:errcheck // optional claims
	_ = token.Get("email", &identity.Email)
	//nolint:errcheck // optional claims
	_ = token.Get("name", &identity.Name)

	if iat, ok := token.IssuedAt(); ok {
		identity.IssuedAt = iat
	}
	if exp, ok := token.Expiration(); ok {
		identity.ExpiresAt = exp
	}

	return identity, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, jwt.TokenExpiredError()) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

// Issuer signs tokens with a local ES256 key. It backs the published JWKS
// and the devtoken command; production tokens come from the identity
// provider.
type Issuer struct {
	privateKey jwk.Key
	publicKey  jwk.Key
	publicJWKS jwk.Set
	issuer     string
	audience   string
	expire     time.Duration
}

func NewIssuer(cfg config.AuthConfig) (*Issuer, error) {
	privateKeyPEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}

	privateKey, err := jwk.ParseKey(privateKeyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return newIssuer(privateKey, cfg)
}

func newIssuer(privateKey jwk.Key, cfg config.AuthConfig) (*Issuer, error) {
	if setErr := privateKey.Set(jwk.AlgorithmKey, jwa.ES256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	var kid string
	if getErr := privateKey.Get(jwk.KeyIDKey, &kid); getErr != nil || kid == "" {
		if setErr := privateKey.Set(jwk.KeyIDKey, uuid.New().String()[:8]); setErr != nil {
			return nil, fmt.Errorf("set key id: %w", setErr)
		}
	}

	publicKey, err := privateKey.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}

	if setErr := publicKey.Set(jwk.KeyUsageKey, "sig"); setErr != nil {
		return nil, fmt.Errorf("set key usage: %w", setErr)
	}

	publicJWKS := jwk.NewSet()
	if addErr := publicJWKS.AddKey(publicKey); addErr != nil {
		return nil, fmt.Errorf("add key to set: %w", addErr)
	}

	expire := cfg.TokenExpire
	if expire <= 0 {
		expire = time.Hour
	}

	return &Issuer{
		privateKey: privateKey,
		publicKey:  publicKey,
		publicJWKS: publicJWKS,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		expire:     expire,
	}, nil
}

func (i *Issuer) CreateAccessToken(identity Identity) (string, error) {
	now := time.Now()

	builder := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Issuer(i.issuer).
		Audience([]string{i.audience}).
		Subject(identity.Subject).
		IssuedAt(now).
		Expiration(now.Add(i.expire)).
		NotBefore(now)

	if identity.Email != "" {
		builder = builder.Claim("email", identity.Email)
	}
	if identity.Name != "" {
		builder = builder.Claim("name", identity.Name)
	}

	token, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), i.privateKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

func (i *Issuer) PublicKey() jwk.Key {
	return i.publicKey
}

func (i *Issuer) KeyID() string {
	var kid string
	//nolint:errcheck // key ID always set in newIssuer
	_ = i.privateKey.Get(jwk.KeyIDKey, &kid)
	return kid
}

func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	jwkPrivate, err := jwk.Import(privateKey)
	if err != nil {
		return fmt.Errorf("import private key: %w", err)
	}

	keyID := uuid.New().String()[:8]
	if setErr := jwkPrivate.Set(jwk.KeyIDKey, keyID); setErr != nil {
		return fmt.Errorf("set key id: %w", setErr)
	}
	if setErr := jwkPrivate.Set(jwk.AlgorithmKey, jwa.ES256()); setErr != nil {
		return fmt.Errorf("set algorithm: %w", setErr)
	}

	privatePEM, err := jwk.Pem(jwkPrivate)
	if err != nil {
		return fmt.Errorf("encode private key: %w", err)
	}

	if writeErr := os.WriteFile(privateKeyPath, privatePEM, 0o600); writeErr != nil {
		return fmt.Errorf("write private key: %w", writeErr)
	}

	jwkPublic, err := jwkPrivate.PublicKey()
	if err != nil {
		return fmt.Errorf("derive public key: %w", err)
	}

	publicPEM, err := jwk.Pem(jwkPublic)
	if err != nil {
		return fmt.Errorf("encode public key: %w", err)
	}

	//nolint:gosec // G306: public key is intentionally world-readable
	if writeErr := os.WriteFile(publicKeyPath, publicPEM, 0o644); writeErr != nil {
		return fmt.Errorf("write public key: %w", writeErr)
	}

	return nil
}

// Package qr issues and verifies the short-lived signed tokens rendered
// as the rotating QR code on the site tablet.
package qr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	pkgerrors "asistencia/pkg/errors"
	"asistencia/pkg/requestcontext"
)

// Verification error kinds. Expiry is distinct from invalidity so the
// kiosk can tell employees to rescan instead of calling the admin.
var (
	ErrTokenExpired = pkgerrors.New(pkgerrors.CodeTokenExpired, "QR expirado. Escanea el código actualizado.")
	ErrTokenInvalid = pkgerrors.New(pkgerrors.CodeTokenInvalid, "QR inválido")
)

type claims struct {
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

// Service signs tokens with a shared HMAC secret and logs every issuance.
type Service struct {
	secret    []byte
	lifetime  time.Duration
	store     Store
	usage     UsageStore
	singleUse bool
}

// Option configures optional service behavior.
type Option func(*Service)

// WithSingleUse turns on verify-and-consume against the given usage
// store. Without it the service preserves the historical behavior of
// unlimited reuse until expiry.
func WithSingleUse(usage UsageStore) Option {
	return func(s *Service) {
		s.usage = usage
		s.singleUse = true
	}
}

func NewService(secret string, lifetime time.Duration, store Store, opts ...Option) *Service {
	s := &Service{
		secret:   []byte(secret),
		lifetime: lifetime,
		store:    store,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a token expiring after the configured lifetime. The short
// token id shown on audit screens is the first 16 hex characters of a
// SHA-256 over the issuance timestamp.
func (s *Service) Issue(ctx context.Context) (Issued, error) {
	now := requestcontext.Now(ctx).UTC()
	expires := now.Add(s.lifetime)
	tokenID := deriveTokenID(now)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return Issued{}, fmt.Errorf("sign qr token: %w", err)
	}

	record := IssuedToken{
		Token:     signed,
		TokenID:   tokenID,
		CreatedAt: now,
		ExpiresAt: expires,
	}
	if err := s.store.Append(ctx, record); err != nil {
		return Issued{}, fmt.Errorf("log issued token: %w", err)
	}

	return Issued{
		Token:           signed,
		TokenID:         tokenID,
		ExpiresAt:       expires,
		ValidForSeconds: int(s.lifetime.Seconds()),
	}, nil
}

// Verify checks signature and expiry and returns the embedded token id.
// Stateless relative to issuance: the log is never consulted.
func (s *Service) Verify(ctx context.Context, token string) (string, error) {
	now := requestcontext.Now(ctx)
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return "", ErrTokenInvalid
	}
	return c.TokenID, nil
}

// Consume marks the token id used. In single-use mode a second
// consumption of the same token is reported as invalid so the public
// error taxonomy stays unchanged; otherwise it is a no-op. Callers
// consume only once the mark is about to commit, so a rejection further
// down the pipeline never burns a still-valid token.
func (s *Service) Consume(ctx context.Context, tokenID string) error {
	if !s.singleUse {
		return nil
	}
	used, err := s.usage.MarkUsed(ctx, tokenID, s.lifetime)
	if err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}
	if used {
		return ErrTokenInvalid
	}
	return nil
}

// VerifyAndConsume is Verify plus Consume in one step, for callers with
// no commit phase of their own.
func (s *Service) VerifyAndConsume(ctx context.Context, token string) (string, error) {
	tokenID, err := s.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	if err := s.Consume(ctx, tokenID); err != nil {
		return "", err
	}
	return tokenID, nil
}

func deriveTokenID(issuedAt time.Time) string {
	sum := sha256.Sum256([]byte(strconv.FormatInt(issuedAt.UnixNano(), 10)))
	return hex.EncodeToString(sum[:])[:16]
}

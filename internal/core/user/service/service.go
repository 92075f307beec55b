package userapp

import (
	"context"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"ripple/internal/core/errs"
	userPort "ripple/internal/ports/user"
)

// IdentityService resolves the verified caller of a request from a bearer
// token. It only verifies tokens; issuing them belongs to the identity
// provider, not this service.
type IdentityService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
}

func NewIdentityService(repo userPort.UserRepository, jwtKey []byte) *IdentityService {
	return &IdentityService{
		UserRepository: repo,
		jwtKey:         jwtKey,
	}
}

// Verify parses and validates an HS256 token, then resolves the subject to an
// account so handlers get the current display name alongside the id.
func (s *IdentityService) Verify(ctx context.Context, tokenString string) (*userPort.Identity, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Wrap(errs.ErrAuth, "invalid token")
	}

	if claims.Subject == "" {
		return nil, errors.Wrap(errs.ErrAuth, "token has no subject")
	}

	u, err := s.UserRepository.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, errors.Wrap(errs.ErrAuth, "unknown user")
	}

	return &userPort.Identity{
		ID:   u.ID.String(),
		Name: u.Name,
	}, nil
}

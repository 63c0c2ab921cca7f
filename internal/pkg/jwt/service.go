package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleStartup  Role = "startup"
	RoleInvestor Role = "investor"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStartup:
		return RoleStartup, true
	case RoleInvestor:
		return RoleInvestor, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims mirrors the access tokens minted by the hosted auth provider: the
// subject is the user id and role is the marketplace side of the account.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	Role   Role      `json:"role"`
	Email  string    `json:"email,omitempty"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(userID uuid.UUID, role Role, email string) (string, error)
	ValidateToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret    []byte
	issuer    string
	expiresIn time.Duration

	now func() time.Time
}

// NewHMACService verifies HS256 tokens signed with secret. An empty issuer
// accepts tokens from any issuer.
func NewHMACService(secret, issuer string, expiresIn time.Duration) *HMACService {
	if expiresIn <= 0 {
		expiresIn = time.Hour
	}
	return &HMACService{
		secret:    []byte(secret),
		issuer:    issuer,
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(userID uuid.UUID, role Role, email string) (string, error) {
	if len(s.secret) == 0 || userID == uuid.Nil {
		return "", ErrTokenInvalid
	}
	if _, ok := ParseRole(string(role)); !ok {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrTokenInvalid
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(s.issuer))
	}
	p := jwtlib.NewParser(opts...)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	id, err := uuid.Parse(c.Subject)
	if err != nil || id == uuid.Nil {
		return Claims{}, ErrTokenInvalid
	}
	role, ok := ParseRole(string(c.Role))
	if !ok {
		return Claims{}, ErrTokenInvalid
	}

	c.UserID = id
	c.Role = role
	return c, nil
}

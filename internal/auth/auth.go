package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Role identifies the acting party on a request.
type Role string

const (
	RoleCitizen    Role = "citizen"
	RoleStaff      Role = "staff"
	RoleSupervisor Role = "supervisor"
)

// Session is the parsed identity placed in the request context. It replaces
// any ambient client-side session state: every handler receives the actor
// explicitly.
type Session struct {
	SubjectID      string
	Role           Role
	MunicipalityID string
	Name           string
}

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Role           string `json:"role"`
	MunicipalityID string `json:"municipality_id,omitempty"`
	Name           string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses session tokens.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
}

func (ti TokenIssuer) Issue(s Session) (string, error) {
	ttl := ti.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	c := claims{
		Role:           string(s.Role),
		MunicipalityID: s.MunicipalityID,
		Name:           s.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(ti.Secret)
}

func (ti TokenIssuer) Parse(token string) (Session, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return ti.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return Session{}, ErrInvalidToken
	}
	return Session{
		SubjectID:      c.Subject,
		Role:           Role(c.Role),
		MunicipalityID: c.MunicipalityID,
		Name:           c.Name,
	}, nil
}

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

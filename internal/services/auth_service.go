package services

import (
	"context"
	"strings"
	"time"

	"admindash/internal/domain"
	"admindash/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is the lifetime of an admin session token.
const SessionTTL = 24 * time.Hour

var errBadCredentials = domain.AuthError{Msg: "invalid email or password"}

type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      models.AuthorizedUser
}

type AuthService struct {
	Users  AuthorizedUserStore
	Secret []byte
	Now    func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks the password against authorized_users and issues an HS256 session token.
func (s AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, domain.ValidationError{Msg: "email and password are required"}
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return Session{}, errBadCredentials
		}
		return Session{}, storeErr("account store", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return Session{}, errBadCredentials
	}

	now := s.now()
	exp := now.Add(SessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		Email: u.Email,
		Name:  u.Name,
		Role:  strings.ToLower(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return Session{}, domain.InternalError{Msg: "could not sign session", Err: err}
	}
	return Session{Token: signed, ExpiresAt: exp, User: u}, nil
}

// ParseSession verifies a session token and returns the caller it identifies.
func (s AuthService) ParseSession(token string) (domain.RequestContext, error) {
	if strings.TrimSpace(token) == "" {
		return domain.RequestContext{}, domain.AuthError{Msg: "authentication required"}
	}
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return domain.RequestContext{}, domain.AuthError{Msg: "invalid or expired session"}
	}
	return domain.RequestContext{UserID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

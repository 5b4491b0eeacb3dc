// Package auth implements registration, login and bearer-token
// verification for the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Shashi960/money-balancer-backend/internal/core"
	"github.com/Shashi960/money-balancer-backend/internal/storage"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Token is an issued access token.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
}

// TokenIssuer signs and verifies HS256 access tokens carrying the user
// email as subject.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue creates a token for the given email.
func (i *TokenIssuer) Issue(email string) (Token, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}

	return Token{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(i.ttl.Seconds()),
	}, nil
}

// Verify parses a token and returns the subject email.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// HashPassword returns the bcrypt hash of a password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether a password matches its stored hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Service handles user registration and login against storage.
type Service struct {
	storage *storage.Repository
	issuer  *TokenIssuer
}

func NewService(storage *storage.Repository, issuer *TokenIssuer) *Service {
	return &Service{
		storage: storage,
		issuer:  issuer,
	}
}

// Register creates a new user. Emails are stored lowercase.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (core.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.storage.GetUserByEmail(ctx, email); err == nil {
		return core.User{}, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrNotFound) {
		return core.User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return core.User{}, err
	}

	user := core.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a token. It does not reveal
// whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.storage.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return Token{}, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return Token{}, ErrInvalidCredentials
	}

	return s.issuer.Issue(user.Email)
}

// VerifyBearer validates an Authorization header value and returns the
// authenticated email.
func (s *Service) VerifyBearer(header string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", ErrInvalidToken
	}
	return s.issuer.Verify(strings.TrimSpace(strings.TrimPrefix(header, prefix)))
}

package services

import (
	"errors"
	"fmt"
	"time"

	"lavka/internal/models"
	"lavka/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the token service and access control guard: it issues and
// verifies bearer tokens, hashes credentials and resolves tokens to users.
//
// Tokens are stateless and carry no revocation list; logout is client-side.
// That is a deliberate tradeoff: the TTL bounds the exposure window and the
// server keeps no session state.
type AuthService struct {
	userRepo repositories.UserRepository
	secret   []byte
	salt     string
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, secret, salt string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   []byte(secret),
		salt:     salt,
		tokenTTL: tokenTTL,
	}
}

// HashPassword combines the password with the server-wide salt and hashes it
// with bcrypt. The plaintext is never stored or logged.
func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password+s.salt), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword re-derives the salted hash and compares.
func (s *AuthService) CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password+s.salt)) == nil
}

// Login exchanges email and password for a signed token. Lookup and
// comparison failures both surface as ErrInvalidCredentials so the response
// does not reveal whether the email is registered.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !s.CheckPassword(user.HashedPassword, password) {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(user.ID)
}

// IssueToken signs an HS256 token carrying the user id as subject with
// issued-at and expiry claims.
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates signature and expiry and returns the subject user
// id. Expiry surfaces as ErrTokenExpired; a bad signature, an unexpected
// algorithm, a malformed payload or a subject that does not parse as a user
// id all surface as ErrInvalidToken.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(sub); err != nil {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// Authenticate resolves a token to its user. A token whose subject no
// longer exists (deleted user) fails the same way a bad token does.
func (s *AuthService) Authenticate(tokenString string) (*models.User, error) {
	userID, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("token subject: %w", err)
	}
	return user, nil
}

// RequireRole checks the user's role against an allow list.
func RequireRole(user *models.User, allowed ...models.UserRole) error {
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

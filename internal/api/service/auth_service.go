package service

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"workhub/internal/api/models"
	"workhub/internal/api/permissions"
	"workhub/internal/api/repository"
	"workhub/internal/auth"
	"workhub/internal/config"
	"workhub/internal/mailer"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrReservedUsername = errors.New("username is reserved")
	ErrInvalidUsername  = errors.New("username contains invalid characters")
	ErrUsernameTaken    = errors.New("username already bound to a different account")
	ErrEmailTaken       = errors.New("email already bound to a different account")
	ErrUserNotFound     = errors.New("user not found")
	ErrCodeMismatch     = errors.New("invalid confirmation code")
	ErrInvalidToken     = errors.New("invalid token")
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// AuthService covers the whole passwordless flow: signup issues a
// confirmation code through the delivery channel, IssueToken exchanges it
// for a signed access token, Authenticate validates tokens on later
// requests.
type AuthService interface {
	Signup(username, email string) (*models.User, error)
	IssueToken(username, code string) (string, error)
	Authenticate(tokenString string) (*models.User, error)
}

type authService struct {
	userRepo       repository.UserRepository
	mailer         mailer.Mailer
	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	m mailer.Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		mailer:         m,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// Signup registers the (username, email) identity and dispatches a fresh
// confirmation code. Calling it again for the same pair regenerates the
// code, which invalidates the previous one. Either field bound to a
// different identity is a conflict.
func (s *authService) Signup(username, email string) (*models.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	byName, err := s.userRepo.FindByUsername(username)
	if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}
	if byName != nil {
		if byName.Email != email {
			return nil, ErrUsernameTaken
		}
		// Idempotent re-request: rotate the code for the same identity.
		return s.issueCode(byName)
	}

	byEmail, err := s.userRepo.FindByEmail(email)
	if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}
	if byEmail != nil {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Role:     string(permissions.RoleUser),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.issueCode(user)
}

// issueCode generates, stores (hashed) and dispatches a code. A delivery
// failure fails the whole operation; the pending record stays behind and a
// signup re-request recovers it.
func (s *authService) issueCode(user *models.User) (*models.User, error) {
	code, err := auth.GenerateCode()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashCode(code)
	if err != nil {
		return nil, err
	}

	user.PendingCode = &hash
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendConfirmationCode(user.Email, code); err != nil {
		return nil, err
	}
	return user, nil
}

// IssueToken verifies the confirmation code and returns a signed access
// token. Only the single most recently issued code verifies; verification
// does not consume the code, so an identical retry still succeeds.
func (s *authService) IssueToken(username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if user.PendingCode == nil {
		return "", ErrCodeMismatch
	}
	if err := auth.VerifyCode(*user.PendingCode, code); err != nil {
		return "", ErrCodeMismatch
	}

	if user.ConfirmedAt == nil {
		now := time.Now()
		user.ConfirmedAt = &now
		if err := s.userRepo.Update(user); err != nil {
			return "", err
		}
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// Authenticate resolves a token back to its user. Bad signature, expiry
// and unknown subject all collapse into ErrInvalidToken; the pending-code
// state plays no part here.
func (s *authService) Authenticate(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func validateUsername(username string) error {
	if strings.EqualFold(username, "me") {
		return ErrReservedUsername
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

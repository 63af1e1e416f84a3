package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"propertypulse/internal/config"
	"propertypulse/internal/models"
	"propertypulse/internal/oauth"
	"propertypulse/internal/repository"
)

// maxUsernameLen caps usernames taken from the identity provider.
const maxUsernameLen = 20

type AuthService interface {
	// LoginURL returns the provider consent URL carrying the CSRF state.
	LoginURL(state string) string
	// HandleCallback exchanges the authorization code, lazily creates the
	// user on first sign-in and returns a signed session token.
	HandleCallback(ctx context.Context, code string) (*models.User, string, error)
	// SessionFromToken validates a session token and resolves the identity.
	SessionFromToken(tokenString string) (*models.Session, error)
	// CurrentUser loads the user document behind a session.
	CurrentUser(ctx context.Context, sess *models.Session) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	provider oauth.Provider
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, provider oauth.Provider, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		provider: provider,
		cfg:      cfg,
	}
}

func (s *authService) LoginURL(state string) string {
	return s.provider.AuthURL(state)
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*models.User, string, error) {
	claims, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("sign-in failed: %w", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if errors.Is(err, repository.ErrNotFound) {
		user = &models.User{
			Email:    claims.Email,
			Username: truncateUsername(claims.Name),
			Image:    claims.Picture,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return nil, "", err
	}

	token, err := s.generateSessionToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) SessionFromToken(tokenString string) (*models.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid session token claims")
	}

	userID, ok1 := claims["userId"].(string)
	email, ok2 := claims["email"].(string)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("invalid session token claims")
	}

	return &models.Session{UserID: userID, Email: email}, nil
}

func (s *authService) CurrentUser(ctx context.Context, sess *models.Session) (*models.User, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	oid, err := primitive.ObjectIDFromHex(sess.UserID)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, oid)
	if errors.Is(err, repository.ErrNotFound) {
		// The session references a user that no longer exists.
		return nil, ErrUnauthenticated
	}
	return user, err
}

func (s *authService) generateSessionToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID.Hex(),
		"email":  user.Email,
		"exp":    time.Now().Add(s.cfg.SessionDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

func truncateUsername(name string) string {
	runes := []rune(name)
	if len(runes) > maxUsernameLen {
		return string(runes[:maxUsernameLen])
	}
	return name
}

package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"pousada/constants"
	"pousada/errors"
	"pousada/models"
	"pousada/services/logger"
	"pousada/types"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL           = 24 * time.Hour
	revokedTokenPrefix = "auth:revoked:"
	mockPassword       = "password"
)

type Claims struct {
	UserInfo types.AuthUser `json:"userinfo"`
	jwt.StandardClaims
}

// mockUsers is the fixed staff directory; passwords are bcrypt hashed at startup
var mockUsers = []models.User{
	{ID: 1, Name: "Administrador", Email: "admin@example.com", Role: constants.RoleAdmin},
	{ID: 2, Name: "Gerente", Email: "gerente@example.com", Role: constants.RoleManager},
	{ID: 3, Name: "Recepcionista", Email: "user@example.com", Role: constants.RoleUser},
}

type AuthService struct {
	secret []byte
	users  []models.User
	cache  Cache
	logger logger.Logger
	now    func() time.Time
}

type AuthServiceOptions struct {
	Secret string
	Cache  Cache
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Secret == "" {
		return nil, errors.Internal("JWT_SECRET is not set", nil)
	}
	if opts.Cache == nil {
		opts.Cache = NopCache{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(mockPassword), bcrypt.MinCost)
	if err != nil {
		return nil, errors.Internal("failed to hash password", err)
	}
	users := make([]models.User, len(mockUsers))
	for i, u := range mockUsers {
		u.PasswordHash = string(hash)
		users[i] = u
	}
	return &AuthService{
		secret: []byte(opts.Secret),
		users:  users,
		cache:  opts.Cache,
		logger: opts.Logger,
		now:    time.Now,
	}, nil
}

// Login checks the credentials and issues a signed token
func (s *AuthService) Login(email, password string) (*types.AuthUser, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
			return nil, "", errors.NewAppError(errors.ErrCodeInvalidPassword, "invalid email or password", nil)
		}
		user := types.AuthUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
		token, err := s.issue(user)
		if err != nil {
			return nil, "", err
		}
		s.logger.Info("user %s logged in", u.Email)
		return &user, token, nil
	}
	return nil, "", errors.NewAppError(errors.ErrCodeInvalidPassword, "invalid email or password", nil)
}

func (s *AuthService) issue(user types.AuthUser) (string, error) {
	now := s.now()
	claims := &Claims{
		UserInfo: user,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Internal("failed to sign token", err)
	}
	return token, nil
}

// Verify validates the signature, the expiry and the revocation list
func (s *AuthService) Verify(ctx context.Context, tokenString string) (*types.AuthUser, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "unexpected signing method", nil)
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "invalid token", err)
	}
	var revoked bool
	hit, err := s.cache.Get(ctx, revokedKey(tokenString), &revoked)
	if err != nil {
		s.logger.Warn("revocation lookup failed: %v", err)
	} else if hit && revoked {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "token has been revoked", nil)
	}
	user := claims.UserInfo
	return &user, nil
}

// Logout revokes the token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims := &Claims{}
	_, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims)
	if err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidToken, "invalid token", err)
	}
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, revokedKey(tokenString), true, ttl); err != nil {
		return errors.Internal("failed to revoke token", err)
	}
	return nil
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedTokenPrefix + hex.EncodeToString(sum[:])
}

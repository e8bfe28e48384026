package service

import (
	"context"
	"errors"
	"fmt"
	"hotel-booking/config"
	"hotel-booking/internal/dto"
	"hotel-booking/internal/model"
	"hotel-booking/internal/repository"
	"hotel-booking/pkg/logger"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req dto.UserAuthRequest) (*model.User, error)
	Login(ctx context.Context, req dto.UserAuthRequest) (string, error)
	UserFromToken(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	cfg      config.Auth
	log      *logger.Logger
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewAuthService(cfg config.Auth, log *logger.Logger, userRepo repository.UserRepository) AuthService {
	return &authService{cfg: cfg, log: log, userRepo: userRepo, now: time.Now}
}

func (s *authService) Register(ctx context.Context, req dto.UserAuthRequest) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, dto.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &model.User{Email: req.Email, HashedPassword: string(hashed)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, dto.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.log.InfoContext(ctx, "User registered", logger.IntField("user_id", int(user.ID)))
	return user, nil
}

func (s *authService) Login(ctx context.Context, req dto.UserAuthRequest) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", dto.ErrIncorrectEmailOrPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return "", dto.ErrIncorrectEmailOrPassword
	}
	return s.issueToken(user.ID)
}

func (s *authService) issueToken(userID uint) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}
	method := jwt.GetSigningMethod(s.cfg.Algorithm)
	if method == nil {
		return "", fmt.Errorf("unsupported signing algorithm %q", s.cfg.Algorithm)
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *authService) UserFromToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, dto.ErrTokenAbsent
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	}, jwt.WithValidMethods([]string{s.cfg.Algorithm}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dto.ErrTokenExpired
		}
		return nil, dto.ErrIncorrectTokenFormat
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, dto.ErrUserIsNotPresent
	}
	user, err := s.userRepo.FindByID(ctx, uint(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, dto.ErrUserIsNotPresent
	}
	return user, nil
}

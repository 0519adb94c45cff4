package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
	"golang.org/x/crypto/bcrypt"

	"github.com/geraud82/NeoPay-sub000/internal/caching"
	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/repositories"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	IssueTokens(ctx context.Context, user *models.User, companyID *uuid.UUID, role models.Role) (*models.TokenResponse, error)
}

type authService struct {
	userRepo        repositories.UserRepository
	companyUserRepo repositories.CompanyUserRepository
	cache           caching.CacheService
	jwtSecret       []byte
}

func NewAuthService(userRepo repositories.UserRepository, companyUserRepo repositories.CompanyUserRepository,
	cache caching.CacheService, jwtSecret string) AuthService {
	return &authService{
		userRepo:        userRepo,
		companyUserRepo: companyUserRepo,
		cache:           cache,
		jwtSecret:       []byte(jwtSecret),
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := common.ValidateRequiredString(input.Email, "email"); err != nil {
		return nil, common.Validationf("%s", err.Error())
	}
	if len(input.Password) < 8 {
		return nil, common.Validationf("password must be at least 8 characters")
	}

	if existing, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, common.Validationf("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Status:       "active",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	companyID, role := s.resolveMembership(ctx, user.ID)
	return s.IssueTokens(ctx, user, companyID, role)
}

// resolveMembership picks the user's primary company membership. Users with
// no membership get role user and no company claim; a company-less admin is
// provisioned out of band.
func (s *authService) resolveMembership(ctx context.Context, userID uuid.UUID) (*uuid.UUID, models.Role) {
	memberships, err := s.companyUserRepo.ListByUser(ctx, userID)
	if err != nil || len(memberships) == 0 {
		return nil, models.RoleUser
	}
	first := memberships[0]
	return &first.CompanyID, first.Role
}

func (s *authService) IssueTokens(ctx context.Context, user *models.User, companyID *uuid.UUID, role models.Role) (*models.TokenResponse, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}
	if companyID != nil {
		claims["company_id"] = companyID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken := random.String(64)
	refreshKey := fmt.Sprintf("neopay:refresh:%s", refreshToken)
	if err := s.cache.SetString(ctx, refreshKey, user.ID.String(), refreshTokenTTL); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	resp := &models.TokenResponse{
		AccessToken:  signed,
		TokenType:    "Bearer",
		ExpiresIn:    int(accessTokenTTL.Seconds()),
		RefreshToken: refreshToken,
		UserID:       user.ID.String(),
		Role:         string(role),
		IssuedAt:     now,
	}
	if companyID != nil {
		resp.CompanyID = companyID.String()
	}
	return resp, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	refreshKey := fmt.Sprintf("neopay:refresh:%s", refreshToken)
	userIDStr, err := s.cache.GetString(ctx, refreshKey)
	if err != nil {
		return nil, err
	}
	if userIDStr == "" {
		return nil, ErrInvalidCredentials
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Rotate: old token is invalidated before the new pair is issued.
	if err := s.cache.Delete(ctx, refreshKey); err != nil {
		return nil, err
	}

	companyID, role := s.resolveMembership(ctx, user.ID)
	return s.IssueTokens(ctx, user, companyID, role)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	refreshKey := fmt.Sprintf("neopay:refresh:%s", refreshToken)
	return s.cache.Delete(ctx, refreshKey)
}

func (s *authService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

package services

import (
	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/app/repositories"
	"github.com/shringarlabs/shringar/pkg/auth"
	"github.com/shringarlabs/shringar/pkg/errs"
	"github.com/shringarlabs/shringar/pkg/orm"
)

type RegisterInput struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult bundles the user with their tokens.
type AuthResult struct {
	User         models.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
}

// AuthService handles registration, login and token issuance.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register creates a customer account and signs them in.
func (s *AuthService) Register(input RegisterInput) (AuthResult, error) {
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hash,
		Role:     "user",
	}
	if err := s.users.Create(&user); err != nil {
		if orm.IsDuplicateKey(err) {
			return AuthResult{}, errs.ValidationField("email", "email is already registered")
		}
		return AuthResult{}, err
	}

	return s.issueTokens(user)
}

// Login checks credentials and issues tokens. Unknown email and wrong
// password fail identically so the response leaks nothing.
func (s *AuthService) Login(input LoginInput) (AuthResult, error) {
	user, err := s.users.FindByEmail(input.Email)
	if err != nil {
		if orm.IsNotFound(err) {
			return AuthResult{}, errs.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if !auth.CheckPassword(user.Password, input.Password) {
		return AuthResult{}, errs.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Me returns the profile for an authenticated user id.
func (s *AuthService) Me(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.User{}, errs.NotFound("user", "")
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *AuthService) issueTokens(user models.User) (AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return AuthResult{}, err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token, RefreshToken: refresh}, nil
}

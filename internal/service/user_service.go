package service

import (
	"context"
	"strings"

	"blogsite/internal/models"
	"blogsite/internal/observability"
	"blogsite/internal/repository"
	"blogsite/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
	hash     func(password []byte) ([]byte, error)
	compare  func(hash, password []byte) error
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type UpdateProfileInput struct {
	UserID  uint
	Name    string
	Bio     string
	Picture string
}

func NewUserService(userRepo repository.UserRepository, tokens *TokenService) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		hash: func(password []byte) ([]byte, error) {
			return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
		},
		compare: bcrypt.CompareHashAndPassword,
	}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Name, email, and password are required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		observability.AuthAttempts.WithLabelValues("register", "conflict").Inc()
		return nil, models.NewConflictError("Email already exists")
	}

	if err := validation.ValidatePassword(in.Password); err != nil {
		observability.AuthAttempts.WithLabelValues("register", "weak_password").Inc()
		return nil, models.NewWeakPasswordError("Password must be at least 6 characters long and contain at least one uppercase and one lowercase letter")
	}

	hashed, err := s.hash([]byte(in.Password))
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
	}
	// A concurrent registration with the same email surfaces here as a conflict.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.AuthAttempts.WithLabelValues("register", "success").Inc()
	return user, nil
}

// Login checks the credentials and returns a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		observability.AuthAttempts.WithLabelValues("login", "unknown_user").Inc()
		return "", nil, models.NewNotFoundMessage("User not found")
	}

	if err := s.compare([]byte(user.Password), []byte(password)); err != nil {
		observability.AuthAttempts.WithLabelValues("login", "invalid_password").Inc()
		return "", nil, models.NewInvalidPasswordError()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	observability.AuthAttempts.WithLabelValues("login", "success").Inc()
	return token, user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewNotFoundMessage("User not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes only the fields supplied non-empty.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxNameLen = 100

	if name := strings.TrimSpace(in.Name); name != "" {
		if len(name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		user.Name = name
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Picture != "" {
		user.Picture = in.Picture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

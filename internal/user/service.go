package user

import (
	"context"
	"fmt"
	"net/mail"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type RegisterInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
	Role      Role
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, User, error)
	Authenticate(ctx context.Context, email, password string) (string, User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateRegisterInput(input RegisterInput) error {
	fields := map[string]string{}

	if input.Firstname == "" {
		fields["firstname"] = "First name is required"
	}
	if input.Lastname == "" {
		fields["lastname"] = "Last name is required"
	}
	if input.Email == "" {
		fields["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		fields["email"] = "Email should be valid"
	}
	if input.Password == "" {
		fields["password"] = "Password is required"
	} else if len(input.Password) < 6 {
		fields["password"] = "Password must be at least 6 characters"
	}
	if input.Role != "" && !input.Role.Valid() {
		fields["role"] = "Role must be CUSTOMER or ADMIN"
	}

	if len(fields) > 0 {
		return apperr.FieldViolations(fields)
	}
	return nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, User, error) {
	log := logger.FromCtx(ctx)

	if err := validateRegisterInput(input); err != nil {
		return "", User{}, err
	}

	role := input.Role
	if role == "" {
		role = RoleCustomer
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, User{
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		Email:     input.Email,
		Password:  hashed,
		Role:      role,
	})
	if err != nil {
		log.Error("failed to create user", zap.String("email", input.Email), zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", fmt.Sprint(u.ID)), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register completed",
		zap.String("user_id", fmt.Sprint(u.ID)),
		zap.String("email", u.Email),
	)

	return token, u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	// The same generic message covers both unknown email and bad
	// password so callers cannot probe which emails are registered.
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("authenticate: email not found", zap.Error(err))
		return "", User{}, apperr.Auth("invalid email or password")
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("authenticate: password mismatch", zap.String("email", email))
		return "", User{}, apperr.Auth("invalid email or password")
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email)
	if err != nil {
		return "", User{}, err
	}

	return token, u, nil
}

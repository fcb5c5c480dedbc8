package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/agrovet-backend/internal/data/repos"
	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

type RegisterInput struct {
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Role           user.Role        `json:"role"`
	Specialization catalog.CourseID `json:"specialization,omitempty"`
}

type AuthService interface {
	// EnsureGuestSession logs in the default guest student when nobody is
	// logged in, registering it first if needed.
	EnsureGuestSession(ctx context.Context) (*user.User, error)
	Register(ctx context.Context, in RegisterInput) (*user.User, error)
	Login(ctx context.Context, email string) (*user.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*user.User, error)
}

type authService struct {
	log  *logger.Logger
	repo *repos.Repository
}

func NewAuthService(log *logger.Logger, repo *repos.Repository) AuthService {
	return &authService{log: log.With("service", "AuthService"), repo: repo}
}

func (as *authService) EnsureGuestSession(ctx context.Context) (*user.User, error) {
	cur, err := as.repo.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if cur != nil {
		return cur, nil
	}

	guest := user.Guest()
	existing, err := as.repo.FindUser(ctx, guest.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		err := as.repo.RegisterUser(ctx, guest)
		if err != nil && !errors.Is(err, perrors.ErrDuplicateEmail) {
			return nil, fmt.Errorf("provision guest: %w", err)
		}
	}
	u, err := as.repo.Login(ctx, guest.Email)
	if err != nil {
		return nil, fmt.Errorf("guest login: %w", err)
	}
	as.log.Info("guest session started", "user_id", u.ID)
	return u, nil
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required: %w", perrors.ErrInvalidArgument)
	}

	var u *user.User
	switch in.Role {
	case user.RoleStudent, "":
		u = user.NewStudent(name, email)
	case user.RoleProfessor:
		if in.Specialization != "" && !in.Specialization.Valid() {
			return nil, fmt.Errorf("unknown specialization %q: %w", in.Specialization, perrors.ErrInvalidArgument)
		}
		u = user.NewProfessor(name, email, in.Specialization)
	default:
		return nil, fmt.Errorf("unknown role %q: %w", in.Role, perrors.ErrInvalidArgument)
	}

	if err := as.repo.RegisterUser(ctx, u); err != nil {
		return nil, err
	}
	return as.repo.Login(ctx, u.Email)
}

func (as *authService) Login(ctx context.Context, email string) (*user.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", perrors.ErrInvalidArgument)
	}
	return as.repo.Login(ctx, email)
}

func (as *authService) Logout(ctx context.Context) error {
	return as.repo.Logout(ctx)
}

func (as *authService) Current(ctx context.Context) (*user.User, error) {
	cur, err := as.repo.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, perrors.ErrNoSession
	}
	return cur, nil
}

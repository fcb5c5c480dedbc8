package services

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

func TestEnsureGuestSession(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewAuthService(logger.Nop(), repo)
	ctx := context.Background()

	u, err := svc.EnsureGuestSession(ctx)
	if err != nil {
		t.Fatalf("EnsureGuestSession: %v", err)
	}
	if u.ID != user.GuestID || u.StudentCode() != user.GuestStudentCode || u.AvatarColor != "bg-emerald-600" {
		t.Fatalf("unexpected guest: %+v", u)
	}

	// second call keeps the session and does not duplicate the guest
	if _, err := svc.EnsureGuestSession(ctx); err != nil {
		t.Fatalf("EnsureGuestSession again: %v", err)
	}
	users, _ := repo.ListUsers(ctx)
	if len(users) != 1 {
		t.Fatalf("guest duplicated: %d users", len(users))
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.EnsureGuestSession(ctx); err != nil {
		t.Fatalf("EnsureGuestSession after logout: %v", err)
	}
	if users, _ := repo.ListUsers(ctx); len(users) != 1 {
		t.Fatalf("guest re-registered: %d users", len(users))
	}
}

func TestEnsureGuestSessionKeepsExistingSession(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewAuthService(logger.Nop(), repo)
	ctx := context.Background()
	ana := user.NewStudent("Ana", "a@x.com")
	seedAndLogin(t, repo, ana)

	u, err := svc.EnsureGuestSession(ctx)
	if err != nil || u.ID != ana.ID {
		t.Fatalf("EnsureGuestSession replaced session: %v %v", u, err)
	}
}

func TestRegisterLogsIn(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewAuthService(logger.Nop(), repo)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: " Paulo ", Email: "p@x.com", Role: user.RoleProfessor})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Specialization() != catalog.Agronomia || u.AvatarColor != "bg-emerald-600" {
		t.Fatalf("professor defaults: %+v", u)
	}
	cur, err := svc.Current(ctx)
	if err != nil || cur.ID != u.ID {
		t.Fatalf("Current: %v %v", cur, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewAuthService(logger.Nop(), repo)
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
		want error
	}{
		{"missing name", RegisterInput{Email: "a@x.com", Role: user.RoleStudent}, perrors.ErrInvalidArgument},
		{"missing email", RegisterInput{Name: "A", Role: user.RoleStudent}, perrors.ErrInvalidArgument},
		{"bad role", RegisterInput{Name: "A", Email: "a@x.com", Role: "admin"}, perrors.ErrInvalidArgument},
		{"bad specialization", RegisterInput{Name: "A", Email: "a@x.com", Role: user.RoleProfessor, Specialization: "medicina"}, perrors.ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}

	if _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@x.com"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Name: "B", Email: "a@x.com"}); !errors.Is(err, perrors.ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail got %v", err)
	}
}

func TestCurrentWithoutSession(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewAuthService(logger.Nop(), repo)
	if _, err := svc.Current(context.Background()); !errors.Is(err, perrors.ErrNoSession) {
		t.Fatalf("want ErrNoSession got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	repo, _ := newTestRepo(t)
	svc := NewAuthService(logger.Nop(), repo)
	if _, err := svc.Login(context.Background(), "x@x.com"); !errors.Is(err, perrors.ErrAuthenticationFailure) {
		t.Fatalf("want ErrAuthenticationFailure got %v", err)
	}
	if _, err := svc.Login(context.Background(), " "); !errors.Is(err, perrors.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument got %v", err)
	}
}

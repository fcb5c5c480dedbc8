package repos

import (
	"context"
	"fmt"
	"sync"

	"github.com/yungbote/agrovet-backend/internal/data/collections"
	"github.com/yungbote/agrovet-backend/internal/domain/chat"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	"github.com/yungbote/agrovet-backend/internal/observability"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
	"github.com/yungbote/agrovet-backend/internal/realtime/bus"
)

// Repository is the only writer of the user and message collections.
// Every operation holds mu for its whole read-modify-write; publishing
// happens after mu is released so listeners can read back.
type Repository struct {
	mu    sync.Mutex
	store *collections.Adapter
	bus   bus.Bus
	log   *logger.Logger
}

func New(store *collections.Adapter, b bus.Bus, baseLog *logger.Logger) *Repository {
	return &Repository{
		store: store,
		bus:   b,
		log:   baseLog.With("repo", "Repository"),
	}
}

func (r *Repository) Bus() bus.Bus { return r.bus }

func (r *Repository) publish(op string) {
	observability.Current().IncStatePublish(op)
	if r.bus != nil {
		r.bus.Publish()
	}
}

func (r *Repository) ListUsers(ctx context.Context) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.store.ReadUsers(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// FindUser re-reads the canonical record; nil means no such user.
func (r *Repository) FindUser(ctx context.Context, id string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.store.ReadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexByID(users, id); i >= 0 {
		return users[i], nil
	}
	return nil, nil
}

func (r *Repository) RegisterUser(ctx context.Context, candidate *user.User) error {
	if candidate == nil || candidate.ID == "" || candidate.Profile == nil {
		return fmt.Errorf("register user: %w", perrors.ErrInvalidArgument)
	}
	wrote, err := r.mutateUsers(ctx, func(users []*user.User) ([]*user.User, error) {
		for _, u := range users {
			if u.Email == candidate.Email {
				return nil, fmt.Errorf("register %q: %w", candidate.Email, perrors.ErrDuplicateEmail)
			}
			if u.ID == candidate.ID {
				return nil, fmt.Errorf("register id %q: %w", candidate.ID, perrors.ErrInvalidArgument)
			}
		}
		return append(users, candidate.Clone()), nil
	})
	if wrote {
		r.publish("register_user")
	}
	if err != nil {
		return err
	}
	r.log.Info("user registered", "user_id", candidate.ID, "role", candidate.Role())
	return nil
}

// UpdateUser replaces the record with the same id and reports whether it
// existed. It publishes once either way.
func (r *Repository) UpdateUser(ctx context.Context, updated *user.User) (bool, error) {
	if updated == nil {
		return false, fmt.Errorf("update user: %w", perrors.ErrInvalidArgument)
	}
	found := false
	wrote, err := r.mutateUsers(ctx, func(users []*user.User) ([]*user.User, error) {
		i := indexByID(users, updated.ID)
		if i < 0 {
			return nil, nil
		}
		found = true
		users[i] = updated.Clone()
		return users, nil
	})
	if err != nil && !wrote {
		return false, err
	}
	if !found {
		r.log.Warn("update for unknown user ignored", "user_id", updated.ID)
	}
	r.publish("update_user")
	return found, err
}

// ModifyUser applies fn to a copy of the record with the given id and
// stores the result, all under one hold of mu. A nil user means no such
// id; an error from fn leaves the record untouched and publishes nothing.
func (r *Repository) ModifyUser(ctx context.Context, id string, fn func(u *user.User) error) (*user.User, error) {
	if fn == nil {
		return nil, fmt.Errorf("modify user: %w", perrors.ErrInvalidArgument)
	}
	var out *user.User
	wrote, err := r.mutateUsers(ctx, func(users []*user.User) ([]*user.User, error) {
		i := indexByID(users, id)
		if i < 0 {
			return nil, nil
		}
		next := users[i].Clone()
		if err := fn(next); err != nil {
			return nil, err
		}
		next.ID = users[i].ID
		users[i] = next
		out = next.Clone()
		return users, nil
	})
	if wrote {
		r.publish("update_user")
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteUser removes the record and ends the session if it belonged to it.
// It publishes once whether or not anything was removed.
func (r *Repository) DeleteUser(ctx context.Context, id string) (bool, error) {
	found := false
	wrote, err := r.mutateUsers(ctx, func(users []*user.User) ([]*user.User, error) {
		i := indexByID(users, id)
		if i < 0 {
			return nil, nil
		}
		found = true
		return append(users[:i], users[i+1:]...), nil
	})
	if err != nil && !wrote {
		return false, err
	}
	if found {
		r.log.Info("user deleted", "user_id", id)
	}
	r.publish("delete_user")
	return found, err
}

// mutateUsers runs one read-modify-write of the users collection under mu.
// fn returns the new collection, or nil to leave it unwritten. wrote
// reports whether the users write happened, so callers still publish when
// only the session sync that follows it failed.
func (r *Repository) mutateUsers(ctx context.Context, fn func(users []*user.User) ([]*user.User, error)) (wrote bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, err := r.store.ReadSession(ctx)
	if err != nil {
		return false, err
	}
	users, err := r.store.ReadUsers(ctx)
	if err != nil {
		return false, err
	}
	next, err := fn(users)
	if err != nil || next == nil {
		return false, err
	}
	if err := r.store.WriteUsers(ctx, next); err != nil {
		return false, err
	}
	return true, r.syncSession(ctx, sess, next)
}

func (r *Repository) Login(ctx context.Context, email string) (*user.User, error) {
	u, err := r.loginLocked(ctx, email)
	if err != nil {
		return nil, err
	}
	r.log.Info("session started", "user_id", u.ID)
	r.publish("login")
	return u, nil
}

func (r *Repository) loginLocked(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.store.ReadUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			if err := r.store.WriteSession(ctx, u); err != nil {
				return nil, err
			}
			return u.Clone(), nil
		}
	}
	return nil, fmt.Errorf("login %q: %w", email, perrors.ErrAuthenticationFailure)
}

// Logout clears the session and always publishes, even when nobody was
// logged in.
func (r *Repository) Logout(ctx context.Context) error {
	r.mu.Lock()
	err := r.store.ClearSession(ctx)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	r.publish("logout")
	return nil
}

// CurrentUser returns nil when there is no session.
func (r *Repository) CurrentUser(ctx context.Context) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.ReadSession(ctx)
}

func (r *Repository) ListMessages(ctx context.Context) ([]chat.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.ReadMessages(ctx)
}

// SendMessage appends without checking mute state or content; callers
// validate both against a fresh read first.
func (r *Repository) SendMessage(ctx context.Context, msg chat.ChatMessage) (chat.ChatMessage, error) {
	stored, err := r.appendLocked(ctx, msg)
	if err != nil {
		return chat.ChatMessage{}, err
	}
	r.publish("send_message")
	return stored, nil
}

func (r *Repository) appendLocked(ctx context.Context, msg chat.ChatMessage) (chat.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs, err := r.store.ReadMessages(ctx)
	if err != nil {
		return chat.ChatMessage{}, err
	}
	// timestamps stay non-decreasing in insertion order even if the clock steps back
	if n := len(msgs); n > 0 && msg.Timestamp < msgs[n-1].Timestamp {
		msg.Timestamp = msgs[n-1].Timestamp
	}
	msgs = append(msgs, msg)
	if err := r.store.WriteMessages(ctx, msgs); err != nil {
		return chat.ChatMessage{}, err
	}
	return msg, nil
}

// syncSession brings the session copy in line with the users just written:
// refreshed from the record with the same id, or cleared when that record
// is gone. Callers hold mu.
func (r *Repository) syncSession(ctx context.Context, sess *user.User, users []*user.User) error {
	if sess == nil {
		return nil
	}
	if i := indexByID(users, sess.ID); i >= 0 {
		return r.store.WriteSession(ctx, users[i])
	}
	return r.store.ClearSession(ctx)
}

func indexByID(users []*user.User, id string) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

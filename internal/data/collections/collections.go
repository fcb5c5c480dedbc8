package collections

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yungbote/agrovet-backend/internal/data/db"
	"github.com/yungbote/agrovet-backend/internal/domain/chat"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

const (
	KeyUsers       = "agrovet_users"
	KeyMessages    = "agrovet_messages"
	KeyCurrentUser = "agrovet_current_user"
)

// Adapter serializes the logical collections as JSON text in a db.Store.
// Absent keys and text that is not a JSON array both read as empty; an
// array element that does not decode is skipped and the rest are kept.
// Only backend failures surface as errors.
type Adapter struct {
	store db.Store
	log   *logger.Logger
}

func New(store db.Store, baseLog *logger.Logger) *Adapter {
	return &Adapter{store: store, log: baseLog.With("component", "CollectionsAdapter")}
}

func readCollection[T any](ctx context.Context, a *Adapter, key string) ([]T, error) {
	raw, ok, err := a.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		a.log.Warn("malformed collection; treating as empty", "key", key, "error", err)
		return []T{}, nil
	}
	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		var rec T
		if err := json.Unmarshal(elem, &rec); err != nil {
			a.log.Warn("skipping malformed record", "key", key, "index", i, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func writeCollection[T any](ctx context.Context, a *Adapter, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (a *Adapter) ReadUsers(ctx context.Context) ([]*user.User, error) {
	users, err := readCollection[*user.User](ctx, a, KeyUsers)
	if err != nil {
		return nil, err
	}
	// a literal null element decodes to a nil pointer
	out := users[:0]
	for _, u := range users {
		if u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (a *Adapter) WriteUsers(ctx context.Context, users []*user.User) error {
	return writeCollection(ctx, a, KeyUsers, users)
}

func (a *Adapter) ReadMessages(ctx context.Context) ([]chat.ChatMessage, error) {
	return readCollection[chat.ChatMessage](ctx, a, KeyMessages)
}

func (a *Adapter) WriteMessages(ctx context.Context, msgs []chat.ChatMessage) error {
	return writeCollection(ctx, a, KeyMessages, msgs)
}

// ReadSession returns nil when no session is stored.
func (a *Adapter) ReadSession(ctx context.Context) (*user.User, error) {
	raw, ok, err := a.store.Get(ctx, KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", KeyCurrentUser, err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var u *user.User
	if err := json.Unmarshal(raw, &u); err != nil {
		a.log.Warn("malformed session; treating as absent", "key", KeyCurrentUser, "error", err)
		return nil, nil
	}
	return u, nil
}

func (a *Adapter) WriteSession(ctx context.Context, u *user.User) error {
	if u == nil {
		return a.ClearSession(ctx)
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyCurrentUser, err)
	}
	if err := a.store.Set(ctx, KeyCurrentUser, raw); err != nil {
		return fmt.Errorf("write %s: %w", KeyCurrentUser, err)
	}
	return nil
}

func (a *Adapter) ClearSession(ctx context.Context) error {
	if err := a.store.Delete(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("clear %s: %w", KeyCurrentUser, err)
	}
	return nil
}

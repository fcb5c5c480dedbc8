package collections

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/yungbote/agrovet-backend/internal/data/db"
	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	"github.com/yungbote/agrovet-backend/internal/domain/chat"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

func newAdapter(t *testing.T) (*Adapter, *db.MemoryStore) {
	t.Helper()
	store := db.NewMemoryStore()
	return New(store, logger.Nop()), store
}

func TestReadAbsentCollectionsAreEmpty(t *testing.T) {
	a, _ := newAdapter(t)
	ctx := context.Background()

	users, err := a.ReadUsers(ctx)
	if err != nil || users == nil || len(users) != 0 {
		t.Fatalf("ReadUsers: users=%v err=%v", users, err)
	}
	msgs, err := a.ReadMessages(ctx)
	if err != nil || msgs == nil || len(msgs) != 0 {
		t.Fatalf("ReadMessages: msgs=%v err=%v", msgs, err)
	}
	sess, err := a.ReadSession(ctx)
	if err != nil || sess != nil {
		t.Fatalf("ReadSession: sess=%v err=%v", sess, err)
	}
}

func TestMalformedTextReadsAsEmpty(t *testing.T) {
	cases := []struct {
		name string
		key  string
		raw  string
	}{
		{"users truncated", KeyUsers, `[{"id":"1"`},
		{"users wrong shape", KeyUsers, `{"id":"1"}`},
		{"users unknown role", KeyUsers, `[{"id":"1","role":"admin"}]`},
		{"messages garbage", KeyMessages, `not json`},
		{"session garbage", KeyCurrentUser, `{{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, store := newAdapter(t)
			ctx := context.Background()
			if err := store.Set(ctx, tc.key, []byte(tc.raw)); err != nil {
				t.Fatalf("seed: %v", err)
			}
			users, err := a.ReadUsers(ctx)
			if err != nil {
				t.Fatalf("ReadUsers: %v", err)
			}
			msgs, err := a.ReadMessages(ctx)
			if err != nil {
				t.Fatalf("ReadMessages: %v", err)
			}
			sess, err := a.ReadSession(ctx)
			if err != nil {
				t.Fatalf("ReadSession: %v", err)
			}
			if len(users) != 0 || len(msgs) != 0 || sess != nil {
				t.Fatalf("expected empty state, got users=%d msgs=%d sess=%v", len(users), len(msgs), sess)
			}
		})
	}
}

func TestBadRecordIsSkippedOthersKept(t *testing.T) {
	a, store := newAdapter(t)
	ctx := context.Background()
	good := user.NewStudent("Ana", "a@x.com")
	goodRaw, err := json.Marshal(good)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	raw := `[` + string(goodRaw) + `,{"id":"b","name":"B","email":"b@x.com","role":"admin"}]`
	if err := store.Set(ctx, KeyUsers, []byte(raw)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	users, err := a.ReadUsers(ctx)
	if err != nil {
		t.Fatalf("ReadUsers: %v", err)
	}
	if len(users) != 1 || users[0].ID != good.ID {
		t.Fatalf("want only the valid record, got %+v", users)
	}

	msgs := `[{"id":"m1","senderId":"a","senderName":"A","content":"oi","timestamp":1},{"id":"m2","timestamp":"ontem"}]`
	if err := store.Set(ctx, KeyMessages, []byte(msgs)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := a.ReadMessages(ctx)
	if err != nil || len(got) != 1 || got[0].ID != "m1" {
		t.Fatalf("ReadMessages: %+v err=%v", got, err)
	}
}

func TestWriteThenReadPreservesOrder(t *testing.T) {
	a, _ := newAdapter(t)
	ctx := context.Background()

	in := []*user.User{
		user.NewStudent("Zé", "z@x.com"),
		user.NewProfessor("Ana", "a@x.com", catalog.Veterinaria),
		user.NewStudent("Bia", "b@x.com"),
	}
	if err := a.WriteUsers(ctx, in); err != nil {
		t.Fatalf("WriteUsers: %v", err)
	}
	out, err := a.ReadUsers(ctx)
	if err != nil {
		t.Fatalf("ReadUsers: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("ReadUsers: want=%d got=%d", len(in), len(out))
	}
	for i := range in {
		if out[i].ID != in[i].ID || out[i].Role() != in[i].Role() {
			t.Fatalf("record %d: want=%s/%s got=%s/%s", i, in[i].ID, in[i].Role(), out[i].ID, out[i].Role())
		}
	}
	if out[1].Specialization() != catalog.Veterinaria {
		t.Fatalf("specialization lost: %q", out[1].Specialization())
	}

	msgs := []chat.ChatMessage{
		{ID: "1", SenderID: "a", Content: "oi", Timestamp: 1},
		{ID: "2", SenderID: "b", ReceiverID: "a", Content: "olá", Timestamp: 2},
	}
	if err := a.WriteMessages(ctx, msgs); err != nil {
		t.Fatalf("WriteMessages: %v", err)
	}
	gotMsgs, err := a.ReadMessages(ctx)
	if err != nil {
		t.Fatalf("ReadMessages: %v", err)
	}
	if len(gotMsgs) != 2 || gotMsgs[0].ID != "1" || gotMsgs[1].ReceiverID != "a" {
		t.Fatalf("ReadMessages: unexpected %+v", gotMsgs)
	}
}

func TestSessionRoundTripAndClear(t *testing.T) {
	a, _ := newAdapter(t)
	ctx := context.Background()

	u := user.NewStudent("Ana", "a@x.com")
	if err := a.WriteSession(ctx, u); err != nil {
		t.Fatalf("WriteSession: %v", err)
	}
	got, err := a.ReadSession(ctx)
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("ReadSession: got=%v err=%v", got, err)
	}
	if err := a.ClearSession(ctx); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if got, _ := a.ReadSession(ctx); got != nil {
		t.Fatalf("session not cleared: %v", got)
	}
	if err := a.WriteSession(ctx, nil); err != nil {
		t.Fatalf("WriteSession(nil): %v", err)
	}
}

func TestEmptyWriteStoresEmptyArray(t *testing.T) {
	a, store := newAdapter(t)
	ctx := context.Background()
	if err := a.WriteMessages(ctx, nil); err != nil {
		t.Fatalf("WriteMessages: %v", err)
	}
	raw, ok, _ := store.Get(ctx, KeyMessages)
	if !ok || string(raw) != "[]" {
		t.Fatalf("stored text: ok=%v raw=%q", ok, raw)
	}
}

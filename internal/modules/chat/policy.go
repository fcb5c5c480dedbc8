package chat

import (
	"strings"

	domainchat "github.com/yungbote/agrovet-backend/internal/domain/chat"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
)

// VisibleMessages filters all messages for one conversation view, keeping
// their order. An empty peerID selects the general channel.
func VisibleMessages(all []domainchat.ChatMessage, viewerID, peerID string) []domainchat.ChatMessage {
	out := make([]domainchat.ChatMessage, 0, len(all))
	for _, m := range all {
		if peerID == "" {
			if m.IsBroadcast() {
				out = append(out, m)
			}
			continue
		}
		if (m.SenderID == viewerID && m.ReceiverID == peerID) ||
			(m.SenderID == peerID && m.ReceiverID == viewerID) {
			out = append(out, m)
		}
	}
	return out
}

// Contacts is everyone the viewer can open a direct conversation with.
func Contacts(users []*user.User, viewerID string) []*user.User {
	out := make([]*user.User, 0, len(users))
	for _, u := range users {
		if u != nil && u.ID != viewerID {
			out = append(out, u)
		}
	}
	return out
}

// CanToggleMute allows professors to silence students only.
func CanToggleMute(actor, target *user.User) bool {
	return actor != nil && target != nil &&
		actor.IsProfessor() && target.Role() == user.RoleStudent &&
		actor.ID != target.ID
}

// ToggleMute returns a copy of target with the mute flag flipped.
func ToggleMute(actor, target *user.User) (*user.User, error) {
	if !CanToggleMute(actor, target) {
		return nil, perrors.ErrForbidden
	}
	out := target.Clone()
	out.IsMuted = !out.IsMuted
	return out, nil
}

// CheckCanSend must be given a freshly read sender record.
func CheckCanSend(sender *user.User) error {
	if sender == nil {
		return perrors.ErrNoSession
	}
	if sender.IsMuted {
		return perrors.ErrMuted
	}
	return nil
}

// ValidateContent rejects blank text; accepted content is kept as typed.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return perrors.ErrEmptyMessage
	}
	return nil
}

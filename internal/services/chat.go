package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/agrovet-backend/internal/data/repos"
	domainchat "github.com/yungbote/agrovet-backend/internal/domain/chat"
	"github.com/yungbote/agrovet-backend/internal/domain/user"
	chatmod "github.com/yungbote/agrovet-backend/internal/modules/chat"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

type SendMessageInput struct {
	ReceiverID string `json:"receiverId,omitempty"`
	Content    string `json:"content"`
}

type ChatService interface {
	Send(ctx context.Context, in SendMessageInput) (domainchat.ChatMessage, error)
	// Conversation returns the general channel for an empty peerID.
	Conversation(ctx context.Context, peerID string) ([]domainchat.ChatMessage, error)
	Contacts(ctx context.Context) ([]*user.User, error)
	ToggleMute(ctx context.Context, targetID string) (*user.User, error)
}

type chatService struct {
	log  *logger.Logger
	repo *repos.Repository
}

func NewChatService(log *logger.Logger, repo *repos.Repository) ChatService {
	return &chatService{log: log.With("service", "ChatService"), repo: repo}
}

func (cs *chatService) Send(ctx context.Context, in SendMessageInput) (domainchat.ChatMessage, error) {
	if err := chatmod.ValidateContent(in.Content); err != nil {
		return domainchat.ChatMessage{}, err
	}
	sender, err := sessionUser(ctx, cs.repo)
	if err != nil {
		return domainchat.ChatMessage{}, err
	}
	if err := chatmod.CheckCanSend(sender); err != nil {
		cs.log.Debug("send rejected", "sender_id", sender.ID, "error", err)
		return domainchat.ChatMessage{}, err
	}

	receiverID := strings.TrimSpace(in.ReceiverID)
	if receiverID != "" {
		receiver, err := cs.repo.FindUser(ctx, receiverID)
		if err != nil {
			return domainchat.ChatMessage{}, err
		}
		if receiver == nil {
			return domainchat.ChatMessage{}, fmt.Errorf("receiver %q: %w", receiverID, perrors.ErrNotFound)
		}
	}

	msg := domainchat.NewMessage(sender.ID, sender.Name, receiverID, in.Content)
	return cs.repo.SendMessage(ctx, msg)
}

func (cs *chatService) Conversation(ctx context.Context, peerID string) ([]domainchat.ChatMessage, error) {
	viewer, err := sessionUser(ctx, cs.repo)
	if err != nil {
		return nil, err
	}
	all, err := cs.repo.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	return chatmod.VisibleMessages(all, viewer.ID, strings.TrimSpace(peerID)), nil
}

func (cs *chatService) Contacts(ctx context.Context) ([]*user.User, error) {
	viewer, err := sessionUser(ctx, cs.repo)
	if err != nil {
		return nil, err
	}
	users, err := cs.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return chatmod.Contacts(users, viewer.ID), nil
}

func (cs *chatService) ToggleMute(ctx context.Context, targetID string) (*user.User, error) {
	actor, err := sessionUser(ctx, cs.repo)
	if err != nil {
		return nil, err
	}
	targetID = strings.TrimSpace(targetID)
	updated, err := cs.repo.ModifyUser(ctx, targetID, func(target *user.User) error {
		next, err := chatmod.ToggleMute(actor, target)
		if err != nil {
			return err
		}
		target.IsMuted = next.IsMuted
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("user %q: %w", targetID, perrors.ErrNotFound)
	}
	cs.log.Info("mute toggled", "actor_id", actor.ID, "user_id", updated.ID, "muted", updated.IsMuted)
	return updated, nil
}

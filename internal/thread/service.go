// Package thread provides the durable direct-message log and its derived
// views: per-thread history, seen tracking, and the per-user thread list.
package thread

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	dbpkg "github.com/linklyhq/linkly/internal/db"
	"github.com/linklyhq/linkly/internal/db/sqlc"
	"github.com/linklyhq/linkly/internal/identity"
	"github.com/linklyhq/linkly/internal/presence"
)

var (
	ErrEmptyMessage     = errors.New("message text is required")
	ErrInvalidRecipient = errors.New("recipient not found")
	ErrNotParticipant   = errors.New("not a thread participant")
)

type Service struct {
	queries  *sqlc.Queries
	identity *identity.Service
	hub      *presence.Hub
	logger   *slog.Logger
}

func NewService(log *slog.Logger, queries *sqlc.Queries, identityService *identity.Service, hub *presence.Hub) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries:  queries,
		identity: identityService,
		hub:      hub,
		logger:   log.With(slog.String("service", "thread")),
	}
}

// PostMessage appends one immutable message and pushes it to any live
// sessions of both participants. Persistence is acknowledged regardless of
// delivery outcome.
func (s *Service) PostMessage(ctx context.Context, fromID, toID, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}
	fromID = strings.TrimSpace(fromID)
	toID = strings.TrimSpace(toID)

	pgFrom, err := dbpkg.ParseUUID(fromID)
	if err != nil {
		return Message{}, ErrInvalidRecipient
	}
	pgTo, err := dbpkg.ParseUUID(toID)
	if err != nil {
		return Message{}, ErrInvalidRecipient
	}
	if s.queries == nil {
		return Message{}, fmt.Errorf("thread queries not configured")
	}
	if _, err := s.queries.GetUserByID(ctx, pgTo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Message{}, ErrInvalidRecipient
		}
		return Message{}, err
	}

	row, err := s.queries.CreateMessage(ctx, sqlc.CreateMessageParams{
		ThreadID: ID(fromID, toID),
		FromUser: pgFrom,
		ToUser:   pgTo,
		Body:     text,
	})
	if err != nil {
		return Message{}, err
	}

	summaries, err := s.identity.Summaries(ctx, []string{fromID, toID})
	if err != nil {
		return Message{}, err
	}
	message := toMessage(row, summaries)

	s.deliver(toID, presence.EventMessageReceive, message)
	s.deliver(fromID, presence.EventMessageSent, message)

	return message, nil
}

// ListThread returns a thread's messages ordered oldest first. The viewer
// must be one of the two participants encoded in the thread id.
func (s *Service) ListThread(ctx context.Context, threadID, viewerID string) ([]Message, error) {
	if !isParticipant(threadID, strings.TrimSpace(viewerID)) {
		return nil, ErrNotParticipant
	}
	if s.queries == nil {
		return nil, fmt.Errorf("thread queries not configured")
	}
	rows, err := s.queries.ListThreadMessages(ctx, threadID)
	if err != nil {
		return nil, err
	}
	a, b, _ := Participants(threadID)
	summaries, err := s.identity.Summaries(ctx, []string{a, b})
	if err != nil {
		return nil, err
	}
	messages := make([]Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, toMessage(row, summaries))
	}
	return messages, nil
}

// MarkSeen flips seen=true on every unseen message in the thread addressed to
// the viewer. Idempotent.
func (s *Service) MarkSeen(ctx context.Context, threadID, viewerID string) error {
	viewerID = strings.TrimSpace(viewerID)
	if !isParticipant(threadID, viewerID) {
		return ErrNotParticipant
	}
	if s.queries == nil {
		return fmt.Errorf("thread queries not configured")
	}
	pgViewer, err := dbpkg.ParseUUID(viewerID)
	if err != nil {
		return ErrNotParticipant
	}
	_, err = s.queries.MarkThreadSeen(ctx, sqlc.MarkThreadSeenParams{
		ThreadID: threadID,
		ViewerID: pgViewer,
	})
	return err
}

// ListThreads builds the viewer's thread list: one entry per thread with the
// most recent message, the other participant, and the unread count, ordered
// by most recent activity. Threads whose participant no longer resolves are
// dropped rather than erroring.
func (s *Service) ListThreads(ctx context.Context, viewerID string) ([]Summary, error) {
	if s.queries == nil {
		return nil, fmt.Errorf("thread queries not configured")
	}
	viewerID = strings.TrimSpace(viewerID)
	pgViewer, err := dbpkg.ParseUUID(viewerID)
	if err != nil {
		return nil, fmt.Errorf("invalid viewer id: %w", err)
	}
	rows, err := s.queries.ListUserMessages(ctx, pgViewer)
	if err != nil {
		return nil, err
	}

	threads := aggregateThreads(rows, viewerID)

	participantIDs := make([]string, 0, len(threads)+1)
	participantIDs = append(participantIDs, viewerID)
	for _, t := range threads {
		participantIDs = append(participantIDs, t.partnerID)
	}
	summaries, err := s.identity.Summaries(ctx, participantIDs)
	if err != nil {
		return nil, err
	}

	result := make([]Summary, 0, len(threads))
	for _, t := range threads {
		participant, ok := summaries[t.partnerID]
		if !ok {
			continue
		}
		result = append(result, Summary{
			ThreadID:    t.threadID,
			Participant: participant,
			LastMessage: toMessage(t.lastMsg, summaries),
			UnreadCount: t.unread,
		})
	}
	return result, nil
}

func (s *Service) deliver(userID, eventType string, message Message) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(message)
	if err != nil {
		s.logger.Warn("marshal message event failed", slog.Any("error", err))
		return
	}
	s.hub.Deliver(userID, presence.Event{Type: eventType, Data: payload})
}

func toMessage(row sqlc.Message, summaries map[string]identity.Summary) Message {
	fromID := dbpkg.UUIDToString(row.FromUser)
	toID := dbpkg.UUIDToString(row.ToUser)
	from, ok := summaries[fromID]
	if !ok {
		from = identity.Summary{ID: fromID}
	}
	to, ok := summaries[toID]
	if !ok {
		to = identity.Summary{ID: toID}
	}
	return Message{
		ID:        dbpkg.UUIDToString(row.ID),
		ThreadID:  row.ThreadID,
		From:      from,
		To:        to,
		Text:      row.Body,
		Seen:      row.Seen,
		CreatedAt: dbpkg.TimeFromPg(row.CreatedAt),
	}
}

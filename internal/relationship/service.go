// Package relationship enforces the connection-request state machine between
// pairs of users. Every transition touches two user rows; both rows are locked
// in id order inside one transaction so a transition is never half-applied.
package relationship

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	dbpkg "github.com/linklyhq/linkly/internal/db"
	"github.com/linklyhq/linkly/internal/db/sqlc"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrSelfInvite       = errors.New("cannot connect to yourself")
	ErrAlreadyConnected = errors.New("already connected")
	ErrDuplicateRequest = errors.New("request already sent")
)

type Service struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
	logger  *slog.Logger
}

func NewService(log *slog.Logger, pool *pgxpool.Pool, queries *sqlc.Queries) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		pool:    pool,
		queries: queries,
		logger:  log.With(slog.String("service", "relationship")),
	}
}

// SendInvite records a pending request from viewer to target on both rows.
func (s *Service) SendInvite(ctx context.Context, viewerID, targetID string) error {
	viewerID = strings.TrimSpace(viewerID)
	targetID = strings.TrimSpace(targetID)
	if viewerID == targetID {
		return ErrSelfInvite
	}
	return s.inTx(ctx, viewerID, targetID, func(q *sqlc.Queries, pgViewer, pgTarget pgtype.UUID) error {
		viewer, err := q.GetUserByID(ctx, pgViewer)
		if err != nil {
			return err
		}
		if containsUUID(viewer.Connections, pgTarget) {
			return ErrAlreadyConnected
		}
		if containsUUID(viewer.PendingOutbound, pgTarget) {
			return ErrDuplicateRequest
		}
		if _, err := q.AddPendingOutbound(ctx, sqlc.AddPendingOutboundParams{OtherID: pgTarget, ID: pgViewer}); err != nil {
			return err
		}
		if _, err := q.AddPendingInbound(ctx, sqlc.AddPendingInboundParams{OtherID: pgViewer, ID: pgTarget}); err != nil {
			return err
		}
		s.logger.Info("invite sent", slog.String("from", viewerID), slog.String("to", targetID))
		return nil
	})
}

// AcceptInvite resolves a pending request from fromID into a connection on both
// rows. When no such request is pending the call is a silent no-op.
func (s *Service) AcceptInvite(ctx context.Context, viewerID, fromID string) error {
	return s.inTx(ctx, viewerID, fromID, func(q *sqlc.Queries, pgViewer, pgFrom pgtype.UUID) error {
		viewer, err := q.GetUserByID(ctx, pgViewer)
		if err != nil {
			return err
		}
		if !containsUUID(viewer.PendingInbound, pgFrom) {
			return nil
		}
		if _, err := q.RemovePendingInbound(ctx, sqlc.RemovePendingInboundParams{OtherID: pgFrom, ID: pgViewer}); err != nil {
			return err
		}
		if _, err := q.RemovePendingOutbound(ctx, sqlc.RemovePendingOutboundParams{OtherID: pgViewer, ID: pgFrom}); err != nil {
			return err
		}
		if _, err := q.AddConnection(ctx, sqlc.AddConnectionParams{OtherID: pgFrom, ID: pgViewer}); err != nil {
			return err
		}
		if _, err := q.AddConnection(ctx, sqlc.AddConnectionParams{OtherID: pgViewer, ID: pgFrom}); err != nil {
			return err
		}
		s.logger.Info("invite accepted", slog.String("by", viewerID), slog.String("from", fromID))
		return nil
	})
}

// CancelInvite withdraws a request the viewer sent earlier. Lenient: removing
// an absent entry succeeds silently.
func (s *Service) CancelInvite(ctx context.Context, viewerID, targetID string) error {
	return s.inTx(ctx, viewerID, targetID, func(q *sqlc.Queries, pgViewer, pgTarget pgtype.UUID) error {
		if _, err := q.RemovePendingOutbound(ctx, sqlc.RemovePendingOutboundParams{OtherID: pgTarget, ID: pgViewer}); err != nil {
			return err
		}
		if _, err := q.RemovePendingInbound(ctx, sqlc.RemovePendingInboundParams{OtherID: pgViewer, ID: pgTarget}); err != nil {
			return err
		}
		return nil
	})
}

// DeclineInvite rejects a request the viewer received. Same leniency as cancel.
func (s *Service) DeclineInvite(ctx context.Context, viewerID, fromID string) error {
	return s.inTx(ctx, viewerID, fromID, func(q *sqlc.Queries, pgViewer, pgFrom pgtype.UUID) error {
		if _, err := q.RemovePendingInbound(ctx, sqlc.RemovePendingInboundParams{OtherID: pgFrom, ID: pgViewer}); err != nil {
			return err
		}
		if _, err := q.RemovePendingOutbound(ctx, sqlc.RemovePendingOutboundParams{OtherID: pgViewer, ID: pgFrom}); err != nil {
			return err
		}
		return nil
	})
}

// Status reports the pair state from the viewer's perspective. It only reads
// the viewer's own row and never fails on an unknown target.
func (s *Service) Status(ctx context.Context, viewerID, targetID string) (Status, error) {
	viewerID = strings.TrimSpace(viewerID)
	targetID = strings.TrimSpace(targetID)
	if viewerID == targetID {
		return StatusSelf, nil
	}
	sets, err := s.GetSets(ctx, viewerID)
	if err != nil {
		return "", err
	}
	return statusFor(viewerID, targetID, sets), nil
}

// GetSets returns the viewer's three membership sets as id strings.
func (s *Service) GetSets(ctx context.Context, viewerID string) (Sets, error) {
	if s.queries == nil {
		return Sets{}, fmt.Errorf("relationship queries not configured")
	}
	pgViewer, err := dbpkg.ParseUUID(viewerID)
	if err != nil {
		return Sets{}, ErrUserNotFound
	}
	row, err := s.queries.GetUserByID(ctx, pgViewer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Sets{}, ErrUserNotFound
		}
		return Sets{}, err
	}
	return Sets{
		Connections:     uuidStrings(row.Connections),
		PendingOutbound: uuidStrings(row.PendingOutbound),
		PendingInbound:  uuidStrings(row.PendingInbound),
	}, nil
}

// inTx locks both user rows in id order, runs fn with transactional queries,
// and commits. A missing row on either side aborts with ErrUserNotFound before
// fn runs.
func (s *Service) inTx(ctx context.Context, viewerID, otherID string, fn func(q *sqlc.Queries, pgViewer, pgOther pgtype.UUID) error) error {
	if s.pool == nil || s.queries == nil {
		return fmt.Errorf("relationship store not configured")
	}
	pgViewer, err := dbpkg.ParseUUID(viewerID)
	if err != nil {
		return ErrUserNotFound
	}
	pgOther, err := dbpkg.ParseUUID(otherID)
	if err != nil {
		return ErrUserNotFound
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	q := s.queries.WithTx(tx)
	locked, err := q.LockUserPair(ctx, []pgtype.UUID{pgViewer, pgOther})
	if err != nil {
		return err
	}
	if len(locked) != 2 {
		return ErrUserNotFound
	}
	if err := fn(q, pgViewer, pgOther); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func containsUUID(ids []pgtype.UUID, id pgtype.UUID) bool {
	for _, candidate := range ids {
		if candidate.Valid && candidate.Bytes == id.Bytes {
			return true
		}
	}
	return false
}

func uuidStrings(ids []pgtype.UUID) []string {
	items := make([]string, 0, len(ids))
	for _, id := range ids {
		if value := dbpkg.UUIDToString(id); value != "" {
			items = append(items, value)
		}
	}
	return items
}

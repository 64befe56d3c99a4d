// Package identity provides the user identity store: registration, login,
// and summary lookups consumed by the relationship and thread services.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/crypto/bcrypt"

	dbpkg "github.com/linklyhq/linkly/internal/db"
	"github.com/linklyhq/linkly/internal/db/sqlc"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	queries *sqlc.Queries
	logger  *slog.Logger
}

func NewService(log *slog.Logger, queries *sqlc.Queries) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		queries: queries,
		logger:  log.With(slog.String("service", "identity")),
	}
}

// Register creates a user with empty relationship sets.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	if s.queries == nil {
		return User{}, fmt.Errorf("identity queries not configured")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" || strings.TrimSpace(req.Password) == "" {
		return User{}, ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	row, err := s.queries.CreateUser(ctx, sqlc.CreateUserParams{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		Headline:     toPgText(req.Headline),
		PhotoUrl:     toPgText(req.PhotoURL),
	})
	if err != nil {
		if dbpkg.IsUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	s.logger.Info("user registered", slog.String("user_id", dbpkg.UUIDToString(row.ID)))
	return toUser(row), nil
}

// Login validates credentials and returns the matching user.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	if s.queries == nil {
		return User{}, fmt.Errorf("identity queries not configured")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return User{}, ErrInvalidCredentials
	}
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return toUser(row), nil
}

// Get returns the sanitized record for one user.
func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	if s.queries == nil {
		return User{}, fmt.Errorf("identity queries not configured")
	}
	pgID, err := dbpkg.ParseUUID(userID)
	if err != nil {
		return User{}, ErrUserNotFound
	}
	row, err := s.queries.GetUserByID(ctx, pgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return toUser(row), nil
}

// Summaries resolves a set of user ids to summaries, keyed by id.
// Unknown ids are simply absent from the result.
func (s *Service) Summaries(ctx context.Context, userIDs []string) (map[string]Summary, error) {
	if s.queries == nil {
		return nil, fmt.Errorf("identity queries not configured")
	}
	pgIDs := make([]pgtype.UUID, 0, len(userIDs))
	seen := map[string]struct{}{}
	for _, id := range userIDs {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		pgID, err := dbpkg.ParseUUID(trimmed)
		if err != nil {
			continue
		}
		pgIDs = append(pgIDs, pgID)
	}
	if len(pgIDs) == 0 {
		return map[string]Summary{}, nil
	}
	rows, err := s.queries.ListUsersByIDs(ctx, pgIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[string]Summary, len(rows))
	for _, row := range rows {
		summary := toSummary(row)
		result[summary.ID] = summary
	}
	return result, nil
}

// Search returns summaries of users whose name contains the query.
func (s *Service) Search(ctx context.Context, query string) ([]Summary, error) {
	if s.queries == nil {
		return nil, fmt.Errorf("identity queries not configured")
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []Summary{}, nil
	}
	rows, err := s.queries.SearchUsers(ctx, "%"+trimmed+"%")
	if err != nil {
		return nil, err
	}
	items := make([]Summary, 0, len(rows))
	for _, row := range rows {
		items = append(items, toSummary(row))
	}
	return items, nil
}

func toUser(row sqlc.User) User {
	return User{
		ID:        dbpkg.UUIDToString(row.ID),
		Email:     row.Email,
		Name:      row.Name,
		Headline:  dbpkg.TextToString(row.Headline),
		PhotoURL:  dbpkg.TextToString(row.PhotoUrl),
		CreatedAt: dbpkg.TimeFromPg(row.CreatedAt),
	}
}

func toSummary(row sqlc.User) Summary {
	return Summary{
		ID:       dbpkg.UUIDToString(row.ID),
		Name:     row.Name,
		Headline: dbpkg.TextToString(row.Headline),
		PhotoURL: dbpkg.TextToString(row.PhotoUrl),
	}
}

func toPgText(value string) pgtype.Text {
	value = strings.TrimSpace(value)
	if value == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: value, Valid: true}
}

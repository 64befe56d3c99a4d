package relationship_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linklyhq/linkly/internal/db/sqlc"
	"github.com/linklyhq/linkly/internal/relationship"
)

func setupIntegrationTest(t *testing.T) (*relationship.Service, *sqlc.Queries, func()) {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("skip integration test: TEST_POSTGRES_DSN is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Skipf("skip integration test: cannot connect to database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("skip integration test: database ping failed: %v", err)
	}

	queries := sqlc.New(pool)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := relationship.NewService(logger, pool, queries)

	return svc, queries, func() { pool.Close() }
}

func createUser(t *testing.T, queries *sqlc.Queries, name string) string {
	t.Helper()
	row, err := queries.CreateUser(context.Background(), sqlc.CreateUserParams{
		Email:        fmt.Sprintf("%s_%d@integration.test", name, time.Now().UnixNano()),
		PasswordHash: "x",
		Name:         name,
	})
	if err != nil {
		t.Fatalf("create user %s failed: %v", name, err)
	}
	return uuid.UUID(row.ID.Bytes).String()
}

func assertStatus(t *testing.T, svc *relationship.Service, viewerID, targetID string, want relationship.Status) {
	t.Helper()
	got, err := svc.Status(context.Background(), viewerID, targetID)
	if err != nil {
		t.Fatalf("status(%s, %s) failed: %v", viewerID, targetID, err)
	}
	if got != want {
		t.Fatalf("status(%s, %s) = %q, want %q", viewerID, targetID, got, want)
	}
}

func countIn(ids []string, id string) int {
	n := 0
	for _, candidate := range ids {
		if candidate == id {
			n++
		}
	}
	return n
}

func assertEmptySets(t *testing.T, svc *relationship.Service, userID, otherID string) {
	t.Helper()
	sets, err := svc.GetSets(context.Background(), userID)
	if err != nil {
		t.Fatalf("get sets failed: %v", err)
	}
	if countIn(sets.Connections, otherID) != 0 ||
		countIn(sets.PendingOutbound, otherID) != 0 ||
		countIn(sets.PendingInbound, otherID) != 0 {
		t.Fatalf("expected no residual membership of %s on %s, got %+v", otherID, userID, sets)
	}
}

func TestIntegrationSendInviteSymmetry(t *testing.T) {
	svc, queries, cleanup := setupIntegrationTest(t)
	defer cleanup()

	a := createUser(t, queries, "alice")
	b := createUser(t, queries, "bob")

	if err := svc.SendInvite(context.Background(), a, b); err != nil {
		t.Fatalf("send invite failed: %v", err)
	}

	assertStatus(t, svc, a, b, relationship.StatusPendingOutbound)
	assertStatus(t, svc, b, a, relationship.StatusPendingInbound)

	// A repeat of the same invite is rejected, not double-recorded.
	if err := svc.SendInvite(context.Background(), a, b); !errors.Is(err, relationship.ErrDuplicateRequest) {
		t.Fatalf("repeat invite error = %v, want ErrDuplicateRequest", err)
	}
	sets, err := svc.GetSets(context.Background(), a)
	if err != nil {
		t.Fatalf("get sets failed: %v", err)
	}
	if countIn(sets.PendingOutbound, b) != 1 {
		t.Fatalf("expected exactly one pending outbound entry, got %d", countIn(sets.PendingOutbound, b))
	}
}

func TestIntegrationAcceptInvite(t *testing.T) {
	svc, queries, cleanup := setupIntegrationTest(t)
	defer cleanup()

	a := createUser(t, queries, "alice")
	b := createUser(t, queries, "bob")

	if err := svc.SendInvite(context.Background(), a, b); err != nil {
		t.Fatalf("send invite failed: %v", err)
	}
	if err := svc.AcceptInvite(context.Background(), b, a); err != nil {
		t.Fatalf("accept invite failed: %v", err)
	}

	assertStatus(t, svc, a, b, relationship.StatusConnected)
	assertStatus(t, svc, b, a, relationship.StatusConnected)

	// Each side appears on the other exactly once, with no pending residue.
	for _, pair := range [][2]string{{a, b}, {b, a}} {
		sets, err := svc.GetSets(context.Background(), pair[0])
		if err != nil {
			t.Fatalf("get sets failed: %v", err)
		}
		if got := countIn(sets.Connections, pair[1]); got != 1 {
			t.Fatalf("expected %s once in %s's connections, got %d", pair[1], pair[0], got)
		}
		if len(sets.PendingOutbound) != 0 || len(sets.PendingInbound) != 0 {
			t.Fatalf("expected no pending residue on %s, got %+v", pair[0], sets)
		}
	}

	// Re-accepting an already-resolved invite is a silent no-op.
	if err := svc.AcceptInvite(context.Background(), b, a); err != nil {
		t.Fatalf("repeat accept failed: %v", err)
	}
	sets, err := svc.GetSets(context.Background(), b)
	if err != nil {
		t.Fatalf("get sets failed: %v", err)
	}
	if got := countIn(sets.Connections, a); got != 1 {
		t.Fatalf("expected connection recorded exactly once after repeat accept, got %d", got)
	}

	// Inviting an existing connection is rejected.
	if err := svc.SendInvite(context.Background(), a, b); !errors.Is(err, relationship.ErrAlreadyConnected) {
		t.Fatalf("invite to connection error = %v, want ErrAlreadyConnected", err)
	}
}

func TestIntegrationCancelInviteRestoresNotConnected(t *testing.T) {
	svc, queries, cleanup := setupIntegrationTest(t)
	defer cleanup()

	a := createUser(t, queries, "alice")
	b := createUser(t, queries, "bob")

	if err := svc.SendInvite(context.Background(), a, b); err != nil {
		t.Fatalf("send invite failed: %v", err)
	}
	if err := svc.CancelInvite(context.Background(), a, b); err != nil {
		t.Fatalf("cancel invite failed: %v", err)
	}

	assertStatus(t, svc, a, b, relationship.StatusNotConnected)
	assertStatus(t, svc, b, a, relationship.StatusNotConnected)
	assertEmptySets(t, svc, a, b)
	assertEmptySets(t, svc, b, a)

	// Cancelling again is lenient.
	if err := svc.CancelInvite(context.Background(), a, b); err != nil {
		t.Fatalf("repeat cancel failed: %v", err)
	}
}

func TestIntegrationDeclineInviteRestoresNotConnected(t *testing.T) {
	svc, queries, cleanup := setupIntegrationTest(t)
	defer cleanup()

	a := createUser(t, queries, "alice")
	b := createUser(t, queries, "bob")

	if err := svc.SendInvite(context.Background(), a, b); err != nil {
		t.Fatalf("send invite failed: %v", err)
	}
	if err := svc.DeclineInvite(context.Background(), b, a); err != nil {
		t.Fatalf("decline invite failed: %v", err)
	}

	assertStatus(t, svc, a, b, relationship.StatusNotConnected)
	assertStatus(t, svc, b, a, relationship.StatusNotConnected)
	assertEmptySets(t, svc, a, b)
	assertEmptySets(t, svc, b, a)
}

func TestIntegrationSendInviteToMissingUser(t *testing.T) {
	svc, queries, cleanup := setupIntegrationTest(t)
	defer cleanup()

	a := createUser(t, queries, "alice")
	missing := uuid.NewString()

	if err := svc.SendInvite(context.Background(), a, missing); !errors.Is(err, relationship.ErrUserNotFound) {
		t.Fatalf("invite to missing user error = %v, want ErrUserNotFound", err)
	}
	assertEmptySets(t, svc, a, missing)
}

func TestIntegrationSendInviteToSelf(t *testing.T) {
	svc, queries, cleanup := setupIntegrationTest(t)
	defer cleanup()

	a := createUser(t, queries, "alice")
	if err := svc.SendInvite(context.Background(), a, a); !errors.Is(err, relationship.ErrSelfInvite) {
		t.Fatalf("self invite error = %v, want ErrSelfInvite", err)
	}
	assertStatus(t, svc, a, a, relationship.StatusSelf)
}

func TestIntegrationAcceptWithoutPendingIsNoop(t *testing.T) {
	svc, queries, cleanup := setupIntegrationTest(t)
	defer cleanup()

	a := createUser(t, queries, "alice")
	b := createUser(t, queries, "bob")

	if err := svc.AcceptInvite(context.Background(), b, a); err != nil {
		t.Fatalf("accept without pending failed: %v", err)
	}
	assertStatus(t, svc, a, b, relationship.StatusNotConnected)
	assertStatus(t, svc, b, a, relationship.StatusNotConnected)
}

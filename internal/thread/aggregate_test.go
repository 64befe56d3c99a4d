package thread

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"

	dbpkg "github.com/linklyhq/linkly/internal/db"
	"github.com/linklyhq/linkly/internal/db/sqlc"
)

const (
	viewerID  = "11111111-1111-1111-1111-111111111111"
	partnerA  = "22222222-2222-2222-2222-222222222222"
	partnerB  = "33333333-3333-3333-3333-333333333333"
	strangerC = "44444444-4444-4444-4444-444444444444"
)

func mustUUID(t *testing.T, id string) pgtype.UUID {
	t.Helper()
	value, err := dbpkg.ParseUUID(id)
	if err != nil {
		t.Fatalf("parse uuid %q: %v", id, err)
	}
	return value
}

func message(t *testing.T, fromID, toID, body string, seen bool) sqlc.Message {
	t.Helper()
	return sqlc.Message{
		ThreadID: ID(fromID, toID),
		FromUser: mustUUID(t, fromID),
		ToUser:   mustUUID(t, toID),
		Body:     body,
		Seen:     seen,
	}
}

func TestAggregateThreadsEmpty(t *testing.T) {
	threads := aggregateThreads(nil, viewerID)
	if len(threads) != 0 {
		t.Fatalf("expected no threads, got %d", len(threads))
	}
}

func TestAggregateThreadsOrderAndLastMessage(t *testing.T) {
	// Rows arrive newest first, interleaved across two threads.
	rows := []sqlc.Message{
		message(t, partnerB, viewerID, "b latest", false),
		message(t, viewerID, partnerA, "a latest", false),
		message(t, partnerA, viewerID, "a older", true),
		message(t, partnerB, viewerID, "b oldest", true),
	}

	threads := aggregateThreads(rows, viewerID)
	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}

	// First thread encountered is the one with the newest activity.
	if threads[0].partnerID != partnerB {
		t.Fatalf("expected partnerB thread first, got %q", threads[0].partnerID)
	}
	if threads[0].lastMsg.Body != "b latest" {
		t.Fatalf("expected newest row as last message, got %q", threads[0].lastMsg.Body)
	}
	if threads[1].partnerID != partnerA {
		t.Fatalf("expected partnerA thread second, got %q", threads[1].partnerID)
	}
	if threads[1].lastMsg.Body != "a latest" {
		t.Fatalf("expected newest row as last message, got %q", threads[1].lastMsg.Body)
	}
}

func TestAggregateThreadsUniquePerThread(t *testing.T) {
	rows := []sqlc.Message{
		message(t, viewerID, partnerA, "one", false),
		message(t, partnerA, viewerID, "two", false),
		message(t, viewerID, partnerA, "three", true),
	}
	threads := aggregateThreads(rows, viewerID)
	if len(threads) != 1 {
		t.Fatalf("expected a single thread, got %d", len(threads))
	}
	if threads[0].threadID != ID(viewerID, partnerA) {
		t.Fatalf("unexpected thread id %q", threads[0].threadID)
	}
}

func TestAggregateThreadsUnreadCounts(t *testing.T) {
	rows := []sqlc.Message{
		// Addressed to viewer, unseen: counts.
		message(t, partnerA, viewerID, "unread 1", false),
		message(t, partnerA, viewerID, "unread 2", false),
		// Addressed to viewer, already seen: does not count.
		message(t, partnerA, viewerID, "seen", true),
		// Sent by viewer, unseen by partner: never counts for viewer.
		message(t, viewerID, partnerA, "outbound", false),
		// Different thread, one unread.
		message(t, partnerB, viewerID, "other", false),
	}

	threads := aggregateThreads(rows, viewerID)
	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}
	if threads[0].unread != 2 {
		t.Fatalf("expected 2 unread in first thread, got %d", threads[0].unread)
	}
	if threads[1].unread != 1 {
		t.Fatalf("expected 1 unread in second thread, got %d", threads[1].unread)
	}
}

func TestAggregateThreadsPartnerResolution(t *testing.T) {
	rows := []sqlc.Message{
		message(t, viewerID, partnerA, "sent by viewer", false),
		message(t, partnerB, viewerID, "received by viewer", false),
	}
	threads := aggregateThreads(rows, viewerID)
	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}
	if threads[0].partnerID != partnerA {
		t.Fatalf("expected partner to be the recipient when viewer sent, got %q", threads[0].partnerID)
	}
	if threads[1].partnerID != partnerB {
		t.Fatalf("expected partner to be the sender when viewer received, got %q", threads[1].partnerID)
	}
}

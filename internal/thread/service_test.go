package thread

import (
	"context"
	"errors"
	"testing"
)

func TestPostMessageRejectsBlankText(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tabs and newlines", "\t\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PostMessage(context.Background(), viewerID, partnerA, tc.text)
			if !errors.Is(err, ErrEmptyMessage) {
				t.Fatalf("PostMessage() error = %v, want ErrEmptyMessage", err)
			}
		})
	}
}

func TestPostMessageRejectsMalformedRecipient(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	if _, err := svc.PostMessage(context.Background(), viewerID, "not-a-uuid", "hi"); !errors.Is(err, ErrInvalidRecipient) {
		t.Fatalf("PostMessage() error = %v, want ErrInvalidRecipient", err)
	}
	if _, err := svc.PostMessage(context.Background(), "not-a-uuid", partnerA, "hi"); !errors.Is(err, ErrInvalidRecipient) {
		t.Fatalf("PostMessage() error = %v, want ErrInvalidRecipient", err)
	}
}

func TestListThreadRejectsNonParticipant(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	threadID := ID(viewerID, partnerA)
	if _, err := svc.ListThread(context.Background(), threadID, strangerC); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("ListThread() error = %v, want ErrNotParticipant", err)
	}
	if _, err := svc.ListThread(context.Background(), "malformed", viewerID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("ListThread() on malformed id error = %v, want ErrNotParticipant", err)
	}
}

func TestMarkSeenRejectsNonParticipant(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	threadID := ID(viewerID, partnerA)
	if err := svc.MarkSeen(context.Background(), threadID, strangerC); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("MarkSeen() error = %v, want ErrNotParticipant", err)
	}
}

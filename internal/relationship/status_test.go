package relationship

import "testing"

func TestStatusFor(t *testing.T) {
	const (
		viewer    = "11111111-1111-1111-1111-111111111111"
		connected = "22222222-2222-2222-2222-222222222222"
		outbound  = "33333333-3333-3333-3333-333333333333"
		inbound   = "44444444-4444-4444-4444-444444444444"
		stranger  = "55555555-5555-5555-5555-555555555555"
	)
	sets := Sets{
		Connections:     []string{connected},
		PendingOutbound: []string{outbound},
		PendingInbound:  []string{inbound},
	}

	cases := []struct {
		name   string
		target string
		want   Status
	}{
		{"self", viewer, StatusSelf},
		{"connected", connected, StatusConnected},
		{"pending outbound", outbound, StatusPendingOutbound},
		{"pending inbound", inbound, StatusPendingInbound},
		{"stranger", stranger, StatusNotConnected},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := statusFor(viewer, tc.target, sets)
			if got != tc.want {
				t.Fatalf("statusFor(%q) = %q, want %q", tc.target, got, tc.want)
			}
		})
	}
}

func TestStatusForPriority(t *testing.T) {
	const (
		viewer = "11111111-1111-1111-1111-111111111111"
		target = "22222222-2222-2222-2222-222222222222"
	)

	// Inconsistent sets should still resolve deterministically: connected
	// outranks both pendings, outbound outranks inbound.
	sets := Sets{
		Connections:     []string{target},
		PendingOutbound: []string{target},
		PendingInbound:  []string{target},
	}
	if got := statusFor(viewer, target, sets); got != StatusConnected {
		t.Fatalf("expected connected to win, got %q", got)
	}

	sets.Connections = nil
	if got := statusFor(viewer, target, sets); got != StatusPendingOutbound {
		t.Fatalf("expected outbound to win over inbound, got %q", got)
	}

	// Self wins over everything, even a corrupt row listing the viewer.
	sets.Connections = []string{viewer}
	if got := statusFor(viewer, viewer, sets); got != StatusSelf {
		t.Fatalf("expected self, got %q", got)
	}
}

func TestContainsID(t *testing.T) {
	ids := []string{"a", "b", "c"}
	if !containsID(ids, "b") {
		t.Fatal("expected member to be found")
	}
	if containsID(ids, "d") {
		t.Fatal("expected non-member to be missing")
	}
	if containsID(nil, "a") {
		t.Fatal("expected nil slice to contain nothing")
	}
}

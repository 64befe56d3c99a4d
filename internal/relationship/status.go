package relationship

// Status is the connection state of an ordered viewer/target pair.
type Status string

const (
	StatusSelf            Status = "self"
	StatusConnected       Status = "connected"
	StatusPendingOutbound Status = "pending_outbound"
	StatusPendingInbound  Status = "pending_inbound"
	StatusNotConnected    Status = "not_connected"
)

// Sets holds one user's relationship memberships as plain id strings.
type Sets struct {
	Connections     []string
	PendingOutbound []string
	PendingInbound  []string
}

// statusFor derives the pair state from the viewer's own sets. Priority order
// matters: self wins over everything, connected over pending, outbound over
// inbound.
func statusFor(viewerID, targetID string, sets Sets) Status {
	if viewerID == targetID {
		return StatusSelf
	}
	if containsID(sets.Connections, targetID) {
		return StatusConnected
	}
	if containsID(sets.PendingOutbound, targetID) {
		return StatusPendingOutbound
	}
	if containsID(sets.PendingInbound, targetID) {
		return StatusPendingInbound
	}
	return StatusNotConnected
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

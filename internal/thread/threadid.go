package thread

import "strings"

// idSeparator joins the two participant ids. UUIDs never contain an
// underscore, so splitting is unambiguous.
const idSeparator = "_"

// ID derives the deterministic thread identifier for a pair of users:
// the lexicographically lower id, the separator, then the higher id. Both
// participants compute the same value regardless of direction.
func ID(userA, userB string) string {
	a := strings.TrimSpace(userA)
	b := strings.TrimSpace(userB)
	if a > b {
		a, b = b, a
	}
	return a + idSeparator + b
}

// Participants splits a thread id back into its two participant ids.
// ok is false when the value is not a well-formed thread id.
func Participants(threadID string) (string, string, bool) {
	parts := strings.Split(threadID, idSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// isParticipant reports whether userID is one of the two ids encoded in
// threadID.
func isParticipant(threadID, userID string) bool {
	a, b, ok := Participants(threadID)
	if !ok {
		return false
	}
	return userID == a || userID == b
}

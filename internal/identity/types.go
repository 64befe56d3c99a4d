package identity

import "time"

// User is a sanitized identity record (no password hash, no relationship sets).
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Headline  string    `json:"headline,omitempty"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary is the short identity projection embedded in connection lists,
// pending lists, and message records.
type Summary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Headline string `json:"headline,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// RegisterRequest is the input for Register.
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Headline string
	PhotoURL string
}

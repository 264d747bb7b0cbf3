package domain

// User represents an account that can authorize OAuth2 clients.
// The username doubles as the stable user identifier.
type User struct {
	Username     string  `json:"username"`
	EmailAddress *string `json:"email_address,omitempty"`
	Password     string  `json:"-"` // Password hash is never serialized
}

// ID returns the user identifier
func (u *User) ID() string {
	return u.Username
}

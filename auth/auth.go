package auth

import "strings"

// User holds the attributes released by the identity provider for a logged-in person
type User struct {
	FirstName string
	LastName  string
	Email     string

	// StaffID matches Employee.UID when the person is on staff
	StaffID string

	AccessToken          string `json:"AccessToken"`
	AccessTokenExpiresAt int64  `json:"AccessTokenExpiresAt"`
	IsNew                bool
}

// Name returns the person's full name, or the email address if no name was released
func (u User) Name() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Response holds fields for login and logout responses. not all fields will have values
type Response struct {
	RedirectURL string
	AuthUser    *User
	Error       error
}

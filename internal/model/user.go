package model

// User mirrors the remote service's user record. The user id is the
// chat-platform id rendered as a string.
type User struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

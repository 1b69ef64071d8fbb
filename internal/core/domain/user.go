package domain

// User is the identity record held by the hosted auth service. The
// client never mutates it; a fresh copy is fetched after login or
// registration.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Package models defines the data types exchanged with the backend and the
// locally persisted profile snapshot.
package models

// User is the server-issued identity returned by the profile endpoint.
// Phone and ProfilePicture may be absent; the backend omits them rather
// than sending empty strings.
type User struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// RegisterData is the signup request payload.
type RegisterData struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// LoginData is the login request payload.
type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileData is a partial update: nil fields are left untouched,
// both on the backend and when merged into the local snapshot.
type UpdateProfileData struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Password       *string `json:"password,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// AuthResponse is the body returned by the signup and login endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

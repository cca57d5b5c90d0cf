package dto

// UpdateUserRequest carries the mutable profile fields. Passwords are
// never updated through this path; they only change via the dedicated
// reset flow so hashing stays in one place.
type UpdateUserRequest struct {
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

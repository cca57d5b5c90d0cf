package domain

import "time"

// Role values a user can hold. Signup always starts at RolePending;
// promotion to RoleUser is owned by the admin subsystem.
const (
	RolePending = "pending"
	RoleUser    = "user"
	RoleAdmin   = "admin"
)

type User struct {
	ID       string `bson:"_id" json:"id"`
	FullName string `bson:"fullName" json:"fullName"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role     string `bson:"role" json:"role"`

	// Reset fields are either both set or both absent. The stored token
	// is the sha256 of the plaintext code mailed to the user.
	ResetPasswordToken   string     `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

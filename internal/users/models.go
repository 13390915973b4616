package users

import "time"

// User is an account holder. PasswordHash is a bcrypt hash and never leaves the server.
type User struct {
	ID           string    `json:"id" db:"id" bson:"_id"`
	Email        string    `json:"email" db:"email" bson:"email"`
	PasswordHash string    `json:"-" db:"password_hash" bson:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" bson:"createdAt"`
}

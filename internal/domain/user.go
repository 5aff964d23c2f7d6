package domain

import "time"

// User account linked to an identity provider subject (users table).
type User struct {
	UserID    string    `db:"user_id"`
	Subject   string    `db:"auth0_user_id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

package model

import "time"

// Address is a shipping address owned by a single user.
type Address struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Receiver  string    `json:"receiver" db:"receiver"`
	Detail    string    `json:"detail" db:"detail"`
	Zip       string    `json:"zip" db:"zip"`
	Phone     string    `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

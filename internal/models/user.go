package models

import "time"

// User is a login identity. Email is the login key and is unique.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"` // bcrypt digest
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

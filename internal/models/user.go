package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered platform user.
type User struct {
	ID             bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string        `json:"name" bson:"name"`
	Email          string        `json:"email" bson:"email"`
	Password       string        `json:"-" bson:"password"`
	College        string        `json:"college" bson:"college"`
	Phone          string        `json:"phone" bson:"phone"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
	ProfilePicture *string       `json:"profile_picture" bson:"profile_picture"`
}

// UserPublic is the user shape returned to clients (no password hash).
type UserPublic struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	College        string    `json:"college"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
	ProfilePicture *string   `json:"profile_picture"`
}

// ToPublic strips credentials from the user.
func (u *User) ToPublic() UserPublic {
	return UserPublic{
		ID:             u.ID.Hex(),
		Name:           u.Name,
		Email:          u.Email,
		College:        u.College,
		Phone:          u.Phone,
		CreatedAt:      u.CreatedAt,
		ProfilePicture: u.ProfilePicture,
	}
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string        `bson:"email" json:"email"`
	Name      string        `bson:"name,omitempty" json:"name,omitempty"`
	PhotoURL  string        `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role      string        `bson:"role,omitempty" json:"role,omitempty"` // user, admin
	CreatedAt time.Time     `bson:"created_at,omitempty" json:"created_at,omitempty"`
	LastLogIn time.Time     `bson:"last_log_in,omitempty" json:"last_log_in,omitempty"`
	Favorites []int         `bson:"favorites,omitempty" json:"favorites,omitempty"`
}

// RoleOrDefault reports the stored role, falling back to "user" for
// documents written before roles existed.
func (u User) RoleOrDefault() string {
	if u.Role == "" {
		return RoleUser
	}
	return u.Role
}

// UserWithBiodataStatus is the admin listing row: a user plus the state of
// the biodata they own.
type UserWithBiodataStatus struct {
	User          `bson:",inline"`
	BioDataStatus string `json:"bioDataStatus"`
}

const NoBiodata = "No Biodata"

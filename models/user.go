package models

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleOrganizer UserRole = "organizer"
	RolePlayer    UserRole = "player"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleOrganizer, RolePlayer:
		return true
	}
	return false
}

// User is the profile document. Its id equals the identity provider's uid.
type User struct {
	ID                 string              `json:"id" firestore:"-" bson:"-"`
	UID                string              `json:"uid" firestore:"uid" bson:"uid"`
	Email              string              `json:"email" firestore:"email" bson:"email"`
	Name               string              `json:"name" firestore:"name" bson:"name"`
	Role               UserRole            `json:"role" firestore:"role" bson:"role"`
	Blacklisted        bool                `json:"blacklisted" firestore:"blacklisted" bson:"blacklisted"`
	GamesSignedUp      []string            `json:"gamesSignedUp" firestore:"gamesSignedUp" bson:"gamesSignedUp"`
	GamesHistory       []string            `json:"gamesHistory" firestore:"gamesHistory" bson:"gamesHistory"`
	LanguagePreference string              `json:"languagePreference" firestore:"languagePreference" bson:"languagePreference"`
	PaymentMethods     []map[string]string `json:"paymentMethod" firestore:"paymentMethod" bson:"paymentMethod"`
	CreatedAt          *time.Time          `json:"createdAt,omitempty" firestore:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt          *time.Time          `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

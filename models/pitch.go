package models

import "time"

type PitchLocation struct {
	Address  string `json:"address" firestore:"address" bson:"address"`
	GMapLink string `json:"gMapLink" firestore:"gMapLink" bson:"gMapLink"`
}

// Pitch is a venue games are played at.
type Pitch struct {
	ID        string        `json:"id" firestore:"-" bson:"-"`
	Location  PitchLocation `json:"location" firestore:"location" bson:"location"`
	Name      string        `json:"name" firestore:"name" bson:"name"`
	Type      string        `json:"type" firestore:"type" bson:"type"`
	PhotoKey  string        `json:"photoKey,omitempty" firestore:"photoKey,omitempty" bson:"photoKey,omitempty"`
	PhotoURL  string        `json:"photoUrl,omitempty" firestore:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	CreatedAt *time.Time    `json:"createdAt,omitempty" firestore:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt *time.Time    `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

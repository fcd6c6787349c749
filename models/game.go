package models

import "time"

type GameStatus string

const (
	GameStatusActive   GameStatus = "active"
	GameStatusInactive GameStatus = "inactive"
	GameStatusFinished GameStatus = "finished"
)

func (s GameStatus) Valid() bool {
	switch s {
	case GameStatusActive, GameStatusInactive, GameStatusFinished:
		return true
	}
	return false
}

// Participant is an entry in a game's participants or waitlist.
type Participant struct {
	UserID string `json:"userId" firestore:"userId" bson:"userId"`
	Name   string `json:"name" firestore:"name" bson:"name"`
}

type GameType struct {
	Format string `json:"format" firestore:"format" bson:"format"`
	Gender string `json:"gender" firestore:"gender" bson:"gender"`
}

type Review struct {
	UserID  string `json:"userId" firestore:"userId" bson:"userId"`
	Rating  int    `json:"rating" firestore:"rating" bson:"rating"`
	Comment string `json:"comment,omitempty" firestore:"comment,omitempty" bson:"comment,omitempty"`
}

// Game представляет игру на площадке. Статус вычисляется один раз при создании.
type Game struct {
	ID              string        `json:"id" firestore:"-" bson:"-"`
	Name            string        `json:"name,omitempty" firestore:"name,omitempty" bson:"name,omitempty"`
	LocationID      string        `json:"locationId" firestore:"locationId" bson:"locationId"`
	OrganizerID     string        `json:"organizerId" firestore:"organizerId" bson:"organizerId"`
	Amenities       []string      `json:"amenities" firestore:"amenities" bson:"amenities"`
	StartTime       time.Time     `json:"startTime" firestore:"startTime" bson:"startTime"`
	Duration        int           `json:"duration" firestore:"duration" bson:"duration"`
	Participants    []Participant `json:"participants" firestore:"participants" bson:"participants"`
	MaxParticipants int           `json:"maxParticipants" firestore:"maxParticipants" bson:"maxParticipants"`
	Waitlist        []Participant `json:"waitlist" firestore:"waitlist" bson:"waitlist"`
	Reviews         []Review      `json:"reviews" firestore:"reviews" bson:"reviews"`
	Status          GameStatus    `json:"status" firestore:"status" bson:"status"`
	Type            GameType      `json:"type" firestore:"type" bson:"type"`
	CreatedAt       *time.Time    `json:"createdAt,omitempty" firestore:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt       *time.Time    `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// IsFull reports whether the participant list has reached capacity.
func (g *Game) IsFull() bool {
	return len(g.Participants) >= g.MaxParticipants
}

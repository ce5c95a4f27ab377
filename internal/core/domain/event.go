package domain

import (
	"errors"
	"time"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrSponsorNotFound  = errors.New("sponsor not found")
	ErrSpeakerNotFound  = errors.New("speaker not found")
	ErrAttendeeNotFound = errors.New("attendee not found")
)

// Event is the core aggregate of the system: a scheduled happening owned by a
// user, optionally backed by a sponsor.
type Event struct {
	ID                  string    `json:"id" bson:"_id,omitempty"`
	Title               string    `json:"title" bson:"title"`
	Image               string    `json:"image,omitempty" bson:"image,omitempty"`
	Description         string    `json:"description" bson:"description"`
	Location            string    `json:"location" bson:"location"`
	AgeLimit            string    `json:"age_limit,omitempty" bson:"age_limit,omitempty"`
	Capacity            int       `json:"capacity" bson:"capacity"`
	UserID              string    `json:"user_id" bson:"user_id"`
	SponsorID           string    `json:"sponsor_id,omitempty" bson:"sponsor_id,omitempty"`
	Date                time.Time `json:"date" bson:"date"`
	Price               int       `json:"price" bson:"price"`
	EventPlannerName    string    `json:"event_planner_name,omitempty" bson:"event_planner_name,omitempty"`
	EventPlannerContact string    `json:"event_planner_contact,omitempty" bson:"event_planner_contact,omitempty"`
	CreatedAt           time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" bson:"updated_at"`
}

// Sponsor is an organisation backing one or more events.
type Sponsor struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Title        string    `json:"title" bson:"title"`
	Organisation string    `json:"organisation" bson:"organisation"`
	Category     string    `json:"category,omitempty" bson:"category,omitempty"`
	Industry     string    `json:"industry,omitempty" bson:"industry,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Speaker presents at a single event.
type Speaker struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	EventID      string    `json:"event_id" bson:"event_id"`
	Organisation string    `json:"organisation,omitempty" bson:"organisation,omitempty"`
	JobTitle     string    `json:"job_title,omitempty" bson:"job_title,omitempty"`
	Image        string    `json:"image,omitempty" bson:"image,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Attendee records a user's attendance at an event.
type Attendee struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	UserID    string    `json:"user_id" bson:"user_id"`
	EventID   string    `json:"event_id" bson:"event_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Sponsor is one sponsor entry embedded in an event.
type Sponsor struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
	Website string `json:"website,omitempty"`
	Tier    string `json:"tier,omitempty"`
}

// Speaker is one speaker entry embedded in an event.
type Speaker struct {
	Name     string `json:"name"`
	Title    string `json:"title,omitempty"`
	Bio      string `json:"bio,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// ScheduleItem is one agenda row embedded in an event.
type ScheduleItem struct {
	Day       int    `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Title     string `json:"title"`
	Speaker   string `json:"speaker,omitempty"`
}

// SponsorList persists event sponsors as a JSONB column.
type SponsorList []Sponsor

// SpeakerList persists event speakers as a JSONB column.
type SpeakerList []Speaker

// ScheduleList persists the event agenda as a JSONB column.
type ScheduleList []ScheduleItem

// Value marshals the list to JSON for persistence.
func (l SponsorList) Value() (driver.Value, error) { return jsonbValue(l) }

// Scan unmarshals a JSONB payload into the list.
func (l *SponsorList) Scan(value interface{}) error { return jsonbScan(value, l) }

// Value marshals the list to JSON for persistence.
func (l SpeakerList) Value() (driver.Value, error) { return jsonbValue(l) }

// Scan unmarshals a JSONB payload into the list.
func (l *SpeakerList) Scan(value interface{}) error { return jsonbScan(value, l) }

// Value marshals the list to JSON for persistence.
func (l ScheduleList) Value() (driver.Value, error) { return jsonbValue(l) }

// Scan unmarshals a JSONB payload into the list.
func (l *ScheduleList) Scan(value interface{}) error { return jsonbScan(value, l) }

func jsonbValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb column: %w", err)
	}
	return data, nil
}

func jsonbScan(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for jsonb column", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

// Event represents an event stored in the events table. Sponsors, speakers
// and the schedule live in JSONB columns; gallery media sits in its own
// tables.
type Event struct {
	ID                   string       `db:"id" json:"id"`
	Title                string       `db:"title" json:"title"`
	Description          string       `db:"description" json:"description"`
	StartDate            time.Time    `db:"start_date" json:"startDate"`
	EndDate              time.Time    `db:"end_date" json:"endDate"`
	StartTime            string       `db:"start_time" json:"startTime"`
	EndTime              string       `db:"end_time" json:"endTime"`
	Location             string       `db:"location" json:"location"`
	Venue                string       `db:"venue" json:"venue"`
	MapURL               string       `db:"map_url" json:"mapUrl,omitempty"`
	EventType            string       `db:"event_type" json:"eventType"`
	Capacity             int          `db:"capacity" json:"capacity"`
	TicketPrice          float64      `db:"ticket_price" json:"ticketPrice"`
	MaxRegistrations     int          `db:"max_registrations" json:"maxRegistrations"`
	RegistrationDeadline *time.Time   `db:"registration_deadline" json:"registrationDeadline,omitempty"`
	BannerImage          string       `db:"banner_image" json:"bannerImage,omitempty"`
	Sponsors             SponsorList  `db:"sponsors" json:"sponsors"`
	Speakers             SpeakerList  `db:"speakers" json:"speakers"`
	Schedules            ScheduleList `db:"schedules" json:"schedules"`
	Active               bool         `db:"active" json:"isActive"`
	CreatedAt            time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time    `db:"updated_at" json:"updatedAt"`
}

// EventFilter captures supported filters for listing events.
type EventFilter struct {
	EventType string
	Active    *bool
	From      *time.Time
	To        *time.Time
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

package models

import "time"

// GalleryPhoto is an uploaded photo attached to an event.
type GalleryPhoto struct {
	ID         string    `db:"id" json:"id"`
	EventID    string    `db:"event_id" json:"eventId"`
	CategoryID *string   `db:"category_id" json:"categoryId,omitempty"`
	ImageURL   string    `db:"image_url" json:"imageUrl"`
	Caption    string    `db:"caption" json:"caption,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// GalleryVideo is a video link attached to an event.
type GalleryVideo struct {
	ID        string    `db:"id" json:"id"`
	EventID   string    `db:"event_id" json:"eventId"`
	VideoURL  string    `db:"video_url" json:"videoUrl"`
	Caption   string    `db:"caption" json:"caption,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Gallery bundles an event's media for the gallery endpoint.
type Gallery struct {
	Photos []GalleryPhoto `json:"photos"`
	Videos []GalleryVideo `json:"videos"`
}

package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// fanfouTimeLayout is the created_at layout used by the Fanfou API.
const fanfouTimeLayout = time.RubyDate

// Time decodes Fanfou timestamps ("Sat Jun 13 13:13:13 +0000 2009").
type Time struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode time: %w", err)
	}

	if strings.TrimSpace(raw) == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(fanfouTimeLayout, raw)
	if err != nil {
		return fmt.Errorf("parse time %q: %w", raw, err)
	}

	t.Time = parsed

	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return json.Marshal("")
	}

	return json.Marshal(t.Format(fanfouTimeLayout))
}

// User is a Fanfou user as embedded in statuses.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
}

// Photo is the image attached to a status.
type Photo struct {
	ImageURL string `json:"imageurl"`
	ThumbURL string `json:"thumburl"`
	LargeURL string `json:"largeurl"`
}

// Status is a single Fanfou status.
type Status struct {
	ID        string `json:"id"`
	RawID     int64  `json:"rawid"`
	Text      string `json:"text"`
	Source    string `json:"source"`
	CreatedAt Time   `json:"created_at"`
	User      User   `json:"user"`
	Photo     *Photo `json:"photo,omitempty"`
}

// HasPhoto reports whether a photo is attached.
func (s *Status) HasPhoto() bool {
	return s.Photo != nil && (s.Photo.LargeURL != "" || s.Photo.ImageURL != "")
}

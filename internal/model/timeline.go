package model

// DefaultTimelineCount is used when no count is given on the command line.
const DefaultTimelineCount = 10

// MaxTimelineCount is the largest page the API returns.
const MaxTimelineCount = 60

// TimelineQuery selects a page of a timeline.
type TimelineQuery struct {
	// Count is the number of statuses; 0 means the API default
	Count int

	// SinceID limits results to statuses newer than this id
	SinceID string
}

package dto

// CreateMeetingRequest represents the payload for creating a meeting.
// The organizer is always taken from the authenticated caller; it is not
// accepted from the body.
type CreateMeetingRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Date         string   `json:"date" validate:"required"`       // YYYY-MM-DD
	StartTime    string   `json:"start_time" validate:"required"` // HH:MM
	EndTime      string   `json:"end_time" validate:"required"`   // HH:MM
	Participants []string `json:"participants,omitempty"`
}

// UpdateMeetingRequest represents a partial update payload. Nil fields are
// left unchanged.
type UpdateMeetingRequest struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Date         *string   `json:"date,omitempty"`
	StartTime    *string   `json:"start_time,omitempty"`
	EndTime      *string   `json:"end_time,omitempty"`
	Participants *[]string `json:"participants,omitempty"`
}

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Date         string   `json:"date"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Participants []string `json:"participants"`
	OrganizerID  string   `json:"organizer_id"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// MeetingListResponse represents the caller's meetings
type MeetingListResponse struct {
	Meetings []MeetingResponse `json:"meetings"`
}

// MessageResponse represents a simple confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

package models

// Event status values as shown in the dashboard
const (
	EventStatusActive = "Ativo"
	EventStatusClosed = "Encerrado"
)

// User represents an authenticated dashboard operator
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Event represents a scheduled event.
// Date is a local timestamp in the form 2006-01-02T15:04:05.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
}

// Participant represents a person registered for an event
type Participant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	EventID     string `json:"event_id"`
	EventName   string `json:"event_name"`
	CheckedIn   bool   `json:"checked_in"`
	CheckedInAt string `json:"checked_in_at,omitempty"`
}

// CheckinRule is one configurable check-in requirement for an event.
// The rule's window opens MinutesBefore the event start and closes
// MinutesAfter it.
type CheckinRule struct {
	ID            string `json:"id"`
	EventID       string `json:"event_id"`
	Name          string `json:"name"`
	Enabled       bool   `json:"enabled"`
	Required      bool   `json:"required"`
	MinutesBefore int    `json:"minutes_before"`
	MinutesAfter  int    `json:"minutes_after"`
}

// RecentCheckin is a dashboard entry for a participant that checked in
type RecentCheckin struct {
	ID              string `json:"id"`
	ParticipantName string `json:"participant_name"`
	EventName       string `json:"event_name"`
	Time            string `json:"time"`
}

// UpcomingEvent is a dashboard entry for an active event
type UpcomingEvent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Location string `json:"location"`
}

// DashboardData is the summary shown on the dashboard home
type DashboardData struct {
	TotalEvents       int             `json:"total_events"`
	TotalParticipants int             `json:"total_participants"`
	RecentCheckins    []RecentCheckin `json:"recent_checkins"`
	UpcomingEvents    []UpcomingEvent `json:"upcoming_events"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

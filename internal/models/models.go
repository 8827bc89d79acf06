package models

import "time"

// Hospital type of a visited entity.
const (
	HospitalTypeNew      = "new"
	HospitalTypeExisting = "existing"
)

// Contract status of a visit.
const (
	ContractNone      = "none"
	ContractPending   = "pending"
	ContractCompleted = "completed"
)

// Fallback coordinates (Seoul city center) used when a visit's location
// was never geocoded.
const (
	DefaultLatitude  = 37.5665
	DefaultLongitude = 126.978
)

// Visit is a single hospital visit logged by an employee. Display names
// (employee, group) are resolved via lookup at render time and are not
// stored on the record.
type Visit struct {
	ID             string    `json:"id"`
	HospitalName   string    `json:"hospitalName"`
	HospitalType   string    `json:"hospitalType"`
	ContactName    string    `json:"contactName"`
	ContactPhone   string    `json:"contactPhone"`
	VisitStartTime time.Time `json:"visitStartTime"`
	VisitEndTime   time.Time `json:"visitEndTime"`
	VisitNotes     string    `json:"visitNotes,omitempty"`
	ContractStatus string    `json:"contractStatus"`
	ContractAmount int64     `json:"contractAmount,omitempty"`
	Location       string    `json:"location"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	CreatedAt      time.Time `json:"createdAt"`
	EmployeeID     string    `json:"employeeId"`
}

// Employee password is stored and compared in plaintext, faithfully to the
// system this replaces. A production deployment must swap this for a hashed
// credential scheme before exposure.
type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Region   string `json:"region"`
	Position string `json:"position"`
	Password string `json:"password"`
	GroupID  string `json:"groupId,omitempty"`
}

type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// User is the session marker persisted under the currentUser key.
// Presence means logged in; the stored value is trusted as-is.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// WidgetConfig is one entry of a per-user dashboard layout, persisted
// under dashboard_<userId>. Settings is opaque to the server.
type WidgetConfig struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Size     string         `json:"size"`
	Position int            `json:"position"`
	Settings map[string]any `json:"settings,omitempty"`
}

package models

import "time"

// TicketStatus is the lifecycle state of a reported issue.
type TicketStatus string

const (
	StatusSubmitted       TicketStatus = "Submitted"
	StatusInProgress      TicketStatus = "In Progress"
	StatusPendingApproval TicketStatus = "Pending Approval"
	StatusResolved        TicketStatus = "Resolved"
)

// Priority is the AI-derived urgency classification, set once at creation.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Category enumerates the fixed issue categories citizens pick from.
type Category string

const (
	CategoryPothole      Category = "Pothole"
	CategoryStreetlight  Category = "Streetlight"
	CategoryGarbage      Category = "Garbage"
	CategoryWaterLeakage Category = "Water Leakage"
	CategorySafetyHazard Category = "Safety Hazard"
	CategoryOther        Category = "Other"
)

// Department enumerates supervisor departments.
type Department string

const (
	DepartmentRoads      Department = "Roads"
	DepartmentElectrical Department = "Electrical"
	DepartmentSanitation Department = "Sanitation"
	DepartmentWater      Department = "Water"
	DepartmentGeneral    Department = "General"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryPothole, CategoryStreetlight, CategoryGarbage,
		CategoryWaterLeakage, CategorySafetyHazard, CategoryOther:
		return true
	}
	return false
}

func ValidDepartment(d Department) bool {
	switch d {
	case DepartmentRoads, DepartmentElectrical, DepartmentSanitation,
		DepartmentWater, DepartmentGeneral:
		return true
	}
	return false
}

type Ticket struct {
	ID             string       `json:"id"`
	ReporterID     string       `json:"reporter_id"`
	MunicipalityID string       `json:"municipality_id"`
	Title          string       `json:"title"`
	Category       Category     `json:"category"`
	Notes          string       `json:"notes"`
	Transcription  string       `json:"transcription,omitempty"`
	ImageURLs      []string     `json:"image_urls"`
	Lat            float64      `json:"lat"`
	Lng            float64      `json:"lng"`
	Address        string       `json:"address"`
	Status         TicketStatus `json:"status"`
	Priority       Priority     `json:"priority"`

	SeverityScore     int    `json:"severity_score"`
	SeverityReasoning string `json:"severity_reasoning,omitempty"`

	SubmittedAt             time.Time  `json:"submitted_at"`
	EstimatedResolutionDate time.Time  `json:"estimated_resolution_date"`
	DeadlineDate            *time.Time `json:"deadline_date,omitempty"`
	ResolvedAt              *time.Time `json:"resolved_at,omitempty"`

	AssignedSupervisorID   *string `json:"assigned_supervisor_id,omitempty"`
	AssignedSupervisorName *string `json:"assigned_supervisor_name,omitempty"`

	ReportCount int      `json:"report_count"`
	ReportedBy  []string `json:"reported_by"`

	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// CompletionReport is one completion attempt by a supervisor. Rows are
// append-only so rejected attempts stay inspectable.
type CompletionReport struct {
	ID              string    `json:"id"`
	TicketID        string    `json:"ticket_id"`
	SupervisorID    string    `json:"supervisor_id"`
	Notes           string    `json:"notes"`
	ImageURLs       []string  `json:"image_urls"`
	Analysis        string    `json:"analysis,omitempty"`
	AnalysisPending bool      `json:"analysis_pending"`
	Attempt         int       `json:"attempt"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

type Supervisor struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	LoginID             string     `json:"login_id"`
	PasswordHash        string     `json:"-"`
	Department          Department `json:"department"`
	Phone               string     `json:"phone"`
	MunicipalityID      string     `json:"municipality_id"`
	TrustPoints         int        `json:"trust_points"`
	AIImageWarningCount int        `json:"ai_image_warning_count"`
	EfficiencyPoints    int        `json:"efficiency_points"`
	CreatedAt           time.Time  `json:"created_at"`
}

type UserProfile struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name"`
	PasswordHash  string    `json:"-"`
	UtilityPoints int       `json:"utility_points"`
	TrustPoints   int       `json:"trust_points"`
	Badges        []string  `json:"badges"`
	JoinedAt      time.Time `json:"joined_at"`
}

type Municipality struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LoginID      string    `json:"login_id"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Feedback struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Package club manages the records that describe how the club runs:
// activities, projects, documents, donation campaigns, members, staff and
// the positions they hold.
package club

import (
	"time"

	"smoweb/app/internal/domain/cms"
)

// Person is the public summary of the user behind an activity, project or staff profile.
type Person struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type ActivityType string

var ActivityTypes = []ActivityType{
	"WORKSHOP", "SEMINAR", "COMPETITION", "VOLUNTEER", "SOCIAL",
	"TRAINING", "MEETING", "CEREMONY", "FUNDRAISING", "EXHIBITION",
}

type ActivityStatus string

const (
	ActivityPlanning  ActivityStatus = "PLANNING"
	ActivityPublished ActivityStatus = "PUBLISHED"
	ActivityOngoing   ActivityStatus = "ONGOING"
	ActivityCompleted ActivityStatus = "COMPLETED"
	ActivityCancelled ActivityStatus = "CANCELLED"
)

var ActivityStatuses = []ActivityStatus{
	ActivityPlanning, ActivityPublished, ActivityOngoing, ActivityCompleted, ActivityCancelled,
}

type Activity struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        ActivityType   `json:"type"`
	Status      ActivityStatus `json:"status"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     *time.Time     `json:"endDate"`
	Location    string         `json:"location"`
	IsPublic    bool           `json:"isPublic"`
	Image       string         `json:"image"`
	Gallery     []string       `json:"gallery"`
	CategoryID  string         `json:"categoryId"`
	ProjectID   *string        `json:"projectId"`
	AuthorID    *string        `json:"authorId"`
	Author      *Person        `json:"author,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type ActivityInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Location    string   `json:"location"`
	IsPublic    *bool    `json:"isPublic"`
	Image       string   `json:"image"`
	Gallery     []string `json:"gallery"`
	CategoryID  string   `json:"categoryId"`
	ProjectID   string   `json:"projectId"`
	AuthorID    string   `json:"authorId"`
	AuthorEmail string   `json:"authorEmail"`
}

// ActivityPatch holds optional activity changes; nil or blank values are ignored.
type ActivityPatch struct {
	Title       *string
	Description *string
	Type        *string
	Status      *string
	StartDate   *string
	EndDate     *string
	Location    *string
	IsPublic    *bool
	Image       *string
	Gallery     *[]string
	CategoryID  *string
	ProjectID   *string
}

type ActivityQuery struct {
	Type      string
	Status    string
	IsPublic  string
	ProjectID string
	Upcoming  bool
	Limit     int
}

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "PLANNING"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectOnHold     ProjectStatus = "ON_HOLD"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

var ProjectStatuses = []ProjectStatus{
	ProjectPlanning, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled,
}

// Project is a budgeted club initiative that groups activities.
type Project struct {
	ID               string        `json:"id"`
	Code             string        `json:"code"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	ShortDescription string        `json:"shortDescription"`
	Year             int           `json:"year"`
	Status           ProjectStatus `json:"status"`
	Priority         cms.Priority  `json:"priority"`
	StartDate        time.Time     `json:"startDate"`
	EndDate          time.Time     `json:"endDate"`
	TotalBudget      *float64      `json:"totalBudget"`
	UsedBudget       float64       `json:"usedBudget"`
	Objectives       string        `json:"objectives"`
	TargetGroup      string        `json:"targetGroup"`
	ExpectedResults  string        `json:"expectedResults"`
	Sponsor          string        `json:"sponsor"`
	Coordinator      string        `json:"coordinator"`
	IsActive         bool          `json:"isActive"`
	Image            string        `json:"image"`
	AuthorID         *string       `json:"authorId"`
	Author           *Person       `json:"author,omitempty"`
	Activities       []Activity    `json:"activities,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

type ProjectInput struct {
	Code             string   `json:"code"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Year             int      `json:"year"`
	Status           string   `json:"status"`
	Priority         string   `json:"priority"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	TotalBudget      *float64 `json:"totalBudget"`
	Objectives       string   `json:"objectives"`
	TargetGroup      string   `json:"targetGroup"`
	ExpectedResults  string   `json:"expectedResults"`
	Sponsor          string   `json:"sponsor"`
	Coordinator      string   `json:"coordinator"`
	IsActive         *bool    `json:"isActive"`
	Image            string   `json:"image"`
	AuthorID         string   `json:"authorId"`
	AuthorEmail      string   `json:"authorEmail"`
}

type ProjectPatch struct {
	Title            *string
	Description      *string
	ShortDescription *string
	Year             *int
	Status           *string
	Priority         *string
	StartDate        *string
	EndDate          *string
	TotalBudget      *float64
	UsedBudget       *float64
	Objectives       *string
	TargetGroup      *string
	ExpectedResults  *string
	Sponsor          *string
	Coordinator      *string
	IsActive         *bool
	Image            *string
}

type ProjectQuery struct {
	Year     int
	Status   string
	Priority string
	IsActive string
}

// Document is a downloadable file reference. The file itself lives elsewhere.
type Document struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	FileName      string    `json:"fileName"`
	FileURL       string    `json:"fileUrl"`
	FileSize      int64     `json:"fileSize"`
	Type          string    `json:"type"`
	IsPublic      bool      `json:"isPublic"`
	DownloadCount int64     `json:"downloadCount"`
	UploadedBy    string    `json:"uploadedBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type DocumentInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FileName    string `json:"fileName"`
	FileURL     string `json:"fileUrl"`
	FileSize    int64  `json:"fileSize"`
	Type        string `json:"type"`
	IsPublic    bool   `json:"isPublic"`
	UploadedBy  string `json:"uploadedBy"`
}

type DocumentPatch struct {
	Title       *string
	Description *string
	FileName    *string
	FileURL     *string
	FileSize    *int64
	Type        *string
	IsPublic    *bool
	UploadedBy  *string
}

type DocumentQuery struct {
	Type     string
	IsPublic string
}

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "ACTIVE"
	CampaignPaused    CampaignStatus = "PAUSED"
	CampaignCompleted CampaignStatus = "COMPLETED"
	CampaignCancelled CampaignStatus = "CANCELLED"
)

var CampaignStatuses = []CampaignStatus{CampaignActive, CampaignPaused, CampaignCompleted, CampaignCancelled}

// Campaign is a fundraising drive. CurrentAmount and DonorCount only grow through donations.
type Campaign struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	TargetAmount  float64        `json:"targetAmount"`
	CurrentAmount float64        `json:"currentAmount"`
	StartDate     time.Time      `json:"startDate"`
	EndDate       time.Time      `json:"endDate"`
	Status        CampaignStatus `json:"status"`
	Category      string         `json:"category"`
	Image         string         `json:"image"`
	DonorCount    int64          `json:"donorCount"`
	CreatedBy     string         `json:"createdBy"`
	Donations     []Donation     `json:"donations,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

type CampaignInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	TargetAmount float64 `json:"targetAmount"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Category     string  `json:"category"`
	Image        string  `json:"image"`
	CreatedBy    string  `json:"createdBy"`
}

type CampaignPatch struct {
	Title        *string
	Description  *string
	TargetAmount *float64
	StartDate    *string
	EndDate      *string
	Status       *string
	Category     *string
	Image        *string
}

type Donation struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaignId"`
	DonorName   string    `json:"donorName"`
	Amount      float64   `json:"amount"`
	Message     string    `json:"message"`
	IsAnonymous bool      `json:"isAnonymous"`
	CreatedAt   time.Time `json:"createdAt"`
}

type DonationInput struct {
	DonorName   string  `json:"donorName"`
	Amount      float64 `json:"amount"`
	Message     string  `json:"message"`
	IsAnonymous bool    `json:"isAnonymous"`
}

// Member is a student on the club roster.
type Member struct {
	ID           string    `json:"id"`
	UserID       *string   `json:"userId"`
	Name         string    `json:"name"`
	StudentID    *string   `json:"studentId"`
	Email        string    `json:"email"`
	Department   string    `json:"department"`
	Faculty      string    `json:"faculty"`
	Year         int       `json:"year"`
	AcademicYear string    `json:"academicYear"`
	Phone        string    `json:"phone"`
	Position     string    `json:"position"`
	Division     string    `json:"division"`
	Avatar       string    `json:"avatar"`
	IsActive     bool      `json:"isActive"`
	JoinDate     time.Time `json:"joinDate"`
}

type MemberInput struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	StudentID    string `json:"studentId"`
	Email        string `json:"email"`
	Department   string `json:"department"`
	Faculty      string `json:"faculty"`
	Year         int    `json:"year"`
	AcademicYear string `json:"academicYear"`
	Phone        string `json:"phone"`
	Position     string `json:"position"`
	Division     string `json:"division"`
	Avatar       string `json:"avatar"`
}

type MemberPatch struct {
	Name         *string
	StudentID    *string
	Email        *string
	Department   *string
	Faculty      *string
	Year         *int
	AcademicYear *string
	Phone        *string
	Position     *string
	Division     *string
	Avatar       *string
	IsActive     *bool
}

type MemberQuery struct {
	Year       int
	Department string
	Faculty    string
}

// Staff is the profile of a user who works for the club office.
type Staff struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	EmployeeID *string   `json:"employeeId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	Phone      string    `json:"phone"`
	Office     string    `json:"office"`
	Bio        string    `json:"bio"`
	Expertise  []string  `json:"expertise"`
	Avatar     string    `json:"avatar"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type StaffInput struct {
	UserID     string   `json:"userId"`
	EmployeeID string   `json:"employeeId"`
	Department string   `json:"department"`
	Position   string   `json:"position"`
	Phone      string   `json:"phone"`
	Office     string   `json:"office"`
	Bio        string   `json:"bio"`
	Expertise  []string `json:"expertise"`
	Avatar     string   `json:"avatar"`
}

type StaffPatch struct {
	EmployeeID *string
	Department *string
	Position   *string
	Phone      *string
	Office     *string
	Bio        *string
	Expertise  *[]string
	Avatar     *string
	IsActive   *bool
}

type StaffQuery struct {
	Department string
	Position   string
}

// Position is a role on the club committee. Higher levels sort first.
type Position struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Level       int       `json:"level"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PositionInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Level       int    `json:"level"`
	IsActive    *bool  `json:"isActive"`
}

type PositionPatch struct {
	Title       *string
	Description *string
	Type        *string
	Level       *int
	IsActive    *bool
}

type PositionQuery struct {
	Type     string
	IsActive string
}

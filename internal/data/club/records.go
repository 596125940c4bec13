package club

import (
	"time"

	"gorm.io/datatypes"

	"smoweb/app/internal/data/directory"
)

// ProjectRecord is a budgeted initiative. Its activities keep existing when it is removed.
type ProjectRecord struct {
	ID               string                `gorm:"primaryKey;size:36"`
	Code             string                `gorm:"size:50;uniqueIndex;not null"`
	Title            string                `gorm:"size:255;not null"`
	Description      string                `gorm:"type:text;not null"`
	ShortDescription string                `gorm:"size:500"`
	Year             int                   `gorm:"not null;index"`
	Status           string                `gorm:"size:20;not null;default:PLANNING;index"`
	Priority         string                `gorm:"size:20;not null;default:MEDIUM;index"`
	StartDate        time.Time             `gorm:"not null;index"`
	EndDate          time.Time             `gorm:"not null"`
	TotalBudget      *float64              `gorm:"default:null"`
	UsedBudget       float64               `gorm:"not null;default:0"`
	Objectives       string                `gorm:"type:text"`
	TargetGroup      string                `gorm:"size:255"`
	ExpectedResults  string                `gorm:"type:text"`
	Sponsor          string                `gorm:"size:255"`
	Coordinator      string                `gorm:"size:255"`
	IsActive         bool                  `gorm:"not null;default:true;index"`
	Image            string                `gorm:"size:500"`
	AuthorID         *string               `gorm:"size:36;index"`
	Author           *directory.UserRecord `gorm:"constraint:OnDelete:SET NULL"`
	Activities       []ActivityRecord      `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL"`
	CreatedAt        time.Time             `gorm:"autoCreateTime;index"`
	UpdatedAt        time.Time             `gorm:"autoUpdateTime"`
}

func (ProjectRecord) TableName() string {
	return "projects"
}

// ActivityRecord is a scheduled club event.
type ActivityRecord struct {
	ID          string                      `gorm:"primaryKey;size:36"`
	Title       string                      `gorm:"size:255;not null"`
	Description string                      `gorm:"type:text;not null"`
	Type        string                      `gorm:"size:20;not null;index"`
	Status      string                      `gorm:"size:20;not null;default:PLANNING;index"`
	StartDate   time.Time                   `gorm:"not null;index"`
	EndDate     *time.Time                  `gorm:"index"`
	Location    string                      `gorm:"size:255"`
	IsPublic    bool                        `gorm:"not null;default:true;index"`
	Image       string                      `gorm:"size:500"`
	Gallery     datatypes.JSONSlice[string] `gorm:"not null"`
	CategoryID  string                      `gorm:"size:36;not null;index"`
	Category    *directory.CategoryRecord   `gorm:"constraint:OnDelete:RESTRICT"`
	ProjectID   *string                     `gorm:"size:36;index"`
	AuthorID    *string                     `gorm:"size:36;index"`
	Author      *directory.UserRecord       `gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
}

func (ActivityRecord) TableName() string {
	return "activities"
}

type DocumentRecord struct {
	ID            string    `gorm:"primaryKey;size:36"`
	Title         string    `gorm:"size:255;not null"`
	Description   string    `gorm:"type:text"`
	FileName      string    `gorm:"size:255;not null"`
	FileURL       string    `gorm:"column:file_url;size:1000;not null"`
	FileSize      int64     `gorm:"not null;default:0"`
	Type          string    `gorm:"size:50;not null;default:document;index"`
	IsPublic      bool      `gorm:"not null;default:false;index"`
	DownloadCount int64     `gorm:"not null;default:0"`
	UploadedBy    string    `gorm:"size:100;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (DocumentRecord) TableName() string {
	return "documents"
}

// CampaignRecord is a fundraising drive; its donations are removed with it.
type CampaignRecord struct {
	ID            string           `gorm:"primaryKey;size:36"`
	Title         string           `gorm:"size:255;not null"`
	Description   string           `gorm:"type:text;not null"`
	TargetAmount  float64          `gorm:"not null"`
	CurrentAmount float64          `gorm:"not null;default:0"`
	StartDate     time.Time        `gorm:"not null"`
	EndDate       time.Time        `gorm:"not null"`
	Status        string           `gorm:"size:20;not null;default:ACTIVE;index"`
	Category      string           `gorm:"size:100;not null"`
	Image         string           `gorm:"size:500"`
	DonorCount    int64            `gorm:"not null;default:0"`
	CreatedBy     string           `gorm:"size:100;not null"`
	Donations     []DonationRecord `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time        `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime"`
}

func (CampaignRecord) TableName() string {
	return "donation_campaigns"
}

type DonationRecord struct {
	ID          string    `gorm:"primaryKey;size:36"`
	CampaignID  string    `gorm:"size:36;not null;index"`
	DonorName   string    `gorm:"size:255;not null"`
	Amount      float64   `gorm:"not null"`
	Message     string    `gorm:"type:text"`
	IsAnonymous bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (DonationRecord) TableName() string {
	return "donations"
}

// MemberRecord is a roster entry. The linked account is optional.
type MemberRecord struct {
	ID           string                `gorm:"primaryKey;size:36"`
	UserID       *string               `gorm:"size:36;index"`
	User         *directory.UserRecord `gorm:"constraint:OnDelete:SET NULL"`
	Name         string                `gorm:"size:255;not null"`
	StudentID    *string               `gorm:"size:50;uniqueIndex"`
	Email        string                `gorm:"size:255"`
	Department   string                `gorm:"size:255;not null;index"`
	Faculty      string                `gorm:"size:255;not null;index"`
	Year         int                   `gorm:"not null;index"`
	AcademicYear string                `gorm:"size:20"`
	Phone        string                `gorm:"size:50"`
	Position     string                `gorm:"size:255"`
	Division     string                `gorm:"size:255"`
	Avatar       string                `gorm:"size:500"`
	IsActive     bool                  `gorm:"not null;default:true"`
	JoinDate     time.Time             `gorm:"not null"`
	CreatedAt    time.Time             `gorm:"autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"autoUpdateTime"`
}

func (MemberRecord) TableName() string {
	return "members"
}

// StaffRecord is the office profile of one user and is removed with the account.
type StaffRecord struct {
	ID         string                      `gorm:"primaryKey;size:36"`
	UserID     string                      `gorm:"size:36;uniqueIndex;not null"`
	User       *directory.UserRecord       `gorm:"constraint:OnDelete:CASCADE"`
	EmployeeID *string                     `gorm:"size:50;uniqueIndex"`
	Department string                      `gorm:"size:255;not null;index"`
	Position   string                      `gorm:"size:255;not null"`
	Phone      string                      `gorm:"size:50"`
	Office     string                      `gorm:"size:255"`
	Bio        string                      `gorm:"type:text"`
	Expertise  datatypes.JSONSlice[string] `gorm:"not null"`
	Avatar     string                      `gorm:"size:500"`
	IsActive   bool                        `gorm:"not null;default:true"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt  time.Time                   `gorm:"autoUpdateTime"`
}

func (StaffRecord) TableName() string {
	return "staff"
}

type PositionRecord struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Title       string    `gorm:"size:255;uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	Type        string    `gorm:"size:50;not null;index"`
	Level       int       `gorm:"not null;default:0;index"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (PositionRecord) TableName() string {
	return "positions"
}

// Records lists every model owned by this package in migration order.
func Records() []any {
	return []any{
		&ProjectRecord{},
		&ActivityRecord{},
		&DocumentRecord{},
		&CampaignRecord{},
		&DonationRecord{},
		&MemberRecord{},
		&StaffRecord{},
		&PositionRecord{},
	}
}

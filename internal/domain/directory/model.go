// Package directory manages the plain records around published content:
// categories, contact messages and user accounts.
package directory

import "time"

type CategoryType string

const (
	CategoryNews     CategoryType = "NEWS"
	CategoryActivity CategoryType = "ACTIVITY"
	CategoryDocument CategoryType = "DOCUMENT"
	CategoryGeneral  CategoryType = "GENERAL"
)

type Category struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Type        CategoryType `json:"type"`
	Color       string       `json:"color"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Type        string `json:"type"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// DefaultCategories are the categories every new installation starts with.
func DefaultCategories() []CategoryInput {
	return []CategoryInput{
		{Name: "ข่าวประชาสัมพันธ์", Slug: "news", Type: string(CategoryNews), Color: "#3B82F6", Description: "ข่าวสารและประกาศทั่วไป"},
		{Name: "กิจกรรมสโมสร", Slug: "activity", Type: string(CategoryActivity), Color: "#10B981", Description: "กิจกรรมและงานต่างๆ ของสโมสร"},
		{Name: "เอกสาร", Slug: "document", Type: string(CategoryDocument), Color: "#F59E0B", Description: "เอกสารสำคัญและคู่มือต่างๆ"},
		{Name: "ทั่วไป", Slug: "general", Type: string(CategoryGeneral), Color: "#6B7280", Description: "หมวดหมู่ทั่วไป"},
	}
}

type ContactStatus string

const (
	ContactNew        ContactStatus = "NEW"
	ContactInProgress ContactStatus = "IN_PROGRESS"
	ContactResolved   ContactStatus = "RESOLVED"
	ContactClosed     ContactStatus = "CLOSED"
)

// Contact is a message sent through the public contact form.
type Contact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Category  string        `json:"category"`
	Priority  string        `json:"priority"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type ContactInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// ContactPatch holds optional contact changes; nil or blank values are ignored.
type ContactPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Subject  *string
	Message  *string
	Category *string
	Priority *string
	Status   *string
}

type ContactFilter struct {
	Category string
	Status   ContactStatus
}

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleMember Role = "MEMBER"
	RoleStaff  Role = "STAFF"
)

// User is a site account. The password hash never leaves the process as JSON.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UserInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// UserPatch holds optional account changes; nil or blank values are ignored.
type UserPatch struct {
	Email     *string
	Username  *string
	Password  *string
	FirstName *string
	LastName  *string
	Role      *string
	IsActive  *bool
}

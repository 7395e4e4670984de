package models

import (
	"time"
)

// User is an account identity based on the 'users' table
type User struct {
	ID         int64     `json:"id" db:"id"`
	Username   string    `json:"username" db:"username"`
	Password   string    `json:"-" db:"password"` // bcrypt hash
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	Email      string    `json:"email" db:"email"`
	IsStaff    bool      `json:"is_staff" db:"is_staff"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	DateJoined time.Time `json:"date_joined" db:"date_joined"`
}

// Alumni is the profile attached 1:1 to a User, keyed by the user's ID
type Alumni struct {
	UserID           int64   `json:"user_id" db:"user_id"`
	ProfileImage     string  `json:"profile_image" db:"profile_image"`
	Bio              string  `json:"bio" db:"bio"`
	GraduationYear   string  `json:"graduation_year" db:"graduation_year"`
	Major            string  `json:"major" db:"major"`
	CurrentPosition  string  `json:"current_position" db:"current_position"`
	CurrentCompanyID *int64  `json:"current_company_id,omitempty" db:"current_company_id"` // nulled when the company is deleted
	ContactEmail     *string `json:"contact_email,omitempty" db:"contact_email"`
	User             *User   `json:"user,omitempty"` // Relation, no db tag
}

// AlumniAchievement is owned by an Alumni and removed with it
type AlumniAchievement struct {
	ID          int64     `json:"id" db:"id"`
	AlumnusID   int64     `json:"alumnus_id" db:"alumnus_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
}

// Token is the single live API token of a user
type Token struct {
	Key       string    `json:"key" db:"key"`
	UserID    int64     `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

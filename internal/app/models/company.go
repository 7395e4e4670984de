package models

import "time"

// Company defines the company model based on the 'companies' table
type Company struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Logo     *string `json:"logo,omitempty" db:"logo"`
	Location string  `json:"location" db:"location"`
	Industry string  `json:"industry" db:"industry"`
	Website  string  `json:"website" db:"website"`
}

// InternshipOpportunity is owned by a Company and removed with it
type InternshipOpportunity struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Requirements *string   `json:"requirements,omitempty" db:"requirements"`
	Location     string    `json:"location" db:"location"`
	CompanyID    int64     `json:"company_id" db:"company_id"`
	PostedDate   time.Time `json:"posted_date" db:"posted_date"`
	ApplyLink    string    `json:"apply_link" db:"apply_link"`
	Company      *Company  `json:"company,omitempty"` // Relation, no db tag
}

package dto

import (
	"time"

	"github.com/yigit/alumniportal/internal/app/models"
)

// AlumniView is the public shape of an alumni profile
type AlumniView struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Bio             string  `json:"bio"`
	GraduationYear  string  `json:"graduation_year"`
	Major           string  `json:"major"`
	CurrentPosition string  `json:"current_position"`
	ContactEmail    *string `json:"contact_email"`
	ProfileImage    string  `json:"profile_image"`
}

// EventImageView is an image nested in an event
type EventImageView struct {
	ID      int64   `json:"id"`
	Image   string  `json:"image"`
	Caption *string `json:"caption"`
}

// EventView is an event with all of its images
type EventView struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	Images      []EventImageView `json:"images"`
}

// CompanyView is a company nested in an internship
type CompanyView struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Industry string  `json:"industry"`
	Website  string  `json:"website"`
	Logo     *string `json:"logo"`
}

// InternshipView is an internship with its company
type InternshipView struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Requirements *string     `json:"requirements"`
	Location     string      `json:"location"`
	Company      CompanyView `json:"company"`
	ApplyLink    string      `json:"apply_link"`
}

// HomeResponse aggregates everything the home screen shows
type HomeResponse struct {
	User        AlumniView       `json:"user"`
	Events      []EventView      `json:"events"`
	Internships []InternshipView `json:"internships"`
	NewUsers    []AlumniView     `json:"new_users"`
}

// FromAlumni maps a profile (with its user loaded) to its view
func FromAlumni(a *models.Alumni) AlumniView {
	view := AlumniView{
		ID:              a.UserID,
		Bio:             a.Bio,
		GraduationYear:  a.GraduationYear,
		Major:           a.Major,
		CurrentPosition: a.CurrentPosition,
		ContactEmail:    a.ContactEmail,
		ProfileImage:    a.ProfileImage,
	}
	if a.User != nil {
		view.Username = a.User.Username
		view.FirstName = a.User.FirstName
		view.LastName = a.User.LastName
	}
	return view
}

// FromAlumniList maps profiles in order
func FromAlumniList(list []*models.Alumni) []AlumniView {
	views := make([]AlumniView, 0, len(list))
	for _, a := range list {
		views = append(views, FromAlumni(a))
	}
	return views
}

// FromEvent maps an event and its images
func FromEvent(e *models.Event) EventView {
	images := make([]EventImageView, 0, len(e.Images))
	for _, img := range e.Images {
		images = append(images, EventImageView{ID: img.ID, Image: img.Image, Caption: img.Caption})
	}
	return EventView{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Images:      images,
	}
}

// FromEvents maps events in order
func FromEvents(events []*models.Event) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, FromEvent(e))
	}
	return views
}

// FromCompany maps a company
func FromCompany(c *models.Company) CompanyView {
	if c == nil {
		return CompanyView{}
	}
	return CompanyView{
		ID:       c.ID,
		Name:     c.Name,
		Location: c.Location,
		Industry: c.Industry,
		Website:  c.Website,
		Logo:     c.Logo,
	}
}

// FromInternship maps an internship with its company
func FromInternship(in *models.InternshipOpportunity) InternshipView {
	return InternshipView{
		ID:           in.ID,
		Title:        in.Title,
		Description:  in.Description,
		Requirements: in.Requirements,
		Location:     in.Location,
		Company:      FromCompany(in.Company),
		ApplyLink:    in.ApplyLink,
	}
}

// FromInternships maps internships in order
func FromInternships(list []*models.InternshipOpportunity) []InternshipView {
	views := make([]InternshipView, 0, len(list))
	for _, in := range list {
		views = append(views, FromInternship(in))
	}
	return views
}

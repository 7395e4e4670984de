package dto

import "github.com/yigit/alumniportal/internal/app/models"

// RegisterRequest is the alumni registration payload, accepted as JSON or
// multipart form. With multipart the profile image arrives as a file part.
type RegisterRequest struct {
	Username        string `json:"username" form:"username" validate:"required,max=150,username"`
	FirstName       string `json:"first_name" form:"first_name" validate:"max=150"`
	LastName        string `json:"last_name" form:"last_name" validate:"max=150"`
	Password        string `json:"password" form:"password" validate:"required,bcryptlen"`
	Bio             string `json:"bio" form:"bio" validate:"required"`
	GraduationYear  string `json:"graduation_year" form:"graduation_year" validate:"required,max=4"`
	Major           string `json:"major" form:"major" validate:"required,max=255"`
	CurrentPosition string `json:"current_position" form:"current_position" validate:"required,max=255"`
	ContactEmail    string `json:"contact_email" form:"contact_email" validate:"required,email,max=254"`
	ProfileImage    string `json:"profile_image" form:"-"`
}

// RegistrationView echoes the stored registration without the password
type RegistrationView struct {
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

// RegisterResponse is returned with 201 after a successful registration
type RegisterResponse struct {
	Message string           `json:"message"`
	Data    RegistrationView `json:"data"`
	Token   string           `json:"token"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Token   string `json:"token"`
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Response messages
const (
	RegisterSuccessMessage = "Alumni successfully registered"
	LoginSuccessMessage    = "Login successful"
)

// FromRegisteredAlumni builds the registration echo
func FromRegisteredAlumni(a *models.Alumni) RegistrationView {
	view := RegistrationView{
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

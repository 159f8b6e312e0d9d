package types

import (
	"fmt"
	"strings"

	"bluecollar/constants"
)

// UserSignupRequest is the payload for customer registration.
type UserSignupRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=255"`
	LastName  string `json:"lastName" validate:"required,min=1,max=255"`
	Username  string `json:"username" validate:"required,min=3,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone" validate:"required"`
	Location  string `json:"location" validate:"required"`
	Address   string `json:"address" validate:"omitempty"`
	UserImage string `json:"userImage" validate:"omitempty"`
}

func (r UserSignupRequest) Validate() error {
	if r.FirstName == "" {
		return fmt.Errorf("firstName is required")
	}
	if r.LastName == "" {
		return fmt.Errorf("lastName is required")
	}
	if len(r.Username) < 3 {
		return fmt.Errorf("username must be at least 3 characters")
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if r.Location != "" && !constants.IsKnownLocation(r.Location) {
		return fmt.Errorf("unknown location %q", r.Location)
	}
	return nil
}

// ArtisanSignupRequest is the payload for provider registration.
type ArtisanSignupRequest struct {
	FirstName    string `json:"firstName" validate:"required,min=1,max=255"`
	LastName     string `json:"lastName" validate:"required,min=1,max=255"`
	Username     string `json:"username" validate:"required,min=3,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Phone        string `json:"phone" validate:"required"`
	Service      string `json:"service" validate:"required"`
	Location     string `json:"location" validate:"required"`
	Address      string `json:"address" validate:"omitempty"`
	ArtisanImage string `json:"artisanImage" validate:"omitempty"`
}

func (r ArtisanSignupRequest) Validate() error {
	if r.FirstName == "" {
		return fmt.Errorf("firstName is required")
	}
	if r.LastName == "" {
		return fmt.Errorf("lastName is required")
	}
	if len(r.Username) < 3 {
		return fmt.Errorf("username must be at least 3 characters")
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if !constants.IsKnownService(r.Service) {
		return fmt.Errorf("unknown service %q", r.Service)
	}
	if !constants.IsKnownLocation(r.Location) {
		return fmt.Errorf("unknown location %q", r.Location)
	}
	return nil
}

// LoginRequest is shared by the user and artisan login endpoints.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// PasswordUpdateRequest is shared by the user and artisan
// password-change endpoints.
type PasswordUpdateRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

func (r PasswordUpdateRequest) Validate() error {
	if r.OldPassword == "" {
		return fmt.Errorf("oldPassword is required")
	}
	if len(r.NewPassword) < 8 {
		return fmt.Errorf("newPassword must be at least 8 characters")
	}
	return nil
}

// ProfileUpdateRequest carries optional profile fields; nil means
// "leave unchanged".
type ProfileUpdateRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Location  *string `json:"location,omitempty"`
	Address   *string `json:"address,omitempty"`
	UserImage *string `json:"userImage,omitempty"`
}

func (r ProfileUpdateRequest) Validate() error {
	if r.Location != nil && *r.Location != "" && !constants.IsKnownLocation(*r.Location) {
		return fmt.Errorf("unknown location %q", *r.Location)
	}
	return nil
}

package types

import (
	"fmt"
	"time"
)

// MinBookingLead is how far in the future a booking date must lie.
const MinBookingLead = time.Hour

// MinAddressLength matches the shortest service address accepted at
// booking time.
const MinAddressLength = 10

// OrderCreateRequest is the payload for creating a booking order. The
// booking customer is taken from the auth token, never from the body.
type OrderCreateRequest struct {
	ArtisanID       string    `json:"artisanId" validate:"required"`
	ServiceType     string    `json:"service_type" validate:"required"`
	CustomerAddress string    `json:"customer_address" validate:"required,min=10"`
	BookingDate     time.Time `json:"booking_date" validate:"required"`
	Description     string    `json:"description" validate:"omitempty"`
}

// Validate checks the request against a reference time. Violations are
// rejected before any write is attempted.
func (r OrderCreateRequest) Validate(ref time.Time) error {
	if r.ArtisanID == "" {
		return fmt.Errorf("artisanId is required")
	}
	if r.ServiceType == "" {
		return fmt.Errorf("service_type is required")
	}
	if len(r.CustomerAddress) < MinAddressLength {
		return fmt.Errorf("customer_address must be at least %d characters", MinAddressLength)
	}
	if r.BookingDate.IsZero() {
		return fmt.Errorf("booking_date is required")
	}
	if r.BookingDate.Before(ref.Add(MinBookingLead)) {
		return fmt.Errorf("booking_date must be at least %s in the future", MinBookingLead)
	}
	return nil
}

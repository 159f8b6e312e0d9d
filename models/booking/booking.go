package booking

import (
	"errors"
	"time"

	"bluecollar/models/role"
)

var (
	ErrAlreadyCompleted = errors.New("order is already completed")
	ErrNotPermitted     = errors.New("caller may not close this order")
)

// Order is a record of a user requesting a specific artisan for a
// service on a given date.
type Order struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	PublicID string `gorm:"type:varchar(64);not null;unique" json:"id"`

	// BookedBy is the username of the customer who placed the order.
	BookedBy      string `gorm:"type:varchar(255);not null;index" json:"booked_by"`
	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string `gorm:"type:varchar(20)" json:"customer_phone"`
	UserLocation  string `gorm:"type:varchar(255)" json:"user_location"`

	ArtisanID       uint   `gorm:"not null;index" json:"-"`
	ArtisanUsername string `gorm:"type:varchar(255);not null;index" json:"artisanUsername"`
	ArtisanFullName string `gorm:"type:varchar(255)" json:"artisanFullName"`
	ArtisanPhone    string `gorm:"type:varchar(20)" json:"artisanPhone"`

	ServiceType     string    `gorm:"type:varchar(255);not null" json:"service_type"`
	CustomerAddress string    `gorm:"type:text;not null" json:"customer_address"`
	Description     string    `gorm:"type:text" json:"description"`
	BookingDate     time.Time `gorm:"not null" json:"booking_date"`

	State State `gorm:"type:int;not null;default:0" json:"state"`

	// Reviewed is set once the customer has left a review for this
	// order, so a closed order is reviewable exactly once.
	Reviewed bool `gorm:"type:bool;default:false" json:"reviewed"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// Close transitions the order to Completed on behalf of the given actor.
// The state only advances: closing a completed order fails, and an
// artisan can never close an order. Users may only close their own.
func (o *Order) Close(actor role.Role, actorUsername string) error {
	if !actor.CanCloseOrder() {
		return ErrNotPermitted
	}
	if actor == role.User && o.BookedBy != actorUsername {
		return ErrNotPermitted
	}
	if !o.State.CanClose() {
		return ErrAlreadyCompleted
	}
	o.State = StateCompleted
	return nil
}

// Reviewable reports whether the given user may submit a review against
// this order.
func (o *Order) Reviewable(username string) bool {
	return o.State.CanReview() && !o.Reviewed && o.BookedBy == username
}

package artisan

import (
	"time"

	"bluecollar/models/review"
)

// Artisan is a service-provider account. Only active and verified
// artisans are surfaced in discovery listings.
type Artisan struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	PublicID  string `gorm:"type:varchar(64);not null;unique" json:"id"`
	Username  string `gorm:"type:varchar(255);not null;unique" json:"username"`
	FirstName string `gorm:"type:varchar(255);not null" json:"firstName"`
	LastName  string `gorm:"type:varchar(255);not null" json:"lastName"`
	Email     string `gorm:"type:varchar(255);not null;unique" json:"email"`
	Phone     string `gorm:"type:varchar(20);not null" json:"phone"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`

	Service  string `gorm:"type:varchar(255);not null;index" json:"service"`
	Location string `gorm:"type:varchar(255);not null;index" json:"location"`

	// JSON-encoded AddressType, see models/address.
	Address string `gorm:"type:text" json:"address"`

	ArtisanImage string `gorm:"type:varchar(2048)" json:"artisanImage"`

	// Verified is flipped by the admin KYC flow.
	Verified bool `gorm:"type:bool;default:false" json:"verified"`
	Active   bool `gorm:"type:bool;default:true" json:"active"`

	// Booked marks the artisan as currently engaged by an open order.
	Booked bool `gorm:"type:bool;default:false" json:"booked"`

	// Rating is the mean of all review ratings, recomputed on submission.
	Rating  float64         `gorm:"type:decimal(3,2);default:0" json:"rating"`
	Reviews []review.Review `gorm:"foreignKey:ArtisanID" json:"reviews"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"dateAdded"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (a *Artisan) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Discoverable reports whether the artisan may appear in discovery
// results at all.
func (a *Artisan) Discoverable() bool {
	return a.Active && a.Verified
}

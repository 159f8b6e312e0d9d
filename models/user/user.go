package user

import (
	"time"

	"bluecollar/models/role"
)

// User is a service-seeking customer account. Admin accounts share the
// same table and differ only by role.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	PublicID  string    `gorm:"type:varchar(64);not null;unique" json:"id"`
	Username  string    `gorm:"type:varchar(255);not null;unique" json:"username"`
	FirstName string    `gorm:"type:varchar(255);not null" json:"firstName"`
	LastName  string    `gorm:"type:varchar(255);not null" json:"lastName"`
	Email     string    `gorm:"type:varchar(255);not null;unique" json:"email"`
	Phone     string    `gorm:"type:varchar(20);not null" json:"phone"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      role.Role `gorm:"type:varchar(20);not null" json:"role"`
	Location  string    `gorm:"type:varchar(255)" json:"location"`

	// JSON-encoded AddressType, see models/address.
	Address string `gorm:"type:text" json:"address"`

	UserImage string `gorm:"type:varchar(2048)" json:"userImage"`
	Active    bool   `gorm:"type:bool;default:true" json:"active"`
	Verified  bool   `gorm:"type:bool;default:false" json:"verified"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

package review

import (
	"time"
)

// Review is a one-shot rating a user leaves on an artisan after a closed
// booking order. There is no edit or delete path.
type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	ArtisanID uint      `gorm:"not null;index" json:"-"`
	Username  string    `gorm:"type:varchar(255);not null" json:"username"`
	Rating    int       `gorm:"type:int;not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

package ds

import "time"

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	IsDelete     bool      `gorm:"type:boolean not null;default:false;index:idx_subscribers_is_delete" json:"-"`
	Email        string    `gorm:"type:varchar(255) not null;uniqueIndex:idx_subscribers_email" json:"email"`
	Verified     bool      `gorm:"type:boolean not null;default:false;index:idx_subscribers_verified" json:"verified"`
	SubscribedAt time.Time `gorm:"index:idx_subscribers_subscribed_at" json:"subscribedAt"`
}

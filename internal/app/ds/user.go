package ds

// Users is an admin dashboard account. Password holds the bcrypt hash.
type Users struct {
	User_ID     uint   `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Login       string `gorm:"type:varchar(255) not null;uniqueIndex:idx_users_login" json:"login"`
	Password    string `gorm:"type:varchar(255) not null" json:"-"`
	IsModerator bool   `gorm:"type:boolean not null;default:false" json:"is_moderator"`
}

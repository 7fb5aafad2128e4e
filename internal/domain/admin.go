package domain

import "time"

// SysAdmin is a back-office operator account. Passwords are stored as
// bcrypt hashes, never in plaintext.
type SysAdmin struct {
	ID        int64     `json:"id,string" form:"id"`
	Username  string    `gorm:"uniqueIndex;size:64" json:"username" form:"username"`
	Password  string    `json:"-" form:"-"`
	Level     string    `gorm:"size:32" json:"level" form:"level"`
	Status    string    `gorm:"size:32" json:"status" form:"status"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SysAdmin) TableName() string {
	return "sys_admin"
}

const (
	AdminLevelAdmin = "admin"

	AdminStatusEnabled  = "enabled"
	AdminStatusDisabled = "disabled"
)

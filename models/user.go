package models

type UserAccount struct {
	JsonModel
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	// bcrypt hash, never serialized
	Password string `json:"-"`
	LastIp   string `json:"-"`
	Banned   bool   `gorm:"default:false" json:"-"`
}

package model

type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Email          string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	HashedPassword string `gorm:"not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

package models

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id" bson:"-"`
	Name       string `gorm:"type:varchar(255);not null" json:"name" bson:"name"`
	Email      string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" bson:"email"`
	Password   string `gorm:"type:varchar(255);not null" json:"-" bson:"password"`
	Role       string `gorm:"type:varchar(20);not null" json:"role" bson:"role"`
	Timestamps `bson:",inline"`
}

package models

type Customer struct {
	ID            uint   `gorm:"primaryKey" json:"id" bson:"-"`
	Mobile        string `gorm:"type:varchar(20);uniqueIndex;not null" json:"mobile" bson:"mobile"`
	CompanyName   string `gorm:"type:varchar(255);not null" json:"company_name" bson:"company_name"`
	ContactPerson string `gorm:"type:varchar(255);not null" json:"contact_person" bson:"contact_person"`
	Address       string `gorm:"type:text" json:"address" bson:"address"`
	Email         string `gorm:"type:varchar(255)" json:"email" bson:"email"`
	Twitter       string `gorm:"type:varchar(100)" json:"twitter" bson:"twitter"`
	Instagram     string `gorm:"type:varchar(100)" json:"instagram" bson:"instagram"`
	Facebook      string `gorm:"type:varchar(100)" json:"facebook" bson:"facebook"`
	Discord       string `gorm:"type:varchar(100)" json:"discord" bson:"discord"`
	LinkedIn      string `gorm:"type:varchar(100)" json:"linkedin" bson:"linkedin"`
	CateringType  string `gorm:"type:varchar(100)" json:"catering_type" bson:"catering_type"`
	DateJoined    string `gorm:"type:varchar(10);not null" json:"date_joined" bson:"date_joined"`
	Timestamps    `bson:",inline"`
}

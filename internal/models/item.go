package models

const PlaceholderImage = "/item-placeholder.svg"

type Item struct {
	BaseModel
	BoxID       string `gorm:"type:varchar(36);not null;index" json:"boxId"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	Quantity    int    `gorm:"not null;default:1" json:"quantity"`
	Image       string `gorm:"type:text;not null" json:"image"`
}

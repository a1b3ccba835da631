package models

const DefaultBoxColor = "bg-blue-500"

type Box struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	Color       string `gorm:"type:varchar(64);not null;default:'bg-blue-500'" json:"color"`
	ItemCount   int    `gorm:"not null;default:0" json:"itemCount"`
	Items       []Item `gorm:"foreignKey:BoxID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

package model

import (
	"time"
)

// Paper is an OParl paper (Drucksache). Papers of type "Stadtratsantrag"
// are the proposals surfaced next to retrieved documents.
type Paper struct {
	Id        string    `gorm:"type:varchar(512);primaryKey"` // OParl id (URL)
	Reference string    `gorm:"type:varchar(128);index"`      // e.g. "20-26 / A 01234"
	Name      string    `gorm:"type:varchar(512)"`
	Subject   string    `gorm:"type:text"`
	PaperType string    `gorm:"type:varchar(128);index"`
	Date      time.Time `gorm:""`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Paper) TableName() string {
	return "papers"
}

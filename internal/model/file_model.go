package model

import (
	"time"
)

// File is an OParl file record loaded by the ingestion pipeline.
type File struct {
	Id        string    `gorm:"type:varchar(512);primaryKey"` // OParl id (URL)
	Name      string    `gorm:"type:varchar(512)"`
	RisUrl    string    `gorm:"type:varchar(512)"`
	Size      int64     `gorm:"default:0"`
	MimeType  string    `gorm:"type:varchar(128)"`
	Papers    []Paper   `gorm:"many2many:file_papers;joinForeignKey:FileId;joinReferences:PaperId"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (File) TableName() string {
	return "files"
}

package models

type Organization struct {
	ID     string `gorm:"column:id;type:text;primaryKey" json:"id"`
	Domain string `gorm:"column:domain;type:text;not null" json:"domain"`
	Slug   string `gorm:"column:slug;type:text;not null;uniqueIndex" json:"slug"`
	Name   string `gorm:"column:name;type:text;not null" json:"name"`
}

func (Organization) TableName() string {
	return "Organization"
}

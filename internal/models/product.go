package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductNameKey is the reserved key inside Details holding the display name.
const ProductNameKey = "name"

// Product represents a catalog entry: a required category plus an
// open-ended detail bag. The reserved "name" key is the display name.
type Product struct {
	ID       string            `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Category string            `json:"category" gorm:"index;type:varchar(255)" validate:"required"`
	Details  datatypes.JSONMap `json:"product"`
	gorm.Model
}

// Name returns the display name stored in the detail bag, or "" if unset.
func (p *Product) Name() string {
	if p.Details == nil {
		return ""
	}
	name, _ := p.Details[ProductNameKey].(string)
	return name
}

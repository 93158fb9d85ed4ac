package models

import (
	"time"
)

// Commissionerate is the top level of the jurisdiction hierarchy.
type Commissionerate struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"not null;uniqueIndex" json:"name"`
	Code string `gorm:"size:50" json:"code"`

	DCPZones []DCPZone `gorm:"foreignKey:CommissionerateID" json:"dcp_zones,omitempty"`
}

func (Commissionerate) TableName() string {
	return "commissionerates"
}

// DCPZone belongs to a Commissionerate.
type DCPZone struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"not null" json:"name"`
	Code string `gorm:"size:50" json:"code"`

	CommissionerateID uint            `gorm:"not null;index" json:"commissionerate_id"`
	Commissionerate   Commissionerate `gorm:"foreignKey:CommissionerateID" json:"commissionerate,omitempty"`

	MunicipalZones []MunicipalZone `gorm:"foreignKey:DCPZoneID" json:"municipal_zones,omitempty"`
}

func (DCPZone) TableName() string {
	return "dcp_zones"
}

// MunicipalZone belongs to a DCPZone.
type MunicipalZone struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"not null" json:"name"`
	Code string `gorm:"size:50" json:"code"`

	DCPZoneID uint    `gorm:"not null;index" json:"dcp_zone_id"`
	DCPZone   DCPZone `gorm:"foreignKey:DCPZoneID" json:"dcp_zone,omitempty"`

	ACPDivisions []ACPDivision `gorm:"foreignKey:MunicipalZoneID" json:"acp_divisions,omitempty"`
}

func (MunicipalZone) TableName() string {
	return "municipal_zones"
}

// ACPDivision belongs to a MunicipalZone.
type ACPDivision struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"not null" json:"name"`
	Code string `gorm:"size:50" json:"code"`

	MunicipalZoneID uint          `gorm:"not null;index" json:"municipal_zone_id"`
	MunicipalZone   MunicipalZone `gorm:"foreignKey:MunicipalZoneID" json:"municipal_zone,omitempty"`
}

func (ACPDivision) TableName() string {
	return "acp_divisions"
}

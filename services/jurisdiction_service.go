package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"complaint_flow_app_go/models"

	"gorm.io/gorm"
)

// Jurisdiction-related errors
var (
	ErrInvalidJurisdiction = errors.New("invalid jurisdiction reference")
)

// GetCommissionerates fetches all commissionerates ordered by id
func GetCommissionerates(db *gorm.DB) ([]models.Commissionerate, error) {
	var items []models.Commissionerate
	err := db.Order("id ASC").Find(&items).Error
	return items, err
}

// GetDCPZones fetches DCP zones, optionally scoped to a commissionerate
func GetDCPZones(db *gorm.DB, commissionerateID *uint) ([]models.DCPZone, error) {
	var items []models.DCPZone
	query := db.Preload("Commissionerate").Order("id ASC")
	if commissionerateID != nil {
		query = query.Where("commissionerate_id = ?", *commissionerateID)
	}
	err := query.Find(&items).Error
	return items, err
}

// GetMunicipalZones fetches municipal zones, optionally scoped to a DCP zone
func GetMunicipalZones(db *gorm.DB, dcpZoneID *uint) ([]models.MunicipalZone, error) {
	var items []models.MunicipalZone
	query := db.Preload("DCPZone").Order("id ASC")
	if dcpZoneID != nil {
		query = query.Where("dcp_zone_id = ?", *dcpZoneID)
	}
	err := query.Find(&items).Error
	return items, err
}

// GetACPDivisions fetches ACP divisions, optionally scoped to a municipal zone
func GetACPDivisions(db *gorm.DB, municipalZoneID *uint) ([]models.ACPDivision, error) {
	var items []models.ACPDivision
	query := db.Preload("MunicipalZone").Order("id ASC")
	if municipalZoneID != nil {
		query = query.Where("municipal_zone_id = ?", *municipalZoneID)
	}
	err := query.Find(&items).Error
	return items, err
}

// CreateCommissionerate creates a new commissionerate
func CreateCommissionerate(db *gorm.DB, name, code string) (*models.Commissionerate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidJurisdiction)
	}
	item := &models.Commissionerate{Name: name, Code: code}
	if err := db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateDCPZone creates a DCP zone under an existing commissionerate
func CreateDCPZone(db *gorm.DB, name, code string, commissionerateID uint) (*models.DCPZone, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidJurisdiction)
	}
	var parent models.Commissionerate
	if err := db.First(&parent, "id = ?", commissionerateID).Error; err != nil {
		return nil, ErrInvalidJurisdiction
	}
	item := &models.DCPZone{Name: name, Code: code, CommissionerateID: commissionerateID}
	if err := db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateMunicipalZone creates a municipal zone under an existing DCP zone
func CreateMunicipalZone(db *gorm.DB, name, code string, dcpZoneID uint) (*models.MunicipalZone, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidJurisdiction)
	}
	var parent models.DCPZone
	if err := db.First(&parent, "id = ?", dcpZoneID).Error; err != nil {
		return nil, ErrInvalidJurisdiction
	}
	item := &models.MunicipalZone{Name: name, Code: code, DCPZoneID: dcpZoneID}
	if err := db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateACPDivision creates an ACP division under an existing municipal zone
func CreateACPDivision(db *gorm.DB, name, code string, municipalZoneID uint) (*models.ACPDivision, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidJurisdiction)
	}
	var parent models.MunicipalZone
	if err := db.First(&parent, "id = ?", municipalZoneID).Error; err != nil {
		return nil, ErrInvalidJurisdiction
	}
	item := &models.ACPDivision{Name: name, Code: code, MunicipalZoneID: municipalZoneID}
	if err := db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ValidateJurisdictionChain validates the Commissionerate -> DCP Zone ->
// Municipal Zone -> ACP Division chain of a complaint. The commissionerate is
// mandatory; each lower level is optional but, when present, must exist and
// must reference its selected parent.
func ValidateJurisdictionChain(db *gorm.DB, commissionerateID uint, dcpZoneID, municipalZoneID, acpDivisionID *uint) error {
	var comm models.Commissionerate
	if err := db.First(&comm, "id = ?", commissionerateID).Error; err != nil {
		return ErrInvalidJurisdiction
	}

	if dcpZoneID != nil {
		var zone models.DCPZone
		if err := db.First(&zone, "id = ? AND commissionerate_id = ?", *dcpZoneID, commissionerateID).Error; err != nil {
			return ErrInvalidJurisdiction
		}
	}

	if municipalZoneID != nil {
		if dcpZoneID == nil {
			return ErrInvalidJurisdiction
		}
		var zone models.MunicipalZone
		if err := db.First(&zone, "id = ? AND dcp_zone_id = ?", *municipalZoneID, *dcpZoneID).Error; err != nil {
			return ErrInvalidJurisdiction
		}
	}

	if acpDivisionID != nil {
		if municipalZoneID == nil {
			return ErrInvalidJurisdiction
		}
		var division models.ACPDivision
		if err := db.First(&division, "id = ? AND municipal_zone_id = ?", *acpDivisionID, *municipalZoneID).Error; err != nil {
			return ErrInvalidJurisdiction
		}
	}

	return nil
}

// SeedJurisdictions seeds the default jurisdiction master data. Existing
// rows are left untouched.
func SeedJurisdictions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Commissionerate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	commissionerates := []models.Commissionerate{
		{Name: "Mumbai Police Commissionerate", Code: "MUMBAI_COMM"},
		{Name: "Pune Police Commissionerate", Code: "PUNE_COMM"},
	}
	for i := range commissionerates {
		if err := db.Create(&commissionerates[i]).Error; err != nil {
			return err
		}
	}

	dcpZones := []models.DCPZone{
		{Name: "Zone I", Code: "ZONE_I", CommissionerateID: commissionerates[0].ID},
		{Name: "Zone II", Code: "ZONE_II", CommissionerateID: commissionerates[0].ID},
		{Name: "Pune Zone", Code: "PUNE_ZONE", CommissionerateID: commissionerates[1].ID},
	}
	for i := range dcpZones {
		if err := db.Create(&dcpZones[i]).Error; err != nil {
			return err
		}
	}

	municipalZones := []models.MunicipalZone{
		{Name: "Andheri", Code: "ANDHERI", DCPZoneID: dcpZones[0].ID},
		{Name: "Bandra", Code: "BANDRA", DCPZoneID: dcpZones[0].ID},
		{Name: "Koregaon Park", Code: "KOREGAON_PARK", DCPZoneID: dcpZones[2].ID},
	}
	for i := range municipalZones {
		if err := db.Create(&municipalZones[i]).Error; err != nil {
			return err
		}
	}

	acpDivisions := []models.ACPDivision{
		{Name: "Andheri East", Code: "ANDHERI_EAST", MunicipalZoneID: municipalZones[0].ID},
		{Name: "Andheri West", Code: "ANDHERI_WEST", MunicipalZoneID: municipalZones[0].ID},
		{Name: "Bandra East", Code: "BANDRA_EAST", MunicipalZoneID: municipalZones[1].ID},
	}
	for i := range acpDivisions {
		if err := db.Create(&acpDivisions[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded jurisdiction master data: %d commissionerates, %d DCP zones, %d municipal zones, %d ACP divisions",
		len(commissionerates), len(dcpZones), len(municipalZones), len(acpDivisions))
	return nil
}

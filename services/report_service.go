package services

import (
	"bytes"
	"fmt"
	"time"

	"complaint_flow_app_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// EnquiryReportFilter narrows the complaints included in the register.
// Zero values mean no filtering on that dimension.
type EnquiryReportFilter struct {
	From              time.Time
	To                time.Time
	Status            string
	CommissionerateID uint
}

var enquiryRegisterHeaders = []string{
	"Sr. No.",
	"Complaint No.",
	"Date Received",
	"Nature of Complaint",
	"Complainant",
	"Phone",
	"Place",
	"Commissionerate",
	"Priority",
	"Status",
	"Notice 1 No.",
	"Notice 1 Status",
	"Notice 2 No.",
	"Notice 2 Status",
	"FIR Numbers",
	"Assigned To",
}

// GenerateEnquiryRegister builds the enquiry register workbook for the
// complaints matching the filter, newest first.
func GenerateEnquiryRegister(dbConn *gorm.DB, filter EnquiryReportFilter) (*bytes.Buffer, error) {
	query := dbConn.
		Preload("Commissionerate").
		Preload("AssignedTo").
		Preload("FIRs")
	if !filter.From.IsZero() {
		query = query.Where("date_received >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("date_received <= ?", filter.To)
	}
	if filter.Status != "" {
		if !models.IsValidComplaintStatus(filter.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrComplaintValidation, filter.Status)
		}
		query = query.Where("final_status = ?", filter.Status)
	}
	if filter.CommissionerateID != 0 {
		query = query.Where("commissionerate_id = ?", filter.CommissionerateID)
	}

	var complaints []models.Complaint
	if err := query.Order("date_received DESC").Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to load complaints: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Enquiry Register"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range enquiryRegisterHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(enquiryRegisterHeaders), 1)
	f.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle)
	f.SetColWidth(sheet, "A", "P", 22)

	for i, c := range complaints {
		row := i + 2

		firNumbers := ""
		for j, fir := range c.FIRs {
			if j > 0 {
				firNumbers += ", "
			}
			firNumbers += fir.FIRNumber
		}

		commissionerate := ""
		if c.Commissionerate != nil {
			commissionerate = c.Commissionerate.Name
		}
		assignedTo := ""
		if c.AssignedTo != nil {
			assignedTo = c.AssignedTo.Name
		}

		values := []interface{}{
			i + 1,
			c.ComplaintCode,
			c.DateReceived.Format("2006-01-02"),
			c.Nature,
			c.ComplainantName,
			derefOrEmpty(c.ComplainantPhone),
			c.Place,
			commissionerate,
			c.Priority,
			c.FinalStatus,
			derefOrEmpty(c.Notice1.Number),
			noticeStatusCell(&c.Notice1),
			derefOrEmpty(c.Notice2.Number),
			noticeStatusCell(&c.Notice2),
			firNumbers,
			assignedTo,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}

	return buf, nil
}

// noticeStatusCell renders a notice slot for the register: blank when the
// notice was never issued, otherwise its approval status.
func noticeStatusCell(n *models.NoticeWorkflow) string {
	if !n.Issued() {
		return ""
	}
	return n.ApprovalStatus
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

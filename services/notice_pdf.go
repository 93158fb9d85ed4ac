package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"

	"complaint_flow_app_go/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// getChromePath returns the Chrome executable path from environment variable
func getChromePath() string {
	return os.Getenv("CHROME_PATH")
}

// PDFOptions contains options for PDF generation
type PDFOptions struct {
	PageOrientation string // portrait, landscape
	PageSize        string // letter, legal, A4
	MarginTop       int    // points (72 = 1 inch)
	MarginBottom    int
	MarginLeft      int
	MarginRight     int
}

// DefaultPDFOptions returns default options for official notices
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PageOrientation: "portrait",
		PageSize:        "A4",
		MarginTop:       72,
		MarginBottom:    72,
		MarginLeft:      72,
		MarginRight:     72,
	}
}

// GeneratePDF renders HTML content to PDF using headless Chrome
func GeneratePDF(htmlContent string, options PDFOptions) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)

	// Custom Chrome path for headless-shell in Docker
	if chromePath := getChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	defer allocCancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var paperWidth, paperHeight float64
	switch options.PageSize {
	case "legal":
		paperWidth = 8.5
		paperHeight = 14.0
	case "letter":
		paperWidth = 8.5
		paperHeight = 11.0
	default: // A4
		paperWidth = 8.27
		paperHeight = 11.69
	}

	if options.PageOrientation == "landscape" {
		paperWidth, paperHeight = paperHeight, paperWidth
	}

	// Margins are given in points, PrintToPDF takes inches
	marginTop := float64(options.MarginTop) / 72.0
	marginBottom := float64(options.MarginBottom) / 72.0
	marginLeft := float64(options.MarginLeft) / 72.0
	marginRight := float64(options.MarginRight) / 72.0

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.Sleep(100),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(marginTop).
				WithMarginBottom(marginBottom).
				WithMarginLeft(marginLeft).
				WithMarginRight(marginRight).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// noticeDocumentTemplate renders the printable body of an official notice.
// Free-text fields are sanitized before they reach the template.
var noticeDocumentTemplate = template.Must(template.New("notice_document").Parse(`
<h1>OFFICE OF THE COMMISSIONER OF POLICE</h1>
<h2 style="text-align:center">NOTICE</h2>
<table>
  <tr><th>Notice Number</th><td>{{.NoticeNumber}}</td></tr>
  <tr><th>Date of Issue</th><td>{{.IssuedOn}}</td></tr>
  <tr><th>Complaint Number</th><td>{{.ComplaintCode}}</td></tr>
  <tr><th>Status</th><td>{{.ApprovalStatus}}</td></tr>
</table>
<h3>Complainant</h3>
<p>{{.ComplainantName}}</p>
<h3>Nature of Complaint</h3>
<p>{{.Nature}}</p>
<h3>Place</h3>
<p>{{.Place}}{{if .PlaceAddress}}, {{.PlaceAddress}}{{end}}</p>
{{if .Details}}
<h3>Brief Details</h3>
<div>{{.Details}}</div>
{{end}}
{{if .RespondentDetails}}
<h3>Respondent</h3>
<div>{{.RespondentDetails}}</div>
{{end}}
<div class="signature-block">
  <div class="signature-line">Issuing Authority</div>
</div>
`))

type noticeDocumentData struct {
	NoticeNumber      string
	IssuedOn          string
	ComplaintCode     string
	ApprovalStatus    string
	ComplainantName   string
	Nature            string
	Place             string
	PlaceAddress      string
	Details           template.HTML
	RespondentDetails template.HTML
}

// GenerateNoticePDF renders one notice slot of a complaint as a printable
// PDF. The notice must have been issued.
func GenerateNoticePDF(db *gorm.DB, complaintID uint, slot models.NoticeSlot) ([]byte, error) {
	complaint, err := GetComplaint(db, complaintID)
	if err != nil {
		return nil, err
	}

	notice := complaint.Notice(slot)
	if !notice.Issued() {
		return nil, fmt.Errorf("%w: notice has not been issued", ErrNoticeValidation)
	}

	policy := bluemonday.UGCPolicy()
	data := noticeDocumentData{
		NoticeNumber:    *notice.Number,
		ComplaintCode:   complaint.ComplaintCode,
		ApprovalStatus:  notice.ApprovalStatus,
		ComplainantName: complaint.ComplainantName,
		Nature:          complaint.Nature,
		Place:           complaint.Place,
	}
	if notice.IssuedAt != nil {
		data.IssuedOn = notice.IssuedAt.Format("02 January 2006")
	}
	if complaint.PlaceAddress != nil {
		data.PlaceAddress = *complaint.PlaceAddress
	}
	if complaint.BriefDetails != "" {
		data.Details = template.HTML(policy.Sanitize(complaint.BriefDetails))
	}
	if complaint.RespondentDetails != nil {
		data.RespondentDetails = template.HTML(policy.Sanitize(*complaint.RespondentDetails))
	}

	var body bytes.Buffer
	if err := noticeDocumentTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render notice document: %w", err)
	}

	return GeneratePDF(WrapHTMLForPDF(body.String()), DefaultPDFOptions())
}

// WrapHTMLForPDF wraps rendered content with the print stylesheet used by
// every generated document.
func WrapHTMLForPDF(content string) string {
	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        @page {
            margin: 1in;
        }
        body {
            font-family: "Times New Roman", Times, serif;
            font-size: 12pt;
            line-height: 1.5;
            color: #000;
            text-align: justify;
        }
        h1 {
            font-size: 16pt;
            font-weight: bold;
            text-align: center;
            margin-bottom: 24pt;
        }
        h2 {
            font-size: 14pt;
            font-weight: bold;
            margin-top: 18pt;
            margin-bottom: 12pt;
        }
        h3 {
            font-size: 12pt;
            font-weight: bold;
            margin-top: 12pt;
            margin-bottom: 6pt;
        }
        p {
            margin-bottom: 12pt;
        }
        ul, ol {
            margin-left: 0.5in;
            margin-bottom: 12pt;
        }
        li {
            margin-bottom: 6pt;
        }
        .signature-block {
            margin-top: 48pt;
        }
        .signature-line {
            border-top: 1px solid #000;
            width: 3in;
            margin-top: 36pt;
            padding-top: 6pt;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 12pt;
        }
        th, td {
            border: 1px solid #000;
            padding: 6pt;
            text-align: left;
        }
        th {
            background-color: #f0f0f0;
            font-weight: bold;
        }
    </style>
</head>
<body>
` + content + `
</body>
</html>`
}

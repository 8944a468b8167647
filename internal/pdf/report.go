package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"aipipeline/internal/analytics"
	"aipipeline/internal/models"
)

// Generator is an interface so handlers can be tested with a fake.
type Generator interface {
	GeneratePipelineReport(data ReportData) (string, error)
}

type ReportGenerator struct {
	RootDir string // storage root, e.g. "./files"
}

type ReportData struct {
	Owner       string
	GeneratedAt time.Time
	Summary     analytics.Summary
	Filename    string // basename only; generated when empty
}

func NewReportGenerator(rootDir string) *ReportGenerator {
	return &ReportGenerator{RootDir: filepath.Clean(rootDir)}
}

// GeneratePipelineReport renders the dashboard summary to a PDF under RootDir
// and returns the absolute path.
func (g *ReportGenerator) GeneratePipelineReport(data ReportData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("pipeline_report_%s.pdf", data.GeneratedAt.Format("20060102_150405"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	s := data.Summary

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Pipeline Report", false)
	pdf.SetAuthor("AI Pipeline", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	// registered before the first page so every page gets the footer
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "PIPELINE REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	sub := fmt.Sprintf("%s  -  %s", data.Owner, data.GeneratedAt.Format("02 Jan 2006 15:04"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.sectionTitle(pdf, "Summary")
	g.kvLine(pdf, "Total deals", fmt.Sprintf("%d", s.TotalDeals))
	g.kvLine(pdf, "Pipeline value", fmt.Sprintf("$%.2f", s.TotalValue))
	g.kvLine(pdf, "Win rate", fmt.Sprintf("%.2f%%", s.WinRate))
	g.kvLine(pdf, "Avg deal size (won)", fmt.Sprintf("$%.2f", s.AvgDealSize))
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Stage distribution")
	if len(s.StageDistribution) == 0 {
		pdf.MultiCell(0, 6, "No deals yet.", "", "L", false)
	}
	for _, stage := range models.Stages {
		if count, ok := s.StageDistribution[stage]; ok {
			g.kvLine(pdf, stage, fmt.Sprintf("%d", count))
		}
	}
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Monthly trend")
	for _, p := range s.MonthlyTrend {
		g.kvLine(pdf, p.Period, fmt.Sprintf("$%.2f", p.Value))
	}
	if len(s.MonthlyTrend) == 0 {
		pdf.MultiCell(0, 6, "No dated deals.", "", "L", false)
	}
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Insights")
	if len(s.Insights) == 0 {
		pdf.MultiCell(0, 6, "Nothing to flag.", "", "L", false)
	}
	for _, insight := range s.Insights {
		pdf.MultiCell(0, 6, "- "+insight, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	base := filepath.Base(filename) // strip any path components
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	return filepath.Join(g.RootDir, base), nil
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

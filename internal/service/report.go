package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/sirupsen/logrus"

	"yen-network/internal/domain"
	"yen-network/internal/repository"
)

const reportTitleWidth = 48

// ReportService builds the admin overview and funding report.
type ReportService struct {
	userRepo repository.UserRepository
	ideaRepo repository.IdeaRepository
	connRepo repository.ConnectionRepository
	now      func() time.Time
}

// NewReportService creates a ReportService.
func NewReportService(userRepo repository.UserRepository, ideaRepo repository.IdeaRepository, connRepo repository.ConnectionRepository) *ReportService {
	if userRepo == nil || ideaRepo == nil || connRepo == nil {
		panic("repositories cannot be nil for ReportService")
	}
	return &ReportService{userRepo: userRepo, ideaRepo: ideaRepo, connRepo: connRepo, now: time.Now}
}

// Stats aggregates user, idea and connection counts.
func (s *ReportService) Stats(ctx context.Context) (*domain.PlatformStats, error) {
	byRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to count users by role")
		return nil, ErrInternalServer
	}
	totals, err := s.ideaRepo.Totals(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to aggregate ideas")
		return nil, ErrInternalServer
	}
	byStatus, err := s.connRepo.CountByStatus(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to count connections by status")
		return nil, ErrInternalServer
	}

	stats := &domain.PlatformStats{
		UsersByRole:        byRole,
		Ideas:              totals.Count,
		FullyFundedIdeas:   totals.FullyFunded,
		TotalFundingGoal:   totals.GoalSum,
		TotalFundingRaised: totals.RaisedSum,
		ConnectionsByState: byStatus,
	}
	for _, n := range byRole {
		stats.Users += n
	}
	for _, n := range byStatus {
		stats.Connections += n
	}
	return stats, nil
}

// FundingReportPDF renders the funding progress of every idea as a PDF.
func (s *ReportService) FundingReportPDF(ctx context.Context) ([]byte, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	ideas, err := s.ideaRepo.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list ideas for funding report")
		return nil, ErrInternalServer
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("YEN Funding Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Youth Entrepreneur Network - Funding Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Generated: "+s.now().UTC().Format(time.RFC1123))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Users: %d", stats.Users),
		fmt.Sprintf("Ideas: %d (%d fully funded)", stats.Ideas, stats.FullyFundedIdeas),
		fmt.Sprintf("Funding raised: $%.2f of $%.2f requested", stats.TotalFundingRaised, stats.TotalFundingGoal),
		fmt.Sprintf("Connections: %d", stats.Connections),
	} {
		pdf.Cell(0, 7, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(80, 7, "Idea", "B", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Category", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Raised", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Goal", "B", 0, "R", false, 0, "")
	pdf.CellFormat(15, 7, "%", "B", 0, "R", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	for _, idea := range ideas {
		percent := 0.0
		if idea.FundingGoal > 0 {
			percent = idea.CurrentFunding / idea.FundingGoal * 100
		}
		pdf.CellFormat(80, 6, tr(truncate(idea.Title, reportTitleWidth)), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, idea.Category, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("$%.2f", idea.CurrentFunding), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("$%.2f", idea.FundingGoal), "", 0, "R", false, 0, "")
		pdf.CellFormat(15, 6, fmt.Sprintf("%.0f", percent), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		logrus.WithError(err).Error("Failed to render funding report")
		return nil, ErrInternalServer
	}
	return buf.Bytes(), nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}

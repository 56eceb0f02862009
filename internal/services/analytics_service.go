package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/repositories"

	"github.com/phpdave11/gofpdf"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultUsageDays = 30
	MaxUsageDays     = 90
)

type UsageReport struct {
	Days   int                  `json:"days"`
	Since  string               `json:"since"`
	Daily  []models.DailyUsage  `json:"daily"`
	ByType []models.UsageByType `json:"by_type"`
	Totals models.UsageTotals   `json:"totals"`
}

type AnalyticsService struct {
	Users       UserService
	Projects    ProjectStore
	Images      ImageStore
	Blogs       BlogStore
	Submissions SubmissionStore
	Accounts    AuthorizedUserStore
	UsageRows   UsageStore
	Now         func() time.Time
}

func (s AnalyticsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// ClampUsageDays keeps the window within [1, MaxUsageDays]; zero means the default.
func ClampUsageDays(days int) int {
	switch {
	case days == 0:
		return DefaultUsageDays
	case days < 1:
		return 1
	case days > MaxUsageDays:
		return MaxUsageDays
	}
	return days
}

// Overview gathers the dashboard counters concurrently. Any failing count fails the call.
func (s AnalyticsService) Overview(ctx context.Context) (models.Overview, error) {
	var out models.Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { out.Users, err = s.Users.Total(gctx); return })
	g.Go(func() (err error) { out.Projects, err = s.Projects.Count(gctx); return })
	g.Go(func() (err error) { out.Images, err = s.Images.Count(gctx); return })
	g.Go(func() (err error) { out.ActiveBlogs, err = s.Blogs.Count(gctx, repositories.BlogQuery{}); return })
	g.Go(func() (err error) { out.Submissions, err = s.Submissions.Count(gctx); return })
	g.Go(func() (err error) { out.AuthorizedUsers, err = s.Accounts.Count(gctx); return })
	if err := g.Wait(); err != nil {
		return models.Overview{}, storeErr("analytics", err)
	}
	return out, nil
}

func (s AnalyticsService) Usage(ctx context.Context, days int) (UsageReport, error) {
	days = ClampUsageDays(days)
	today := s.now().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))

	out := UsageReport{Days: days, Since: since.Format("2006-01-02")}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { out.Daily, err = s.UsageRows.DailyTotals(gctx, since); return })
	g.Go(func() (err error) { out.ByType, err = s.UsageRows.TotalsByType(gctx, since); return })
	if err := g.Wait(); err != nil {
		return UsageReport{}, storeErr("usage store", err)
	}
	for _, d := range out.Daily {
		out.Totals.Requests += d.Requests
		out.Totals.Tokens += d.Tokens
	}
	return out, nil
}

// UsageReportPDF renders Usage as a one-page PDF and returns it with a download filename.
func (s AnalyticsService) UsageReportPDF(ctx context.Context, days int) ([]byte, string, error) {
	r, err := s.Usage(ctx, days)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Usage report", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "USAGE REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Period    : %s to %s (%d days)", r.Since, s.now().Format("2006-01-02"), r.Days))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Requests  : %d", r.Totals.Requests))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Tokens    : %d", r.Totals.Tokens))
	pdf.Ln(10)

	table := func(title string, head [3]string, rows [][3]string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 10)
		for _, h := range head {
			pdf.CellFormat(60, 7, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		if len(rows) == 0 {
			pdf.CellFormat(180, 7, "No usage recorded", "1", 1, "C", false, 0, "")
		}
		for _, row := range rows {
			pdf.CellFormat(60, 6, row[0], "1", 0, "L", false, 0, "")
			pdf.CellFormat(60, 6, row[1], "1", 0, "R", false, 0, "")
			pdf.CellFormat(60, 6, row[2], "1", 1, "R", false, 0, "")
		}
		pdf.Ln(6)
	}

	byType := make([][3]string, 0, len(r.ByType))
	for _, t := range r.ByType {
		byType = append(byType, [3]string{t.Type, strconv.Itoa(t.Requests), strconv.FormatInt(t.Tokens, 10)})
	}
	table("By type", [3]string{"Type", "Requests", "Tokens"}, byType)

	daily := make([][3]string, 0, len(r.Daily))
	for _, d := range r.Daily {
		daily = append(daily, [3]string{d.Date, strconv.Itoa(d.Requests), strconv.FormatInt(d.Tokens, 10)})
	}
	table("Daily", [3]string{"Date", "Requests", "Tokens"}, daily)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "could not render report", Err: err}
	}
	return buf.Bytes(), fmt.Sprintf("usage_%s_%dd.pdf", r.Since, r.Days), nil
}

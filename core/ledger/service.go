package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/jdfgtrompete/explicacoes/core"
	"github.com/jdfgtrompete/explicacoes/core/schedule"
	"github.com/jdfgtrompete/explicacoes/core/student"
)

var (
	// errors
	ErrNotFound     = errors.New("weekly record not found")
	ErrRateNotFound = errors.New("student rate not found")
)

type (
	Repository interface {
		CreateRecord(ctx context.Context, rec WeeklyRecord) (WeeklyRecord, error)
		RecordsByOwnerAndMonth(ctx context.Context, ownerID string, month, year int) ([]WeeklyRecord, error)
		GetRecordByID(ctx context.Context, id string) (WeeklyRecord, error)
		UpdateRecord(ctx context.Context, rec WeeklyRecord) (WeeklyRecord, error)
		DeleteRecordsByStudent(ctx context.Context, studentID string) error

		UpsertStudentRate(ctx context.Context, rate StudentRate) (StudentRate, error)
		StudentRatesByOwner(ctx context.Context, ownerID string) ([]StudentRate, error)
		GetStudentRate(ctx context.Context, studentID string) (StudentRate, error)
		DeleteStudentRate(ctx context.Context, studentID string) error
	}

	// StudentSource is the slice of the student repository the ledger needs.
	StudentSource interface {
		StudentsByOwner(ctx context.Context, ownerID string) ([]student.Student, error)
	}

	Service struct {
		repo     Repository
		students StudentSource
		mailSvc  core.EmailService
		notifier core.Notifier
	}
)

func NewService(repo Repository, students StudentSource, mailSvc core.EmailService, notifier core.Notifier) *Service {
	if notifier == nil {
		notifier = core.NopNotifier{}
	}
	return &Service{repo: repo, students: students, mailSvc: mailSvc, notifier: notifier}
}

func (svc *Service) RecordsForMonth(ctx context.Context, ownerID string, month, year int) ([]WeeklyRecord, error) {
	return svc.repo.RecordsByOwnerAndMonth(ctx, ownerID, month, year)
}

// AddWeek appends the next week to a month's ledger: one zero-hour row per
// existing student, priced at the defaults. The new week number is one past
// the month's highest, or 1 for an empty month.
func (svc *Service) AddWeek(ctx context.Context, ownerID string, month, year int) ([]WeeklyRecord, error) {
	students, err := svc.students.StudentsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	existing, err := svc.repo.RecordsByOwnerAndMonth(ctx, ownerID, month, year)
	if err != nil {
		return nil, err
	}

	weekNums := make([]int, 0, len(existing))
	for _, rec := range existing {
		weekNums = append(weekNums, rec.WeekNumber)
	}
	next := schedule.NextWeekNumber(weekNums)

	created := make([]WeeklyRecord, 0, len(students))
	for _, std := range students {
		rec := WeeklyRecord{
			ID:             uuid.New().String(),
			OwnerID:        ownerID,
			StudentID:      std.ID,
			WeekNumber:     next,
			Month:          month,
			Year:           year,
			IndividualRate: null.Float64From(DefaultIndividualRate),
			GroupRate:      null.Float64From(DefaultGroupRate),
		}
		rec, err = svc.repo.CreateRecord(ctx, rec)
		if err != nil {
			svc.notifier.Error("could not add the week")
			return nil, err
		}
		created = append(created, rec)
	}
	svc.notifier.Success("week added")
	return created, nil
}

func (svc *Service) GetRecord(ctx context.Context, id string) (WeeklyRecord, error) {
	return svc.repo.GetRecordByID(ctx, id)
}

// UpdateRecord applies hour/rate edits to one row. Only provided fields
// change; numeric garbage has already been coerced to 0 by LooseFloat.
func (svc *Service) UpdateRecord(ctx context.Context, id string, ur UpdateRecord) (WeeklyRecord, error) {
	rec, err := svc.repo.GetRecordByID(ctx, id)
	if err != nil {
		return WeeklyRecord{}, err
	}
	if ur.IndividualHours != nil {
		rec.IndividualHours = ur.IndividualHours.Float64()
	}
	if ur.GroupHours != nil {
		rec.GroupHours = ur.GroupHours.Float64()
	}
	if ur.IndividualRate != nil {
		rec.IndividualRate = null.Float64From(ur.IndividualRate.Float64())
	}
	if ur.GroupRate != nil {
		rec.GroupRate = null.Float64From(ur.GroupRate.Float64())
	}
	rec, err = svc.repo.UpdateRecord(ctx, rec)
	if err != nil {
		svc.notifier.Error("could not save the record")
		return WeeklyRecord{}, err
	}
	svc.notifier.Success("record saved")
	return rec, nil
}

// SetStudentRate upserts a per-student price override.
func (svc *Service) SetStudentRate(ctx context.Context, ownerID, studentID string, sr SetRate) (StudentRate, error) {
	rate := StudentRate{StudentID: studentID, OwnerID: ownerID}
	if cur, err := svc.repo.GetStudentRate(ctx, studentID); err == nil {
		rate = cur
	} else if err != ErrRateNotFound {
		return StudentRate{}, err
	}
	if sr.Individual != nil {
		rate.Individual = null.Float64From(sr.Individual.Float64())
	}
	if sr.Group != nil {
		rate.Group = null.Float64From(sr.Group.Float64())
	}
	return svc.repo.UpsertStudentRate(ctx, rate)
}

// StudentDeleted drops the student's ledger rows and rate override.
func (svc *Service) StudentDeleted(ctx context.Context, studentID string) error {
	if err := svc.repo.DeleteRecordsByStudent(ctx, studentID); err != nil {
		return err
	}
	if err := svc.repo.DeleteStudentRate(ctx, studentID); err != nil && err != ErrRateNotFound {
		return err
	}
	return nil
}

// Month summary (display boundary: totals rounded to 2 places here).

type (
	StudentSummary struct {
		StudentID       string          `json:"student_id"`
		Name            string          `json:"name"`
		IndividualHours float64         `json:"individual_hours"`
		GroupHours      float64         `json:"group_hours"`
		Total           decimal.Decimal `json:"total"`
	}

	MonthSummary struct {
		Month      int              `json:"month"`
		Year       int              `json:"year"`
		Students   []StudentSummary `json:"students"`
		GrandTotal decimal.Decimal  `json:"grand_total"`
	}
)

// MonthSummary aggregates the month's ledger per student plus the grand
// total, in student name order as listed by the repository.
func (svc *Service) MonthSummary(ctx context.Context, ownerID string, month, year int) (MonthSummary, error) {
	students, err := svc.students.StudentsByOwner(ctx, ownerID)
	if err != nil {
		return MonthSummary{}, err
	}
	overrides, err := svc.repo.StudentRatesByOwner(ctx, ownerID)
	if err != nil {
		return MonthSummary{}, err
	}
	records, err := svc.repo.RecordsByOwnerAndMonth(ctx, ownerID, month, year)
	if err != nil {
		return MonthSummary{}, err
	}

	agg := NewAggregator(overrides)
	summary := MonthSummary{Month: month, Year: year, Students: make([]StudentSummary, 0, len(students))}
	grand := decimal.Zero

	for _, std := range students {
		var indHours, grpHours float64
		for _, rec := range records {
			if rec.StudentID == std.ID {
				indHours += rec.IndividualHours
				grpHours += rec.GroupHours
			}
		}
		total := agg.StudentMonthTotal(std.ID, records, month, year)
		grand = grand.Add(total)
		summary.Students = append(summary.Students, StudentSummary{
			StudentID:       std.ID,
			Name:            std.Name,
			IndividualHours: indHours,
			GroupHours:      grpHours,
			Total:           total.Round(2),
		})
	}
	summary.GrandTotal = grand.Round(2)
	return summary, nil
}

// EmailStatement renders the month summary into the statement template and
// sends it with the spreadsheet attached.
func (svc *Service) EmailStatement(ctx context.Context, to mail.Address, ownerID string, month, year int) error {
	summary, err := svc.MonthSummary(ctx, ownerID, month, year)
	if err != nil {
		return err
	}
	book, err := svc.exportSummary(summary)
	if err != nil {
		return err
	}

	period := fmt.Sprintf("%s %d", time.Month(month), year)
	msg := &core.EmailMessage{
		To:           []mail.Address{to},
		Subject:      "Monthly statement for " + period,
		TemplateName: "monthly-statement",
		TemplateData: statementData(to.Name, period, summary),
	}
	if err = msg.Attach(book, exportFilename(month, year)); err != nil {
		return err
	}
	svc.mailSvc.SendMessages(msg)
	return nil
}

type statementLine struct {
	StudentName     string
	IndividualHours float64
	GroupHours      float64
	Total           string
}

func statementData(name, period string, summary MonthSummary) interface{} {
	lines := make([]statementLine, 0, len(summary.Students))
	for _, ss := range summary.Students {
		lines = append(lines, statementLine{
			StudentName:     ss.Name,
			IndividualHours: ss.IndividualHours,
			GroupHours:      ss.GroupHours,
			Total:           ss.Total.StringFixed(2),
		})
	}
	return struct {
		Name       string
		Period     string
		Lines      []statementLine
		GrandTotal string
	}{name, period, lines, summary.GrandTotal.StringFixed(2)}
}

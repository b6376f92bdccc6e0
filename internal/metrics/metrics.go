// Package metrics computes dashboard aggregates over a user's transactions.
//
// Aggregate is a pure function: it performs no I/O, never mutates its
// input, and is deterministic for a given record set and reference time.
// The caller is responsible for supplying exactly one owner's records.
package metrics

import (
	"fmt"
	"sort"
	"time"

	"fintrack/internal/models"
)

// PeriodCount is the number of trailing months, years, and weeks reported
// in each series.
const PeriodCount = 4

// MonthlyPoint holds income and expense totals for one calendar month.
type MonthlyPoint struct {
	Label   string  `json:"label"`
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// YearlyPoint holds income and expense totals for one calendar year.
type YearlyPoint struct {
	Year    int     `json:"year"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategoryAmount is a single slice of a category breakdown.
type CategoryAmount struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MonthlyBreakdown lists expense totals per category for one month.
type MonthlyBreakdown struct {
	Label      string           `json:"label"`
	Year       int              `json:"year"`
	Month      int              `json:"month"`
	Categories []CategoryAmount `json:"categories"`
}

// YearlyBreakdown lists expense totals per category for one year.
type YearlyBreakdown struct {
	Year       int              `json:"year"`
	Categories []CategoryAmount `json:"categories"`
}

// WeeklyPoint holds income, expense, and savings for one ISO-8601 week.
// Weeks are keyed by (ISO year, ISO week) so week numbers never collide
// across year boundaries.
type WeeklyPoint struct {
	Label   string  `json:"label"`
	Year    int     `json:"year"`
	Week    int     `json:"week"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"savings"`
}

// Summary is the full dashboard metrics payload.
type Summary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetSavings    float64 `json:"net_savings"`

	MonthlySeries []MonthlyPoint `json:"monthly_series"`
	YearlySeries  []YearlyPoint  `json:"yearly_series"`

	ExpenseCategoriesMonthly []MonthlyBreakdown `json:"expense_categories_monthly"`
	ExpenseCategoriesYearly  []YearlyBreakdown  `json:"expense_categories_yearly"`

	WeeklySeries []WeeklyPoint `json:"weekly_series"`
}

// Aggregate computes dashboard metrics for the given records relative to
// now. Records are assumed to belong to a single owner; no ownership
// filtering happens here. Empty input yields zero-filled series, never nil.
func Aggregate(records []models.Transaction, now time.Time) Summary {
	summary := Summary{
		MonthlySeries:            monthlySeries(records, now),
		YearlySeries:             yearlySeries(records),
		ExpenseCategoriesMonthly: monthlyBreakdowns(records, now),
		WeeklySeries:             weeklySeries(records, now),
	}

	for _, r := range records {
		switch r.Type {
		case models.TransactionTypeIncome:
			summary.TotalIncome += r.Amount
		case models.TransactionTypeExpense:
			summary.TotalExpenses += r.Amount
		}
	}
	summary.NetSavings = summary.TotalIncome - summary.TotalExpenses

	summary.ExpenseCategoriesYearly = yearlyBreakdowns(records, summary.YearlySeries)
	return summary
}

// lastMonths returns the trailing n calendar months ending at now's month,
// oldest first, anchored to the first of each month.
func lastMonths(now time.Time, n int) []time.Time {
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	months := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, anchor.AddDate(0, -i, 0))
	}
	return months
}

func inMonth(r models.Transaction, m time.Time) bool {
	return r.Date.Year() == m.Year() && r.Date.Month() == m.Month()
}

func monthlySeries(records []models.Transaction, now time.Time) []MonthlyPoint {
	points := make([]MonthlyPoint, 0, PeriodCount)
	for _, m := range lastMonths(now, PeriodCount) {
		point := MonthlyPoint{
			Label: m.Format("Jan 2006"),
			Year:  m.Year(),
			Month: int(m.Month()),
		}
		for _, r := range records {
			if !inMonth(r, m) {
				continue
			}
			switch r.Type {
			case models.TransactionTypeIncome:
				point.Income += r.Amount
			case models.TransactionTypeExpense:
				point.Expense += r.Amount
			}
		}
		points = append(points, point)
	}
	return points
}

// yearlySeries reports every distinct year present in the data, ascending,
// truncated to the trailing PeriodCount entries.
func yearlySeries(records []models.Transaction) []YearlyPoint {
	byYear := make(map[int]*YearlyPoint)
	for _, r := range records {
		y := r.Date.Year()
		point, ok := byYear[y]
		if !ok {
			point = &YearlyPoint{Year: y}
			byYear[y] = point
		}
		switch r.Type {
		case models.TransactionTypeIncome:
			point.Income += r.Amount
		case models.TransactionTypeExpense:
			point.Expense += r.Amount
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	if len(years) > PeriodCount {
		years = years[len(years)-PeriodCount:]
	}

	points := make([]YearlyPoint, 0, len(years))
	for _, y := range years {
		points = append(points, *byYear[y])
	}
	return points
}

// categoryTotals sums expense amounts per category for records matching
// the filter, sorted by category name for deterministic output.
func categoryTotals(records []models.Transaction, match func(models.Transaction) bool) []CategoryAmount {
	totals := make(map[string]float64)
	for _, r := range records {
		if r.Type != models.TransactionTypeExpense || !match(r) {
			continue
		}
		totals[r.Category] += r.Amount
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]CategoryAmount, 0, len(names))
	for _, name := range names {
		categories = append(categories, CategoryAmount{Name: name, Value: totals[name]})
	}
	return categories
}

func monthlyBreakdowns(records []models.Transaction, now time.Time) []MonthlyBreakdown {
	breakdowns := make([]MonthlyBreakdown, 0, PeriodCount)
	for _, m := range lastMonths(now, PeriodCount) {
		month := m
		breakdowns = append(breakdowns, MonthlyBreakdown{
			Label: month.Format("Jan 2006"),
			Year:  month.Year(),
			Month: int(month.Month()),
			Categories: categoryTotals(records, func(r models.Transaction) bool {
				return inMonth(r, month)
			}),
		})
	}
	return breakdowns
}

// yearlyBreakdowns covers the same years the yearly series reports.
func yearlyBreakdowns(records []models.Transaction, series []YearlyPoint) []YearlyBreakdown {
	breakdowns := make([]YearlyBreakdown, 0, len(series))
	for _, point := range series {
		year := point.Year
		breakdowns = append(breakdowns, YearlyBreakdown{
			Year: year,
			Categories: categoryTotals(records, func(r models.Transaction) bool {
				return r.Date.Year() == year
			}),
		})
	}
	return breakdowns
}

// weeklySeries reports the trailing PeriodCount ISO-8601 weeks ending at
// the week containing now, oldest first. Buckets are keyed by the
// (ISO year, ISO week) pair, so a December date that belongs to week 1 of
// the following ISO year lands in that year's bucket.
func weeklySeries(records []models.Transaction, now time.Time) []WeeklyPoint {
	points := make([]WeeklyPoint, 0, PeriodCount)
	for i := PeriodCount - 1; i >= 0; i-- {
		year, week := now.AddDate(0, 0, -7*i).ISOWeek()
		point := WeeklyPoint{
			Label: fmt.Sprintf("Week %d, %d", week, year),
			Year:  year,
			Week:  week,
		}
		for _, r := range records {
			ry, rw := r.Date.ISOWeek()
			if ry != year || rw != week {
				continue
			}
			switch r.Type {
			case models.TransactionTypeIncome:
				point.Income += r.Amount
			case models.TransactionTypeExpense:
				point.Expense += r.Amount
			}
		}
		point.Savings = point.Income - point.Expense
		points = append(points, point)
	}
	return points
}

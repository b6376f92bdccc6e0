package metrics

import (
	"reflect"
	"testing"
	"time"

	"fintrack/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(kind models.TransactionType, amount float64, category string, on time.Time) models.Transaction {
	return models.Transaction{
		Type:     kind,
		Amount:   amount,
		Category: category,
		Date:     on,
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	now := date(2024, time.June, 25)
	summary := Aggregate(nil, now)

	if summary.TotalIncome != 0 || summary.TotalExpenses != 0 || summary.NetSavings != 0 {
		t.Errorf("expected zero totals, got income=%v expenses=%v savings=%v",
			summary.TotalIncome, summary.TotalExpenses, summary.NetSavings)
	}

	if len(summary.MonthlySeries) != PeriodCount {
		t.Fatalf("expected %d monthly points, got %d", PeriodCount, len(summary.MonthlySeries))
	}
	for _, p := range summary.MonthlySeries {
		if p.Income != 0 || p.Expense != 0 {
			t.Errorf("expected zero-filled monthly point, got %+v", p)
		}
	}

	if len(summary.WeeklySeries) != PeriodCount {
		t.Fatalf("expected %d weekly points, got %d", PeriodCount, len(summary.WeeklySeries))
	}
	for _, p := range summary.WeeklySeries {
		if p.Income != 0 || p.Expense != 0 || p.Savings != 0 {
			t.Errorf("expected zero-filled weekly point, got %+v", p)
		}
	}

	// Years come from the data, so an empty input has no yearly entries.
	if len(summary.YearlySeries) != 0 {
		t.Errorf("expected empty yearly series, got %d entries", len(summary.YearlySeries))
	}
	if summary.YearlySeries == nil || summary.ExpenseCategoriesYearly == nil {
		t.Error("series must be empty slices, not nil")
	}
}

func TestAggregate_Totals(t *testing.T) {
	now := date(2024, time.June, 25)
	records := []models.Transaction{
		record(models.TransactionTypeIncome, 1000, "Salary", date(2024, time.June, 1)),
		record(models.TransactionTypeExpense, 400, "Food & Dining", date(2024, time.June, 15)),
		record(models.TransactionTypeExpense, 100, "Food & Dining", date(2024, time.June, 20)),
	}

	summary := Aggregate(records, now)

	if summary.TotalIncome != 1000 {
		t.Errorf("expected total income 1000, got %v", summary.TotalIncome)
	}
	if summary.TotalExpenses != 500 {
		t.Errorf("expected total expenses 500, got %v", summary.TotalExpenses)
	}
	if summary.NetSavings != 500 {
		t.Errorf("expected net savings 500, got %v", summary.NetSavings)
	}

	t.Run("monthly series covers the trailing four months", func(t *testing.T) {
		labels := make([]string, 0, len(summary.MonthlySeries))
		for _, p := range summary.MonthlySeries {
			labels = append(labels, p.Label)
		}
		want := []string{"Mar 2024", "Apr 2024", "May 2024", "Jun 2024"}
		if !reflect.DeepEqual(labels, want) {
			t.Errorf("expected labels %v, got %v", want, labels)
		}

		jun := summary.MonthlySeries[3]
		if jun.Income != 1000 || jun.Expense != 500 {
			t.Errorf("expected June income=1000 expense=500, got %+v", jun)
		}
	})

	t.Run("monthly category breakdown reports expenses only", func(t *testing.T) {
		jun := summary.ExpenseCategoriesMonthly[3]
		want := []CategoryAmount{{Name: "Food & Dining", Value: 500}}
		if !reflect.DeepEqual(jun.Categories, want) {
			t.Errorf("expected June categories %v, got %v", want, jun.Categories)
		}
	})

	t.Run("yearly series has one entry for 2024", func(t *testing.T) {
		want := []YearlyPoint{{Year: 2024, Income: 1000, Expense: 500}}
		if !reflect.DeepEqual(summary.YearlySeries, want) {
			t.Errorf("expected yearly series %v, got %v", want, summary.YearlySeries)
		}
	})
}

func TestAggregate_MonthlySeriesExcludesOutOfWindowRecords(t *testing.T) {
	now := date(2024, time.June, 25)
	records := []models.Transaction{
		record(models.TransactionTypeExpense, 75, "Shopping", date(2024, time.February, 28)),
		record(models.TransactionTypeExpense, 25, "Shopping", date(2024, time.March, 1)),
	}

	summary := Aggregate(records, now)

	var windowTotal float64
	for _, p := range summary.MonthlySeries {
		windowTotal += p.Expense
	}
	if windowTotal != 25 {
		t.Errorf("expected only the March record in the window, got total %v", windowTotal)
	}

	// Out-of-window records still count toward overall totals.
	if summary.TotalExpenses != 100 {
		t.Errorf("expected total expenses 100, got %v", summary.TotalExpenses)
	}
}

func TestAggregate_MonthlySeriesFromEndOfMonth(t *testing.T) {
	// An end-of-month reference date must not skip short months when
	// walking backwards.
	now := date(2024, time.May, 31)
	summary := Aggregate(nil, now)

	labels := make([]string, 0, len(summary.MonthlySeries))
	for _, p := range summary.MonthlySeries {
		labels = append(labels, p.Label)
	}
	want := []string{"Feb 2024", "Mar 2024", "Apr 2024", "May 2024"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("expected labels %v, got %v", want, labels)
	}
}

func TestAggregate_YearlySeriesTruncatesToTrailingYears(t *testing.T) {
	now := date(2024, time.June, 25)
	records := []models.Transaction{
		record(models.TransactionTypeIncome, 1, "Salary", date(2019, time.January, 1)),
		record(models.TransactionTypeIncome, 2, "Salary", date(2020, time.January, 1)),
		record(models.TransactionTypeIncome, 3, "Salary", date(2021, time.January, 1)),
		record(models.TransactionTypeIncome, 4, "Salary", date(2022, time.January, 1)),
		record(models.TransactionTypeIncome, 5, "Salary", date(2024, time.January, 1)),
	}

	summary := Aggregate(records, now)

	if len(summary.YearlySeries) != PeriodCount {
		t.Fatalf("expected %d yearly points, got %d", PeriodCount, len(summary.YearlySeries))
	}
	years := make([]int, 0, len(summary.YearlySeries))
	for _, p := range summary.YearlySeries {
		years = append(years, p.Year)
	}
	want := []int{2020, 2021, 2022, 2024}
	if !reflect.DeepEqual(years, want) {
		t.Errorf("expected years %v, got %v", want, years)
	}

	if len(summary.ExpenseCategoriesYearly) != PeriodCount {
		t.Errorf("expected yearly breakdowns to cover the same years, got %d", len(summary.ExpenseCategoriesYearly))
	}
}

func TestAggregate_WeeklySeriesISOYearBoundary(t *testing.T) {
	// 2024-12-31 falls in ISO week 1 of 2025, not week 53 of 2024.
	now := date(2025, time.January, 2)
	records := []models.Transaction{
		record(models.TransactionTypeIncome, 300, "Salary", date(2024, time.December, 31)),
	}

	summary := Aggregate(records, now)

	last := summary.WeeklySeries[len(summary.WeeklySeries)-1]
	if last.Year != 2025 || last.Week != 1 {
		t.Fatalf("expected current bucket to be week 1 of 2025, got week %d of %d", last.Week, last.Year)
	}
	if last.Label != "Week 1, 2025" {
		t.Errorf("expected label %q, got %q", "Week 1, 2025", last.Label)
	}
	if last.Income != 300 {
		t.Errorf("expected the December 31 record in the week 1 bucket, got income %v", last.Income)
	}
	if last.Savings != 300 {
		t.Errorf("expected savings 300, got %v", last.Savings)
	}
}

func TestAggregate_WeeklySavings(t *testing.T) {
	now := date(2024, time.June, 25)
	records := []models.Transaction{
		record(models.TransactionTypeIncome, 200, "Salary", date(2024, time.June, 24)),
		record(models.TransactionTypeExpense, 50, "Transportation", date(2024, time.June, 26)),
	}

	summary := Aggregate(records, now)

	last := summary.WeeklySeries[len(summary.WeeklySeries)-1]
	if last.Income != 200 || last.Expense != 50 || last.Savings != 150 {
		t.Errorf("expected income=200 expense=50 savings=150, got %+v", last)
	}
}

func TestAggregate_CategoryBreakdownSortedByName(t *testing.T) {
	now := date(2024, time.June, 25)
	records := []models.Transaction{
		record(models.TransactionTypeExpense, 10, "Utilities", date(2024, time.June, 1)),
		record(models.TransactionTypeExpense, 20, "Entertainment", date(2024, time.June, 2)),
		record(models.TransactionTypeExpense, 30, "Entertainment", date(2024, time.June, 3)),
		record(models.TransactionTypeIncome, 999, "Salary", date(2024, time.June, 4)),
	}

	summary := Aggregate(records, now)

	jun := summary.ExpenseCategoriesMonthly[3]
	want := []CategoryAmount{
		{Name: "Entertainment", Value: 50},
		{Name: "Utilities", Value: 10},
	}
	if !reflect.DeepEqual(jun.Categories, want) {
		t.Errorf("expected categories %v, got %v", want, jun.Categories)
	}
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	now := date(2024, time.June, 25)
	records := []models.Transaction{
		record(models.TransactionTypeIncome, 1000, "Salary", date(2024, time.June, 10)),
		record(models.TransactionTypeExpense, 500, "Food & Dining", date(2024, time.June, 15)),
	}
	snapshot := make([]models.Transaction, len(records))
	copy(snapshot, records)

	first := Aggregate(records, now)
	second := Aggregate(records, now)

	if !reflect.DeepEqual(records, snapshot) {
		t.Error("input records were mutated")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated aggregation over the same input diverged")
	}
}

package core

import (
	"testing"
	"time"
)

func date(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestWarnLevel(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int64
		want  WarningLevel
	}{
		{"no limit configured", 50000, 0, WarningNone},
		{"well under limit", 10000, 100000, WarningNone},
		{"just under threshold", 79900, 100000, WarningNone},
		{"exactly at threshold", 80000, 100000, WarningYellow},
		{"between threshold and limit", 85000, 100000, WarningYellow},
		{"exactly at limit", 100000, 100000, WarningRed},
		{"over limit", 150000, 100000, WarningRed},
		{"zero total", 0, 100000, WarningNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WarnLevel(Money{Cents: tt.total}, Money{Cents: tt.limit})
			if got != tt.want {
				t.Errorf("WarnLevel(%d, %d) = %q, want %q", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{"2024-06-10", "2024-06-10"}, // Monday
		{"2024-06-12", "2024-06-10"}, // Wednesday
		{"2024-06-16", "2024-06-10"}, // Sunday
		{"2024-06-17", "2024-06-17"}, // next Monday
	}
	for _, tt := range tests {
		if got := WeekStart(date(tt.day)); got.String() != tt.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.day, got, tt.want)
		}
	}
}

func TestMonthStart(t *testing.T) {
	if got := MonthStart(date("2024-06-17")); got.String() != "2024-06-01" {
		t.Errorf("MonthStart = %s, want 2024-06-01", got)
	}
}

func TestCategoryTotalsConservation(t *testing.T) {
	expenses := []Expense{
		{Title: "groceries", Amount: Money{Cents: 1200}, Category: CategoryFood, Date: date("2024-06-10")},
		{Title: "lunch", Amount: Money{Cents: 800}, Category: CategoryFood, Date: date("2024-06-11")},
		{Title: "bus", Amount: Money{Cents: 250}, Category: CategoryTravel, Date: date("2024-06-11")},
		{Title: "rent", Amount: Money{Cents: 90000}, Category: CategoryBills, Date: date("2024-06-01")},
	}

	totals := CategoryTotals(expenses)

	var sum int64
	for _, ct := range totals {
		sum += ct.Total.Cents
	}
	var want int64
	for _, e := range expenses {
		want += e.Amount.Cents
	}
	if sum != want {
		t.Errorf("category totals sum to %d, want %d", sum, want)
	}

	if len(totals) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(totals))
	}
	// Ordered by descending total.
	if totals[0].Category != CategoryBills || totals[1].Category != CategoryFood {
		t.Errorf("unexpected ordering: %+v", totals)
	}
	if totals[1].Total.Cents != 2000 {
		t.Errorf("Food total = %d, want 2000", totals[1].Total.Cents)
	}
}

func TestDailySeries(t *testing.T) {
	today := date("2024-06-17")
	expenses := []Expense{
		{Amount: Money{Cents: 500}, Date: date("2024-06-17")},
		{Amount: Money{Cents: 300}, Date: date("2024-06-17")},
		{Amount: Money{Cents: 1000}, Date: date("2024-06-11")}, // oldest day in window
		{Amount: Money{Cents: 9999}, Date: date("2024-06-10")}, // outside window
		{Amount: Money{Cents: 9999}, Date: date("2024-06-18")}, // future
	}

	series := DailySeries(today, expenses)

	if len(series) != 7 {
		t.Fatalf("series length = %d, want 7", len(series))
	}
	if series[0].Date.String() != "2024-06-11" || series[6].Date.String() != "2024-06-17" {
		t.Errorf("series bounds = %s .. %s", series[0].Date, series[6].Date)
	}
	for i := 1; i < len(series); i++ {
		if !series[i-1].Date.Before(series[i].Date) {
			t.Errorf("series not chronological at %d", i)
		}
	}
	if series[0].Total.Cents != 1000 {
		t.Errorf("oldest day total = %d, want 1000", series[0].Total.Cents)
	}
	if series[6].Total.Cents != 800 {
		t.Errorf("today total = %d, want 800", series[6].Total.Cents)
	}
	var sum int64
	for _, d := range series {
		sum += d.Total.Cents
	}
	if sum != 1800 {
		t.Errorf("series sum = %d, want 1800", sum)
	}
	// Zero-filled days must be present, not skipped.
	if series[1].Total.Cents != 0 {
		t.Errorf("expected zero total for empty day, got %d", series[1].Total.Cents)
	}
}

func TestComputeSummaryWindows(t *testing.T) {
	// Wednesday 2024-06-12; week starts Monday 2024-06-10.
	now := time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)
	expenses := []Expense{
		{Amount: Money{Cents: 1000}, Category: CategoryFood, Date: date("2024-06-12")},  // today
		{Amount: Money{Cents: 2000}, Category: CategoryFood, Date: date("2024-06-10")},  // this week
		{Amount: Money{Cents: 4000}, Category: CategoryBills, Date: date("2024-06-05")}, // this month only
		{Amount: Money{Cents: 8000}, Category: CategoryOther, Date: date("2024-05-28")}, // previous month
	}

	s := ComputeSummary(now, expenses, nil, Limit{})

	if s.TotalToday.Cents != 1000 {
		t.Errorf("TotalToday = %d, want 1000", s.TotalToday.Cents)
	}
	if s.TotalWeek.Cents != 3000 {
		t.Errorf("TotalWeek = %d, want 3000", s.TotalWeek.Cents)
	}
	if s.TotalMonth.Cents != 7000 {
		t.Errorf("TotalMonth = %d, want 7000", s.TotalMonth.Cents)
	}
	if s.WeeklyWarning != WarningNone || s.MonthlyWarning != WarningNone {
		t.Errorf("warnings without limits should be none, got %s/%s", s.WeeklyWarning, s.MonthlyWarning)
	}
	// Breakdown covers the month window only.
	var catSum int64
	for _, ct := range s.ByCategory {
		catSum += ct.Total.Cents
	}
	if catSum != s.TotalMonth.Cents {
		t.Errorf("category breakdown sums to %d, want month total %d", catSum, s.TotalMonth.Cents)
	}
}

func TestComputeSummaryLimits(t *testing.T) {
	now := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)
	limit := Limit{Weekly: Money{Cents: 100000}, Monthly: Money{Cents: 100000}}

	tests := []struct {
		name          string
		spentCents    int64
		wantRemaining int64
		wantWarning   WarningLevel
	}{
		{"under threshold", 79900, 20100, WarningNone},
		{"yellow at 85 percent", 85000, 15000, WarningYellow},
		{"red at limit", 100000, 0, WarningRed},
		{"red over limit", 120000, -20000, WarningRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenses := []Expense{{Amount: Money{Cents: tt.spentCents}, Category: CategoryFood, Date: date("2024-06-12")}}
			s := ComputeSummary(now, expenses, nil, limit)
			if s.RemainingWeek.Cents != tt.wantRemaining {
				t.Errorf("RemainingWeek = %d, want %d", s.RemainingWeek.Cents, tt.wantRemaining)
			}
			if s.WeeklyWarning != tt.wantWarning {
				t.Errorf("WeeklyWarning = %s, want %s", s.WeeklyWarning, tt.wantWarning)
			}
			if s.MonthlyWarning != tt.wantWarning {
				t.Errorf("MonthlyWarning = %s, want %s", s.MonthlyWarning, tt.wantWarning)
			}
		})
	}
}

func TestComputeSummaryDebts(t *testing.T) {
	now := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)
	debts := []Debt{
		{Name: "alice", Amount: Money{Cents: 5000}, Type: DebtGave, Status: DebtPending},
		{Name: "bob", Amount: Money{Cents: 3000}, Type: DebtGave, Status: DebtPaid}, // settled, excluded
		{Name: "carol", Amount: Money{Cents: 2000}, Type: DebtOwe, Status: DebtPending},
		{Name: "dave", Amount: Money{Cents: 7000}, Type: DebtOwe, Status: DebtPending},
	}

	s := ComputeSummary(now, nil, debts, Limit{})

	if s.MoneyGave.Cents != 5000 {
		t.Errorf("MoneyGave = %d, want 5000 (paid debts excluded)", s.MoneyGave.Cents)
	}
	if s.MoneyOwe.Cents != 9000 {
		t.Errorf("MoneyOwe = %d, want 9000", s.MoneyOwe.Cents)
	}
}

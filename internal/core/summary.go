package core

import (
	"sort"
	"time"
)

// warningThresholdPct is the percentage of a limit at which spending
// starts producing a yellow warning.
const warningThresholdPct = 80

type (
	// CategoryTotal is an amount aggregated by expense category.
	CategoryTotal struct {
		Category Category
		Total    Money
	}

	// DailyTotal is the spending total for one calendar day.
	DailyTotal struct {
		Date  Date
		Total Money
	}

	// Summary is the derived spending overview. It has no independent
	// lifecycle: it is recomputed from the current expenses, debts and
	// limit on every request.
	Summary struct {
		TotalToday Money
		TotalWeek  Money
		TotalMonth Money

		WeeklyLimit    Money
		MonthlyLimit   Money
		RemainingWeek  Money
		RemainingMonth Money

		WeeklyWarning  WarningLevel
		MonthlyWarning WarningLevel

		MoneyGave Money
		MoneyOwe  Money

		ByCategory []CategoryTotal
		Daily      []DailyTotal
	}
)

// WeekStart returns the Monday of the calendar week containing d.
func WeekStart(d Date) Date {
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return Date{Time: d.AddDate(0, 0, -offset)}
}

// MonthStart returns the first day of the calendar month containing d.
func MonthStart(d Date) Date {
	return NewDate(d.Year(), int(d.Month()), 1)
}

// WarnLevel computes the warning level for a spending total against a
// limit. A zero limit means "not configured" and never warns. The
// comparison is exact in cents: yellow at >= 80% of the limit, red at or
// above the limit itself.
func WarnLevel(total, limit Money) WarningLevel {
	if limit.Cents <= 0 {
		return WarningNone
	}
	if total.Cents >= limit.Cents {
		return WarningRed
	}
	if total.Cents*100 >= limit.Cents*warningThresholdPct {
		return WarningYellow
	}
	return WarningNone
}

// CategoryTotals groups expenses by category and sums their amounts.
// The result covers every input expense exactly once and is ordered by
// descending total, then category name for determinism.
func CategoryTotals(expenses []Expense) []CategoryTotal {
	sums := make(map[Category]int64)
	for _, e := range expenses {
		sums[e.Category] += e.Amount.Cents
	}
	totals := make([]CategoryTotal, 0, len(sums))
	for cat, cents := range sums {
		totals = append(totals, CategoryTotal{Category: cat, Total: Money{Cents: cents}})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total.Cents != totals[j].Total.Cents {
			return totals[i].Total.Cents > totals[j].Total.Cents
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// DailySeries produces one total per calendar day for the trailing
// 7-day window ending today, oldest first. Days without expenses appear
// with a zero total.
func DailySeries(today Date, expenses []Expense) []DailyTotal {
	series := make([]DailyTotal, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := Date{Time: today.AddDate(0, 0, i-6)}
		series[i] = DailyTotal{Date: day}
		index[day.String()] = i
	}
	for _, e := range expenses {
		if i, ok := index[e.Date.String()]; ok {
			series[i].Total = series[i].Total.Add(e.Amount)
		}
	}
	return series
}

// ComputeSummary derives the full spending summary from a snapshot of
// expenses, debts and the limit configuration, relative to now.
//
// Window conventions: today is the calendar day, the week starts on
// Monday, the month on the 1st. Debt aggregates count pending debts
// only; settled debts no longer represent money in motion.
func ComputeSummary(now time.Time, expenses []Expense, debts []Debt, limit Limit) Summary {
	today := DateOf(now)
	weekStart := WeekStart(today)
	monthStart := MonthStart(today)

	s := Summary{
		WeeklyLimit:    limit.Weekly,
		MonthlyLimit:   limit.Monthly,
		WeeklyWarning:  WarningNone,
		MonthlyWarning: WarningNone,
	}

	var monthExpenses []Expense
	for _, e := range expenses {
		if e.Date.Equal(today) {
			s.TotalToday = s.TotalToday.Add(e.Amount)
		}
		if !e.Date.Before(weekStart) && !e.Date.After(today) {
			s.TotalWeek = s.TotalWeek.Add(e.Amount)
		}
		if !e.Date.Before(monthStart) && !e.Date.After(today) {
			s.TotalMonth = s.TotalMonth.Add(e.Amount)
			monthExpenses = append(monthExpenses, e)
		}
	}

	s.RemainingWeek = limit.Weekly.Sub(s.TotalWeek)
	s.RemainingMonth = limit.Monthly.Sub(s.TotalMonth)
	s.WeeklyWarning = WarnLevel(s.TotalWeek, limit.Weekly)
	s.MonthlyWarning = WarnLevel(s.TotalMonth, limit.Monthly)

	for _, d := range debts {
		if d.Status != DebtPending {
			continue
		}
		switch d.Type {
		case DebtGave:
			s.MoneyGave = s.MoneyGave.Add(d.Amount)
		case DebtOwe:
			s.MoneyOwe = s.MoneyOwe.Add(d.Amount)
		}
	}

	s.ByCategory = CategoryTotals(monthExpenses)
	s.Daily = DailySeries(today, expenses)

	return s
}

package http

import (
	"net/http"

	"github.com/Shashi960/money-balancer-backend/internal/core"
)

type categoryJSON struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type dailyJSON struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type summaryJSON struct {
	TotalToday     float64        `json:"total_today"`
	TotalWeek      float64        `json:"total_week"`
	TotalMonth     float64        `json:"total_month"`
	WeeklyLimit    float64        `json:"weekly_limit"`
	MonthlyLimit   float64        `json:"monthly_limit"`
	RemainingWeek  float64        `json:"remaining_week"`
	RemainingMonth float64        `json:"remaining_month"`
	MoneyGave      float64        `json:"money_gave"`
	MoneyOwe       float64        `json:"money_owe"`
	WeeklyWarning  string         `json:"weekly_warning"`
	MonthlyWarning string         `json:"monthly_warning"`
	Categories     []categoryJSON `json:"categories"`
	Daily          []dailyJSON    `json:"daily"`
}

func toSummaryJSON(s core.Summary) summaryJSON {
	out := summaryJSON{
		TotalToday:     s.TotalToday.Float64(),
		TotalWeek:      s.TotalWeek.Float64(),
		TotalMonth:     s.TotalMonth.Float64(),
		WeeklyLimit:    s.WeeklyLimit.Float64(),
		MonthlyLimit:   s.MonthlyLimit.Float64(),
		RemainingWeek:  s.RemainingWeek.Float64(),
		RemainingMonth: s.RemainingMonth.Float64(),
		MoneyGave:      s.MoneyGave.Float64(),
		MoneyOwe:       s.MoneyOwe.Float64(),
		WeeklyWarning:  string(s.WeeklyWarning),
		MonthlyWarning: string(s.MonthlyWarning),
		Categories:     make([]categoryJSON, 0, len(s.ByCategory)),
		Daily:          make([]dailyJSON, 0, len(s.Daily)),
	}
	for _, c := range s.ByCategory {
		out.Categories = append(out.Categories, categoryJSON{
			Category: string(c.Category),
			Total:    c.Total.Float64(),
		})
	}
	for _, d := range s.Daily {
		out.Daily = append(out.Daily, dailyJSON{
			Date:  d.Date.String(),
			Total: d.Total.Float64(),
		})
	}
	return out
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.summary.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "Summary")
		return
	}

	respondJSON(w, http.StatusOK, toSummaryJSON(summary))
}

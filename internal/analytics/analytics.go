// Package analytics computes the dashboard summary from a user's deals.
// Everything here is pure: the caller loads the deals, Summarize reduces them.
package analytics

import (
	"fmt"
	"math"
	"sort"

	"aipipeline/internal/models"
)

type TrendPoint struct {
	Period string  `json:"period"` // zero-padded YYYY-MM, sorts chronologically
	Value  float64 `json:"value"`
}

type Summary struct {
	TotalDeals        int            `json:"total_deals"`
	TotalValue        float64        `json:"total_value"`
	StageDistribution map[string]int `json:"stage_distribution"`
	WinRate           float64        `json:"win_rate"`
	AvgDealSize       float64        `json:"avg_deal_size"`
	MonthlyTrend      []TrendPoint   `json:"monthly_trend"`
	Insights          []string       `json:"insights"`
}

// Summarize reduces the deal set to the dashboard summary. Input order does
// not matter except for the best-month tie-break, which keeps first-seen
// order. AvgDealSize is the mean over Closed Won deals only; averaging over
// the whole set was considered and rejected, won-only is the business metric
// the dashboard presents.
func Summarize(deals []models.Deal) Summary {
	s := Summary{
		StageDistribution: map[string]int{},
		MonthlyTrend:      []TrendPoint{},
		Insights:          []string{},
	}
	s.TotalDeals = len(deals)

	var wonCount int
	var wonValue float64
	trend := map[string]float64{}

	for _, d := range deals {
		s.TotalValue += d.Value
		s.StageDistribution[d.Stage]++

		if d.Stage == models.StageClosedWon {
			wonCount++
			wonValue += d.Value
		}

		if !d.CreatedAt.IsZero() {
			trend[d.CreatedAt.Format("2006-01")] += d.Value
		}
	}

	if s.TotalDeals > 0 {
		s.WinRate = round2(float64(wonCount) / float64(s.TotalDeals) * 100)
	}
	if wonCount > 0 {
		s.AvgDealSize = round2(wonValue / float64(wonCount))
	}

	periods := make([]string, 0, len(trend))
	for p := range trend {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	for _, p := range periods {
		s.MonthlyTrend = append(s.MonthlyTrend, TrendPoint{Period: p, Value: trend[p]})
	}

	s.Insights = insights(deals)
	return s
}

// insights runs the advisory rules in a fixed order; each rule emits at most
// one string.
func insights(deals []models.Deal) []string {
	out := []string{}

	// 1. open deals with fewer than two logged activities
	lowActivity := 0
	for _, d := range deals {
		if !models.IsTerminalStage(d.Stage) && len(d.Activities) < 2 {
			lowActivity++
		}
	}
	if lowActivity > 0 {
		out = append(out, fmt.Sprintf(
			"Consider adding more follow-ups to %d open deal(s) for better conversion.", lowActivity))
	}

	// 2. too many lost deals
	lost := 0
	for _, d := range deals {
		if d.Stage == models.StageClosedLost {
			lost++
		}
	}
	if lost > 5 {
		out = append(out, "You have lost more than 5 deals recently. Consider reviewing your negotiation process.")
	}

	// 3. best closing month by won-deal count; ties go to the month seen
	// first in the input
	counts := map[string]int{}
	var order []string
	for _, d := range deals {
		if d.Stage != models.StageClosedWon || d.CreatedAt.IsZero() {
			continue
		}
		m := d.CreatedAt.Format("Jan")
		if _, seen := counts[m]; !seen {
			order = append(order, m)
		}
		counts[m]++
	}
	best := ""
	for _, m := range order {
		if best == "" || counts[m] > counts[best] {
			best = m
		}
	}
	if best != "" {
		out = append(out, fmt.Sprintf("Your best closing month appears to be %s.", best))
	}

	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

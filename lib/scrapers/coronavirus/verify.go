package coronavirus

import (
	"fmt"
	"sort"
	"strings"

	"covidtrack-backend/lib/covid"
)

// consistencyRule relates a reported aggregate to the sum of its
// reported components. Expected is the aggregate as published, Actual
// the recomputed sum; the two disagreeing is a discrepancy.
type consistencyRule struct {
	name     string
	expected func(*covid.DailyStatistics) int
	actual   func(*covid.DailyStatistics) int
}

var consistencyRules = []consistencyRule{
	{
		name:     "tested/total",
		expected: func(r *covid.DailyStatistics) int { return r.Overall.Tested.Total },
		actual: func(r *covid.DailyStatistics) int {
			return r.Overall.Tested.TotalByType.PCR + r.Overall.Tested.TotalByType.Antigen
		},
	},
	{
		name:     "tested/last",
		expected: func(r *covid.DailyStatistics) int { return r.Overall.Tested.Last24 },
		actual: func(r *covid.DailyStatistics) int {
			return r.Overall.Tested.Last24ByType.PCR + r.Overall.Tested.Last24ByType.Antigen
		},
	},
	{
		name:     "confirmed/total",
		expected: func(r *covid.DailyStatistics) int { return r.Overall.Confirmed.Total },
		actual: func(r *covid.DailyStatistics) int {
			return r.Overall.Confirmed.TotalByType.PCR + r.Overall.Confirmed.TotalByType.Antigen
		},
	},
	{
		name:     "confirmed/last",
		expected: func(r *covid.DailyStatistics) int { return r.Overall.Confirmed.Last24 },
		actual: func(r *covid.DailyStatistics) int {
			return r.Overall.Confirmed.Last24ByType.PCR + r.Overall.Confirmed.Last24ByType.Antigen
		},
	},
	{
		name:     "vaccinated/last",
		expected: func(r *covid.DailyStatistics) int { return r.Overall.Vaccinated.Last24 },
		actual:   func(r *covid.DailyStatistics) int { return r.Overall.Vaccinated.Last24ByType.Sum() },
	},
	{
		name:     "confirmed/total-regions",
		expected: func(r *covid.DailyStatistics) int { return r.Overall.Confirmed.Total },
		actual: func(r *covid.DailyStatistics) int {
			return sumRegions(r, func(s covid.RegionStatistics) int { return s.Confirmed.Total })
		},
	},
	{
		name:     "confirmed/last-regions",
		expected: func(r *covid.DailyStatistics) int { return r.Overall.Confirmed.Last24 },
		actual: func(r *covid.DailyStatistics) int {
			return sumRegions(r, func(s covid.RegionStatistics) int { return s.Confirmed.Last })
		},
	},
	{
		name:     "vaccinated/total-regions",
		expected: func(r *covid.DailyStatistics) int { return r.Overall.Vaccinated.Total },
		actual: func(r *covid.DailyStatistics) int {
			return sumRegions(r, func(s covid.RegionStatistics) int { return s.Vaccinated.Total })
		},
	},
	{
		name:     "vaccinated/last-regions",
		expected: func(r *covid.DailyStatistics) int { return r.Overall.Vaccinated.Last24 },
		actual: func(r *covid.DailyStatistics) int {
			return sumRegions(r, func(s covid.RegionStatistics) int { return s.Vaccinated.Last24 })
		},
	},
	{
		name:     "vaccinated/last-regions-by-type",
		expected: func(r *covid.DailyStatistics) int { return r.Overall.Vaccinated.Last24 },
		actual: func(r *covid.DailyStatistics) int {
			return sumRegions(r, func(s covid.RegionStatistics) int { return s.Vaccinated.Last24ByType.Sum() })
		},
	},
}

func sumRegions(r *covid.DailyStatistics, pick func(covid.RegionStatistics) int) int {
	total := 0
	for _, s := range r.Regions {
		total += pick(s)
	}
	return total
}

// Verify evaluates every consistency rule against an assembled record.
// All rules run regardless of earlier failures; a failed rule is
// reported, never treated as an error.
func Verify(rec *covid.DailyStatistics) covid.ConditionResult {
	checks := map[string]covid.CheckResult{}
	var lines []string

	for _, rule := range consistencyRules {
		expected := rule.expected(rec)
		actual := rule.actual(rec)
		if expected == actual {
			continue
		}
		checks[rule.name] = covid.CheckResult{Expected: expected, Actual: actual}
		lines = append(lines, fmt.Sprintf("%s: expected %d, got %d", rule.name, expected, actual))
	}

	if len(checks) == 0 {
		return covid.ConditionResult{Condition: covid.ConditionApproved}
	}
	sort.Strings(lines)
	return covid.ConditionResult{
		Condition:   covid.ConditionDiscrepancy,
		Description: strings.Join(lines, "; "),
		Checks:      checks,
	}
}

package coronavirus

import (
	"testing"

	"covidtrack-backend/lib/covid"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// consistentRecord builds a record where every aggregate matches the
// sum of its components, across two regions.
func consistentRecord() *covid.DailyStatistics {
	return &covid.DailyStatistics{
		Date:    "2021-05-21T08:30:00+03:00",
		Country: "BG",
		Overall: covid.Overall{
			Tested: covid.Tested{
				Total:        2990,
				TotalByType:  covid.TestedByType{PCR: 2900, Antigen: 90},
				Last24:       170,
				Last24ByType: covid.TestedByType{PCR: 150, Antigen: 20},
			},
			Confirmed: covid.Confirmed{
				Total:        500,
				TotalByType:  covid.TestedByType{PCR: 450, Antigen: 50},
				Last24:       60,
				Last24ByType: covid.TestedByType{PCR: 40, Antigen: 20},
			},
			Vaccinated: covid.Vaccinated{
				Total:          1000,
				Last24:         100,
				Last24ByType:   covid.VaccineDoses{Comirnaty: 40, Moderna: 30, AstraZeneca: 20, Janssen: 10},
				TotalCompleted: 300,
			},
		},
		Regions: map[string]covid.RegionStatistics{
			"PDV": {
				Confirmed: covid.TotalAndLast{Total: 300, Last: 35},
				Vaccinated: covid.Vaccinated{
					Total:        600,
					Last24:       60,
					Last24ByType: covid.VaccineDoses{Comirnaty: 25, Moderna: 15, AstraZeneca: 12, Janssen: 8},
				},
			},
			"SOF": {
				Confirmed: covid.TotalAndLast{Total: 200, Last: 25},
				Vaccinated: covid.Vaccinated{
					Total:        400,
					Last24:       40,
					Last24ByType: covid.VaccineDoses{Comirnaty: 15, Moderna: 15, AstraZeneca: 8, Janssen: 2},
				},
			},
		},
	}
}

func TestVerifyApproved(t *testing.T) {
	result := Verify(consistentRecord())

	require.Equal(t, covid.ConditionApproved, result.Condition)
	require.Empty(t, result.Description)
	require.Empty(t, result.Checks)
}

// each mutation breaks exactly one relation; the report must contain
// that check and nothing else
func TestVerifySingleDiscrepancy(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(*covid.DailyStatistics)
		expected covid.CheckResult
	}{
		{
			name:     "tested/total",
			mutate:   func(r *covid.DailyStatistics) { r.Overall.Tested.TotalByType.PCR = 2800 },
			expected: covid.CheckResult{Expected: 2990, Actual: 2890},
		},
		{
			name:     "tested/last",
			mutate:   func(r *covid.DailyStatistics) { r.Overall.Tested.Last24ByType.Antigen = 30 },
			expected: covid.CheckResult{Expected: 170, Actual: 180},
		},
		{
			name:     "confirmed/total",
			mutate:   func(r *covid.DailyStatistics) { r.Overall.Confirmed.TotalByType.PCR = 440 },
			expected: covid.CheckResult{Expected: 500, Actual: 490},
		},
		{
			name:     "confirmed/last",
			mutate:   func(r *covid.DailyStatistics) { r.Overall.Confirmed.Last24ByType.PCR = 45 },
			expected: covid.CheckResult{Expected: 60, Actual: 65},
		},
		{
			name:     "vaccinated/last",
			mutate:   func(r *covid.DailyStatistics) { r.Overall.Vaccinated.Last24ByType.Comirnaty = 41 },
			expected: covid.CheckResult{Expected: 100, Actual: 101},
		},
		{
			name: "confirmed/total-regions",
			mutate: func(r *covid.DailyStatistics) {
				region := r.Regions["PDV"]
				region.Confirmed.Total = 250
				r.Regions["PDV"] = region
			},
			expected: covid.CheckResult{Expected: 500, Actual: 450},
		},
		{
			name: "confirmed/last-regions",
			mutate: func(r *covid.DailyStatistics) {
				region := r.Regions["SOF"]
				region.Confirmed.Last = 20
				r.Regions["SOF"] = region
			},
			expected: covid.CheckResult{Expected: 60, Actual: 55},
		},
		{
			name: "vaccinated/total-regions",
			mutate: func(r *covid.DailyStatistics) {
				region := r.Regions["PDV"]
				region.Vaccinated.Total = 650
				r.Regions["PDV"] = region
			},
			expected: covid.CheckResult{Expected: 1000, Actual: 1050},
		},
		{
			name: "vaccinated/last-regions",
			mutate: func(r *covid.DailyStatistics) {
				region := r.Regions["SOF"]
				region.Vaccinated.Last24 = 50
				r.Regions["SOF"] = region
			},
			expected: covid.CheckResult{Expected: 100, Actual: 110},
		},
		{
			name: "vaccinated/last-regions-by-type",
			mutate: func(r *covid.DailyStatistics) {
				region := r.Regions["SOF"]
				region.Vaccinated.Last24ByType.Moderna = 25
				r.Regions["SOF"] = region
			},
			expected: covid.CheckResult{Expected: 100, Actual: 110},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			rec := consistentRecord()
			test.mutate(rec)

			result := Verify(rec)
			require.Equal(t, covid.ConditionDiscrepancy, result.Condition)
			require.NotEmpty(t, result.Description)

			expected := map[string]covid.CheckResult{test.name: test.expected}
			if diff := cmp.Diff(expected, result.Checks); diff != "" {
				t.Fatalf("checks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVerifyDoesNotShortCircuit(t *testing.T) {
	rec := consistentRecord()
	rec.Overall.Tested.Total = 10000
	rec.Overall.Confirmed.Last24ByType.PCR = 45

	result := Verify(rec)
	require.Equal(t, covid.ConditionDiscrepancy, result.Condition)
	require.Len(t, result.Checks, 2)
	require.Equal(t, covid.CheckResult{Expected: 10000, Actual: 2990}, result.Checks["tested/total"])
	require.Equal(t, covid.CheckResult{Expected: 60, Actual: 65}, result.Checks["confirmed/last"])
}

func TestVerifyIsSideEffectFree(t *testing.T) {
	rec := consistentRecord()
	Verify(rec)

	if diff := cmp.Diff(consistentRecord(), rec); diff != "" {
		t.Fatalf("record mutated by Verify (-want +got):\n%s", diff)
	}
}

package coronavirus

import (
	"context"
	"fmt"

	"covidtrack-backend/lib/covid"
	"covidtrack-backend/lib/regions"
)

// MedicalLookup fetches the stored medical-staff counters for a given
// date key, returning nil when no record exists for that day. The
// record store supplies the production implementation; isolating it
// behind a function keeps the decode below a pure transform.
type MedicalLookup func(ctx context.Context, date string) (*covid.MedicalStaff, error)

const countryCode = "BG"

// Assemble decodes the extracted cell sequences into one typed daily
// record. It performs exactly one store read (yesterday's medical
// counters) and writes nothing.
func Assemble(ctx context.Context, page *PageData, dates ScrapeDates, lookupMedical MedicalLookup) (*covid.DailyStatistics, error) {
	summary, err := summarySchema.decode(page.Summary)
	if err != nil {
		return nil, err
	}
	testing, err := testingSchema.decode(page.TestingCells)
	if err != nil {
		return nil, err
	}
	confType, err := confirmedTypeSchema.decode(page.ConfirmedTypeCells)
	if err != nil {
		return nil, err
	}
	medical, err := medicalSchema.decode(page.MedicalCells)
	if err != nil {
		return nil, err
	}
	vaccTotal, err := vaccinationTotalSchema.decode(page.VaccinationTotalCells)
	if err != nil {
		return nil, err
	}

	regionStats, err := assembleRegions(page)
	if err != nil {
		return nil, err
	}

	var previousMedical *covid.MedicalStaff
	if lookupMedical != nil {
		previousMedical, err = lookupMedical(ctx, dates.PreviousDate)
		if err != nil {
			return nil, fmt.Errorf("lookup previous medical counters: %w", err)
		}
	}

	tested := covid.Tested{
		Total:        summary["tested_total"],
		TotalByType:  covid.TestedByType{PCR: testing["pcr_total"], Antigen: testing["antigen_total"]},
		Last24:       summary["tested_last"],
		Last24ByType: covid.TestedByType{PCR: testing["pcr_last"], Antigen: testing["antigen_last"]},
	}
	confirmed := covid.Confirmed{
		Total:        summary["confirmed_total"],
		TotalByType:  covid.TestedByType{PCR: confType["pcr_total"], Antigen: confType["antigen_total"]},
		Last24:       confType["total_last"],
		Last24ByType: covid.TestedByType{PCR: confType["pcr_last"], Antigen: confType["antigen_last"]},
		Medical:      assembleMedical(medical, previousMedical),
	}
	vaccinated := covid.Vaccinated{
		Total:  summary["vaccinated_total"],
		Last24: summary["vaccinated_last"],
		Last24ByType: covid.VaccineDoses{
			Comirnaty:   vaccTotal["comirnaty"],
			Moderna:     vaccTotal["moderna"],
			AstraZeneca: vaccTotal["astrazeneca"],
			Janssen:     vaccTotal["janssen"],
		},
		TotalCompleted: vaccTotal["total_completed"],
	}

	active := summary["active_current"]
	hospitalized := summary["hospitalized"]
	icu := summary["icu"]

	stats := covid.Stats{
		Tested: covid.TestedRatios{
			TotalByType: covid.RatioByType{
				PCR:     guardedRatio(tested.TotalByType.PCR, tested.Total),
				Antigen: guardedRatio(tested.TotalByType.Antigen, tested.Total),
			},
			Last24ByType: covid.RatioByType{
				PCR:     guardedRatio(tested.Last24ByType.PCR, tested.Last24),
				Antigen: guardedRatio(tested.Last24ByType.Antigen, tested.Last24),
			},
		},
		Confirmed: covid.ConfirmedRatios{
			TotalPerTested:  guardedRatio(confirmed.Total, tested.Total),
			Last24PerTested: guardedRatio(confirmed.Last24, tested.Last24),
			TotalByType: covid.RatioByType{
				PCR:     guardedRatio(confirmed.TotalByType.PCR, confirmed.Total),
				Antigen: guardedRatio(confirmed.TotalByType.Antigen, confirmed.Total),
			},
			Last24ByType: covid.RatioByType{
				PCR:     guardedRatio(confirmed.Last24ByType.PCR, confirmed.Last24),
				Antigen: guardedRatio(confirmed.Last24ByType.Antigen, confirmed.Last24),
			},
		},
		Active: covid.ActiveRatios{
			HospitalizedPerActive: guardedRatio(hospitalized, active),
			ICUPerHospitalized:    guardedRatio(icu, hospitalized),
		},
	}
	if previousMedical != nil {
		stats.Confirmed.Medical = guardedRatio(confirmed.Medical.Last24, confirmed.Last24)
	}

	return &covid.DailyStatistics{
		Date:    dates.DataDate,
		Scraped: dates.ScrapedAt,
		Country: countryCode,
		Overall: covid.Overall{
			Tested:    tested,
			Confirmed: confirmed,
			Active: covid.Active{
				Current:       active,
				CurrentByType: covid.ActiveTypes{Hospitalized: hospitalized, ICU: icu},
			},
			Recovered:  covid.TotalAndLast{Total: summary["recovered_total"], Last: summary["recovered_last"]},
			Deceased:   covid.TotalAndLast{Total: summary["deceased_total"], Last: summary["deceased_last"]},
			Vaccinated: vaccinated,
		},
		Regions: regionStats,
		Stats:   stats,
	}, nil
}

func assembleMedical(fields map[string]int, previous *covid.MedicalStaff) covid.MedicalStaff {
	staff := covid.MedicalStaff{
		Total: fields["total"],
		TotalByType: covid.MedicalTypes{
			Doctors:     fields["doctors"],
			Nurses:      fields["nurses"],
			Paramedics1: fields["paramedics_1"],
			Paramedics2: fields["paramedics_2"],
			Others:      fields["others"],
		},
	}
	if previous == nil {
		// no prior-day record: every 24h delta stays zero
		return staff
	}

	staff.Last24 = staff.Total - previous.Total
	staff.Last24ByType = covid.MedicalTypes{
		Doctors:     staff.TotalByType.Doctors - previous.TotalByType.Doctors,
		Nurses:      staff.TotalByType.Nurses - previous.TotalByType.Nurses,
		Paramedics1: staff.TotalByType.Paramedics1 - previous.TotalByType.Paramedics1,
		Paramedics2: staff.TotalByType.Paramedics2 - previous.TotalByType.Paramedics2,
		Others:      staff.TotalByType.Others - previous.TotalByType.Others,
	}
	return staff
}

func assembleRegions(page *PageData) (map[string]covid.RegionStatistics, error) {
	confirmedRows, err := groupRows("confirmed-by-region", page.ConfirmedRegionCells, confirmedRegionStride)
	if err != nil {
		return nil, err
	}
	vaccinationRows, err := groupRows("vaccination-by-region", page.VaccinationRegionCells, vaccinationRegionStride)
	if err != nil {
		return nil, err
	}

	// the vaccination table is assumed to list districts in the same
	// order as the confirmed table; a row-count mismatch is the one
	// observable symptom of that assumption breaking
	if len(vaccinationRows) != len(confirmedRows) {
		return nil, &DecodeError{
			Table: "vaccination-by-region",
			Reason: fmt.Sprintf(
				"%d rows do not align with %d confirmed-by-region rows",
				len(vaccinationRows), len(confirmedRows),
			),
		}
	}

	out := make(map[string]covid.RegionStatistics, len(confirmedRows))
	for i, row := range confirmedRows {
		code, err := regions.Canonicalize(row[confRegionCode])
		if err != nil {
			return nil, &DecodeError{Table: "confirmed-by-region", Reason: err.Error()}
		}

		confirmedTotal, err := ParseCount(row[confRegionTotal])
		if err != nil {
			return nil, err
		}
		confirmedLast, err := ParseCount(row[confRegionLast])
		if err != nil {
			return nil, err
		}

		vaccinated, err := decodeRegionVaccination(vaccinationRows[i])
		if err != nil {
			return nil, err
		}

		out[code] = covid.RegionStatistics{
			Confirmed:  covid.TotalAndLast{Total: confirmedTotal, Last: confirmedLast},
			Vaccinated: vaccinated,
		}
	}
	return out, nil
}

func decodeRegionVaccination(row []string) (covid.Vaccinated, error) {
	values := make([]int, vaccinationRegionStride)
	for _, offset := range []int{
		vaccRegionTotal,
		vaccRegionComirnaty,
		vaccRegionModerna,
		vaccRegionAstraZeneca,
		vaccRegionJanssen,
		vaccRegionTotalCompleted,
	} {
		n, err := ParseCount(row[offset])
		if err != nil {
			return covid.Vaccinated{}, err
		}
		values[offset] = n
	}

	doses := covid.VaccineDoses{
		Comirnaty:   values[vaccRegionComirnaty],
		Moderna:     values[vaccRegionModerna],
		AstraZeneca: values[vaccRegionAstraZeneca],
		Janssen:     values[vaccRegionJanssen],
	}
	return covid.Vaccinated{
		Total: values[vaccRegionTotal],
		// the table has no per-region 24h total, it is defined as
		// the sum of the per-vaccine 24h doses
		Last24:         doses.Sum(),
		Last24ByType:   doses,
		TotalCompleted: values[vaccRegionTotalCompleted],
	}, nil
}

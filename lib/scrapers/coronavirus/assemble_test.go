package coronavirus

import (
	"context"
	"errors"
	"testing"

	"covidtrack-backend/lib/covid"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var sampleDates = ScrapeDates{
	DataDate:     "2021-05-21T08:30:00+03:00",
	PreviousDate: "2021-05-20T08:30:00+03:00",
	ScrapedAt:    "2021-05-21T06:45:12Z",
}

// samplePageData mirrors the source page layout: a label/value summary
// sequence and flat cell runs at the positional offsets the schemas
// expect. Non-numeric label cells sit between values so an off-by-one
// offset fails loudly instead of decoding the wrong counter.
func samplePageData() *PageData {
	return &PageData{
		Header: "Информация към 08:30 часа на 21 май 2021 г.",
		Summary: []string{
			"2 990", "тествани",
			"170", "за 24 часа",
			"500", "потвърдени",
			"200", "активни",
			"350", "излекувани",
			"15", "за 24 часа",
			"120", "хоспитализирани",
			"30", "интензивно",
			"60", "починали",
			"2", "за 24 часа",
			"1 000", "ваксинирани",
			"100", "за 24 часа",
		},
		TestingCells:       []string{"PCR", "2900", "150", "Антиген", "90", "20"},
		ConfirmedTypeCells: []string{"PCR", "450", "40", "Антиген", "50", "20", "Общо", "-", "60"},
		ConfirmedRegionCells: []string{
			"16", "300", "35",
			"22", "200", "25",
		},
		MedicalCells: []string{
			"Лекари", "10",
			"Медицински сестри", "20",
			"Фелдшери", "5",
			"Санитари", "3",
			"Други", "2",
			"Общо", "40",
		},
		VaccinationRegionCells: []string{
			"16", "600", "25", "15", "12", "8", "180", "-",
			"22", "400", "15", "15", "8", "2", "120", "-",
		},
		VaccinationTotalCells: []string{"Общо", "1000", "40", "30", "20", "10", "300"},
	}
}

func noPriorDay(context.Context, string) (*covid.MedicalStaff, error) {
	return nil, nil
}

func TestAssemble(t *testing.T) {
	rec, err := Assemble(context.Background(), samplePageData(), sampleDates, noPriorDay)
	require.NoError(t, err)

	require.Equal(t, "2021-05-21T08:30:00+03:00", rec.Date)
	require.Equal(t, "2021-05-21T06:45:12Z", rec.Scraped)
	require.Equal(t, "BG", rec.Country)

	require.Equal(t, covid.Tested{
		Total:        2990,
		TotalByType:  covid.TestedByType{PCR: 2900, Antigen: 90},
		Last24:       170,
		Last24ByType: covid.TestedByType{PCR: 150, Antigen: 20},
	}, rec.Overall.Tested)

	require.Equal(t, 500, rec.Overall.Confirmed.Total)
	require.Equal(t, covid.TestedByType{PCR: 450, Antigen: 50}, rec.Overall.Confirmed.TotalByType)
	require.Equal(t, 60, rec.Overall.Confirmed.Last24)
	require.Equal(t, covid.TestedByType{PCR: 40, Antigen: 20}, rec.Overall.Confirmed.Last24ByType)

	require.Equal(t, covid.Active{
		Current:       200,
		CurrentByType: covid.ActiveTypes{Hospitalized: 120, ICU: 30},
	}, rec.Overall.Active)
	require.Equal(t, covid.TotalAndLast{Total: 350, Last: 15}, rec.Overall.Recovered)
	require.Equal(t, covid.TotalAndLast{Total: 60, Last: 2}, rec.Overall.Deceased)

	require.Equal(t, covid.Vaccinated{
		Total:          1000,
		Last24:         100,
		Last24ByType:   covid.VaccineDoses{Comirnaty: 40, Moderna: 30, AstraZeneca: 20, Janssen: 10},
		TotalCompleted: 300,
	}, rec.Overall.Vaccinated)

	expectedRegions := map[string]covid.RegionStatistics{
		"PDV": {
			Confirmed: covid.TotalAndLast{Total: 300, Last: 35},
			Vaccinated: covid.Vaccinated{
				Total:          600,
				Last24:         60,
				Last24ByType:   covid.VaccineDoses{Comirnaty: 25, Moderna: 15, AstraZeneca: 12, Janssen: 8},
				TotalCompleted: 180,
			},
		},
		"SOF": {
			Confirmed: covid.TotalAndLast{Total: 200, Last: 25},
			Vaccinated: covid.Vaccinated{
				Total:          400,
				Last24:         40,
				Last24ByType:   covid.VaccineDoses{Comirnaty: 15, Moderna: 15, AstraZeneca: 8, Janssen: 2},
				TotalCompleted: 120,
			},
		},
	}
	if diff := cmp.Diff(expectedRegions, rec.Regions); diff != "" {
		t.Fatalf("regions mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, covid.Stats{
		Tested: covid.TestedRatios{
			TotalByType:  covid.RatioByType{PCR: 0.9699, Antigen: 0.0301},
			Last24ByType: covid.RatioByType{PCR: 0.8824, Antigen: 0.1176},
		},
		Confirmed: covid.ConfirmedRatios{
			TotalPerTested:  0.1672,
			Last24PerTested: 0.3529,
			TotalByType:     covid.RatioByType{PCR: 0.9, Antigen: 0.1},
			Last24ByType:    covid.RatioByType{PCR: 0.6667, Antigen: 0.3333},
		},
		Active: covid.ActiveRatios{
			HospitalizedPerActive: 0.6,
			ICUPerHospitalized:    0.25,
		},
	}, rec.Stats)

	// the sample page is internally consistent end to end
	result := Verify(rec)
	require.Equal(t, covid.ConditionApproved, result.Condition)
}

func TestAssembleMedicalNoPriorDay(t *testing.T) {
	rec, err := Assemble(context.Background(), samplePageData(), sampleDates, noPriorDay)
	require.NoError(t, err)

	medical := rec.Overall.Confirmed.Medical
	require.Equal(t, 40, medical.Total)
	require.Equal(t, covid.MedicalTypes{
		Doctors: 10, Nurses: 20, Paramedics1: 5, Paramedics2: 3, Others: 2,
	}, medical.TotalByType)
	require.Zero(t, medical.Last24)
	require.Equal(t, covid.MedicalTypes{}, medical.Last24ByType)
	require.Zero(t, rec.Stats.Confirmed.Medical)
}

func TestAssembleMedicalDelta(t *testing.T) {
	lookup := func(ctx context.Context, date string) (*covid.MedicalStaff, error) {
		require.Equal(t, sampleDates.PreviousDate, date)
		return &covid.MedicalStaff{
			Total: 35,
			TotalByType: covid.MedicalTypes{
				Doctors: 8, Nurses: 18, Paramedics1: 5, Paramedics2: 2, Others: 2,
			},
		}, nil
	}

	rec, err := Assemble(context.Background(), samplePageData(), sampleDates, lookup)
	require.NoError(t, err)

	medical := rec.Overall.Confirmed.Medical
	require.Equal(t, 5, medical.Last24)
	require.Equal(t, covid.MedicalTypes{
		Doctors: 2, Nurses: 2, Paramedics1: 0, Paramedics2: 1, Others: 0,
	}, medical.Last24ByType)
	require.Equal(t, 0.0833, rec.Stats.Confirmed.Medical)
}

func TestAssembleLookupFailure(t *testing.T) {
	storeDown := errors.New("store unavailable")
	lookup := func(context.Context, string) (*covid.MedicalStaff, error) {
		return nil, storeDown
	}

	_, err := Assemble(context.Background(), samplePageData(), sampleDates, lookup)
	require.ErrorIs(t, err, storeDown)
}

func TestAssembleRegionRowMismatch(t *testing.T) {
	page := samplePageData()
	page.VaccinationRegionCells = page.VaccinationRegionCells[:vaccinationRegionStride]

	_, err := Assemble(context.Background(), page, sampleDates, noPriorDay)

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "vaccination-by-region", derr.Table)
}

func TestAssembleUnknownRegionCode(t *testing.T) {
	page := samplePageData()
	page.ConfirmedRegionCells[0] = "99"

	_, err := Assemble(context.Background(), page, sampleDates, noPriorDay)

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "confirmed-by-region", derr.Table)
}

func TestAssembleTruncatedSummary(t *testing.T) {
	page := samplePageData()
	page.Summary = page.Summary[:10]

	_, err := Assemble(context.Background(), page, sampleDates, noPriorDay)

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
}

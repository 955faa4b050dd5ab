// Package covid holds the persisted document model for daily
// coronavirus statistics. Field names follow the stored snake_case
// document layout, one document per calendar day.
package covid

const (
	ConditionApproved    = "approved"
	ConditionDiscrepancy = "discrepancy"
)

type DailyStatistics struct {
	// the reported date from the source page, ISO 8601 with the
	// source locale's UTC offset. unique per document.
	Date string `bson:"date" json:"date"`
	// UTC instant the scrape ran, ISO 8601
	Scraped string `bson:"scraped" json:"scraped"`
	Country string `bson:"country" json:"country"`

	Overall Overall                     `bson:"overall" json:"overall"`
	Regions map[string]RegionStatistics `bson:"regions" json:"regions"`
	Stats   Stats                       `bson:"stats" json:"stats"`

	ConditionResult ConditionResult `bson:"condition_result" json:"condition_result"`
}

type Overall struct {
	Tested     Tested       `bson:"tested" json:"tested"`
	Confirmed  Confirmed    `bson:"confirmed" json:"confirmed"`
	Active     Active       `bson:"active" json:"active"`
	Recovered  TotalAndLast `bson:"recovered" json:"recovered"`
	Deceased   TotalAndLast `bson:"deceased" json:"deceased"`
	Vaccinated Vaccinated   `bson:"vaccinated" json:"vaccinated"`
}

type Tested struct {
	Total        int          `bson:"total" json:"total"`
	TotalByType  TestedByType `bson:"total_by_type" json:"total_by_type"`
	Last24       int          `bson:"last" json:"last"`
	Last24ByType TestedByType `bson:"last_by_type" json:"last_by_type"`
}

type TestedByType struct {
	PCR     int `bson:"pcr" json:"pcr"`
	Antigen int `bson:"antigen" json:"antigen"`
}

type Confirmed struct {
	Total        int          `bson:"total" json:"total"`
	TotalByType  TestedByType `bson:"total_by_type" json:"total_by_type"`
	Last24       int          `bson:"last" json:"last"`
	Last24ByType TestedByType `bson:"last_by_type" json:"last_by_type"`
	Medical      MedicalStaff `bson:"medical" json:"medical"`
}

type MedicalStaff struct {
	Total        int          `bson:"total" json:"total"`
	TotalByType  MedicalTypes `bson:"total_by_type" json:"total_by_type"`
	Last24       int          `bson:"last" json:"last"`
	Last24ByType MedicalTypes `bson:"last_by_type" json:"last_by_type"`
}

type MedicalTypes struct {
	Doctors     int `bson:"doctors" json:"doctors"`
	Nurses      int `bson:"nurses" json:"nurses"`
	Paramedics1 int `bson:"paramedics_1" json:"paramedics_1"`
	Paramedics2 int `bson:"paramedics_2" json:"paramedics_2"`
	Others      int `bson:"others" json:"others"`
}

type Active struct {
	Current       int         `bson:"current" json:"current"`
	CurrentByType ActiveTypes `bson:"current_by_type" json:"current_by_type"`
}

type ActiveTypes struct {
	Hospitalized int `bson:"hospitalized" json:"hospitalized"`
	ICU          int `bson:"icu" json:"icu"`
}

type TotalAndLast struct {
	Total int `bson:"total" json:"total"`
	Last  int `bson:"last" json:"last"`
}

type Vaccinated struct {
	Total          int          `bson:"total" json:"total"`
	Last24         int          `bson:"last" json:"last"`
	Last24ByType   VaccineDoses `bson:"last_by_type" json:"last_by_type"`
	TotalCompleted int          `bson:"total_completed" json:"total_completed"`
}

type VaccineDoses struct {
	Comirnaty   int `bson:"comirnaty" json:"comirnaty"`
	Moderna     int `bson:"moderna" json:"moderna"`
	AstraZeneca int `bson:"astrazeneca" json:"astrazeneca"`
	Janssen     int `bson:"janssen" json:"janssen"`
}

func (v VaccineDoses) Sum() int {
	return v.Comirnaty + v.Moderna + v.AstraZeneca + v.Janssen
}

type RegionStatistics struct {
	Confirmed  TotalAndLast `bson:"confirmed" json:"confirmed"`
	Vaccinated Vaccinated   `bson:"vaccinated" json:"vaccinated"`
}

// Stats holds the derived fractions, rounded to 4 decimal places,
// expressed in [0,1] rather than percent.
type Stats struct {
	Tested    TestedRatios    `bson:"tested_prc" json:"tested_prc"`
	Confirmed ConfirmedRatios `bson:"confirmed_prc" json:"confirmed_prc"`
	Active    ActiveRatios    `bson:"active_prc" json:"active_prc"`
}

type TestedRatios struct {
	TotalByType  RatioByType `bson:"total_by_type_prc" json:"total_by_type_prc"`
	Last24ByType RatioByType `bson:"last_by_type_prc" json:"last_by_type_prc"`
}

type RatioByType struct {
	PCR     float64 `bson:"pcr" json:"pcr"`
	Antigen float64 `bson:"antigen" json:"antigen"`
}

type ConfirmedRatios struct {
	TotalPerTested  float64     `bson:"total_per_tested_prc" json:"total_per_tested_prc"`
	Last24PerTested float64     `bson:"last_per_tested_prc" json:"last_per_tested_prc"`
	TotalByType     RatioByType `bson:"total_by_type_prc" json:"total_by_type_prc"`
	Last24ByType    RatioByType `bson:"last_by_type_prc" json:"last_by_type_prc"`
	// only present when a prior-day record allowed the medical delta
	Medical float64 `bson:"medical_prc,omitempty" json:"medical_prc,omitempty"`
}

type ActiveRatios struct {
	HospitalizedPerActive float64 `bson:"hospitalized_per_active" json:"hospitalized_per_active"`
	ICUPerHospitalized    float64 `bson:"icu_per_hospitalized" json:"icu_per_hospitalized"`
}

// ConditionResult is the consistency report attached to every stored
// document. A discrepancy never blocks insertion, it is recorded for
// operator review.
type ConditionResult struct {
	Condition   string                 `bson:"condition" json:"condition"`
	Description string                 `bson:"description,omitempty" json:"description,omitempty"`
	Checks      map[string]CheckResult `bson:"checks,omitempty" json:"checks,omitempty"`
}

type CheckResult struct {
	Expected int `bson:"expected" json:"expected"`
	Actual   int `bson:"actual" json:"actual"`
}

package coronavirus

import "fmt"

// Positional decoding is table-driven: each named field carries its
// literal cell offset, so a page layout revision is versioned in one
// place instead of scattered indices.

type fieldSpec struct {
	name   string
	offset int
}

type tableSchema struct {
	table  string
	fields []fieldSpec
}

func (s tableSchema) decode(cells []string) (map[string]int, error) {
	out := make(map[string]int, len(s.fields))
	for _, f := range s.fields {
		if f.offset >= len(cells) {
			return nil, &DecodeError{
				Table:  s.table,
				Reason: fmt.Sprintf("field %s at offset %d exceeds %d cells", f.name, f.offset, len(cells)),
			}
		}
		n, err := ParseCount(cells[f.offset])
		if err != nil {
			return nil, err
		}
		out[f.name] = n
	}
	return out, nil
}

var summarySchema = tableSchema{
	table: "summary",
	fields: []fieldSpec{
		{"tested_total", 0},
		{"tested_last", 2},
		{"confirmed_total", 4},
		{"active_current", 6},
		{"recovered_total", 8},
		{"recovered_last", 10},
		{"hospitalized", 12},
		{"icu", 14},
		{"deceased_total", 16},
		{"deceased_last", 18},
		{"vaccinated_total", 20},
		{"vaccinated_last", 22},
	},
}

var testingSchema = tableSchema{
	table: "testing-by-type",
	fields: []fieldSpec{
		{"pcr_total", 1},
		{"pcr_last", 2},
		{"antigen_total", 4},
		{"antigen_last", 5},
	},
}

var confirmedTypeSchema = tableSchema{
	table: "confirmed-by-type",
	fields: []fieldSpec{
		{"pcr_total", 1},
		{"pcr_last", 2},
		{"antigen_total", 4},
		{"antigen_last", 5},
		{"total_last", 8},
	},
}

var medicalSchema = tableSchema{
	table: "medical-staff",
	fields: []fieldSpec{
		{"doctors", 1},
		{"nurses", 3},
		{"paramedics_1", 5},
		{"paramedics_2", 7},
		{"others", 9},
		{"total", 11},
	},
}

// applied to the national totals row of the vaccination table
var vaccinationTotalSchema = tableSchema{
	table: "vaccination-totals",
	fields: []fieldSpec{
		{"comirnaty", 2},
		{"moderna", 3},
		{"astrazeneca", 4},
		{"janssen", 5},
		{"total_completed", 6},
	},
}

// region table strides
const (
	confirmedRegionStride   = 3
	vaccinationRegionStride = 8
)

// within a confirmed-by-region triple
const (
	confRegionCode = iota
	confRegionTotal
	confRegionLast
)

// within a vaccination-by-region octet; offset 0 is the district
// label and offset 7 is trailing presentation markup
const (
	vaccRegionTotal = iota + 1
	vaccRegionComirnaty
	vaccRegionModerna
	vaccRegionAstraZeneca
	vaccRegionJanssen
	vaccRegionTotalCompleted
)

// groupRows slices a flat cell sequence into fixed-stride rows.
func groupRows(table string, cells []string, stride int) ([][]string, error) {
	if len(cells)%stride != 0 {
		return nil, &DecodeError{
			Table:  table,
			Reason: fmt.Sprintf("%d cells is not a multiple of stride %d", len(cells), stride),
		}
	}
	rows := make([][]string, 0, len(cells)/stride)
	for i := 0; i < len(cells); i += stride {
		rows = append(rows, cells[i:i+stride])
	}
	return rows, nil
}

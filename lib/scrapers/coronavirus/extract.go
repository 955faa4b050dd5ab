package coronavirus

import (
	"context"
	"fmt"
	"log/slog"

	"covidtrack-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// landing page selectors
const (
	selHeaderSpan = ".statistics-header-wrapper span"
	selSummary    = ".statistics-container > div > p"
	selDetailLink = ".statistics-sub-header.nsi"
)

// detail page selectors
const (
	selTables = ".table"
	selCells  = "td"
	selRows   = "tr"
)

// fixed table order on the detail page
const (
	tableReserved = iota
	tableTesting
	tableConfirmedByType
	tableConfirmedByRegion
	tableMedical
	tableVaccination
	tableCount
)

// PageData is the raw positional extract of one daily page: flat
// text-cell sequences that the assembler addresses by offset.
type PageData struct {
	// the publication timestamp header, free text
	Header string
	// summary paragraph texts in document order
	Summary []string

	TestingCells         []string
	ConfirmedTypeCells   []string
	ConfirmedRegionCells []string
	MedicalCells         []string
	// per-region vaccination rows, excluding the national totals row
	VaccinationRegionCells []string
	// the national totals row of the vaccination table
	VaccinationTotalCells []string
}

// Extract fetches the landing page and the linked detail page and
// slices both into flat text sequences. Any selector matching zero
// elements aborts the run: a missing block means the page structure
// changed and decoding would silently corrupt the record.
func Extract(ctx context.Context, src DocumentSource, baseURL string) (*PageData, error) {
	landing, err := src.Fetch(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	headerSel := landing.Find(selHeaderSpan)
	if headerSel.Length() == 0 {
		return nil, &LayoutError{Page: "landing", Selector: selHeaderSpan}
	}

	summarySel := landing.Find(selSummary)
	if summarySel.Length() == 0 {
		return nil, &LayoutError{Page: "landing", Selector: selSummary}
	}

	linkSel := landing.Find(selDetailLink)
	if linkSel.Length() == 0 {
		return nil, &LayoutError{Page: "landing", Selector: selDetailLink}
	}
	href, ok := linkSel.First().Attr("href")
	if !ok || href == "" {
		return nil, &LayoutError{Page: "landing", Selector: selDetailLink + "[href]"}
	}

	detailURL := baseURL + href
	slog.DebugContext(ctx, "following detail page link", "url", detailURL)

	detail, err := src.Fetch(ctx, detailURL)
	if err != nil {
		return nil, err
	}

	tables := detail.Find(selTables)
	if tables.Length() < tableCount {
		return nil, &LayoutError{
			Page:     "detail",
			Selector: fmt.Sprintf("%s (want %d tables, got %d)", selTables, tableCount, tables.Length()),
		}
	}

	vaccRegion, vaccTotal, err := splitLastRow(tables.Eq(tableVaccination))
	if err != nil {
		return nil, err
	}
	confRegion, _, err := splitLastRow(tables.Eq(tableConfirmedByRegion))
	if err != nil {
		return nil, err
	}

	return &PageData{
		Header:                 headerSel.First().Text(),
		Summary:                htmlutil.CollectText(summarySel),
		TestingCells:           tableCells(tables.Eq(tableTesting)),
		ConfirmedTypeCells:     tableCells(tables.Eq(tableConfirmedByType)),
		ConfirmedRegionCells:   confRegion,
		MedicalCells:           tableCells(tables.Eq(tableMedical)),
		VaccinationRegionCells: vaccRegion,
		VaccinationTotalCells:  vaccTotal,
	}, nil
}

func tableCells(table *goquery.Selection) []string {
	return htmlutil.CollectText(table.Find(selCells))
}

// splitLastRow returns the cell texts of every data row except the
// last one, plus the last row separately. Both region tables close
// with a national totals row that must not be decoded as a region.
func splitLastRow(table *goquery.Selection) (body []string, last []string, err error) {
	rows := table.Find(selRows)
	if rows.Length() == 0 {
		return nil, nil, &LayoutError{Page: "detail", Selector: selTables + " " + selRows}
	}

	rows.Each(func(i int, row *goquery.Selection) {
		cells := htmlutil.CollectText(row.Find(selCells))
		if len(cells) == 0 {
			// header rows hold <th> cells only
			return
		}
		if i == rows.Length()-1 {
			last = cells
			return
		}
		body = append(body, cells...)
	})

	if len(last) == 0 {
		return nil, nil, &LayoutError{Page: "detail", Selector: selTables + " totals row"}
	}
	return body, last, nil
}

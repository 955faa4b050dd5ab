package coronavirus

import (
	"strconv"
	"strings"
	"time"

	"covidtrack-backend/lib/timezone"
)

// ScrapeDates carries the canonical date keys for one run.
type ScrapeDates struct {
	// reported publication instant in the source locale
	Reported time.Time
	// canonical record key, ISO 8601 with the locale's UTC offset
	DataDate string
	// DataDate minus one calendar day, same format
	PreviousDate string
	// the current UTC instant, ISO 8601
	ScrapedAt string
}

var monthsByName = map[string]time.Month{
	"януари":    time.January,
	"февруари":  time.February,
	"март":      time.March,
	"април":     time.April,
	"май":       time.May,
	"юни":       time.June,
	"юли":       time.July,
	"август":    time.August,
	"септември": time.September,
	"октомври":  time.October,
	"ноември":   time.November,
	"декември":  time.December,
}

// ResolveDates parses the landing page header span, e.g.
// "Информация към 08:30 часа на 21 май 2021 г.". The token layout is
// fixed: time, day, month name and year are the 3rd, 6th, 7th and 8th
// whitespace-delimited tokens.
func ResolveDates(header string, now time.Time) (ScrapeDates, error) {
	tokens := strings.Fields(header)
	if len(tokens) < 8 {
		return ScrapeDates{}, &DateFormatError{
			Header: header,
			Reason: "expected at least 8 tokens, got " + strconv.Itoa(len(tokens)),
		}
	}

	timeToken := tokens[2]
	dayToken := tokens[5]
	monthToken := tokens[6]
	yearToken := tokens[7]

	day, err := strconv.Atoi(dayToken)
	if err != nil {
		return ScrapeDates{}, &DateFormatError{Header: header, Reason: "day token " + strconv.Quote(dayToken)}
	}
	year, err := strconv.Atoi(yearToken)
	if err != nil {
		return ScrapeDates{}, &DateFormatError{Header: header, Reason: "year token " + strconv.Quote(yearToken)}
	}
	month, ok := monthsByName[strings.ToLower(monthToken)]
	if !ok {
		return ScrapeDates{}, &DateFormatError{Header: header, Reason: "month token " + strconv.Quote(monthToken)}
	}

	hour, minute, err := parseClock(timeToken)
	if err != nil {
		return ScrapeDates{}, &DateFormatError{Header: header, Reason: "time token " + strconv.Quote(timeToken)}
	}

	reported := time.Date(year, month, day, hour, minute, 0, 0, timezone.Location)
	previous := reported.AddDate(0, 0, -1)

	return ScrapeDates{
		Reported:     reported,
		DataDate:     reported.Format(time.RFC3339),
		PreviousDate: previous.Format(time.RFC3339),
		ScrapedAt:    now.UTC().Format(time.RFC3339),
	}, nil
}

func parseClock(token string) (hour, minute int, err error) {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return 0, 0, &FormatError{Token: token}
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, &FormatError{Token: token}
	}
	return hour, minute, nil
}

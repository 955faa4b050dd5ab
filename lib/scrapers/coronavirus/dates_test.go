package coronavirus

import (
	"testing"
	"time"

	"covidtrack-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestResolveDates(t *testing.T) {
	now := time.Date(2021, 5, 21, 6, 45, 12, 0, time.UTC)

	dates, err := ResolveDates("Информация към 08:30 часа на 21 май 2021 г.", now)
	require.NoError(t, err)

	require.Equal(t,
		time.Date(2021, 5, 21, 8, 30, 0, 0, timezone.Location),
		dates.Reported)
	require.Equal(t, "2021-05-21T08:30:00+03:00", dates.DataDate)
	require.Equal(t, "2021-05-20T08:30:00+03:00", dates.PreviousDate)
	require.Equal(t, "2021-05-21T06:45:12Z", dates.ScrapedAt)
}

func TestResolveDatesWinterOffset(t *testing.T) {
	dates, err := ResolveDates(
		"Информация към 09:00 часа на 15 януари 2022 г.",
		time.Date(2022, 1, 15, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Equal(t, "2022-01-15T09:00:00+02:00", dates.DataDate)
	require.Equal(t, "2022-01-14T09:00:00+02:00", dates.PreviousDate)
}

func TestResolveDatesPreviousCrossesMonth(t *testing.T) {
	dates, err := ResolveDates(
		"Информация към 08:00 часа на 1 юни 2021 г.",
		time.Date(2021, 6, 1, 5, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Equal(t, "2021-06-01T08:00:00+03:00", dates.DataDate)
	require.Equal(t, "2021-05-31T08:00:00+03:00", dates.PreviousDate)
}

func TestResolveDatesRejectsMalformedHeaders(t *testing.T) {
	headers := []string{
		"",
		"Информация към 08:30 часа",
		"Информация към 08:30 часа на двадесети май 2021 г.",
		"Информация към 08:30 часа на 21 floridus 2021 г.",
		"Информация към 08:30 часа на 21 май година г.",
		"Информация към сутринта часа на 21 май 2021 г.",
	}

	for _, header := range headers {
		_, err := ResolveDates(header, time.Now())

		var derr *DateFormatError
		require.ErrorAs(t, err, &derr, header)
	}
}

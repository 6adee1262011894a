package generate

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordLocator(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, RecordLocator())
	}
}

func TestSeat_WindowLettersAndRows(t *testing.T) {
	seatPattern := regexp.MustCompile(`^(\d{2})([AF])$`)
	for i := 0; i < 1000; i++ {
		seat := Seat("window")
		match := seatPattern.FindStringSubmatch(seat)
		if !assert.NotNil(t, match, "unexpected seat %q", seat) {
			continue
		}
		row, err := strconv.Atoi(match[1])
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, row, 10)
		assert.LessOrEqual(t, row, 45)
	}
}

func TestSeat_LetterPairs(t *testing.T) {
	testCases := []struct {
		pref    string
		letters string
	}{
		{"window", "AF"},
		{"aisle", "CD"},
		{"middle", "BE"},
		{"unknown", "BE"},
	}

	for _, tc := range testCases {
		t.Run(tc.pref, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				seat := Seat(tc.pref)
				assert.Contains(t, tc.letters, seat[len(seat)-1:])
			}
		})
	}
}

func TestAircraft(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Contains(t, aircraftCatalog, Aircraft())
	}
}

func TestPrice(t *testing.T) {
	testCases := []struct {
		name      string
		pref      string
		roundTrip bool
		expected  float64
	}{
		{"aisle one-way", "aisle", false, 300.00},
		{"window round-trip", "window", true, 480.00},
		{"unknown one-way", "recliner", false, 220.00},
		{"middle one-way", "middle", false, 220.00},
		{"aisle round-trip", "aisle", true, 600.00},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Price(tc.pref, tc.roundTrip), 0.001)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "300.00", FormatPrice(300))
	assert.Equal(t, "480.00", FormatPrice(480.0))
	assert.Equal(t, "220.00", FormatPrice(219.99999999999997))
}

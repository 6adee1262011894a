package generate

import (
	"fmt"
	"math/rand/v2"
)

const locatorAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// LocatorLength is the fixed length of a record locator.
const LocatorLength = 6

var aircraftCatalog = []string{
	"Boeing 737",
	"Airbus A320",
	"Boeing 787 Dreamliner",
	"Airbus A350",
	"Boeing 777",
}

// seatLetters maps a normalized seat preference to its letter pair.
// A/F sit at the windows, C/D on the aisle, B/E between.
var seatLetters = map[string][2]byte{
	"window": {'A', 'F'},
	"aisle":  {'C', 'D'},
	"middle": {'B', 'E'},
}

// RecordLocator returns a 6-character booking reference drawn uniformly
// from A-Z and 0-9. Uniqueness is enforced at insert time, not here.
func RecordLocator() string {
	b := make([]byte, LocatorLength)
	for i := range b {
		b[i] = locatorAlphabet[rand.IntN(len(locatorAlphabet))]
	}
	return string(b)
}

// Seat assigns a seat for the given normalized preference: a random row
// between 10 and 45 plus a letter from the preference's pair.
func Seat(pref string) string {
	letters, ok := seatLetters[pref]
	if !ok {
		letters = seatLetters["middle"]
	}
	row := 10 + rand.IntN(36)
	return fmt.Sprintf("%d%c", row, letters[rand.IntN(2)])
}

// Aircraft picks a random type from the fixed catalog.
func Aircraft() string {
	return aircraftCatalog[rand.IntN(len(aircraftCatalog))]
}

// Price computes the airfare: a 200 base, doubled for round trips, then
// scaled by seat preference (window 1.2, aisle 1.5, anything else 1.1).
func Price(pref string, roundTrip bool) float64 {
	base := 200.0
	if roundTrip {
		base *= 2
	}
	switch pref {
	case "window":
		return base * 1.2
	case "aisle":
		return base * 1.5
	default:
		return base * 1.1
	}
}

// FormatPrice renders a computed price the way it is stored and shown.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

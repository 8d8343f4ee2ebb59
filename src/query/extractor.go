package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"iex-insight/src/models"
	"iex-insight/src/utils"
)

// -----------------------------------------------------------------------------
// Temporal/Entity Extractor
// -----------------------------------------------------------------------------
// Best-effort extraction of a filter fragment from free text. Rules run in a
// fixed order and later, more specific matches overwrite earlier ones.
// Unparseable fragments are ignored, never surfaced as errors: the fragment
// simply omits that field.
// -----------------------------------------------------------------------------

var (
	reYear      = regexp.MustCompile(`\b(20[2-3][0-9])\b`)
	reQuarter   = regexp.MustCompile(`(?i)\bq([1-4])\b`)
	reISODate   = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	reEUDate    = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{4})\b`)
	reLastNDays = regexp.MustCompile(`(?i)\blast\s+(\d+)\s+days?\b`)
	reRTM       = regexp.MustCompile(`(?i)\brtm\b`)
	reGDAM      = regexp.MustCompile(`(?i)\bg-?dam\b`)
	reDAM       = regexp.MustCompile(`(?i)dam\b`)

	// "<h>[:mm][am|pm] to <h>[:mm][am|pm]": at least one am/pm marker or a
	// minutes part is required so bare price ranges ("9 to 10") stay numeric.
	reClockRange = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*to\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)

	reBetween  = regexp.MustCompile(`(?i)\bbetween\s+(\d+(?:\.\d+)?)\s+and\s+(\d+(?:\.\d+)?)`)
	reNumRange = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:-|to)\s*(\d+(?:\.\d+)?)\s*(?:rs\b|rupees\b)?`)

	reVolumeHint = regexp.MustCompile(`(?i)\b(mcv|volume|volumes)\b`)
	rePriceHint  = regexp.MustCompile(`(?i)\b(mcp|price|prices|tariff|rate|rates)\b`)
)

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var (
	reMonthName = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\b`)
	reMonthYear = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\s+(20\d\d)\b`)
)

var (
	reDayMonth = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\b`)
	reMonthDay = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
)

// -----------------------------------------------------------------------------

// ExtractFilters parses free text into a normalized filter fragment.
func ExtractFilters(text string) models.MFilterSpec {
	var f models.MFilterSpec
	lower := strings.ToLower(text)

	quarter := 0
	explicitRange := false

	// 1. Four-digit year.
	if m := reYear.FindStringSubmatch(lower); m != nil {
		y, _ := strconv.Atoi(m[1])
		if y >= utils.MinDatasetYear && y <= utils.MaxDatasetYear {
			f.Year = y
		}
	}

	// 2. Quarter marker.
	if m := reQuarter.FindStringSubmatch(lower); m != nil {
		quarter, _ = strconv.Atoi(m[1])
	}

	// 3. Month name. A "<Month> <Year>" pair wins over the first bare month
	// token, so "compare may with march 2024" selects March and the modal
	// verb in "prices may vary in march 2024" never selects May.
	if m := reMonthYear.FindStringSubmatch(lower); m != nil {
		f.Month = int(monthNames[strings.ToLower(m[1])])
		if y, err := strconv.Atoi(m[2]); err == nil && y >= utils.MinDatasetYear && y <= utils.MaxDatasetYear {
			f.Year = y
		}
	} else if m := reMonthName.FindStringSubmatch(lower); m != nil {
		f.Month = int(monthNames[strings.ToLower(m[1])])
	}

	// 4. Day-of-month with month name, either order.
	if m := reDayMonth.FindStringSubmatch(lower); m != nil {
		if d, err := strconv.Atoi(m[1]); err == nil && d >= 1 && d <= 31 {
			f.Day = d
			f.Month = int(monthNames[strings.ToLower(m[2])])
		}
	} else if m := reMonthDay.FindStringSubmatch(lower); m != nil {
		if d, err := strconv.Atoi(m[2]); err == nil && d >= 1 && d <= 31 {
			f.Day = d
			f.Month = int(monthNames[strings.ToLower(m[1])])
		}
	}

	// 5. Numeric dates, ISO first.
	if m := reISODate.FindStringSubmatch(lower); m != nil {
		if t, ok := buildDate(m[1], m[2], m[3]); ok {
			f.Year, f.Month, f.Day = t.Year(), int(t.Month()), t.Day()
		}
	} else if m := reEUDate.FindStringSubmatch(lower); m != nil {
		if t, ok := buildDate(m[3], m[2], m[1]); ok {
			f.Year, f.Month, f.Day = t.Year(), int(t.Month()), t.Day()
		}
	}

	// 6. Relative windows.
	if m := reLastNDays.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			today := time.Now().UTC().Truncate(24 * time.Hour)
			f.StartDate = today.AddDate(0, 0, -n)
			f.EndDate = today
			explicitRange = true
		}
	}

	// 7. Clock-time range.
	if start, end, ok := extractClockRange(lower); ok {
		f.StartTime = start
		f.EndTime = end
	}

	// 8. Market tokens. GDAM is checked first so "dam" inside "gdam" can
	// never select DAM; when both tokens appear GDAM wins (current product
	// behavior, kept deliberately).
	if reGDAM.MatchString(lower) {
		f.Market = models.MarketGDAM
	} else if damWithoutGuard(lower) {
		f.Market = models.MarketDAM
	} else if reRTM.MatchString(lower) {
		f.Market = models.MarketRTM
	}

	// 9. Numeric range tokens. Numeric date spans are blanked out first so a
	// fragment like the "03-31" tail of an ISO date can never become a bound.
	extractNumericRange(maskDates(lower), &f)

	// Date-range synthesis when no explicit range was given.
	if !explicitRange {
		synthesizeDateRange(&f, quarter)
	}

	return f
}

// -----------------------------------------------------------------------------

// damWithoutGuard reports a word-boundary "dam" not preceded by 'g' or '-'.
// Go regexp has no lookbehind, so the preceding byte is checked manually.
func damWithoutGuard(lower string) bool {
	return damPosition(lower) >= 0
}

// damPosition returns the index of the first unguarded "dam" token, or -1.
func damPosition(lower string) int {
	for _, loc := range reDAM.FindAllStringIndex(lower, -1) {
		start := loc[0]
		if start > 0 {
			prev := lower[start-1]
			if prev == 'g' || prev == '-' || isWordByte(prev) {
				continue
			}
		}
		return start
	}
	return -1
}

// -----------------------------------------------------------------------------

// MarketMentions returns the distinct markets named in the text, in order of
// first mention. Used by cross-market queries where "GDAM greater than DAM"
// must keep GDAM as the left-hand side.
func MarketMentions(text string) []models.Market {
	lower := strings.ToLower(text)

	type mention struct {
		market models.Market
		pos    int
	}
	var found []mention

	if loc := reGDAM.FindStringIndex(lower); loc != nil {
		found = append(found, mention{models.MarketGDAM, loc[0]})
	}
	if pos := damPosition(lower); pos >= 0 {
		found = append(found, mention{models.MarketDAM, pos})
	}
	if loc := reRTM.FindStringIndex(lower); loc != nil {
		found = append(found, mention{models.MarketRTM, loc[0]})
	}

	for i := 1; i < len(found); i++ {
		for j := i; j > 0 && found[j].pos < found[j-1].pos; j-- {
			found[j], found[j-1] = found[j-1], found[j]
		}
	}

	markets := make([]models.Market, len(found))
	for i, m := range found {
		markets[i] = m.market
	}
	return markets
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '_'
}

// -----------------------------------------------------------------------------

// extractClockRange finds a time-of-day window. A match is only treated as a
// clock range when at least one side carries an am/pm marker or minutes;
// otherwise "9 to 10" is left for the numeric-range rule.
func extractClockRange(lower string) (string, string, bool) {
	m := reClockRange.FindStringSubmatch(lower)
	if m == nil {
		return "", "", false
	}
	if m[2] == "" && m[3] == "" && m[5] == "" && m[6] == "" {
		return "", "", false
	}

	start, ok1 := clock24(m[1], m[2], m[3])
	end, ok2 := clock24(m[4], m[5], m[6])
	if !ok1 || !ok2 {
		return "", "", false
	}
	return start, end, true
}

// clock24 converts hour/minute/am-pm fragments into zero-padded "HH:MM".
func clock24(hourStr, minStr, meridian string) (string, bool) {
	h, err := strconv.Atoi(hourStr)
	if err != nil || h < 0 || h > 23 {
		return "", false
	}
	switch meridian {
	case "am":
		if h == 12 {
			h = 0
		}
	case "pm":
		if h > 12 {
			return "", false
		}
		if h != 12 {
			h += 12
		}
	}

	m := 0
	if minStr != "" {
		m, err = strconv.Atoi(minStr)
		if err != nil || m < 0 || m > 59 {
			return "", false
		}
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

// -----------------------------------------------------------------------------

// extractNumericRange finds "9-10", "between 9 and 10" or "9 to 10 Rs" and
// assigns it to price or volume bounds. The mcv/volume keywords anywhere in
// the text select volume; otherwise price (mcp/price hint or default).
func extractNumericRange(lower string, f *models.MFilterSpec) {
	var lo, hi float64
	found := false

	if m := reBetween.FindStringSubmatch(lower); m != nil {
		if a, b, ok := parsePair(m[1], m[2]); ok && !yearLike(a) && !yearLike(b) {
			lo, hi, found = a, b, true
		}
	} else {
		for _, m := range reNumRange.FindAllStringSubmatch(lower, -1) {
			a, b, ok := parsePair(m[1], m[2])
			if !ok || yearLike(a) || yearLike(b) {
				continue
			}
			lo, hi, found = a, b, true
			break
		}
	}

	if !found || hi < lo {
		return
	}

	isVolume := reVolumeHint.MatchString(lower) && !rePriceHint.MatchString(lower)
	if isVolume {
		f.VolumeMin = &lo
		f.VolumeMax = &hi
	} else {
		f.PriceMin = &lo
		f.PriceMax = &hi
	}
}

func parsePair(a, b string) (float64, float64, bool) {
	lo, err1 := strconv.ParseFloat(a, 64)
	hi, err2 := strconv.ParseFloat(b, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// yearLike guards the numeric-range rule against consuming date fragments.
func yearLike(v float64) bool {
	return v == float64(int(v)) && int(v) >= utils.MinDatasetYear && int(v) <= utils.MaxDatasetYear
}

// maskDates blanks every numeric date span so the numeric-range rule only
// sees genuine bound tokens. Ambiguous fragments are dropped, never
// repurposed as a filter.
func maskDates(lower string) string {
	b := []byte(lower)
	for _, re := range []*regexp.Regexp{reISODate, reEUDate} {
		for _, loc := range re.FindAllStringIndex(lower, -1) {
			for i := loc[0]; i < loc[1]; i++ {
				b[i] = ' '
			}
		}
	}
	return string(b)
}

// -----------------------------------------------------------------------------

func buildDate(yearStr, monthStr, dayStr string) (time.Time, bool) {
	y, _ := strconv.Atoi(yearStr)
	mo, _ := strconv.Atoi(monthStr)
	d, _ := strconv.Atoi(dayStr)
	if y < utils.MinDatasetYear || y > utils.MaxDatasetYear || mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := utils.Date(y, time.Month(mo), d)
	if t.Day() != d {
		// e.g. Feb 30 normalizes away
		return time.Time{}, false
	}
	return t, true
}

// -----------------------------------------------------------------------------

// synthesizeDateRange derives the half-open [start, end) range from the
// extracted calendar fields. All end dates are exclusive; callers displaying
// an inclusive end date must subtract one day.
//
//	year+quarter    -> [quarter start, +3 months)
//	year+month+day  -> [that day, +1 day)
//	year+month      -> [month start, +1 month)
//	year only       -> [Jan 1, next Jan 1)
//
// A month, day or quarter with no year falls back to utils.DefaultYear.
func synthesizeDateRange(f *models.MFilterSpec, quarter int) {
	year := f.Year
	if year == 0 {
		if f.Month == 0 && f.Day == 0 && quarter == 0 {
			return
		}
		year = utils.DefaultYear
	}

	switch {
	case f.Month != 0 && f.Day != 0:
		start := utils.Date(year, time.Month(f.Month), f.Day)
		f.StartDate = start
		f.EndDate = start.AddDate(0, 0, 1)
	case f.Month != 0:
		start := utils.Date(year, time.Month(f.Month), 1)
		f.StartDate = start
		f.EndDate = start.AddDate(0, 1, 0)
	case quarter != 0:
		start := utils.Date(year, time.Month(3*(quarter-1)+1), 1)
		f.StartDate = start
		f.EndDate = start.AddDate(0, 3, 0)
	default:
		f.StartDate = utils.Date(year, time.January, 1)
		f.EndDate = utils.Date(year+1, time.January, 1)
	}
}

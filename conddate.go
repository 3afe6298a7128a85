package expando

import "time"

// cutoff computes the cutoff timestamp for a CondDate node, per
// spec.md §4.I. now is injected so tests are deterministic; callers
// normally pass time.Now().
//
// Out-of-range fields (e.g. "the 32nd of the current month" when
// subtracting calendar units) are normalised by time.Date itself, which
// already carries values that overflow a field into the next one. That
// is the Go-idiomatic equivalent of the "dedicated helper" spec.md
// §4.I calls for; see DESIGN.md's conddate.go entry.
func cutoff(now time.Time, count int, period byte) time.Time {
	loc := now.Location()
	y, m, d := now.Date()

	switch period {
	case 'y':
		if count == 0 {
			return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		}
		return time.Date(y-count, time.January, 1, 0, 0, 0, 0, loc)
	case 'm':
		if count == 0 {
			return time.Date(y, m, 1, 0, 0, 0, 0, loc)
		}
		return time.Date(y, m-time.Month(count), 1, 0, 0, 0, 0, loc)
	case 'w':
		monday := mostRecentMonday(now)
		if count == 0 {
			return monday
		}
		return monday.AddDate(0, 0, -7*count)
	case 'd':
		midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
		if count == 0 {
			return midnight
		}
		return midnight.AddDate(0, 0, -count)
	case 'H':
		hour := time.Date(y, m, d, now.Hour(), 0, 0, 0, loc)
		if count == 0 {
			return hour
		}
		return hour.Add(-time.Duration(count) * time.Hour)
	case 'M':
		minute := time.Date(y, m, d, now.Hour(), now.Minute(), 0, 0, loc)
		if count == 0 {
			return minute
		}
		return minute.Add(-time.Duration(count) * time.Minute)
	default:
		// unreachable: the parser only ever produces nodes with a
		// period validated against condDatePeriods.
		panic(assertionFailure("invalid CondDate period %q", string(period)))
	}
}

func mostRecentMonday(now time.Time) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	// time.Weekday: Sunday=0 ... Saturday=6; days since Monday.
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

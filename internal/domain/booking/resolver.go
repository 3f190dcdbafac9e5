package booking

// Resolve returns every date eligible for booking under w, in ascending
// calendar order with no duplicates. The window is the half-open interval
// [start, start+7*WeeksAhead): today's own weekday does not start a new
// partial week. If w.Start is zero, today is used.
//
// Resolve is pure: no I/O, no failure modes. An empty weekday set yields
// an empty result.
func Resolve(w Window, today Date) []Date {
	start := w.Start
	if start.IsZero() {
		start = today
	}
	if len(w.Days) == 0 || w.WeeksAhead < 1 {
		return nil
	}
	var out []Date
	for offset := 0; offset < w.WeeksAhead*7; offset++ {
		d := start.AddDays(offset)
		if w.Days.Has(d.Weekday()) {
			out = append(out, d)
		}
	}
	return out
}

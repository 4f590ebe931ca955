package exhibitions

import "time"

// ComputeStatus derives the exhibition status from today's date relative
// to [start, end]. With a single known endpoint the answer degrades to
// whatever that endpoint can still prove; with no dates at all the
// caller's stored status stands (ok=false).
func ComputeStatus(now time.Time, start, end *time.Time) (Status, bool) {
	today := truncate(now)

	switch {
	case start != nil && end != nil:
		s, e := truncate(*start), truncate(*end)
		if today.Before(s) {
			return StatusPlanned, true
		}
		if today.After(e) {
			return StatusFinished, true
		}
		return StatusOngoing, true

	case start != nil:
		if today.Before(truncate(*start)) {
			return StatusPlanned, true
		}
		return StatusOngoing, true

	case end != nil:
		if today.After(truncate(*end)) {
			return StatusFinished, true
		}
		return StatusOngoing, true
	}

	return "", false
}

// EffectiveStatus is ComputeStatus falling back to the stored status.
func (e *Exhibition) EffectiveStatus(now time.Time) Status {
	if s, ok := ComputeStatus(now, e.StartDate, e.EndDate); ok {
		return s
	}
	return e.Status
}

// Overlaps reports whether the exhibition's interval overlaps [start, end].
// A missing endpoint on either side means the overlap cannot be ruled
// out, so it counts as overlapping.
func (e *Exhibition) Overlaps(start, end time.Time) bool {
	if e.StartDate == nil || e.EndDate == nil {
		return true
	}
	s, en := truncate(*e.StartDate), truncate(*e.EndDate)
	qs, qe := truncate(start), truncate(end)
	return !(en.Before(qs) || s.After(qe))
}

// ActiveOn reports whether the exhibition is ongoing on the given day.
func (e *Exhibition) ActiveOn(now time.Time) bool {
	return e.EffectiveStatus(now) == StatusOngoing
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

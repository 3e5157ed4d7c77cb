package model

import "sort"

// TimeWindow is a half-open interval [Start, End) during which a task may
// begin service, expressed in the caller's chosen time unit (seconds are
// conventional but not required).
type TimeWindow struct {
	Start int64
	End   int64
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t int64) bool {
	return t >= w.Start && t <= w.End
}

// validate checks Start <= End.
func (w TimeWindow) validate() error {
	if w.End < w.Start {
		return ErrInvalidTimeWindow
	}

	return nil
}

// ValidateTimeWindows checks that ws is sorted by Start, pairwise disjoint
// (non-overlapping, touching allowed) and individually well-formed. Jobs,
// Vehicles and Breaks all share this contract for their TimeWindows field.
func ValidateTimeWindows(ws []TimeWindow) error {
	for i, w := range ws {
		if err := w.validate(); err != nil {
			return err
		}
		if i > 0 && ws[i-1].End > w.Start {
			return ErrUnorderedTimeWindows
		}
	}

	return nil
}

// EarliestOpenAfter returns the earliest instant >= from at which some
// window in ws is open, and the index of that window. It returns
// (0, -1, false) if no window in ws ends at or after from.
//
// ws must already be sorted (ValidateTimeWindows has been called on it);
// this is a binary search for the first window whose End >= from,
// followed by a linear scan from there for the first window that starts
// at or after from or contains it.
func EarliestOpenAfter(ws []TimeWindow, from int64) (int64, int, bool) {
	idx := sort.Search(len(ws), func(i int) bool { return ws[i].End >= from })
	for i := idx; i < len(ws); i++ {
		if ws[i].Start >= from {
			return ws[i].Start, i, true
		}
		if ws[i].Contains(from) {
			return from, i, true
		}
	}

	return 0, -1, false
}

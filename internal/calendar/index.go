package calendar

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/clinicd/internal/model"
)

// Warning records a data-quality problem found while indexing or
// laying out appointments. Warnings never abort a render.
type Warning struct {
	AppointmentID string
	Reason        string
}

func (w Warning) String() string {
	return fmt.Sprintf("appointment %s: %s", w.AppointmentID, w.Reason)
}

// Index buckets an appointment snapshot by date key for O(1) per-day
// lookup. Input order within a day is preserved.
type Index struct {
	byKey map[string][]model.Appointment
}

// NewIndex builds an index over a snapshot in one O(n) pass.
// Appointments whose date is not a well-formed key are excluded and
// reported, not treated as fatal.
func NewIndex(appointments []model.Appointment) (*Index, []Warning) {
	idx := &Index{byKey: make(map[string][]model.Appointment, len(appointments))}
	var warnings []Warning
	for _, apt := range appointments {
		if _, err := ParseDateKey(apt.Date); err != nil {
			warnings = append(warnings, Warning{
				AppointmentID: apt.ID,
				Reason:        fmt.Sprintf("malformed date %q, excluded from calendar", apt.Date),
			})
			continue
		}
		idx.byKey[apt.Date] = append(idx.byKey[apt.Date], apt)
	}
	return idx, warnings
}

// ForDate returns the appointments whose date key matches the given
// day, in snapshot order.
func (idx *Index) ForDate(day time.Time) []model.Appointment {
	return idx.byKey[DateKey(day)]
}

// ForKey returns the appointments stored under an exact date key.
func (idx *Index) ForKey(key string) []model.Appointment {
	return idx.byKey[key]
}

// Len returns the number of indexed appointments.
func (idx *Index) Len() int {
	n := 0
	for _, bucket := range idx.byKey {
		n += len(bucket)
	}
	return n
}

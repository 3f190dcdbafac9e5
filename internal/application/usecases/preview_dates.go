package usecases

import (
	"time"

	"github.com/example/desk-scheduler/internal/domain/booking"
)

// PreviewDates resolves the dates the current configuration would book,
// without touching the portal.
type PreviewDates struct {
	Window booking.Window
	Now    func() time.Time
}

func (u PreviewDates) Execute() []booking.Date {
	now := time.Now
	if u.Now != nil {
		now = u.Now
	}
	return booking.Resolve(u.Window, booking.DateOf(now()))
}

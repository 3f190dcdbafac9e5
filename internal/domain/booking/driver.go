package booking

import "context"

// Credentials authenticate against the portal. Loading and storage belong
// to the configuration collaborator; the core treats them as opaque.
type Credentials struct {
	Email    string
	Password string
}

// PageState is what the driver observed after navigating to the booking
// surface for a date.
type PageState int

const (
	// PageAlreadyBooked means the date already has a confirmed reservation.
	PageAlreadyBooked PageState = iota
	// PageAvailable means a bookable slot exists and a submission may follow.
	PageAvailable
	// PageUnavailable means no bookable slot exists for the date (fully
	// booked, or outside the portal's own horizon).
	PageUnavailable
	// PageError means the booking surface could not be read.
	PageError
)

func (s PageState) String() string {
	switch s {
	case PageAlreadyBooked:
		return "already_booked"
	case PageAvailable:
		return "available"
	case PageUnavailable:
		return "unavailable"
	case PageError:
		return "error"
	default:
		return "unknown"
	}
}

// Confirmation is the portal's acknowledgement of a submitted booking.
type Confirmation struct {
	Reference string
}

// PortalDriver is the external browser/API collaborator that actually
// talks to the portal. The core never inspects markup; all selector and
// wire detail lives behind this interface. A driver serves exactly one
// sequential session and is released with Close.
type PortalDriver interface {
	Login(ctx context.Context, creds Credentials) error
	OpenBookingPage(ctx context.Context, date Date) (PageState, error)
	SubmitBooking(ctx context.Context) (Confirmation, error)
	Close() error
}

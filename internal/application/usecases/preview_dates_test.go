package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/desk-scheduler/internal/domain/booking"
)

func TestPreviewDates(t *testing.T) {
	uc := PreviewDates{
		Window: booking.Window{
			Days:       booking.NewWeekdaySet(time.Wednesday, time.Thursday),
			WeeksAhead: 2,
		},
		Now: func() time.Time { return time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC) },
	}

	got := uc.Execute()

	want := []booking.Date{
		booking.NewDate(2024, time.January, 3),
		booking.NewDate(2024, time.January, 4),
		booking.NewDate(2024, time.January, 10),
		booking.NewDate(2024, time.January, 11),
	}
	assert.Equal(t, want, got)
}

func TestTestLogin(t *testing.T) {
	t.Run("success opens and releases a session", func(t *testing.T) {
		drv := newScriptedDriver()
		uc := TestLogin{
			NewDriver: func(ctx context.Context) (booking.PortalDriver, error) { return drv, nil },
			Log:       zerolog.Nop(),
		}

		require.NoError(t, uc.Execute(context.Background()))
		assert.True(t, drv.loginCalled)
		assert.Equal(t, 1, drv.closeCalls)
	})

	t.Run("failure surfaces a login error", func(t *testing.T) {
		drv := newScriptedDriver()
		drv.loginErr = errors.New("nope")
		uc := TestLogin{
			NewDriver: func(ctx context.Context) (booking.PortalDriver, error) { return drv, nil },
			Log:       zerolog.Nop(),
		}

		err := uc.Execute(context.Background())
		var le *booking.LoginError
		assert.ErrorAs(t, err, &le)
		assert.Equal(t, 1, drv.closeCalls)
	})
}

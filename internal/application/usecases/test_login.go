package usecases

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/desk-scheduler/internal/application/session"
	"github.com/example/desk-scheduler/internal/domain/booking"
)

// TestLogin opens and immediately closes a session, verifying credentials
// without making any booking attempts.
type TestLogin struct {
	NewDriver   func(ctx context.Context) (booking.PortalDriver, error)
	Credentials booking.Credentials
	Log         zerolog.Logger
}

func (u TestLogin) Execute(ctx context.Context) error {
	if u.NewDriver == nil {
		return fmt.Errorf("driver factory is nil")
	}
	driver, err := u.NewDriver(ctx)
	if err != nil {
		return err
	}
	sess, err := session.Open(ctx, driver, u.Credentials, u.Log)
	if err != nil {
		return err
	}
	return sess.Close()
}

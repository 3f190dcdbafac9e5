// Package portal implements the PortalDriver against the WeWork member
// API. All wire detail lives here; the orchestration core never sees a
// URL or a payload.
package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/desk-scheduler/internal/domain/booking"
)

const (
	defaultTimeout = 20 * time.Second
	defaultUA      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type Config struct {
	BaseURL  string
	Location string
	Timeout  time.Duration
}

// Client drives one booking session over HTTP. Like the browser it
// replaces, it serves exactly one sequential caller: the auth token and
// the pending booking token are plain fields, guarded by the session's
// one-run-at-a-time contract.
type Client struct {
	hc   *http.Client
	base string
	loc  string
	ua   string
	log  zerolog.Logger

	authToken string

	// pendingToken is the bookable-slot token captured by the last
	// OpenBookingPage that saw availability; consumed by SubmitBooking.
	pendingToken string
	pendingDate  booking.Date
}

func New(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		hc:   &http.Client{Timeout: timeout},
		base: strings.TrimRight(cfg.BaseURL, "/"),
		loc:  cfg.Location,
		ua:   defaultUA,
		log:  log,
	}
}

func (c *Client) Login(ctx context.Context, creds booking.Credentials) error {
	payload := map[string]string{"email": creds.Email, "password": creds.Password}
	status, body, err := c.do(ctx, http.MethodPost, "/api/v2/sessions", nil, payload)
	if err != nil {
		return &booking.LoginError{Err: err}
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &booking.LoginError{Err: fmt.Errorf("portal rejected credentials (status=%d)", status)}
	}
	if status >= 300 {
		return &booking.LoginError{Err: fmt.Errorf("unexpected login response (status=%d)", status)}
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &res); err != nil || res.Token == "" {
		return &booking.LoginError{Err: errors.New("login response missing session token")}
	}
	c.authToken = res.Token
	c.log.Debug().Msg("portal session established")
	return nil
}

func (c *Client) OpenBookingPage(ctx context.Context, date booking.Date) (booking.PageState, error) {
	c.pendingToken = ""
	if c.authToken == "" {
		return booking.PageError, booking.Permanent(errors.New("not logged in"))
	}

	query := map[string]string{
		"location": c.loc,
		"date":     date.String(),
	}
	status, body, err := c.do(ctx, http.MethodGet, "/api/v2/desks", query, nil)
	if err != nil {
		return booking.PageError, booking.Transient(err)
	}
	switch {
	case status == http.StatusUnprocessableEntity:
		// Date outside the portal's own bookable horizon.
		return booking.PageUnavailable, nil
	case status == http.StatusUnauthorized:
		return booking.PageError, booking.Permanent(errors.New("portal session expired"))
	case status >= 500:
		return booking.PageError, booking.Transient(fmt.Errorf("portal error (status=%d)", status))
	case status >= 300:
		return booking.PageError, booking.Permanent(fmt.Errorf("unexpected desks response (status=%d)", status))
	}

	var res struct {
		AlreadyBooked  bool   `json:"already_booked"`
		AvailableDesks int    `json:"available_desks"`
		BookingToken   string `json:"booking_token"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return booking.PageError, booking.Permanent(fmt.Errorf("parse desks response: %w", err))
	}

	if res.AlreadyBooked {
		return booking.PageAlreadyBooked, nil
	}
	if res.AvailableDesks == 0 || res.BookingToken == "" {
		return booking.PageUnavailable, nil
	}
	c.pendingToken = res.BookingToken
	c.pendingDate = date
	return booking.PageAvailable, nil
}

func (c *Client) SubmitBooking(ctx context.Context) (booking.Confirmation, error) {
	if c.pendingToken == "" {
		return booking.Confirmation{}, booking.Permanent(errors.New("no pending booking"))
	}
	payload := map[string]string{
		"booking_token": c.pendingToken,
		"date":          c.pendingDate.String(),
	}
	c.pendingToken = ""

	status, body, err := c.do(ctx, http.MethodPost, "/api/v2/reservations", nil, payload)
	if err != nil {
		return booking.Confirmation{}, booking.Transient(err)
	}
	switch {
	case status == http.StatusConflict:
		// Booked out from under us between page load and submission.
		return booking.Confirmation{}, booking.Permanent(errors.New("slot no longer available"))
	case status == http.StatusPaymentRequired:
		// The portal wants credits for this booking; the original tool
		// only ever books free desks.
		return booking.Confirmation{}, booking.Permanent(errors.New("booking would cost credits"))
	case status >= 500:
		return booking.Confirmation{}, booking.Transient(fmt.Errorf("portal error (status=%d)", status))
	case status >= 300:
		return booking.Confirmation{}, booking.Permanent(fmt.Errorf("reservation rejected (status=%d)", status))
	}

	var res struct {
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return booking.Confirmation{}, booking.Permanent(fmt.Errorf("parse reservation response: %w", err))
	}
	if res.Reference == "" {
		// Submission may have landed, but without a confirmation signal
		// the attempt cannot be reported as booked.
		return booking.Confirmation{}, booking.Transient(errors.New("no confirmation reference in response"))
	}
	return booking.Confirmation{Reference: res.Reference}, nil
}

// Close drops the portal session. Best effort: the server expires tokens
// on its own, so a failed logout is not worth surfacing.
func (c *Client) Close() error {
	if c.authToken == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, _, err := c.do(ctx, http.MethodDelete, "/api/v2/sessions", nil, nil); err != nil {
		c.log.Debug().Err(err).Msg("portal logout failed")
	}
	c.authToken = ""
	c.pendingToken = ""
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("user-agent", c.ua)
	req.Header.Set("accept", "application/json")
	if payload != nil {
		req.Header.Set("content-type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("authorization", "Bearer "+c.authToken)
	}
	if query != nil {
		q := req.URL.Query()
		for k, v := range query {
			q.Add(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, b, nil
}

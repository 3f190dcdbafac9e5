package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportFinalize(t *testing.T) {
	now := time.Now()
	d := NewDate(2024, time.January, 3)

	t.Run("all booked or already booked is success", func(t *testing.T) {
		r := NewReport("run-1", now)
		r.Record(d, Booked())
		r.Record(d.AddDays(1), AlreadyBooked())
		r.Finalize(now)
		assert.Equal(t, StatusSuccess, r.Status)
	})

	t.Run("no dates is success", func(t *testing.T) {
		r := NewReport("run-2", now)
		r.Finalize(now)
		assert.Equal(t, StatusSuccess, r.Status)
	})

	t.Run("any failure is partial", func(t *testing.T) {
		r := NewReport("run-3", now)
		r.Record(d, Booked())
		r.Record(d.AddDays(1), Failed(errors.New("boom")))
		r.Finalize(now)
		assert.Equal(t, StatusPartial, r.Status)
	})

	t.Run("unavailable is partial", func(t *testing.T) {
		r := NewReport("run-4", now)
		r.Record(d, Unavailable())
		r.Finalize(now)
		assert.Equal(t, StatusPartial, r.Status)
	})
}

func TestReportCounts(t *testing.T) {
	r := NewReport("run", time.Now())
	d := NewDate(2024, time.January, 3)
	r.Record(d, Booked())
	r.Record(d.AddDays(1), AlreadyBooked())
	r.Record(d.AddDays(2), Unavailable())
	r.Record(d.AddDays(3), Failed(errors.New("boom")))

	ok, notOK := r.Counts()
	assert.Equal(t, 2, ok)
	assert.Equal(t, 2, notOK)
}

func TestOutcomeSettled(t *testing.T) {
	assert.True(t, Booked().Settled())
	assert.True(t, AlreadyBooked().Settled())
	assert.True(t, Unavailable().Settled())
	assert.False(t, Failed(errors.New("boom")).Settled())
}

package reading_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashkit/internal/reading"
)

func newLog(opts ...reading.Option) *reading.Log {
	return reading.NewLog(
		reading.NewBook("Infinite Jest", 1079),
		reading.Deadline{StartPage: 100, Page: 200},
		opts...,
	)
}

func TestNewBook(t *testing.T) {
	t.Parallel()

	b := reading.NewBook("Infinite Summer", 1079)
	assert.Equal(t, "infinite-summer", b.Slug)
	assert.Equal(t, 1079, b.Pages)
}

func TestDeadline(t *testing.T) {
	t.Parallel()

	d := reading.Deadline{StartPage: 100, Page: 200}
	assert.Equal(t, -1, d.Compare(99))
	assert.Equal(t, 0, d.Compare(100))
	assert.Equal(t, 0, d.Compare(200))
	assert.Equal(t, 1, d.Compare(201))
	assert.Equal(t, "Page 200", d.String())

	d.EndsOn = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Page 200 by March 01, 2026", d.String())
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    int
		wantErr error
	}{
		{raw: "42", want: 42},
		{raw: "p. 1,079", want: 1079},
		{raw: " 7 ", want: 7},
		{raw: "", wantErr: reading.ErrNoPage},
		{raw: "none", wantErr: reading.ErrNoPage},
		{raw: "99999999999999999999999", wantErr: reading.ErrPageOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := reading.ParsePage(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLog_Record(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	l := newLog(reading.WithClock(func() time.Time { return now }))

	_, err := l.Record(0)
	require.ErrorIs(t, err, reading.ErrNoPage)
	assert.Equal(t, "Please specify a page.", l.Message(err))

	_, err = l.Record(1080)
	require.ErrorIs(t, err, reading.ErrPageOutOfRange)
	assert.Equal(t, "Infinite Jest only has 1079 pages.", l.Message(err))

	e, err := l.Record(150)
	require.NoError(t, err)
	assert.Equal(t, reading.Entry{Page: 150, CreatedAt: now}, e)
	assert.Equal(t, []int{0}, l.Graph())
}

func TestLog_GraphAndStatus(t *testing.T) {
	t.Parallel()

	l := newLog()
	assert.Equal(t, reading.StatusBehind, l.Status())
	assert.Empty(t, l.GraphString())
	assert.Zero(t, l.Percent())

	for _, p := range []int{50, 150, 250} {
		_, err := l.Record(p)
		require.NoError(t, err)
	}

	assert.Equal(t, []int{-1, 0, 1}, l.Graph())
	assert.Equal(t, "-1,0,1", l.GraphString())
	assert.Equal(t, reading.StatusAhead, l.Status())
	assert.InDelta(t, 23.17, l.Percent(), 0.01)

	_, err := l.Record(120)
	require.NoError(t, err)
	assert.Equal(t, reading.StatusOnTrack, l.Status())
}

func TestLog_Recent(t *testing.T) {
	t.Parallel()

	l := newLog()
	for _, p := range []int{1, 2, 3} {
		_, err := l.Record(p)
		require.NoError(t, err)
	}

	recent := l.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, 3, recent[0].Page)
	assert.Equal(t, 2, recent[1].Page)
	assert.Len(t, l.Recent(10), 3)
}

func TestLog_ConcurrentRecord(t *testing.T) {
	t.Parallel()

	l := newLog()
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			_, _ = l.Record(page)
			_ = l.Graph()
		}(i)
	}
	wg.Wait()

	assert.Len(t, l.Graph(), 50)
}

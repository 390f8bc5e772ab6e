package ubs

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"hargaemas/internal/gold"
	"hargaemas/internal/logger"
)

// SeriesEntry is one chart datapoint: an epoch-millisecond timestamp plus
// open, high, low and close values.
type SeriesEntry struct {
	UnixMilli int64
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
}

// Date resolves the entry timestamp to a calendar date in loc, anchored at
// midnight.
func (e SeriesEntry) Date(loc *time.Location) time.Time {
	t := time.UnixMilli(e.UnixMilli).In(loc)
	return midnight(t, loc)
}

// Series is one named price series as returned by the chart endpoint.
type Series struct {
	Name    string
	Entries []SeriesEntry
}

// Observation is a buyback price resolved to its observation date. The
// price carries the entry's close value.
type Observation struct {
	Price decimal.Decimal
	Date  time.Time
}

// ExtractLatest inspects only the chronologically last entry of the first
// series and accepts it when its date in loc equals target. A mismatch
// yields ErrStaleData: the window ends "today", so the expected observation
// has simply not posted yet.
func ExtractLatest(series []Series, target time.Time, loc *time.Location) (Observation, error) {
	if len(series) == 0 || len(series[0].Entries) == 0 {
		return Observation{}, ErrEmptySeries
	}
	entries := series[0].Entries
	last := entries[len(entries)-1]

	date := last.Date(loc)
	want := midnight(target, loc)
	if !date.Equal(want) {
		return Observation{}, fmt.Errorf("%w: newest entry is %s, want %s",
			ErrStaleData, date.Format(gold.DateFormat), want.Format(gold.DateFormat))
	}

	logger.Infof("harga buyback %s: %s", date.Format(gold.DateFormat), last.Close.String())
	return Observation{Price: last.Close, Date: date}, nil
}

// ExtractRange keeps every entry of the first series whose date in loc
// falls inside [start, end], both ends inclusive, preserving series order.
func ExtractRange(series []Series, start, end time.Time, loc *time.Location) ([]Observation, error) {
	if len(series) == 0 || len(series[0].Entries) == 0 {
		return nil, ErrEmptySeries
	}
	from := midnight(start, loc)
	to := midnight(end, loc)

	var out []Observation
	for _, entry := range series[0].Entries {
		date := entry.Date(loc)
		if date.Before(from) || date.After(to) {
			continue
		}
		out = append(out, Observation{Price: entry.Close, Date: date})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: between %s and %s", ErrNoEntriesInRange,
			from.Format(gold.DateFormat), to.Format(gold.DateFormat))
	}

	logger.Infof("found %d entries between %s and %s",
		len(out), from.Format(gold.DateFormat), to.Format(gold.DateFormat))
	return out, nil
}

func midnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

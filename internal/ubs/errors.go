package ubs

import "errors"

var (
	// ErrNetwork covers transport failures, non-2xx statuses and
	// unparseable payloads. Fetches are single-shot, never retried.
	ErrNetwork = errors.New("ubs: fetch failed")

	// ErrEmptySeries means the endpoint answered without any datapoint.
	ErrEmptySeries = errors.New("ubs: empty series")

	// ErrStaleData means the newest entry does not cover the target date.
	// The chart is a rolling window ending today, so this usually means
	// today's observation has not posted yet.
	ErrStaleData = errors.New("ubs: latest entry is stale")

	// ErrNoEntriesInRange means no datapoint fell inside the requested
	// date range.
	ErrNoEntriesInRange = errors.New("ubs: no entries in range")
)

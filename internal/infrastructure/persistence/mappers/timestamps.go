package mappers

import "time"

// Timestamps are stored as UTC unix milliseconds.

func fromMilli(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func toMilliPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromMilliPtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := fromMilli(*ms)
	return &t
}

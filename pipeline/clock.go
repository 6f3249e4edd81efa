package pipeline

import "time"

// TimeLayout is the timestamp format of the created field.
const TimeLayout = "2006-01-02T15:04:05Z"

// Clock supplies the document timestamp.
type Clock interface {
	Now() string
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() string {
	return time.Now().UTC().Format(TimeLayout)
}

// FixedClock always returns the same timestamp.
type FixedClock string

func (c FixedClock) Now() string {
	return string(c)
}

package utils

import "time"

const MonthLabelLayout = "Jan 2006"

// MonthBucket is one calendar month. End is the last second of the month;
// queries use Start <= t < Next so sub-second timestamps in that last second
// still land in the bucket.
type MonthBucket struct {
	Label string
	Start time.Time
	End   time.Time
	Next  time.Time
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// TrailingMonths returns the last `months` calendar months up to and including
// the month of now, oldest first. months <= 0 yields an empty slice.
func TrailingMonths(now time.Time, months int) []MonthBucket {
	if months <= 0 {
		return []MonthBucket{}
	}
	current := StartOfMonth(now)
	buckets := make([]MonthBucket, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := current.AddDate(0, -i, 0)
		next := start.AddDate(0, 1, 0)
		buckets = append(buckets, MonthBucket{
			Label: start.Format(MonthLabelLayout),
			Start: start,
			End:   next.Add(-time.Second),
			Next:  next,
		})
	}
	return buckets
}

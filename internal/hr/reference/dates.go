// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"strings"
	"time"
)

const displayDate = "02/01/2006"

// isoLayouts are tried in order before the manual split.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

/*
FormatDate renders a date string as DD/MM/YYYY.

Description: ISO-8601 parsing is tried first. Failing that a value shaped like
YYYY-MM-DD is split by hand, which keeps impossible dates such as 2024-02-30
readable. Anything else is returned unchanged.
*/
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(displayDate)
		}
	}

	datePart, _, _ := strings.Cut(value, "T")
	parts := strings.Split(datePart, "-")
	if len(parts) == 3 && len(parts[0]) == 4 && isDigits(parts[0]) && isDigits(parts[1]) && isDigits(parts[2]) {
		return parts[2] + "/" + parts[1] + "/" + parts[0]
	}

	return value
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// formatTimestamp renders a lifecycle timestamp in loc, or "Not provided".
func formatTimestamp(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return textNotProvided
	}
	return t.In(loc).Format(displayDate)
}

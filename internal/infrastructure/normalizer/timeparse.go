package normalizer

import (
	"time"

	"go.uber.org/zap"
)

// Marketplace APIs in this region report either epoch seconds or one of a
// small set of ISO-8601-like strings, always in Indochina time (UTC+7).

// indochinaZone is the fixed offset used for platform timestamps without an
// explicit zone. The platforms never report DST; a fixed zone keeps parsing
// deterministic.
var indochinaZone = time.FixedZone("UTC+7", 7*60*60)

// timeLayouts are tried in priority order. Layouts carrying their own zone
// come first so an explicit offset is never overridden.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// TimeFromEpoch converts platform epoch seconds into a time in the fixed
// platform zone. Zero and negative inputs yield the zero time.
func TimeFromEpoch(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).In(indochinaZone)
}

// ParseTime tries each candidate layout in order and returns the first
// match. The boolean is false when no layout matched; the caller treats the
// field as absent and keeps processing. The unparsable value is logged once
// at Warn by the caller via LogUnparsable.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, indochinaZone); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LogUnparsable records a timestamp that matched no candidate layout
func LogUnparsable(logger *zap.Logger, field, value string) {
	if logger == nil {
		return
	}
	logger.Warn("Unparsable platform timestamp, field treated as absent",
		zap.String("field", field),
		zap.String("value", value),
	)
}

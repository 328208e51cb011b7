package align

import (
	"fmt"
	"strings"
)

// sampleLimit bounds how many offending entries an AlignmentError carries.
const sampleLimit = 10

// ConfigurationError reports a missing or invalid battery parameter. Fatal:
// surfaced to the caller before any solve attempt.
type ConfigurationError struct {
	Param  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("missing battery parameter: %s", e.Param)
	}
	return fmt.Sprintf("battery parameter %q: %s", e.Param, e.Reason)
}

// AlignmentError reports a timestamp parse failure or a horizon mismatch
// between the two markets, with a bounded sample of offending entries.
type AlignmentError struct {
	Reason  string
	Samples []string
}

func (e *AlignmentError) Error() string {
	if len(e.Samples) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Samples, ", "))
}

// boundedSample truncates entries to sampleLimit, noting how many were dropped.
func boundedSample(entries []string) []string {
	if len(entries) <= sampleLimit {
		return entries
	}
	out := make([]string, sampleLimit, sampleLimit+1)
	copy(out, entries[:sampleLimit])
	return append(out, fmt.Sprintf("... and %d more", len(entries)-sampleLimit))
}

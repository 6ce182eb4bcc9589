package domain

import (
	"reflect"
	"strings"
	"time"
)

// Response is the recorded answer for one question.
// A save always overwrites both value and comment; there is no merging
// of stale comments from earlier saves.
type Response struct {
	Value     any       `json:"value"`
	Comment   string    `json:"comment,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Answered reports whether the response carries a usable value.
func (r Response) Answered() bool {
	return IsAnswered(r.Value)
}

// IsAnswered is the canonical "answered" rule: the value is non-nil,
// non-empty if it is an array, and non-blank after trimming if it is a
// string. Every place that checks "answered" (required validation, the
// "answered" rule type, progress display) must go through this function;
// divergent reimplementations are a known correctness hazard.
func IsAnswered(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) != ""
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return rv.Len() > 0
	}
	return true
}

// ResponseSet maps question ids to their recorded responses.
type ResponseSet map[string]Response

// Clone returns an independent copy of the set.
func (rs ResponseSet) Clone() ResponseSet {
	out := make(ResponseSet, len(rs))
	for id, r := range rs {
		out[id] = r
	}
	return out
}

// Answered reports whether a usable response exists for the question.
func (rs ResponseSet) Answered(questionID string) bool {
	r, ok := rs[questionID]
	return ok && r.Answered()
}

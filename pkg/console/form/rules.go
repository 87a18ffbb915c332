package form

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Required fails when the field is empty after trimming.
func Required[T any](get func(T) string, message string) Rule[T] {
	return func(values T) string {
		if strings.TrimSpace(get(values)) == "" {
			return message
		}
		return ""
	}
}

// MinLen fails when a non-empty field is shorter than n characters.
// Emptiness is left to Required so the two messages stay distinct.
func MinLen[T any](get func(T) string, n int, message string) Rule[T] {
	return func(values T) string {
		v := strings.TrimSpace(get(values))
		if v != "" && len([]rune(v)) < n {
			return message
		}
		return ""
	}
}

// Email fails when a non-empty field is not a plausible email address.
func Email[T any](get func(T) string, message string) Rule[T] {
	return func(values T) string {
		v := strings.TrimSpace(get(values))
		if v != "" && !emailPattern.MatchString(v) {
			return message
		}
		return ""
	}
}

// URL fails when a non-empty field is not an absolute http(s) URL.
func URL[T any](get func(T) string, message string) Rule[T] {
	return func(values T) string {
		v := strings.TrimSpace(get(values))
		if v == "" {
			return ""
		}
		u, err := url.Parse(v)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return message
		}
		return ""
	}
}

// GreaterThan fails when the numeric field is not strictly above bound.
func GreaterThan[T any](get func(T) float64, bound float64, message string) Rule[T] {
	return func(values T) string {
		if !(get(values) > bound) {
			return message
		}
		return ""
	}
}

// DateOrder fails when both dates are set and end falls before start.
// Dates use the YYYY-MM-DD form the console's date inputs produce.
func DateOrder[T any](start, end func(T) string, message string) Rule[T] {
	return func(values T) string {
		s, e := strings.TrimSpace(start(values)), strings.TrimSpace(end(values))
		if s == "" || e == "" {
			return ""
		}
		startAt, err := time.Parse(dateLayout, s)
		if err != nil {
			return ""
		}
		endAt, err := time.Parse(dateLayout, e)
		if err != nil {
			return ""
		}
		if endAt.Before(startAt) {
			return message
		}
		return ""
	}
}

// TimeOrder fails when both HH:MM times are set and end is not after start.
func TimeOrder[T any](start, end func(T) string, message string) Rule[T] {
	return func(values T) string {
		s, e := strings.TrimSpace(start(values)), strings.TrimSpace(end(values))
		if s == "" || e == "" {
			return ""
		}
		startAt, err := time.Parse(timeLayout, s)
		if err != nil {
			return ""
		}
		endAt, err := time.Parse(timeLayout, e)
		if err != nil {
			return ""
		}
		if !endAt.After(startAt) {
			return message
		}
		return ""
	}
}

// RequiredIf fails when the sibling flag is set and the field is empty.
func RequiredIf[T any](flag func(T) bool, get func(T) string, message string) Rule[T] {
	return func(values T) string {
		if flag(values) && strings.TrimSpace(get(values)) == "" {
			return message
		}
		return ""
	}
}

// Custom wraps an arbitrary predicate into a rule.
func Custom[T any](check func(T) bool, message string) Rule[T] {
	return func(values T) string {
		if !check(values) {
			return message
		}
		return ""
	}
}

// MinLenMessage builds the conventional "at least N characters" message.
func MinLenMessage(label string, n int) string {
	return fmt.Sprintf("%s must be at least %d characters", label, n)
}

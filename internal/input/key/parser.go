package key

import "strings"

// ParseList splits a whitespace-separated list, dropping empty entries.
// A list with no separators yields a single element.
func ParseList(s string) []string {
	return strings.Fields(s)
}

// ParseTypes expands each argument as a whitespace-separated list of event
// types and concatenates the results in order.
func ParseTypes(lists ...string) []EventType {
	var out []EventType
	for _, l := range lists {
		for _, f := range ParseList(l) {
			out = append(out, EventType(f))
		}
	}
	return out
}

// ParseKeys expands each argument as a whitespace-separated list of logical
// keys and concatenates the results in order.
func ParseKeys(lists ...string) []Logical {
	var out []Logical
	for _, l := range lists {
		for _, f := range ParseList(l) {
			out = append(out, Logical(f))
		}
	}
	return out
}

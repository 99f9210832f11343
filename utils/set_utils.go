package utils

import "strings"

// Difference returns the elements of a that are not in b, preserving the order of a.
func Difference(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	out := make([]string, 0)
	for _, s := range a {
		if !inB[s] {
			out = append(out, s)
		}
	}
	return out
}

// Intersection returns the elements of a that are also in b, preserving the order of a.
func Intersection(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	out := make([]string, 0)
	for _, s := range a {
		if inB[s] {
			out = append(out, s)
		}
	}
	return out
}

// Overlaps reports whether a and b share at least one element.
func Overlaps(a, b []string) bool {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	for _, s := range a {
		if inB[s] {
			return true
		}
	}
	return false
}

// NormalizeList trims whitespace, drops empty entries and deduplicates,
// preserving first-seen order.
func NormalizeList(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(item)
		if s == "" || seen[s] {
			continue
		}
		out = append(out, s)
		seen[s] = true
	}
	return out
}

// SplitCommaList parses a comma-separated string into a normalized list.
func SplitCommaList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	return NormalizeList(parts)
}

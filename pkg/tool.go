package pkg

import "strings"

// Contains check source have target
func Contains(slice []string, val string) bool {
	for _, v := range slice {
		if v == val {
			return true
		}
	}
	return false
}

// LowerAll lower-case every element of a copy of the slice
func LowerAll(slice []string) []string {
	out := make([]string, len(slice))
	for i, v := range slice {
		out[i] = strings.ToLower(v)
	}
	return out
}

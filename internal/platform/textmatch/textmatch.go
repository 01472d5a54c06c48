// Package textmatch implements the case-insensitive name matching used by
// routine search.
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// ContainsFold reports whether needle occurs in haystack under Unicode case
// folding. An empty needle matches everything.
func ContainsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(folder.String(haystack), folder.String(needle))
}

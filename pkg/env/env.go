// Package env reads process environment variables directly. Almost all
// configuration flows through envconfig; these helpers cover the few
// knobs consulted before config is loaded.
package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of key, or fallback when the variable
// is unset or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

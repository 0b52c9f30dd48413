package file

import (
	"fmt"
	"strings"
)

// FirstExisting returns the first candidate path that names an existing file.
// Empty candidates are skipped. When none exist, the error lists everything
// that was looked for so the operator can fix the data layout.
func FirstExisting(paths ...string) (string, error) {
	var tried []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if Exists(p) {
			return p, nil
		}
		tried = append(tried, p)
	}
	if len(tried) == 0 {
		return "", fmt.Errorf("no candidate paths given")
	}
	return "", fmt.Errorf("no input file found; looked for %s", strings.Join(tried, " and "))
}

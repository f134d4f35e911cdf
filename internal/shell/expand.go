package shell

import (
	"strconv"
	"strings"
)

// PIDMarker is replaced by the shell's process id in every token.
const PIDMarker = "$$"

// Expand replaces each non-overlapping PIDMarker in s, left to right, with
// pid in decimal. Substituted text is never rescanned.
func Expand(s string, pid int) string {
	if !strings.Contains(s, PIDMarker) {
		return s
	}
	return strings.ReplaceAll(s, PIDMarker, strconv.Itoa(pid))
}

package utils

import "strings"

// Assert panics when condition does not hold. The message parts are
// joined with spaces.
func Assert(condition bool, message ...string) {
	if condition {
		return
	}
	msg := "assertion failed"
	if len(message) > 0 {
		msg += ": " + strings.Join(message, " ")
	}
	panic(msg)
}

package logging

import "fmt"

// MaxFieldLogLength caps how much of any user-supplied string may appear
// in a log line.
const MaxFieldLogLength = 32

// NotePreview renders a free-text note for logging without exposing its
// content. Notes hold personal health detail, so only the length is shown.
func NotePreview(notes *string) string {
	if notes == nil || *notes == "" {
		return ""
	}
	return fmt.Sprintf("[%d chars]", len(*notes))
}

// TruncateField shortens a user-supplied value, like a medication name,
// to a loggable length.
func TruncateField(s string) string {
	if len(s) <= MaxFieldLogLength {
		return s
	}
	return s[:MaxFieldLogLength] + "..."
}

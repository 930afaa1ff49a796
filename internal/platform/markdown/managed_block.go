package markdown

import "strings"

// ManagedBlock is a marker-delimited region of a note that sparks regenerates.
// Text outside the markers belongs to the user and is preserved.
type ManagedBlock struct {
	Start string
	End   string
}

func (b ManagedBlock) Apply(body, generated string) string {
	block := b.Start + "\n" + generated + "\n" + b.End
	start := strings.Index(body, b.Start)
	end := strings.Index(body, b.End)
	if start >= 0 && end > start {
		return body[:start] + block + body[end+len(b.End):]
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}

// Package extract derives searchable plain text from binary document
// payloads. Extraction is strictly best-effort: any failure means "no text",
// never an error, and the stored blob is untouched either way.
package extract

import (
	"log/slog"
	"strings"
)

// Text dispatches on the filename suffix and returns whatever plain text
// could be recovered. The pdf reader is known to panic on malformed input,
// so the whole step runs behind a recover boundary.
func Text(name string, data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("text extraction panicked", "file", name, "cause", r)
			text = ""
		}
	}()

	var (
		out string
		err error
	)
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".docx"):
		out, err = fromDocx(data)
	case strings.HasSuffix(strings.ToLower(name), ".pdf"):
		out, err = fromPDF(data)
	default:
		return ""
	}
	if err != nil {
		slog.Warn("text extraction failed", "file", name, "error", err)
		return ""
	}
	return strings.TrimSpace(out)
}

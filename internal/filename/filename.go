// Package filename normalizes uploaded filenames and reconciles missing
// extensions against the declared content type.
package filename

import (
	"mime"
	"path/filepath"
	"strings"
)

// DefaultName is used when an upload arrives without any filename at all.
const DefaultName = "upload"

// preferredExt pins the extension for common content types; the mime package
// returns candidates in alphabetical order, which picks ".jfif" for JPEGs.
var preferredExt = map[string]string{
	"application/pdf": ".pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/msword":       ".doc",
	"application/octet-stream": "",
	"audio/mpeg":               ".mp3",
	"audio/wav":                ".wav",
	"image/gif":                ".gif",
	"image/jpeg":               ".jpg",
	"image/png":                ".png",
	"text/plain":               ".txt",
	"video/mp4":                ".mp4",
}

// Resolved carries the three names the note layer records independently: the
// working name handed to the blob store, the filename exactly as uploaded,
// and the derived extension without its leading dot.
type Resolved struct {
	Working   string
	Original  string
	Extension string
}

// Resolve normalizes an uploaded filename. A missing extension is guessed
// from the content type and appended to the working name; an unguessable one
// leaves the name extension-less, which is not an error.
func Resolve(name, contentType string) Resolved {
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	r := Resolved{Working: name, Original: name}
	ext := filepath.Ext(name)
	if ext == "" {
		ext = GuessExtension(contentType)
		if ext != "" {
			r.Working = name + ext
		}
	}
	r.Extension = strings.TrimPrefix(ext, ".")
	return r
}

// GuessExtension maps a MIME content type to a file extension including the
// leading dot, or "" when nothing sensible is known.
func GuessExtension(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if ext, ok := preferredExt[mediaType]; ok {
		return ext
	}
	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}

// Missing reports whether the stored name still lacks an extension and, if
// so, returns the one to append: the recorded extension wins over a fresh
// content-type guess.
func Missing(stored, recordedExt, contentType string) (string, bool) {
	if filepath.Ext(stored) != "" {
		return "", false
	}
	if recordedExt != "" {
		return "." + strings.TrimPrefix(recordedExt, "."), true
	}
	if ext := GuessExtension(contentType); ext != "" {
		return ext, true
	}
	return "", false
}

package middleware

import (
	"path/filepath"
	"strings"
)

// Upload input sanitization utilities

// audioExtensions is the set of extensions we will carry through to temp
// file names and retention keys. Anything else falls back to .bin.
var audioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".mp4":  true,
	".aac":  true,
	".ogg":  true,
	".oga":  true,
	".opus": true,
	".flac": true,
	".webm": true,
	".amr":  true,
	".3gp":  true,
}

// SanitizeFilename strips path components and control characters from a
// client-supplied file name. The result is for logging and retention keys
// only; it is never used to locate a file.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\x00", "")

	var b strings.Builder
	for _, r := range name {
		if r >= 32 && r != '/' && r != '\\' {
			b.WriteRune(r)
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "upload"
	}
	return cleaned
}

// SafeExtension returns a whitelisted audio extension for the given file
// name, or ".bin" when the extension is unknown or missing.
func SafeExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(SanitizeFilename(name)))
	if audioExtensions[ext] {
		return ext
	}
	return ".bin"
}

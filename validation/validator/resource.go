package validator

import (
	"mime"
	"path/filepath"
	"strings"
)

var audioExts = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".webm": "audio/webm",
	".mp4":  "audio/mp4",
}

var contentTypeExts = map[string]string{
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/wav":   ".wav",
	"audio/x-wav": ".wav",
	"audio/ogg":   ".ogg",
	"audio/mp4":   ".m4a",
	"audio/flac":  ".flac",
	"audio/webm":  ".webm",
	"video/webm":  ".webm",
}

// IsAudioFile checks if a file is an audio based on its name/extension
func IsAudioFile(filename string) bool {
	_, ok := audioExts[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// IsAudioContentType reports whether a Content-Type header names audio.
func IsAudioContentType(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "audio/") || mt == "video/webm"
}

// AudioExtension returns a file extension for contentType, defaulting to .webm
// which is what browser recorders produce.
func AudioExtension(contentType string) string {
	mt, _, _ := mime.ParseMediaType(contentType)
	if ext, ok := contentTypeExts[mt]; ok {
		return ext
	}
	return ".webm"
}

// Package audio validates candidate audio uploads before they are forwarded
// to the transcription model.
package audio

import (
	"bytes"
	"errors"
	"mime"

	"github.com/go-audio/wav"
)

// MaxUploadBytes caps the accepted audio upload size.
const MaxUploadBytes = 10 << 20 // 10MB

// allowed are the upload content types the browser recorder can produce.
var allowed = map[string]bool{
	"audio/webm": true,
	"audio/mp3":  true,
	"audio/mpeg": true,
	"audio/wav":  true,
	"audio/ogg":  true,
}

// Allowed reports whether contentType (possibly carrying parameters such as
// "audio/webm;codecs=opus") is an accepted audio type.
func Allowed(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return allowed[mediaType]
}

// ValidateWAV rejects uploads that declare audio/wav but do not carry a
// decodable WAV header. The other container formats are passed to the model
// as-is; WAV is the only one with a cheap local check.
func ValidateWAV(data []byte) error {
	d := wav.NewDecoder(bytes.NewReader(data))
	d.ReadInfo()
	if !d.IsValidFile() {
		return errors.New("not a valid wav file")
	}
	return nil
}

// IsWAV reports whether contentType declares a WAV payload.
func IsWAV(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "audio/wav"
}

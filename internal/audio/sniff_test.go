package audio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		contentType string
		want        bool
	}{
		{"audio/webm", true},
		{"audio/webm;codecs=opus", true},
		{"audio/mp3", true},
		{"audio/mpeg", true},
		{"audio/wav", true},
		{"audio/ogg", true},
		{"video/mp4", false},
		{"application/json", false},
		{"text/plain", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Allowed(tc.contentType), "content type %q", tc.contentType)
	}
}

// minimalWAV builds a 44-byte PCM WAV header with no samples.
func minimalWAV(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	le := binary.LittleEndian

	buf.WriteString("RIFF")
	require.NoError(t, binary.Write(&buf, le, uint32(36))) // chunk size
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	require.NoError(t, binary.Write(&buf, le, uint32(16)))    // fmt chunk size
	require.NoError(t, binary.Write(&buf, le, uint16(1)))     // PCM
	require.NoError(t, binary.Write(&buf, le, uint16(1)))     // mono
	require.NoError(t, binary.Write(&buf, le, uint32(16000))) // sample rate
	require.NoError(t, binary.Write(&buf, le, uint32(32000))) // byte rate
	require.NoError(t, binary.Write(&buf, le, uint16(2)))     // block align
	require.NoError(t, binary.Write(&buf, le, uint16(16)))    // bit depth

	buf.WriteString("data")
	require.NoError(t, binary.Write(&buf, le, uint32(0)))

	return buf.Bytes()
}

func TestValidateWAV(t *testing.T) {
	assert.NoError(t, ValidateWAV(minimalWAV(t)))
	assert.Error(t, ValidateWAV([]byte("definitely not a wav file")))
	assert.Error(t, ValidateWAV(nil))
}

func TestIsWAV(t *testing.T) {
	assert.True(t, IsWAV("audio/wav"))
	assert.False(t, IsWAV("audio/webm"))
	assert.False(t, IsWAV(""))
}

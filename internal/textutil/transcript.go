package textutil

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUTF8 reports transcript bytes that are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// CleanTranscript validates raw transcript bytes as UTF-8 and strips leading
// and trailing whitespace. When nfc is set the result is NFC-normalized.
func CleanTranscript(raw []byte, nfc bool) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	text := strings.TrimSpace(string(raw))
	if nfc {
		text = norm.NFC.String(text)
	}
	return text, nil
}

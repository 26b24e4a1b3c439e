package corpus

import (
	"regexp"
	"strconv"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

var (
	// The prefix form accepts trailing characters after the extension, e.g.
	// G_1991_M_26_st.wav.WAV; the strict form requires the name to end there.
	filenamePattern       = regexp.MustCompile(`^G_(\d{4})_([MF])_(\d+)_st\.(WAV|wav)`)
	strictFilenamePattern = regexp.MustCompile(`^G_(\d{4})_([MF])_(\d+)_st\.(WAV|wav)$`)
)

// FilenameInfo holds the speaker attributes encoded in a recording name.
type FilenameInfo struct {
	Speaker    string
	GenderCode string
	Gender     string
	ID         string
	BirthYear  int
	Age        int
}

// ParseFilename extracts speaker attributes from a bare file name. Age is
// referenceYear minus the birth year. ok is false when the name does not
// follow the grammar; no partial info is returned in that case.
func ParseFilename(name string, referenceYear int, strict bool) (FilenameInfo, bool) {
	pattern := filenamePattern
	if strict {
		pattern = strictFilenamePattern
	}
	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return FilenameInfo{}, false
	}

	birthYear, err := strconv.Atoi(m[1])
	if err != nil {
		return FilenameInfo{}, false
	}
	code, id := m[2], m[3]

	gender := GenderFemale
	if code == "M" {
		gender = GenderMale
	}

	return FilenameInfo{
		Speaker:    code + "_" + id,
		GenderCode: code,
		Gender:     gender,
		ID:         id,
		BirthYear:  birthYear,
		Age:        referenceYear - birthYear,
	}, true
}

// isAudioName reports whether name carries one of the two accepted audio
// extensions. Other casings such as .Wav are not scanned.
func isAudioName(name string) bool {
	n := len(name)
	if n < 4 {
		return false
	}
	ext := name[n-4:]
	return ext == ".WAV" || ext == ".wav"
}

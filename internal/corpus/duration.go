package corpus

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

var errInvalidWAV = errors.New("not a valid WAV file")

// ProbeWAVDuration reads the RIFF headers of a PCM WAV file and returns its
// playback length in seconds, computed from the data chunk size. Sample data
// is not decoded.
func ProbeWAVDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, errInvalidWAV
	}
	if err := dec.FwdToPCM(); err != nil {
		return 0, fmt.Errorf("locate PCM data: %w", err)
	}
	bytesPerSecond := float64(dec.SampleRate) * float64(dec.NumChans) * float64(dec.BitDepth) / 8
	if bytesPerSecond <= 0 {
		return 0, fmt.Errorf("%w: zero byte rate", errInvalidWAV)
	}
	return float64(dec.PCMSize) / bytesPerSecond, nil
}

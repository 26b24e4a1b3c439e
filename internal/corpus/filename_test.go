package corpus_test

import (
	"fmt"
	"testing"

	"corpusmeta/internal/corpus"
)

func TestParseFilenameMale(t *testing.T) {
	info, ok := corpus.ParseFilename("G_1991_M_26_st.WAV", 2025, false)
	if !ok {
		t.Fatal("expected match")
	}
	if info.Speaker != "M_26" || info.Gender != "male" || info.BirthYear != 1991 || info.Age != 34 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestParseFilenameFemaleKeepsRawID(t *testing.T) {
	info, ok := corpus.ParseFilename("G_1988_F_07_st.wav", 2025, false)
	if !ok {
		t.Fatal("expected match")
	}
	if info.Speaker != "F_07" || info.ID != "07" || info.Gender != "female" || info.Age != 37 {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestParseFilenameRejects(t *testing.T) {
	names := []string{
		"random_file.WAV",
		"G_91_M_26_st.WAV",
		"G_1991_X_26_st.WAV",
		"G_1991_m_26_st.WAV",
		"G_1991_M__st.WAV",
		"G_1991_M_26_st.Wav",
		"G_1991_M_26.WAV",
		"xG_1991_M_26_st.WAV",
		"G_1991_M_26_stxWAV",
	}
	for _, name := range names {
		if info, ok := corpus.ParseFilename(name, 2025, false); ok {
			t.Fatalf("expected %q to be rejected, got %+v", name, info)
		}
	}
}

func TestParseFilenamePrefixVersusStrict(t *testing.T) {
	name := "G_1991_M_26_st.wav.WAV"
	if _, ok := corpus.ParseFilename(name, 2025, false); !ok {
		t.Fatalf("prefix matching should accept trailing characters in %q", name)
	}
	if _, ok := corpus.ParseFilename(name, 2025, true); ok {
		t.Fatalf("strict matching should reject trailing characters in %q", name)
	}
	if _, ok := corpus.ParseFilename("G_1991_M_26_st.WAV", 2025, true); !ok {
		t.Fatal("strict matching should accept an exact name")
	}
}

func TestParseFilenameInvariants(t *testing.T) {
	for _, ref := range []int{2025, 2030} {
		for year := 1940; year <= 2010; year += 7 {
			for _, code := range []string{"M", "F"} {
				name := fmt.Sprintf("G_%d_%s_%d_st.WAV", year, code, year%97)
				info, ok := corpus.ParseFilename(name, ref, true)
				if !ok {
					t.Fatalf("expected %q to match", name)
				}
				if info.Age+info.BirthYear != ref {
					t.Fatalf("%s: age %d + birth year %d != %d", name, info.Age, info.BirthYear, ref)
				}
				wantGender := "female"
				if code == "M" {
					wantGender = "male"
				}
				if info.Gender != wantGender {
					t.Fatalf("%s: gender %q, want %q", name, info.Gender, wantGender)
				}
			}
		}
	}
}

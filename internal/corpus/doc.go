// Package corpus scans a directory of speaker recordings and builds the
// per-file metadata table.
//
// Recording names follow the grammar G_<birth year>_<M|F>_<id>_st.WAV; the
// speaker id, gender, birth year, and age are derived from the name alone and
// the transcript is read from a same-stem .txt sibling. Files that do not
// match, transcripts that are missing or unreadable, and headers that cannot
// be decoded are reported as Diagnostics and never abort the scan. Only a
// missing scan directory is fatal (ErrNotFound).
package corpus

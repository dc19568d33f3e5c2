// Package history turns a raw shell history file into a clean, ordered
// corpus of distinct command strings.
package history

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/robottwo/hui/internal/shell"
	"github.com/samber/lo"
)

// Corpus is the deduplicated, ordered set of history entries for a session.
// It contains no empty strings and no two equal strings, and is built once
// at startup.
type Corpus []string

// zshMeta marks a byte that zsh stored XOR-ed with 32 (control and high
// bytes that would otherwise confuse its history format).
const zshMeta = 0x83

var (
	// The splitter consumes "\n: " as the entry delimiter, so all but the
	// first entry are left with the remainder of the metadata line.
	zshTimestamp = regexp.MustCompile(`^\d{10}:\d;`)

	// The first entry in the file has no preceding delimiter, so it still
	// carries the delimiter's own ": " prefix.
	zshTimestampFirst = regexp.MustCompile(`^: \d{10}:\d;`)
)

// Load reads the history file at path and builds the corpus for the given
// shell. Any failure is fatal for the whole load.
func Load(path string, kind shell.Kind) (Corpus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}
	return FromBytes(raw, kind)
}

// FromBytes builds the corpus from raw history bytes. It is a pure function
// of (bytes, kind): decode per the shell's rules, split into entries, strip
// metadata, then normalize.
func FromBytes(raw []byte, kind shell.Kind) (Corpus, error) {
	rules := kind.Rules()

	if rules.Unmetafy {
		raw = Unmetafy(raw)
	}

	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%s history is not valid UTF-8 after decoding", kind)
	}

	entries := strings.Split(string(raw), rules.Delimiter)
	if rules.StripTimestamps {
		entries = stripTimestamps(entries)
	}

	return normalize(entries), nil
}

// Unmetafy reverses zsh's meta-character encoding: every 0x83 marker is
// removed and the byte that followed it is XOR-ed with 32. The scan runs
// back to front so that removing a marker never shifts bytes the cursor has
// yet to visit. The input slice is not modified.
func Unmetafy(raw []byte) []byte {
	b := make([]byte, len(raw))
	copy(b, raw)

	for i := len(b) - 1; i >= 0; i-- {
		if b[i] != zshMeta {
			continue
		}
		b = append(b[:i], b[i+1:]...)
		if i < len(b) {
			b[i] ^= 32
		}
	}
	return b
}

// stripTimestamps removes the "<epoch>:<duration>;" metadata prefix left on
// each entry after splitting on "\n: ". The first entry never had a
// delimiter in front of it, so it keeps the delimiter's leading ": " and
// needs the wider pattern.
func stripTimestamps(entries []string) []string {
	if len(entries) == 0 {
		return entries
	}

	stripped := make([]string, len(entries))
	stripped[0] = zshTimestampFirst.ReplaceAllString(entries[0], "")
	for i, entry := range entries[1:] {
		stripped[i+1] = zshTimestamp.ReplaceAllString(entry, "")
	}
	return stripped
}

// normalize drops empty entries, deduplicates keeping the first (oldest)
// occurrence, and reverses the list so the newest file position comes
// first. Deduplicating before reversing means a repeated command surfaces
// at the position of its earliest historical use; that composition is
// intentional, observed behavior.
func normalize(entries []string) Corpus {
	kept := lo.Filter(entries, func(entry string, _ int) bool {
		return entry != ""
	})
	kept = lo.Uniq(kept)
	kept = lo.Reverse(kept)
	return Corpus(kept)
}

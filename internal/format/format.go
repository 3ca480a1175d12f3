// Package format holds the pure string-formatting helpers shared by the menu
// builders and the pane renderers: item counts, binary sizes, digest and
// build-history labels.
package format

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	historyInstrPrefix         = "/bin/sh -c #(nop)"
	historyInstrSuffixBuildkit = "# buildkit"

	// Layer history labels wider than this are truncated to
	// labelTruncateAt runes plus an ellipsis marker.
	labelMaxWidth    = 25
	labelTruncateAt  = 22
	labelEllipsis    = "..."
	digestTrimStart  = 7
	digestTrimLength = 12
)

// Count renders an item count with the appropriate noun, e.g. "1 tag" or
// "17 tags".
func Count(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return humanize.Comma(int64(n)) + " " + noun
}

// Size renders a byte count in binary units. Values below one KiB print as
// plain bytes; larger values use the smallest unit that keeps the figure
// under 1024, with trailing zero decimals trimmed ("2 KiB", "2.5 MiB").
func Size(n int64) string {
	if n < 1024 {
		return strconv.FormatInt(n, 10) + " B"
	}
	value := float64(n)
	units := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	unit := units[len(units)-1]
	for _, u := range units {
		value /= 1024
		if value < 1024 {
			unit = u
			break
		}
	}
	return trimDecimals(value) + " " + unit
}

func trimDecimals(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// TrimDigest shortens a content digest such as "sha256:abcd…" to the twelve
// hex characters following the algorithm prefix.
func TrimDigest(digest string) string {
	if len(digest) <= digestTrimStart {
		return digest
	}
	end := digestTrimStart + digestTrimLength
	if end > len(digest) {
		end = len(digest)
	}
	return digest[digestTrimStart:end]
}

// CleanCreatedBy strips the shell no-op prefix and buildkit suffix that
// registries record around the actual Dockerfile instruction.
func CleanCreatedBy(createdBy string) string {
	cleaned := strings.TrimSpace(createdBy)
	if strings.HasPrefix(cleaned, historyInstrPrefix) {
		cleaned = strings.TrimSpace(cleaned[len(historyInstrPrefix):])
	}
	if strings.HasSuffix(cleaned, historyInstrSuffixBuildkit) {
		cleaned = strings.TrimSpace(cleaned[:len(cleaned)-len(historyInstrSuffixBuildkit)])
	}
	return cleaned
}

// TruncateLabel caps a history label at 25 runes, replacing the tail with a
// three-character ellipsis marker when it overflows.
func TruncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= labelMaxWidth {
		return label
	}
	return string(runes[:labelTruncateAt]) + labelEllipsis
}

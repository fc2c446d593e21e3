package panel

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// PadSpeed zero-pads a speed reported by the device to three characters:
// "7" -> "007", "45" -> "045", "100" -> "100".
//
// The comparison is numeric on the trimmed text (empty counts as 0) while
// the padding is prepended to the text as received. Text that is not a
// number fails both comparisons and is returned as is.
func PadSpeed(text string) string {
	n, ok := speedNumber(text)
	switch {
	case !ok:
		return text
	case n < 10:
		return "00" + text
	case n < 100:
		return "0" + text
	default:
		return text
	}
}

// speedNumber converts text the way a browser's Number() does: surrounding
// whitespace is ignored, empty text is 0, 0x/0o/0b prefixes select a radix
// and the only spelling of infinity is "Infinity".
func speedNumber(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, true
	}

	if len(s) > 2 && s[0] == '0' {
		if base := radixPrefix(s[1]); base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if errors.Is(err, strconv.ErrRange) {
				return math.Inf(1), true
			}
			if err != nil {
				return 0, false
			}
			return float64(n), true
		}
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	// ParseFloat also takes inf, nan, hex floats and underscores.
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune("0123456789+-.eE", rune(s[i])) {
			return 0, false
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) {
		return n, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

func radixPrefix(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

package challenge

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
)

// codeAlphabet leaves out 0/O and 1/I/L.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const codeGroupLen = 4

// codeByteLimit is the largest multiple of len(codeAlphabet) that fits in a
// byte; bytes at or above it are discarded so every letter is equally likely.
const codeByteLimit = 256 - 256%len(codeAlphabet)

// NewCode returns a code shaped XXXX-XXXX. A nil reader uses crypto/rand.
func NewCode(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}

	picked := make([]byte, 0, codeGroupLen*2)
	buf := make([]byte, codeGroupLen*2)
	for len(picked) < cap(picked) {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, v := range buf {
			idx, ok := alphabetIndex(v)
			if !ok {
				continue
			}
			picked = append(picked, codeAlphabet[idx])
			if len(picked) == cap(picked) {
				break
			}
		}
	}

	return string(picked[:codeGroupLen]) + "-" + string(picked[codeGroupLen:]), nil
}

func alphabetIndex(v byte) (int, bool) {
	if int(v) >= codeByteLimit {
		return 0, false
	}
	return int(v) % len(codeAlphabet), true
}

// NormalizeCode upper-cases input, strips spaces and restores the dash.
func NormalizeCode(raw string) string {
	cleaned := strings.ToUpper(strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw)))
	if len(cleaned) != codeGroupLen*2 {
		return cleaned
	}
	return cleaned[:codeGroupLen] + "-" + cleaned[codeGroupLen:]
}

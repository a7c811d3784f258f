package models

import (
	"encoding/hex"
	"fmt"
	"strings"
)

func printable(p []byte) string {
	o := make([]byte, len(p))
	for i, c := range p {
		if c >= 0x20 && c <= 0x7e {
			o[i] = c
		} else {
			o[i] = '.'
		}
	}
	return string(o)
}

// HexDump formats mem as 16-byte lines addressed from base, with the address
// column sized for the given pointer width.
func HexDump(base uint64, mem []byte, bits int) []string {
	addrFmt := fmt.Sprintf("0x%%0%dx:", bits/4)
	var out []string
	for i := 0; i < len(mem); i += 16 {
		end := i + 16
		if end > len(mem) {
			end = len(mem)
		}
		line := mem[i:end]
		h := hex.EncodeToString(line)
		// group into 4-byte words
		var words []string
		for j := 0; j < len(h); j += 8 {
			k := j + 8
			if k > len(h) {
				k = len(h)
			}
			words = append(words, h[j:k])
		}
		hexCol := strings.Join(words, " ")
		out = append(out, fmt.Sprintf("%s %-35s [%s]", fmt.Sprintf(addrFmt, base+uint64(i)), hexCol, printable(line)))
	}
	return out
}

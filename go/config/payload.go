package config

import (
	"encoding/hex"
	"io/ioutil"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/lunixbochs/corntool/go/models"
)

// AssembleFunc turns assembly source into machine code for a target.
type AssembleFunc func(text string, arch models.ArchType, endian models.Endian, thumb bool) ([]byte, error)

// PayloadSource is where shellcode comes from. Input is inline text and
// takes priority over Filename where the format allows it.
type PayloadSource struct {
	Format   string
	Input    string
	Filename string

	Arch   models.ArchType
	Endian models.Endian
	Thumb  bool
}

// CleanHex strips literal "\x" separators and whitespace from hex text.
func CleanHex(s string) string {
	s = strings.Replace(s, `\x`, "", -1)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func DecodeHex(s string) ([]byte, error) {
	code, err := hex.DecodeString(CleanHex(s))
	return code, errors.Wrap(err, "invalid hex payload")
}

// AcquirePayload reads the shellcode for one of the hex, asm or bin formats.
func AcquirePayload(src PayloadSource, asm AssembleFunc) ([]byte, error) {
	var code []byte
	var err error
	switch src.Format {
	case "hex":
		var text string
		if src.Input != "" {
			text = src.Input
		} else if src.Filename != "" {
			raw, err := ioutil.ReadFile(src.Filename)
			if err != nil {
				return nil, errors.Wrap(err, "failed to read hex file")
			}
			text = string(raw)
		} else {
			return nil, models.Configf("hex format requires --input or --filename")
		}
		if code, err = DecodeHex(text); err != nil {
			return nil, err
		}
	case "asm":
		if src.Filename == "" {
			return nil, models.Configf("asm format requires --filename")
		}
		raw, err := ioutil.ReadFile(src.Filename)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read asm file")
		}
		if asm == nil {
			return nil, errors.New("no assembler available")
		}
		out, err := asm(string(raw), src.Arch, src.Endian, src.Thumb)
		if err != nil {
			return nil, err
		}
		code = append([]byte(nil), out...)
	case "bin":
		if src.Filename == "" {
			return nil, models.Configf("bin format requires --filename")
		}
		if code, err = ioutil.ReadFile(src.Filename); err != nil {
			return nil, errors.Wrap(err, "failed to read shellcode file")
		}
	default:
		return nil, models.Configf("unknown payload format %q (want asm, hex or bin)", src.Format)
	}
	if len(code) == 0 {
		return nil, models.Configf("empty payload")
	}
	return code, nil
}

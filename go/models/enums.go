package models

import (
	"fmt"
	"sort"
	"strings"
)

type ArchType int

const (
	ARCH_X86 ArchType = iota + 1
	ARCH_X8664
	ARCH_ARM
	ARCH_ARM64
	ARCH_MIPS
	ARCH_A8086
	ARCH_EVM
	ARCH_CORTEX_M
	ARCH_RISCV
	ARCH_RISCV64
	ARCH_PPC
)

type OSType int

const (
	OS_LINUX OSType = iota + 1
	OS_FREEBSD
	OS_MACOS
	OS_WINDOWS
	OS_UEFI
	OS_DOS
	OS_EVM
	OS_QNX
	OS_MCU
	OS_BLOB
)

type Endian int

const (
	ENDIAN_LITTLE Endian = iota + 1
	ENDIAN_BIG
)

// Verbosity is ordered: a higher value logs everything a lower one does.
type Verbosity int

const (
	VERBOSE_OFF     Verbosity = 0
	VERBOSE_DEFAULT Verbosity = 1
	VERBOSE_DEBUG   Verbosity = 4
	VERBOSE_DISASM  Verbosity = 10
	VERBOSE_DUMP    Verbosity = 20
)

type CoverageFormat int

const (
	COVERAGE_DRCOV CoverageFormat = iota + 1
	COVERAGE_DRCOV_EXACT
)

// enumTable maps lowercase tokens to enum values. aliases are informal
// surface names that point at a canonical token.
type enumTable struct {
	axis    string
	names   map[string]int
	aliases map[string]string
	rev     map[int]string
}

func newEnumTable(axis string, names map[string]int, aliases map[string]string) *enumTable {
	t := &enumTable{axis: axis, names: names, aliases: aliases, rev: make(map[int]string, len(names))}
	for name, v := range names {
		t.rev[v] = name
	}
	for alias, canon := range aliases {
		if _, ok := names[canon]; !ok {
			panic(fmt.Sprintf("%s alias %q points at unknown name %q", axis, alias, canon))
		}
	}
	return t
}

func (t *enumTable) resolve(token string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(token))
	if canon, ok := t.aliases[key]; ok {
		key = canon
	}
	if v, ok := t.names[key]; ok {
		return v, nil
	}
	return 0, &LookupError{Axis: t.axis, Token: token}
}

func (t *enumTable) name(v int) string {
	if s, ok := t.rev[v]; ok {
		return s
	}
	return fmt.Sprintf("%s(%d)", t.axis, v)
}

// Names returns the canonical tokens sorted by enum value.
func (t *enumTable) Names() []string {
	vals := make([]int, 0, len(t.rev))
	for v := range t.rev {
		vals = append(vals, v)
	}
	sort.Ints(vals)
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = t.rev[v]
	}
	return out
}

func (t *enumTable) Aliases() map[string]string {
	out := make(map[string]string, len(t.aliases))
	for k, v := range t.aliases {
		out[k] = v
	}
	return out
}

var (
	ArchTable = newEnumTable("arch", map[string]int{
		"x86":      int(ARCH_X86),
		"x8664":    int(ARCH_X8664),
		"arm":      int(ARCH_ARM),
		"arm64":    int(ARCH_ARM64),
		"mips":     int(ARCH_MIPS),
		"a8086":    int(ARCH_A8086),
		"evm":      int(ARCH_EVM),
		"cortex_m": int(ARCH_CORTEX_M),
		"riscv":    int(ARCH_RISCV),
		"riscv64":  int(ARCH_RISCV64),
		"ppc":      int(ARCH_PPC),
	}, map[string]string{
		"x86_64":  "x8664",
		"amd64":   "x8664",
		"aarch64": "arm64",
		"riscv32": "riscv",
	})

	OSTable = newEnumTable("os", map[string]int{
		"linux":   int(OS_LINUX),
		"freebsd": int(OS_FREEBSD),
		"macos":   int(OS_MACOS),
		"windows": int(OS_WINDOWS),
		"uefi":    int(OS_UEFI),
		"dos":     int(OS_DOS),
		"evm":     int(OS_EVM),
		"qnx":     int(OS_QNX),
		"mcu":     int(OS_MCU),
		"blob":    int(OS_BLOB),
	}, map[string]string{
		"darwin": "macos",
	})

	EndianTable = newEnumTable("endian", map[string]int{
		"little": int(ENDIAN_LITTLE),
		"big":    int(ENDIAN_BIG),
	}, nil)

	VerbosityTable = newEnumTable("verbose", map[string]int{
		"off":     int(VERBOSE_OFF),
		"default": int(VERBOSE_DEFAULT),
		"debug":   int(VERBOSE_DEBUG),
		"disasm":  int(VERBOSE_DISASM),
		"dump":    int(VERBOSE_DUMP),
	}, nil)

	CoverageTable = newEnumTable("coverage-format", map[string]int{
		"drcov":       int(COVERAGE_DRCOV),
		"drcov_exact": int(COVERAGE_DRCOV_EXACT),
	}, nil)
)

func ResolveArch(token string) (ArchType, error) {
	v, err := ArchTable.resolve(token)
	return ArchType(v), err
}

func ResolveOS(token string) (OSType, error) {
	v, err := OSTable.resolve(token)
	return OSType(v), err
}

func ResolveEndian(token string) (Endian, error) {
	v, err := EndianTable.resolve(token)
	return Endian(v), err
}

func ResolveVerbosity(token string) (Verbosity, error) {
	v, err := VerbosityTable.resolve(token)
	return Verbosity(v), err
}

func ResolveCoverageFormat(token string) (CoverageFormat, error) {
	v, err := CoverageTable.resolve(token)
	return CoverageFormat(v), err
}

func (a ArchType) String() string       { return ArchTable.name(int(a)) }
func (o OSType) String() string         { return OSTable.name(int(o)) }
func (e Endian) String() string         { return EndianTable.name(int(e)) }
func (v Verbosity) String() string      { return VerbosityTable.name(int(v)) }
func (c CoverageFormat) String() string { return CoverageTable.name(int(c)) }

func (a ArchType) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
func (o OSType) MarshalText() ([]byte, error)   { return []byte(o.String()), nil }
func (e Endian) MarshalText() ([]byte, error)   { return []byte(e.String()), nil }

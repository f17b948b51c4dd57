package snapshot

import "strings"

// FieldFlag selects which optional record fields a snapshot provider
// populates. Flags combine with bitwise OR.
type FieldFlag uint32

const (
	FieldNone        FieldFlag = 0
	FieldMemory      FieldFlag = 1
	FieldCommandLine FieldFlag = 2
)

// flagMap pairs the bitmask of a flag with its string representation.
var flagMap = []struct {
	val  FieldFlag
	name string
}{
	{FieldMemory, "MEMORY"},
	{FieldCommandLine, "COMMANDLINE"},
}

// Has reports whether every bit of flag is set in f.
func (f FieldFlag) Has(flag FieldFlag) bool {
	return f&flag == flag
}

// String returns a human-readable string representation of the flag set
func (f FieldFlag) String() string {
	if f == FieldNone {
		return "NONE"
	}
	out := make([]string, 0, len(flagMap))
	for _, entry := range flagMap {
		if f&entry.val == entry.val {
			out = append(out, entry.name)
		}
	}
	return strings.Join(out, "|")
}

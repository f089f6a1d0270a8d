package rule

// Set is the ordered blocklist as persisted: a flat sequence of entry
// strings. Order is insertion order, duplicates are kept, and the index
// position is the only removal key.
type Set []string

// defaults is the fixed sequence used to initialize a missing store, to
// recover a corrupt one, and to restore on explicit reset.
var defaults = Set{
	"ddos",
	"exploit",
	"zero-day",
	"backdoor",
	"rootkit",
	"trojan",
	"password cracking",
	"brute-force",
	"bypass security",
	"unauthorized",
	"how to hack",
	"delete data",
}

// Defaults returns a fresh copy of the built-in rule sequence.
func Defaults() Set {
	return defaults.Clone()
}

// Clone returns an independent copy of the set, so readers holding a
// snapshot never observe a later in-place mutation.
func (s Set) Clone() Set {
	if s == nil {
		return Set{}
	}
	out := make(Set, len(s))
	copy(out, s)
	return out
}

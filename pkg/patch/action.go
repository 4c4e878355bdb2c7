package patch

// Action describes one engine action routine: its case-insensitive mnemonic,
// the legacy numeric slot it occupies in the base patch format (-1 when it
// has none), whether it is a weapon routine, the lowest tier that recognises
// it, and its ordered parameter signature.
type Action struct {
	Mnemonic string
	Slot     int
	Weapon   bool
	Tier     Tier
	Params   []ParamKind
}

// HasSlot reports whether the action is representable by the legacy numeric
// pointer scheme.
func (a Action) HasSlot() bool { return a.Slot >= 0 }

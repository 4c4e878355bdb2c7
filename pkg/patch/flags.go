package patch

import "strings"

// Flag mnemonic tables. Scripts write flag-set values as mnemonics joined
// with '|'; the binder sums the bits. Values are the engine's bit layout and
// are part of the output format contract.

var thingFlags = map[string]int32{
	"special":      0x00000001,
	"solid":        0x00000002,
	"shootable":    0x00000004,
	"nosector":     0x00000008,
	"noblockmap":   0x00000010,
	"ambush":       0x00000020,
	"justhit":      0x00000040,
	"justattacked": 0x00000080,
	"spawnceiling": 0x00000100,
	"nogravity":    0x00000200,
	"dropoff":      0x00000400,
	"pickup":       0x00000800,
	"noclip":       0x00001000,
	"slide":        0x00002000,
	"float":        0x00004000,
	"teleport":     0x00008000,
	"missile":      0x00010000,
	"dropped":      0x00020000,
	"shadow":       0x00040000,
	"noblood":      0x00080000,
	"corpse":       0x00100000,
	"infloat":      0x00200000,
	"countkill":    0x00400000,
	"countitem":    0x00800000,
	"skullfly":     0x01000000,
	"notdmatch":    0x02000000,
	"translation1": 0x04000000,
	"translation2": 0x08000000,
}

var thingFlags21 = map[string]int32{
	"lograv":         0x00000001,
	"shortmrange":    0x00000002,
	"dmgignored":     0x00000004,
	"noradiusdmg":    0x00000008,
	"forceradiusdmg": 0x00000010,
	"highermprob":    0x00000020,
	"rangehalf":      0x00000040,
	"nothreshold":    0x00000080,
	"longmelee":      0x00000100,
	"boss":           0x00000200,
	"map07boss1":     0x00000400,
	"map07boss2":     0x00000800,
	"e1m8boss":       0x00001000,
	"e2m8boss":       0x00002000,
	"e3m8boss":       0x00004000,
	"e4m6boss":       0x00008000,
	"e4m8boss":       0x00010000,
	"rip":            0x00020000,
	"fullvolsounds":  0x00040000,
}

var stateFlags21 = map[string]int32{
	"skill5fast": 0x00000001,
}

var weaponFlags21 = map[string]int32{
	"nothrust":       0x00000001,
	"silent":         0x00000002,
	"noautofire":     0x00000004,
	"fleemelee":      0x00000008,
	"autoswitchfrom": 0x00000010,
	"noautoswitchto": 0x00000020,
}

func lookupFlag(table map[string]int32, name string) (int32, bool) {
	key := strings.ToLower(name)
	// The engine-header "MF_" / "MF2_" / "WPF_" prefixes are accepted.
	for _, prefix := range []string{"mf_", "mf2_", "wpf_"} {
		key = strings.TrimPrefix(key, prefix)
	}
	v, ok := table[key]
	return v, ok
}

// ThingFlag resolves a thing flag mnemonic to its bit value.
func ThingFlag(name string) (int32, bool) { return lookupFlag(thingFlags, name) }

// ThingFlag21 resolves an extended21 thing flag mnemonic to its bit value.
func ThingFlag21(name string) (int32, bool) { return lookupFlag(thingFlags21, name) }

// WeaponFlag21 resolves an extended21 weapon flag mnemonic to its bit value.
func WeaponFlag21(name string) (int32, bool) { return lookupFlag(weaponFlags21, name) }

// StateFlag21 resolves an extended21 state flag mnemonic to its bit value.
func StateFlag21(name string) (int32, bool) { return lookupFlag(stateFlags21, name) }

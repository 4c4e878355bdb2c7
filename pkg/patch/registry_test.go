package patch

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		mnemonic string
		found    bool
		slot     int
		weapon   bool
		tier     Tier
	}{
		{"Look", true, 174, false, TierBase},
		{"look", true, 174, false, TierBase},
		{"A_Look", true, 174, false, TierBase},
		{"a_look", true, 174, false, TierBase},
		{"FirePistol", true, 14, true, TierBase},
		{"Spawn", true, -1, false, TierExtended},
		{"WeaponJump", true, -1, true, TierExtended21},
		{"NULL", true, 0, false, TierBase},
		{"Nonsense", false, 0, false, TierBase},
	}

	for i, tt := range tests {
		a, ok := Lookup(tt.mnemonic)
		if ok != tt.found {
			t.Fatalf("tests[%d] - found wrong. expected=%v, got=%v", i, tt.found, ok)
		}
		if !ok {
			continue
		}
		if a.Slot != tt.slot {
			t.Fatalf("tests[%d] - slot wrong. expected=%d, got=%d", i, tt.slot, a.Slot)
		}
		if a.Weapon != tt.weapon {
			t.Fatalf("tests[%d] - weapon wrong. expected=%v, got=%v", i, tt.weapon, a.Weapon)
		}
		if a.Tier != tt.tier {
			t.Fatalf("tests[%d] - tier wrong. expected=%v, got=%v", i, tt.tier, a.Tier)
		}
	}
}

func TestLookupCanonicalMnemonic(t *testing.T) {
	a, ok := Lookup("a_troopattack")
	if !ok {
		t.Fatalf("lookup failed")
	}
	if a.Mnemonic != "TroopAttack" {
		t.Fatalf("canonical mnemonic wrong. got=%q", a.Mnemonic)
	}
}

func TestBySlot(t *testing.T) {
	tests := []struct {
		slot     int
		found    bool
		mnemonic string
	}{
		{0, true, "NULL"},
		{6, true, "Punch"},
		{174, true, "Look"},
		{5, false, ""},
		{-1, false, ""},
	}

	for i, tt := range tests {
		a, ok := BySlot(tt.slot)
		if ok != tt.found {
			t.Fatalf("tests[%d] - found wrong. expected=%v, got=%v", i, tt.found, ok)
		}
		if ok && a.Mnemonic != tt.mnemonic {
			t.Fatalf("tests[%d] - mnemonic wrong. expected=%q, got=%q", i, tt.mnemonic, a.Mnemonic)
		}
	}
}

func TestHasSlot(t *testing.T) {
	look, _ := Lookup("Look")
	if !look.HasSlot() {
		t.Fatalf("Look should have a slot")
	}
	spawn, _ := Lookup("Spawn")
	if spawn.HasSlot() {
		t.Fatalf("Spawn should be slotless")
	}
}

func TestActionsByTier(t *testing.T) {
	base := ActionsByTier(TierBase)
	extended := ActionsByTier(TierExtended)
	extended21 := ActionsByTier(TierExtended21)

	if !(len(base) < len(extended) && len(extended) < len(extended21)) {
		t.Fatalf("tier sets not strictly growing: %d, %d, %d",
			len(base), len(extended), len(extended21))
	}

	for i, a := range base {
		if a.Tier != TierBase {
			t.Fatalf("base[%d] - tier wrong. got=%v", i, a.Tier)
		}
		if !a.HasSlot() {
			t.Fatalf("base[%d] - %s has no slot", i, a.Mnemonic)
		}
	}
}

func TestActionSignatures(t *testing.T) {
	tests := []struct {
		mnemonic string
		params   []ParamKind
	}{
		{"Look", nil},
		{"Spawn", []ParamKind{ParamThing, ParamFixed}},
		{"Turn", []ParamKind{ParamAngleInt}},
		{"JumpIfHealthBelow", []ParamKind{ParamState, ParamInt}},
		{"WeaponSound", []ParamKind{ParamSound, ParamBool}},
	}

	for i, tt := range tests {
		a, ok := Lookup(tt.mnemonic)
		if !ok {
			t.Fatalf("tests[%d] - %s not found", i, tt.mnemonic)
		}
		if len(a.Params) != len(tt.params) {
			t.Fatalf("tests[%d] - arity wrong. expected=%d, got=%d",
				i, len(tt.params), len(a.Params))
		}
		for j := range tt.params {
			if a.Params[j] != tt.params[j] {
				t.Fatalf("tests[%d] - param %d wrong. expected=%v, got=%v",
					i, j, tt.params[j], a.Params[j])
			}
		}
	}
}

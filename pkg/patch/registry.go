package patch

import "strings"

// actions is the full registry, in canonical order. Base-tier entries stay
// sorted by slot number: downstream tooling partitions them into categories
// by slot ranges, so the order is an external contract. Adding a routine
// never removes or renumbers an existing one.
var actions = []Action{
	{Mnemonic: "NULL", Slot: 0, Weapon: false, Tier: TierBase},

	// Base weapon routines.
	{Mnemonic: "Light0", Slot: 1, Weapon: true, Tier: TierBase},
	{Mnemonic: "WeaponReady", Slot: 2, Weapon: true, Tier: TierBase},
	{Mnemonic: "Lower", Slot: 3, Weapon: true, Tier: TierBase},
	{Mnemonic: "Raise", Slot: 4, Weapon: true, Tier: TierBase},
	{Mnemonic: "Punch", Slot: 6, Weapon: true, Tier: TierBase},
	{Mnemonic: "ReFire", Slot: 9, Weapon: true, Tier: TierBase},
	{Mnemonic: "FirePistol", Slot: 14, Weapon: true, Tier: TierBase},
	{Mnemonic: "Light1", Slot: 17, Weapon: true, Tier: TierBase},
	{Mnemonic: "FireShotgun", Slot: 22, Weapon: true, Tier: TierBase},
	{Mnemonic: "Light2", Slot: 31, Weapon: true, Tier: TierBase},
	{Mnemonic: "FireShotgun2", Slot: 36, Weapon: true, Tier: TierBase},
	{Mnemonic: "CheckReload", Slot: 38, Weapon: true, Tier: TierBase},
	{Mnemonic: "OpenShotgun2", Slot: 39, Weapon: true, Tier: TierBase},
	{Mnemonic: "LoadShotgun2", Slot: 41, Weapon: true, Tier: TierBase},
	{Mnemonic: "CloseShotgun2", Slot: 43, Weapon: true, Tier: TierBase},
	{Mnemonic: "FireCGun", Slot: 52, Weapon: true, Tier: TierBase},
	{Mnemonic: "GunFlash", Slot: 60, Weapon: true, Tier: TierBase},
	{Mnemonic: "FireMissile", Slot: 61, Weapon: true, Tier: TierBase},
	{Mnemonic: "Saw", Slot: 71, Weapon: true, Tier: TierBase},
	{Mnemonic: "FirePlasma", Slot: 77, Weapon: true, Tier: TierBase},
	{Mnemonic: "BFGsound", Slot: 84, Weapon: true, Tier: TierBase},
	{Mnemonic: "FireBFG", Slot: 86, Weapon: true, Tier: TierBase},

	// Base creature routines.
	{Mnemonic: "BFGSpray", Slot: 119, Tier: TierBase},
	{Mnemonic: "Explode", Slot: 127, Tier: TierBase},
	{Mnemonic: "Pain", Slot: 157, Tier: TierBase},
	{Mnemonic: "PlayerScream", Slot: 159, Tier: TierBase},
	{Mnemonic: "Fall", Slot: 160, Tier: TierBase},
	{Mnemonic: "XScream", Slot: 166, Tier: TierBase},
	{Mnemonic: "Look", Slot: 174, Tier: TierBase},
	{Mnemonic: "Chase", Slot: 176, Tier: TierBase},
	{Mnemonic: "FaceTarget", Slot: 184, Tier: TierBase},
	{Mnemonic: "PosAttack", Slot: 185, Tier: TierBase},
	{Mnemonic: "Scream", Slot: 190, Tier: TierBase},
	{Mnemonic: "VileChase", Slot: 243, Tier: TierBase},
	{Mnemonic: "VileStart", Slot: 255, Tier: TierBase},
	{Mnemonic: "VileTarget", Slot: 257, Tier: TierBase},
	{Mnemonic: "VileAttack", Slot: 264, Tier: TierBase},
	{Mnemonic: "StartFire", Slot: 281, Tier: TierBase},
	{Mnemonic: "Fire", Slot: 282, Tier: TierBase},
	{Mnemonic: "FireCrackle", Slot: 285, Tier: TierBase},
	{Mnemonic: "Tracer", Slot: 316, Tier: TierBase},
	{Mnemonic: "SkelWhoosh", Slot: 336, Tier: TierBase},
	{Mnemonic: "SkelFist", Slot: 338, Tier: TierBase},
	{Mnemonic: "SkelMissile", Slot: 341, Tier: TierBase},
	{Mnemonic: "FatRaise", Slot: 376, Tier: TierBase},
	{Mnemonic: "FatAttack1", Slot: 377, Tier: TierBase},
	{Mnemonic: "FatAttack2", Slot: 380, Tier: TierBase},
	{Mnemonic: "FatAttack3", Slot: 383, Tier: TierBase},
	{Mnemonic: "BossDeath", Slot: 397, Tier: TierBase},
	{Mnemonic: "CPosAttack", Slot: 417, Tier: TierBase},
	{Mnemonic: "CPosRefire", Slot: 419, Tier: TierBase},
	{Mnemonic: "TroopAttack", Slot: 454, Tier: TierBase},
	{Mnemonic: "SargAttack", Slot: 487, Tier: TierBase},
	{Mnemonic: "HeadAttack", Slot: 506, Tier: TierBase},
	{Mnemonic: "BruisAttack", Slot: 539, Tier: TierBase},
	{Mnemonic: "SkullAttack", Slot: 590, Tier: TierBase},
	{Mnemonic: "Metal", Slot: 603, Tier: TierBase},
	{Mnemonic: "SPosAttack", Slot: 616, Tier: TierBase},
	{Mnemonic: "SpidRefire", Slot: 618, Tier: TierBase},
	{Mnemonic: "BabyMetal", Slot: 635, Tier: TierBase},
	{Mnemonic: "BspiAttack", Slot: 648, Tier: TierBase},
	{Mnemonic: "Hoof", Slot: 676, Tier: TierBase},
	{Mnemonic: "CyberAttack", Slot: 685, Tier: TierBase},
	{Mnemonic: "PainAttack", Slot: 711, Tier: TierBase},
	{Mnemonic: "PainDie", Slot: 718, Tier: TierBase},
	{Mnemonic: "KeenDie", Slot: 774, Tier: TierBase},
	{Mnemonic: "BrainPain", Slot: 779, Tier: TierBase},
	{Mnemonic: "BrainScream", Slot: 780, Tier: TierBase},
	{Mnemonic: "BrainDie", Slot: 783, Tier: TierBase},
	{Mnemonic: "BrainAwake", Slot: 785, Tier: TierBase},
	{Mnemonic: "BrainSpit", Slot: 786, Tier: TierBase},
	{Mnemonic: "SpawnSound", Slot: 787, Tier: TierBase},
	{Mnemonic: "SpawnFly", Slot: 788, Tier: TierBase},
	{Mnemonic: "BrainExplode", Slot: 801, Tier: TierBase},

	// Extended creature routines.
	{Mnemonic: "Detonate", Slot: -1, Tier: TierExtended},
	{Mnemonic: "Mushroom", Slot: -1, Tier: TierExtended, Params: []ParamKind{ParamAngleFixed, ParamFixed}},
	{Mnemonic: "Spawn", Slot: -1, Tier: TierExtended, Params: []ParamKind{ParamThing, ParamFixed}},
	{Mnemonic: "Turn", Slot: -1, Tier: TierExtended, Params: []ParamKind{ParamAngleInt}},
	{Mnemonic: "Face", Slot: -1, Tier: TierExtended, Params: []ParamKind{ParamAngleUint}},
	{Mnemonic: "Scratch", Slot: -1, Tier: TierExtended, Params: []ParamKind{ParamShort, ParamSound}},
	{Mnemonic: "PlaySound", Slot: -1, Tier: TierExtended, Params: []ParamKind{ParamSound, ParamBool}},
	{Mnemonic: "RandomJump", Slot: -1, Tier: TierExtended, Params: []ParamKind{ParamState, ParamUInt}},
	{Mnemonic: "LineEffect", Slot: -1, Tier: TierExtended, Params: []ParamKind{ParamShort, ParamShort}},
	{Mnemonic: "Die", Slot: -1, Tier: TierExtended},
	{Mnemonic: "FireOldBFG", Slot: -1, Tier: TierExtended},
	{Mnemonic: "BetaSkullAttack", Slot: -1, Tier: TierExtended},
	{Mnemonic: "Stop", Slot: -1, Tier: TierExtended},

	// Extended21 creature routines.
	{Mnemonic: "SpawnObject", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamThing, ParamAngleFixed, ParamFixed, ParamFixed, ParamFixed, ParamFixed, ParamFixed, ParamFixed}},
	{Mnemonic: "MonsterProjectile", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamThing, ParamAngleFixed, ParamAngleFixed, ParamFixed, ParamFixed}},
	{Mnemonic: "MonsterBulletAttack", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamAngleFixed, ParamAngleFixed, ParamUInt, ParamUShort, ParamUInt}},
	{Mnemonic: "MonsterMeleeAttack", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamUShort, ParamUInt, ParamSound, ParamInt}},
	{Mnemonic: "RadiusDamage", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamUInt, ParamUInt}},
	{Mnemonic: "NoiseAlert", Slot: -1, Tier: TierExtended21},
	{Mnemonic: "HealChase", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamState, ParamSound}},
	{Mnemonic: "SeekTracer", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamAngleFixed, ParamAngleFixed}},
	{Mnemonic: "FindTracer", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamAngleFixed, ParamUInt}},
	{Mnemonic: "ClearTracer", Slot: -1, Tier: TierExtended21},
	{Mnemonic: "JumpIfHealthBelow", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamState, ParamInt}},
	{Mnemonic: "JumpIfTargetInSight", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamState, ParamAngleFixed}},
	{Mnemonic: "JumpIfTargetCloser", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamState, ParamFixed}},
	{Mnemonic: "JumpIfTracerInSight", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamState, ParamAngleFixed}},
	{Mnemonic: "JumpIfTracerCloser", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamState, ParamFixed}},
	{Mnemonic: "JumpIfFlagsSet", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamState, ParamFlags, ParamFlags}},
	{Mnemonic: "AddFlags", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamFlags, ParamFlags}},
	{Mnemonic: "RemoveFlags", Slot: -1, Tier: TierExtended21, Params: []ParamKind{ParamFlags, ParamFlags}},

	// Extended21 weapon routines.
	{Mnemonic: "WeaponProjectile", Slot: -1, Weapon: true, Tier: TierExtended21, Params: []ParamKind{ParamThing, ParamAngleFixed, ParamAngleFixed, ParamFixed, ParamFixed}},
	{Mnemonic: "WeaponBulletAttack", Slot: -1, Weapon: true, Tier: TierExtended21, Params: []ParamKind{ParamAngleFixed, ParamAngleFixed, ParamUInt, ParamUShort, ParamUInt}},
	{Mnemonic: "WeaponMeleeAttack", Slot: -1, Weapon: true, Tier: TierExtended21, Params: []ParamKind{ParamUShort, ParamUInt, ParamFixed, ParamSound, ParamFixed}},
	{Mnemonic: "WeaponSound", Slot: -1, Weapon: true, Tier: TierExtended21, Params: []ParamKind{ParamSound, ParamBool}},
	{Mnemonic: "WeaponAlert", Slot: -1, Weapon: true, Tier: TierExtended21},
	{Mnemonic: "WeaponJump", Slot: -1, Weapon: true, Tier: TierExtended21, Params: []ParamKind{ParamState, ParamUInt}},
	{Mnemonic: "ConsumeAmmo", Slot: -1, Weapon: true, Tier: TierExtended21, Params: []ParamKind{ParamShort}},
	{Mnemonic: "CheckAmmo", Slot: -1, Weapon: true, Tier: TierExtended21, Params: []ParamKind{ParamState, ParamUShort}},
	{Mnemonic: "RefireTo", Slot: -1, Weapon: true, Tier: TierExtended21, Params: []ParamKind{ParamState, ParamBool}},
	{Mnemonic: "GunFlashTo", Slot: -1, Weapon: true, Tier: TierExtended21, Params: []ParamKind{ParamState, ParamBool}},
}

// mnemonicIndex maps lowercase mnemonics (with and without the "a_" script
// prefix) to positions in actions. Built once at startup, read-only after.
var mnemonicIndex = map[string]int{}

// slotIndex maps legacy slot numbers to positions in actions.
var slotIndex = map[int]int{}

func init() {
	for i, a := range actions {
		mnemonicIndex[strings.ToLower(a.Mnemonic)] = i
		mnemonicIndex["a_"+strings.ToLower(a.Mnemonic)] = i
		if a.Slot >= 0 {
			slotIndex[a.Slot] = i
		}
	}
}

// Lookup finds an action by mnemonic, case-insensitively. The "A_" prefix
// used in scripts is accepted and stripped.
func Lookup(mnemonic string) (Action, bool) {
	i, ok := mnemonicIndex[strings.ToLower(mnemonic)]
	if !ok {
		return Action{}, false
	}
	return actions[i], true
}

// BySlot finds the base-tier action occupying a legacy slot.
func BySlot(slot int) (Action, bool) {
	i, ok := slotIndex[slot]
	if !ok {
		return Action{}, false
	}
	return actions[i], true
}

// ActionsByTier returns every action available at the given tier, in
// registry order. Diagnostic and tooling use only.
func ActionsByTier(tier Tier) []Action {
	var out []Action
	for _, a := range actions {
		if a.Tier <= tier {
			out = append(out, a)
		}
	}
	return out
}

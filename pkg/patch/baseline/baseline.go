// Package baseline holds the embedded engine default datasets, one per
// supported game edition. A dataset declares the size of every patchable
// table and lists only the entries whose defaults are non-zero; everything
// else starts zeroed. Datasets may extend another dataset, overriding
// entries by index or label.
package baseline

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var datasets embed.FS

// Counts declares the table sizes for an edition.
type Counts struct {
	States  int `yaml:"states"`
	Things  int `yaml:"things"`
	Weapons int `yaml:"weapons"`
	Ammo    int `yaml:"ammo"`
	Sounds  int `yaml:"sounds"`
	Sprites int `yaml:"sprites"`
}

// StateEntry is one non-default state table row.
type StateEntry struct {
	Index    int    `yaml:"index"`
	Sprite   string `yaml:"sprite,omitempty"`
	Subframe int    `yaml:"subframe,omitempty"`
	Bright   bool   `yaml:"bright,omitempty"`
	Duration int    `yaml:"duration,omitempty"`
	Next     int    `yaml:"next,omitempty"`
	Action   string `yaml:"action,omitempty"`
	Misc1    int    `yaml:"misc1,omitempty"`
	Misc2    int    `yaml:"misc2,omitempty"`
}

// ThingEntry is one non-default thing table row. Width and height are in
// map units; the context scales them to fixed point.
type ThingEntry struct {
	Index        int    `yaml:"index"`
	Name         string `yaml:"name,omitempty"`
	ID           int    `yaml:"id,omitempty"`
	SpawnState   int    `yaml:"spawnstate,omitempty"`
	Health       int    `yaml:"health,omitempty"`
	SeeState     int    `yaml:"seestate,omitempty"`
	SeeSound     int    `yaml:"seesound,omitempty"`
	ReactionTime int    `yaml:"reactiontime,omitempty"`
	AttackSound  int    `yaml:"attacksound,omitempty"`
	PainState    int    `yaml:"painstate,omitempty"`
	PainChance   int    `yaml:"painchance,omitempty"`
	PainSound    int    `yaml:"painsound,omitempty"`
	MeleeState   int    `yaml:"meleestate,omitempty"`
	MissileState int    `yaml:"missilestate,omitempty"`
	DeathState   int    `yaml:"deathstate,omitempty"`
	XDeathState  int    `yaml:"xdeathstate,omitempty"`
	DeathSound   int    `yaml:"deathsound,omitempty"`
	Speed        int    `yaml:"speed,omitempty"`
	Width        int    `yaml:"width,omitempty"`
	Height       int    `yaml:"height,omitempty"`
	Mass         int    `yaml:"mass,omitempty"`
	Damage       int    `yaml:"damage,omitempty"`
	ActiveSound  int    `yaml:"activesound,omitempty"`
	Bits         int    `yaml:"bits,omitempty"`
	RaiseState   int    `yaml:"raisestate,omitempty"`
}

// WeaponEntry is one weapon table row.
type WeaponEntry struct {
	Index         int    `yaml:"index"`
	Name          string `yaml:"name,omitempty"`
	AmmoType      int    `yaml:"ammotype,omitempty"`
	DeselectState int    `yaml:"deselectstate,omitempty"`
	SelectState   int    `yaml:"selectstate,omitempty"`
	ReadyState    int    `yaml:"readystate,omitempty"`
	FireState     int    `yaml:"firestate,omitempty"`
	FlashState    int    `yaml:"flashstate,omitempty"`
}

// AmmoEntry is one ammo table row.
type AmmoEntry struct {
	Index  int    `yaml:"index"`
	Name   string `yaml:"name,omitempty"`
	Max    int    `yaml:"max,omitempty"`
	Pickup int    `yaml:"pickup,omitempty"`
}

// SoundEntry is one sound table row. The name is the script-facing lookup
// key for sound references.
type SoundEntry struct {
	Index    int    `yaml:"index"`
	Name     string `yaml:"name,omitempty"`
	Priority int    `yaml:"priority,omitempty"`
	Singular bool   `yaml:"singular,omitempty"`
}

// StringEntry is one string table row.
type StringEntry struct {
	Label string `yaml:"label"`
	Text  string `yaml:"text"`
}

// CheatEntry is one cheat table row. Field is the patch file field name.
type CheatEntry struct {
	Name  string `yaml:"name"`
	Field string `yaml:"field"`
	Text  string `yaml:"text"`
}

// MiscEntry is one miscellaneous global. Field is the patch file field name.
type MiscEntry struct {
	Name  string `yaml:"name"`
	Field string `yaml:"field"`
	Value int    `yaml:"value"`
}

// ParEntry is one par time row.
type ParEntry struct {
	Episode int `yaml:"episode"`
	Map     int `yaml:"map"`
	Seconds int `yaml:"seconds"`
}

// Dataset is one edition's complete default data.
type Dataset struct {
	Edition string        `yaml:"edition"`
	Extends string        `yaml:"extends,omitempty"`
	Counts  Counts        `yaml:"counts"`
	Sprites []string      `yaml:"sprites"`
	States  []StateEntry  `yaml:"states"`
	Things  []ThingEntry  `yaml:"things"`
	Weapons []WeaponEntry `yaml:"weapons"`
	Ammo    []AmmoEntry   `yaml:"ammo"`
	Sounds  []SoundEntry  `yaml:"sounds"`
	Strings []StringEntry `yaml:"strings"`
	Cheats  []CheatEntry  `yaml:"cheats"`
	Misc    []MiscEntry   `yaml:"misc"`
	Pars    []ParEntry    `yaml:"pars"`
}

// Load reads the dataset for a game edition, resolving the extends chain.
func Load(edition string) (*Dataset, error) {
	return load(edition, 0)
}

func load(edition string, depth int) (*Dataset, error) {
	if depth > 4 {
		return nil, fmt.Errorf("baseline extends chain too deep at %s", edition)
	}

	data, err := datasets.ReadFile(edition + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown game edition: %s", edition)
	}

	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse baseline %s: %w", edition, err)
	}

	if ds.Extends == "" {
		return &ds, nil
	}

	base, err := load(ds.Extends, depth+1)
	if err != nil {
		return nil, err
	}
	return merge(base, &ds), nil
}

// merge overlays ds on top of base. Table sizes grow, never shrink;
// overlay entries replace same-keyed base entries and append otherwise.
func merge(base, ds *Dataset) *Dataset {
	out := *base
	out.Edition = ds.Edition
	out.Extends = ""

	out.Counts = Counts{
		States:  maxInt(base.Counts.States, ds.Counts.States),
		Things:  maxInt(base.Counts.Things, ds.Counts.Things),
		Weapons: maxInt(base.Counts.Weapons, ds.Counts.Weapons),
		Ammo:    maxInt(base.Counts.Ammo, ds.Counts.Ammo),
		Sounds:  maxInt(base.Counts.Sounds, ds.Counts.Sounds),
		Sprites: maxInt(base.Counts.Sprites, ds.Counts.Sprites),
	}

	out.Sprites = append(append([]string{}, base.Sprites...), ds.Sprites...)

	out.States = mergeByIndex(base.States, ds.States, func(e StateEntry) int { return e.Index })
	out.Things = mergeByIndex(base.Things, ds.Things, func(e ThingEntry) int { return e.Index })
	out.Weapons = mergeByIndex(base.Weapons, ds.Weapons, func(e WeaponEntry) int { return e.Index })
	out.Ammo = mergeByIndex(base.Ammo, ds.Ammo, func(e AmmoEntry) int { return e.Index })
	out.Sounds = mergeByIndex(base.Sounds, ds.Sounds, func(e SoundEntry) int { return e.Index })

	out.Strings = mergeByKey(base.Strings, ds.Strings, func(e StringEntry) string { return e.Label })
	out.Cheats = mergeByKey(base.Cheats, ds.Cheats, func(e CheatEntry) string { return e.Name })
	out.Misc = mergeByKey(base.Misc, ds.Misc, func(e MiscEntry) string { return e.Name })
	out.Pars = mergeByKey(base.Pars, ds.Pars, func(e ParEntry) string {
		return fmt.Sprintf("%d/%d", e.Episode, e.Map)
	})

	return &out
}

func mergeByIndex[T any](base, overlay []T, key func(T) int) []T {
	out := append([]T{}, base...)
	pos := make(map[int]int, len(out))
	for i, e := range out {
		pos[key(e)] = i
	}
	for _, e := range overlay {
		if i, ok := pos[key(e)]; ok {
			out[i] = e
		} else {
			pos[key(e)] = len(out)
			out = append(out, e)
		}
	}
	return out
}

func mergeByKey[T any](base, overlay []T, key func(T) string) []T {
	out := append([]T{}, base...)
	pos := make(map[string]int, len(out))
	for i, e := range out {
		pos[key(e)] = i
	}
	for _, e := range overlay {
		if i, ok := pos[key(e)]; ok {
			out[i] = e
		} else {
			pos[key(e)] = len(out)
			out = append(out, e)
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

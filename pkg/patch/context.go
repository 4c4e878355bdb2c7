package patch

import (
	"fmt"
	"strings"

	"github.com/zurustar/decopatch/pkg/patch/baseline"
)

// brightBit marks a full-brightness subframe.
const brightBit = 0x8000

// State is one row of the state (frame) table.
type State struct {
	Sprite   Field
	Subframe Field
	Duration Field
	Next     Field
	Misc1    Field
	Misc2    Field
	MBF21Bits Field
	Args     [8]Field
	Action   ActionField
}

// Thing is one row of the thing table. Field names follow the patch file
// vocabulary (frames are state indexes, sounds are sound indexes).
type Thing struct {
	Name string

	ID               Field
	InitialFrame     Field
	Health           Field
	FirstMovingFrame Field
	AlertSound       Field
	ReactionTime     Field
	AttackSound      Field
	InjuryFrame      Field
	PainChance       Field
	PainSound        Field
	CloseAttackFrame Field
	FarAttackFrame   Field
	DeathFrame       Field
	ExplodingFrame   Field
	DeathSound       Field
	Speed            Field
	Width            Field
	Height           Field
	Mass             Field
	MissileDamage    Field
	ActionSound      Field
	Bits             Field
	RespawnFrame     Field
	MBF21Bits        Field
}

// Weapon is one row of the weapon table.
type Weapon struct {
	Name string

	AmmoType      Field
	DeselectFrame Field
	SelectFrame   Field
	BobbingFrame  Field
	ShootingFrame Field
	FiringFrame   Field
	AmmoPerShot   Field
	MBF21Bits     Field
}

// AmmoEntry is one row of the ammo table.
type AmmoEntry struct {
	Name   string
	Max    Field
	Pickup Field
}

// Sound is one row of the sound table.
type Sound struct {
	Name     string
	Priority Field
	Singular Field
}

// StringEntry is one replaceable string.
type StringEntry struct {
	Label string
	Text  TextField
}

// CheatEntry is one replaceable cheat sequence.
type CheatEntry struct {
	Name      string
	FieldName string
	Text      TextField
}

// MiscEntry is one named global.
type MiscEntry struct {
	Name      string
	FieldName string
	Value     Field
}

// ParEntry is one par time. Episode 0 means flat map numbering.
type ParEntry struct {
	Episode int
	Map     int
	Seconds Field
}

// Context is the mutable patch state for one compile. Baselines are set
// once here from the edition dataset; the binder moves only current values,
// and the exporter reads the result exactly once. Contexts are not shared:
// each compile builds its own.
type Context struct {
	Edition string
	Tier    Tier

	States  []State
	Things  []Thing
	Weapons []Weapon
	Ammo    []AmmoEntry
	Sounds  []Sound
	Sprites []string
	Strings []StringEntry
	Cheats  []CheatEntry
	Misc    []MiscEntry
	Pars    []ParEntry

	soundIndex  map[string]int
	spriteIndex map[string]int
	stringIndex map[string]int
	cheatIndex  map[string]int
	miscIndex   map[string]int
	parIndex    map[[2]int]int
}

// NewContext builds a fresh context from the embedded dataset for the given
// game edition, configured for the given tier.
func NewContext(edition string, tier Tier) (*Context, error) {
	ds, err := baseline.Load(edition)
	if err != nil {
		return nil, err
	}

	c := &Context{
		Edition:     ds.Edition,
		Tier:        tier,
		States:      make([]State, ds.Counts.States),
		Things:      make([]Thing, ds.Counts.Things),
		Weapons:     make([]Weapon, ds.Counts.Weapons),
		Ammo:        make([]AmmoEntry, ds.Counts.Ammo),
		Sounds:      make([]Sound, ds.Counts.Sounds),
		Sprites:     make([]string, ds.Counts.Sprites),
		soundIndex:  make(map[string]int),
		spriteIndex: make(map[string]int),
		stringIndex: make(map[string]int),
		cheatIndex:  make(map[string]int),
		miscIndex:   make(map[string]int),
		parIndex:    make(map[[2]int]int),
	}

	for i, name := range ds.Sprites {
		if i >= len(c.Sprites) {
			break
		}
		c.Sprites[i] = name
		c.spriteIndex[strings.ToLower(name)] = i
	}

	for _, e := range ds.States {
		if e.Index < 0 || e.Index >= len(c.States) {
			return nil, fmt.Errorf("baseline %s: state index %d out of range", edition, e.Index)
		}
		s := &c.States[e.Index]
		sprite := 0
		if e.Sprite != "" {
			idx, ok := c.spriteIndex[strings.ToLower(e.Sprite)]
			if !ok {
				return nil, fmt.Errorf("baseline %s: state %d names unknown sprite %s", edition, e.Index, e.Sprite)
			}
			sprite = idx
		}
		subframe := e.Subframe
		if e.Bright {
			subframe |= brightBit
		}
		s.Sprite = NewField(int32(sprite))
		s.Subframe = NewField(int32(subframe))
		s.Duration = NewField(int32(e.Duration))
		s.Next = NewField(int32(e.Next))
		s.Misc1 = NewField(int32(e.Misc1))
		s.Misc2 = NewField(int32(e.Misc2))
		if e.Action != "" {
			a, ok := Lookup(e.Action)
			if !ok {
				return nil, fmt.Errorf("baseline %s: state %d names unknown action %s", edition, e.Index, e.Action)
			}
			s.Action = NewActionField(a.Mnemonic)
		}
	}

	for _, e := range ds.Things {
		if e.Index < 0 || e.Index >= len(c.Things) {
			return nil, fmt.Errorf("baseline %s: thing index %d out of range", edition, e.Index)
		}
		t := &c.Things[e.Index]
		t.Name = e.Name
		t.ID = NewField(int32(e.ID))
		t.InitialFrame = NewField(int32(e.SpawnState))
		t.Health = NewField(int32(e.Health))
		t.FirstMovingFrame = NewField(int32(e.SeeState))
		t.AlertSound = NewField(int32(e.SeeSound))
		t.ReactionTime = NewField(int32(e.ReactionTime))
		t.AttackSound = NewField(int32(e.AttackSound))
		t.InjuryFrame = NewField(int32(e.PainState))
		t.PainChance = NewField(int32(e.PainChance))
		t.PainSound = NewField(int32(e.PainSound))
		t.CloseAttackFrame = NewField(int32(e.MeleeState))
		t.FarAttackFrame = NewField(int32(e.MissileState))
		t.DeathFrame = NewField(int32(e.DeathState))
		t.ExplodingFrame = NewField(int32(e.XDeathState))
		t.DeathSound = NewField(int32(e.DeathSound))
		t.Speed = NewField(int32(e.Speed))
		t.Width = NewField(int32(e.Width) << 16)
		t.Height = NewField(int32(e.Height) << 16)
		t.Mass = NewField(int32(e.Mass))
		t.MissileDamage = NewField(int32(e.Damage))
		t.ActionSound = NewField(int32(e.ActiveSound))
		t.Bits = NewField(int32(e.Bits))
		t.RespawnFrame = NewField(int32(e.RaiseState))
	}

	for _, e := range ds.Weapons {
		if e.Index < 0 || e.Index >= len(c.Weapons) {
			return nil, fmt.Errorf("baseline %s: weapon index %d out of range", edition, e.Index)
		}
		w := &c.Weapons[e.Index]
		w.Name = e.Name
		w.AmmoType = NewField(int32(e.AmmoType))
		w.DeselectFrame = NewField(int32(e.DeselectState))
		w.SelectFrame = NewField(int32(e.SelectState))
		w.BobbingFrame = NewField(int32(e.ReadyState))
		w.ShootingFrame = NewField(int32(e.FireState))
		w.FiringFrame = NewField(int32(e.FlashState))
	}

	for _, e := range ds.Ammo {
		if e.Index < 0 || e.Index >= len(c.Ammo) {
			return nil, fmt.Errorf("baseline %s: ammo index %d out of range", edition, e.Index)
		}
		a := &c.Ammo[e.Index]
		a.Name = e.Name
		a.Max = NewField(int32(e.Max))
		a.Pickup = NewField(int32(e.Pickup))
	}

	for _, e := range ds.Sounds {
		if e.Index < 0 || e.Index >= len(c.Sounds) {
			return nil, fmt.Errorf("baseline %s: sound index %d out of range", edition, e.Index)
		}
		s := &c.Sounds[e.Index]
		s.Name = e.Name
		s.Priority = NewField(int32(e.Priority))
		if e.Singular {
			s.Singular = NewField(1)
		}
		if e.Name != "" {
			c.soundIndex[strings.ToLower(e.Name)] = e.Index
		}
	}

	for _, e := range ds.Strings {
		c.stringIndex[strings.ToLower(e.Label)] = len(c.Strings)
		c.Strings = append(c.Strings, StringEntry{Label: e.Label, Text: NewTextField(e.Text)})
	}

	for _, e := range ds.Cheats {
		c.cheatIndex[strings.ToLower(e.Name)] = len(c.Cheats)
		c.Cheats = append(c.Cheats, CheatEntry{Name: e.Name, FieldName: e.Field, Text: NewTextField(e.Text)})
	}

	for _, e := range ds.Misc {
		c.miscIndex[strings.ToLower(e.Name)] = len(c.Misc)
		c.Misc = append(c.Misc, MiscEntry{Name: e.Name, FieldName: e.Field, Value: NewField(int32(e.Value))})
	}

	for _, e := range ds.Pars {
		c.parIndex[[2]int{e.Episode, e.Map}] = len(c.Pars)
		c.Pars = append(c.Pars, ParEntry{Episode: e.Episode, Map: e.Map, Seconds: NewField(int32(e.Seconds))})
	}

	return c, nil
}

// SoundByName resolves a sound name (case-insensitive) to its table index.
func (c *Context) SoundByName(name string) (int, bool) {
	i, ok := c.soundIndex[strings.ToLower(name)]
	return i, ok
}

// SpriteByName resolves a sprite name (case-insensitive) to its table index.
func (c *Context) SpriteByName(name string) (int, bool) {
	i, ok := c.spriteIndex[strings.ToLower(name)]
	return i, ok
}

// StringByLabel resolves a string label (case-insensitive) to its entry.
func (c *Context) StringByLabel(label string) (*StringEntry, bool) {
	i, ok := c.stringIndex[strings.ToLower(label)]
	if !ok {
		return nil, false
	}
	return &c.Strings[i], true
}

// CheatByName resolves a cheat name (case-insensitive) to its entry.
func (c *Context) CheatByName(name string) (*CheatEntry, bool) {
	i, ok := c.cheatIndex[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return &c.Cheats[i], true
}

// MiscByName resolves a misc global name (case-insensitive) to its entry.
func (c *Context) MiscByName(name string) (*MiscEntry, bool) {
	i, ok := c.miscIndex[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return &c.Misc[i], true
}

// EnsurePar returns the par entry for (episode, map), creating a zero-
// baseline entry when the dataset has none.
func (c *Context) EnsurePar(episode, mapNum int) *ParEntry {
	if i, ok := c.parIndex[[2]int{episode, mapNum}]; ok {
		return &c.Pars[i]
	}
	c.parIndex[[2]int{episode, mapNum}] = len(c.Pars)
	c.Pars = append(c.Pars, ParEntry{Episode: episode, Map: mapNum})
	return &c.Pars[len(c.Pars)-1]
}

// BrightBit returns the subframe bit marking full brightness.
func BrightBit() int32 { return brightBit }

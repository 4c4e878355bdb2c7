// Package exporter serializes the dirty fields of a patch context into
// DeHackEd patch text. Sections and fields follow a fixed canonical order,
// so equal contexts always produce byte-identical output.
package exporter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zurustar/decopatch/pkg/patch"
)

// Exporter walks one bound context. Untouched entries produce nothing.
type Exporter struct {
	ctx *patch.Context
}

// New creates an exporter over the given context.
func New(ctx *patch.Context) *Exporter {
	return &Exporter{ctx: ctx}
}

// Export returns the complete patch text.
func (e *Exporter) Export() string {
	var b strings.Builder
	e.writeHeader(&b)
	e.writeThings(&b)
	e.writeFrames(&b)
	e.writeCodePointers(&b)
	e.writeSounds(&b)
	e.writeWeapons(&b)
	e.writeAmmo(&b)
	e.writeMisc(&b)
	e.writeCheats(&b)
	e.writeStrings(&b)
	e.writePars(&b)
	return b.String()
}

func (e *Exporter) writeHeader(b *strings.Builder) {
	version := 19
	if e.ctx.Tier >= patch.TierExtended21 {
		version = 21
	}
	b.WriteString("Patch File for DeHackEd v3.0\n")
	b.WriteString("# Created with decopatch\n\n")
	fmt.Fprintf(b, "Doom version = %d\n", version)
	b.WriteString("Patch format = 6\n")
}

// fieldLine is one dirty field ready to print.
type fieldLine struct {
	name  string
	value int32
}

func dirtyLines(pairs []struct {
	name  string
	field *patch.Field
}) []fieldLine {
	var lines []fieldLine
	for _, p := range pairs {
		if p.field.Dirty() {
			lines = append(lines, fieldLine{p.name, p.field.Value()})
		}
	}
	return lines
}

func writeSection(b *strings.Builder, header string, lines []fieldLine) {
	b.WriteString("\n")
	b.WriteString(header)
	b.WriteString("\n")
	for _, l := range lines {
		fmt.Fprintf(b, "%s = %d\n", l.name, l.value)
	}
}

func (e *Exporter) writeThings(b *strings.Builder) {
	for i := range e.ctx.Things {
		t := &e.ctx.Things[i]
		lines := dirtyLines([]struct {
			name  string
			field *patch.Field
		}{
			{"ID #", &t.ID},
			{"Initial frame", &t.InitialFrame},
			{"Hit points", &t.Health},
			{"First moving frame", &t.FirstMovingFrame},
			{"Alert sound", &t.AlertSound},
			{"Reaction time", &t.ReactionTime},
			{"Attack sound", &t.AttackSound},
			{"Injury frame", &t.InjuryFrame},
			{"Pain chance", &t.PainChance},
			{"Pain sound", &t.PainSound},
			{"Close attack frame", &t.CloseAttackFrame},
			{"Far attack frame", &t.FarAttackFrame},
			{"Death frame", &t.DeathFrame},
			{"Exploding frame", &t.ExplodingFrame},
			{"Death sound", &t.DeathSound},
			{"Speed", &t.Speed},
			{"Width", &t.Width},
			{"Height", &t.Height},
			{"Mass", &t.Mass},
			{"Missile damage", &t.MissileDamage},
			{"Action sound", &t.ActionSound},
			{"Bits", &t.Bits},
			{"Respawn frame", &t.RespawnFrame},
			{"MBF21 Bits", &t.MBF21Bits},
		})
		if len(lines) == 0 {
			continue
		}
		// Thing sections are 1-based in the patch format
		header := fmt.Sprintf("Thing %d", i+1)
		if t.Name != "" {
			header = fmt.Sprintf("Thing %d (%s)", i+1, t.Name)
		}
		writeSection(b, header, lines)
	}
}

func (e *Exporter) writeFrames(b *strings.Builder) {
	for i := range e.ctx.States {
		s := &e.ctx.States[i]
		lines := dirtyLines([]struct {
			name  string
			field *patch.Field
		}{
			{"Sprite number", &s.Sprite},
			{"Sprite subnumber", &s.Subframe},
			{"Duration", &s.Duration},
			{"Next frame", &s.Next},
		})

		// Legacy slot bindings live inside the frame section; slotless
		// mnemonics go to [CODEPTR] instead.
		if s.Action.Dirty() {
			if slot, ok := actionSlot(s.Action.Value()); ok {
				lines = append(lines, fieldLine{"Action", slot})
			}
		}

		lines = append(lines, dirtyLines([]struct {
			name  string
			field *patch.Field
		}{
			{"Unknown 1", &s.Misc1},
			{"Unknown 2", &s.Misc2},
			{"MBF21 Bits", &s.MBF21Bits},
		})...)
		for k := range s.Args {
			if s.Args[k].Dirty() {
				lines = append(lines, fieldLine{fmt.Sprintf("Args%d", k+1), s.Args[k].Value()})
			}
		}

		if len(lines) == 0 {
			continue
		}
		writeSection(b, fmt.Sprintf("Frame %d", i), lines)
	}
}

// actionSlot maps a bound mnemonic to its legacy slot. The empty mnemonic
// is the null routine at slot 0.
func actionSlot(mnemonic string) (int32, bool) {
	if mnemonic == "" {
		return 0, true
	}
	a, ok := patch.Lookup(mnemonic)
	if !ok || !a.HasSlot() {
		return 0, false
	}
	return int32(a.Slot), true
}

func (e *Exporter) writeCodePointers(b *strings.Builder) {
	if e.ctx.Tier < patch.TierExtended {
		return
	}
	var lines []string
	for i := range e.ctx.States {
		s := &e.ctx.States[i]
		if !s.Action.Dirty() {
			continue
		}
		mnemonic := s.Action.Value()
		if _, slotted := actionSlot(mnemonic); slotted {
			continue
		}
		lines = append(lines, fmt.Sprintf("FRAME %d = %s", i, mnemonic))
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("\n[CODEPTR]\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
}

func (e *Exporter) writeSounds(b *strings.Builder) {
	for i := range e.ctx.Sounds {
		s := &e.ctx.Sounds[i]
		lines := dirtyLines([]struct {
			name  string
			field *patch.Field
		}{
			{"Zero/One", &s.Singular},
			{"Value", &s.Priority},
		})
		if len(lines) == 0 {
			continue
		}
		writeSection(b, fmt.Sprintf("Sound %d", i), lines)
	}
}

func (e *Exporter) writeWeapons(b *strings.Builder) {
	for i := range e.ctx.Weapons {
		w := &e.ctx.Weapons[i]
		lines := dirtyLines([]struct {
			name  string
			field *patch.Field
		}{
			{"Ammo type", &w.AmmoType},
			{"Deselect frame", &w.DeselectFrame},
			{"Select frame", &w.SelectFrame},
			{"Bobbing frame", &w.BobbingFrame},
			{"Shooting frame", &w.ShootingFrame},
			{"Firing frame", &w.FiringFrame},
			{"Ammo per shot", &w.AmmoPerShot},
			{"MBF21 Bits", &w.MBF21Bits},
		})
		if len(lines) == 0 {
			continue
		}
		header := fmt.Sprintf("Weapon %d", i)
		if w.Name != "" {
			header = fmt.Sprintf("Weapon %d (%s)", i, w.Name)
		}
		writeSection(b, header, lines)
	}
}

func (e *Exporter) writeAmmo(b *strings.Builder) {
	for i := range e.ctx.Ammo {
		a := &e.ctx.Ammo[i]
		lines := dirtyLines([]struct {
			name  string
			field *patch.Field
		}{
			{"Max ammo", &a.Max},
			{"Per ammo", &a.Pickup},
		})
		if len(lines) == 0 {
			continue
		}
		header := fmt.Sprintf("Ammo %d", i)
		if a.Name != "" {
			header = fmt.Sprintf("Ammo %d (%s)", i, a.Name)
		}
		writeSection(b, header, lines)
	}
}

func (e *Exporter) writeMisc(b *strings.Builder) {
	var lines []fieldLine
	for i := range e.ctx.Misc {
		m := &e.ctx.Misc[i]
		if m.Value.Dirty() {
			lines = append(lines, fieldLine{m.FieldName, m.Value.Value()})
		}
	}
	if len(lines) == 0 {
		return
	}
	writeSection(b, "Misc 0", lines)
}

func (e *Exporter) writeCheats(b *strings.Builder) {
	var lines []string
	for i := range e.ctx.Cheats {
		c := &e.ctx.Cheats[i]
		if c.Text.Dirty() {
			lines = append(lines, fmt.Sprintf("%s = %s", c.FieldName, c.Text.Value()))
		}
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("\nCheat 0\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
}

func (e *Exporter) writeStrings(b *strings.Builder) {
	if e.ctx.Tier >= patch.TierExtended {
		var lines []string
		for i := range e.ctx.Strings {
			s := &e.ctx.Strings[i]
			if s.Text.Dirty() {
				lines = append(lines, fmt.Sprintf("%s = %s", s.Label, escapeText(s.Text.Value())))
			}
		}
		if len(lines) == 0 {
			return
		}
		b.WriteString("\n[STRINGS]\n")
		for _, l := range lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
		return
	}

	// Base dialect: raw text replacement records
	for i := range e.ctx.Strings {
		s := &e.ctx.Strings[i]
		if !s.Text.Dirty() {
			continue
		}
		old := s.Text.Baseline()
		cur := s.Text.Value()
		fmt.Fprintf(b, "\nText %d %d\n%s%s\n", len(old), len(cur), old, cur)
	}
}

func (e *Exporter) writePars(b *strings.Builder) {
	if e.ctx.Tier < patch.TierExtended {
		return
	}
	var dirty []*patch.ParEntry
	for i := range e.ctx.Pars {
		p := &e.ctx.Pars[i]
		if p.Seconds.Dirty() {
			dirty = append(dirty, p)
		}
	}
	if len(dirty) == 0 {
		return
	}
	sort.Slice(dirty, func(i, j int) bool {
		if dirty[i].Episode != dirty[j].Episode {
			return dirty[i].Episode < dirty[j].Episode
		}
		return dirty[i].Map < dirty[j].Map
	})

	b.WriteString("\n[PARS]\n")
	for _, p := range dirty {
		if p.Episode == 0 {
			fmt.Fprintf(b, "par %d %d\n", p.Map, p.Seconds.Value())
		} else {
			fmt.Fprintf(b, "par %d %d %d\n", p.Episode, p.Map, p.Seconds.Value())
		}
	}
}

// escapeText flattens control characters for the one-line [STRINGS] form.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

package exporter

import (
	"strings"
	"testing"

	"github.com/zurustar/decopatch/pkg/patch"
)

func newContext(t *testing.T, tier patch.Tier) *patch.Context {
	t.Helper()
	ctx, err := patch.NewContext("doom19", tier)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	return ctx
}

func TestExportCleanContext(t *testing.T) {
	ctx := newContext(t, patch.TierBase)
	out := New(ctx).Export()

	expected := "Patch File for DeHackEd v3.0\n" +
		"# Created with decopatch\n\n" +
		"Doom version = 19\n" +
		"Patch format = 6\n"
	if out != expected {
		t.Fatalf("clean export wrong. got=%q", out)
	}
}

func TestExportHeaderVersion(t *testing.T) {
	tests := []struct {
		tier     patch.Tier
		expected string
	}{
		{patch.TierBase, "Doom version = 19"},
		{patch.TierExtended, "Doom version = 19"},
		{patch.TierExtended21, "Doom version = 21"},
	}

	for i, tt := range tests {
		ctx := newContext(t, tt.tier)
		out := New(ctx).Export()
		if !strings.Contains(out, tt.expected) {
			t.Fatalf("tests[%d] - version line missing. expected=%q in %q", i, tt.expected, out)
		}
	}
}

func TestExportThingSection(t *testing.T) {
	ctx := newContext(t, patch.TierBase)
	ctx.Things[3].Health.Set(300)
	ctx.Things[3].Speed.Set(12)

	out := New(ctx).Export()

	// Thing sections are numbered from 1 and carry the display name
	if !strings.Contains(out, "\nThing 4 (Imp)\n") {
		t.Fatalf("thing header missing. got=%q", out)
	}
	if !strings.Contains(out, "Hit points = 300\n") {
		t.Fatalf("health line missing. got=%q", out)
	}
	if !strings.Contains(out, "Speed = 12\n") {
		t.Fatalf("speed line missing. got=%q", out)
	}
	if strings.Contains(out, "Thing 3") {
		t.Fatalf("unexpected section for untouched thing. got=%q", out)
	}
	// Canonical field order: hit points before speed
	if strings.Index(out, "Hit points") > strings.Index(out, "Speed") {
		t.Fatalf("field order wrong. got=%q", out)
	}
}

func TestExportFrameWithSlotAction(t *testing.T) {
	ctx := newContext(t, patch.TierBase)
	ctx.States[5].Duration.Set(3)
	ctx.States[5].Action.Set("Punch")

	out := New(ctx).Export()

	idx := strings.Index(out, "\nFrame 5\n")
	if idx < 0 {
		t.Fatalf("frame section missing. got=%q", out)
	}
	if strings.Count(out, "\nFrame 5\n") != 1 {
		t.Fatalf("expected exactly one Frame 5 section. got=%q", out)
	}
	section := out[idx:]
	if !strings.Contains(section, "Duration = 3\n") {
		t.Fatalf("duration line missing. got=%q", section)
	}
	// Punch occupies legacy slot 6
	if !strings.Contains(section, "Action = 6\n") {
		t.Fatalf("action line missing. got=%q", section)
	}
	if strings.Contains(out, "[CODEPTR]") {
		t.Fatalf("unexpected CODEPTR block for a slotted action. got=%q", out)
	}
}

func TestExportCodePointers(t *testing.T) {
	ctx := newContext(t, patch.TierExtended)
	ctx.States[150].Action.Set("Detonate")

	out := New(ctx).Export()

	if !strings.Contains(out, "\n[CODEPTR]\nFRAME 150 = Detonate\n") {
		t.Fatalf("code pointer block wrong. got=%q", out)
	}
	// No other field moved, so no Frame 150 section
	if strings.Contains(out, "\nFrame 150\n") {
		t.Fatalf("unexpected frame section. got=%q", out)
	}
}

func TestExportActionCleared(t *testing.T) {
	// State 442 has a baseline action; clearing it emits slot 0.
	ctx := newContext(t, patch.TierBase)
	ctx.States[442].Action.Set("")

	out := New(ctx).Export()

	idx := strings.Index(out, "\nFrame 442\n")
	if idx < 0 {
		t.Fatalf("frame section missing. got=%q", out)
	}
	if !strings.Contains(out[idx:], "Action = 0\n") {
		t.Fatalf("cleared action line missing. got=%q", out)
	}
}

func TestExportWeaponAmmoSound(t *testing.T) {
	ctx := newContext(t, patch.TierBase)
	ctx.Weapons[1].AmmoType.Set(2)
	ctx.Ammo[0].Max.Set(400)
	ctx.Sounds[1].Priority.Set(96)

	out := New(ctx).Export()

	if !strings.Contains(out, "\nWeapon 1 (Pistol)\nAmmo type = 2\n") {
		t.Fatalf("weapon section wrong. got=%q", out)
	}
	if !strings.Contains(out, "\nAmmo 0 (Bullets)\nMax ammo = 400\n") {
		t.Fatalf("ammo section wrong. got=%q", out)
	}
	if !strings.Contains(out, "\nSound 1\nValue = 96\n") {
		t.Fatalf("sound section wrong. got=%q", out)
	}
}

func TestExportMiscAndCheats(t *testing.T) {
	ctx := newContext(t, patch.TierBase)
	m, _ := ctx.MiscByName("max_health")
	m.Value.Set(300)
	c, _ := ctx.CheatByName("god")
	c.Text.Set("totalgod")

	out := New(ctx).Export()

	if !strings.Contains(out, "\nMisc 0\nMax Health = 300\n") {
		t.Fatalf("misc section wrong. got=%q", out)
	}
	if !strings.Contains(out, "\nCheat 0\nGod mode = totalgod\n") {
		t.Fatalf("cheat section wrong. got=%q", out)
	}
}

func TestExportStringsBaseDialect(t *testing.T) {
	ctx := newContext(t, patch.TierBase)
	s, _ := ctx.StringByLabel("GOTARMOR")
	s.Text.Set("Found armor.")

	out := New(ctx).Export()

	old := "Picked up the armor."
	expected := "\nText 20 12\n" + old + "Found armor.\n"
	if !strings.Contains(out, expected) {
		t.Fatalf("text record wrong. expected=%q in %q", expected, out)
	}
	if strings.Contains(out, "[STRINGS]") {
		t.Fatalf("unexpected STRINGS block at base tier. got=%q", out)
	}
}

func TestExportStringsExtendedDialect(t *testing.T) {
	ctx := newContext(t, patch.TierExtended)
	s, _ := ctx.StringByLabel("GOTARMOR")
	s.Text.Set("Line one\nLine two")

	out := New(ctx).Export()

	if !strings.Contains(out, "\n[STRINGS]\nGOTARMOR = Line one\\nLine two\n") {
		t.Fatalf("strings block wrong. got=%q", out)
	}
	if strings.Contains(out, "Text ") {
		t.Fatalf("unexpected base text record at extended tier. got=%q", out)
	}
}

func TestExportPars(t *testing.T) {
	ctx := newContext(t, patch.TierExtended)
	ctx.EnsurePar(2, 1).Seconds.Set(100)
	ctx.EnsurePar(1, 3).Seconds.Set(80)
	ctx.EnsurePar(0, 12).Seconds.Set(90)

	out := New(ctx).Export()

	expected := "\n[PARS]\npar 12 90\npar 1 3 80\npar 2 1 100\n"
	if !strings.Contains(out, expected) {
		t.Fatalf("pars block wrong. expected=%q in %q", expected, out)
	}
}

func TestExportParsSkippedAtBase(t *testing.T) {
	ctx := newContext(t, patch.TierBase)
	ctx.EnsurePar(1, 1).Seconds.Set(25)

	out := New(ctx).Export()
	if strings.Contains(out, "[PARS]") {
		t.Fatalf("unexpected PARS block at base tier. got=%q", out)
	}
}

func TestExportSectionOrder(t *testing.T) {
	ctx := newContext(t, patch.TierExtended)
	ctx.Things[3].Health.Set(300)
	ctx.States[5].Duration.Set(3)
	ctx.Weapons[1].AmmoType.Set(2)
	ctx.EnsurePar(1, 1).Seconds.Set(25)

	out := New(ctx).Export()

	thing := strings.Index(out, "Thing 4")
	frame := strings.Index(out, "Frame 5")
	weapon := strings.Index(out, "Weapon 1")
	pars := strings.Index(out, "[PARS]")
	if thing < 0 || frame < 0 || weapon < 0 || pars < 0 {
		t.Fatalf("section missing. got=%q", out)
	}
	if !(thing < frame && frame < weapon && weapon < pars) {
		t.Fatalf("section order wrong. got thing=%d frame=%d weapon=%d pars=%d",
			thing, frame, weapon, pars)
	}
}

func TestExportRevertedFieldOmitted(t *testing.T) {
	ctx := newContext(t, patch.TierBase)
	ctx.Things[3].Health.Set(300)
	ctx.Things[3].Health.Set(60) // imp baseline

	out := New(ctx).Export()
	if strings.Contains(out, "Thing 4") {
		t.Fatalf("reverted field still exported. got=%q", out)
	}
}

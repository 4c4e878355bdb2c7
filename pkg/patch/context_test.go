package patch

import "testing"

func TestNewContextTables(t *testing.T) {
	ctx, err := NewContext("doom19", TierBase)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}

	tests := []struct {
		name     string
		got      int
		expected int
	}{
		{"states", len(ctx.States), 967},
		{"things", len(ctx.Things), 137},
		{"weapons", len(ctx.Weapons), 9},
		{"ammo", len(ctx.Ammo), 4},
		{"sounds", len(ctx.Sounds), 107},
		{"sprites", len(ctx.Sprites), 138},
	}

	for i, tt := range tests {
		if tt.got != tt.expected {
			t.Fatalf("tests[%d] - %s count wrong. expected=%d, got=%d",
				i, tt.name, tt.expected, tt.got)
		}
	}
}

func TestNewContextBaselines(t *testing.T) {
	ctx, err := NewContext("doom19", TierBase)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}

	imp := &ctx.Things[3]
	if imp.Name != "Imp" {
		t.Fatalf("imp name wrong. got=%q", imp.Name)
	}
	if imp.Health.Baseline() != 60 {
		t.Fatalf("imp health wrong. got=%d", imp.Health.Baseline())
	}
	// Map units scale to fixed point
	if imp.Width.Baseline() != 20<<16 {
		t.Fatalf("imp width wrong. expected=%d, got=%d", 20<<16, imp.Width.Baseline())
	}

	// Baseline actions carry the registry's canonical mnemonic
	if ctx.States[442].Action.Baseline() != "Look" {
		t.Fatalf("state 442 action wrong. got=%q", ctx.States[442].Action.Baseline())
	}
	if ctx.States[442].Duration.Baseline() != 10 {
		t.Fatalf("state 442 duration wrong. got=%d", ctx.States[442].Duration.Baseline())
	}

	// Sparse entries stay at the zero value
	if ctx.States[5].Action.Baseline() != "" || ctx.States[5].Duration.Baseline() != 0 {
		t.Fatalf("state 5 not zero: action=%q duration=%d",
			ctx.States[5].Action.Baseline(), ctx.States[5].Duration.Baseline())
	}

	if ctx.Weapons[1].Name != "Pistol" || ctx.Weapons[1].ShootingFrame.Baseline() != 14 {
		t.Fatalf("pistol wrong. name=%q fire=%d",
			ctx.Weapons[1].Name, ctx.Weapons[1].ShootingFrame.Baseline())
	}
	if ctx.Ammo[0].Max.Baseline() != 200 {
		t.Fatalf("bullets max wrong. got=%d", ctx.Ammo[0].Max.Baseline())
	}
}

func TestContextNameResolution(t *testing.T) {
	ctx, err := NewContext("doom19", TierBase)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}

	if i, ok := ctx.SoundByName("pistol"); !ok || i != 1 {
		t.Fatalf("SoundByName(pistol) wrong. got=%d found=%v", i, ok)
	}
	if i, ok := ctx.SoundByName("PISTOL"); !ok || i != 1 {
		t.Fatalf("SoundByName case-insensitivity broken. got=%d found=%v", i, ok)
	}
	if _, ok := ctx.SoundByName("nope"); ok {
		t.Fatalf("unknown sound resolved")
	}

	if i, ok := ctx.SpriteByName("troo"); !ok || i != 0 {
		t.Fatalf("SpriteByName(troo) wrong. got=%d found=%v", i, ok)
	}
	if i, ok := ctx.SpriteByName("PISG"); !ok || i != 3 {
		t.Fatalf("SpriteByName(PISG) wrong. got=%d found=%v", i, ok)
	}

	if s, ok := ctx.StringByLabel("gotarmor"); !ok || s.Text.Baseline() != "Picked up the armor." {
		t.Fatalf("StringByLabel wrong. found=%v", ok)
	}
	if c, ok := ctx.CheatByName("god"); !ok || c.Text.Baseline() != "iddqd" {
		t.Fatalf("CheatByName wrong. found=%v", ok)
	}
	if m, ok := ctx.MiscByName("bfg_cells_per_shot"); !ok || m.Value.Baseline() != 40 {
		t.Fatalf("MiscByName wrong. found=%v", ok)
	}
}

func TestEnsurePar(t *testing.T) {
	ctx, err := NewContext("doom19", TierExtended)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}

	existing := ctx.EnsurePar(1, 1)
	if existing.Seconds.Baseline() != 30 {
		t.Fatalf("dataset par wrong. got=%d", existing.Seconds.Baseline())
	}

	fresh := ctx.EnsurePar(0, 12)
	if fresh.Seconds.Baseline() != 0 {
		t.Fatalf("fresh par baseline wrong. got=%d", fresh.Seconds.Baseline())
	}
	if again := ctx.EnsurePar(0, 12); again != fresh {
		t.Fatalf("EnsurePar did not return the same entry")
	}
}

func TestNewContextUltimateEdition(t *testing.T) {
	ctx, err := NewContext("udoom19", TierBase)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}

	// Inherited from the base edition
	if _, ok := ctx.StringByLabel("GOTARMOR"); !ok {
		t.Fatalf("inherited string missing")
	}
	// Added by the extension
	if s, ok := ctx.StringByLabel("HUSTR_E4M1"); !ok || s.Text.Baseline() != "E4M1: Hell Beneath" {
		t.Fatalf("episode 4 string wrong. found=%v", ok)
	}
	if e := ctx.EnsurePar(4, 1); e.Seconds.Baseline() != 165 {
		t.Fatalf("episode 4 par wrong. got=%d", e.Seconds.Baseline())
	}
}

func TestNewContextUnknownEdition(t *testing.T) {
	if _, err := NewContext("quake", TierBase); err == nil {
		t.Fatalf("expected error for unknown edition")
	}
}

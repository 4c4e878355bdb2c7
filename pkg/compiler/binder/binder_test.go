package binder

import (
	"errors"
	"testing"

	"github.com/zurustar/decopatch/pkg/compiler/lexer"
	"github.com/zurustar/decopatch/pkg/compiler/parser"
	"github.com/zurustar/decopatch/pkg/patch"
)

// bind parses source and binds it into a fresh doom19 context.
func bind(t *testing.T, tier patch.Tier, source string) *patch.Context {
	t.Helper()
	ctx, err := patch.NewContext("doom19", tier)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	p := parser.New(lexer.New(source))
	script := p.ParseScript()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser error: %s", errs[0])
	}
	if err := New(ctx).Bind(script); err != nil {
		t.Fatalf("Bind failed: %v", err)
	}
	return ctx
}

// bindKind parses and binds source, expecting a BindError of some kind.
func bindKind(t *testing.T, tier patch.Tier, source string) ErrorKind {
	t.Helper()
	ctx, err := patch.NewContext("doom19", tier)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	p := parser.New(lexer.New(source))
	script := p.ParseScript()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser error: %s", errs[0])
	}
	err = New(ctx).Bind(script)
	if err == nil {
		t.Fatalf("expected bind error, got none")
	}
	var be *BindError
	if !errors.As(err, &be) {
		t.Fatalf("error is not *BindError. got=%T: %v", err, err)
	}
	return be.Kind
}

func TestBindThingFields(t *testing.T) {
	ctx := bind(t, patch.TierBase, `
	thing 3 "Tough Imp" {
		health = 300
		speed = 12
		radius = 24.0
		seesound = dmact
		flags = solid | shootable
	}
	`)

	imp := &ctx.Things[3]
	if imp.Name != "Tough Imp" {
		t.Fatalf("name wrong. got=%q", imp.Name)
	}
	if !imp.Health.Dirty() || imp.Health.Value() != 300 {
		t.Fatalf("health wrong. got=%d", imp.Health.Value())
	}
	if imp.Speed.Value() != 12 {
		t.Fatalf("speed wrong. got=%d", imp.Speed.Value())
	}
	if imp.Width.Value() != 24<<16 {
		t.Fatalf("width wrong. expected=%d, got=%d", 24<<16, imp.Width.Value())
	}
	if imp.AlertSound.Value() != 53 {
		t.Fatalf("seesound wrong. expected=53, got=%d", imp.AlertSound.Value())
	}
	if imp.Bits.Value() != 0x2|0x4 {
		t.Fatalf("flags wrong. expected=6, got=%d", imp.Bits.Value())
	}
	// Untouched fields stay clean
	if ctx.Things[3].Mass.Dirty() {
		t.Fatalf("mass unexpectedly dirty")
	}
	if ctx.Things[2].Health.Dirty() {
		t.Fatalf("neighbouring thing unexpectedly dirty")
	}
}

func TestBindThingChain(t *testing.T) {
	ctx := bind(t, patch.TierBase, `
	thing 3 {
		states 150 {
			spawn:
				TROO AB 10 A_Look loop
			death:
				TROO I 8 bright A_Scream
				TROO J -1 stop
		}
	}
	`)

	tests := []struct {
		index    int
		sprite   int32
		subframe int32
		duration int32
		next     int32
		action   string
	}{
		{150, 0, 0, 10, 151, "Look"},
		{151, 0, 1, 10, 150, "Look"},
		{152, 0, 8 | 0x8000, 8, 153, "Scream"},
		{153, 0, 9, -1, 0, ""},
	}

	for i, tt := range tests {
		s := &ctx.States[tt.index]
		if s.Sprite.Value() != tt.sprite {
			t.Fatalf("tests[%d] - sprite wrong. expected=%d, got=%d", i, tt.sprite, s.Sprite.Value())
		}
		if s.Subframe.Value() != tt.subframe {
			t.Fatalf("tests[%d] - subframe wrong. expected=%d, got=%d", i, tt.subframe, s.Subframe.Value())
		}
		if s.Duration.Value() != tt.duration {
			t.Fatalf("tests[%d] - duration wrong. expected=%d, got=%d", i, tt.duration, s.Duration.Value())
		}
		if s.Next.Value() != tt.next {
			t.Fatalf("tests[%d] - next wrong. expected=%d, got=%d", i, tt.next, s.Next.Value())
		}
		if s.Action.Value() != tt.action {
			t.Fatalf("tests[%d] - action wrong. expected=%q, got=%q", i, tt.action, s.Action.Value())
		}
	}

	// Well-known labels link back into the thing record
	if ctx.Things[3].InitialFrame.Value() != 150 {
		t.Fatalf("spawn link wrong. got=%d", ctx.Things[3].InitialFrame.Value())
	}
	if ctx.Things[3].DeathFrame.Value() != 152 {
		t.Fatalf("death link wrong. got=%d", ctx.Things[3].DeathFrame.Value())
	}
}

func TestBindWaitTerminator(t *testing.T) {
	ctx := bind(t, patch.TierBase, `
	states 160 {
		hover:
			TROO AB 5 wait
	}
	`)

	if ctx.States[160].Next.Value() != 161 {
		t.Fatalf("next wrong. expected=161, got=%d", ctx.States[160].Next.Value())
	}
	// wait parks the last expanded state on itself
	if ctx.States[161].Next.Value() != 161 {
		t.Fatalf("wait next wrong. expected=161, got=%d", ctx.States[161].Next.Value())
	}
}

func TestBindGotoIndex(t *testing.T) {
	ctx := bind(t, patch.TierBase, `
	states 160 {
		start:
			TROO A 5 goto 442
	}
	`)

	if ctx.States[160].Next.Value() != 442 {
		t.Fatalf("next wrong. expected=442, got=%d", ctx.States[160].Next.Value())
	}
}

func TestBindForwardLabel(t *testing.T) {
	ctx := bind(t, patch.TierBase, `
	states 160 {
		start:
			TROO A 5 goto finish
		finish:
			TROO B -1 stop
	}
	`)

	if ctx.States[160].Next.Value() != 161 {
		t.Fatalf("forward goto wrong. expected=161, got=%d", ctx.States[160].Next.Value())
	}
}

func TestBindFileScopeFallback(t *testing.T) {
	ctx := bind(t, patch.TierBase, `
	states 170 {
		shared:
			TROO A -1 stop
	}
	thing 3 {
		states 172 {
			spawn:
				TROO A 5 goto shared
		}
	}
	`)

	if ctx.States[172].Next.Value() != 170 {
		t.Fatalf("file scope fallback wrong. expected=170, got=%d", ctx.States[172].Next.Value())
	}
}

func TestBindLoopTargetFirstLabeled(t *testing.T) {
	// The first record has no label; loop re-enters at the first labeled one.
	ctx := bind(t, patch.TierBase, `
	states 160 {
			TROO A 5
		cycle:
			TROO B 5 loop
	}
	`)

	if ctx.States[161].Next.Value() != 161 {
		t.Fatalf("loop target wrong. expected=161, got=%d", ctx.States[161].Next.Value())
	}
}

func TestBindAliasReference(t *testing.T) {
	ctx := bind(t, patch.TierBase, `
	thing 1 as Zombie {}
	thing Zombie { health = 99 }
	`)

	if ctx.Things[1].Health.Value() != 99 {
		t.Fatalf("aliased thing health wrong. got=%d", ctx.Things[1].Health.Value())
	}
}

func TestBindExtendedActionArgs(t *testing.T) {
	ctx := bind(t, patch.TierExtended, `
	thing 1 as Zombie {}
	thing 3 {
		states 180 {
			spawn:
				TROO A 10 A_Spawn(Zombie, 8.0) stop
		}
	}
	`)

	s := &ctx.States[180]
	if s.Action.Value() != "Spawn" {
		t.Fatalf("action wrong. got=%q", s.Action.Value())
	}
	if s.Misc1.Value() != 1 {
		t.Fatalf("misc1 wrong. expected=1, got=%d", s.Misc1.Value())
	}
	if s.Misc2.Value() != 8<<16 {
		t.Fatalf("misc2 wrong. expected=%d, got=%d", 8<<16, s.Misc2.Value())
	}
}

func TestBindExtended21ActionArgs(t *testing.T) {
	ctx := bind(t, patch.TierExtended21, `
	thing 3 {
		states 190 {
			spawn:
				TROO A 10 A_JumpIfHealthBelow(hurt, 10) stop
			hurt:
				TROO B -1 stop
		}
	}
	`)

	s := &ctx.States[190]
	if s.Action.Value() != "JumpIfHealthBelow" {
		t.Fatalf("action wrong. got=%q", s.Action.Value())
	}
	if s.Args[0].Value() != 191 {
		t.Fatalf("args1 wrong. expected=191, got=%d", s.Args[0].Value())
	}
	if s.Args[1].Value() != 10 {
		t.Fatalf("args2 wrong. expected=10, got=%d", s.Args[1].Value())
	}
	if s.Misc1.Value() != 0 {
		t.Fatalf("misc1 wrong. expected=0, got=%d", s.Misc1.Value())
	}
}

func TestBindRandomDuration(t *testing.T) {
	ctx := bind(t, patch.TierExtended21, `
	states 200 {
		flicker:
			TROO A random(4, 12) loop
	}
	`)

	s := &ctx.States[200]
	if s.Duration.Value() != 4 {
		t.Fatalf("duration wrong. expected=4, got=%d", s.Duration.Value())
	}
	if s.Misc1.Value() != 8 {
		t.Fatalf("spread wrong. expected=8, got=%d", s.Misc1.Value())
	}
}

func TestBindWeaponChain(t *testing.T) {
	ctx := bind(t, patch.TierBase, `
	weapon 1 {
		states 210 {
			fire:
				PISG A 4 A_FirePistol
				PISG B 6 goto ready
			ready:
				PISG A 1 A_WeaponReady wait
		}
	}
	`)

	if ctx.States[210].Action.Value() != "FirePistol" {
		t.Fatalf("fire action wrong. got=%q", ctx.States[210].Action.Value())
	}
	if ctx.States[210].Sprite.Value() != 3 {
		t.Fatalf("sprite wrong. expected=3, got=%d", ctx.States[210].Sprite.Value())
	}
	if ctx.States[211].Next.Value() != 212 {
		t.Fatalf("goto ready wrong. expected=212, got=%d", ctx.States[211].Next.Value())
	}
	if ctx.Weapons[1].ShootingFrame.Value() != 210 {
		t.Fatalf("fire link wrong. got=%d", ctx.Weapons[1].ShootingFrame.Value())
	}
	if ctx.Weapons[1].BobbingFrame.Value() != 212 {
		t.Fatalf("ready link wrong. got=%d", ctx.Weapons[1].BobbingFrame.Value())
	}
}

func TestBindFrameDecl(t *testing.T) {
	ctx := bind(t, patch.TierBase, `
	frame 5 {
		sprite = TROO
		subframe = 2
		duration = 3
		next = 10
		action = A_Scream
	}
	`)

	s := &ctx.States[5]
	if s.Sprite.Value() != 0 {
		t.Fatalf("sprite wrong. got=%d", s.Sprite.Value())
	}
	if s.Subframe.Value() != 2 || s.Duration.Value() != 3 || s.Next.Value() != 10 {
		t.Fatalf("fields wrong. got subframe=%d duration=%d next=%d",
			s.Subframe.Value(), s.Duration.Value(), s.Next.Value())
	}
	if s.Action.Value() != "Scream" {
		t.Fatalf("action wrong. got=%q", s.Action.Value())
	}
}

func TestBindTables(t *testing.T) {
	ctx := bind(t, patch.TierExtended, `
	sound pistol { priority = 96 }
	ammo 0 { max = 400 }
	misc { max_health = 300 }
	cheats { god = "totalgod" }
	strings { GOTARMOR = "Found armor." }
	par 1 1 25
	par 12 90
	`)

	if ctx.Sounds[1].Priority.Value() != 96 {
		t.Fatalf("sound priority wrong. got=%d", ctx.Sounds[1].Priority.Value())
	}
	if ctx.Ammo[0].Max.Value() != 400 {
		t.Fatalf("ammo max wrong. got=%d", ctx.Ammo[0].Max.Value())
	}
	m, _ := ctx.MiscByName("max_health")
	if m.Value.Value() != 300 {
		t.Fatalf("misc wrong. got=%d", m.Value.Value())
	}
	c, _ := ctx.CheatByName("god")
	if c.Text.Value() != "totalgod" {
		t.Fatalf("cheat wrong. got=%q", c.Text.Value())
	}
	s, _ := ctx.StringByLabel("GOTARMOR")
	if s.Text.Value() != "Found armor." {
		t.Fatalf("string wrong. got=%q", s.Text.Value())
	}
	e := ctx.EnsurePar(1, 1)
	if e.Seconds.Value() != 25 {
		t.Fatalf("par wrong. got=%d", e.Seconds.Value())
	}
	flat := ctx.EnsurePar(0, 12)
	if flat.Seconds.Value() != 90 {
		t.Fatalf("flat par wrong. got=%d", flat.Seconds.Value())
	}
}

func TestBindErrors(t *testing.T) {
	tests := []struct {
		tier     patch.Tier
		input    string
		expected ErrorKind
	}{
		// unknown mnemonic
		{patch.TierBase, `states 150 { s: TROO A 5 A_Nonsense stop }`, ErrUnknownAction},
		// weapon routine in a creature chain and vice versa
		{patch.TierBase, `thing 3 { states 150 { s: TROO A 5 A_FirePistol stop } }`, ErrApplicabilityMismatch},
		{patch.TierBase, `weapon 1 { states 150 { s: PISG A 5 A_Look stop } }`, ErrApplicabilityMismatch},
		// tier gates
		{patch.TierBase, `states 150 { s: TROO A 5 A_Die stop }`, ErrTierViolation},
		{patch.TierBase, `par 1 1 30`, ErrTierViolation},
		{patch.TierBase, `thing 3 { mbf21flags = boss }`, ErrTierViolation},
		{patch.TierExtended, `states 150 { s: TROO A random(2, 4) stop }`, ErrTierViolation},
		// arity and types
		{patch.TierExtended, `states 150 { s: TROO A 5 A_Turn stop }`, ErrArityMismatch},
		{patch.TierExtended, `states 150 { s: TROO A 5 A_Turn(1, 2) stop }`, ErrArityMismatch},
		{patch.TierExtended, `states 150 { s: TROO A 5 A_Turn("x") stop }`, ErrTypeMismatch},
		{patch.TierBase, `thing 3 { health = true }`, ErrTypeMismatch},
		{patch.TierBase, `thing 3 { painchance = 99999999999 }`, ErrTypeMismatch},
		// duplicate names
		{patch.TierBase, `states 150 { s: TROO A 5 stop s: TROO A 5 stop }`, ErrDuplicateLabel},
		{patch.TierBase, `thing 1 as Z {} thing 2 as Z {}`, ErrDuplicateAlias},
		// unresolved references
		{patch.TierBase, `states 150 { s: TROO A 5 goto nowhere }`, ErrLabelNotFound},
		{patch.TierBase, `states 150 { s: TROO A 5 }`, ErrLabelNotFound},
		{patch.TierBase, `states 150 { s: ZZZZ A 5 stop }`, ErrLabelNotFound},
		{patch.TierBase, `thing 3 { bogus = 1 }`, ErrLabelNotFound},
		{patch.TierBase, `thing Ghost { health = 1 }`, ErrLabelNotFound},
		{patch.TierBase, `weapon Pistol {}`, ErrLabelNotFound},
		// structural range checks
		{patch.TierBase, `states 0 { s: TROO A 5 stop }`, ErrTypeMismatch},
		{patch.TierBase, `thing 500 {}`, ErrTypeMismatch},
		{patch.TierBase, `states 966 { s: TROO AB 5 stop }`, ErrTypeMismatch},
		// random duration competes with legacy argument slots
		{patch.TierExtended21, `thing 1 as Z {} states 150 { s: TROO A random(2, 4) A_Spawn(Z, 1.0) stop }`, ErrTypeMismatch},
	}

	for i, tt := range tests {
		kind := bindKind(t, tt.tier, tt.input)
		if kind != tt.expected {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s", i, tt.expected, kind)
		}
	}
}

func TestBindErrorPosition(t *testing.T) {
	ctx, err := patch.NewContext("doom19", patch.TierBase)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	p := parser.New(lexer.New("thing 3 {\n\thealth = true\n}"))
	script := p.ParseScript()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser error: %s", errs[0])
	}
	err = New(ctx).Bind(script)
	var be *BindError
	if !errors.As(err, &be) {
		t.Fatalf("error is not *BindError. got=%T", err)
	}
	if be.Line != 2 {
		t.Fatalf("line wrong. expected=2, got=%d", be.Line)
	}
}

package binder

import (
	"fmt"
	"strings"

	"github.com/zurustar/decopatch/pkg/compiler/parser"
	"github.com/zurustar/decopatch/pkg/patch"
)

// fieldSpec describes one scriptable field of a table row: its value kind,
// the lowest tier that accepts it, the flag table for ParamFlags fields,
// and the accessor into the row.
type fieldSpec[T any] struct {
	kind  patch.ParamKind
	tier  patch.Tier
	flags func(string) (int32, bool)
	get   func(*T) *patch.Field
}

func applyField[T any](b *Binder, target *T, specs map[string]fieldSpec[T], scope string, fa *parser.FieldAssign, table string) error {
	spec, ok := specs[strings.ToLower(fa.Name)]
	if !ok {
		return newError(ErrLabelNotFound, fa.Token, fmt.Sprintf("unknown %s field %q", table, fa.Name))
	}
	if spec.tier > b.ctx.Tier {
		return newError(ErrTierViolation, fa.Token, fmt.Sprintf("field %q requires tier %s", fa.Name, spec.tier))
	}
	flagFn := spec.flags
	if flagFn == nil {
		flagFn = anyThingFlag
	}
	v, err := b.resolveValueFlags(scope, fa.Value, spec.kind, flagFn)
	if err != nil {
		return err
	}
	spec.get(target).Set(v)
	return nil
}

var thingFields = map[string]fieldSpec[patch.Thing]{
	"id":           {kind: patch.ParamInt, get: func(t *patch.Thing) *patch.Field { return &t.ID }},
	"health":       {kind: patch.ParamInt, get: func(t *patch.Thing) *patch.Field { return &t.Health }},
	"speed":        {kind: patch.ParamInt, get: func(t *patch.Thing) *patch.Field { return &t.Speed }},
	"radius":       {kind: patch.ParamFixed, get: func(t *patch.Thing) *patch.Field { return &t.Width }},
	"height":       {kind: patch.ParamFixed, get: func(t *patch.Thing) *patch.Field { return &t.Height }},
	"mass":         {kind: patch.ParamInt, get: func(t *patch.Thing) *patch.Field { return &t.Mass }},
	"damage":       {kind: patch.ParamInt, get: func(t *patch.Thing) *patch.Field { return &t.MissileDamage }},
	"reactiontime": {kind: patch.ParamInt, get: func(t *patch.Thing) *patch.Field { return &t.ReactionTime }},
	"painchance":   {kind: patch.ParamInt, get: func(t *patch.Thing) *patch.Field { return &t.PainChance }},

	"flags":      {kind: patch.ParamFlags, flags: patch.ThingFlag, get: func(t *patch.Thing) *patch.Field { return &t.Bits }},
	"mbf21flags": {kind: patch.ParamFlags, tier: patch.TierExtended21, flags: patch.ThingFlag21, get: func(t *patch.Thing) *patch.Field { return &t.MBF21Bits }},

	"seesound":    {kind: patch.ParamSound, get: func(t *patch.Thing) *patch.Field { return &t.AlertSound }},
	"attacksound": {kind: patch.ParamSound, get: func(t *patch.Thing) *patch.Field { return &t.AttackSound }},
	"painsound":   {kind: patch.ParamSound, get: func(t *patch.Thing) *patch.Field { return &t.PainSound }},
	"deathsound":  {kind: patch.ParamSound, get: func(t *patch.Thing) *patch.Field { return &t.DeathSound }},
	"activesound": {kind: patch.ParamSound, get: func(t *patch.Thing) *patch.Field { return &t.ActionSound }},

	"spawnstate":   {kind: patch.ParamState, get: func(t *patch.Thing) *patch.Field { return &t.InitialFrame }},
	"seestate":     {kind: patch.ParamState, get: func(t *patch.Thing) *patch.Field { return &t.FirstMovingFrame }},
	"painstate":    {kind: patch.ParamState, get: func(t *patch.Thing) *patch.Field { return &t.InjuryFrame }},
	"meleestate":   {kind: patch.ParamState, get: func(t *patch.Thing) *patch.Field { return &t.CloseAttackFrame }},
	"missilestate": {kind: patch.ParamState, get: func(t *patch.Thing) *patch.Field { return &t.FarAttackFrame }},
	"deathstate":   {kind: patch.ParamState, get: func(t *patch.Thing) *patch.Field { return &t.DeathFrame }},
	"xdeathstate":  {kind: patch.ParamState, get: func(t *patch.Thing) *patch.Field { return &t.ExplodingFrame }},
	"raisestate":   {kind: patch.ParamState, get: func(t *patch.Thing) *patch.Field { return &t.RespawnFrame }},
}

var weaponFields = map[string]fieldSpec[patch.Weapon]{
	"ammotype":    {kind: patch.ParamInt, get: func(w *patch.Weapon) *patch.Field { return &w.AmmoType }},
	"ammopershot": {kind: patch.ParamInt, tier: patch.TierExtended21, get: func(w *patch.Weapon) *patch.Field { return &w.AmmoPerShot }},
	"mbf21flags":  {kind: patch.ParamFlags, tier: patch.TierExtended21, flags: patch.WeaponFlag21, get: func(w *patch.Weapon) *patch.Field { return &w.MBF21Bits }},

	"readystate":    {kind: patch.ParamState, get: func(w *patch.Weapon) *patch.Field { return &w.BobbingFrame }},
	"deselectstate": {kind: patch.ParamState, get: func(w *patch.Weapon) *patch.Field { return &w.DeselectFrame }},
	"selectstate":   {kind: patch.ParamState, get: func(w *patch.Weapon) *patch.Field { return &w.SelectFrame }},
	"firestate":     {kind: patch.ParamState, get: func(w *patch.Weapon) *patch.Field { return &w.ShootingFrame }},
	"flashstate":    {kind: patch.ParamState, get: func(w *patch.Weapon) *patch.Field { return &w.FiringFrame }},
}

// stateFields covers the raw frame patch form. "sprite" and "action" are
// handled separately by the binder.
var stateFields = map[string]fieldSpec[patch.State]{
	"subframe":   {kind: patch.ParamInt, get: func(s *patch.State) *patch.Field { return &s.Subframe }},
	"duration":   {kind: patch.ParamInt, get: func(s *patch.State) *patch.Field { return &s.Duration }},
	"next":       {kind: patch.ParamState, get: func(s *patch.State) *patch.Field { return &s.Next }},
	"misc1":      {kind: patch.ParamInt, get: func(s *patch.State) *patch.Field { return &s.Misc1 }},
	"misc2":      {kind: patch.ParamInt, get: func(s *patch.State) *patch.Field { return &s.Misc2 }},
	"mbf21flags": {kind: patch.ParamFlags, tier: patch.TierExtended21, flags: patch.StateFlag21, get: func(s *patch.State) *patch.Field { return &s.MBF21Bits }},
}

func init() {
	for i := 0; i < 8; i++ {
		i := i
		stateFields[fmt.Sprintf("arg%d", i+1)] = fieldSpec[patch.State]{
			kind: patch.ParamInt,
			tier: patch.TierExtended21,
			get:  func(s *patch.State) *patch.Field { return &s.Args[i] },
		}
	}
}

var soundFields = map[string]fieldSpec[patch.Sound]{
	"priority": {kind: patch.ParamInt, get: func(s *patch.Sound) *patch.Field { return &s.Priority }},
	"singular": {kind: patch.ParamBool, get: func(s *patch.Sound) *patch.Field { return &s.Singular }},
}

var ammoFields = map[string]fieldSpec[patch.AmmoEntry]{
	"max":    {kind: patch.ParamInt, get: func(a *patch.AmmoEntry) *patch.Field { return &a.Max }},
	"pickup": {kind: patch.ParamInt, get: func(a *patch.AmmoEntry) *patch.Field { return &a.Pickup }},
}

// thingLinks maps well-known chain labels to the thing's link fields.
func thingLinks(t *patch.Thing) map[string]*patch.Field {
	return map[string]*patch.Field{
		"spawn":   &t.InitialFrame,
		"see":     &t.FirstMovingFrame,
		"pain":    &t.InjuryFrame,
		"melee":   &t.CloseAttackFrame,
		"missile": &t.FarAttackFrame,
		"death":   &t.DeathFrame,
		"xdeath":  &t.ExplodingFrame,
		"raise":   &t.RespawnFrame,
	}
}

// weaponLinks maps well-known chain labels to the weapon's link fields.
func weaponLinks(w *patch.Weapon) map[string]*patch.Field {
	return map[string]*patch.Field{
		"ready":    &w.BobbingFrame,
		"deselect": &w.DeselectFrame,
		"select":   &w.SelectFrame,
		"fire":     &w.ShootingFrame,
		"flash":    &w.FiringFrame,
	}
}

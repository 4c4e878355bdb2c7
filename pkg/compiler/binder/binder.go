package binder

import (
	"fmt"
	"strings"

	"github.com/zurustar/decopatch/pkg/compiler/lexer"
	"github.com/zurustar/decopatch/pkg/compiler/parser"
	"github.com/zurustar/decopatch/pkg/patch"
)

// fileScope holds labels of free-standing state chains. Entity chains see
// it as a fallback after their own scope.
const fileScope = ""

// Binder applies a parsed script to a patch context in two passes: the
// first registers chain labels and entity aliases, the second resolves
// references and mutates the context tables.
type Binder struct {
	ctx     *patch.Context
	aliases map[string]int
	labels  map[string]map[string]int
	scopes  map[parser.Declaration]string
	indexes map[parser.Declaration]int
}

// New creates a binder over the given context.
func New(ctx *patch.Context) *Binder {
	return &Binder{
		ctx:     ctx,
		aliases: make(map[string]int),
		labels:  make(map[string]map[string]int),
		scopes:  make(map[parser.Declaration]string),
		indexes: make(map[parser.Declaration]int),
	}
}

// Bind runs both passes. The first error aborts; the context may then be
// partially mutated and must be discarded.
func (b *Binder) Bind(script *parser.Script) error {
	if err := b.registerPass(script); err != nil {
		return err
	}
	return b.applyPass(script)
}

// registerPass walks declarations in source order, resolving entity
// targets, defining aliases, and recording every chain label.
func (b *Binder) registerPass(script *parser.Script) error {
	for _, decl := range script.Declarations {
		switch d := decl.(type) {
		case *parser.ThingDecl:
			index, err := b.resolveThingRef(d.Ref)
			if err != nil {
				return err
			}
			b.indexes[decl] = index
			if d.Alias != "" {
				key := strings.ToLower(d.Alias)
				if _, ok := b.aliases[key]; ok {
					return newError(ErrDuplicateAlias, d.Token, fmt.Sprintf("alias %q already defined", d.Alias))
				}
				b.aliases[key] = index
			}
			scope := fmt.Sprintf("thing/%d", index)
			b.scopes[decl] = scope
			if d.States != nil {
				if err := b.registerChain(scope, d.States); err != nil {
					return err
				}
			}

		case *parser.WeaponDecl:
			if d.Ref.ByName {
				return newError(ErrLabelNotFound, d.Ref.Token, "weapons are addressed by index")
			}
			if d.Ref.Index < 0 || d.Ref.Index >= len(b.ctx.Weapons) {
				return newError(ErrTypeMismatch, d.Ref.Token, fmt.Sprintf("weapon index %d out of range", d.Ref.Index))
			}
			b.indexes[decl] = d.Ref.Index
			scope := fmt.Sprintf("weapon/%d", d.Ref.Index)
			b.scopes[decl] = scope
			if d.States != nil {
				if err := b.registerChain(scope, d.States); err != nil {
					return err
				}
			}

		case *parser.StatesDecl:
			if err := b.registerChain(fileScope, d.Block); err != nil {
				return err
			}
		}
	}
	return nil
}

// registerChain records the labels of one state chain. Records fill
// consecutive state indexes from the chain start, one per subframe letter.
func (b *Binder) registerChain(scope string, block *parser.StatesBlock) error {
	if block.Start < 1 {
		// State 0 is the reserved inactive slot
		return newError(ErrTypeMismatch, block.Token, "state chain may not start at state 0")
	}

	table := b.labels[scope]
	if table == nil {
		table = make(map[string]int)
		b.labels[scope] = table
	}

	idx := block.Start
	for _, rec := range block.Records {
		for _, name := range rec.Labels {
			key := strings.ToLower(name)
			if _, ok := table[key]; ok {
				return newError(ErrDuplicateLabel, rec.Token, fmt.Sprintf("label %q already defined", name))
			}
			table[key] = idx
		}
		idx += len(rec.Frames)
	}
	if idx > len(b.ctx.States) {
		return newError(ErrTypeMismatch, block.Token, fmt.Sprintf("state chain exceeds the state table (%d entries)", len(b.ctx.States)))
	}
	return nil
}

// applyPass mutates the context tables in source order.
func (b *Binder) applyPass(script *parser.Script) error {
	for _, decl := range script.Declarations {
		var err error
		switch d := decl.(type) {
		case *parser.ThingDecl:
			err = b.bindThing(d)
		case *parser.WeaponDecl:
			err = b.bindWeapon(d)
		case *parser.FrameDecl:
			err = b.bindFrame(d)
		case *parser.SoundDecl:
			err = b.bindSound(d)
		case *parser.AmmoDecl:
			err = b.bindAmmo(d)
		case *parser.MiscDecl:
			err = b.bindMisc(d)
		case *parser.CheatsDecl:
			err = b.bindCheats(d)
		case *parser.StringsDecl:
			err = b.bindStrings(d)
		case *parser.ParDecl:
			err = b.bindPar(d)
		case *parser.StatesDecl:
			err = b.bindChain(fileScope, d.Block, false)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (b *Binder) bindThing(d *parser.ThingDecl) error {
	index := b.indexes[parser.Declaration(d)]
	scope := b.scopes[parser.Declaration(d)]
	t := &b.ctx.Things[index]
	if d.HasName {
		t.Name = d.DisplayName
	}
	for _, fa := range d.Fields {
		if err := applyField(b, t, thingFields, scope, fa, "thing"); err != nil {
			return err
		}
	}
	if d.States != nil {
		if err := b.bindChain(scope, d.States, false); err != nil {
			return err
		}
		b.linkEntityStates(scope, thingLinks(t))
	}
	return nil
}

func (b *Binder) bindWeapon(d *parser.WeaponDecl) error {
	index := b.indexes[parser.Declaration(d)]
	scope := b.scopes[parser.Declaration(d)]
	w := &b.ctx.Weapons[index]
	if d.HasName {
		w.Name = d.DisplayName
	}
	for _, fa := range d.Fields {
		if err := applyField(b, w, weaponFields, scope, fa, "weapon"); err != nil {
			return err
		}
	}
	if d.States != nil {
		if err := b.bindChain(scope, d.States, true); err != nil {
			return err
		}
		b.linkEntityStates(scope, weaponLinks(w))
	}
	return nil
}

func (b *Binder) bindFrame(d *parser.FrameDecl) error {
	if d.Index < 0 || d.Index >= len(b.ctx.States) {
		return newError(ErrTypeMismatch, d.Token, fmt.Sprintf("frame index %d out of range", d.Index))
	}
	s := &b.ctx.States[d.Index]
	for _, fa := range d.Fields {
		switch strings.ToLower(fa.Name) {
		case "action":
			mnemonic, err := b.resolveFrameAction(fa)
			if err != nil {
				return err
			}
			s.Action.Set(mnemonic)
		case "sprite":
			v, err := b.resolveSpriteValue(fa.Value)
			if err != nil {
				return err
			}
			s.Sprite.Set(v)
		default:
			if err := applyField(b, s, stateFields, fileScope, fa, "frame"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Binder) bindSound(d *parser.SoundDecl) error {
	var index int
	if d.Ref.ByName {
		i, ok := b.ctx.SoundByName(d.Ref.Name)
		if !ok {
			return newError(ErrLabelNotFound, d.Ref.Token, fmt.Sprintf("unknown sound %q", d.Ref.Name))
		}
		index = i
	} else {
		if d.Ref.Index < 0 || d.Ref.Index >= len(b.ctx.Sounds) {
			return newError(ErrTypeMismatch, d.Ref.Token, fmt.Sprintf("sound index %d out of range", d.Ref.Index))
		}
		index = d.Ref.Index
	}
	s := &b.ctx.Sounds[index]
	for _, fa := range d.Fields {
		if err := applyField(b, s, soundFields, fileScope, fa, "sound"); err != nil {
			return err
		}
	}
	return nil
}

func (b *Binder) bindAmmo(d *parser.AmmoDecl) error {
	if d.Index < 0 || d.Index >= len(b.ctx.Ammo) {
		return newError(ErrTypeMismatch, d.Token, fmt.Sprintf("ammo index %d out of range", d.Index))
	}
	a := &b.ctx.Ammo[d.Index]
	if d.HasName {
		a.Name = d.DisplayName
	}
	for _, fa := range d.Fields {
		if err := applyField(b, a, ammoFields, fileScope, fa, "ammo"); err != nil {
			return err
		}
	}
	return nil
}

func (b *Binder) bindMisc(d *parser.MiscDecl) error {
	for _, fa := range d.Fields {
		entry, ok := b.ctx.MiscByName(fa.Name)
		if !ok {
			return newError(ErrLabelNotFound, fa.Token, fmt.Sprintf("unknown misc value %q", fa.Name))
		}
		v, err := b.resolveValue(fileScope, fa.Value, patch.ParamInt)
		if err != nil {
			return err
		}
		entry.Value.Set(v)
	}
	return nil
}

func (b *Binder) bindCheats(d *parser.CheatsDecl) error {
	for _, e := range d.Entries {
		entry, ok := b.ctx.CheatByName(e.Name)
		if !ok {
			return newError(ErrLabelNotFound, e.Token, fmt.Sprintf("unknown cheat %q", e.Name))
		}
		entry.Text.Set(e.Value)
	}
	return nil
}

func (b *Binder) bindStrings(d *parser.StringsDecl) error {
	for _, e := range d.Entries {
		entry, ok := b.ctx.StringByLabel(e.Name)
		if !ok {
			return newError(ErrLabelNotFound, e.Token, fmt.Sprintf("unknown string %q", e.Name))
		}
		entry.Text.Set(e.Value)
	}
	return nil
}

func (b *Binder) bindPar(d *parser.ParDecl) error {
	if b.ctx.Tier < patch.TierExtended {
		return newError(ErrTierViolation, d.Token, fmt.Sprintf("par times require tier %s", patch.TierExtended))
	}
	entry := b.ctx.EnsurePar(d.Episode, d.Map)
	entry.Seconds.Set(int32(d.Seconds))
	return nil
}

// bindChain writes one state chain into the state table. weaponCtx selects
// the applicability side checked for bound actions.
func (b *Binder) bindChain(scope string, block *parser.StatesBlock, weaponCtx bool) error {
	recordIndex := make([]int, len(block.Records))
	idx := block.Start
	for i, rec := range block.Records {
		recordIndex[i] = idx
		idx += len(rec.Frames)
	}

	// loop target: the first labeled record, else the chain start
	loopTarget := block.Start
	for i, rec := range block.Records {
		if len(rec.Labels) > 0 {
			loopTarget = recordIndex[i]
			break
		}
	}

	for i, rec := range block.Records {
		start := recordIndex[i]

		spriteIdx, ok := b.ctx.SpriteByName(rec.Sprite)
		if !ok {
			return newError(ErrLabelNotFound, rec.Token, fmt.Sprintf("unknown sprite %q", rec.Sprite))
		}

		duration, spread, err := b.resolveDuration(rec.Duration)
		if err != nil {
			return err
		}

		var action patch.Action
		var args []int32
		mnemonic := ""
		if rec.Action != nil {
			action, err = b.resolveAction(rec.Action, weaponCtx)
			if err != nil {
				return err
			}
			mnemonic = action.Mnemonic
			args, err = b.resolveActionArgs(scope, rec.Action, action)
			if err != nil {
				return err
			}
			if spread > 0 && action.Tier != patch.TierExtended21 && len(args) > 0 {
				return newError(ErrTypeMismatch, rec.Token, "random duration conflicts with the action's argument slots")
			}
		}

		// successor of the record's last expanded state
		last := start + len(rec.Frames) - 1
		next := last + 1
		switch rec.Next.Kind {
		case parser.NextSeq:
			if i == len(block.Records)-1 {
				return newError(ErrLabelNotFound, rec.Token, "chain does not terminate; expected goto, loop, wait or stop")
			}
		case parser.NextStop:
			next = 0
		case parser.NextLoop:
			next = loopTarget
		case parser.NextWait:
			next = last
		case parser.NextGoto:
			if rec.Next.ByIndex {
				if rec.Next.Index >= len(b.ctx.States) {
					return newError(ErrTypeMismatch, rec.Next.Token, fmt.Sprintf("state index %d out of range", rec.Next.Index))
				}
				next = rec.Next.Index
			} else {
				next, err = b.resolveLabel(scope, rec.Next.Token, rec.Next.Label)
				if err != nil {
					return err
				}
			}
		}

		for j := 0; j < len(rec.Frames); j++ {
			sub, err := subframeValue(rec.Frames[j], rec.Token)
			if err != nil {
				return err
			}
			if rec.Bright {
				sub |= patch.BrightBit()
			}

			s := &b.ctx.States[start+j]
			s.Sprite.Set(int32(spriteIdx))
			s.Subframe.Set(sub)
			s.Duration.Set(duration)
			if j == len(rec.Frames)-1 {
				s.Next.Set(int32(next))
			} else {
				s.Next.Set(int32(start + j + 1))
			}
			s.Action.Set(mnemonic)

			misc1, misc2 := int32(0), int32(0)
			if spread > 0 {
				misc1 = spread
			}
			if rec.Action != nil && action.Tier != patch.TierExtended21 {
				if len(args) > 0 {
					misc1 = args[0]
				}
				if len(args) > 1 {
					misc2 = args[1]
				}
			}
			s.Misc1.Set(misc1)
			s.Misc2.Set(misc2)

			if b.ctx.Tier >= patch.TierExtended21 {
				for k := range s.Args {
					v := int32(0)
					if rec.Action != nil && action.Tier == patch.TierExtended21 && k < len(args) {
						v = args[k]
					}
					s.Args[k].Set(v)
				}
			}
		}
	}
	return nil
}

// linkEntityStates writes well-known chain labels into entity link fields.
func (b *Binder) linkEntityStates(scope string, links map[string]*patch.Field) {
	table := b.labels[scope]
	for label, field := range links {
		if idx, ok := table[label]; ok {
			field.Set(int32(idx))
		}
	}
}

func (b *Binder) resolveThingRef(ref parser.EntityRef) (int, error) {
	if ref.ByName {
		idx, ok := b.aliases[strings.ToLower(ref.Name)]
		if !ok {
			return 0, newError(ErrLabelNotFound, ref.Token, fmt.Sprintf("unknown thing alias %q", ref.Name))
		}
		return idx, nil
	}
	if ref.Index < 0 || ref.Index >= len(b.ctx.Things) {
		return 0, newError(ErrTypeMismatch, ref.Token, fmt.Sprintf("thing index %d out of range", ref.Index))
	}
	return ref.Index, nil
}

// resolveDuration returns the bound duration and, for random durations, the
// spread stored in the state's Misc1 slot.
func (b *Binder) resolveDuration(expr parser.Expression) (int32, int32, error) {
	switch e := expr.(type) {
	case *parser.NumberLit:
		if e.Fixed {
			return 0, 0, newError(ErrTypeMismatch, e.Token, "duration must be an integer")
		}
		v, err := patch.CoerceInt(e.Value, false, patch.ParamInt)
		if err != nil {
			return 0, 0, newError(ErrTypeMismatch, e.Token, err.Error())
		}
		return v, 0, nil
	case *parser.RandomDuration:
		if b.ctx.Tier < patch.TierExtended21 {
			return 0, 0, newError(ErrTierViolation, e.Token, fmt.Sprintf("random durations require tier %s", patch.TierExtended21))
		}
		if e.Max < e.Min {
			return 0, 0, newError(ErrTypeMismatch, e.Token, "random duration max below min")
		}
		return int32(e.Min), int32(e.Max - e.Min), nil
	}
	return 0, 0, newError(ErrTypeMismatch, exprToken(expr), "expected duration")
}

func (b *Binder) resolveAction(call *parser.ActionCall, weaponCtx bool) (patch.Action, error) {
	action, ok := patch.Lookup(call.Name)
	if !ok {
		return patch.Action{}, newError(ErrUnknownAction, call.Token, fmt.Sprintf("unknown action %q", call.Name))
	}
	if action.Weapon != weaponCtx {
		if action.Weapon {
			return patch.Action{}, newError(ErrApplicabilityMismatch, call.Token, fmt.Sprintf("%s is a weapon routine used in a creature chain", action.Mnemonic))
		}
		return patch.Action{}, newError(ErrApplicabilityMismatch, call.Token, fmt.Sprintf("%s is a creature routine used in a weapon chain", action.Mnemonic))
	}
	if action.Tier > b.ctx.Tier {
		return patch.Action{}, newError(ErrTierViolation, call.Token, fmt.Sprintf("%s requires tier %s", action.Mnemonic, action.Tier))
	}
	return action, nil
}

func (b *Binder) resolveActionArgs(scope string, call *parser.ActionCall, action patch.Action) ([]int32, error) {
	if len(call.Args) != len(action.Params) {
		return nil, newError(ErrArityMismatch, call.Token,
			fmt.Sprintf("%s takes %d arguments, got %d", action.Mnemonic, len(action.Params), len(call.Args)))
	}
	args := make([]int32, len(call.Args))
	for i, arg := range call.Args {
		v, err := b.resolveValue(scope, arg, action.Params[i])
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// resolveValue coerces an expression to the declared parameter kind,
// resolving names through the context tables.
func (b *Binder) resolveValue(scope string, expr parser.Expression, kind patch.ParamKind) (int32, error) {
	return b.resolveValueFlags(scope, expr, kind, anyThingFlag)
}

func (b *Binder) resolveValueFlags(scope string, expr parser.Expression, kind patch.ParamKind, flagFn func(string) (int32, bool)) (int32, error) {
	switch e := expr.(type) {
	case *parser.NumberLit:
		v, err := patch.CoerceInt(e.Value, e.Fixed, kind)
		if err != nil {
			return 0, newError(ErrTypeMismatch, e.Token, err.Error())
		}
		return v, nil

	case *parser.BoolLit:
		if kind != patch.ParamBool {
			return 0, newError(ErrTypeMismatch, e.Token, fmt.Sprintf("expected %s value", kind))
		}
		if e.Value {
			return 1, nil
		}
		return 0, nil

	case *parser.Ident:
		switch kind {
		case patch.ParamSound:
			idx, ok := b.ctx.SoundByName(e.Value)
			if !ok {
				return 0, newError(ErrLabelNotFound, e.Token, fmt.Sprintf("unknown sound %q", e.Value))
			}
			return int32(idx), nil
		case patch.ParamThing:
			idx, ok := b.aliases[strings.ToLower(e.Value)]
			if !ok {
				return 0, newError(ErrLabelNotFound, e.Token, fmt.Sprintf("unknown thing alias %q", e.Value))
			}
			return int32(idx), nil
		case patch.ParamState:
			idx, err := b.resolveLabel(scope, e.Token, e.Value)
			if err != nil {
				return 0, err
			}
			return int32(idx), nil
		case patch.ParamFlags:
			v, ok := flagFn(e.Value)
			if !ok {
				return 0, newError(ErrTypeMismatch, e.Token, fmt.Sprintf("unknown flag %q", e.Value))
			}
			return v, nil
		}
		return 0, newError(ErrTypeMismatch, e.Token, fmt.Sprintf("unexpected name %q for %s value", e.Value, kind))

	case *parser.FlagUnion:
		if kind != patch.ParamFlags {
			return 0, newError(ErrTypeMismatch, e.Token, fmt.Sprintf("expected %s value", kind))
		}
		var sum int32
		for _, term := range e.Terms {
			v, err := b.resolveValueFlags(scope, term, kind, flagFn)
			if err != nil {
				return 0, err
			}
			sum |= v
		}
		return sum, nil

	case *parser.StringLit:
		return 0, newError(ErrTypeMismatch, e.Token, fmt.Sprintf("expected %s value, got a string", kind))
	}
	return 0, newError(ErrTypeMismatch, exprToken(expr), fmt.Sprintf("expected %s value", kind))
}

// resolveLabel looks a label up in the given scope, falling back to the
// file scope.
func (b *Binder) resolveLabel(scope string, tok lexer.Token, name string) (int, error) {
	key := strings.ToLower(name)
	if table := b.labels[scope]; table != nil {
		if idx, ok := table[key]; ok {
			return idx, nil
		}
	}
	if scope != fileScope {
		if table := b.labels[fileScope]; table != nil {
			if idx, ok := table[key]; ok {
				return idx, nil
			}
		}
	}
	return 0, newError(ErrLabelNotFound, tok, fmt.Sprintf("label %q not found", name))
}

// resolveFrameAction resolves the raw frame "action" field. Applicability
// is not checked here: a raw patch does not say which side uses the state.
func (b *Binder) resolveFrameAction(fa *parser.FieldAssign) (string, error) {
	id, ok := fa.Value.(*parser.Ident)
	if !ok {
		return "", newError(ErrTypeMismatch, fa.Token, "action value must be a mnemonic")
	}
	action, found := patch.Lookup(id.Value)
	if !found {
		return "", newError(ErrUnknownAction, id.Token, fmt.Sprintf("unknown action %q", id.Value))
	}
	if action.Tier > b.ctx.Tier {
		return "", newError(ErrTierViolation, id.Token, fmt.Sprintf("%s requires tier %s", action.Mnemonic, action.Tier))
	}
	return action.Mnemonic, nil
}

// resolveSpriteValue resolves the raw frame "sprite" field: a table index
// or a sprite name.
func (b *Binder) resolveSpriteValue(expr parser.Expression) (int32, error) {
	if id, ok := expr.(*parser.Ident); ok {
		idx, found := b.ctx.SpriteByName(id.Value)
		if !found {
			return 0, newError(ErrLabelNotFound, id.Token, fmt.Sprintf("unknown sprite %q", id.Value))
		}
		return int32(idx), nil
	}
	return b.resolveValue(fileScope, expr, patch.ParamInt)
}

// subframeValue maps a subframe letter to its table value.
func subframeValue(letter byte, tok lexer.Token) (int32, error) {
	switch {
	case letter >= 'A' && letter <= 'Z':
		return int32(letter - 'A'), nil
	case letter >= 'a' && letter <= 'z':
		return int32(letter - 'a'), nil
	}
	return 0, newError(ErrTypeMismatch, tok, fmt.Sprintf("invalid subframe letter %q", string(letter)))
}

// anyThingFlag resolves a flag mnemonic against the thing flag tables. The
// mnemonic sets are disjoint, so the order never changes the result.
func anyThingFlag(name string) (int32, bool) {
	if v, ok := patch.ThingFlag(name); ok {
		return v, ok
	}
	return patch.ThingFlag21(name)
}

// exprToken returns the position-carrying token of an expression.
func exprToken(expr parser.Expression) lexer.Token {
	switch e := expr.(type) {
	case *parser.NumberLit:
		return e.Token
	case *parser.StringLit:
		return e.Token
	case *parser.BoolLit:
		return e.Token
	case *parser.Ident:
		return e.Token
	case *parser.FlagUnion:
		return e.Token
	case *parser.RandomDuration:
		return e.Token
	}
	return lexer.Token{}
}

package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zurustar/decopatch/pkg/compiler/lexer"
)

// ParseError is one syntax diagnostic with its source position.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Parser parses patch script source code into an AST. Parsing stops at the
// first syntax error.
type Parser struct {
	l      *lexer.Lexer
	errors []*ParseError

	curToken  lexer.Token
	peekToken lexer.Token
}

// New creates a new Parser.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []*ParseError{},
	}

	// Read two tokens to initialize curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns the parser errors.
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

// ParseScript parses the entire script.
func (p *Parser) ParseScript() *Script {
	script := &Script{}
	script.Declarations = []Declaration{}

	for p.curToken.Type != lexer.TOKEN_EOF {
		// Skip comments
		if p.curToken.Type == lexer.TOKEN_COMMENT {
			p.nextToken()
			continue
		}

		decl := p.parseDeclaration()
		if decl != nil {
			script.Declarations = append(script.Declarations, decl)
		}
		if len(p.errors) > 0 {
			return script
		}
		p.nextToken()
	}

	return script
}

func (p *Parser) parseDeclaration() Declaration {
	switch p.curToken.Type {
	case lexer.TOKEN_THING:
		return p.parseThingDecl()
	case lexer.TOKEN_WEAPON:
		return p.parseWeaponDecl()
	case lexer.TOKEN_FRAME:
		return p.parseFrameDecl()
	case lexer.TOKEN_SOUND:
		return p.parseSoundDecl()
	case lexer.TOKEN_AMMO:
		return p.parseAmmoDecl()
	case lexer.TOKEN_MISC:
		return p.parseMiscDecl()
	case lexer.TOKEN_CHEATS:
		return p.parseCheatsDecl()
	case lexer.TOKEN_STRINGS:
		return p.parseStringsDecl()
	case lexer.TOKEN_PAR:
		return p.parseParDecl()
	case lexer.TOKEN_STATES:
		return p.parseStatesDecl()
	}
	p.addErrorAt(p.curToken, fmt.Sprintf("unexpected token %q at top level", p.curToken.Literal))
	return nil
}

func (p *Parser) parseThingDecl() Declaration {
	decl := &ThingDecl{Token: p.curToken}

	ref, ok := p.parseEntityRef()
	if !ok {
		return nil
	}
	decl.Ref = ref

	if p.peekToken.Type == lexer.TOKEN_AS {
		p.nextToken()
		if !p.expectPeek(lexer.TOKEN_IDENT) {
			return nil
		}
		decl.Alias = p.curToken.Literal
	}

	if p.peekToken.Type == lexer.TOKEN_STRING {
		p.nextToken()
		decl.DisplayName = p.curToken.Literal
		decl.HasName = true
	}

	if !p.expectPeek(lexer.TOKEN_LBRACE) {
		return nil
	}
	fields, states, ok := p.parseEntityBody(true)
	if !ok {
		return nil
	}
	decl.Fields = fields
	decl.States = states
	return decl
}

func (p *Parser) parseWeaponDecl() Declaration {
	decl := &WeaponDecl{Token: p.curToken}

	ref, ok := p.parseEntityRef()
	if !ok {
		return nil
	}
	decl.Ref = ref

	if p.peekToken.Type == lexer.TOKEN_STRING {
		p.nextToken()
		decl.DisplayName = p.curToken.Literal
		decl.HasName = true
	}

	if !p.expectPeek(lexer.TOKEN_LBRACE) {
		return nil
	}
	fields, states, ok := p.parseEntityBody(true)
	if !ok {
		return nil
	}
	decl.Fields = fields
	decl.States = states
	return decl
}

func (p *Parser) parseFrameDecl() Declaration {
	decl := &FrameDecl{Token: p.curToken}

	if !p.expectPeek(lexer.TOKEN_INT) {
		return nil
	}
	index, ok := p.parseIndex()
	if !ok {
		return nil
	}
	decl.Index = index

	if !p.expectPeek(lexer.TOKEN_LBRACE) {
		return nil
	}
	fields, _, ok := p.parseEntityBody(false)
	if !ok {
		return nil
	}
	decl.Fields = fields
	return decl
}

func (p *Parser) parseSoundDecl() Declaration {
	decl := &SoundDecl{Token: p.curToken}

	ref, ok := p.parseEntityRef()
	if !ok {
		return nil
	}
	decl.Ref = ref

	if !p.expectPeek(lexer.TOKEN_LBRACE) {
		return nil
	}
	fields, _, ok := p.parseEntityBody(false)
	if !ok {
		return nil
	}
	decl.Fields = fields
	return decl
}

func (p *Parser) parseAmmoDecl() Declaration {
	decl := &AmmoDecl{Token: p.curToken}

	if !p.expectPeek(lexer.TOKEN_INT) {
		return nil
	}
	index, ok := p.parseIndex()
	if !ok {
		return nil
	}
	decl.Index = index

	if p.peekToken.Type == lexer.TOKEN_STRING {
		p.nextToken()
		decl.DisplayName = p.curToken.Literal
		decl.HasName = true
	}

	if !p.expectPeek(lexer.TOKEN_LBRACE) {
		return nil
	}
	fields, _, ok := p.parseEntityBody(false)
	if !ok {
		return nil
	}
	decl.Fields = fields
	return decl
}

func (p *Parser) parseMiscDecl() Declaration {
	decl := &MiscDecl{Token: p.curToken}

	if !p.expectPeek(lexer.TOKEN_LBRACE) {
		return nil
	}
	fields, _, ok := p.parseEntityBody(false)
	if !ok {
		return nil
	}
	decl.Fields = fields
	return decl
}

func (p *Parser) parseCheatsDecl() Declaration {
	decl := &CheatsDecl{Token: p.curToken}
	entries, ok := p.parseTextBlock()
	if !ok {
		return nil
	}
	decl.Entries = entries
	return decl
}

func (p *Parser) parseStringsDecl() Declaration {
	decl := &StringsDecl{Token: p.curToken}
	entries, ok := p.parseTextBlock()
	if !ok {
		return nil
	}
	decl.Entries = entries
	return decl
}

// parseParDecl parses "par <episode> <map> <seconds>" or "par <map> <seconds>".
func (p *Parser) parseParDecl() Declaration {
	decl := &ParDecl{Token: p.curToken}

	if !p.expectPeek(lexer.TOKEN_INT) {
		return nil
	}
	first, ok := p.parseIndex()
	if !ok {
		return nil
	}
	if !p.expectPeek(lexer.TOKEN_INT) {
		return nil
	}
	second, ok := p.parseIndex()
	if !ok {
		return nil
	}

	if p.peekToken.Type == lexer.TOKEN_INT {
		p.nextToken()
		third, ok := p.parseIndex()
		if !ok {
			return nil
		}
		decl.Episode = first
		decl.Map = second
		decl.Seconds = third
		decl.HasEpisode = true
		return decl
	}

	decl.Map = first
	decl.Seconds = second
	return decl
}

func (p *Parser) parseStatesDecl() Declaration {
	tok := p.curToken
	block := p.parseStatesBlock()
	if block == nil {
		return nil
	}
	return &StatesDecl{Token: tok, Block: block}
}

// parseEntityRef parses a table index or name after a declaration keyword.
func (p *Parser) parseEntityRef() (EntityRef, bool) {
	switch p.peekToken.Type {
	case lexer.TOKEN_INT:
		p.nextToken()
		index, ok := p.parseIndex()
		if !ok {
			return EntityRef{}, false
		}
		return EntityRef{Token: p.curToken, Index: index}, true
	case lexer.TOKEN_IDENT:
		p.nextToken()
		return EntityRef{Token: p.curToken, Name: p.curToken.Literal, ByName: true}, true
	}
	p.addErrorAt(p.peekToken, fmt.Sprintf("expected table index or name, got %q", p.peekToken.Literal))
	return EntityRef{}, false
}

// parseEntityBody parses field assignments (and at most one states block when
// allowed) between braces. curToken must be the opening brace on entry and is
// the closing brace on a successful return.
func (p *Parser) parseEntityBody(allowStates bool) ([]*FieldAssign, *StatesBlock, bool) {
	open := p.curToken
	var fields []*FieldAssign
	var states *StatesBlock

	p.nextToken()
	for p.curToken.Type != lexer.TOKEN_RBRACE {
		switch p.curToken.Type {
		case lexer.TOKEN_COMMENT:
			// skip
		case lexer.TOKEN_EOF:
			p.addErrorAt(open, "unterminated block")
			return nil, nil, false
		case lexer.TOKEN_STATES:
			if !allowStates {
				p.addErrorAt(p.curToken, "states block not allowed here")
				return nil, nil, false
			}
			if states != nil {
				p.addErrorAt(p.curToken, "duplicate states block")
				return nil, nil, false
			}
			states = p.parseStatesBlock()
			if states == nil {
				return nil, nil, false
			}
		case lexer.TOKEN_IDENT:
			fa := p.parseFieldAssign()
			if fa == nil {
				return nil, nil, false
			}
			fields = append(fields, fa)
		default:
			p.addErrorAt(p.curToken, fmt.Sprintf("expected field name, got %q", p.curToken.Literal))
			return nil, nil, false
		}
		p.nextToken()
	}
	return fields, states, true
}

// parseTextBlock parses a block of name = "text" entries (cheats, strings).
func (p *Parser) parseTextBlock() ([]*TextAssign, bool) {
	if !p.expectPeek(lexer.TOKEN_LBRACE) {
		return nil, false
	}
	open := p.curToken
	var entries []*TextAssign

	p.nextToken()
	for p.curToken.Type != lexer.TOKEN_RBRACE {
		if p.curToken.Type == lexer.TOKEN_COMMENT {
			p.nextToken()
			continue
		}
		if p.curToken.Type == lexer.TOKEN_EOF {
			p.addErrorAt(open, "unterminated block")
			return nil, false
		}
		if !isIdentLike(p.curToken) {
			p.addErrorAt(p.curToken, fmt.Sprintf("expected name, got %q", p.curToken.Literal))
			return nil, false
		}
		entry := &TextAssign{Token: p.curToken, Name: p.curToken.Literal}
		if !p.expectPeek(lexer.TOKEN_ASSIGN) {
			return nil, false
		}
		if !p.expectPeek(lexer.TOKEN_STRING) {
			return nil, false
		}
		entry.Value = p.curToken.Literal
		entries = append(entries, entry)
		p.nextToken()
	}
	return entries, true
}

// parseFieldAssign parses "name = value". curToken must be the field name.
func (p *Parser) parseFieldAssign() *FieldAssign {
	fa := &FieldAssign{Token: p.curToken, Name: p.curToken.Literal}
	if !p.expectPeek(lexer.TOKEN_ASSIGN) {
		return nil
	}
	p.nextToken()
	fa.Value = p.parseValue()
	if fa.Value == nil {
		return nil
	}
	return fa
}

// parseValue parses a field or argument value. curToken must be its first
// token; curToken is the value's last token on return.
func (p *Parser) parseValue() Expression {
	switch p.curToken.Type {
	case lexer.TOKEN_MINUS:
		p.nextToken()
		n := p.parseNumber()
		if n == nil {
			return nil
		}
		n.Value = -n.Value
		return n
	case lexer.TOKEN_INT, lexer.TOKEN_FIXED:
		n := p.parseNumber()
		if n == nil {
			return nil
		}
		if p.peekToken.Type == lexer.TOKEN_PIPE {
			return p.parseFlagUnion(n)
		}
		return n
	case lexer.TOKEN_STRING:
		return &StringLit{Token: p.curToken, Value: p.curToken.Literal}
	case lexer.TOKEN_TRUE:
		return &BoolLit{Token: p.curToken, Value: true}
	case lexer.TOKEN_FALSE:
		return &BoolLit{Token: p.curToken, Value: false}
	case lexer.TOKEN_IDENT:
		id := &Ident{Token: p.curToken, Value: p.curToken.Literal}
		if p.peekToken.Type == lexer.TOKEN_PIPE {
			return p.parseFlagUnion(id)
		}
		return id
	}
	p.addErrorAt(p.curToken, fmt.Sprintf("expected value, got %q", p.curToken.Literal))
	return nil
}

// parseNumber parses the current INT or FIXED token. Fixed-point literals
// are scaled by 65536 and rounded.
func (p *Parser) parseNumber() *NumberLit {
	switch p.curToken.Type {
	case lexer.TOKEN_INT:
		v, err := strconv.ParseInt(p.curToken.Literal, 0, 64)
		if err != nil {
			p.addErrorAt(p.curToken, fmt.Sprintf("invalid integer literal %q", p.curToken.Literal))
			return nil
		}
		return &NumberLit{Token: p.curToken, Value: v}
	case lexer.TOKEN_FIXED:
		f, err := strconv.ParseFloat(p.curToken.Literal, 64)
		if err != nil {
			p.addErrorAt(p.curToken, fmt.Sprintf("invalid fixed-point literal %q", p.curToken.Literal))
			return nil
		}
		return &NumberLit{Token: p.curToken, Value: int64(math.Round(f * 65536)), Fixed: true}
	}
	p.addErrorAt(p.curToken, fmt.Sprintf("expected number, got %q", p.curToken.Literal))
	return nil
}

// parseFlagUnion parses the remaining '|'-joined terms after the first.
func (p *Parser) parseFlagUnion(first Expression) Expression {
	union := &FlagUnion{Token: p.curToken, Terms: []Expression{first}}
	for p.peekToken.Type == lexer.TOKEN_PIPE {
		p.nextToken() // pipe
		p.nextToken()
		switch p.curToken.Type {
		case lexer.TOKEN_IDENT:
			union.Terms = append(union.Terms, &Ident{Token: p.curToken, Value: p.curToken.Literal})
		case lexer.TOKEN_INT:
			n := p.parseNumber()
			if n == nil {
				return nil
			}
			union.Terms = append(union.Terms, n)
		default:
			p.addErrorAt(p.curToken, fmt.Sprintf("expected flag name, got %q", p.curToken.Literal))
			return nil
		}
	}
	return union
}

// parseStatesBlock parses "states <start> { ... }". curToken must be the
// states keyword.
func (p *Parser) parseStatesBlock() *StatesBlock {
	block := &StatesBlock{Token: p.curToken}

	if !p.expectPeek(lexer.TOKEN_INT) {
		return nil
	}
	start, ok := p.parseIndex()
	if !ok {
		return nil
	}
	block.Start = start

	if !p.expectPeek(lexer.TOKEN_LBRACE) {
		return nil
	}
	open := p.curToken

	p.nextToken()
	var labels []string
	for p.curToken.Type != lexer.TOKEN_RBRACE {
		if p.curToken.Type == lexer.TOKEN_COMMENT {
			p.nextToken()
			continue
		}
		if p.curToken.Type == lexer.TOKEN_EOF {
			p.addErrorAt(open, "unterminated states block")
			return nil
		}
		if p.curToken.Type == lexer.TOKEN_IDENT && p.peekToken.Type == lexer.TOKEN_COLON {
			labels = append(labels, p.curToken.Literal)
			p.nextToken() // colon
			p.nextToken()
			continue
		}
		rec := p.parseStateRecord(labels)
		if rec == nil {
			return nil
		}
		labels = nil
		block.Records = append(block.Records, rec)
		p.nextToken()
	}
	if len(labels) > 0 {
		p.addErrorAt(p.curToken, fmt.Sprintf("label %q has no state record", labels[0]))
		return nil
	}
	return block
}

// parseStateRecord parses one chain line:
// SPRITE FRAMES duration [bright] [A_Action(args)] [goto|loop|wait|stop]
func (p *Parser) parseStateRecord(labels []string) *StateRecord {
	if !isIdentLike(p.curToken) {
		p.addErrorAt(p.curToken, fmt.Sprintf("expected sprite name, got %q", p.curToken.Literal))
		return nil
	}
	rec := &StateRecord{Token: p.curToken, Labels: labels, Sprite: p.curToken.Literal}

	if !isIdentLike(p.peekToken) {
		p.addErrorAt(p.peekToken, fmt.Sprintf("expected subframe letters, got %q", p.peekToken.Literal))
		return nil
	}
	p.nextToken()
	rec.Frames = p.curToken.Literal

	p.nextToken()
	switch p.curToken.Type {
	case lexer.TOKEN_INT:
		n := p.parseNumber()
		if n == nil {
			return nil
		}
		rec.Duration = n
	case lexer.TOKEN_MINUS:
		p.nextToken()
		n := p.parseNumber()
		if n == nil {
			return nil
		}
		n.Value = -n.Value
		rec.Duration = n
	case lexer.TOKEN_RANDOM:
		rd := p.parseRandomDuration()
		if rd == nil {
			return nil
		}
		rec.Duration = rd
	default:
		p.addErrorAt(p.curToken, fmt.Sprintf("expected duration, got %q", p.curToken.Literal))
		return nil
	}

	if p.peekToken.Type == lexer.TOKEN_BRIGHT {
		p.nextToken()
		rec.Bright = true
	}

	// An identifier here is an action invocation; the A_ prefix separates it
	// from the next record's sprite name.
	if p.peekToken.Type == lexer.TOKEN_IDENT && isActionName(p.peekToken.Literal) {
		p.nextToken()
		rec.Action = p.parseActionCall()
		if rec.Action == nil {
			return nil
		}
	}

	switch p.peekToken.Type {
	case lexer.TOKEN_STOP:
		p.nextToken()
		rec.Next = NextRef{Token: p.curToken, Kind: NextStop}
	case lexer.TOKEN_LOOP:
		p.nextToken()
		rec.Next = NextRef{Token: p.curToken, Kind: NextLoop}
	case lexer.TOKEN_WAIT:
		p.nextToken()
		rec.Next = NextRef{Token: p.curToken, Kind: NextWait}
	case lexer.TOKEN_GOTO:
		p.nextToken()
		next := NextRef{Token: p.curToken, Kind: NextGoto}
		switch p.peekToken.Type {
		case lexer.TOKEN_INT:
			p.nextToken()
			index, ok := p.parseIndex()
			if !ok {
				return nil
			}
			next.Index = index
			next.ByIndex = true
		case lexer.TOKEN_IDENT:
			p.nextToken()
			next.Label = p.curToken.Literal
		default:
			p.addErrorAt(p.peekToken, fmt.Sprintf("expected state label or index after goto, got %q", p.peekToken.Literal))
			return nil
		}
		rec.Next = next
	default:
		rec.Next = NextRef{Token: rec.Token, Kind: NextSeq}
	}

	return rec
}

// parseActionCall parses an action mnemonic with optional parenthesised
// arguments. curToken must be the mnemonic.
func (p *Parser) parseActionCall() *ActionCall {
	call := &ActionCall{Token: p.curToken, Name: p.curToken.Literal}

	if p.peekToken.Type != lexer.TOKEN_LPAREN {
		return call
	}
	p.nextToken() // lparen

	if p.peekToken.Type == lexer.TOKEN_RPAREN {
		p.nextToken()
		return call
	}

	p.nextToken()
	for {
		arg := p.parseValue()
		if arg == nil {
			return nil
		}
		call.Args = append(call.Args, arg)
		if p.peekToken.Type != lexer.TOKEN_COMMA {
			break
		}
		p.nextToken() // comma
		p.nextToken()
	}
	if !p.expectPeek(lexer.TOKEN_RPAREN) {
		return nil
	}
	return call
}

// parseRandomDuration parses "random(min, max)". curToken must be the
// random keyword.
func (p *Parser) parseRandomDuration() *RandomDuration {
	rd := &RandomDuration{Token: p.curToken}
	if !p.expectPeek(lexer.TOKEN_LPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.TOKEN_INT) {
		return nil
	}
	min, err := strconv.ParseInt(p.curToken.Literal, 0, 32)
	if err != nil {
		p.addErrorAt(p.curToken, fmt.Sprintf("invalid integer literal %q", p.curToken.Literal))
		return nil
	}
	rd.Min = min
	if !p.expectPeek(lexer.TOKEN_COMMA) {
		return nil
	}
	if !p.expectPeek(lexer.TOKEN_INT) {
		return nil
	}
	max, err := strconv.ParseInt(p.curToken.Literal, 0, 32)
	if err != nil {
		p.addErrorAt(p.curToken, fmt.Sprintf("invalid integer literal %q", p.curToken.Literal))
		return nil
	}
	rd.Max = max
	if !p.expectPeek(lexer.TOKEN_RPAREN) {
		return nil
	}
	return rd
}

// parseIndex parses the current INT token as a non-negative table index.
func (p *Parser) parseIndex() (int, bool) {
	v, err := strconv.ParseInt(p.curToken.Literal, 0, 32)
	if err != nil || v < 0 {
		p.addErrorAt(p.curToken, fmt.Sprintf("invalid index %q", p.curToken.Literal))
		return 0, false
	}
	return int(v), true
}

// nextToken advances the token window, skipping nothing.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// expectPeek advances if the next token has the expected type and records an
// error otherwise.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekToken.Type == t {
		p.nextToken()
		return true
	}
	p.addErrorAt(p.peekToken, fmt.Sprintf("expected %s, got %q", t, p.peekToken.Literal))
	return false
}

func (p *Parser) addErrorAt(tok lexer.Token, msg string) {
	p.errors = append(p.errors, &ParseError{Line: tok.Line, Column: tok.Column, Message: msg})
}

// isIdentLike reports whether a token can serve as a bare name. Keywords are
// allowed so sprite letters and table entry names never collide with them.
func isIdentLike(tok lexer.Token) bool {
	return tok.Type == lexer.TOKEN_IDENT || tok.Type.IsKeyword()
}

// isActionName reports whether an identifier is an action mnemonic. Action
// invocations always carry the A_ prefix in chain position.
func isActionName(s string) bool {
	return strings.HasPrefix(strings.ToLower(s), "a_")
}

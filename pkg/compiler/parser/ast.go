// Package parser provides syntax analysis for patch scripts (.dh files).
package parser

import (
	"github.com/zurustar/decopatch/pkg/compiler/lexer"
)

// Node is the interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Declaration is the interface for all top-level declaration nodes.
type Declaration interface {
	Node
	declarationNode()
}

// Expression is the interface for all expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// Script is the root node of the AST.
type Script struct {
	Declarations []Declaration
}

// TokenLiteral returns the literal value of the first declaration's token.
func (s *Script) TokenLiteral() string {
	if len(s.Declarations) > 0 {
		return s.Declarations[0].TokenLiteral()
	}
	return ""
}

// EntityRef addresses a table entry either by numeric index or by a
// previously declared alias (or, for sounds, the engine sound name).
type EntityRef struct {
	Token  lexer.Token
	Index  int
	Name   string
	ByName bool
}

// FieldAssign represents one field assignment inside a declaration body.
// Example: health = 60, flags = solid|shootable
type FieldAssign struct {
	Token lexer.Token // field name token
	Name  string
	Value Expression
}

// TextAssign represents one string assignment inside a cheats or strings
// block. Example: GOTARMOR = "Picked up the armor."
type TextAssign struct {
	Token lexer.Token // name token
	Name  string
	Value string
}

// ThingDecl represents a thing declaration.
// Example: thing 12 as Trooper "Former Human" { health = 40 states 442 { ... } }
type ThingDecl struct {
	Token       lexer.Token
	Ref         EntityRef
	Alias       string // "as <Alias>", empty when none
	DisplayName string
	HasName     bool
	Fields      []*FieldAssign
	States      *StatesBlock
}

func (td *ThingDecl) declarationNode()     {}
func (td *ThingDecl) TokenLiteral() string { return td.Token.Literal }

// WeaponDecl represents a weapon declaration.
type WeaponDecl struct {
	Token       lexer.Token
	Ref         EntityRef
	DisplayName string
	HasName     bool
	Fields      []*FieldAssign
	States      *StatesBlock
}

func (wd *WeaponDecl) declarationNode()     {}
func (wd *WeaponDecl) TokenLiteral() string { return wd.Token.Literal }

// FrameDecl represents a raw state table patch.
// Example: frame 5 { duration = 3 action = A_Punch }
type FrameDecl struct {
	Token  lexer.Token
	Index  int
	Fields []*FieldAssign
}

func (fd *FrameDecl) declarationNode()     {}
func (fd *FrameDecl) TokenLiteral() string { return fd.Token.Literal }

// SoundDecl represents a sound table patch, addressed by index or name.
type SoundDecl struct {
	Token  lexer.Token
	Ref    EntityRef
	Fields []*FieldAssign
}

func (sd *SoundDecl) declarationNode()     {}
func (sd *SoundDecl) TokenLiteral() string { return sd.Token.Literal }

// AmmoDecl represents an ammo table patch.
type AmmoDecl struct {
	Token       lexer.Token
	Index       int
	DisplayName string
	HasName     bool
	Fields      []*FieldAssign
}

func (ad *AmmoDecl) declarationNode()     {}
func (ad *AmmoDecl) TokenLiteral() string { return ad.Token.Literal }

// MiscDecl represents the miscellaneous globals block.
type MiscDecl struct {
	Token  lexer.Token
	Fields []*FieldAssign
}

func (md *MiscDecl) declarationNode()     {}
func (md *MiscDecl) TokenLiteral() string { return md.Token.Literal }

// CheatsDecl represents the cheat replacement block.
type CheatsDecl struct {
	Token   lexer.Token
	Entries []*TextAssign
}

func (cd *CheatsDecl) declarationNode()     {}
func (cd *CheatsDecl) TokenLiteral() string { return cd.Token.Literal }

// StringsDecl represents the string replacement block.
type StringsDecl struct {
	Token   lexer.Token
	Entries []*TextAssign
}

func (sd *StringsDecl) declarationNode()     {}
func (sd *StringsDecl) TokenLiteral() string { return sd.Token.Literal }

// ParDecl represents one par time.
// Example: par 1 3 70 (episode form) or par 12 150 (flat map form)
type ParDecl struct {
	Token      lexer.Token
	Episode    int
	Map        int
	Seconds    int
	HasEpisode bool
}

func (pd *ParDecl) declarationNode()     {}
func (pd *ParDecl) TokenLiteral() string { return pd.Token.Literal }

// StatesDecl represents a free-standing state chain. Its labels live in the
// file scope and are visible to goto references in entity chains.
type StatesDecl struct {
	Token lexer.Token
	Block *StatesBlock
}

func (sd *StatesDecl) declarationNode()     {}
func (sd *StatesDecl) TokenLiteral() string { return sd.Token.Literal }

// StatesBlock is a chain of state records filling consecutive table rows
// starting at Start.
type StatesBlock struct {
	Token   lexer.Token
	Start   int
	Records []*StateRecord
}

// StateRecord is one line of a state chain before sprite-group expansion.
// Example: TROO AB 10 bright A_Chase
type StateRecord struct {
	Token    lexer.Token
	Labels   []string // labels attached immediately before this record
	Sprite   string
	Frames   string // subframe letters, one expanded record per letter
	Duration Expression
	Bright   bool
	Action   *ActionCall // nil when the record binds no action
	Next     NextRef
}

// ActionCall is an action pointer invocation with optional arguments.
type ActionCall struct {
	Token lexer.Token
	Name  string
	Args  []Expression
}

// NextKind discriminates how a state record links onward.
type NextKind int

const (
	NextSeq  NextKind = iota // fall through to the following record
	NextStop                 // stop: link to state 0
	NextLoop                 // loop: link to the chain's first label
	NextWait                 // wait: link to the record's own index
	NextGoto                 // goto <label|index>
)

// NextRef is the resolved-later successor of a state record.
type NextRef struct {
	Token   lexer.Token
	Kind    NextKind
	Label   string
	Index   int
	ByIndex bool
}

// NumberLit represents an integer or fixed-point literal. Fixed literals
// carry their value already scaled by 65536.
type NumberLit struct {
	Token lexer.Token
	Value int64
	Fixed bool
}

func (nl *NumberLit) expressionNode()      {}
func (nl *NumberLit) TokenLiteral() string { return nl.Token.Literal }

// StringLit represents a quoted string literal.
type StringLit struct {
	Token lexer.Token
	Value string
}

func (sl *StringLit) expressionNode()      {}
func (sl *StringLit) TokenLiteral() string { return sl.Token.Literal }

// BoolLit represents true or false.
type BoolLit struct {
	Token lexer.Token
	Value bool
}

func (bl *BoolLit) expressionNode()      {}
func (bl *BoolLit) TokenLiteral() string { return bl.Token.Literal }

// Ident represents a bare name: a flag mnemonic, sound name, sprite name,
// entity alias, state label, or action mnemonic, depending on position.
type Ident struct {
	Token lexer.Token
	Value string
}

func (i *Ident) expressionNode()      {}
func (i *Ident) TokenLiteral() string { return i.Token.Literal }

// FlagUnion represents a '|'-joined flag value. Terms are Ident or
// NumberLit nodes.
type FlagUnion struct {
	Token lexer.Token
	Terms []Expression
}

func (fu *FlagUnion) expressionNode()      {}
func (fu *FlagUnion) TokenLiteral() string { return fu.Token.Literal }

// RandomDuration represents random(min, max) in duration position.
type RandomDuration struct {
	Token lexer.Token
	Min   int64
	Max   int64
}

func (rd *RandomDuration) expressionNode()      {}
func (rd *RandomDuration) TokenLiteral() string { return rd.Token.Literal }

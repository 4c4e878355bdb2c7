// Package lexer provides lexical analysis for patch scripts (.dh files).
package lexer

import "strings"

// TokenType represents the type of a token.
type TokenType int

// Token types
const (
	// Special tokens
	TOKEN_ILLEGAL TokenType = iota
	TOKEN_EOF
	TOKEN_COMMENT

	// Literals
	TOKEN_IDENT  // identifier
	TOKEN_INT    // integer literal (decimal or hexadecimal)
	TOKEN_FIXED  // fixed-point literal (has a decimal point)
	TOKEN_STRING // string literal

	// Delimiters and operators
	TOKEN_LBRACE // {
	TOKEN_RBRACE // }
	TOKEN_LPAREN // (
	TOKEN_RPAREN // )
	TOKEN_COLON  // :
	TOKEN_COMMA  // ,
	TOKEN_ASSIGN // =
	TOKEN_PIPE   // |
	TOKEN_MINUS  // -
	TOKEN_PLUS   // +

	// Keywords
	TOKEN_THING   // thing
	TOKEN_WEAPON  // weapon
	TOKEN_FRAME   // frame
	TOKEN_SOUND   // sound
	TOKEN_AMMO    // ammo
	TOKEN_MISC    // misc
	TOKEN_CHEATS  // cheats
	TOKEN_STRINGS // strings
	TOKEN_PAR     // par
	TOKEN_STATES  // states
	TOKEN_AS      // as
	TOKEN_GOTO    // goto
	TOKEN_LOOP    // loop
	TOKEN_WAIT    // wait
	TOKEN_STOP    // stop
	TOKEN_BRIGHT  // bright
	TOKEN_RANDOM  // random
	TOKEN_TRUE    // true
	TOKEN_FALSE   // false
)

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// tokenTypeNames maps TokenType to its string representation.
var tokenTypeNames = map[TokenType]string{
	// Special tokens
	TOKEN_ILLEGAL: "ILLEGAL",
	TOKEN_EOF:     "EOF",
	TOKEN_COMMENT: "COMMENT",

	// Literals
	TOKEN_IDENT:  "IDENT",
	TOKEN_INT:    "INT",
	TOKEN_FIXED:  "FIXED",
	TOKEN_STRING: "STRING",

	// Delimiters and operators
	TOKEN_LBRACE: "{",
	TOKEN_RBRACE: "}",
	TOKEN_LPAREN: "(",
	TOKEN_RPAREN: ")",
	TOKEN_COLON:  ":",
	TOKEN_COMMA:  ",",
	TOKEN_ASSIGN: "=",
	TOKEN_PIPE:   "|",
	TOKEN_MINUS:  "-",
	TOKEN_PLUS:   "+",

	// Keywords
	TOKEN_THING:   "thing",
	TOKEN_WEAPON:  "weapon",
	TOKEN_FRAME:   "frame",
	TOKEN_SOUND:   "sound",
	TOKEN_AMMO:    "ammo",
	TOKEN_MISC:    "misc",
	TOKEN_CHEATS:  "cheats",
	TOKEN_STRINGS: "strings",
	TOKEN_PAR:     "par",
	TOKEN_STATES:  "states",
	TOKEN_AS:      "as",
	TOKEN_GOTO:    "goto",
	TOKEN_LOOP:    "loop",
	TOKEN_WAIT:    "wait",
	TOKEN_STOP:    "stop",
	TOKEN_BRIGHT:  "bright",
	TOKEN_RANDOM:  "random",
	TOKEN_TRUE:    "true",
	TOKEN_FALSE:   "false",
}

// String returns a string representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsKeyword returns true if the token type is a keyword.
func (t TokenType) IsKeyword() bool {
	return t >= TOKEN_THING && t <= TOKEN_FALSE
}

// IsLiteral returns true if the token type is a literal.
func (t TokenType) IsLiteral() bool {
	return t >= TOKEN_IDENT && t <= TOKEN_STRING
}

// keywords maps keyword strings (lowercase) to their TokenType.
// All keywords are stored in lowercase for case-insensitive matching.
var keywords = map[string]TokenType{
	"thing":   TOKEN_THING,
	"weapon":  TOKEN_WEAPON,
	"frame":   TOKEN_FRAME,
	"sound":   TOKEN_SOUND,
	"ammo":    TOKEN_AMMO,
	"misc":    TOKEN_MISC,
	"cheats":  TOKEN_CHEATS,
	"strings": TOKEN_STRINGS,
	"par":     TOKEN_PAR,
	"states":  TOKEN_STATES,
	"as":      TOKEN_AS,
	"goto":    TOKEN_GOTO,
	"loop":    TOKEN_LOOP,
	"wait":    TOKEN_WAIT,
	"stop":    TOKEN_STOP,
	"bright":  TOKEN_BRIGHT,
	"random":  TOKEN_RANDOM,
	"true":    TOKEN_TRUE,
	"false":   TOKEN_FALSE,
}

// LookupIdent checks if the given identifier is a keyword.
// The lookup is case-insensitive (STOP, stop, Stop all map to TOKEN_STOP).
// If the identifier is a keyword, it returns the corresponding TokenType.
// Otherwise, it returns TOKEN_IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return TOKEN_IDENT
}

package lexer

// Lexer tokenizes patch script source code.
type Lexer struct {
	input        string
	position     int  // current position in input
	readPosition int  // current reading position (after current char)
	ch           byte // current char
	line         int  // current line number
	column       int  // current column number
}

// New creates a new Lexer.
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	tok.Line = l.line
	tok.Column = l.column

	switch l.ch {
	case '{':
		tok = l.newToken(TOKEN_LBRACE, l.ch)
	case '}':
		tok = l.newToken(TOKEN_RBRACE, l.ch)
	case '(':
		tok = l.newToken(TOKEN_LPAREN, l.ch)
	case ')':
		tok = l.newToken(TOKEN_RPAREN, l.ch)
	case ':':
		tok = l.newToken(TOKEN_COLON, l.ch)
	case ',':
		tok = l.newToken(TOKEN_COMMA, l.ch)
	case '=':
		tok = l.newToken(TOKEN_ASSIGN, l.ch)
	case '|':
		tok = l.newToken(TOKEN_PIPE, l.ch)
	case '-':
		tok = l.newToken(TOKEN_MINUS, l.ch)
	case '+':
		tok = l.newToken(TOKEN_PLUS, l.ch)
	case '/':
		if l.peekChar() == '/' {
			// Single-line comment
			tok.Type = TOKEN_COMMENT
			tok.Literal = l.readComment()
			return tok
		} else if l.peekChar() == '*' {
			// Multi-line comment
			tok.Type = TOKEN_COMMENT
			tok.Literal = l.readMultiLineComment()
			return tok
		}
		tok = l.newToken(TOKEN_ILLEGAL, l.ch)
	case '"':
		tok.Type = TOKEN_STRING
		tok.Literal = l.readString()
	case 0:
		tok.Literal = ""
		tok.Type = TOKEN_EOF
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
			return tok
		} else if isDigit(l.ch) {
			return l.readNumber(tok.Line, tok.Column)
		} else {
			tok = l.newToken(TOKEN_ILLEGAL, l.ch)
		}
	}

	l.readChar()
	return tok
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// readIdentifier reads an identifier.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads a number (integer, fixed-point, or hexadecimal).
func (l *Lexer) readNumber(line, column int) Token {
	position := l.position
	isFixed := false

	// Check for hexadecimal (0x or 0X)
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar() // consume '0'
		l.readChar() // consume 'x' or 'X'

		// Read hex digits
		for isHexDigit(l.ch) {
			l.readChar()
		}

		literal := l.input[position:l.position]
		return Token{Type: TOKEN_INT, Literal: literal, Line: line, Column: column}
	}

	// Read decimal digits
	for isDigit(l.ch) {
		l.readChar()
	}

	// Check for decimal point
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFixed = true
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	literal := l.input[position:l.position]
	if isFixed {
		return Token{Type: TOKEN_FIXED, Literal: literal, Line: line, Column: column}
	}
	return Token{Type: TOKEN_INT, Literal: literal, Line: line, Column: column}
}

// readString reads a string literal, handling backslash escapes.
func (l *Lexer) readString() string {
	var out []byte
	for {
		l.readChar()
		if l.ch == '"' || l.ch == 0 {
			break
		}
		if l.ch == '\\' {
			switch l.peekChar() {
			case '"':
				out = append(out, '"')
				l.readChar()
				continue
			case '\\':
				out = append(out, '\\')
				l.readChar()
				continue
			case 'n':
				out = append(out, '\n')
				l.readChar()
				continue
			case 't':
				out = append(out, '\t')
				l.readChar()
				continue
			}
		}
		out = append(out, l.ch)
	}
	return string(out)
}

// readComment reads a single-line comment.
func (l *Lexer) readComment() string {
	position := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readMultiLineComment reads a multi-line comment /* ... */
func (l *Lexer) readMultiLineComment() string {
	position := l.position
	l.readChar() // consume /
	l.readChar() // consume *

	for {
		if l.ch == 0 {
			break // EOF
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // consume *
			l.readChar() // consume /
			break
		}
		l.readChar()
	}

	return l.input[position:l.position]
}

// skipWhitespace skips whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// newToken creates a new token.
func (l *Lexer) newToken(tokenType TokenType, ch byte) Token {
	return Token{Type: tokenType, Literal: string(ch), Line: l.line, Column: l.column}
}

// isLetter checks if a character is a letter.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit checks if a character is a digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// isHexDigit checks if a character is a hexadecimal digit.
func isHexDigit(ch byte) bool {
	return ('0' <= ch && ch <= '9') || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

// GetSource returns the source code as a string
func (l *Lexer) GetSource() string {
	return l.input
}

package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nooga/tsgrammar/pkg/source"
)

// TokenType represents the type of a token.
type TokenType string

// Token represents a lexical token.
type Token struct {
	Type     TokenType
	Literal  string // The raw text of the token as it appears in the source
	Value    string // Cooked value for STRING tokens; diagnostic for ILLEGAL tokens
	StartPos int    // 0-based byte offset where the token starts
	EndPos   int    // 0-based byte offset after the token ends
}

// --- Token Types ---
const (
	// Special
	ILLEGAL TokenType = "ILLEGAL" // Unknown token/character
	EOF     TokenType = "EOF"     // End Of File

	// Identifiers + Literals
	IDENT  TokenType = "IDENT"  // functionName, variableName, contextual keywords
	NUMBER TokenType = "NUMBER" // 123, 45.67, 0xff
	STRING TokenType = "STRING" // "hello world"
	REGEX  TokenType = "REGEX"  // /ab+c/gi

	// Operators
	ASSIGN      TokenType = "="
	PLUS        TokenType = "+"
	MINUS       TokenType = "-"
	BANG        TokenType = "!"
	TILDE       TokenType = "~"
	ASTERISK    TokenType = "*"
	SLASH       TokenType = "/"
	REMAINDER   TokenType = "%"
	EXPONENT    TokenType = "**"
	LT          TokenType = "<"
	GT          TokenType = ">"
	LE          TokenType = "<="
	GE          TokenType = ">="
	EQ          TokenType = "=="
	NOT_EQ      TokenType = "!="
	STRICT_EQ   TokenType = "==="
	STRICT_NE   TokenType = "!=="
	DOT         TokenType = "."
	SPREAD      TokenType = "..."
	INC         TokenType = "++"
	DEC         TokenType = "--"
	BITWISE_AND TokenType = "&"
	PIPE        TokenType = "|" // Bitwise or in values, union in types
	BITWISE_XOR TokenType = "^"
	LOGICAL_AND TokenType = "&&"
	LOGICAL_OR  TokenType = "||"
	COALESCE    TokenType = "??"
	QUESTION    TokenType = "?"

	// Shift
	LEFT_SHIFT           TokenType = "<<"
	RIGHT_SHIFT          TokenType = ">>"
	UNSIGNED_RIGHT_SHIFT TokenType = ">>>"

	// Compound Assignment
	PLUS_ASSIGN                 TokenType = "+="
	MINUS_ASSIGN                TokenType = "-="
	ASTERISK_ASSIGN             TokenType = "*="
	SLASH_ASSIGN                TokenType = "/="
	REMAINDER_ASSIGN            TokenType = "%="
	EXPONENT_ASSIGN             TokenType = "**="
	LEFT_SHIFT_ASSIGN           TokenType = "<<="
	RIGHT_SHIFT_ASSIGN          TokenType = ">>="
	UNSIGNED_RIGHT_SHIFT_ASSIGN TokenType = ">>>="
	BITWISE_AND_ASSIGN          TokenType = "&="
	BITWISE_OR_ASSIGN           TokenType = "|="
	BITWISE_XOR_ASSIGN          TokenType = "^="
	LOGICAL_AND_ASSIGN          TokenType = "&&="
	LOGICAL_OR_ASSIGN           TokenType = "||="
	COALESCE_ASSIGN             TokenType = "??="

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"
	ARROW     TokenType = "=>"

	// Keywords
	FUNCTION   TokenType = "FUNCTION"
	VAR        TokenType = "VAR"
	LET        TokenType = "LET"
	CONST      TokenType = "CONST"
	TRUE       TokenType = "TRUE"
	FALSE      TokenType = "FALSE"
	NULL       TokenType = "NULL"
	IF         TokenType = "IF"
	ELSE       TokenType = "ELSE"
	RETURN     TokenType = "RETURN"
	WHILE      TokenType = "WHILE"
	THROW      TokenType = "THROW"
	NEW        TokenType = "NEW"
	THIS       TokenType = "THIS"
	VOID       TokenType = "VOID"
	TYPEOF     TokenType = "TYPEOF"
	DELETE     TokenType = "DELETE"
	IMPORT     TokenType = "IMPORT"
	EXTENDS    TokenType = "EXTENDS"
	IN         TokenType = "IN"
	INSTANCEOF TokenType = "INSTANCEOF"
)

// Contextual words such as "type", "interface", "as" and "infer" are
// deliberately absent: they stay IDENT and get their meaning from the
// grammar position that inspects them.
var keywords = map[string]TokenType{
	"function":   FUNCTION,
	"var":        VAR,
	"let":        LET,
	"const":      CONST,
	"true":       TRUE,
	"false":      FALSE,
	"null":       NULL,
	"if":         IF,
	"else":       ELSE,
	"return":     RETURN,
	"while":      WHILE,
	"throw":      THROW,
	"new":        NEW,
	"this":       THIS,
	"void":       VOID,
	"typeof":     TYPEOF,
	"delete":     DELETE,
	"import":     IMPORT,
	"extends":    EXTENDS,
	"in":         IN,
	"instanceof": INSTANCEOF,
}

// LookupIdent checks the keywords table for an identifier.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return IDENT
}

// IsKeyword reports whether t is a reserved word token.
func IsKeyword(t TokenType) bool {
	for _, kw := range keywords {
		if kw == t {
			return true
		}
	}
	return false
}

// Lexer holds the state of the scanner.
type Lexer struct {
	src          *source.SourceFile
	input        string
	position     int  // current position in input (points to current char's byte offset)
	readPosition int  // current reading position in input (byte offset after current char)
	ch           byte // current char under examination
	lastType     TokenType
}

// NewLexer creates a new Lexer over a source file.
func NewLexer(src *source.SourceFile) *Lexer {
	l := &Lexer{src: src, input: src.Content, lastType: SEMICOLON}
	l.readChar()
	return l
}

// NewLexerString is a shorthand for lexing an anonymous string.
func NewLexerString(input string) *Lexer {
	return NewLexer(source.NewEvalSource(input))
}

// GetSource returns the source file being lexed.
func (l *Lexer) GetSource() *source.SourceFile {
	return l.src
}

// CurrentPosition returns the lexer's current byte position in the input.
func (l *Lexer) CurrentPosition() int {
	return l.position
}

// Rescan repositions the lexer at an arbitrary byte offset. The next call to
// NextToken scans a fresh token starting there. The parser uses this to
// split a multi-character operator such as ">>" into single characters.
func (l *Lexer) Rescan(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos >= len(l.input) {
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.ch = 0
		return
	}
	l.position = pos
	l.readPosition = pos + 1
	l.ch = l.input[pos]
	// The remainder is scanned as if it followed a single '>'.
	l.lastType = GT
}

// readChar gives us the next character and advances our position in the input string.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // 0 is ASCII for NUL, signifies EOF
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// peekChar looks ahead in the input without consuming the character.
func (l *Lexer) peekChar() byte {
	return l.peekCharAt(0)
}

func (l *Lexer) peekCharAt(n int) byte {
	if l.readPosition+n >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition+n]
}

// skipWhitespace consumes whitespace and comments. It returns an ILLEGAL
// token if a block comment is left unterminated.
func (l *Lexer) skipWhitespace() *Token {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\v' || l.ch == '\f':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			l.skipComment()
		case l.ch == '/' && l.peekChar() == '*':
			start := l.position
			if !l.skipMultilineComment() {
				return &Token{Type: ILLEGAL, Literal: l.input[start:l.position], Value: "Unterminated comment", StartPos: start, EndPos: l.position}
			}
		case l.ch >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.input[l.position:])
			if r != 0xFEFF && r != 0xA0 && r != 0x2028 && r != 0x2029 && !unicode.Is(unicode.Zs, r) {
				return nil
			}
			for i := 0; i < size; i++ {
				l.readChar()
			}
		default:
			return nil
		}
	}
}

// NextToken scans the input and returns the next token.
func (l *Lexer) NextToken() Token {
	tok := l.scan()
	l.lastType = tok.Type
	return tok
}

func (l *Lexer) scan() Token {
	if bad := l.skipWhitespace(); bad != nil {
		return *bad
	}

	startPos := l.position

	switch l.ch {
	case 0:
		if l.position >= len(l.input) {
			return Token{Type: EOF, StartPos: startPos, EndPos: startPos}
		}
		l.readChar()
		return l.token(ILLEGAL, startPos)
	case '"', '\'':
		value, msg := l.readString(l.ch)
		if msg != "" {
			tok := l.token(ILLEGAL, startPos)
			tok.Value = msg
			return tok
		}
		tok := l.token(STRING, startPos)
		tok.Value = value
		return tok
	case '/':
		if l.regexAllowed() {
			if msg := l.readRegex(); msg != "" {
				tok := l.token(ILLEGAL, startPos)
				tok.Value = msg
				return tok
			}
			return l.token(REGEX, startPos)
		}
		return l.operator(startPos, SLASH, SLASH_ASSIGN)
	case '.':
		if isDigit(l.peekChar()) {
			l.readNumber()
			return l.token(NUMBER, startPos)
		}
		if l.peekChar() == '.' && l.peekCharAt(1) == '.' {
			l.readChar()
			l.readChar()
			l.readChar()
			return l.token(SPREAD, startPos)
		}
		l.readChar()
		return l.token(DOT, startPos)
	case '=':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return l.token(ARROW, startPos)
		}
		if l.peekChar() == '=' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				l.readChar()
				return l.token(STRICT_EQ, startPos)
			}
			l.readChar()
			return l.token(EQ, startPos)
		}
		l.readChar()
		return l.token(ASSIGN, startPos)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				l.readChar()
				return l.token(STRICT_NE, startPos)
			}
			l.readChar()
			return l.token(NOT_EQ, startPos)
		}
		l.readChar()
		return l.token(BANG, startPos)
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			l.readChar()
			return l.token(INC, startPos)
		}
		return l.operator(startPos, PLUS, PLUS_ASSIGN)
	case '-':
		if l.peekChar() == '-' {
			l.readChar()
			l.readChar()
			return l.token(DEC, startPos)
		}
		return l.operator(startPos, MINUS, MINUS_ASSIGN)
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			return l.operator(startPos, EXPONENT, EXPONENT_ASSIGN)
		}
		return l.operator(startPos, ASTERISK, ASTERISK_ASSIGN)
	case '%':
		return l.operator(startPos, REMAINDER, REMAINDER_ASSIGN)
	case '^':
		return l.operator(startPos, BITWISE_XOR, BITWISE_XOR_ASSIGN)
	case '~':
		l.readChar()
		return l.token(TILDE, startPos)
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			return l.operator(startPos, LOGICAL_AND, LOGICAL_AND_ASSIGN)
		}
		return l.operator(startPos, BITWISE_AND, BITWISE_AND_ASSIGN)
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			return l.operator(startPos, LOGICAL_OR, LOGICAL_OR_ASSIGN)
		}
		return l.operator(startPos, PIPE, BITWISE_OR_ASSIGN)
	case '?':
		if l.peekChar() == '?' {
			l.readChar()
			return l.operator(startPos, COALESCE, COALESCE_ASSIGN)
		}
		l.readChar()
		return l.token(QUESTION, startPos)
	case '<':
		if l.peekChar() == '<' {
			l.readChar()
			return l.operator(startPos, LEFT_SHIFT, LEFT_SHIFT_ASSIGN)
		}
		return l.operator(startPos, LT, LE)
	case '>':
		if l.peekChar() == '>' {
			l.readChar()
			if l.peekChar() == '>' {
				l.readChar()
				return l.operator(startPos, UNSIGNED_RIGHT_SHIFT, UNSIGNED_RIGHT_SHIFT_ASSIGN)
			}
			return l.operator(startPos, RIGHT_SHIFT, RIGHT_SHIFT_ASSIGN)
		}
		return l.operator(startPos, GT, GE)
	case ';':
		l.readChar()
		return l.token(SEMICOLON, startPos)
	case ':':
		l.readChar()
		return l.token(COLON, startPos)
	case ',':
		l.readChar()
		return l.token(COMMA, startPos)
	case '(':
		l.readChar()
		return l.token(LPAREN, startPos)
	case ')':
		l.readChar()
		return l.token(RPAREN, startPos)
	case '{':
		l.readChar()
		return l.token(LBRACE, startPos)
	case '}':
		l.readChar()
		return l.token(RBRACE, startPos)
	case '[':
		l.readChar()
		return l.token(LBRACKET, startPos)
	case ']':
		l.readChar()
		return l.token(RBRACKET, startPos)
	}

	if l.isIdentifierStart() {
		literal := l.readIdentifier()
		return Token{Type: LookupIdent(literal), Literal: literal, StartPos: startPos, EndPos: l.position}
	}
	if isDigit(l.ch) {
		l.readNumber()
		if l.isIdentifierStart() {
			// 3in, 1_000x ...
			l.readIdentifier()
			tok := l.token(ILLEGAL, startPos)
			tok.Value = "Identifier directly after number"
			return tok
		}
		return l.token(NUMBER, startPos)
	}

	// Illegal character
	_, size := utf8.DecodeRuneInString(l.input[l.position:])
	for i := 0; i < size; i++ {
		l.readChar()
	}
	tok := l.token(ILLEGAL, startPos)
	tok.Value = "Unexpected character " + strconv.Quote(tok.Literal)
	return tok
}

// operator consumes the current char and, if followed by '=', the
// assignment form of the operator.
func (l *Lexer) operator(startPos int, plain, assign TokenType) Token {
	if l.peekChar() == '=' {
		l.readChar()
		l.readChar()
		return l.token(assign, startPos)
	}
	l.readChar()
	return l.token(plain, startPos)
}

func (l *Lexer) token(t TokenType, startPos int) Token {
	return Token{Type: t, Literal: l.input[startPos:l.position], StartPos: startPos, EndPos: l.position}
}

// regexAllowed decides whether a '/' starts a regular expression, based on
// the previous significant token.
func (l *Lexer) regexAllowed() bool {
	switch l.lastType {
	case IDENT, NUMBER, STRING, REGEX, RPAREN, RBRACKET, RBRACE,
		TRUE, FALSE, NULL, THIS, INC, DEC:
		return false
	}
	return true
}

// readRegex reads /pattern/flags. Validation of the pattern is left to the
// parser. Returns a diagnostic on failure.
func (l *Lexer) readRegex() string {
	l.readChar() // opening '/'
	inClass := false
	for {
		if source.LineBreakLen(l.input, l.position) > 0 {
			return "Unterminated regular expression"
		}
		switch l.ch {
		case 0:
			return "Unterminated regular expression"
		case '\\':
			l.readChar()
			if l.ch == 0 || l.ch == '\n' || l.ch == '\r' {
				return "Unterminated regular expression"
			}
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				l.readChar() // closing '/'
				for isLetter(l.ch) {
					l.readChar()
				}
				return ""
			}
		}
		l.readChar()
	}
}

func (l *Lexer) isIdentifierStart() bool {
	if l.ch < utf8.RuneSelf {
		return isLetter(l.ch) || l.ch == '$'
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.position:])
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func (l *Lexer) isIdentifierPart() bool {
	if l.ch < utf8.RuneSelf {
		return isLetter(l.ch) || isDigit(l.ch) || l.ch == '$'
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.position:])
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc, unicode.Nl) ||
		r == 0x200C || r == 0x200D
}

// readIdentifier reads an identifier (letters, digits, _, $ and unicode
// letters) and advances the lexer's position. It returns the raw text.
func (l *Lexer) readIdentifier() string {
	startPos := l.position
	for l.position < len(l.input) && l.isIdentifierPart() {
		if l.ch < utf8.RuneSelf {
			l.readChar()
			continue
		}
		_, size := utf8.DecodeRuneInString(l.input[l.position:])
		for i := 0; i < size; i++ {
			l.readChar()
		}
	}
	return l.input[startPos:l.position]
}

// readNumber reads a number literal (integer or float, various bases) and advances the lexer's position.
// Handles decimal (optional exponent/fraction), hex (0x), binary (0b), octal (0o) and numeric separators.
func (l *Lexer) readNumber() {
	base := 10

	if l.ch == '0' {
		switch l.peekChar() {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 10 {
			l.readChar()
			l.readChar()
		}
	}

	l.readDigits(base)

	if base != 10 {
		if l.ch == 'n' {
			l.readChar()
		}
		return
	}

	if l.ch == '.' {
		l.readChar()
		l.readDigits(10)
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekCharAt(1))) {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			l.readDigits(10)
		}
	} else if l.ch == 'n' {
		l.readChar() // BigInt suffix
	}
}

func (l *Lexer) readDigits(base int) {
	for isDigitForBase(l.ch, base) || (l.ch == '_' && isDigitForBase(l.peekChar(), base)) {
		l.readChar()
	}
}

// readString reads a string literal enclosed in the given quote character.
// Returns the cooked value, or a diagnostic if the string is unterminated
// or contains an invalid escape sequence.
// Advances the lexer's position to *after* the closing quote if successful.
func (l *Lexer) readString(quote byte) (string, string) {
	var builder strings.Builder
	l.readChar() // opening quote

	for {
		switch l.ch {
		case quote:
			l.readChar()
			return builder.String(), ""
		case 0:
			if l.position >= len(l.input) {
				return "", "Unterminated string constant"
			}
			builder.WriteByte(0)
		case '\n', '\r':
			return "", "Unterminated string constant"
		case '\\':
			l.readChar()
			if msg := l.readEscape(&builder); msg != "" {
				return "", msg
			}
			continue
		default:
			builder.WriteByte(l.ch)
		}
		l.readChar()
	}
}

// readEscape decodes the escape sequence whose first character is l.ch and
// leaves the lexer on the character after it.
func (l *Lexer) readEscape(b *strings.Builder) string {
	switch l.ch {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		if isDigit(l.peekChar()) {
			return "Octal escape sequences are not allowed"
		}
		b.WriteByte(0)
	case '\r':
		if l.peekChar() == '\n' {
			l.readChar()
		}
	case '\n':
		// line continuation
	case 'x':
		if !isHexDigit(l.peekChar()) || !isHexDigit(l.peekCharAt(1)) {
			return "Bad character escape sequence"
		}
		v, _ := strconv.ParseUint(l.input[l.readPosition:l.readPosition+2], 16, 8)
		b.WriteRune(rune(v))
		l.readChar()
		l.readChar()
	case 'u':
		r, ok := l.readUnicodeEscape()
		if !ok {
			return "Bad character escape sequence"
		}
		b.WriteRune(r)
		return ""
	case 0:
		if l.position >= len(l.input) {
			return "Unterminated string constant"
		}
		b.WriteByte(0)
	default:
		b.WriteByte(l.ch)
	}
	l.readChar()
	return ""
}

// readUnicodeEscape reads \uXXXX or \u{X...} with l.ch on 'u' and leaves the
// lexer after the escape.
func (l *Lexer) readUnicodeEscape() (rune, bool) {
	l.readChar() // 'u'
	start := l.position
	if l.ch == '{' {
		l.readChar()
		start = l.position
		for isHexDigit(l.ch) {
			l.readChar()
		}
		if l.ch != '}' || l.position == start {
			return 0, false
		}
		v, err := strconv.ParseUint(l.input[start:l.position], 16, 32)
		l.readChar()
		if err != nil || v > unicode.MaxRune {
			return 0, false
		}
		return rune(v), true
	}
	for i := 0; i < 4; i++ {
		if !isHexDigit(l.ch) {
			return 0, false
		}
		l.readChar()
	}
	v, _ := strconv.ParseUint(l.input[start:l.position], 16, 32)
	return rune(v), true
}

// skipComment reads until the end of the line.
func (l *Lexer) skipComment() {
	for l.position < len(l.input) && source.LineBreakLen(l.input, l.position) == 0 {
		l.readChar()
	}
}

// skipMultilineComment consumes the opening '/*' and the closing '*/'.
// Returns false if EOF was reached first.
func (l *Lexer) skipMultilineComment() bool {
	l.readChar() // '/'
	l.readChar() // '*'

	for {
		if l.position >= len(l.input) {
			return false
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return true
		}
		l.readChar()
	}
}

// isLetter checks if the character is an ASCII letter or underscore.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit checks if the character is a digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// isHexDigit checks if the character is a hexadecimal digit (0-9, a-f, A-F).
func isHexDigit(ch byte) bool {
	return ('0' <= ch && ch <= '9') || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

// isDigitForBase checks if the character is a valid digit for the given base.
func isDigitForBase(ch byte, base int) bool {
	switch base {
	case 16:
		return isHexDigit(ch)
	case 10:
		return isDigit(ch)
	case 8:
		return '0' <= ch && ch <= '7'
	case 2:
		return ch == '0' || ch == '1'
	default:
		return false
	}
}

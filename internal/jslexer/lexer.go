// Package jslexer tokenizes JavaScript source text. It mirrors the shape of
// the teacher's internal/js_lexer (same T token-kind enum style, same
// "lexer calls Next() to advance one token" API, same regex-vs-division
// disambiguation strategy based on the previous token) trimmed to what a
// statement-boundary parser needs: no JSX, no TypeScript syntax.
package jslexer

import (
	"strings"

	"github.com/cversek/js-demini/internal/logger"
)

type T uint8

const (
	TEndOfFile T = iota
	TIdentifier
	TPrivateIdentifier
	TNumericLiteral
	TBigIntLiteral
	TStringLiteral
	TNoSubstitutionTemplateLiteral
	TTemplateHead   // up to and including the first "${"
	TTemplateMiddle // "}" up to the next "${"
	TTemplateTail   // "}" up to the closing backtick
	TRegExpLiteral

	TAmpersand
	TAmpersandAmpersand
	TAsterisk
	TAsteriskAsterisk
	TAt
	TBar
	TBarBar
	TCaret
	TCloseBrace
	TCloseBracket
	TCloseParen
	TColon
	TComma
	TDot
	TDotDotDot
	TEqualsEquals
	TEqualsEqualsEquals
	TEqualsGreaterThan
	TExclamation
	TExclamationEquals
	TExclamationEqualsEquals
	TGreaterThan
	TGreaterThanEquals
	TGreaterThanGreaterThan
	TGreaterThanGreaterThanGreaterThan
	TLessThan
	TLessThanEquals
	TLessThanLessThan
	TMinus
	TMinusMinus
	TOpenBrace
	TOpenBracket
	TOpenParen
	TPercent
	TPlus
	TPlusPlus
	TQuestion
	TQuestionDot
	TQuestionQuestion
	TSemicolon
	TSlash
	TTilde

	TAmpersandAmpersandEquals
	TAmpersandEquals
	TAsteriskAsteriskEquals
	TAsteriskEquals
	TBarBarEquals
	TBarEquals
	TCaretEquals
	TEquals
	TGreaterThanGreaterThanEquals
	TGreaterThanGreaterThanGreaterThanEquals
	TLessThanLessThanEquals
	TMinusEquals
	TPercentEquals
	TPlusEquals
	TQuestionQuestionEquals
	TSlashEquals

	TSyntaxError
)

var Keywords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true, "with": true,
	"async": false, "await": true, "yield": true, "let": false, "static": false,
	"get": false, "set": false, "of": false, "as": false, "from": false,
}

// punctuators that cannot start an identifier, checked longest-first.
var punctuators = []struct {
	text string
	tok  T
}{
	{">>>=", TGreaterThanGreaterThanGreaterThanEquals},
	{"...", TDotDotDot},
	{"===", TEqualsEqualsEquals},
	{"!==", TExclamationEqualsEquals},
	{"**=", TAsteriskAsteriskEquals},
	{"<<=", TLessThanLessThanEquals},
	{">>=", TGreaterThanGreaterThanEquals},
	{">>>", TGreaterThanGreaterThanGreaterThan},
	{"&&=", TAmpersandAmpersandEquals},
	{"||=", TBarBarEquals},
	{"??=", TQuestionQuestionEquals},
	{"=>", TEqualsGreaterThan},
	{"==", TEqualsEquals},
	{"!=", TExclamationEquals},
	{"<=", TLessThanEquals},
	{">=", TGreaterThanEquals},
	{"&&", TAmpersandAmpersand},
	{"||", TBarBar},
	{"??", TQuestionQuestion},
	{"?.", TQuestionDot},
	{"++", TPlusPlus},
	{"--", TMinusMinus},
	{"**", TAsteriskAsterisk},
	{"<<", TLessThanLessThan},
	{">>", TGreaterThanGreaterThan},
	{"+=", TPlusEquals},
	{"-=", TMinusEquals},
	{"*=", TAsteriskEquals},
	{"/=", TSlashEquals},
	{"%=", TPercentEquals},
	{"&=", TAmpersandEquals},
	{"|=", TBarEquals},
	{"^=", TCaretEquals},
	{"&", TAmpersand},
	{"|", TBar},
	{"^", TCaret},
	{"~", TTilde},
	{"!", TExclamation},
	{"?", TQuestion},
	{":", TColon},
	{";", TSemicolon},
	{",", TComma},
	{".", TDot},
	{"<", TLessThan},
	{">", TGreaterThan},
	{"=", TEquals},
	{"+", TPlus},
	{"-", TMinus},
	{"*", TAsterisk},
	{"/", TSlash},
	{"%", TPercent},
	{"(", TOpenParen},
	{")", TCloseParen},
	{"{", TOpenBrace},
	{"}", TCloseBrace},
	{"[", TOpenBracket},
	{"]", TCloseBracket},
	{"@", TAt},
}

// Lexer scans one token at a time, like the teacher's, so the parser can
// decide context-sensitively (regex vs division, template continuation)
// before asking for the next one.
type Lexer struct {
	log      *logger.Log
	source   *logger.Source
	text     string
	pos      int
	Token    T
	start    int
	end      int
	Raw      string
	HadNewlineBefore bool

	// PrevEnd is the byte offset where the token before the current one
	// ended. The parser uses it to compute a statement's Range.End once it
	// has consumed the statement's last token.
	PrevEnd int

	// prevSignificant remembers the last token kind that was not itself a
	// newline marker, used for the regex/division heuristic.
	prevSignificant T
	prevWasValue    bool
}

func NewLexer(log *logger.Log, source *logger.Source) *Lexer {
	l := &Lexer{log: log, source: source, text: source.Contents, prevSignificant: TSyntaxError}
	l.Next()
	return l
}

func (l *Lexer) Loc() logger.Loc { return logger.Loc{Start: int32(l.start)} }

func (l *Lexer) Range() logger.Range {
	return logger.Range{Loc: logger.Loc{Start: int32(l.start)}, Len: int32(l.end - l.start)}
}

func (l *Lexer) syntaxError(msg string) {
	l.log.AddError(l.source, l.Range(), "Syntax error: "+msg)
	panic(LexerPanic{})
}

// LexerPanic is recovered by the parser's top-level Parse entry point.
type LexerPanic struct{}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Next scans and installs the next token, skipping whitespace and comments.
func (l *Lexer) Next() {
	l.HadNewlineBefore = false
	l.PrevEnd = l.end
	if l.Token != TSyntaxError {
		l.prevSignificant = l.Token
		l.prevWasValue = tokenEndsValue(l.Token, l.Raw)
	}

	for {
		l.start = l.pos
		if l.pos >= len(l.text) {
			l.Token = TEndOfFile
			l.end = l.pos
			l.Raw = ""
			return
		}
		c := l.text[l.pos]

		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
			continue
		case c == '\n':
			l.pos++
			l.HadNewlineBefore = true
			continue
		case c == '/' && l.pos+1 < len(l.text) && l.text[l.pos+1] == '/':
			for l.pos < len(l.text) && l.text[l.pos] != '\n' {
				l.pos++
			}
			continue
		case c == '/' && l.pos+1 < len(l.text) && l.text[l.pos+1] == '*':
			l.pos += 2
			for l.pos < len(l.text) {
				if l.text[l.pos] == '\n' {
					l.HadNewlineBefore = true
				}
				if l.text[l.pos] == '*' && l.pos+1 < len(l.text) && l.text[l.pos+1] == '/' {
					l.pos += 2
					break
				}
				l.pos++
			}
			continue
		}

		switch {
		case isIdentStart(c):
			l.scanIdentifier()
		case isDigit(c), c == '.' && l.pos+1 < len(l.text) && isDigit(l.text[l.pos+1]):
			l.scanNumber()
		case c == '"' || c == '\'':
			l.scanString(c)
		case c == '`':
			l.scanTemplate()
		case c == '#':
			l.pos++
			l.scanIdentifier()
			l.Token = TPrivateIdentifier
		case c == '/':
			if l.regexAllowedHere() {
				l.scanRegExp()
			} else {
				l.scanPunct()
			}
		default:
			l.scanPunct()
		}
		l.Raw = l.text[l.start:l.end]
		return
	}
}

// regexAllowedHere applies the classic heuristic: a "/" starts a regex
// unless the previous significant token could end a value expression (an
// identifier, literal, or closing bracket/paren), mirroring the teacher's
// js_lexer approach to the same ambiguity.
func (l *Lexer) regexAllowedHere() bool {
	return !l.prevWasValue
}

func tokenEndsValue(t T, raw string) bool {
	switch t {
	case TIdentifier, TPrivateIdentifier, TNumericLiteral, TBigIntLiteral, TStringLiteral,
		TNoSubstitutionTemplateLiteral, TRegExpLiteral, TCloseParen, TCloseBracket, TCloseBrace,
		TPlusPlus, TMinusMinus:
		switch raw {
		case "this", "super", "true", "false", "null":
			return true
		}
		return true
	}
	return false
}

func (l *Lexer) scanIdentifier() {
	for l.pos < len(l.text) && isIdentPart(l.text[l.pos]) {
		l.pos++
	}
	l.end = l.pos
	l.Token = TIdentifier
}

func (l *Lexer) scanNumber() {
	if l.text[l.pos] == '0' && l.pos+1 < len(l.text) && (l.text[l.pos+1] == 'x' || l.text[l.pos+1] == 'X' ||
		l.text[l.pos+1] == 'b' || l.text[l.pos+1] == 'B' || l.text[l.pos+1] == 'o' || l.text[l.pos+1] == 'O') {
		l.pos += 2
		for l.pos < len(l.text) && (isIdentPart(l.text[l.pos])) {
			l.pos++
		}
	} else {
		for l.pos < len(l.text) && (isDigit(l.text[l.pos]) || l.text[l.pos] == '.' || l.text[l.pos] == '_') {
			l.pos++
		}
		if l.pos < len(l.text) && (l.text[l.pos] == 'e' || l.text[l.pos] == 'E') {
			l.pos++
			if l.pos < len(l.text) && (l.text[l.pos] == '+' || l.text[l.pos] == '-') {
				l.pos++
			}
			for l.pos < len(l.text) && isDigit(l.text[l.pos]) {
				l.pos++
			}
		}
	}
	if l.pos < len(l.text) && l.text[l.pos] == 'n' {
		l.pos++
		l.end = l.pos
		l.Token = TBigIntLiteral
		return
	}
	l.end = l.pos
	l.Token = TNumericLiteral
}

func (l *Lexer) scanString(quote byte) {
	l.pos++
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		if c == '\\' {
			l.pos += 2
			continue
		}
		if c == quote {
			l.pos++
			break
		}
		if c == '\n' {
			l.syntaxError("unterminated string literal")
		}
		l.pos++
	}
	l.end = l.pos
	l.Token = TStringLiteral
}

// scanTemplate scans from the opening backtick either to the closing
// backtick (TNoSubstitutionTemplateLiteral) or to the first unescaped
// "${" (TTemplateHead); the parser is responsible for locating the
// matching "}" by recursive-descent on the substring, since the lexer
// does not track brace nesting across a Next() call boundary.
func (l *Lexer) scanTemplate() {
	l.pos++
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		if c == '\\' {
			l.pos += 2
			continue
		}
		if c == '`' {
			l.pos++
			l.end = l.pos
			l.Token = TNoSubstitutionTemplateLiteral
			return
		}
		if c == '$' && l.pos+1 < len(l.text) && l.text[l.pos+1] == '{' {
			l.pos += 2
			l.end = l.pos
			l.Token = TTemplateHead
			return
		}
		l.pos++
	}
	l.syntaxError("unterminated template literal")
}

// RescanTemplateTail is called by the parser right after it has consumed a
// template interpolation's closing "}" (still the current token when this
// is called: callers invoke it instead of Next()). It scans onward from
// that brace either to the next "${" (TTemplateMiddle, more interpolations
// follow) or to the closing backtick (TTemplateTail, the template is
// done). This mirrors the teacher's RescanCloseBraceAsTemplateToken, which
// exists for exactly the same reason: the lexer has no memory of template
// brace nesting across a plain Next() call.
func (l *Lexer) RescanTemplateTail() {
	l.PrevEnd = l.end
	l.pos = l.end
	l.start = l.pos
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		if c == '\\' {
			l.pos += 2
			continue
		}
		if c == '`' {
			l.pos++
			l.end = l.pos
			l.Token = TTemplateTail
			l.Raw = l.text[l.start:l.end]
			return
		}
		if c == '$' && l.pos+1 < len(l.text) && l.text[l.pos+1] == '{' {
			l.pos += 2
			l.end = l.pos
			l.Token = TTemplateMiddle
			l.Raw = l.text[l.start:l.end]
			return
		}
		l.pos++
	}
	l.syntaxError("unterminated template literal")
}

func (l *Lexer) scanRegExp() {
	l.pos++
	inClass := false
	for l.pos < len(l.text) {
		c := l.text[l.pos]
		if c == '\\' {
			l.pos += 2
			continue
		}
		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			l.pos++
			break
		} else if c == '\n' {
			l.syntaxError("unterminated regular expression")
		}
		l.pos++
	}
	for l.pos < len(l.text) && isIdentPart(l.text[l.pos]) {
		l.pos++
	}
	l.end = l.pos
	l.Token = TRegExpLiteral
}

func (l *Lexer) scanPunct() {
	rest := l.text[l.pos:]
	for _, p := range punctuators {
		if strings.HasPrefix(rest, p.text) {
			l.pos += len(p.text)
			l.end = l.pos
			l.Token = p.tok
			return
		}
	}
	l.syntaxError("unexpected character")
}

// IsKeyword reports whether raw is a reserved word (used by the parser to
// decide whether an identifier-shaped token actually starts a statement).
func IsKeyword(raw string) bool {
	v, ok := Keywords[raw]
	return ok && v
}

func IsContextualKeyword(raw, kw string) bool { return raw == kw }

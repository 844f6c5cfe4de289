package graphql

import (
	"strconv"
	"strings"

	gqerrors "github.com/arcweave/graphql/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokInt
	tokFloat
	tokString
	tokBang
	tokDollar
	tokParenOpen
	tokParenClose
	tokSpread
	tokColon
	tokEquals
	tokAt
	tokBracketOpen
	tokBracketClose
	tokBraceOpen
	tokBraceClose
	tokPipe
)

type token struct {
	kind   tokenKind
	text   string
	intVal int64
	fltVal float64
	line   int
	column int
}

// lexer turns a document string into a stream of tokens, skipping the
// ignored-token classes named in spec.md §5 (BOM, whitespace, commas,
// #-comments) between every pair of significant tokens.
type lexer struct {
	src    []rune
	pos    int
	line   int
	column int

	// tokLine/tokColumn are where the most recently returned token began.
	tokLine, tokColumn int
}

func newLexer(src string) *lexer {
	return &lexer{src: []rune(src), pos: 0, line: 1, column: 1}
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *lexer) skipIgnored() {
	for {
		r, ok := l.peekRune()
		if !ok {
			return
		}
		switch {
		case r == '﻿' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ',':
			l.advance()
		case r == '#':
			for {
				r, ok := l.peekRune()
				if !ok || r == '\n' {
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

// loc returns where the most recently returned token began.
func (l *lexer) loc() Location { return Location{Line: l.tokLine, Column: l.tokColumn} }

// next returns the next significant token.
func (l *lexer) next() (token, error) {
	l.skipIgnored()
	startLine, startColumn := l.line, l.column
	l.tokLine, l.tokColumn = startLine, startColumn
	r, ok := l.peekRune()
	if !ok {
		return token{kind: tokEOF, line: startLine, column: startColumn}, nil
	}

	mk := func(k tokenKind) (token, error) {
		l.advance()
		return token{kind: k, line: startLine, column: startColumn}, nil
	}

	switch {
	case r == '!':
		return mk(tokBang)
	case r == '$':
		return mk(tokDollar)
	case r == '(':
		return mk(tokParenOpen)
	case r == ')':
		return mk(tokParenClose)
	case r == ':':
		return mk(tokColon)
	case r == '=':
		return mk(tokEquals)
	case r == '@':
		return mk(tokAt)
	case r == '[':
		return mk(tokBracketOpen)
	case r == ']':
		return mk(tokBracketClose)
	case r == '{':
		return mk(tokBraceOpen)
	case r == '}':
		return mk(tokBraceClose)
	case r == '|':
		return mk(tokPipe)
	case r == '.':
		for i := 0; i < 3; i++ {
			r, ok := l.peekRune()
			if !ok || r != '.' {
				return token{}, gqerrors.NewAt(gqerrors.KindParse, startLine, startColumn, "unexpected character %q", r)
			}
			l.advance()
		}
		return token{kind: tokSpread, line: startLine, column: startColumn}, nil
	case r == '"':
		return l.lexString(startLine, startColumn)
	case r == '-' || (r >= '0' && r <= '9'):
		return l.lexNumber(startLine, startColumn)
	case isNameStart(r):
		return l.lexName(startLine, startColumn)
	default:
		return token{}, gqerrors.NewAt(gqerrors.KindParse, startLine, startColumn, "unexpected character %q", r)
	}
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isNameCont(r rune) bool {
	return isNameStart(r) || (r >= '0' && r <= '9')
}

func (l *lexer) lexName(line, column int) (token, error) {
	var sb strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok || !isNameCont(r) {
			break
		}
		sb.WriteRune(l.advance())
	}
	return token{kind: tokName, text: sb.String(), line: line, column: column}, nil
}

func (l *lexer) lexNumber(line, column int) (token, error) {
	var sb strings.Builder
	isFloat := false
	if r, ok := l.peekRune(); ok && r == '-' {
		sb.WriteRune(l.advance())
	}
	first, ok := l.peekRune()
	if !ok || first < '0' || first > '9' {
		return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "invalid number literal")
	}
	if first == '0' {
		sb.WriteRune(l.advance())
		if r, ok := l.peekRune(); ok && r >= '0' && r <= '9' {
			return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "invalid number literal: leading zero")
		}
	} else {
		for {
			r, ok := l.peekRune()
			if !ok || r < '0' || r > '9' {
				break
			}
			sb.WriteRune(l.advance())
		}
	}
	if r, ok := l.peekRune(); ok && r == '.' {
		isFloat = true
		sb.WriteRune(l.advance())
		digits := 0
		for {
			r, ok := l.peekRune()
			if !ok || r < '0' || r > '9' {
				break
			}
			sb.WriteRune(l.advance())
			digits++
		}
		if digits == 0 {
			return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "invalid number literal: digits required after decimal point")
		}
	}
	if r, ok := l.peekRune(); ok && (r == 'e' || r == 'E') {
		isFloat = true
		sb.WriteRune(l.advance())
		if r, ok := l.peekRune(); ok && (r == '+' || r == '-') {
			sb.WriteRune(l.advance())
		}
		digits := 0
		for {
			r, ok := l.peekRune()
			if !ok || r < '0' || r > '9' {
				break
			}
			sb.WriteRune(l.advance())
			digits++
		}
		if digits == 0 {
			return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "invalid number literal: digits required in exponent")
		}
	}
	text := sb.String()
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "invalid float literal %q", text)
		}
		return token{kind: tokFloat, text: text, fltVal: f, line: line, column: column}, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "invalid int literal %q", text)
	}
	return token{kind: tokInt, text: text, intVal: i, line: line, column: column}, nil
}

func (l *lexer) lexString(line, column int) (token, error) {
	l.advance() // opening quote
	if r, ok := l.peekRune(); ok && r == '"' {
		l.advance()
		if r, ok := l.peekRune(); ok && r == '"' {
			l.advance()
			return l.lexBlockString(line, column)
		}
		return token{kind: tokString, text: "", line: line, column: column}, nil
	}
	var sb strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok {
			return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "unterminated string")
		}
		if r == '"' {
			l.advance()
			break
		}
		if r == '\n' {
			return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "unterminated string: newline in string")
		}
		if r == '\\' {
			l.advance()
			esc, ok := l.peekRune()
			if !ok {
				return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "unterminated string escape")
			}
			switch esc {
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			case '/':
				sb.WriteRune('/')
			case 'b':
				sb.WriteRune('\b')
			case 'f':
				sb.WriteRune('\f')
			case 'n':
				sb.WriteRune('\n')
			case 'r':
				sb.WriteRune('\r')
			case 't':
				sb.WriteRune('\t')
			case 'u':
				l.advance()
				if l.pos+4 > len(l.src) {
					return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "invalid unicode escape")
				}
				hex := string(l.src[l.pos : l.pos+4])
				code, err := strconv.ParseUint(hex, 16, 32)
				if err != nil {
					return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "invalid unicode escape %q", hex)
				}
				for i := 0; i < 4; i++ {
					l.advance()
				}
				sb.WriteRune(rune(code))
				continue
			default:
				return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "invalid escape sequence \\%c", esc)
			}
			l.advance()
			continue
		}
		sb.WriteRune(l.advance())
	}
	return token{kind: tokString, text: sb.String(), line: line, column: column}, nil
}

func (l *lexer) lexBlockString(line, column int) (token, error) {
	var sb strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok {
			return token{}, gqerrors.NewAt(gqerrors.KindParse, line, column, "unterminated block string")
		}
		if r == '"' {
			save := l.pos
			l.advance()
			r2, ok2 := l.peekRune()
			if ok2 && r2 == '"' {
				save2 := l.pos
				l.advance()
				r3, ok3 := l.peekRune()
				if ok3 && r3 == '"' {
					l.advance()
					break
				}
				l.pos = save2
			}
			l.pos = save
			sb.WriteRune(l.advance())
			continue
		}
		if r == '\\' {
			save := l.pos
			l.advance()
			if r2, ok := l.peekRune(); ok && r2 == '"' {
				if l.pos+2 < len(l.src) && l.src[l.pos+1] == '"' && l.src[l.pos+2] == '"' {
					l.advance()
					l.advance()
					l.advance()
					sb.WriteString(`"""`)
					continue
				}
			}
			l.pos = save
		}
		sb.WriteRune(l.advance())
	}
	return token{kind: tokString, text: stripBlockStringIndent(sb.String()), line: line, column: column}, nil
}

// stripBlockStringIndent implements the GraphQL block-string common-
// indentation removal and leading/trailing blank-line trim.
func stripBlockStringIndent(raw string) string {
	lines := strings.Split(raw, "\n")
	commonIndent := -1
	for i, ln := range lines {
		if i == 0 {
			continue
		}
		trimmed := strings.TrimLeft(ln, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(ln) - len(trimmed)
		if commonIndent == -1 || indent < commonIndent {
			commonIndent = indent
		}
	}
	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= commonIndent {
				lines[i] = lines[i][commonIndent:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " \t")
			}
		}
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

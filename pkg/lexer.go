package kaleido

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

//go:generate stringer -type=TokenType -trimprefix=Token
const (
	EOF rune = 0

	TokenError TokenType = iota
	TokenEOF
	TokenNumber

	TokenIdentifier
	TokenDef
	TokenExtern

	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenLess
	TokenGreater
	TokenComma
	TokenSemicolon
	TokenOpenParentheses
	TokenCloseParentheses
)

var keywordTable = map[string]TokenType{
	"def":    TokenDef,
	"extern": TokenExtern,
}

var operatorTable = map[string]TokenType{
	"+": TokenPlus,
	"-": TokenMinus,
	"*": TokenStar,
	"/": TokenSlash,
	"<": TokenLess,
	">": TokenGreater,
	",": TokenComma,
	";": TokenSemicolon,
	"(": TokenOpenParentheses,
	")": TokenCloseParentheses,
}

type Token struct {
	Typ   TokenType
	Value string
}

// Tokenizer feeds the parser one token at a time.
type Tokenizer interface {
	Do()
	Get() Token
	GetFilename() string
}

type Lexer struct {
	filename string
	reader   *bufio.Reader
	done     chan Token
}

func NewLexer(filename string) (*Lexer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	l := NewLexerFromReader(f)
	l.filename = filename

	return l, nil
}

func NewLexerFromReader(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		done:   make(chan Token),
	}
}

func (l *Lexer) Chan() chan Token {
	return l.done
}

func (l *Lexer) GetFilename() string {
	return l.filename
}

// Do runs the lexer until the input is exhausted, then closes the token
// channel. Usually called as a goroutine.
func (l *Lexer) Do() {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	close(l.done)
}

// Get returns the next token, or an end-of-input token once the stream is
// exhausted.
func (l *Lexer) Get() Token {
	tok, ok := <-l.done
	if !ok {
		return Token{Typ: TokenEOF}
	}

	return tok
}

// RunBlocking lexes the whole input and returns the valid tokens, along with
// the first lexical error if there was one.
func (l *Lexer) RunBlocking() ([]Token, error) {
	go l.Do()

	var tokens []Token
	var err error
	for {
		t := l.Get()
		if t.Typ == TokenEOF {
			return tokens, err
		}

		if t.Typ == TokenError {
			if err == nil {
				err = errors.New(t.Value)
			}
			continue
		}

		tokens = append(tokens, t)
	}
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == EOF:
			return l.emmitEOF()
		case unicode.IsSpace(r):
			l.next()
			continue
		case r == '#':
			return commentState
		case '0' <= r && r <= '9':
			return numberState
		case unicode.IsLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

// commentState discards everything through the end of the line. Comments
// produce no tokens; a comment on the last line is terminated by EOF.
func commentState(l *Lexer) stateFunc {
	for r := l.next(); r != '\n' && r != '\r' && r != EOF; r = l.next() {
	}

	return defaultState
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); '0' <= r && r <= '9' || r == '.'; r = l.peek() {
		num.WriteRune(l.next())
	}

	if _, err := strconv.ParseFloat(num.String(), 64); err != nil {
		return l.errorf("invalid number '%s'", num.String())
	}

	return l.emmitValue(TokenNumber, num.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r) || unicode.IsDigit(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emmitValue(t, id.String())
	}

	return l.emmitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if tok, ok := operatorTable[string(r)]; ok {
		return l.emmitValue(tok, string(r))
	}

	return l.errorf("invalid symbol '%c'", r)
}

// errorf emits an error token for the offending input, which has already
// been consumed, and resumes scanning. A lexical error never truncates the
// stream.
func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	l.done <- Token{
		Typ:   TokenError,
		Value: fmt.Sprintf(format, args...),
	}

	return defaultState
}

func (l *Lexer) emmitEOF() stateFunc {
	l.done <- Token{Typ: TokenEOF}

	return nil
}

func (l *Lexer) emmitValue(t TokenType, val string) stateFunc {
	l.done <- Token{
		Typ:   t,
		Value: val,
	}

	return defaultState
}

func (l *Lexer) peek() rune {
	r := l.next()
	_ = l.reader.UnreadRune()

	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	return r
}

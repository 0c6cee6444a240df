package markup

import "strings"

// TokenKind identifies a lexed token.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenTag
)

// Token is either a tag body (text between angle brackets, trimmed) or a
// run of literal text.
type Token struct {
	Kind  TokenKind
	Value string
}

// IsMarker reports whether the token is a <99ml> or </99ml> document marker.
func (t Token) IsMarker() bool {
	return t.Kind == TokenTag &&
		(strings.EqualFold(t.Value, "99ml") || strings.EqualFold(t.Value, "/99ml"))
}

type lexState int

const (
	stateText lexState = iota
	stateTag
)

// Lexer splits markup into alternating text and tag tokens in a single pass.
type Lexer struct {
	src   string
	pos   int
	state lexState
}

// NewLexer creates a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token. ok is false at end of input.
func (l *Lexer) Next() (tok Token, ok bool) {
	for l.pos < len(l.src) {
		switch l.state {
		case stateText:
			if l.src[l.pos] == '<' {
				l.state = stateTag
				l.pos++
				continue
			}
			end := strings.IndexByte(l.src[l.pos:], '<')
			if end < 0 {
				end = len(l.src) - l.pos
			}
			tok = Token{Kind: TokenText, Value: l.src[l.pos : l.pos+end]}
			l.pos += end
			return tok, true

		case stateTag:
			end := strings.IndexByte(l.src[l.pos:], '>')
			if end < 0 {
				// Unterminated tag: the rest is literal text.
				l.state = stateText
				tok = Token{Kind: TokenText, Value: l.src[l.pos:]}
				l.pos = len(l.src)
				return tok, true
			}
			tok = Token{Kind: TokenTag, Value: strings.TrimSpace(l.src[l.pos : l.pos+end])}
			l.pos += end + 1
			l.state = stateText
			return tok, true
		}
	}
	return Token{}, false
}

// Tokenize lexes the whole input.
func Tokenize(src string) []Token {
	var toks []Token
	l := NewLexer(src)
	for {
		tok, ok := l.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

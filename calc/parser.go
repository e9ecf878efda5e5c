package calc

// DefaultMaxDepth bounds nested parentheses and unary sign chains.
const DefaultMaxDepth = 1000

// Parser evaluates a token list while parsing it:
//
//	expression := term ( ('+' | '-') term )*
//	term       := factor ( ('*' | '/') factor )*
//	factor     := number | '(' expression ')' | ('+' | '-') factor
type Parser struct {
	index    int
	depth    int
	maxDepth int
	tokens   TokenList
}

func NewParser(tokens TokenList) *Parser {
	return &Parser{
		index:    0,
		maxDepth: DefaultMaxDepth,
		tokens:   tokens,
	}
}

// WithMaxDepth sets the nesting limit. Values below 1 restore the default.
func (p *Parser) WithMaxDepth(n int) *Parser {
	if n < 1 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
	return p
}

func (p *Parser) Reset(tokens TokenList) {
	p.index = 0
	p.depth = 0
	p.tokens = tokens
}

func (p *Parser) hasTokens() bool {
	return p.index < len(p.tokens)
}

func (p *Parser) consume() {
	p.index = p.index + 1
}

func (p *Parser) endPos() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].Pos + 1
}

func (p *Parser) next() (*Token, error) {
	if !p.hasTokens() {
		return nil, &Error{Kind: ErrUnexpectedEnd, Pos: p.endPos()}
	}
	current := p.index
	p.index = p.index + 1
	return p.tokens.at(current), nil
}

func (p *Parser) expect(t TokenType) (*Token, error) {
	token, err := p.next()
	if err != nil {
		return nil, err
	}

	if token.TokenType == t {
		return token, nil
	}

	return nil, unexpected(token)
}

func (p *Parser) enter(t *Token) error {
	p.depth++
	if p.depth > p.maxDepth {
		return &Error{Kind: ErrNestingTooDeep, Token: t, Pos: t.Pos}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) factor() (float64, error) {
	token, err := p.next()
	if err != nil {
		return 0, err
	}

	switch token.TokenType {
	case TokenTypeNumber:
		return token.FloatVal, nil
	case TokenTypeLParen:
		if err := p.enter(token); err != nil {
			return 0, err
		}
		defer p.leave()
		value, err := p.expression()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(TokenTypeRParen); err != nil {
			return 0, err
		}
		return value, nil
	case TokenTypePlus, TokenTypeMinus:
		if err := p.enter(token); err != nil {
			return 0, err
		}
		defer p.leave()
		value, err := p.factor()
		if err != nil {
			return 0, err
		}
		if token.TokenType == TokenTypeMinus {
			return -value, nil
		}
		return value, nil
	}

	return 0, unexpected(token)
}

func (p *Parser) term() (float64, error) {
	acc, err := p.factor()
	if err != nil {
		return 0, err
	}

	for p.hasTokens() {
		op := p.tokens.at(p.index)
		if op.TokenType != TokenTypeStar && op.TokenType != TokenTypeSlash {
			break
		}
		p.consume()

		rhs, err := p.factor()
		if err != nil {
			return 0, err
		}
		if op.TokenType == TokenTypeStar {
			acc = acc * rhs
		} else {
			// IEEE-754: x/0 is ±Inf or NaN, not an error
			acc = acc / rhs
		}
	}
	return acc, nil
}

func (p *Parser) expression() (float64, error) {
	acc, err := p.term()
	if err != nil {
		return 0, err
	}

	for p.hasTokens() {
		op := p.tokens.at(p.index)
		if op.TokenType != TokenTypePlus && op.TokenType != TokenTypeMinus {
			break
		}
		p.consume()

		rhs, err := p.term()
		if err != nil {
			return 0, err
		}
		if op.TokenType == TokenTypePlus {
			acc = acc + rhs
		} else {
			acc = acc - rhs
		}
	}
	return acc, nil
}

// Parse evaluates the whole token list. Tokens left over after a complete
// expression are an error.
func (p *Parser) Parse() (float64, error) {
	value, err := p.expression()
	if err != nil {
		return 0, err
	}
	if p.hasTokens() {
		return 0, unexpected(p.tokens.at(p.index))
	}
	return value, nil
}

func Evaluate(tokens TokenList) (float64, error) {
	return NewParser(tokens).Parse()
}

func EvaluateString(line string) (float64, error) {
	tokens, err := NewScanner().Scan(line)
	if err != nil {
		return 0, err
	}
	return Evaluate(tokens)
}

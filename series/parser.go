package series

import (
	"fmt"

	"go.buf.build/protocolbuffers/go/prometheus/prometheus"
)

const NameLabel = "__name__"

// Parser turns selector tokens into the label set of a time series.
type Parser struct {
	index  int
	tokens TokenList
}

func NewParser(tokens TokenList) *Parser {
	return &Parser{
		index:  0,
		tokens: tokens,
	}
}

func (p *Parser) hasTokens() bool {
	return p.index < len(p.tokens)
}

func (p *Parser) consume() {
	p.index = p.index + 1
}

func (p *Parser) endCol() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].Col + 1
}

func (p *Parser) next() (*Token, error) {
	if !p.hasTokens() {
		return nil, &SyntaxError{Msg: "unexpected end of selector", Col: p.endCol()}
	}
	current := p.index
	p.index = p.index + 1
	return p.tokens.at(current), nil
}

func (p *Parser) peek() (*Token, error) {
	if !p.hasTokens() {
		return nil, &SyntaxError{Msg: "unexpected end of selector", Col: p.endCol()}
	}
	return p.tokens.at(p.index), nil
}

func (p *Parser) expect(t TokenType) (*Token, error) {
	token, err := p.next()
	if err != nil {
		return nil, err
	}

	if token.TokenType == t {
		return token, nil
	}

	return nil, &SyntaxError{
		Msg: fmt.Sprintf("expected %v but got %v", TokenMapping[t], TokenMapping[token.TokenType]),
		Col: token.Col,
	}
}

func (p *Parser) label() (*prometheus.Label, error) {
	name, err := p.expect(TokenTypeName)
	if err != nil {
		return nil, err
	}
	if name.StringVal == NameLabel {
		return nil, &SyntaxError{Msg: "label " + NameLabel + " is reserved", Col: name.Col}
	}

	if _, err = p.expect(TokenTypeEquals); err != nil {
		return nil, err
	}

	value, err := p.expect(TokenTypeString)
	if err != nil {
		return nil, err
	}

	return &prometheus.Label{
		Name:  name.StringVal,
		Value: value.StringVal,
	}, nil
}

func (p *Parser) labels() ([]*prometheus.Label, error) {
	var labels []*prometheus.Label
	for {
		la, err := p.peek()
		if err != nil {
			return nil, err
		}
		// empty list or trailing comma
		if la.TokenType == TokenTypeRBrace {
			return labels, nil
		}

		label, err := p.label()
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)

		la, err = p.peek()
		if err != nil {
			return nil, err
		}
		switch la.TokenType {
		case TokenTypeComma:
			p.consume()
		case TokenTypeRBrace:
			return labels, nil
		default:
			return nil, &SyntaxError{
				Msg: fmt.Sprintf("expected , or } but got %v", TokenMapping[la.TokenType]),
				Col: la.Col,
			}
		}
	}
}

// Parse reads <metric>{<label>="<value>", ...}. The label list is optional.
func (p *Parser) Parse() (*prometheus.TimeSeries, error) {
	token, err := p.expect(TokenTypeName)
	if err != nil {
		return nil, err
	}

	labels := []*prometheus.Label{{
		Name:  NameLabel,
		Value: token.StringVal,
	}}

	if p.hasTokens() {
		if _, err := p.expect(TokenTypeLBrace); err != nil {
			return nil, err
		}
		parsed, err := p.labels()
		if err != nil {
			return nil, err
		}
		labels = append(labels, parsed...)
		if _, err := p.expect(TokenTypeRBrace); err != nil {
			return nil, err
		}
	}

	if p.hasTokens() {
		extra := p.tokens.at(p.index)
		return nil, &SyntaxError{
			Msg: fmt.Sprintf("unexpected %v after selector", TokenMapping[extra.TokenType]),
			Col: extra.Col,
		}
	}

	return &prometheus.TimeSeries{
		Labels: labels,
	}, nil
}

// ParseSelector scans and parses in one step.
func ParseSelector(selector string) (*prometheus.TimeSeries, error) {
	tokens, err := NewScanner().Scan(selector)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

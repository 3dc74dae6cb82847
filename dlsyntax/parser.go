// Copyright (c) 2014, Kevin Walsh. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dlsyntax

import (
	"fmt"

	"github.com/kevinawalsh/foil/foil"
	pkgerrors "github.com/pkg/errors"
)

// parser consumes a flat token slice produced by lex. There is no
// backtracking: the grammar is small enough that one token of lookahead,
// held in tok, is always sufficient.
type parser struct {
	tokens []token
	pos    int
	tok    token
}

func newParser(input string) *parser {
	p := &parser{tokens: lex(input)}
	p.advance()
	return p
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.tok = p.tokens[p.pos]
		p.pos++
	} else {
		p.tok = token{typ: tokenEOF}
	}
}

func (p *parser) expect(typ tokenType, what string) (token, error) {
	if p.tok.typ != typ {
		return token{}, fmt.Errorf("expected %s at position %d, got %s", what, p.tok.pos, p.tok)
	}
	t := p.tok
	p.advance()
	return t, nil
}

// ParseLiteral parses a single literal: an optional "not"/"!" prefix
// followed by a functor and, optionally, a parenthesized term list.
func ParseLiteral(text string) (foil.Literal, error) {
	p := newParser(text)
	lit, err := p.parseLiteral()
	if err != nil {
		return foil.Literal{}, pkgerrors.Wrapf(err, "parse literal %q", text)
	}
	if p.tok.typ != tokenEOF {
		return foil.Literal{}, fmt.Errorf("parse literal %q: unexpected trailing token %s", text, p.tok)
	}
	return lit, nil
}

// ParseClause parses a single clause: "head." or "head :- body1, body2.".
func ParseClause(text string) (foil.Clause, error) {
	p := newParser(text)
	c, err := p.parseClause()
	if err != nil {
		return foil.Clause{}, pkgerrors.Wrapf(err, "parse clause %q", text)
	}
	if p.tok.typ != tokenEOF {
		return foil.Clause{}, fmt.Errorf("parse clause %q: unexpected trailing token %s", text, p.tok)
	}
	return c, nil
}

// ParseProgram parses zero or more "."-terminated clauses, in order. It
// is the entry point for loading a background program from text (§2,
// §7): comments starting with "%" or "#" and running to end of line are
// skipped by the lexer.
func ParseProgram(text string) ([]foil.Clause, error) {
	p := newParser(text)
	var clauses []foil.Clause
	for p.tok.typ != tokenEOF {
		c, err := p.parseClause()
		if err != nil {
			return clauses, pkgerrors.Wrapf(err, "parse program")
		}
		clauses = append(clauses, c)
	}
	return clauses, nil
}

func (p *parser) parseClause() (foil.Clause, error) {
	head, err := p.parseLiteral()
	if err != nil {
		return foil.Clause{}, err
	}
	if head.Negated {
		return foil.Clause{}, fmt.Errorf("clause head at position %d cannot be negated", p.tok.pos)
	}

	c := foil.Clause{Head: head}
	if p.tok.typ == tokenArrow {
		p.advance()
		for {
			lit, err := p.parseLiteral()
			if err != nil {
				return foil.Clause{}, err
			}
			c.Body = append(c.Body, lit)
			if p.tok.typ != tokenComma {
				break
			}
			p.advance()
		}
	}

	if _, err := p.expect(tokenDot, "'.'"); err != nil {
		return foil.Clause{}, err
	}
	return c, nil
}

func (p *parser) parseLiteral() (foil.Literal, error) {
	negated := false
	if p.tok.typ == tokenNot || p.tok.typ == tokenBang {
		negated = true
		p.advance()
	}

	atom, err := p.parseAtom()
	if err != nil {
		return foil.Literal{}, err
	}
	return foil.Literal{Atom: atom, Negated: negated}, nil
}

func (p *parser) parseAtom() (foil.Atom, error) {
	functor, err := p.expect(tokenIdent, "a functor")
	if err != nil {
		return foil.Atom{}, err
	}

	atom := foil.Atom{Functor: functor.val}
	if p.tok.typ != tokenLParen {
		return atom, nil
	}
	p.advance()

	if p.tok.typ == tokenRParen {
		p.advance()
		return atom, nil
	}
	for {
		term, err := p.parseTerm()
		if err != nil {
			return foil.Atom{}, err
		}
		atom.Terms = append(atom.Terms, term)
		if p.tok.typ != tokenComma {
			break
		}
		p.advance()
	}

	if _, err := p.expect(tokenRParen, "')'"); err != nil {
		return foil.Atom{}, err
	}
	return atom, nil
}

func (p *parser) parseTerm() (foil.Term, error) {
	switch p.tok.typ {
	case tokenVar:
		t := p.tok
		p.advance()
		return foil.Variable{Name: t.val}, nil
	case tokenIdent:
		t := p.tok
		p.advance()
		return foil.Value{Symbol: t.val}, nil
	default:
		return nil, fmt.Errorf("expected a term at position %d, got %s", p.tok.pos, p.tok)
	}
}

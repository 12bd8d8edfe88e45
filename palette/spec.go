package palette

import (
	"fmt"

	"github.com/lixenwraith/camo/core"
)

// TokenSpec is the serialized form of a token
type TokenSpec struct {
	Name   string  `yaml:"name"`
	Color  string  `yaml:"color"`
	Weight float64 `yaml:"weight"`
}

// DefaultSpecs returns the default tokens in serialized form
func DefaultSpecs() []TokenSpec {
	out := make([]TokenSpec, len(DefaultTokens))
	for i, t := range DefaultTokens {
		out[i] = TokenSpec{Name: t.Name, Color: t.Color.Hex(), Weight: t.Weight}
	}
	return out
}

// FromSpecs parses hex colors and builds a palette
// Empty highlight or base keep the defaults
func FromSpecs(specs []TokenSpec, highlight, base string) (*Palette, error) {
	tokens := make([]Token, len(specs))
	for i, s := range specs {
		c, err := parseColor(s.Name, s.Color)
		if err != nil {
			return nil, err
		}
		tokens[i] = Token{Name: s.Name, Color: c, Weight: s.Weight}
	}

	p, err := New(tokens)
	if err != nil {
		return nil, err
	}
	if highlight != "" {
		c, err := parseColor("highlight", highlight)
		if err != nil {
			return nil, err
		}
		p.highlight = c
	}
	if base != "" {
		c, err := parseColor("base", base)
		if err != nil {
			return nil, err
		}
		p.base = c
	}
	return p, nil
}

func parseColor(name, hex string) (core.RGB, error) {
	c, err := core.ParseHex(hex)
	if err != nil {
		return core.RGB{}, fmt.Errorf("token %q color %q: %w", name, hex, ErrInvalidColor)
	}
	return c, nil
}

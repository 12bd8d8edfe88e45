package palette

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/camo/core"
)

var (
	ErrEmptyPalette  = errors.New("palette has no tokens")
	ErrInvalidWeight = errors.New("palette weight must be positive")
	ErrInvalidColor  = errors.New("palette color is not a hex color")
)

// Token is one palette entry; Threshold is the cumulative weight share
type Token struct {
	Name      string
	Color     core.RGB
	Weight    float64
	Threshold float64
}

// Palette is an ordered threshold table, last threshold exactly 1.0
type Palette struct {
	tokens    []Token
	highlight core.RGB
	base      core.RGB
}

// Default camo tokens
var (
	Void          = core.MustParseHex("#000000")
	Shadow        = core.MustParseHex("#0d1a0f")
	Forest        = core.MustParseHex("#004d00")
	Olive         = core.MustParseHex("#3b5323")
	Moss          = core.MustParseHex("#2d4a1e")
	SageDim       = core.MustParseHex("#4a7c59")
	Sage          = core.MustParseHex("#86d993") // glitch highlight only
	Deep          = core.MustParseHex("#0a0e0f") // page background under the layer
	Fallback      = Forest
	DefaultTokens = []Token{
		{Name: "void", Color: Void, Weight: 10},
		{Name: "shadow", Color: Shadow, Weight: 12},
		{Name: "forest", Color: Forest, Weight: 38},
		{Name: "olive", Color: Olive, Weight: 28},
		{Name: "moss", Color: Moss, Weight: 10},
		{Name: "sage-dim", Color: SageDim, Weight: 2},
	}
)

// New computes cumulative thresholds from token weights
func New(tokens []Token) (*Palette, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyPalette
	}

	total := 0.0
	for _, t := range tokens {
		if !(t.Weight > 0) || math.IsInf(t.Weight, 0) {
			return nil, fmt.Errorf("token %q weight %v: %w", t.Name, t.Weight, ErrInvalidWeight)
		}
		total += t.Weight
	}

	out := make([]Token, len(tokens))
	acc := 0.0
	for i, t := range tokens {
		acc += t.Weight
		t.Threshold = acc / total
		out[i] = t
	}
	// Total coverage regardless of float rounding
	out[len(out)-1].Threshold = 1.0

	return &Palette{tokens: out, highlight: Sage, base: Deep}, nil
}

// Default returns the six-token camo palette (10/12/38/28/10/2)
func Default() *Palette {
	p, err := New(DefaultTokens)
	if err != nil {
		panic(err)
	}
	return p
}

// WithHighlight returns a copy using c as the glitch highlight
func (p *Palette) WithHighlight(c core.RGB) *Palette {
	cp := *p
	cp.highlight = c
	return &cp
}

// WithBase returns a copy using c as the page color under the layer
func (p *Palette) WithBase(c core.RGB) *Palette {
	cp := *p
	cp.base = c
	return &cp
}

// IndexOf returns the first token index whose threshold is >= n
// Values at or past 1.0, and NaN, resolve to the last token
func (p *Palette) IndexOf(n float64) int {
	for i, t := range p.tokens {
		if n <= t.Threshold {
			return i
		}
	}
	return len(p.tokens) - 1
}

// ColorOf maps a scalar in [0,1] to its token
func (p *Palette) ColorOf(n float64) Token {
	return p.tokens[p.IndexOf(n)]
}

// Tokens returns a copy of the ordered tokens
func (p *Palette) Tokens() []Token {
	out := make([]Token, len(p.tokens))
	copy(out, p.tokens)
	return out
}

// Len returns the token count
func (p *Palette) Len() int {
	return len(p.tokens)
}

// Token returns token i
func (p *Palette) Token(i int) Token {
	return p.tokens[i]
}

// Highlight is the glitch flash color
func (p *Palette) Highlight() core.RGB {
	return p.highlight
}

// Base is the page color the layer is composited over
func (p *Palette) Base() core.RGB {
	return p.base
}

// Shares returns each token's target fraction
func (p *Palette) Shares() []float64 {
	out := make([]float64, len(p.tokens))
	prev := 0.0
	for i, t := range p.tokens {
		out[i] = t.Threshold - prev
		prev = t.Threshold
	}
	return out
}

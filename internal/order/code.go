package order

import (
	"math/rand/v2"
	"strings"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeSource produces candidate public codes; the oracle reports whether a
// candidate is already taken.
type CodeSource interface {
	Generate(exists func(string) bool) string
}

// Generator produces public order codes: Length random uppercase-alphanumeric
// symbols behind an optional constant prefix. The length and prefix are
// configuration, not constants, because the storefront changed them between
// releases.
type Generator struct {
	Length int
	Prefix string
}

// Generate draws codes until the oracle stops reporting collisions. The code
// space (36^9 by default) makes more than a couple of iterations effectively
// impossible, but the first draw is never assumed unique. math/rand/v2's
// global generator is safe for concurrent callers and reseeds nothing.
func (g Generator) Generate(exists func(string) bool) string {
	for {
		code := g.draw()
		if !exists(code) {
			return code
		}
	}
}

func (g Generator) draw() string {
	var b strings.Builder
	b.WriteString(g.Prefix)
	for i := 0; i < g.Length; i++ {
		b.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}
	return b.String()
}

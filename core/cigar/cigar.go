// core/cigar/cigar.go
//
// Package cigar holds the edit-script helpers shared by the projector and the
// homology linker. Edit scripts are plain sam.Cigar values restricted to the
// operators a PAF cg:Z tag carries.
package cigar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/biogo/hts/sam"
)

// ErrUnsupportedOp is returned by Parse for operators outside =, X, I, D and M.
var ErrUnsupportedOp = errors.New("cigar: unsupported operation")

// Parse tokenizes an edit script such as "4=1X2I2=".
func Parse(text string) (sam.Cigar, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("cigar: empty edit script")
	}
	if last := text[len(text)-1]; last >= '0' && last <= '9' {
		return nil, fmt.Errorf("cigar: %q ends without an operation", text)
	}
	c, err := sam.ParseCigar([]byte(text))
	if err != nil {
		return nil, err
	}
	if len(c) == 0 {
		return nil, fmt.Errorf("cigar: no operations in %q", text)
	}
	for i, co := range c {
		if co.Len() == 0 {
			return nil, fmt.Errorf("cigar: zero-length operation at index %d in %q", i, text)
		}
		if !Supported(co.Type()) {
			return nil, fmt.Errorf("%w %q in %q", ErrUnsupportedOp, co.Type().String(), text)
		}
	}
	return c, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(text string) sam.Cigar {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

// Format renders c back to text. An empty script formats as "".
func Format(c sam.Cigar) string {
	if len(c) == 0 {
		return ""
	}
	return c.String()
}

// Supported reports whether t is one of the operators the projector walks.
func Supported(t sam.CigarOpType) bool {
	switch t {
	case sam.CigarEqual, sam.CigarMismatch, sam.CigarMatch, sam.CigarInsertion, sam.CigarDeletion:
		return true
	}
	return false
}

// IsAligned reports whether t pairs one query base with one reference base.
func IsAligned(t sam.CigarOpType) bool {
	c := t.Consumes()
	return c.Query == 1 && c.Reference == 1
}

// Lengths returns the reference and query lengths spanned by c.
func Lengths(c sam.Cigar) (ref, query int) { return c.Lengths() }

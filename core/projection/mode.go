// core/projection/mode.go
package projection

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMode is returned for a mode tag other than asm2ref or ref2asm.
	ErrInvalidMode = errors.New("invalid projection mode")
	// ErrInvalidPolicy is returned for the post-indel flag without the
	// ending-indel flag, or an unknown policy name.
	ErrInvalidPolicy = errors.New("invalid indel policy")
	// ErrInvalidBlockOrder is returned when blocks are not strictly ascending
	// and disjoint on the source axis.
	ErrInvalidBlockOrder = errors.New("blocks are not sorted and disjoint")
)

// Mode selects which side of the alignment the blocks are defined on.
type Mode int

const (
	// AsmToRef projects query (assembly) blocks onto the reference.
	AsmToRef Mode = iota + 1
	// RefToAsm projects reference blocks onto the query.
	RefToAsm
)

// ParseMode accepts "asm2ref" or "ref2asm".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "asm2ref":
		return AsmToRef, nil
	case "ref2asm":
		return RefToAsm, nil
	}
	return 0, fmt.Errorf("%w %q (want asm2ref or ref2asm)", ErrInvalidMode, s)
}

func (m Mode) String() string {
	switch m {
	case AsmToRef:
		return "asm2ref"
	case RefToAsm:
		return "ref2asm"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Reverse returns the opposite projection direction.
func (m Mode) Reverse() Mode {
	if m == AsmToRef {
		return RefToAsm
	}
	return AsmToRef
}

func (m Mode) valid() bool { return m == AsmToRef || m == RefToAsm }

// Policy decides what happens to indels touching a block boundary.
type Policy int

const (
	// Strict trims a block back to its outermost aligned pairs.
	Strict Policy = iota
	// IncludeAdjacentIndel keeps source-only indel runs at either end of a
	// block; the projected interval still stops at the flanking aligned pairs.
	IncludeAdjacentIndel
	// IncludeAdjacentIndelAndTrailingRun additionally attributes a run of
	// target-only operations directly after the block's last source position
	// to that block.
	IncludeAdjacentIndelAndTrailingRun
)

var policyNames = map[Policy]string{
	Strict:                             "strict",
	IncludeAdjacentIndel:               "adjacent-indel",
	IncludeAdjacentIndelAndTrailingRun: "trailing-run",
}

// PolicyFromFlags maps the (includeEndingIndel, includePostIndel) pair used by
// the command line onto a Policy.
func PolicyFromFlags(includeEndingIndel, includePostIndel bool) (Policy, error) {
	switch {
	case includeEndingIndel && includePostIndel:
		return IncludeAdjacentIndelAndTrailingRun, nil
	case includeEndingIndel:
		return IncludeAdjacentIndel, nil
	case includePostIndel:
		return Strict, fmt.Errorf("%w: post-indel inclusion requires ending-indel inclusion", ErrInvalidPolicy)
	}
	return Strict, nil
}

// ParsePolicy accepts the names printed by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return Strict, fmt.Errorf("%w %q", ErrInvalidPolicy, s)
}

// Flags is the inverse of PolicyFromFlags.
func (p Policy) Flags() (includeEndingIndel, includePostIndel bool) {
	return p >= IncludeAdjacentIndel, p == IncludeAdjacentIndelAndTrailingRun
}

func (p Policy) String() string {
	if n, ok := policyNames[p]; ok {
		return n
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

func (p Policy) valid() bool {
	_, ok := policyNames[p]
	return ok
}

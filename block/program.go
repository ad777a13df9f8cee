package block

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Program is the arena owning the full block set of one compilation, in
// creation order with the root block first. A linker consumes the arena:
// it walks the blocks, assigns each an offset via SetOffset, and resolves
// the placeholder slots named by the jump maps.
type Program struct {
	root        *Block
	blocks      []*Block
	pointerSize int
}

// ProgramParams contains parameters for creating a new Program.
type ProgramParams struct {
	Root        *Block   // Graph entry point
	Blocks      []*Block // All blocks in creation order; must include Root
	PointerSize int      // Placeholder slot width shared by all blocks
}

// NewProgram creates a new Program from the given parameters. The blocks
// slice is copied; the blocks themselves are shared, immutable values. A
// PointerSize below 1 is replaced with DefaultPointerSize.
func NewProgram(params ProgramParams) *Program {
	pointerSize := params.PointerSize
	if pointerSize < 1 {
		pointerSize = DefaultPointerSize
	}
	var blocks []*Block
	if len(params.Blocks) > 0 {
		blocks = make([]*Block, len(params.Blocks))
		copy(blocks, params.Blocks)
	}
	return &Program{
		root:        params.Root,
		blocks:      blocks,
		pointerSize: pointerSize,
	}
}

// Root returns the graph entry point.
func (p *Program) Root() *Block {
	return p.root
}

// BlockCount returns the number of blocks in the program.
func (p *Program) BlockCount() int {
	return len(p.blocks)
}

// Block returns the block at the given creation-order index.
func (p *Program) Block(index int) *Block {
	return p.blocks[index]
}

// PointerSize returns the placeholder slot width in bytes.
func (p *Program) PointerSize() int {
	return p.pointerSize
}

// Validate audits the program's structure and returns every problem found,
// aggregated into one error. It returns nil when the program is clean.
// Linkers run this before layout to fail early on malformed input.
func (p *Program) Validate() error {
	var result *multierror.Error
	known := make(map[*Block]bool, len(p.blocks))
	for i, b := range p.blocks {
		if b == nil {
			result = multierror.Append(result,
				fmt.Errorf("program contains a nil block at index %d", i))
			continue
		}
		known[b] = true
	}
	if p.root == nil {
		result = multierror.Append(result, errors.New("program has no root block"))
	} else if !known[p.root] {
		result = multierror.Append(result,
			errors.New("root block is not part of the program"))
	}
	for _, b := range p.blocks {
		if b == nil {
			continue
		}
		prevEnd := -1
		for _, off := range b.JumpOffsets() {
			if off < 0 || off+b.PointerSize() > b.Len() {
				result = multierror.Append(result,
					fmt.Errorf("block %d: jump slot at offset %d exceeds content bounds",
						b.Handle(), off))
			}
			if off < prevEnd {
				result = multierror.Append(result,
					fmt.Errorf("block %d: jump slot at offset %d overlaps the previous slot",
						b.Handle(), off))
			}
			prevEnd = off + b.PointerSize()
			target, _ := b.JumpTarget(off)
			if !known[target] {
				result = multierror.Append(result,
					fmt.Errorf("block %d: jump at offset %d targets a block outside the program",
						b.Handle(), off))
			}
		}
	}
	return result.ErrorOrNil()
}

// Stats returns statistics about this program.
func (p *Program) Stats() Stats {
	stats := Stats{BlockCount: len(p.blocks)}
	refs := make(map[*Block]int)
	for _, b := range p.blocks {
		if b == nil {
			continue
		}
		stats.ContentBytes += b.Len()
		stats.JumpCount += b.JumpCount()
		if !b.Resolved() {
			stats.UnresolvedBlocks++
		}
		for _, off := range b.JumpOffsets() {
			target, _ := b.JumpTarget(off)
			refs[target]++
		}
	}
	for _, count := range refs {
		if count > 1 {
			stats.SharedBlocks++
		}
	}
	return stats
}

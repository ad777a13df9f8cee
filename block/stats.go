package block

// Stats contains statistics about a compiled program.
// This is useful for auditing a program before layout.
type Stats struct {
	// BlockCount is the total number of blocks in the program.
	BlockCount int

	// ContentBytes is the combined content size of all blocks.
	ContentBytes int

	// JumpCount is the total number of jump edges across all blocks.
	JumpCount int

	// SharedBlocks is the number of blocks referenced by more than one
	// jump edge.
	SharedBlocks int

	// UnresolvedBlocks is the number of blocks the linker has not yet
	// assigned an offset.
	UnresolvedBlocks int
}

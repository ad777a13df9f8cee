package engine

// Emitter controls how the engine writes relocatable jump slots and run
// terminators while compiling. The default emitter writes bare zero-filled
// slots and no terminator, producing content the linker patches in place.
// Custom emitters surround slots with real instruction encodings using the
// engine's WriteValue, Write, and WriteSlot methods.
//
// Emitter methods are called synchronously while compiling, never during
// discovery.
type Emitter interface {
	// BranchSlot emits the relocatable placeholder for one side of a
	// conditional branch and returns the offset of its pointer-size slot
	// within the current block. Every branch emits two adjacent
	// placeholders, invoking this once with side true and once with side
	// false. The condition is whatever the routine passed to Branch,
	// unevaluated; emitters use it to pick condition-specific encodings.
	BranchSlot(e *Engine, side bool, condition any) int

	// JumpSlot emits the relocatable placeholder for a subroutine call
	// and returns the offset of its pointer-size slot within the current
	// block.
	JumpSlot(e *Engine) int

	// End runs at the end of every compiled run and of every subroutine
	// body, before the enclosing block is sealed. It receives whatever the
	// routine or subroutine returned. Typical implementations append a
	// return or halt encoding.
	End(e *Engine, result any)
}

// defaultEmitter writes bare pointer-size zero slots and no terminator.
type defaultEmitter struct{}

func (defaultEmitter) BranchSlot(e *Engine, side bool, condition any) int {
	return e.WriteSlot()
}

func (defaultEmitter) JumpSlot(e *Engine) int {
	return e.WriteSlot()
}

func (defaultEmitter) End(e *Engine, result any) {}

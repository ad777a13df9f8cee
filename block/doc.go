// Package block provides the immutable representation of a compiled program.
//
// This package defines the output of compilation: a directed acyclic graph of
// byte-content blocks linked by relocatable jump references. These types are
// designed to be created once by the engine and shared safely across multiple
// goroutines and linker passes.
//
// # Key Types
//
//   - [Block]: An immutable compiled unit of bytes plus outgoing jump edges
//   - [Program]: The arena owning every block of one compilation, root first
//   - [Stats]: Flat counters describing a program (value type)
//
// # Immutability Guarantees
//
// Blocks and programs are immutable after construction, with one deliberate
// exception for the linker:
//
//   - All fields are unexported
//   - Constructors copy input slices and maps to prevent caller mutation
//   - Accessors return values or copies, never internal slices
//   - [Block.SetOffset] is the single mutation point, reserved for the
//     linker to record final layout positions
//
// Index-based access is used for collections:
//
//	// Correct: count plus index-based access
//	program.BlockCount()
//	program.Block(i)
//	target, ok := b.JumpTarget(offset)
//
//	// NOT provided: methods that return internal slices
//	// program.Blocks() - does not exist
//
// # Jump Slots
//
// A block's content contains placeholder slots, each PointerSize bytes wide
// and zero-filled by the engine. The jump map relates a slot's starting
// offset to the block that slot transfers control to. Slots with no jump map
// entry are ordinary content as far as this package is concerned; whether
// they are meaningful is between the emitting routine and the linker.
//
// # Usage
//
// The engine produces a Program which can be:
//
//   - Walked by a linker that assigns offsets and resolves slots
//   - Compared structurally via [Block.Equal] for deduplication
//   - Audited via [Program.Validate] and [Program.Stats]
//
// Example:
//
//	program, err := engine.New().Compile(routine)
//	if err != nil {
//	    return err
//	}
//	root := program.Root()
//	for _, off := range root.JumpOffsets() {
//	    target, _ := root.JumpTarget(off)
//	    fmt.Printf("slot %d -> block %d\n", off, target.Handle())
//	}
package block

package engine

import (
	"strconv"
	"strings"

	"github.com/scriptc-io/scriptc/block"
)

// openBlock is the mutable block representation used while compiling.
// Every openBlock is sealed and converted to an immutable block.Block once
// all paths have been replayed.
type openBlock struct {
	seq     int
	content []byte
	jumps   map[int]*openBlock
}

// frame remembers the enclosing block and its partial content while a
// nested block is current.
type frame struct {
	parent *openBlock
	saved  []byte
}

// compilePaths drives phase 2: replay every discovered path in order,
// emitting bytes into context-keyed blocks, then freeze the block graph
// into its immutable form.
func (e *Engine) compilePaths(fn Routine, paths []Path) (*block.Program, error) {
	e.memo = map[string]*openBlock{}
	e.order = e.order[:0]
	e.subIDs = map[*Subroutine]int{}
	root := e.newOpenBlock()

	for _, p := range paths {
		e.beginRun(p)
		e.context = e.context[:0]
		e.frames = e.frames[:0]
		e.cur = root
		e.runLog.Trace().Str("path", p.String()).Msg("compiling path")

		result, err := fn(e)
		if e.failure != nil {
			return nil, e.failure
		}
		if err != nil {
			return nil, err
		}
		e.emitter.End(e, result)
		e.closeRun()
	}
	return e.freeze(root), nil
}

// compileBranch consumes the next recorded decision, writes the two
// continuation slots, and makes the block for the taken side current. The
// block stays open until the run ends; the sibling path fills in the other
// slot on the same block later.
func (e *Engine) compileBranch(cond any) (bool, error) {
	if e.cursor >= len(e.path) {
		err := &NondeterminismError{Index: e.cursor, Path: e.path}
		e.recordFailure(err)
		return false, err
	}
	decision := e.path[e.cursor]
	e.cursor++

	trueSlot := e.emitter.BranchSlot(e, true, cond)
	falseSlot := e.emitter.BranchSlot(e, false, cond)

	token := "F"
	if decision {
		token = "T"
	}
	nested := e.openContextBlock(token)

	taken := falseSlot
	if decision {
		taken = trueSlot
	}
	e.cur.jumps[taken] = nested
	e.pushBlock(nested)
	return decision, nil
}

// compileCall writes one relocatable slot, compiles the subroutine body
// into the block keyed by the subroutine's identity in the current
// context, and resumes the parent block.
func (e *Engine) compileCall(sub *Subroutine) (any, error) {
	slot := e.emitter.JumpSlot(e)
	nested := e.openContextBlock(e.subToken(sub))
	e.cur.jumps[slot] = nested
	e.runLog.Trace().
		Str("subroutine", sub.Name()).
		Int("slot", slot).
		Msg("compiling call")
	e.pushBlock(nested)

	result, err := sub.body(e)
	if e.failure != nil {
		return nil, e.failure
	}
	if err != nil {
		return nil, err
	}
	e.emitter.End(e, result)
	e.popBlock()
	e.context = e.context[:len(e.context)-1]
	return result, nil
}

// openContextBlock pushes a context token and returns the block for the
// resulting context, creating it on first visit.
func (e *Engine) openContextBlock(token string) *openBlock {
	e.context = append(e.context, token)
	key := strings.Join(e.context, "/")
	ob, reused := e.memo[key]
	if !reused {
		ob = e.newOpenBlock()
		e.memo[key] = ob
	}
	e.runLog.Trace().
		Str("context", key).
		Int("block", ob.seq).
		Bool("reused", reused).
		Msg("context block")
	return ob
}

func (e *Engine) newOpenBlock() *openBlock {
	ob := &openBlock{seq: len(e.order), jumps: map[int]*openBlock{}}
	e.order = append(e.order, ob)
	return ob
}

// subToken returns the context token for a subroutine, assigning each
// distinct *Subroutine a stable id for the duration of one compile.
func (e *Engine) subToken(sub *Subroutine) string {
	id, ok := e.subIDs[sub]
	if !ok {
		id = len(e.subIDs)
		e.subIDs[sub] = id
	}
	return "c" + strconv.Itoa(id)
}

// pushBlock makes ob the current block, stashing the parent's partial
// content so emission restarts at offset zero inside ob.
func (e *Engine) pushBlock(ob *openBlock) {
	e.frames = append(e.frames, frame{parent: e.cur, saved: e.buf.Bytes()})
	e.buf.Reset()
	e.cur = ob
}

// popBlock seals the current block's content and resumes the parent,
// restoring its partial content positioned at the end.
func (e *Engine) popBlock() {
	e.cur.content = e.buf.Bytes()
	f := e.frames[len(e.frames)-1]
	e.frames = e.frames[:len(e.frames)-1]
	e.buf.Restore(f.saved)
	e.cur = f.parent
}

// closeRun seals every block still open when a run ends. Branch blocks
// stay open until here; the bottom of the stack is the root block.
func (e *Engine) closeRun() {
	for len(e.frames) > 0 {
		e.popBlock()
	}
	e.cur.content = e.buf.Bytes()
}

// freeze converts the sealed openBlocks into immutable block.Block values,
// preserving creation order as block handles, and wraps them in a Program.
// The graph is acyclic, so the conversion recursion terminates.
func (e *Engine) freeze(root *openBlock) *block.Program {
	frozen := make(map[*openBlock]*block.Block, len(e.order))
	var convert func(ob *openBlock) *block.Block
	convert = func(ob *openBlock) *block.Block {
		if b, ok := frozen[ob]; ok {
			return b
		}
		jumps := make(map[int]*block.Block, len(ob.jumps))
		for off, target := range ob.jumps {
			jumps[off] = convert(target)
		}
		b := block.New(block.Params{
			Handle:      ob.seq,
			Content:     ob.content,
			Jumps:       jumps,
			PointerSize: e.pointerSize,
		})
		frozen[ob] = b
		return b
	}
	blocks := make([]*block.Block, 0, len(e.order))
	for _, ob := range e.order {
		blocks = append(blocks, convert(ob))
	}
	return block.NewProgram(block.ProgramParams{
		Root:        frozen[root],
		Blocks:      blocks,
		PointerSize: e.pointerSize,
	})
}

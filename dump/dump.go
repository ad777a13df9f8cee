// Package dump supports analysis of compiled programs by flattening the
// block graph into a printable listing. It works with the Program and
// Block types from the block package.
package dump

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/scriptc-io/scriptc/block"
)

// previewBytes caps how much block content a listing shows per entry.
const previewBytes = 16

// Jump is one relocatable slot within a dumped block.
type Jump struct {
	// At is the slot's offset within the block content.
	At int

	// Target is the handle of the destination block.
	Target int
}

// Entry represents a single block of a program and its outgoing jumps.
type Entry struct {
	Handle  int
	Size    int
	Offset  int
	Root    bool
	Jumps   []Jump
	Content string
}

// Dump returns a parsed representation of the given program, one entry per
// block in arena order. It fails if any jump targets a block the program
// does not contain.
func Dump(program *block.Program) ([]Entry, error) {
	if program == nil {
		return nil, errors.New("no program supplied")
	}
	known := make(map[*block.Block]bool, program.BlockCount())
	for i := 0; i < program.BlockCount(); i++ {
		known[program.Block(i)] = true
	}
	root := program.Root()

	entries := make([]Entry, 0, program.BlockCount())
	for i := 0; i < program.BlockCount(); i++ {
		b := program.Block(i)
		var jumps []Jump
		for _, offset := range b.JumpOffsets() {
			target, ok := b.JumpTarget(offset)
			if !ok || !known[target] {
				return nil, fmt.Errorf("jump at offset %d of block %d targets a block outside the program",
					offset, b.Handle())
			}
			jumps = append(jumps, Jump{At: offset, Target: target.Handle()})
		}
		entries = append(entries, Entry{
			Handle:  b.Handle(),
			Size:    b.Len(),
			Offset:  b.Offset(),
			Root:    b == root,
			Jumps:   jumps,
			Content: preview(b),
		})
	}
	return entries, nil
}

var (
	boldText   = color.New(color.Bold).SprintFunc()
	yellowText = color.New(color.FgYellow).SprintFunc()
	cyanText   = color.New(color.FgCyan).SprintFunc()
)

// Positions of the colored columns in the Print table.
const (
	jumpsColumn   = 3
	contentColumn = 4
)

// Print writes a table rendering of the given entries to the given writer.
// The root block's handle carries an asterisk, and unresolved offsets print
// as "-". Column widths are measured on the plain cell text and colors are
// applied afterwards, so ANSI escape sequences never disturb alignment.
func Print(entries []Entry, writer io.Writer) {
	header := []string{"BLOCK", "SIZE", "OFFSET", "JUMPS", "CONTENT"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		handle := strconv.Itoa(entry.Handle)
		if entry.Root {
			handle = "*" + handle
		}
		offset := "-"
		if entry.Offset >= 0 {
			offset = strconv.Itoa(entry.Offset)
		}
		rows = append(rows, []string{
			handle,
			strconv.Itoa(entry.Size),
			offset,
			formatJumps(entry.Jumps),
			entry.Content,
		})
	}

	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = len(cell)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow(writer, widths, header, headerCell)
	for _, row := range rows {
		printRow(writer, widths, row, bodyCell)
	}
}

// printRow writes one table row, padding each cell by its plain width and
// coloring it afterwards. The last cell is never padded.
func printRow(writer io.Writer, widths []int, cells []string, colorize func(int, string) string) {
	var sb strings.Builder
	for i, cell := range cells {
		sb.WriteString(colorize(i, cell))
		if i < len(cells)-1 {
			sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)+2))
		}
	}
	sb.WriteByte('\n')
	io.WriteString(writer, sb.String())
}

func headerCell(_ int, cell string) string {
	return boldText(cell)
}

func bodyCell(column int, cell string) string {
	if cell == "" {
		return cell
	}
	switch column {
	case jumpsColumn:
		return cyanText(cell)
	case contentColumn:
		return yellowText(cell)
	}
	return cell
}

func formatJumps(jumps []Jump) string {
	var sb strings.Builder
	for i, jump := range jumps {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d->%d", jump.At, jump.Target)
	}
	return sb.String()
}

func preview(b *block.Block) string {
	data := b.Bytes()
	if len(data) == 0 {
		return ""
	}
	if len(data) > previewBytes {
		return hex.EncodeToString(data[:previewBytes]) + "..."
	}
	return hex.EncodeToString(data)
}

package coverage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Coverage modes written by "go test -covermode".
const (
	ModeSet    = "set"
	ModeCount  = "count"
	ModeAtomic = "atomic"
)

// Block is one basic block of a source file.
type Block struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	NumStmt   int
	Count     int
}

// key identifies a block by position within its file.
type key struct {
	startLine, startCol, endLine, endCol int
}

func (k key) less(o key) bool {
	if k.startLine != o.startLine {
		return k.startLine < o.startLine
	}
	if k.startCol != o.startCol {
		return k.startCol < o.startCol
	}
	if k.endLine != o.endLine {
		return k.endLine < o.endLine
	}
	return k.endCol < o.endCol
}

func (b Block) key() key {
	return key{b.StartLine, b.StartCol, b.EndLine, b.EndCol}
}

// Profile is a parsed coverage profile.
type Profile struct {
	// Mode is the coverage mode from the "mode:" header.
	Mode string

	// Blocks maps a source file (import path form) to its blocks.
	Blocks map[string][]Block
}

// Files returns the profile's file names in sorted order.
func (p *Profile) Files() []string {
	names := make([]string, 0, len(p.Blocks))
	for name := range p.Blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseProfile reads a coverage profile. The first non-blank line must be
// the "mode:" header. Errors carry the 1-based line number.
func ParseProfile(r io.Reader) (*Profile, error) {
	p := &Profile{Blocks: make(map[string][]Block)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if p.Mode == "" {
			mode, ok := strings.CutPrefix(line, "mode:")
			if !ok {
				return nil, fmt.Errorf("line %d: expected \"mode:\" header, got %q", lineNo, line)
			}
			p.Mode = strings.TrimSpace(mode)
			if !isMode(p.Mode) {
				return nil, fmt.Errorf("line %d: unknown coverage mode %q", lineNo, p.Mode)
			}
			continue
		}

		file, block, err := parseBlockLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		p.Blocks[file] = append(p.Blocks[file], block)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read coverage profile: %w", err)
	}
	if p.Mode == "" {
		return nil, fmt.Errorf("empty coverage profile: missing \"mode:\" header")
	}

	// A single profile may list a block twice when a package is tested
	// more than once; fold duplicates the same way Merge does.
	for file, blocks := range p.Blocks {
		folded, err := mergeBlocks(p.Mode, nil, blocks)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		p.Blocks[file] = folded
	}
	return p, nil
}

// parseBlockLine parses "file.go:10.2,12.3 2 1".
func parseBlockLine(line string) (string, Block, error) {
	var b Block

	fields := strings.Fields(line)
	if len(fields) != 3 {
		return "", b, fmt.Errorf("malformed block %q: want \"file:start,end numStmt count\"", line)
	}

	// The file name may itself contain ':' (Windows drive letters), so split
	// at the last one.
	colon := strings.LastIndex(fields[0], ":")
	if colon <= 0 {
		return "", b, fmt.Errorf("malformed block position %q", fields[0])
	}
	file, span := fields[0][:colon], fields[0][colon+1:]

	start, end, ok := strings.Cut(span, ",")
	if !ok {
		return "", b, fmt.Errorf("malformed block span %q", span)
	}
	var err error
	if b.StartLine, b.StartCol, err = parsePos(start); err != nil {
		return "", b, err
	}
	if b.EndLine, b.EndCol, err = parsePos(end); err != nil {
		return "", b, err
	}
	if b.NumStmt, err = strconv.Atoi(fields[1]); err != nil || b.NumStmt < 0 {
		return "", b, fmt.Errorf("malformed statement count %q", fields[1])
	}
	if b.Count, err = strconv.Atoi(fields[2]); err != nil || b.Count < 0 {
		return "", b, fmt.Errorf("malformed hit count %q", fields[2])
	}
	return file, b, nil
}

// parsePos parses "line.col".
func parsePos(s string) (int, int, error) {
	l, c, ok := strings.Cut(s, ".")
	if !ok {
		return 0, 0, fmt.Errorf("malformed position %q", s)
	}
	line, err := strconv.Atoi(l)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed position %q", s)
	}
	col, err := strconv.Atoi(c)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed position %q", s)
	}
	return line, col, nil
}

func isMode(m string) bool {
	return m == ModeSet || m == ModeCount || m == ModeAtomic
}

// Load reads and merges the profiles at paths.
func Load(paths ...string) (*Profile, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no coverage profiles given")
	}

	profiles := make([]*Profile, 0, len(paths))
	for _, path := range paths {
		p, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return Merge(profiles...)
}

func loadFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open coverage profile: %w", err)
	}
	defer func() { _ = f.Close() }()

	p, err := ParseProfile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Merge combines profiles that share a coverage mode. Identical blocks are
// combined: in "set" mode a block is covered if any profile covered it; in
// "count" and "atomic" modes the hit counts are summed.
func Merge(profiles ...*Profile) (*Profile, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no coverage profiles to merge")
	}

	out := &Profile{Mode: profiles[0].Mode, Blocks: make(map[string][]Block)}
	for _, p := range profiles {
		if p.Mode != out.Mode {
			return nil, fmt.Errorf("cannot merge %q profile with %q profile", p.Mode, out.Mode)
		}
		for file, blocks := range p.Blocks {
			merged, err := mergeBlocks(out.Mode, out.Blocks[file], blocks)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			out.Blocks[file] = merged
		}
	}
	return out, nil
}

// mergeBlocks folds src into dst and returns the blocks sorted by position.
func mergeBlocks(mode string, dst, src []Block) ([]Block, error) {
	index := make(map[key]int, len(dst)+len(src))
	merged := make([]Block, 0, len(dst)+len(src))

	for _, b := range append(append([]Block(nil), dst...), src...) {
		i, seen := index[b.key()]
		if !seen {
			index[b.key()] = len(merged)
			merged = append(merged, b)
			continue
		}
		if merged[i].NumStmt != b.NumStmt {
			return nil, fmt.Errorf("block %d.%d,%d.%d has inconsistent statement counts %d and %d",
				b.StartLine, b.StartCol, b.EndLine, b.EndCol, merged[i].NumStmt, b.NumStmt)
		}
		if mode == ModeSet {
			if b.Count > 0 {
				merged[i].Count = 1
			}
		} else {
			merged[i].Count += b.Count
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].key().less(merged[j].key())
	})
	return merged, nil
}

// WriteProfile writes p in the "go test -coverprofile" format, files and
// blocks in sorted order, so that merged output can be uploaded to a
// coverage service or fed to "go tool cover".
func WriteProfile(w io.Writer, p *Profile) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "mode: %s\n", p.Mode)
	for _, file := range p.Files() {
		for _, b := range p.Blocks[file] {
			fmt.Fprintf(bw, "%s:%d.%d,%d.%d %d %d\n",
				file, b.StartLine, b.StartCol, b.EndLine, b.EndCol, b.NumStmt, b.Count)
		}
	}
	return bw.Flush()
}

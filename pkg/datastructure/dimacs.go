package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

/*
ReadDimacs parses a graph in the 9th DIMACS challenge shortest path format:

	c comment
	p sp <nodes> <arcs>
	a <from> <to> <cost>

node ids in the file are 1-based.
*/
func ReadDimacs(r io.Reader) (*Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		g        *Graph
		numArcs  int
		lineNum  int
		arcsRead int
	)
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == 'c' {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "p":
			if g != nil {
				return nil, fmt.Errorf("line %d: duplicate problem line", lineNum)
			}
			if len(fields) != 4 || fields[1] != "sp" {
				return nil, fmt.Errorf("line %d: expected 'p sp <nodes> <arcs>'", lineNum)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("line %d: bad node count %q", lineNum, fields[2])
			}
			numArcs, err = strconv.Atoi(fields[3])
			if err != nil || numArcs < 0 {
				return nil, fmt.Errorf("line %d: bad arc count %q", lineNum, fields[3])
			}
			g = NewGraph(n)
			g.grow(numArcs)
		case "a":
			if g == nil {
				return nil, fmt.Errorf("line %d: arc before problem line", lineNum)
			}
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: expected 'a <from> <to> <cost>'", lineNum)
			}
			from, err1 := strconv.Atoi(fields[1])
			to, err2 := strconv.Atoi(fields[2])
			cost, err3 := strconv.ParseInt(fields[3], 10, 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("line %d: malformed arc", lineNum)
			}
			if from < 1 || from > g.NumNodes() || to < 1 || to > g.NumNodes() {
				return nil, fmt.Errorf("line %d: arc %d -> %d out of range", lineNum, from, to)
			}
			g.AddArc(Index(from-1), Index(to-1), Weight(cost))
			arcsRead++
		default:
			return nil, fmt.Errorf("line %d: unknown line type %q", lineNum, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("missing problem line")
	}
	if arcsRead != numArcs {
		return nil, fmt.Errorf("problem line announces %d arcs, read %d", numArcs, arcsRead)
	}
	return g, nil
}

// ReadDimacsFile reads path, decompressing it first when it ends in .zst.
func ReadDimacsFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".zst") {
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer d.Close()
		r = d
	}
	return ReadDimacs(r)
}

package libdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/mosra/magnum-plugins-sub007/encode"
	"github.com/mosra/magnum-plugins-sub007/ir"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) prefix() string {
	switch o {
	case Insert:
		return "+ "
	case Delete:
		return "- "
	}
	return "  "
}

type Line struct {
	Op   Op
	Text string
}

type Result struct {
	Lines []Line
}

// Diff encodes both documents canonically and compares them line by line.
func Diff(from, to *ir.Document) (*Result, error) {
	a, err := encode.String(from)
	if err != nil {
		return nil, err
	}
	b, err := encode.String(to)
	if err != nil {
		return nil, err
	}
	return DiffText(a, b), nil
}

// DiffText compares two texts line by line.
func DiffText(from, to string) *Result {
	dmp := diffpatch.New()
	ra, rb, lines := dmp.DiffLinesToRunes(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(ra, rb, false), lines)
	res := &Result{}
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			res.Lines = append(res.Lines, Line{Op: op, Text: strings.TrimSuffix(ln, "\n")})
		}
	}
	return res
}

func (r *Result) Equal() bool {
	for _, l := range r.Lines {
		if l.Op != Equal {
			return false
		}
	}
	return true
}

// Changes returns the number of inserted and deleted lines.
func (r *Result) Changes() (inserted, deleted int) {
	for _, l := range r.Lines {
		switch l.Op {
		case Insert:
			inserted++
		case Delete:
			deleted++
		}
	}
	return
}

type writeOpts struct {
	colors  bool
	context int
}

type WriteOption func(*writeOpts)

func DiffColors(v bool) WriteOption {
	return func(o *writeOpts) { o.colors = v }
}

// DiffContext limits unchanged lines to n around each change. A negative n
// keeps every line, which is the default.
func DiffContext(n int) WriteOption {
	return func(o *writeOpts) { o.context = n }
}

// Write prints the lines with a +, - or blank prefix.
func (r *Result) Write(w io.Writer, opts ...WriteOption) error {
	o := &writeOpts{context: -1}
	for _, opt := range opts {
		opt(o)
	}
	keep := r.keep(o.context)
	skipped := false
	for i, l := range r.Lines {
		if !keep[i] {
			if !skipped {
				if _, err := fmt.Fprintln(w, "  ..."); err != nil {
					return err
				}
			}
			skipped = true
			continue
		}
		skipped = false
		s := l.Op.prefix() + l.Text
		if o.colors {
			switch l.Op {
			case Insert:
				s = color.GreenString("%s", s)
			case Delete:
				s = color.RedString("%s", s)
			}
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

func (r *Result) keep(context int) []bool {
	keep := make([]bool, len(r.Lines))
	for i, l := range r.Lines {
		if context < 0 || l.Op != Equal {
			keep[i] = true
			continue
		}
		for j := max(0, i-context); j <= min(len(r.Lines)-1, i+context); j++ {
			if r.Lines[j].Op != Equal {
				keep[i] = true
				break
			}
		}
	}
	return keep
}

func (r *Result) String() string {
	b := &strings.Builder{}
	r.Write(b)
	return b.String()
}

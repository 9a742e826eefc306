package parse

import (
	"errors"
	"fmt"

	"github.com/mosra/magnum-plugins-sub007/debug"
	"github.com/mosra/magnum-plugins-sub007/ir"
	"github.com/mosra/magnum-plugins-sub007/token"
)

// ErrParse wraps every error returned by Parse and Into. The positional
// *token.Error is available through errors.As.
var ErrParse = errors.New("parse error")

// Parse parses d into a new document resolving identifiers against structs
// and props.
func Parse(d []byte, structs, props *ir.Identifiers, opts ...ParseOption) (*ir.Document, error) {
	doc := ir.NewDocument(structs, props)
	if err := Into(doc, d, opts...); err != nil {
		return nil, err
	}
	return doc, nil
}

// Into parses d into doc. Unless ParseAppend is given the previous contents
// are replaced. On error doc is left unchanged.
func Into(doc *ir.Document, d []byte, opts ...ParseOption) error {
	pOpts := newParseOpts(opts)
	p := &parser{d: d, opts: pOpts}
	if pOpts.append {
		p.b = doc.NewAppendBuilder()
	} else {
		p.b = doc.NewBuilder()
	}
	if _, err := p.structureList(0, ir.NoParent); err != nil {
		var te *token.Error
		if errors.As(err, &te) {
			fmt.Fprintf(pOpts.diag, "parse: %s on line %d\n", te.Message(), te.Line())
		} else {
			fmt.Fprintf(pOpts.diag, "parse: %s\n", err)
		}
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	unresolved := p.b.Commit()
	for _, path := range unresolved {
		fmt.Fprintf(pOpts.diag, "parse: reference %s was not found\n", path)
	}
	if debug.Refs() {
		debug.Logf("parse: %d structures, unresolved references %v\n", doc.Len(), unresolved)
	}
	return nil
}

type parser struct {
	d    []byte
	b    *ir.Builder
	opts *parseOpts
}

func (p *parser) skip(i int) (int, error) {
	return token.Skip(p.d, i)
}

func (p *parser) at(i int, c byte) bool {
	return i < len(p.d) && p.d[i] == c
}

func (p *parser) fail(e error, i int) error {
	return token.NewError(e, p.d, i)
}

// structureList parses structures until the closing } of parent, or until
// the end of input at the top level. It returns the offset of the } or of
// the end.
func (p *parser) structureList(i, parent int) (int, error) {
	first, last := -1, -1
	for {
		var err error
		i, err = p.skip(i)
		if err != nil {
			return i, err
		}
		if i >= len(p.d) {
			if parent != ir.NoParent {
				return i, p.fail(token.ErrExpectedListEnd, i)
			}
			break
		}
		if parent != ir.NoParent && p.d[i] == '}' {
			break
		}
		idx, j, err := p.structure(i, parent)
		if err != nil {
			return j, err
		}
		if first < 0 {
			first = idx
		}
		last = idx
		i = j
	}
	if last >= 0 {
		p.b.EndList(parent, first, last)
	}
	return i, nil
}

// name parses an optional $name or %name and returns its string index.
func (p *parser) name(i int) (int, int, error) {
	if !p.at(i, '$') && !p.at(i, '%') {
		return 0, i, nil
	}
	n, j, err := token.Name(p.d, i)
	if err != nil {
		return 0, i, err
	}
	return p.b.Intern(n), j, nil
}

func (p *parser) structure(i, parent int) (int, int, error) {
	offset := i
	ident, i, err := token.Identifier(p.d, i)
	if err != nil {
		return 0, i, err
	}
	if debug.Parse() {
		debug.Logf("parse: %s at %d\n", ident, offset)
	}
	if t, ok := ir.LookupType(ident); ok {
		return p.primitive(i, parent, offset, t)
	}
	return p.custom(i, parent, offset, ident)
}

func (p *parser) primitive(i, parent, offset int, t ir.Type) (int, int, error) {
	i, err := p.skip(i)
	if err != nil {
		return 0, i, err
	}
	sub := 0
	if p.at(i, '[') {
		if i, err = p.skip(i + 1); err != nil {
			return 0, i, err
		}
		n, _, j, err := token.IntLiteral[uint32](p.d, i)
		if err != nil || n == 0 {
			return 0, i, p.fail(token.ErrInvalidSubArraySize, i)
		}
		sub = int(n)
		if i, err = p.skip(j); err != nil {
			return 0, i, err
		}
		if !p.at(i, ']') {
			return 0, i, p.fail(token.ErrExpectedArraySizeEnd, i)
		}
		if i, err = p.skip(i + 1); err != nil {
			return 0, i, err
		}
	}
	name, i, err := p.name(i)
	if err != nil {
		return 0, i, err
	}
	if i, err = p.skip(i); err != nil {
		return 0, i, err
	}
	if !p.at(i, '{') {
		return 0, i, p.fail(token.ErrExpectedListStart, i)
	}
	begin := p.b.ColumnLen(t)
	i, err = p.dataList(i+1, t, sub, p.b.Len())
	if err != nil {
		return 0, i, err
	}
	idx := p.b.AddPrimitive(parent, name, offset, t, sub, begin, p.b.ColumnLen(t)-begin)
	return idx, i + 1, nil
}

func (p *parser) custom(i, parent, offset int, ident string) (int, int, error) {
	i, err := p.skip(i)
	if err != nil {
		return 0, i, err
	}
	name, i, err := p.name(i)
	if err != nil {
		return 0, i, err
	}
	idx := p.b.Reserve()
	propBegin := p.b.PropertyCount()
	if i, err = p.skip(i); err != nil {
		return 0, i, err
	}
	if p.at(i, '(') {
		if i, err = p.properties(i+1, idx); err != nil {
			return 0, i, err
		}
		if i, err = p.skip(i); err != nil {
			return 0, i, err
		}
	}
	propEnd := p.b.PropertyCount()
	if !p.at(i, '{') {
		return 0, i, p.fail(token.ErrExpectedListStart, i)
	}
	if i, err = p.structureList(i+1, idx); err != nil {
		return 0, i, err
	}
	p.b.FinishCustom(idx, parent, name, offset, ident, propBegin, propEnd)
	return idx, i + 1, nil
}

// dataList parses the literals of a primitive structure up to its closing }
// and returns the offset of the }.
func (p *parser) dataList(i int, t ir.Type, sub, origin int) (int, error) {
	for n := 0; ; n++ {
		var err error
		if i, err = p.skip(i); err != nil {
			return i, err
		}
		if p.at(i, '}') {
			return i, nil
		}
		if i >= len(p.d) {
			return i, p.fail(token.ErrExpectedListEnd, i)
		}
		if n > 0 {
			if !p.at(i, ',') {
				return i, p.fail(token.ErrExpectedSeparator, i)
			}
			if i, err = p.skip(i + 1); err != nil {
				return i, err
			}
		}
		if sub == 0 {
			i, err = p.literal(i, t, origin)
		} else {
			i, err = p.subArray(i, t, sub, origin)
		}
		if err != nil {
			return i, err
		}
	}
}

func (p *parser) subArray(i int, t ir.Type, n, origin int) (int, error) {
	if !p.at(i, '{') {
		return i, p.fail(token.ErrExpectedListStart, i)
	}
	i++
	for k := range n {
		var err error
		if i, err = p.skip(i); err != nil {
			return i, err
		}
		if k > 0 {
			if !p.at(i, ',') {
				return i, p.fail(token.ErrExpectedSeparator, i)
			}
			if i, err = p.skip(i + 1); err != nil {
				return i, err
			}
		}
		if i, err = p.literal(i, t, origin); err != nil {
			return i, err
		}
	}
	i, err := p.skip(i)
	if err != nil {
		return i, err
	}
	if !p.at(i, '}') {
		return i, p.fail(token.ErrExpectedListEnd, i)
	}
	return i + 1, nil
}

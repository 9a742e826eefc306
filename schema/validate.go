package schema

import (
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/mosra/magnum-plugins-sub007/debug"
	"github.com/mosra/magnum-plugins-sub007/ir"
)

type validateOpts struct {
	diag io.Writer
}

type ValidateOption func(*validateOpts)

// ValidateDiagnostics sets where a "validate:" line is written for each
// violation. The default is os.Stderr; nil discards them.
func ValidateDiagnostics(w io.Writer) ValidateOption {
	return func(o *validateOpts) {
		if w == nil {
			w = io.Discard
		}
		o.diag = w
	}
}

// Validate checks doc against s. It returns nil or an Errors value holding
// every violation in document order.
func (s *Schema) Validate(doc *ir.Document, opts ...ValidateOption) error {
	o := &validateOpts{diag: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}
	v := &validator{s: s, doc: doc, opts: o}
	for c := range doc.Children() {
		if !c.IsCustom() {
			v.fail(ErrPrimitiveInRoot, c.Index(), "unexpected primitive structure in root")
		}
	}
	v.level(-1, doc.Children(), s.Roots)
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

type validator struct {
	s    *Schema
	doc  *ir.Document
	opts *validateOpts
	errs Errors
}

func (v *validator) fail(err error, at int, format string, args ...any) {
	e := &Error{Err: err, Structure: at, msg: fmt.Sprintf(format, args...)}
	fmt.Fprintf(v.opts.diag, "validate: %s\n", e.msg)
	v.errs = append(v.errs, e)
}

func (v *validator) name(id int) string { return v.doc.StructureName(id) }

// level checks the custom structures of one sibling list against allowed
// and then descends into each of them. parent is -1 for the root.
func (v *validator) level(parent int, children iter.Seq[ir.Structure], allowed []Allowed) {
	counts := make([]int, len(allowed))
	var customs []ir.Structure
	for c := range children {
		if !c.IsCustom() || c.Identifier() == ir.UnknownIdentifier {
			continue
		}
		k := -1
		for i := range allowed {
			if allowed[i].ID == c.Identifier() {
				k = i
				break
			}
		}
		if k < 0 {
			v.fail(ErrUnexpectedStructure, c.Index(), "unexpected structure %s", v.name(c.Identifier()))
			continue
		}
		counts[k]++
		customs = append(customs, c)
	}
	for i, a := range allowed {
		switch {
		case a.Count.Max != 0 && counts[i] > a.Count.Max:
			v.fail(ErrTooMany, parent, "too many %s structures, got %d but expected max %d",
				v.name(a.ID), counts[i], a.Count.Max)
		case counts[i] < a.Count.Min:
			v.fail(ErrTooFew, parent, "too few %s structures, got %d but expected min %d",
				v.name(a.ID), counts[i], a.Count.Min)
		}
	}
	for _, c := range customs {
		rule, ok := v.s.Rule(c.Identifier())
		if !ok {
			v.fail(ErrMissingSchema, c.Index(), "missing schema for structure %s", v.name(c.Identifier()))
			continue
		}
		if debug.Validate() {
			debug.Logf("validate: %s at %d\n", v.name(c.Identifier()), c.Index())
		}
		v.structure(c, rule)
	}
}

func (v *validator) structure(st ir.Structure, rule *Structure) {
	sname := v.name(st.Identifier())
	seen := make([]bool, len(rule.Properties))
	for p := range st.Properties() {
		if p.Identifier() == ir.UnknownIdentifier {
			continue
		}
		pname := v.doc.PropertyName(p.Identifier())
		k := -1
		for i := range rule.Properties {
			if rule.Properties[i].ID == p.Identifier() {
				k = i
				break
			}
		}
		if k < 0 {
			v.fail(ErrUnexpectedProperty, st.Index(), "unexpected property %s in structure %s", pname, sname)
			continue
		}
		seen[k] = true
		if !p.IsTypeCompatibleWith(rule.Properties[k].Type) {
			v.fail(ErrPropertyType, st.Index(), "unexpected type of property %s, expected %s", pname, rule.Properties[k].Type)
		}
	}
	for i, p := range rule.Properties {
		if p.Required && !seen[i] {
			v.fail(ErrMissingProperty, st.Index(), "expected property %s in structure %s",
				v.doc.PropertyName(p.ID), sname)
		}
	}

	count := 0
	countReported := false
	for c := range st.Children() {
		if c.IsCustom() {
			continue
		}
		count++
		if !countReported && (len(rule.Primitives) == 0 || rule.PrimitiveCount != 0 && count > rule.PrimitiveCount) {
			v.fail(ErrPrimitiveCount, st.Index(), "expected exactly %d primitive sub-structures in structure %s",
				rule.PrimitiveCount, sname)
			countReported = true
		}
		if len(rule.Primitives) == 0 {
			continue
		}
		if !allowsType(rule.Primitives, c.Type()) {
			v.fail(ErrPrimitiveType, c.Index(), "unexpected sub-structure of type %s in structure %s", c.Type(), sname)
			continue
		}
		if rule.ArraySize != 0 && c.ArraySize() != rule.ArraySize {
			v.fail(ErrArraySize, c.Index(), "expected exactly %d values in %s sub-structure", rule.ArraySize, sname)
		}
	}
	if !countReported && rule.PrimitiveCount != 0 && count < rule.PrimitiveCount {
		v.fail(ErrPrimitiveCount, st.Index(), "expected exactly %d primitive sub-structures in structure %s",
			rule.PrimitiveCount, sname)
	}

	v.level(st.Index(), st.Children(), rule.Structures)
}

func allowsType(types []ir.Type, t ir.Type) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

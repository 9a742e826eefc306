package encode

import (
	"strings"

	"github.com/mosra/magnum-plugins-sub007/ir"

	"github.com/fatih/color"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	IdentifierColor ColorAttr = iota
	NameColor
	PropertyColor
	TypeColor
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range append(ir.Types(), ir.CustomType) {
		able := Colorable{Type: t, Attr: TypeColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = NameColor
		colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Type: ir.CustomType, Attr: IdentifierColor}
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = PropertyColor
	colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()

	able.Attr = ValueColor
	for _, t := range ir.Types() {
		able.Type = t
		switch {
		case t.IsInteger() || t.IsFloat():
			colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
		case t == ir.BoolType:
			colors.Map[able] = color.CyanString
		case t == ir.StringType:
			colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
		case t == ir.ReferenceType:
			colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
		case t == ir.Base64Type:
			colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()
		default:
			colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
		}
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}

package export

import "strings"

// Styleable is the part of a rendered node the export touches: its class
// list, its inline style and its children.
type Styleable interface {
	ClassName() string
	SetClassName(string)
	StyleText() string
	SetStyleText(string)
	Style(name string) string
	SetStyle(name, value string)
	Children() []Styleable
}

// Property is one inline style declaration.
type Property struct {
	Name  string
	Value string
}

// Element is an in-memory Styleable node. Inline declarations keep their order.
type Element struct {
	Tag   string
	class string
	style []Property
	Kids  []*Element
}

func NewElement(tag, class, style string, kids ...*Element) *Element {
	e := &Element{Tag: tag, class: class, Kids: kids}
	e.SetStyleText(style)
	return e
}

func (e *Element) ClassName() string     { return e.class }
func (e *Element) SetClassName(c string) { e.class = c }

func (e *Element) StyleText() string {
	if len(e.style) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e.style))
	for _, p := range e.style {
		parts = append(parts, p.Name+": "+p.Value+";")
	}
	return strings.Join(parts, " ")
}

func (e *Element) SetStyleText(text string) {
	e.style = e.style[:0]
	for _, decl := range strings.Split(text, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		e.SetStyle(name, value)
	}
}

func (e *Element) Style(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range e.style {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// SetStyle updates a declaration in place, appends a new one, or removes it
// when value is empty.
func (e *Element) SetStyle(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if name == "" {
		return
	}
	for i, p := range e.style {
		if p.Name != name {
			continue
		}
		if value == "" {
			e.style = append(e.style[:i], e.style[i+1:]...)
		} else {
			e.style[i].Value = value
		}
		return
	}
	if value != "" {
		e.style = append(e.style, Property{Name: name, Value: value})
	}
}

func (e *Element) Children() []Styleable {
	out := make([]Styleable, 0, len(e.Kids))
	for _, k := range e.Kids {
		out = append(out, k)
	}
	return out
}

/* ===================== helpers over Styleable ===================== */

func hasClass(s Styleable, class string) bool {
	for _, c := range strings.Fields(s.ClassName()) {
		if c == class {
			return true
		}
	}
	return false
}

func withoutClasses(className string, drop ...string) string {
	fields := strings.Fields(className)
	out := fields[:0]
next:
	for _, f := range fields {
		for _, d := range drop {
			if f == d {
				continue next
			}
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// descendants walks every node below root, depth first.
func descendants(root Styleable, fn func(Styleable)) {
	for _, k := range root.Children() {
		fn(k)
		descendants(k, fn)
	}
}

// clips reports whether the node's inline overflow hides content.
func clips(s Styleable) bool {
	for _, name := range []string{"overflow", "overflow-x", "overflow-y"} {
		if v := s.Style(name); v != "" && v != "visible" {
			return true
		}
	}
	return false
}

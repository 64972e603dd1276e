package export

// Scope applies a StyleOverrides set to a target for the length of one call.
type Scope struct {
	Target    Styleable
	Overrides StyleOverrides
}

type saved struct {
	node  Styleable
	class string
	style string
}

// Run applies the overrides, calls fn, then restores every touched node's
// class and inline style. Restoration also happens when fn panics.
func (s Scope) Run(fn func(target Styleable) error) error {
	restore := s.apply()
	defer restore()
	return fn(s.Target)
}

func (s Scope) apply() (restore func()) {
	root := s.Target
	o := s.Overrides
	var touched []saved

	descendants(root, func(n Styleable) {
		reveal := o.Reveal != nil && hasClass(n, o.Reveal.Marker) && hasClass(n, o.Reveal.Remove)
		clip := clips(n)
		if !reveal && !clip {
			return
		}
		touched = append(touched, saved{node: n, class: n.ClassName(), style: n.StyleText()})
		if clip {
			for _, p := range o.Clipping {
				n.SetStyle(p.Name, p.Value)
			}
		}
		if reveal {
			n.SetClassName(withoutClasses(n.ClassName(), o.Reveal.Remove))
		}
	})

	rootSaved := saved{node: root, class: root.ClassName(), style: root.StyleText()}
	root.SetClassName(withoutClasses(root.ClassName(), o.RemoveClasses...))
	for _, p := range o.Root {
		root.SetStyle(p.Name, p.Value)
	}

	return func() {
		rootSaved.node.SetClassName(rootSaved.class)
		rootSaved.node.SetStyleText(rootSaved.style)
		for i := len(touched) - 1; i >= 0; i-- {
			t := touched[i]
			t.node.SetClassName(t.class)
			t.node.SetStyleText(t.style)
		}
	}
}

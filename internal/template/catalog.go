package template

// Catalog is the merged set of built-in and document-declared templates of
// one analysis pass.
type Catalog struct {
	builtins []*Template
	declared []*Template
	all      []*Template
}

// NewCatalog merges builtins and declared templates. Templates without
// tokens are skipped.
func NewCatalog(builtins, declared []*Template) *Catalog {
	c := &Catalog{
		builtins: nonEmpty(builtins),
		declared: nonEmpty(declared),
	}
	c.all = make([]*Template, 0, len(c.builtins)+len(c.declared))
	c.all = append(c.all, c.declared...)
	c.all = append(c.all, c.builtins...)
	return c
}

func nonEmpty(templates []*Template) []*Template {
	out := make([]*Template, 0, len(templates))
	for _, t := range templates {
		if t != nil && t.Len() > 0 {
			out = append(out, t)
		}
	}
	return out
}

// All returns declared templates followed by built-ins.
func (c *Catalog) All() []*Template {
	return c.all
}

// Declared returns the templates written in the document.
func (c *Catalog) Declared() []*Template {
	return c.declared
}

// Builtins returns the built-in templates.
func (c *Catalog) Builtins() []*Template {
	return c.builtins
}

// Matches reports whether any template matches literal.
func (c *Catalog) Matches(literal string) bool {
	for _, t := range c.all {
		if t.Matches(literal) {
			return true
		}
	}
	return false
}

// BestMatch returns the best matching template of the catalog, or nil.
func (c *Catalog) BestMatch(literal string) *Template {
	return BestMatch(c.all, literal)
}

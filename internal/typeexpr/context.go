package typeexpr

import "strings"

// Context is the resolution environment a type expression is parsed in:
// the enclosing namespace, the alias map from use-statements, the template
// names of the surrounding generic scope, and optionally the set of known
// classes.
type Context struct {
	// Namespace is the fully-qualified enclosing namespace ("\\App\\Db").
	// Empty means the global namespace.
	Namespace string
	// Aliases maps the first segment of a relative name to a
	// fully-qualified prefix, mirroring use-statements.
	Aliases map[string]string
	// Templates holds the template parameter names in scope.
	Templates map[string]struct{}
	// Known reports whether a fully-qualified class name is currently
	// resolvable. nil means every name is trusted; the caller may re-parse
	// later once its symbol table has grown.
	Known func(fqn string) bool
}

// IsTemplate reports whether a bare name refers to a template parameter.
func (c *Context) IsTemplate(name string) bool {
	if c == nil || c.Templates == nil {
		return false
	}
	_, ok := c.Templates[name]
	return ok
}

// ResolveClass expands a written class name into its fully-qualified form.
func (c *Context) ResolveClass(name string) string {
	if strings.HasPrefix(name, "\\") {
		return name
	}
	first, rest, hasRest := strings.Cut(name, "\\")
	if c != nil && c.Aliases != nil {
		if prefix, ok := c.Aliases[first]; ok {
			if hasRest {
				return prefix + "\\" + rest
			}
			return prefix
		}
	}
	ns := ""
	if c != nil {
		ns = c.Namespace
	}
	return ns + "\\" + name
}

// IsKnown reports whether the resolved name can be trusted right now.
func (c *Context) IsKnown(fqn string) bool {
	if c == nil || c.Known == nil {
		return true
	}
	return c.Known(fqn)
}

package fieldarray

// ArrayPath locates the array a Controller manages. It is resolved at the start
// of every operation, so a dynamic path follows its source.
type ArrayPath interface {
	Resolve() string
}

// Path is a static ArrayPath.
type Path string

func (p Path) Resolve() string {
	return string(p)
}

// PathFunc is an ArrayPath computed on each resolution.
type PathFunc func() string

func (f PathFunc) Resolve() string {
	if f == nil {
		return ""
	}
	return f()
}

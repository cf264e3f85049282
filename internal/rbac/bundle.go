package rbac

import (
	"errors"
	"fmt"
	"iter"
)

// Bundle errors.
var (
	// ErrBundleName indicates that a bundle was constructed without a name.
	ErrBundleName = errors.New("bundle name must not be empty")

	// ErrUnknownNamespace indicates a grant for a namespace outside the enumeration.
	ErrUnknownNamespace = errors.New("unknown namespace")

	// ErrUnknownLevel indicates a grant with a level outside the enumeration.
	ErrUnknownLevel = errors.New("unknown permission level")
)

// Bundle is a named, immutable set of namespace grants. Grants are held in a
// fixed-size array indexed by the namespace ordinal; the zero Level means no
// grant. Bundles are safe for concurrent read by any number of sessions.
type Bundle struct {
	name   string
	grants [namespaceCount]Level
}

// NewBundle constructs a bundle from a grant map. The name must be non-empty
// and every key and level must be a member of its enumeration; violations are
// construction-time errors, never runtime conditions.
func NewBundle(name string, grants map[Namespace]Level) (*Bundle, error) {
	if name == "" {
		return nil, ErrBundleName
	}

	b := &Bundle{name: name}
	for ns, level := range grants {
		if !ns.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownNamespace, int(ns))
		}
		if !level.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(level))
		}
		b.grants[ns] = level
	}
	return b, nil
}

// mustBundle constructs a bundle from known-good grants.
func mustBundle(name string, grants map[Namespace]Level) *Bundle {
	b, err := NewBundle(name, grants)
	if err != nil {
		panic(err)
	}
	return b
}

// Name returns the bundle name, used for audit and display.
func (b *Bundle) Name() string {
	return b.name
}

// CanRead reports whether the bundle grants at least Read on the namespace.
func (b *Bundle) CanRead(ns Namespace) bool {
	if !ns.Valid() {
		return false
	}
	return b.grants[ns] == LevelRead || b.grants[ns] == LevelWrite
}

// CanWrite reports whether the bundle grants exactly Write on the namespace.
func (b *Bundle) CanWrite(ns Namespace) bool {
	if !ns.Valid() {
		return false
	}
	return b.grants[ns] == LevelWrite
}

// Len returns the number of namespaces the bundle grants access to.
func (b *Bundle) Len() int {
	n := 0
	for _, level := range b.grants {
		if level != 0 {
			n++
		}
	}
	return n
}

// Namespaces returns a restartable sequence over the granted namespaces,
// for enumeration and audit. Order carries no meaning.
func (b *Bundle) Namespaces() iter.Seq[Namespace] {
	return func(yield func(Namespace) bool) {
		for ns := Namespace(0); ns < namespaceCount; ns++ {
			if b.grants[ns] == 0 {
				continue
			}
			if !yield(ns) {
				return
			}
		}
	}
}

// String implements fmt.Stringer.
func (b *Bundle) String() string {
	return fmt.Sprintf("<Bundle %s>", b.name)
}

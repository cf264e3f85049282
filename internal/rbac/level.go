package rbac

// Level is a totally ordered permission level. Write implies Read.
// Levels are ordinals, not bit flags; they cannot be combined.
type Level int

// Permission levels. The zero value means "no grant".
const (
	LevelRead Level = iota + 1
	LevelWrite
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelRead:
		return "read"
	case LevelWrite:
		return "write"
	default:
		return "none"
	}
}

// Valid reports whether l is a member of the level enumeration.
func (l Level) Valid() bool {
	return l == LevelRead || l == LevelWrite
}

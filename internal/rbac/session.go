package rbac

// Actor is an authenticated identity a session is created for. Concrete
// variants (local users, verified peers) live in the auth package.
type Actor interface {
	// DisplayName returns a human-readable identifier for audit logging.
	DisplayName() string

	// Authenticated reports whether the actor has been authenticated.
	Authenticated() bool
}

// Session aggregates the permission bundles of one authenticated actor for
// the duration of a single request. A query is satisfied if any bundle grants
// the required level; bundles union privileges, they never override each
// other. Sessions are owned by the request context that created them and
// must not be shared across requests.
type Session struct {
	actor   Actor
	bundles []*Bundle
}

// NewSession creates a session for the given actor and bundles.
func NewSession(actor Actor, bundles ...*Bundle) *Session {
	s := &Session{actor: actor}
	s.bundles = append(s.bundles, bundles...)
	return s
}

// Actor returns the actor the session was created for.
func (s *Session) Actor() Actor {
	return s.actor
}

// Bundles returns a copy of the session's bundle list.
func (s *Session) Bundles() []*Bundle {
	out := make([]*Bundle, len(s.bundles))
	copy(out, s.bundles)
	return out
}

// Check reports whether any bundle grants the required level on the
// namespace. The requested level is matched explicitly so Read and Write
// requests are never conflated; an unknown level is always denied.
func (s *Session) Check(ns Namespace, level Level) bool {
	switch level {
	case LevelRead:
		for _, b := range s.bundles {
			if b.CanRead(ns) {
				return true
			}
		}
	case LevelWrite:
		for _, b := range s.bundles {
			if b.CanWrite(ns) {
				return true
			}
		}
	}
	return false
}

// CanRead reports whether the session grants Read on the namespace.
func (s *Session) CanRead(ns Namespace) bool {
	return s.Check(ns, LevelRead)
}

// CanWrite reports whether the session grants Write on the namespace.
func (s *Session) CanWrite(ns Namespace) bool {
	return s.Check(ns, LevelWrite)
}

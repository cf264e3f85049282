package rbac

// Namespace identifies an isolation domain that permissions apply to.
// The set is closed: new domains are added here, never defined at runtime.
type Namespace int

// Known namespaces.
const (
	NamespaceSystem Namespace = iota
	NamespaceUser
	NamespacePeer
	NamespaceNetwork

	namespaceCount
)

// String returns the namespace name.
func (n Namespace) String() string {
	switch n {
	case NamespaceSystem:
		return "system"
	case NamespaceUser:
		return "user"
	case NamespacePeer:
		return "peer"
	case NamespaceNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Valid reports whether n is a member of the namespace enumeration.
func (n Namespace) Valid() bool {
	return n >= 0 && n < namespaceCount
}

package rbac

// Predefined role bundles. Constructed once at process start and shared
// read-only across all sessions.
var (
	administratorBundle = mustBundle("System Administrator", map[Namespace]Level{
		NamespaceSystem: LevelWrite,
		NamespaceUser:   LevelRead,
	})

	tenantOwnerBundle = mustBundle("Tenant Owner", map[Namespace]Level{
		NamespaceSystem: LevelRead,
		NamespaceUser:   LevelWrite,
	})

	peerBundle = mustBundle("Peer Node", map[Namespace]Level{
		NamespacePeer: LevelWrite,
	})
)

// AdministratorBundle returns the bundle granted to system administrators.
func AdministratorBundle() *Bundle {
	return administratorBundle
}

// TenantOwnerBundle returns the bundle granted to tenant owners.
func TenantOwnerBundle() *Bundle {
	return tenantOwnerBundle
}

// PeerBundle returns the bundle granted to verified peer nodes.
func PeerBundle() *Bundle {
	return peerBundle
}

package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBundle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		bundleName string
		grants     map[Namespace]Level
		wantErr    error
	}{
		{
			name:       "valid grants",
			bundleName: "ops",
			grants: map[Namespace]Level{
				NamespaceSystem:  LevelWrite,
				NamespaceNetwork: LevelRead,
			},
		},
		{
			name:       "empty grants",
			bundleName: "empty",
			grants:     map[Namespace]Level{},
		},
		{
			name:       "missing name",
			bundleName: "",
			grants:     map[Namespace]Level{NamespaceSystem: LevelRead},
			wantErr:    ErrBundleName,
		},
		{
			name:       "namespace outside enumeration",
			bundleName: "bad-ns",
			grants:     map[Namespace]Level{Namespace(99): LevelRead},
			wantErr:    ErrUnknownNamespace,
		},
		{
			name:       "level outside enumeration",
			bundleName: "bad-level",
			grants:     map[Namespace]Level{NamespaceSystem: Level(7)},
			wantErr:    ErrUnknownLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBundle(tt.bundleName, tt.grants)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, b)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.bundleName, b.Name())
				assert.Equal(t, len(tt.grants), b.Len())
			}
		})
	}
}

func TestBundle_AbsentNamespaceIsDenial(t *testing.T) {
	t.Parallel()

	b, err := NewBundle("partial", map[Namespace]Level{NamespaceSystem: LevelWrite})
	require.NoError(t, err)

	for _, ns := range []Namespace{NamespaceUser, NamespacePeer, NamespaceNetwork} {
		assert.False(t, b.CanRead(ns), "absent namespace %s must not read", ns)
		assert.False(t, b.CanWrite(ns), "absent namespace %s must not write", ns)
	}
}

func TestBundle_WriteImpliesRead(t *testing.T) {
	t.Parallel()

	b, err := NewBundle("writer", map[Namespace]Level{NamespaceNetwork: LevelWrite})
	require.NoError(t, err)

	assert.True(t, b.CanRead(NamespaceNetwork))
	assert.True(t, b.CanWrite(NamespaceNetwork))
}

func TestBundle_ReadDoesNotImplyWrite(t *testing.T) {
	t.Parallel()

	b, err := NewBundle("reader", map[Namespace]Level{NamespaceSystem: LevelRead})
	require.NoError(t, err)

	assert.True(t, b.CanRead(NamespaceSystem))
	assert.False(t, b.CanWrite(NamespaceSystem))
}

func TestBundle_Namespaces(t *testing.T) {
	t.Parallel()

	b, err := NewBundle("ops", map[Namespace]Level{
		NamespaceSystem:  LevelWrite,
		NamespaceNetwork: LevelRead,
	})
	require.NoError(t, err)

	collect := func() []Namespace {
		var out []Namespace
		for ns := range b.Namespaces() {
			out = append(out, ns)
		}
		return out
	}

	first := collect()
	assert.ElementsMatch(t, []Namespace{NamespaceSystem, NamespaceNetwork}, first)

	// The sequence is restartable.
	second := collect()
	assert.ElementsMatch(t, first, second)
}

func TestBundle_NamespacesEarlyStop(t *testing.T) {
	t.Parallel()

	b, err := NewBundle("ops", map[Namespace]Level{
		NamespaceSystem:  LevelWrite,
		NamespaceNetwork: LevelRead,
	})
	require.NoError(t, err)

	seen := 0
	for range b.Namespaces() {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestBundle_String(t *testing.T) {
	t.Parallel()

	b, err := NewBundle("Peer Node", map[Namespace]Level{NamespacePeer: LevelWrite})
	require.NoError(t, err)
	assert.Equal(t, "<Bundle Peer Node>", b.String())
}

func TestRoleBundles(t *testing.T) {
	t.Parallel()

	admin := AdministratorBundle()
	assert.True(t, admin.CanWrite(NamespaceSystem))
	assert.True(t, admin.CanRead(NamespaceUser))
	assert.False(t, admin.CanWrite(NamespaceUser))
	assert.False(t, admin.CanRead(NamespacePeer))

	tenant := TenantOwnerBundle()
	assert.True(t, tenant.CanRead(NamespaceSystem))
	assert.False(t, tenant.CanWrite(NamespaceSystem))
	assert.True(t, tenant.CanWrite(NamespaceUser))

	peer := PeerBundle()
	assert.True(t, peer.CanWrite(NamespacePeer))
	assert.False(t, peer.CanRead(NamespaceSystem))
}

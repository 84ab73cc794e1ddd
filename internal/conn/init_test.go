package conn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_OneShotSemantics(t *testing.T) {
	t.Cleanup(resetInitialization)

	t.Run("settings unavailable before initialize", func(t *testing.T) {
		resetInitialization()
		_, err := ActiveSettings()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not initialized")
	})

	t.Run("initialize then read back", func(t *testing.T) {
		resetInitialization()
		s := Settings{Security: Security{Mode: SecurityTLS, RootCAPath: "/etc/certs/ca.pem"}}
		require.NoError(t, Initialize(s))

		got, err := ActiveSettings()
		require.NoError(t, err)
		assert.Equal(t, s, got)
	})

	t.Run("identical re-initialize is a no-op", func(t *testing.T) {
		resetInitialization()
		s := Settings{NativeLibDir: "/opt/client/lib"}
		require.NoError(t, Initialize(s))
		assert.NoError(t, Initialize(s))
	})

	t.Run("conflicting re-initialize fails", func(t *testing.T) {
		resetInitialization()
		require.NoError(t, Initialize(Settings{NativeLibDir: "/opt/client/lib"}))

		err := Initialize(Settings{NativeLibDir: "/usr/local/lib"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "conflicting")
	})

	t.Run("invalid security rejected", func(t *testing.T) {
		resetInitialization()
		err := Initialize(Settings{Security: Security{Mode: "carrier-pigeon"}})
		assert.Error(t, err)
	})
}

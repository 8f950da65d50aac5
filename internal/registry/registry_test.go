package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modforge/internal/model"
)

func TestCanonicalID(t *testing.T) {
	t.Run("pure over equivalent spellings", func(t *testing.T) {
		assert.Equal(t, CanonicalID("Svc/CmdDispatcher"), CanonicalID("./Svc/CmdDispatcher/"))
	})

	t.Run("separators become underscores", func(t *testing.T) {
		assert.Equal(t, model.ModuleID("Fw_Cmd"), CanonicalID("Fw/Cmd"))
	})

	t.Run("workspace root", func(t *testing.T) {
		assert.Equal(t, model.ModuleID("root"), CanonicalID("."))
	})
}

func TestDeclare(t *testing.T) {
	t.Run("same location declared twice yields one identity", func(t *testing.T) {
		r := New()

		first, created, err := r.Declare("Fw/Cmd")
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := r.Declare("Fw/Cmd")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first, second)
		assert.Len(t, r.Locations(), 1)
	})

	t.Run("equivalent spellings dedup", func(t *testing.T) {
		r := New()
		first, _, err := r.Declare("Fw/Cmd")
		require.NoError(t, err)
		second, created, err := r.Declare("./Fw/Cmd")
		require.NoError(t, err)

		assert.False(t, created)
		assert.Equal(t, first, second)
	})

	t.Run("declaration order is preserved", func(t *testing.T) {
		r := New()
		for _, loc := range []string{"Svc/B", "Svc/A", "Svc/C"} {
			_, _, err := r.Declare(loc)
			require.NoError(t, err)
		}

		assert.Equal(t, []string{"Svc/B", "Svc/A", "Svc/C"}, r.Locations())
	})

	t.Run("distinct locations flattening to one identity are rejected", func(t *testing.T) {
		r := New()
		_, _, err := r.Declare("a/b_c")
		require.NoError(t, err)

		_, _, err = r.Declare("a_b/c")
		require.Error(t, err)
		assert.ErrorContains(t, err, "alias the same module identity")

		// The registry is unchanged by the rejected declaration.
		assert.Equal(t, []string{"a/b_c"}, r.Locations())
	})
}

func TestLookup(t *testing.T) {
	r := New()
	_, ok := r.Lookup("Fw/Cmd")
	assert.False(t, ok)

	id, _, err := r.Declare("Fw/Cmd")
	require.NoError(t, err)
	got, ok := r.Lookup("Fw/Cmd")
	require.True(t, ok)
	assert.Equal(t, id, got)
}

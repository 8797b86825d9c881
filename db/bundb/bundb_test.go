package bundb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModules(t *testing.T) {
	modules := Modules()
	require.Len(t, modules, 2)
	assert.Equal(t, "user", modules[0].Name)
	assert.Equal(t, "round", modules[1].Name)

	// Names share one bun_migrations table, so they must not collide.
	seen := map[string]string{}
	for _, mod := range modules {
		sorted := mod.Migrations.Sorted()
		require.NotEmpty(t, sorted, mod.Name)
		for _, m := range sorted {
			if other, ok := seen[m.Name]; ok {
				t.Fatalf("migration %s registered by %s and %s", m.Name, other, mod.Name)
			}
			seen[m.Name] = mod.Name
		}
	}
}

func TestModules_UserTablesMigrateFirst(t *testing.T) {
	modules := Modules()
	userLast := modules[0].Migrations.Sorted()
	roundFirst := modules[1].Migrations.Sorted()

	assert.Less(t, userLast[len(userLast)-1].Name, roundFirst[0].Name)
}

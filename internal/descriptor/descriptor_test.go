package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pkgship/internal/config"
)

func TestFromConfigPreservesOrder(t *testing.T) {
	cfg := &config.Config{
		Packages: []config.PackageConfig{
			{Name: "full", Manifest: "a.py"},
			{Name: "core", Manifest: "b.py", DocOverride: "README_core.md"},
			{Name: "storage", Manifest: "c.py", ActivationPrefix: "storage/"},
		},
	}
	reg := FromConfig(cfg)
	require.Equal(t, 3, reg.Len())

	ds := reg.List()
	assert.Equal(t, "full", ds[0].Name)
	assert.Equal(t, "core", ds[1].Name)
	assert.Equal(t, "storage", ds[2].Name)
	assert.Equal(t, "README_core.md", ds[1].DocOverride)
}

func TestConditional(t *testing.T) {
	assert.False(t, Descriptor{Name: "full"}.Conditional())
	assert.True(t, Descriptor{Name: "storage", ActivationPrefix: "storage/"}.Conditional())
}

func TestListReturnsCopy(t *testing.T) {
	cfg := &config.Config{Packages: []config.PackageConfig{{Name: "full", Manifest: "a.py"}}}
	reg := FromConfig(cfg)

	ds := reg.List()
	ds[0].Name = "mutated"
	assert.Equal(t, "full", reg.List()[0].Name)
}

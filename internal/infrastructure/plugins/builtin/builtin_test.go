package builtin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/infrastructure/config"
	"publishkit.dev/cli/internal/infrastructure/registry"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "publish.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestManifestSelector_AppendsInstancesFromManifest(t *testing.T) {
	path := writeManifest(t, `
instances:
  - name: heroModel
    family: model
    source: assets/hero.ma
  - name: heroRig
    family: rig
    source: assets/hero_rig.ma
    config:
      pattern: "^hero"
`)

	ctx := domain.NewContext()
	err := ManifestSelector(path).New().Process(ctx, nil)

	require.NoError(t, err)
	require.Equal(t, 2, ctx.Len())

	model := ctx.Instances()[0]
	assert.Equal(t, "heroModel", model.Path())
	family, ok := model.Family()
	require.True(t, ok)
	assert.Equal(t, "model", family)
	assert.Equal(t, "assets/hero.ma", model.Config()["source"])

	rig := ctx.Instances()[1]
	assert.Equal(t, "^hero", rig.Config()["pattern"])
}

func TestManifestSelector_EntryWithoutFamily_StaysUnroutable(t *testing.T) {
	path := writeManifest(t, `
instances:
  - name: orphan
    source: assets/orphan.ma
`)

	ctx := domain.NewContext()
	require.NoError(t, ManifestSelector(path).New().Process(ctx, nil))

	require.Equal(t, 1, ctx.Len())
	_, ok := ctx.Instances()[0].Family()
	assert.False(t, ok)
}

func TestManifestSelector_Failures(t *testing.T) {
	tests := []struct {
		name     string
		manifest func(t *testing.T) string
	}{
		{
			name: "MissingFile",
			manifest: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.yaml")
			},
		},
		{
			name: "MalformedYAML",
			manifest: func(t *testing.T) string {
				return writeManifest(t, "instances: [unclosed")
			},
		},
		{
			name: "EntryWithoutName",
			manifest: func(t *testing.T) string {
				return writeManifest(t, "instances:\n  - family: model\n")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := domain.NewContext()
			err := ManifestSelector(tt.manifest(t)).New().Process(ctx, nil)
			assert.Error(t, err)
		})
	}
}

func TestSourceValidator_ChecksSourceOnDisk(t *testing.T) {
	source := filepath.Join(t.TempDir(), "hero.ma")
	require.NoError(t, os.WriteFile(source, []byte("// maya ascii"), 0644))

	valid := domain.NewInstance("hero", map[string]any{"family": "model", "source": source})
	assert.NoError(t, SourceValidator().New().Process(nil, valid))

	missing := domain.NewInstance("ghost", map[string]any{"family": "model", "source": source + ".gone"})
	assert.Error(t, SourceValidator().New().Process(nil, missing))

	undeclared := domain.NewInstance("blank", map[string]any{"family": "model"})
	assert.Error(t, SourceValidator().New().Process(nil, undeclared))
}

func TestNameValidator_EnforcesPattern(t *testing.T) {
	tests := []struct {
		name        string
		config      map[string]any
		expectError bool
	}{
		{
			name:   "DefaultPattern_ValidName",
			config: map[string]any{"name": "heroModel"},
		},
		{
			name:        "DefaultPattern_LeadingDigit",
			config:      map[string]any{"name": "1hero"},
			expectError: true,
		},
		{
			name:   "CustomPattern_Match",
			config: map[string]any{"name": "hero_01", "pattern": `^hero_\d+$`},
		},
		{
			name:        "CustomPattern_NoMatch",
			config:      map[string]any{"name": "villain_01", "pattern": `^hero_\d+$`},
			expectError: true,
		},
		{
			name:        "InvalidPattern_Fails",
			config:      map[string]any{"name": "hero", "pattern": "["},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := domain.NewInstance("inst", tt.config)
			err := NameValidator().New().Process(nil, inst)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCopyExtractor_CopiesSourceAndRecordsDestination(t *testing.T) {
	workDir := t.TempDir()
	source := filepath.Join(workDir, "hero.ma")
	require.NoError(t, os.WriteFile(source, []byte("// maya ascii"), 0644))
	output := filepath.Join(workDir, "published")

	inst := domain.NewInstance("hero", map[string]any{
		"family": "model",
		"source": source,
	})

	require.NoError(t, CopyExtractor(output).New().Process(nil, inst))

	dest, ok := inst.Config()["extracted_to"].(string)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(output, "model", "hero.ma"), dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "// maya ascii", string(data))
}

func TestCopyExtractor_MissingSource_Fails(t *testing.T) {
	inst := domain.NewInstance("hero", map[string]any{"family": "model"})
	assert.Error(t, CopyExtractor(t.TempDir()).New().Process(nil, inst))
}

func TestRegister_WiresBuiltinsInStableOrder(t *testing.T) {
	reg := registry.New()
	Register(reg, config.Default())

	selectors := reg.Discover(domain.StageSelectors)
	require.Len(t, selectors, 1)
	assert.Equal(t, "manifest-selector", selectors[0].Name)

	validators := reg.Discover(domain.StageValidators)
	require.Len(t, validators, 2)
	assert.Equal(t, "source-validator", validators[0].Name)
	assert.Equal(t, "name-validator", validators[1].Name)

	extractors := reg.Discover(domain.StageExtractors)
	require.Len(t, extractors, 1)
	assert.Equal(t, "copy-extractor", extractors[0].Name)
}

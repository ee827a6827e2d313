package builtin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"publishkit.dev/cli/internal/core/domain"
	"publishkit.dev/cli/internal/core/ports"
)

// copyExtractor copies an instance's source file into the output directory,
// grouped by family, and records where it landed.
type copyExtractor struct {
	output string
}

// Process implements ports.Behavior.
func (e *copyExtractor) Process(_ *domain.Context, inst *domain.Instance) error {
	source, ok := inst.Config()["source"].(string)
	if !ok || source == "" {
		return fmt.Errorf("copy-extractor: %s declares no source", inst)
	}

	family, _ := inst.Family()
	dest := filepath.Join(e.output, family, filepath.Base(source))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("copy-extractor: creating %s: %w", filepath.Dir(dest), err)
	}

	if err := copyFile(source, dest); err != nil {
		return fmt.Errorf("copy-extractor: %s: %w", inst, err)
	}

	inst.Config()["extracted_to"] = dest
	return nil
}

func copyFile(source, dest string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// CopyExtractor describes the extractor copying instance sources into the
// output directory.
func CopyExtractor(output string) ports.PluginDescriptor {
	return ports.PluginDescriptor{
		Name:     "copy-extractor",
		Hosts:    domain.KnownHosts(),
		Families: Families(),
		New: func() ports.Behavior {
			return &copyExtractor{output: output}
		},
	}
}

// Package list implements the list command: show every program the
// registry knows about and the entries it owns.
package list

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/undot/pkg/filesystem"
	"github.com/arthur-debert/undot/pkg/logging"
	"github.com/arthur-debert/undot/pkg/paths"
	"github.com/arthur-debert/undot/pkg/registry"
	"github.com/arthur-debert/undot/pkg/types"
)

// Options holds options for the list command
type Options struct {
	// StorageDir overrides the storage root
	StorageDir string

	// FileSystem allows injecting a filesystem for testing
	FileSystem types.FS
}

// Programs returns every registry record in file order
func Programs(opts Options) ([]types.Program, error) {
	logger := logging.GetLogger("commands.list")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	p, err := paths.New(opts.StorageDir)
	if err != nil {
		return nil, err
	}

	records, err := registry.New(fs, p.RegistryPath()).List()
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("programs", len(records)).Msg("Listed registry")
	return records, nil
}

// RenderTable renders registry records as a table
func RenderTable(records []types.Program) (string, error) {
	data := pterm.TableData{{"PROGRAM", "ENTRIES", "KEYS"}}
	for _, rec := range records {
		data = append(data, []string{
			rec.Identity,
			pterm.Sprintf("%d", len(rec.Keys)),
			pterm.FgGray.Sprint(strings.Join(rec.Keys, ", ")),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

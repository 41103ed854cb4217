package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kasflow-dev/kasflow/internal/config"
	"github.com/kasflow-dev/kasflow/internal/dataset"
	"github.com/kasflow-dev/kasflow/internal/labels"
	"github.com/kasflow-dev/kasflow/internal/prices"
)

// project bundles what every analysis command needs: the resolved
// project dir, its config, and the dataset service over it.
type project struct {
	dir  string
	cfg  *config.Config
	data *dataset.Service
}

// addDirFlag registers the shared --dir flag.
func addDirFlag(cmd *cobra.Command, dir *string) {
	cmd.Flags().StringVar(dir, "dir", ".", "project directory")
}

// openProject resolves dir and loads kasflow.yaml from it.
func openProject(dir string) (*project, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading %s (run `kasflow init` first?): %w", config.FileName, err)
	}

	return &project{
		dir:  absDir,
		cfg:  cfg,
		data: dataset.NewService(absDir),
	}, nil
}

// wallet returns the tracked address, preferring the argument over the
// configured one.
func (p *project) wallet(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if p.cfg.Wallet.Address == "" {
		return "", fmt.Errorf("no wallet address: pass one as an argument or set wallet.address in %s", config.FileName)
	}
	return p.cfg.Wallet.Address, nil
}

// loadLabels loads the optional label map.
func (p *project) loadLabels() (*labels.Service, error) {
	return labels.Load(filepath.Join(p.dir, p.cfg.Inputs.LabelsCSV))
}

// loadPrices loads the required price series.
func (p *project) loadPrices() (*prices.Series, error) {
	return prices.Load(filepath.Join(p.dir, p.cfg.Inputs.PriceCSV))
}

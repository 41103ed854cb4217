package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kasflow-dev/kasflow/internal/model"
)

// dataDir is the subdirectory of the project dir holding fetched and
// derived CSVs.
const dataDir = "data"

// Service reads and writes the project's CSV tables. The files on disk
// are the only interface between commands; each writer overwrites its
// own file wholesale.
type Service struct {
	projectDir string
}

// NewService creates a dataset Service rooted at a project directory.
func NewService(projectDir string) *Service {
	return &Service{projectDir: projectDir}
}

// Dir returns the data directory path.
func (s *Service) Dir() string {
	return filepath.Join(s.projectDir, dataDir)
}

// InvolvingPath returns the path of the involving-transfers file for an
// address.
func (s *Service) InvolvingPath(address string) string {
	return filepath.Join(s.Dir(), SanitizeAddress(address)+"_involving.csv")
}

// ParticipantsPath returns the path of the all-participants file for an
// address.
func (s *Service) ParticipantsPath(address string) string {
	return filepath.Join(s.Dir(), SanitizeAddress(address)+"_all_participants.csv")
}

// DailyFlowsPath returns the path of the daily flows file for an address.
func (s *Service) DailyFlowsPath(address string) string {
	return filepath.Join(s.Dir(), SanitizeAddress(address)+"_daily_flows.csv")
}

// SummaryPath returns the path of a by-source or by-destination summary
// file; kind is "inflows_by_source" or "outflows_by_destination".
func (s *Service) SummaryPath(address, kind string) string {
	return filepath.Join(s.Dir(), SanitizeAddress(address)+"_"+kind+".csv")
}

// WriteTransfersFile writes transfers to path, creating the data dir as
// needed.
func (s *Service) WriteTransfersFile(path string, transfers []model.Transfer) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteTransfers(f, transfers); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadTransfersFile reads transfers from path. A missing file is fatal
// for the caller; the error names the file.
func (s *Service) ReadTransfersFile(path string) ([]model.Transfer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s (run `kasflow fetch` first?): %w", path, err)
	}
	defer f.Close()

	transfers, err := ReadTransfers(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return transfers, nil
}

// WriteDailyFlowsFile writes the daily flow table for an address.
func (s *Service) WriteDailyFlowsFile(address string, flows []model.DailyFlow) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	path := s.DailyFlowsPath(address)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteDailyFlows(f, flows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadDailyFlowsFile reads the daily flow table for an address.
func (s *Service) ReadDailyFlowsFile(address string) ([]model.DailyFlow, error) {
	path := s.DailyFlowsPath(address)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s (run `kasflow inflows` first?): %w", path, err)
	}
	defer f.Close()

	flows, err := ReadDailyFlows(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return flows, nil
}

// WriteSummariesFile writes a by-source or by-destination summary table.
func (s *Service) WriteSummariesFile(address, kind string, summaries []model.SourceSummary) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	path := s.SummaryPath(address, kind)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteSummaries(f, summaries); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (s *Service) ensureDir() error {
	if err := os.MkdirAll(s.Dir(), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	return nil
}

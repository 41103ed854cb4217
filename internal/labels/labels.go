// Package labels maps addresses to human-readable names (exchanges,
// pools) loaded from a hand-maintained CSV. Labels only rename and group
// addresses for presentation; they never change computed amounts.
package labels

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Unlabeled is the bucket for addresses with no matching label.
const Unlabeled = "Unlabeled"

// Column spellings accepted in the label CSV header. The file is
// hand-edited, so be forgiving.
var (
	addressColumns = []string{"address", "addr", "sender", "recipient", "kas_address"}
	labelColumns   = []string{"label", "name", "tag"}
)

// Service provides label lookup and group-mode bucketing.
type Service struct {
	byAddress map[string]string
	keys      []string // insertion order, for deterministic prefix matches
}

// NewService creates a Service from an address→label map. Iteration
// order for prefix matching follows the keys slice.
func NewService(pairs [][2]string) *Service {
	s := &Service{byAddress: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		addr, label := p[0], p[1]
		if _, seen := s.byAddress[addr]; !seen {
			s.keys = append(s.keys, addr)
		}
		s.byAddress[addr] = label // last wins
	}
	return s
}

// Load reads a label CSV from path. A missing file yields an empty
// Service, not an error: labels are optional.
func Load(path string) (*Service, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewService(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening labels %s: %w", path, err)
	}
	defer f.Close()

	svc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading labels %s: %w", path, err)
	}
	return svc, nil
}

// Read parses label CSV content. The header must contain one address
// column and one label column (see accepted spellings); rows with an
// empty address are skipped and duplicate addresses keep the last label.
func Read(r io.Reader) (*Service, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // hand-edited files vary

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading labels CSV: %w", err)
	}
	if len(records) == 0 {
		return NewService(nil), nil
	}

	addrCol, labelCol := -1, -1
	for i, col := range records[0] {
		name := strings.ToLower(strings.TrimSpace(col))
		if addrCol < 0 && contains(addressColumns, name) {
			addrCol = i
		}
		if labelCol < 0 && contains(labelColumns, name) {
			labelCol = i
		}
	}
	if addrCol < 0 || labelCol < 0 {
		return nil, fmt.Errorf("labels CSV header has no address/label columns: %v", records[0])
	}

	var pairs [][2]string
	for _, rec := range records[1:] {
		if addrCol >= len(rec) || labelCol >= len(rec) {
			continue
		}
		addr := strings.TrimSpace(rec[addrCol])
		label := strings.TrimSpace(rec[labelCol])
		if addr == "" {
			continue
		}
		pairs = append(pairs, [2]string{addr, label})
	}
	return NewService(pairs), nil
}

// Len returns the number of labeled addresses.
func (s *Service) Len() int { return len(s.byAddress) }

// Lookup returns the label for an exact address match.
func (s *Service) Lookup(addr string) (string, bool) {
	label, ok := s.byAddress[addr]
	return label, ok
}

// Bucket returns the group-mode bucket for an address: the label of an
// exact match, else of the first map entry that is a substring of the
// address, else Unlabeled.
func (s *Service) Bucket(addr string) string {
	if label, ok := s.byAddress[addr]; ok && label != "" {
		return label
	}
	for _, key := range s.keys {
		if key == "" {
			continue
		}
		if strings.Contains(addr, key) {
			if label := s.byAddress[key]; label != "" {
				return label
			}
		}
	}
	return Unlabeled
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

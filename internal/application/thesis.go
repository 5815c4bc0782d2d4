package application

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/asymlab/tamscan/internal/domain"
)

// ThesisEntry is one curated company thesis: the analyst-maintained overlay
// (category, TAM estimates, founder flag) that providers cannot supply.
type ThesisEntry struct {
	Ticker        string   `yaml:"ticker"`
	Name          string   `yaml:"name"`
	CIK           string   `yaml:"cik"`
	Category      string   `yaml:"category"`
	CurrentTAM    *float64 `yaml:"current_tam"`
	FutureTAM     *float64 `yaml:"future_tam"`
	TAMRationale  string   `yaml:"tam_rationale"`
	FounderActive bool     `yaml:"founder_active"`
}

// ThesisFile is the on-disk universe definition.
type ThesisFile struct {
	Companies []ThesisEntry `yaml:"companies"`
}

// LoadThesis reads the curated universe file and converts each entry into a
// CompanyRecord skeleton. Categories are validated here: a typo in the
// curated file must fail loudly, not fall through to a wrong score.
func LoadThesis(path string) ([]domain.CompanyRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read thesis file: %w", err)
	}

	var file ThesisFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal thesis file: %w", err)
	}

	seen := make(map[string]bool, len(file.Companies))
	records := make([]domain.CompanyRecord, 0, len(file.Companies))
	for i, entry := range file.Companies {
		ticker := strings.ToUpper(strings.TrimSpace(entry.Ticker))
		if ticker == "" {
			return nil, fmt.Errorf("thesis entry %d has no ticker", i)
		}
		if seen[ticker] {
			return nil, fmt.Errorf("duplicate thesis ticker %s", ticker)
		}
		seen[ticker] = true

		category, err := domain.ParseFutureCategory(entry.Category)
		if err != nil {
			return nil, fmt.Errorf("thesis entry %s: %w", ticker, err)
		}

		records = append(records, domain.CompanyRecord{
			Ticker:         ticker,
			Name:           entry.Name,
			CIK:            entry.CIK,
			FutureCategory: category,
			CurrentTAM:     entry.CurrentTAM,
			FutureTAM:      entry.FutureTAM,
			TAMRationale:   entry.TAMRationale,
			FounderActive:  entry.FounderActive,
		})
	}

	return records, nil
}

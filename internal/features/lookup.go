package features

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// TableLookup resolves provider experience from an operator-maintained
// table keyed by license number, with the stable hash as fallback for
// providers not in the table.
type TableLookup struct {
	byLicense map[string]float64
	fallback  ExperienceLookup
}

// experienceFile is the on-disk shape of the lookup table.
type experienceFile struct {
	Providers map[string]float64 `yaml:"providers"`
}

// LoadTable reads a YAML experience table:
//
//	providers:
//	  LIC-4455: 12
//	  LIC-0009: 3
func LoadTable(path string) (*TableLookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "features: read experience table %s", path)
	}

	var file experienceFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrapf(err, "features: parse experience table %s", path)
	}

	zap.L().Info("features: loaded provider experience table",
		zap.String("path", path),
		zap.Int("providers", len(file.Providers)),
	)

	return &TableLookup{
		byLicense: file.Providers,
		fallback:  stableLookup{},
	}, nil
}

// Experience returns the table entry for the license number when present,
// otherwise the stable hash fallback.
func (t *TableLookup) Experience(providerID, licenseNumber string) float64 {
	if years, ok := t.byLicense[licenseNumber]; ok {
		return years
	}
	return t.fallback.Experience(providerID, licenseNumber)
}

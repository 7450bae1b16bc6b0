package rates

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rate_audit/internal/domain/entity"
	"rate_audit/internal/domain/value"
)

// SGS series with the average monthly lending rate per category, published
// as an annual percentage.
const (
	SeriesPersonal        = 25401
	SeriesVehicle         = 25402
	SeriesHomeImprovement = 25403
	SeriesMortgage        = 25404
)

// Sources maps each category to where its reference rate comes from.
type Sources map[value.Category]entity.RateSource

// DefaultSources wires the four lending series and the two flat payroll
// rates.
func DefaultSources(payrollMonthly, privatePayrollMonthly float64) Sources {
	return Sources{
		value.CategoryPersonal:                entity.SeriesSource(SeriesPersonal),
		value.CategoryVehicle:                 entity.SeriesSource(SeriesVehicle),
		value.CategoryHomeImprovement:         entity.SeriesSource(SeriesHomeImprovement),
		value.CategoryMortgage:                entity.SeriesSource(SeriesMortgage),
		value.CategoryPayrollDeduction:        entity.FixedSource(payrollMonthly),
		value.CategoryPrivatePayrollDeduction: entity.FixedSource(privatePayrollMonthly),
	}
}

type sourcesFile struct {
	Categories map[string]sourceEntry `yaml:"categories"`
}

type sourceEntry struct {
	Series *int     `yaml:"series"`
	Fixed  *float64 `yaml:"fixed"`
}

// LoadSources reads overrides from a YAML file of the form
//
//	categories:
//	  personal: {series: 25401}
//	  payroll-deduction: {fixed: 0.0172}
//
// and merges them over base. Category keys accept the same aliases as
// value.ParseCategory.
func LoadSources(path string, base Sources) (Sources, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var file sourcesFile

	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	merged := make(Sources, len(base)+len(file.Categories))
	for k, v := range base {
		merged[k] = v
	}

	for name, entry := range file.Categories {
		category, err := value.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("value.ParseCategory: %w", err)
		}

		source, err := entry.toDomain()
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", category, err)
		}

		merged[category] = source
	}

	return merged, nil
}

func (e sourceEntry) toDomain() (entity.RateSource, error) {
	switch {
	case e.Series != nil && e.Fixed != nil:
		return entity.RateSource{}, fmt.Errorf("series and fixed are mutually exclusive")
	case e.Series != nil:
		if *e.Series <= 0 {
			return entity.RateSource{}, fmt.Errorf("invalid series id %d", *e.Series)
		}
		return entity.SeriesSource(*e.Series), nil
	case e.Fixed != nil:
		if *e.Fixed <= -1 {
			return entity.RateSource{}, fmt.Errorf("invalid fixed rate %f", *e.Fixed)
		}
		return entity.FixedSource(*e.Fixed), nil
	default:
		return entity.RateSource{}, fmt.Errorf("either series or fixed is required")
	}
}

package app

import (
	"math"
	"time"

	"pincheck/domain/core"
	"pincheck/domain/serviceability"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// CoverageReport summarizes how much of the pincode universe in the loaded
// sheet each service actually covers.
type CoverageReport struct {
	TotalRows        int               `json:"total_rows"`
	Only4WTyreCount  int               `json:"only_4w_tyre_count"`
	SourceURL        string            `json:"source_url"`
	LoadedAt         time.Time         `json:"loaded_at"`
	Services         []ServiceCoverage `json:"services"`
	SyntheticColumns []string          `json:"synthetic_columns,omitempty"`
}

// ServiceCoverage is the per-service slice of the report. The confidence
// interval is the 95% normal approximation on the coverage fraction.
type ServiceCoverage struct {
	Service        core.ServiceType `json:"service_type"`
	DisplayName    string           `json:"display_name"`
	Synthetic      bool             `json:"synthetic"`
	YesCount       int              `json:"yes_count"`
	Fraction       float64          `json:"fraction"`
	ConfidenceLow  float64          `json:"confidence_low"`
	ConfidenceHigh float64          `json:"confidence_high"`
	Fees           *FeeStats        `json:"fees,omitempty"`
}

// FeeStats summarizes the parseable fee values in a resolved fee column.
type FeeStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// CoverageService computes coverage reports over a loaded table. Pure over
// its input; it never fetches.
type CoverageService struct{}

// NewCoverageService creates a coverage service.
func NewCoverageService() *CoverageService {
	return &CoverageService{}
}

// Report walks the table once per service and aggregates counts, interval
// estimates, and fee statistics.
func (s *CoverageService) Report(lt *LoadedTable) *CoverageReport {
	report := &CoverageReport{
		TotalRows:        lt.Table.Len(),
		SourceURL:        lt.SourceURL,
		LoadedAt:         lt.LoadedAt,
		SyntheticColumns: lt.Resolution.Synthetic,
	}

	synthetic := make(map[string]bool, len(lt.Resolution.Synthetic))
	for _, col := range lt.Resolution.Synthetic {
		synthetic[col] = true
	}

	for _, svc := range core.AllServiceTypes() {
		column := lt.Resolution.Fields.Service(svc)
		cov := ServiceCoverage{
			Service:     svc,
			DisplayName: svc.DisplayName(),
			Synthetic:   synthetic[column],
		}

		for _, row := range lt.Table.Rows {
			if serviceability.IsYes(row.Get(column)) {
				cov.YesCount++
			}
		}
		cov.Fraction, cov.ConfidenceLow, cov.ConfidenceHigh =
			proportionInterval(cov.YesCount, report.TotalRows)

		if feeCol, ok := lt.Resolution.Fields.Fee(svc); ok {
			cov.Fees = feeStats(lt.Table.Rows, feeCol)
		}

		report.Services = append(report.Services, cov)
	}

	for _, row := range lt.Table.Rows {
		if only4WTyre(row, lt) {
			report.Only4WTyreCount++
		}
	}

	return report
}

// proportionInterval returns the sample fraction and its 95% normal
// approximation interval, clamped to [0, 1].
func proportionInterval(yes, total int) (fraction, low, high float64) {
	if total == 0 {
		return 0, 0, 0
	}
	fraction = float64(yes) / float64(total)

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)
	margin := z * stdErr(fraction, total)

	low = fraction - margin
	if low < 0 {
		low = 0
	}
	high = fraction + margin
	if high > 1 {
		high = 1
	}
	return fraction, low, high
}

func stdErr(p float64, n int) float64 {
	variance := p * (1 - p) / float64(n)
	if variance <= 0 {
		return 0
	}
	return math.Sqrt(variance)
}

func feeStats(rows []core.Row, column string) *FeeStats {
	var fees []float64
	for _, row := range rows {
		if fee, ok := serviceability.ParseFee(row.Get(column)); ok {
			fees = append(fees, fee)
		}
	}
	if len(fees) == 0 {
		return nil
	}

	min, _ := stats.Min(fees)
	max, _ := stats.Max(fees)
	mean, _ := stats.Mean(fees)
	median, _ := stats.Median(fees)

	return &FeeStats{
		Count:  len(fees),
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
	}
}

func only4WTyre(row core.Row, lt *LoadedTable) bool {
	if !serviceability.IsYes(row.Get(lt.Resolution.Fields.Service(core.Service4WTyre))) {
		return false
	}
	for _, svc := range core.AllServiceTypes() {
		if svc == core.Service4WTyre {
			continue
		}
		if serviceability.IsYes(row.Get(lt.Resolution.Fields.Service(svc))) {
			return false
		}
	}
	return true
}

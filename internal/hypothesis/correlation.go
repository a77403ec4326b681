package hypothesis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

// CorrelationFeatures lists the numeric columns of the correlation matrix,
// in display order.
var CorrelationFeatures = []string{
	"transaction_qty",
	"unit_price",
	"total_amount",
	"hour",
	"month",
	"day",
}

// CorrelationMatrix holds pairwise Pearson correlations between the numeric
// features of the joined view.
type CorrelationMatrix struct {
	Features []string
	Values   [][]float64
}

// At returns the correlation between two named features, or 0 when either
// name is unknown.
func (m CorrelationMatrix) At(a, b string) float64 {
	ia, ib := -1, -1
	for i, f := range m.Features {
		if f == a {
			ia = i
		}
		if f == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0
	}
	return m.Values[ia][ib]
}

// Correlations computes the Pearson correlation matrix over quantity, unit
// price, total amount, hour of day, month and day of month. Records with an
// unparseable time are excluded so every column has the same length.
func Correlations(records []domain.SaleRecord) CorrelationMatrix {
	columns := make([][]float64, len(CorrelationFeatures))
	for _, r := range records {
		h := r.Hour()
		if h < 0 {
			continue
		}
		columns[0] = append(columns[0], float64(r.Qty))
		columns[1] = append(columns[1], r.UnitPrice)
		columns[2] = append(columns[2], r.TotalAmount)
		columns[3] = append(columns[3], float64(h))
		columns[4] = append(columns[4], float64(r.Date.Month()))
		columns[5] = append(columns[5], float64(r.Date.Day()))
	}

	n := len(CorrelationFeatures)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
		for j := range values[i] {
			if i == j {
				values[i][j] = 1
				continue
			}
			values[i][j] = stat.Correlation(columns[i], columns[j], nil)
		}
	}

	return CorrelationMatrix{Features: CorrelationFeatures, Values: values}
}

package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/GitAnuj13/coffe-sales-project/pkg/contracts/domain"
)

// FeatureNames lists the regression features in design-matrix order.
var FeatureNames = []string{"day_number", "day_of_week", "is_weekend", "week_number"}

// Model is the fitted linear regression of daily revenue on calendar
// features.
type Model struct {
	Intercept float64
	Coefs     []float64 // one per FeatureNames entry
	first     time.Time // date backing day_number zero
}

// Coefficient pairs a feature with its fitted weight.
type Coefficient struct {
	Name  string
	Value float64
}

// Split is the chronological partition of the daily series: the trailing
// fifth of the rows becomes the test segment so no future date leaks into
// training.
type Split struct {
	Train []domain.DailyMetrics
	Test  []domain.DailyMetrics
}

// ChronologicalSplit partitions the series, keeping order. The test segment
// holds ceil(frac·N) trailing rows.
func ChronologicalSplit(daily []domain.DailyMetrics, frac float64) Split {
	n := len(daily)
	testN := int(math.Ceil(float64(n) * frac))
	if testN > n {
		testN = n
	}
	return Split{Train: daily[:n-testN], Test: daily[n-testN:]}
}

// features builds the row of the design matrix for one date. day_of_week is
// the Monday-zero ordinal, matching the convention the original analysis
// used; is_weekend flags Saturday and Sunday; week_number is the ISO week.
func features(date, first time.Time) []float64 {
	dow := mondayOrdinal(date.Weekday())
	weekend := 0.0
	if dow >= 5 {
		weekend = 1.0
	}
	_, week := date.ISOWeek()
	return []float64{
		dayNumber(date, first),
		float64(dow),
		weekend,
		float64(week),
	}
}

func mondayOrdinal(wd time.Weekday) int {
	// time.Weekday counts Sunday as 0; shift so Monday is 0 and Sunday 6.
	return (int(wd) + 6) % 7
}

// Fit solves the least-squares regression of revenue on the calendar
// features for the training segment. A singular design matrix propagates as
// an error.
func Fit(train []domain.DailyMetrics, first time.Time) (*Model, error) {
	if len(train) <= len(FeatureNames) {
		return nil, fmt.Errorf("regression needs more than %d training days, got %d",
			len(FeatureNames), len(train))
	}

	rows := len(train)
	cols := len(FeatureNames) + 1 // leading intercept column
	x := mat.NewDense(rows, cols, nil)
	y := mat.NewDense(rows, 1, nil)
	for i, d := range train {
		x.Set(i, 0, 1)
		for j, f := range features(d.Date, first) {
			x.Set(i, j+1, f)
		}
		y.Set(i, 0, d.Revenue)
	}

	var coef mat.Dense
	if err := coef.Solve(x, y); err != nil {
		return nil, fmt.Errorf("least-squares solve: %w", err)
	}

	m := &Model{Intercept: coef.At(0, 0), first: first}
	for j := range FeatureNames {
		m.Coefs = append(m.Coefs, coef.At(j+1, 0))
	}
	return m, nil
}

// Predict evaluates the model for one date.
func (m *Model) Predict(date time.Time) float64 {
	sum := m.Intercept
	for j, f := range features(date, m.first) {
		sum += m.Coefs[j] * f
	}
	return sum
}

// PredictAll evaluates the model over a segment of the daily series.
func (m *Model) PredictAll(segment []domain.DailyMetrics) []float64 {
	out := make([]float64, len(segment))
	for i, d := range segment {
		out[i] = m.Predict(d.Date)
	}
	return out
}

// Importance ranks the features by absolute coefficient. This is a crude
// proxy, not a rigorous importance measure; the features are not
// standardized.
func (m *Model) Importance() []Coefficient {
	out := make([]Coefficient, len(FeatureNames))
	for i, name := range FeatureNames {
		out[i] = Coefficient{Name: name, Value: m.Coefs[i]}
	}
	sort.Slice(out, func(i, j int) bool {
		return math.Abs(out[i].Value) > math.Abs(out[j].Value)
	})
	return out
}

// ForecastPoint is one predicted future day.
type ForecastPoint struct {
	Date    time.Time
	Revenue float64
}

// Forecast predicts the given number of calendar days past the end of the
// series.
func (m *Model) Forecast(lastDate time.Time, days int) []ForecastPoint {
	out := make([]ForecastPoint, 0, days)
	for i := 1; i <= days; i++ {
		date := lastDate.AddDate(0, 0, i)
		out = append(out, ForecastPoint{Date: date, Revenue: m.Predict(date)})
	}
	return out
}

// MAE is the mean absolute error between actual and predicted values.
func MAE(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return math.NaN()
	}
	var sum float64
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

// R2 is the coefficient of determination of predicted against actual.
func R2(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return math.NaN()
	}
	var mean float64
	for _, v := range actual {
		mean += v
	}
	mean /= float64(len(actual))

	var ssRes, ssTot float64
	for i := range actual {
		ssRes += (actual[i] - predicted[i]) * (actual[i] - predicted[i])
		ssTot += (actual[i] - mean) * (actual[i] - mean)
	}
	if ssTot == 0 {
		return math.NaN()
	}
	return 1 - ssRes/ssTot
}

// Evaluation bundles the fit quality of one segment.
type Evaluation struct {
	MAE float64
	R2  float64
}

// Evaluate scores the model on a segment of the daily series.
func (m *Model) Evaluate(segment []domain.DailyMetrics) Evaluation {
	actual := Revenues(segment)
	predicted := m.PredictAll(segment)
	return Evaluation{MAE: MAE(actual, predicted), R2: R2(actual, predicted)}
}

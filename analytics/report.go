package analytics

import (
	"math"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

// Slider describes the threshold control of the dashboard.
type Slider struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
	Unit string  `json:"unit"`
}

var DefaultSlider = Slider{Min: 0, Max: 12, Step: 0.5, Unit: "h"}

const binWidthHours = 0.5

type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type CheckinHistogram struct {
	CheckinType string `json:"checkin_type"`
	Bins        []Bin  `json:"bins"`
}

// Slice is one sector of a pie chart.
type Slice struct {
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
}

type Text struct {
	Headline string `json:"headline"`
	Friction string `json:"friction"`
	Revenue  string `json:"revenue"`
	Rentals  string `json:"rentals"`
}

// Report is everything the dashboard renders for one threshold.
type Report struct {
	Threshold          float64            `json:"threshold"`
	Slider             Slider             `json:"slider"`
	LateSharePercent   float64            `json:"late_share_percent"`
	MeanLateDelayHours float64            `json:"mean_late_delay_hours"`
	DelayHistogram     []Bin              `json:"delay_histogram"`
	LateByCheckin      []CheckinHistogram `json:"late_by_checkin"`
	FrictionCurve      []CurvePoint       `json:"friction_curve"`
	Friction           Estimate           `json:"friction"`
	LateLoss           Estimate           `json:"late_loss"`
	RentalLoss         Estimate           `json:"rental_loss"`
	Revenue            Revenue            `json:"revenue"`
	RevenuePie         []Slice            `json:"revenue_pie"`
	RentalPie          []Slice            `json:"rental_pie"`
	Text               Text               `json:"text"`
}

func (d *Dataset) Report(threshold float64) (Report, error) {
	share, err := d.LateShare()
	if err != nil {
		return Report{}, err
	}
	mean, err := d.MeanLateDelay()
	if err != nil {
		return Report{}, err
	}
	curve, err := d.FrictionCurve(DefaultSlider.Min, DefaultSlider.Max, DefaultSlider.Step)
	if err != nil {
		return Report{}, err
	}
	friction, err := d.Friction(threshold)
	if err != nil {
		return Report{}, err
	}
	revenue, lateLoss, err := d.RevenueAt(threshold)
	if err != nil {
		return Report{}, err
	}
	rentalLoss, err := d.InventoryLoss(threshold, ScopeTrimmed)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Threshold:          threshold,
		Slider:             DefaultSlider,
		LateSharePercent:   share * 100,
		MeanLateDelayHours: mean,
		DelayHistogram:     histogram(d.trimmedDelay, -MaxDelayHours, MaxDelayHours, binWidthHours),
		LateByCheckin:      d.lateByCheckin(),
		FrictionCurve:      curve,
		Friction:           friction,
		LateLoss:           lateLoss,
		RentalLoss:         rentalLoss,
		Revenue:            revenue,
		RevenuePie: []Slice{
			{Category: "Revenue Loss", Percentage: revenue.LossPercent()},
			{Category: "Remaining Revenue", Percentage: 100 - revenue.LossPercent()},
		},
		RentalPie: []Slice{
			{Category: "Rentals Loss", Percentage: rentalLoss.Percent()},
			{Category: "Remaining Rentals", Percentage: 100 - rentalLoss.Percent()},
		},
	}
	r.Text = describe(r)
	return r, nil
}

func (d *Dataset) lateByCheckin() []CheckinHistogram {
	groups := make(map[string][]float64)
	for i, kind := range d.lateCheckin {
		groups[kind] = append(groups[kind], d.lateDelay[i])
	}

	kinds := make([]string, 0, len(groups))
	for kind := range groups {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	out := make([]CheckinHistogram, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, CheckinHistogram{
			CheckinType: kind,
			Bins:        histogram(groups[kind], 0, MaxDelayHours, binWidthHours),
		})
	}
	return out
}

// histogram bins values in [lo, hi] into fixed-width bins. The last bin is
// closed on the right.
func histogram(values []float64, lo, hi, width float64) []Bin {
	n := int(math.Round((hi - lo) / width))
	dividers := make([]float64, n+1)
	for i := range dividers {
		dividers[i] = lo + float64(i)*width
	}
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	x := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && v >= lo && v <= hi {
			x = append(x, v)
		}
	}
	sort.Float64s(x)

	counts := stat.Histogram(nil, dividers, x, nil)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{
			Lower: lo + float64(i)*width,
			Upper: lo + float64(i+1)*width,
			Count: int(counts[i]),
		}
	}
	return bins
}

func describe(r Report) Text {
	p := message.NewPrinter(language.English)
	return Text{
		Headline: p.Sprintf("%.0f %% of drivers are late, by %.2fh on average.",
			r.LateSharePercent, r.MeanLateDelayHours),
		Friction: p.Sprintf("There is still %.2f%% of friction with a threshold of %gh.",
			r.Friction.Percent(), r.Threshold),
		Revenue: p.Sprintf("The total revenue with the feature activated with a threshold of %gh would be %.2f $ per day, an absolute loss of %.2f $ (%.2f %%).",
			r.Threshold, r.Revenue.AdjustedTotalDailyPrice, r.Revenue.Loss(), r.Revenue.LossPercent()),
		Rentals: p.Sprintf("The potential loss with a threshold of %gh impacts %.2f %% (%d rentals) of all the recorded rentals (late or not).",
			r.Threshold, r.RentalLoss.Percent(), r.RentalLoss.Count),
	}
}

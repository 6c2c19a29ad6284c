package model

// Trace is the output of a price simulation.
// Prices has one more entry than Demands and Supplies: Prices[t] is the
// price at which Demands[t] and Supplies[t] were evaluated, and the last
// price is the state after the final step.
//
// Diverged is set when a step would have produced a non-finite price or
// quantity. The trace stops before that step, so it may hold fewer steps
// than requested and every value recorded after p0 is finite.
type Trace struct {
	Prices   []float64 `json:"prices"`
	Demands  []float64 `json:"demands"`
	Supplies []float64 `json:"supplies"`
	Diverged bool      `json:"diverged,omitempty"`
}

// NewTrace allocates a trace for the given number of steps, seeded with p0.
func NewTrace(p0 float64, steps int) Trace {
	if steps < 0 {
		steps = 0
	}
	t := Trace{
		Prices:   make([]float64, 0, steps+1),
		Demands:  make([]float64, 0, steps),
		Supplies: make([]float64, 0, steps),
	}
	t.Prices = append(t.Prices, p0)
	return t
}

// Steps is the number of executed transitions.
func (t Trace) Steps() int { return len(t.Demands) }

// FinalPrice is the last recorded price.
func (t Trace) FinalPrice() float64 {
	if len(t.Prices) == 0 {
		return 0
	}
	return t.Prices[len(t.Prices)-1]
}

// TraceRow is one step of a trace, flattened for output.
type TraceRow struct {
	Step         int       `json:"step"`
	Price        float64   `json:"price"`
	Demand       float64   `json:"demand"`
	Supply       float64   `json:"supply"`
	ExcessDemand float64   `json:"excess_demand"`
	NextPrice    float64   `json:"next_price"`
	Condition    Condition `json:"condition"`
}

// Rows flattens the trace. tol is the band around zero excess demand that
// counts as cleared.
func (t Trace) Rows(tol float64) []TraceRow {
	rows := make([]TraceRow, 0, len(t.Demands))
	for i := range t.Demands {
		excess := t.Demands[i] - t.Supplies[i]
		rows = append(rows, TraceRow{
			Step:         i,
			Price:        t.Prices[i],
			Demand:       t.Demands[i],
			Supply:       t.Supplies[i],
			ExcessDemand: excess,
			NextPrice:    t.Prices[i+1],
			Condition:    ConditionFromExcess(excess, tol),
		})
	}
	return rows
}

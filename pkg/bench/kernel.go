// Package bench implements the synthetic order pricing workload used to
// compare sequential and parallel execution.
package bench

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

var (
	icmsRates = [5]float64{0.18, 0.20, 0.18, 0.17, 0.19}
	distances = [5]float64{50, 430, 586, 1130, 1446}
)

const (
	federalTaxRate     = 0.0925
	freightPerKg       = 2.5
	freightPerKm       = 0.15
	freightBase        = 8.5
	freeFreightMinimum = 100.0
	primeDiscount      = 0.05
	regularDiscount    = 0.02

	// iterations between cancellation checks
	checkEvery = 4096
)

// Totals accumulates the priced components of one or more orders
type Totals struct {
	Value    float64
	Tax      float64
	Freight  float64
	Discount float64
	Final    float64
}

// Add accumulates o into t
func (t *Totals) Add(o Totals) {
	t.Value += o.Value
	t.Tax += o.Tax
	t.Freight += o.Freight
	t.Discount += o.Discount
	t.Final += o.Final
}

// Order prices the synthetic order with index i
func Order(i int64) Totals {
	value := float64((i%4951)+50) / 10.0
	weight := float64((i%500)+1) / 10.0
	idx := i % 5
	prime := i%100 < 20

	taxes := value * (icmsRates[idx] + federalTaxRate)

	freight := weight*freightPerKg + distances[idx]*freightPerKm + freightBase
	if prime && value >= freeFreightMinimum {
		freight = 0
	}

	rate := regularDiscount
	if prime {
		rate = primeDiscount
	}
	discount := value * rate

	return Totals{
		Value:    value,
		Tax:      taxes,
		Freight:  freight,
		Discount: discount,
		Final:    value + taxes + freight - discount,
	}
}

// Result reports the totals and timing of one run
type Result struct {
	ExecutionTime float64       `json:"execution_time"` // seconds
	TotalValue    float64       `json:"total_value"`
	TotalTax      float64       `json:"total_tax"`
	TotalFreight  float64       `json:"total_freight"`
	TotalDiscount float64       `json:"total_discount"`
	TotalFinal    float64       `json:"total_final"`
	OpsPerSec     float64       `json:"ops_per_sec"`
	CoresUsed     int           `json:"cores_used,omitempty"`
	Iterations    int64         `json:"iterations"`
	Elapsed       time.Duration `json:"-"`
}

func newResult(n int64, totals Totals, elapsed time.Duration) Result {
	r := Result{
		ExecutionTime: elapsed.Seconds(),
		TotalValue:    totals.Value,
		TotalTax:      totals.Tax,
		TotalFreight:  totals.Freight,
		TotalDiscount: totals.Discount,
		TotalFinal:    totals.Final,
		Iterations:    n,
		Elapsed:       elapsed,
	}
	if n > 0 && elapsed > 0 {
		r.OpsPerSec = float64(n) / elapsed.Seconds()
	}
	return r
}

// Totals returns the aggregate totals of the run
func (r Result) Totals() Totals {
	return Totals{
		Value:    r.TotalValue,
		Tax:      r.TotalTax,
		Freight:  r.TotalFreight,
		Discount: r.TotalDiscount,
		Final:    r.TotalFinal,
	}
}

// RunSequential prices orders 1..n on the calling goroutine
func RunSequential(n int64) Result {
	start := time.Now()
	totals := sumRange(1, n)
	return newResult(n, totals, time.Since(start))
}

// RunParallel prices orders 1..n split into contiguous chunks, one per
// worker. Partial totals are combined in chunk order, so a given worker count
// always yields the same sums. workers <= 0 means runtime.GOMAXPROCS(0).
func RunParallel(ctx context.Context, n int64, workers int) (Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()

	chunks := int64(workers)
	if n < chunks {
		chunks = n
	}
	if chunks <= 0 {
		result := newResult(n, Totals{}, time.Since(start))
		result.CoresUsed = workers
		return result, ctx.Err()
	}

	partials := make([]Totals, chunks)
	size := n / chunks
	extra := n % chunks

	g, gctx := errgroup.WithContext(ctx)

	lo := int64(1)
	for c := int64(0); c < chunks; c++ {
		hi := lo + size - 1
		if c < extra {
			hi++
		}

		c, lo, hi := c, lo, hi
		g.Go(func() error {
			t, err := sumRangeCtx(gctx, lo, hi)
			if err != nil {
				return err
			}
			partials[c] = t
			return nil
		})

		lo = hi + 1
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var totals Totals
	for _, p := range partials {
		totals.Add(p)
	}

	result := newResult(n, totals, time.Since(start))
	result.CoresUsed = workers
	return result, nil
}

func sumRange(lo, hi int64) Totals {
	var t Totals
	for i := lo; i <= hi; i++ {
		t.Add(Order(i))
	}
	return t
}

func sumRangeCtx(ctx context.Context, lo, hi int64) (Totals, error) {
	var t Totals
	for block := lo; block <= hi; block += checkEvery {
		if err := ctx.Err(); err != nil {
			return Totals{}, err
		}
		end := block + checkEvery - 1
		if end > hi {
			end = hi
		}
		t.Add(sumRange(block, end))
	}
	return t, nil
}

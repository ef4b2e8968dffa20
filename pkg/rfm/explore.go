package rfm

import (
	"math"
	"sort"
	"time"
)

/*
Exploration feeds consumed by the presentation layer: histogram arrays,
purchase trends from the cleaned table's month/year columns, and the r/f/m
correlation matrix. No computation beyond what the charts need.
*/

// MonthlyOrderCount is the number of cleaned orders purchased in one
// calendar month.
type MonthlyOrderCount struct {
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Orders int        `json:"orders"`
}

// YearlyCustomerCount is the number of distinct customers who purchased in
// one calendar year.
type YearlyCustomerCount struct {
	Year      int `json:"year"`
	Customers int `json:"customers"`
}

// RecencyValues returns the raw recency column for histogram rendering.
func (r *Result) RecencyValues() []float64 {
	out := make([]float64, len(r.Customers))
	for i, c := range r.Customers {
		out[i] = float64(c.RecencyDays)
	}
	return out
}

// MonetaryValues returns the raw monetary column for histogram rendering.
func (r *Result) MonetaryValues() []float64 {
	out := make([]float64, len(r.Customers))
	for i, c := range r.Customers {
		out[i] = c.Monetary
	}
	return out
}

// MonthlyOrders counts cleaned orders per purchase month, sorted
// chronologically. Orders with no parseable purchase timestamp are skipped.
func (r *Result) MonthlyOrders() []MonthlyOrderCount {
	type ym struct {
		year  int
		month time.Month
	}
	counts := make(map[ym]int)
	for _, o := range r.CleanOrders {
		if o.Year == 0 {
			continue
		}
		counts[ym{o.Year, o.Month}]++
	}
	keys := make([]ym, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})
	out := make([]MonthlyOrderCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthlyOrderCount{Year: k.year, Month: k.month, Orders: counts[k]})
	}
	return out
}

// YearlyUniqueCustomers counts distinct purchasing customers per year,
// sorted chronologically.
func (r *Result) YearlyUniqueCustomers() []YearlyCustomerCount {
	byYear := make(map[int]map[string]struct{})
	for _, o := range r.CleanOrders {
		if o.Year == 0 {
			continue
		}
		set := byYear[o.Year]
		if set == nil {
			set = make(map[string]struct{})
			byYear[o.Year] = set
		}
		set[o.CustomerID] = struct{}{}
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	out := make([]YearlyCustomerCount, 0, len(years))
	for _, y := range years {
		out = append(out, YearlyCustomerCount{Year: y, Customers: len(byYear[y])})
	}
	return out
}

// Correlation returns the 3×3 Pearson correlation matrix of the raw r, f
// and m columns, in that order. A constant column yields NaN off the
// diagonal, same as the dataframe convention the charts were built against.
func (r *Result) Correlation() [3][3]float64 {
	cols := [3][]float64{
		r.RecencyValues(),
		make([]float64, len(r.Customers)),
		r.MonetaryValues(),
	}
	for i, c := range r.Customers {
		cols[1][i] = float64(c.Frequency)
	}

	var m [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if i == j {
				m[i][j] = 1
				continue
			}
			m[i][j] = pearson(cols[i], cols[j])
		}
	}
	return m
}

func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return math.NaN()
	}
	var sx, sy float64
	for i := range x {
		sx += x[i]
		sy += y[i]
	}
	mx, my := sx/n, sy/n
	var cov, vx, vy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	return cov / math.Sqrt(vx*vy)
}

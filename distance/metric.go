// SPDX-License-Identifier: MIT

package distance

import (
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Metric computes the distance between two equally long coordinate slices.
type Metric interface {
	Distance(a, b []float64) float64
}

// MetricFunc adapts a plain function into a Metric.
type MetricFunc func(a, b []float64) float64

// Distance implements Metric.
func (f MetricFunc) Distance(a, b []float64) float64 { return f(a, b) }

// Metric names understood by Lookup.
const (
	Euclidean   = "euclidean"
	SqEuclidean = "sqeuclidean"
	Manhattan   = "manhattan"
	Chebyshev   = "chebyshev"
	Cosine      = "cosine"
)

var registry = map[string]Metric{
	Euclidean:   MetricFunc(euclidean),
	"l2":        MetricFunc(euclidean),
	SqEuclidean: MetricFunc(sqEuclidean),
	Manhattan:   MetricFunc(manhattan),
	"cityblock": MetricFunc(manhattan),
	"l1":        MetricFunc(manhattan),
	Chebyshev:   MetricFunc(chebyshev),
	Cosine:      MetricFunc(cosine),
}

// Lookup resolves a metric by (case-insensitive) name.
// Errors: *UnsupportedMetricError.
func Lookup(name string) (Metric, error) {
	if m, ok := registry[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}

	return nil, &UnsupportedMetricError{Name: name}
}

// Names returns the sorted list of accepted metric names, aliases included.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	slices.Sort(names)

	return names
}

func euclidean(a, b []float64) float64 { return floats.Distance(a, b, 2) }

func sqEuclidean(a, b []float64) float64 {
	var sum, d float64
	for i := range a {
		d = a[i] - b[i]
		sum += d * d
	}
	return sum
}

func manhattan(a, b []float64) float64 { return floats.Distance(a, b, 1) }

func chebyshev(a, b []float64) float64 { return floats.Distance(a, b, math.Inf(1)) }

// cosine treats a zero vector as orthogonal to everything.
func cosine(a, b []float64) float64 {
	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 1
	}
	d := 1 - floats.Dot(a, b)/(na*nb)

	return min(max(d, 0), 2)
}

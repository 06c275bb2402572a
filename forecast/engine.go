// Package forecast turns a short sales history into a multi-day demand forecast.
//
// The demand models only know how to predict the next day from a fixed window,
// so longer horizons are produced by feeding each prediction back in as input
// for the following day (an autoregressive rollout).
package forecast

import (
	"fmt"
	"math"
)

const (
	// Window is the number of past daily observations a model consumes.
	Window = 7
	// Horizon is the number of future days predicted per request.
	Horizon = 7
)

// Model maps a window of observations (oldest first) to the next value.
type Model interface {
	Predict(window []float64) (float64, error)
}

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc func(window []float64) (float64, error)

// Predict calls f(window).
func (f ModelFunc) Predict(window []float64) (float64, error) {
	return f(window)
}

// State is the rollout accumulator. Buffer holds the original inputs followed
// by every prediction made so far; Predictions holds only the predictions.
type State struct {
	Buffer      []float64
	Predictions []float64
}

// NewState seeds a rollout with the given history window.
func NewState(history []float64) State {
	buf := make([]float64, len(history), len(history)+Horizon)
	copy(buf, history)
	return State{Buffer: buf}
}

// Input returns a copy of the most recent Window values of the buffer, which is
// what the next step feeds the model.
func (s State) Input() []float64 {
	start := 0
	if len(s.Buffer) > Window {
		start = len(s.Buffer) - Window
	}
	in := make([]float64, len(s.Buffer)-start)
	copy(in, s.Buffer[start:])
	return in
}

// Step runs one rollout step and returns the next state. The input state is
// left untouched.
func Step(m Model, s State) (State, error) {
	day := len(s.Predictions) + 1
	y, err := m.Predict(s.Input())
	if err != nil {
		return s, fmt.Errorf("predict day %d: %w", day, err)
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return s, fmt.Errorf("predict day %d: %w", day, ErrNonFinite)
	}

	next := State{
		Buffer:      make([]float64, len(s.Buffer), len(s.Buffer)+1),
		Predictions: make([]float64, len(s.Predictions), len(s.Predictions)+1),
	}
	copy(next.Buffer, s.Buffer)
	copy(next.Predictions, s.Predictions)
	next.Buffer = append(next.Buffer, y)
	next.Predictions = append(next.Predictions, y)
	return next, nil
}

// Result is a completed forecast.
type Result struct {
	Predictions []float64
	Total       float64
}

// Forecast predicts Horizon days ahead from history, which must already be
// normalized to Window values. Predictions stay fractional while they are fed
// back; truncation only happens in Units and DailyUnits.
func Forecast(m Model, history []float64) (Result, error) {
	s := NewState(history)
	for i := 0; i < Horizon; i++ {
		var err error
		if s, err = Step(m, s); err != nil {
			return Result{}, err
		}
	}

	var total float64
	for _, y := range s.Predictions {
		total += y
	}
	if math.IsInf(total, 0) {
		return Result{}, fmt.Errorf("forecast total: %w", ErrNonFinite)
	}
	return Result{Predictions: s.Predictions, Total: total}, nil
}

// Units is the aggregate demand in whole units: truncated toward zero and
// never negative.
func (r Result) Units() int {
	return demandUnits(r.Total)
}

// DailyUnits reports each predicted day in whole units.
func (r Result) DailyUnits() []int {
	out := make([]int, len(r.Predictions))
	for i, y := range r.Predictions {
		out[i] = demandUnits(y)
	}
	return out
}

func demandUnits(v float64) int {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= math.MaxInt:
		return math.MaxInt
	}
	return int(math.Trunc(v))
}

// Package regression holds the fitted demand models exported from the training
// pipeline and the loader that turns a model directory into a forecast.Registry.
package regression

import "fmt"

// Linear is an ordinary least-squares model: Intercept + sum(Coefficients[i] * x[i]).
type Linear struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

func (l *Linear) Predict(window []float64) (float64, error) {
	if len(window) != len(l.Coefficients) {
		return 0, fmt.Errorf("linear model expects %d inputs, got %d", len(l.Coefficients), len(window))
	}
	y := l.Intercept
	for i, x := range window {
		y += l.Coefficients[i] * x
	}
	return y, nil
}

// Persistence predicts that tomorrow looks like today. It is the generic
// baseline used when no fitted model is shipped for a product.
type Persistence struct {
	Window int `json:"window"`
}

func (p *Persistence) Predict(window []float64) (float64, error) {
	if len(window) != p.Window {
		return 0, fmt.Errorf("persistence model expects %d inputs, got %d", p.Window, len(window))
	}
	return window[len(window)-1], nil
}

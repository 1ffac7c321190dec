package ops

import (
	"github.com/hpungsan/sift/internal/analysis"
	"github.com/hpungsan/sift/internal/errors"
)

// AnalyzeInput contains parameters for the Analyze operation.
type AnalyzeInput struct {
	Value string
}

// Analyze computes properties for a value without storing it.
func Analyze(input AnalyzeInput) (*analysis.Properties, error) {
	if analysis.IsBlank(input.Value) {
		return nil, errors.NewInvalidInput("value is required")
	}
	props := analysis.Analyze(input.Value)
	return &props, nil
}

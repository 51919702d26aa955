package fraud

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"ledgerguard/internal/domain"
)

// Report text.
const (
	HeaderLine      = "fraud warnings"
	NoPatternsLine  = "no fraud patterns detected"
	NoDataLine      = "no data"
	CouldNotAnalyze = "could not analyze"
)

// Render writes the text report for the outcome of Analyze.
func Render(w io.Writer, warnings []domain.Warning, runErr error) error {
	switch {
	case errors.Is(runErr, ErrNoData):
		_, err := fmt.Fprintln(w, NoDataLine)
		return err
	case runErr != nil:
		_, err := fmt.Fprintf(w, "%s: %v\n", CouldNotAnalyze, runErr)
		return err
	case len(warnings) == 0:
		_, err := fmt.Fprintf(w, "\n%s\n", NoPatternsLine)
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", HeaderLine); err != nil {
		return err
	}
	for _, warning := range warnings {
		if _, err := fmt.Fprintln(w, warning.Line); err != nil {
			return err
		}
	}
	return nil
}

// RenderJSON writes the report as indented JSON.
func RenderJSON(w io.Writer, report *domain.FraudReport) error {
	if report.Warnings == nil {
		report.Warnings = make([]domain.Warning, 0)
	}
	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

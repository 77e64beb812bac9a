// package formatter provides functions to export simulation results to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/mcview/internal/counter"
	"github.com/desertthunder/mcview/internal/models"
	"github.com/desertthunder/mcview/internal/shared"
	"gopkg.in/yaml.v3"
)

// Format names accepted by [Export].
const (
	FormatCSV       = "csv"
	FormatMarkdown  = "markdown"
	FormatText      = "text"
	FormatJSON      = "json"
	FormatIntervals = "intervals"
)

// ExportToCSV converts simulation draws to CSV format with columns: No, Random, Prediction
func ExportToCSV(results *models.Results) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"No", "Random", "Prediction"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range results.SimulationResults {
		record := []string{
			strconv.Itoa(row.No),
			row.RandomString(),
			strconv.Itoa(row.Prediction),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportIntervalsToCSV converts the interval table to CSV format with columns: Year, Visitors, Probability, Cumulative, Interval
func ExportIntervalsToCSV(results *models.Results) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Year", "Visitors", "Probability", "Cumulative", "Interval"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range results.IntervalTable {
		record := []string{
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Visitors),
			fmt.Sprintf("%.4f", row.Probability),
			fmt.Sprintf("%.4f", row.Cumulative),
			row.Interval(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts results to Markdown with both tables and the final prediction
func ExportToMarkdown(results *models.Results) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Monte Carlo Prediction\n\n")
	buf.WriteString(fmt.Sprintf("**Simulations**: %s\n", counter.FormatNumber(results.NumSimulations)))
	buf.WriteString(fmt.Sprintf("**Final prediction**: %s visitors\n\n", counter.FormatNumber(results.FinalPrediction)))

	buf.WriteString("## Intervals\n\n")
	buf.WriteString("| Year | Visitors | Probability | Cumulative | Interval |\n")
	buf.WriteString("|---|---|---|---|---|\n")
	for _, row := range results.IntervalTable {
		buf.WriteString(fmt.Sprintf("| %d | %s | %.4f | %.4f | %s |\n",
			row.Year, counter.FormatNumber(row.Visitors), row.Probability, row.Cumulative, row.Interval()))
	}

	buf.WriteString("\n## Simulations\n\n")
	buf.WriteString("| No. | Random | Prediction |\n")
	buf.WriteString("|---|---|---|\n")
	for _, row := range results.SimulationResults {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s |\n", row.No, row.RandomString(), counter.FormatNumber(row.Prediction)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts results to plain text format
func ExportToText(results *models.Results) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Simulations: %s\n", counter.FormatNumber(results.NumSimulations)))
	buf.WriteString(fmt.Sprintf("Final prediction: %s visitors\n\n", counter.FormatNumber(results.FinalPrediction)))

	for _, row := range results.SimulationResults {
		buf.WriteString(fmt.Sprintf("%d. %s -> %s\n", row.No, row.RandomString(), counter.FormatNumber(row.Prediction)))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts results to indented JSON
func ExportToJSON(results *models.Results) ([]byte, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Export renders results in the named format.
func Export(results *models.Results, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ExportToCSV(results)
	case FormatIntervals:
		return ExportIntervalsToCSV(results)
	case FormatMarkdown, "md":
		return ExportToMarkdown(results)
	case FormatText, "txt":
		return ExportToText(results)
	case FormatJSON:
		return ExportToJSON(results)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, format)
	}
}

// WriteExport renders results in the named format and writes them to path.
//
// Defaults to results.{ext} as the filename.
func WriteExport(results *models.Results, format, path string) (string, error) {
	data, err := Export(results, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		ext, err := Extension(format)
		if err != nil {
			return "", err
		}
		path = "results." + ext
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}

// Extension returns the file extension used for format.
func Extension(format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatCSV, FormatIntervals:
		return "csv", nil
	case FormatMarkdown, "md":
		return "md", nil
	case FormatText, "txt":
		return "txt", nil
	case FormatJSON:
		return "json", nil
	default:
		return "", fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, format)
	}
}

// WriteManifest writes a sweep manifest to path as JSON, or YAML when path ends in .yaml or .yml.
func WriteManifest(manifest *models.Manifest, path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(manifest)
	default:
		data, err = json.MarshalIndent(manifest, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

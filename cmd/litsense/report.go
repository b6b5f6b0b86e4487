package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/litsense"
)

// reportPaths returns the summary and JSON report paths written next to an
// analyzed file.
func reportPaths(path string) (string, string) {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + "_analysis.txt", base + "_analysis.json"
}

func marshalResult(result *litsense.AnalysisResult) ([]byte, error) {
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return append(b, '\n'), nil
}

// writeReports saves the requested report formats beside path and returns
// the files written.
func writeReports(path string, result *litsense.AnalysisResult, output string) ([]string, error) {
	txtPath, jsonPath := reportPaths(path)
	var written []string

	if output == outputText || output == outputBoth {
		if err := os.WriteFile(txtPath, []byte(litsense.GenerateSummary(result)+"\n"), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", txtPath, err)
		}
		written = append(written, txtPath)
	}
	if output == outputJSON || output == outputBoth {
		b, err := marshalResult(result)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(jsonPath, b, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", jsonPath, err)
		}
		written = append(written, jsonPath)
	}
	return written, nil
}

func printReport(w io.Writer, result *litsense.AnalysisResult, output string) error {
	if output == outputText || output == outputBoth {
		if _, err := fmt.Fprintln(w, litsense.GenerateSummary(result)); err != nil {
			return err
		}
	}
	if output == outputJSON || output == outputBoth {
		b, err := marshalResult(result)
		if err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

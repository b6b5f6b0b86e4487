package litsense

import (
	"encoding/json"
	"fmt"
)

// ParseResult decodes a result produced by json.Marshal.
func ParseResult(data []byte) (*AnalysisResult, error) {
	var result AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("error parsing analysis result: %w", err)
	}
	return &result, nil
}

// ToMap returns the result as generic JSON values, keyed like its JSON encoding.
func (r *AnalysisResult) ToMap() (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

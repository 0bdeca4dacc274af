// README: JSON rate-matrix file loader for reviewed, file-authored rates.
package pricing

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadMatrixFile reads an authored matrix from a JSON file. The file holds
// directions at the top level, usually just toAirport:
//
//	{"toAirport": {"Abbotsford": {"YVR": {"1": 80, "6": 140, "distanceRule": {...}}}}}
//
// The returned matrix is authored-form; run it through BuildBidirectional
// before handing it to the service.
func LoadMatrixFile(path string) (Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rates file %s: %w", path, err)
	}
	var authored Matrix
	if err := json.Unmarshal(data, &authored); err != nil {
		return nil, fmt.Errorf("parsing rates file %s: %w", path, err)
	}
	return authored, nil
}

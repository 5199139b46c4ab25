package summary

import (
	"encoding/json"
	"fmt"
	"os"
)

// CalcBlock is one verified calculation block from the expert report:
// the ratios as printed in the PDF, to be checked against what the graphs
// actually show.
type CalcBlock struct {
	BlockIndex int      `json:"block_index"`
	K1         *float64 `json:"K1"`
	K2         *float64 `json:"K2"`
	G1         *float64 `json:"G1"`
	G2         *float64 `json:"G2"`
	G          *float64 `json:"G"`
	D          *float64 `json:"D"`
}

// Calculations is the on-disk shape of the verified calculations file.
type Calculations struct {
	Blocks []CalcBlock `json:"blocks"`
}

// LoadCalculations reads the verified calculations JSON.
func LoadCalculations(path string) (*Calculations, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open calculations file: %w", err)
	}
	defer file.Close()

	var calc Calculations
	if err := json.NewDecoder(file).Decode(&calc); err != nil {
		return nil, fmt.Errorf("failed to decode calculations file: %w", err)
	}
	return &calc, nil
}

package catalog

import (
	"bytes"
	_ "embed"
)

//go:embed seed.json
var seedJSON []byte

// LoadSeed returns the catalog bundled with the binary.
func LoadSeed() (*Index, error) {
	return Load("seed.json", bytes.NewReader(seedJSON))
}

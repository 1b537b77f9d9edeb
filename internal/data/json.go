package data

import (
	"encoding/json"
	"os"

	"virtual-battery/internal/model"
)

// SeriesFile is the JSON shape of a saved usage/price series, so runs can
// be repeated without re-downloading NYISO data.
type SeriesFile struct {
	Zone string       `json:"zone,omitempty"`
	Data model.Series `json:"data"`
}

func LoadSeriesJSON(path string) (model.Series, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f SeriesFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if err := f.Data.Validate(); err != nil {
		return nil, err
	}
	return f.Data, nil
}

func SaveSeriesJSON(path string, zone string, series model.Series) error {
	raw, err := json.MarshalIndent(SeriesFile{Zone: zone, Data: series}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

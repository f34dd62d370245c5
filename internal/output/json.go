package output

import (
	"encoding/json"
	"os"

	"github.com/partscout/partscout/pkg/models"
)

// SaveJSON writes the result set as a pretty-printed array of records.
func SaveJSON(resp *models.ScrapeResponse, filepath string) error {
	records := resp.Data
	if records == nil {
		records = []models.ScrapeRecord{}
	}
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, content, 0644)
}

package scraper

import (
	"encoding/csv"
	"encoding/json"
	"os"
)

// WriteJSON saves records as a pretty-printed JSON array, the format the
// import command reads back.
func WriteJSON(records []Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

// WriteCSV saves records as CSV; the list-valued columns are JSON-encoded
// into their cells so the row stays flat.
func WriteCSV(records []Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"url", "name", "website", "socials", "email", "address", "contact", "description", "years_active", "staff", "awards"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		socials, err := json.Marshal(rec.Socials)
		if err != nil {
			return err
		}
		awards, err := json.Marshal(rec.Awards)
		if err != nil {
			return err
		}
		row := []string{
			rec.URL, rec.Name, rec.Website, string(socials), rec.Email, rec.Address,
			rec.Contact, rec.Description, rec.YearsActive, rec.Staff, string(awards),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DailyQuestion is a single-choice question of the daily check. Each option
// carries its own score contribution; there is no branching.
type DailyQuestion struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Options []Option `json:"options"`
}

type DailySection struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Questions []DailyQuestion `json:"questions"`
}

// DailyCatalog is the flat daily-check questionnaire. Only the first section
// is traversed; the document keeps the sections wrapper for schema symmetry
// with the initial questionnaire.
type DailyCatalog struct {
	Sections []DailySection `json:"sections"`
}

func ParseDaily(r io.Reader) (*DailyCatalog, error) {
	var c DailyCatalog
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode daily catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func LoadDailyFile(path string) (*DailyCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseDaily(f)
}

func (c *DailyCatalog) validate() error {
	if len(c.Sections) == 0 || len(c.Sections[0].Questions) == 0 {
		return fmt.Errorf("daily catalog has no questions")
	}
	seen := map[string]string{}
	for _, s := range c.Sections {
		for _, q := range s.Questions {
			if err := registerID(seen, q.ID, s.ID); err != nil {
				return err
			}
			if len(q.Options) == 0 {
				return fmt.Errorf("daily question %q has no options", q.ID)
			}
		}
	}
	return nil
}

// Questions returns the traversed question list (first section).
func (c *DailyCatalog) Questions() []DailyQuestion {
	return c.Sections[0].Questions
}

// Find locates a daily question by id.
func (c *DailyCatalog) Find(id string) (DailyQuestion, bool) {
	for _, q := range c.Questions() {
		if q.ID == id {
			return q, true
		}
	}
	return DailyQuestion{}, false
}

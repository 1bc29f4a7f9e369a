package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Question types as they appear in the catalog documents.
const (
	TypeBinary = "binary"
	TypeMulti  = "multi"
)

type Option struct {
	Text  string         `json:"text"`
	Score map[string]int `json:"score,omitempty"`
}

// SubQuestion is one entry of a follow-up list. Binary sub-questions carry
// their own score map; multi sub-questions score through their options.
type SubQuestion struct {
	ID      string         `json:"id"`
	Label   string         `json:"label"`
	Type    string         `json:"type"`
	Score   map[string]int `json:"score,omitempty"`
	Options []Option       `json:"options,omitempty"`
}

type FollowUp struct {
	Condition string        `json:"condition"` // currently always "yes"
	Questions []SubQuestion `json:"questions"`
}

// MainQuestion is a top-level binary question. Its score map applies when the
// answer is "yes"; an optional follow-up sub-tree is unlocked the same way.
// The score map may be absent for questions whose weight comes entirely from
// their follow-ups.
type MainQuestion struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Type     string         `json:"type"`
	Score    map[string]int `json:"score"`
	FollowUp *FollowUp      `json:"follow_up,omitempty"`
}

type Section struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Children []MainQuestion `json:"children"`
}

// Catalog is the immutable questionnaire definition. Section, question and
// option order is load-bearing: it drives traversal and progress.
type Catalog struct {
	Sections []Section `json:"sections"`
}

// Parse decodes and validates a catalog document.
func Parse(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads a catalog from disk. Malformed data is a startup-time fatal
// condition for callers; no traversal state may be created from a bad catalog.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func (c *Catalog) validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("catalog has no sections")
	}
	seen := map[string]string{} // question id -> section id
	for _, s := range c.Sections {
		if s.ID == "" {
			return fmt.Errorf("section without id")
		}
		if len(s.Children) == 0 {
			return fmt.Errorf("section %q is empty", s.ID)
		}
		for _, q := range s.Children {
			if err := registerID(seen, q.ID, s.ID); err != nil {
				return err
			}
			if q.Type != TypeBinary {
				return fmt.Errorf("main question %q: type must be %q, got %q", q.ID, TypeBinary, q.Type)
			}
			if q.FollowUp == nil {
				continue
			}
			if len(q.FollowUp.Questions) == 0 {
				return fmt.Errorf("main question %q: empty follow-up list", q.ID)
			}
			for _, fq := range q.FollowUp.Questions {
				if err := registerID(seen, fq.ID, s.ID); err != nil {
					return err
				}
				switch fq.Type {
				case TypeBinary:
				case TypeMulti:
					if len(fq.Options) == 0 {
						return fmt.Errorf("follow-up %q has no options", fq.ID)
					}
				default:
					return fmt.Errorf("follow-up %q: unknown type %q", fq.ID, fq.Type)
				}
			}
		}
	}
	return nil
}

func registerID(seen map[string]string, id, sectionID string) error {
	if id == "" {
		return fmt.Errorf("question without id in section %q", sectionID)
	}
	if prev, dup := seen[id]; dup {
		return fmt.Errorf("duplicate question id %q (sections %q and %q)", id, prev, sectionID)
	}
	seen[id] = sectionID
	return nil
}

// TotalUnits counts every main and follow-up question in the catalog plus the
// free-text complaint step. It is the denominator of the progress percentage.
func (c *Catalog) TotalUnits() int {
	total := 0
	for _, s := range c.Sections {
		for _, q := range s.Children {
			total++
			if q.FollowUp != nil {
				total += len(q.FollowUp.Questions)
			}
		}
	}
	return total + 1
}

// Main returns the main question at (sectionIdx, questionIdx), or false when
// either index is out of range.
func (c *Catalog) Main(sectionIdx, questionIdx int) (MainQuestion, bool) {
	if sectionIdx < 0 || sectionIdx >= len(c.Sections) {
		return MainQuestion{}, false
	}
	s := c.Sections[sectionIdx]
	if questionIdx < 0 || questionIdx >= len(s.Children) {
		return MainQuestion{}, false
	}
	return s.Children[questionIdx], true
}

// SubQuestionAt resolves a follow-up question under the given main question.
func (c *Catalog) SubQuestionAt(sectionIdx, questionIdx, followUpIdx int) (SubQuestion, bool) {
	q, ok := c.Main(sectionIdx, questionIdx)
	if !ok || q.FollowUp == nil {
		return SubQuestion{}, false
	}
	if followUpIdx < 0 || followUpIdx >= len(q.FollowUp.Questions) {
		return SubQuestion{}, false
	}
	return q.FollowUp.Questions[followUpIdx], true
}

// FindMain locates a main question by id.
func (c *Catalog) FindMain(id string) (MainQuestion, bool) {
	for _, s := range c.Sections {
		for _, q := range s.Children {
			if q.ID == id {
				return q, true
			}
		}
	}
	return MainQuestion{}, false
}

// FindSub locates a follow-up question by id anywhere in the catalog.
func (c *Catalog) FindSub(id string) (SubQuestion, bool) {
	for _, s := range c.Sections {
		for _, q := range s.Children {
			if q.FollowUp == nil {
				continue
			}
			for _, fq := range q.FollowUp.Questions {
				if fq.ID == id {
					return fq, true
				}
			}
		}
	}
	return SubQuestion{}, false
}

package catalog

import (
	"bytes"
	_ "embed"
)

//go:embed data/questions.json
var defaultQuestions []byte

//go:embed data/daily-check.json
var defaultDaily []byte

// Default returns the built-in initial questionnaire. Deployments can swap
// the whole questionnaire by pointing CATALOG_PATH at another document; the
// embedded copy keeps the service runnable with no data files on disk.
func Default() (*Catalog, error) {
	return Parse(bytes.NewReader(defaultQuestions))
}

// DefaultDaily returns the built-in daily-check questionnaire.
func DefaultDaily() (*DailyCatalog, error) {
	return ParseDaily(bytes.NewReader(defaultDaily))
}

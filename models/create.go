package models

import (
	"fmt"
	"strings"
)

type CreateRequest struct {
	Anvil     Anvil     `json:"anvil"`
	PDFPath   string    `json:"pdf_path"`
	Title     string    `json:"title,omitempty"` // optional, defaults to the PDF filename stem
	OutputDir string    `json:"output_dir"`
	Publish   bool      `json:"publish"`
	Detectors Detectors `json:"detectors"`
}

type CreateResponse struct {
	TemplateID         string   `json:"template_id"`
	TemplateName       string   `json:"template_name"`
	TemplateTitle      string   `json:"template_title"`
	DetectedFieldCount *int     `json:"detected_field_count"` // nil when the field list shape is unknown
	MetadataPath       string   `json:"metadata_path"`
	ExamplePayloadPath string   `json:"example_payload_path"`
	ArchivedTo         []string `json:"archived_to,omitempty"` // optional
}

// Detectors mirrors the field-detection arguments of the createCast
// mutation. The JSON tags match the API's camelCase names so the same
// struct serializes into both GraphQL variables and metadata files.
type Detectors struct {
	DetectFields         bool     `json:"detectFields"`
	DetectBoxesAdvanced  bool     `json:"detectBoxesAdvanced"`
	AdvancedDetectFields bool     `json:"advancedDetectFields"`
	AliasIDs             []string `json:"aliasIds"`
}

// DefaultDetectors enables every detector, matching the service's
// recommended settings for both fillable and scanned PDFs.
func DefaultDetectors() Detectors {
	return Detectors{
		DetectFields:         true,
		DetectBoxesAdvanced:  true,
		AdvancedDetectFields: true,
	}
}

func (r CreateRequest) Validate() error {
	missingFields := []string{}
	if r.Anvil.APIKey == "" {
		missingFields = append(missingFields, "anvil.api_key")
	}
	if r.PDFPath == "" {
		missingFields = append(missingFields, "pdf_path")
	}
	if r.OutputDir == "" {
		missingFields = append(missingFields, "output_dir")
	}

	if len(missingFields) > 0 {
		for i, value := range missingFields {
			missingFields[i] = fmt.Sprintf("'%s'", value)
		}
		return NewConfigurationError("Missing fields: %s", strings.Join(missingFields, ", "))
	}
	return nil
}

package models

import (
	"fmt"
	"os"
)

// TemplateMetadata mirrors the *.template.json file the creator writes
// next to each uploaded PDF. The filler reads it back to locate the
// template and its example payload.
type TemplateMetadata struct {
	TemplateID               string      `json:"templateId"`
	TemplateName             string      `json:"templateName"`
	TemplateTitle            string      `json:"templateTitle"`
	HasBeenPublished         bool        `json:"hasBeenPublished"`
	PublishedNumber          *int        `json:"publishedNumber"`
	LatestDraftVersionNumber int         `json:"latestDraftVersionNumber"`
	SourcePDFPath            string      `json:"sourcePdfPath"`
	FieldInfo                interface{} `json:"fieldInfo"`
	DetectedFieldCount       *int        `json:"detectedFieldCount"`
	Detectors                Detectors   `json:"detectors"`
	ExamplePayloadPath       string      `json:"examplePayloadPath"`

	// Path records where the metadata was loaded from, for error messages.
	Path string `json:"-"`
}

func LoadTemplateMetadata(metadataPath string) (*TemplateMetadata, error) {
	contents, err := os.ReadFile(metadataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigurationError("Template metadata not found: %s", metadataPath)
		}
		return nil, fmt.Errorf("Failed to read template metadata '%s': %s", metadataPath, err)
	}

	metadata := TemplateMetadata{}
	if err := unmarshalByExtension(metadataPath, contents, &metadata); err != nil {
		return nil, fmt.Errorf("Failed to parse template metadata '%s': %s", metadataPath, err)
	}
	metadata.Path = metadataPath

	return &metadata, nil
}

// CountDetectedFields returns the length of fieldInfo.fields, or nil
// when the response doesn't carry a recognizable field list. The nil
// case is preserved all the way into the metadata file as an explicit
// null so consumers can tell "zero fields" from "unknown shape".
func CountDetectedFields(fieldInfo interface{}) *int {
	info, ok := fieldInfo.(map[string]interface{})
	if !ok {
		return nil
	}
	fields, ok := info["fields"].([]interface{})
	if !ok {
		return nil
	}
	count := len(fields)
	return &count
}

// BuildExamplePayload derives the example-payload file contents from a
// template's exampleData. Data already shaped as a fill request (it has
// a top-level "data" key) passes through untouched; anything else gets
// wrapped with presentation defaults.
func BuildExamplePayload(exampleData interface{}, title string) map[string]interface{} {
	data, isMap := exampleData.(map[string]interface{})
	if isMap {
		if _, hasDataKey := data["data"]; hasDataKey {
			return data
		}
	}
	if !isMap {
		data = map[string]interface{}{}
	}
	return map[string]interface{}{
		"title":     title,
		"fontSize":  10,
		"textColor": "#333333",
		"data":      data,
	}
}

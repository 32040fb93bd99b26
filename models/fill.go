package models

import (
	"fmt"
	"strings"
)

type FillRequest struct {
	Anvil           Anvil  `json:"anvil"`
	TemplateID      string `json:"template_id,omitempty"`       // optional when metadata_path is given
	MetadataPath    string `json:"metadata_path,omitempty"`     // optional when template_id is given
	PayloadPath     string `json:"payload_path,omitempty"`      // optional when metadata names an example payload
	OutputPath      string `json:"output_path"`
	VersionNumber   int    `json:"version_number,omitempty"`    // optional, 0 targets the latest published version
	NoInteractive   bool   `json:"no_interactive,omitempty"`    // optional
	DefaultReadOnly bool   `json:"default_read_only,omitempty"` // optional
}

type FillResponse struct {
	TemplateID  string   `json:"template_id"`
	PayloadPath string   `json:"payload_path"`
	OutputPath  string   `json:"output_path"`
	ArchivedTo  []string `json:"archived_to,omitempty"` // optional
}

func (r FillRequest) Validate() error {
	missingFields := []string{}
	if r.Anvil.APIKey == "" {
		missingFields = append(missingFields, "anvil.api_key")
	}
	if r.OutputPath == "" {
		missingFields = append(missingFields, "output_path")
	}

	if len(missingFields) > 0 {
		for i, value := range missingFields {
			missingFields[i] = fmt.Sprintf("'%s'", value)
		}
		return NewConfigurationError("Missing fields: %s", strings.Join(missingFields, ", "))
	}
	return nil
}

// ResolveTemplateID picks the template to fill. An explicit ID always
// wins over one read from a metadata file.
func ResolveTemplateID(explicitID string, metadata *TemplateMetadata) (string, error) {
	if explicitID != "" {
		return explicitID, nil
	}
	if metadata == nil {
		return "", NewConfigurationError("Provide either --template-id or --template-metadata")
	}
	if metadata.TemplateID == "" {
		return "", NewConfigurationError("templateId missing in metadata: %s", metadata.Path)
	}
	return metadata.TemplateID, nil
}

// ResolvePayloadPath picks the payload file to send. An explicit path
// always wins over the example payload named by a metadata file.
func ResolvePayloadPath(explicitPath string, metadata *TemplateMetadata) (string, error) {
	if explicitPath != "" {
		return explicitPath, nil
	}
	if metadata == nil {
		return "", NewConfigurationError("Provide --payload when using --template-id directly")
	}
	if metadata.ExamplePayloadPath == "" {
		return "", NewConfigurationError("examplePayloadPath missing in metadata; provide --payload explicitly")
	}
	return metadata.ExamplePayloadPath, nil
}

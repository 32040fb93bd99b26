package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yamlConverter "github.com/ghodss/yaml"
)

// FillPayload is the request body for the PDF fill endpoint. Keys pass
// through to the API untouched apart from the interactive-field toggles
// injected by EnableInteractiveFields.
type FillPayload map[string]interface{}

func ParseFillPayloadFile(payloadPath string) (FillPayload, error) {
	contents, err := os.ReadFile(payloadPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigurationError("Payload file not found: %s", payloadPath)
		}
		return nil, fmt.Errorf("Failed to read payload file '%s': %s", payloadPath, err)
	}

	var parsed interface{}
	if err := unmarshalByExtension(payloadPath, contents, &parsed); err != nil {
		return nil, fmt.Errorf("Failed to parse payload file '%s': %s", payloadPath, err)
	}

	payload, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, errors.New("Payload JSON must be an object")
	}
	return FillPayload(payload), nil
}

// EnableInteractiveFields asks the API to keep form fields editable in
// the filled PDF rather than flattening them.
func (p FillPayload) EnableInteractiveFields(defaultReadOnly bool) {
	p["useInteractiveFields"] = true
	p["defaultReadOnly"] = defaultReadOnly
}

// unmarshalByExtension parses *.yaml and *.yml files as YAML and
// everything else as JSON. The YAML converter round-trips through JSON
// so both formats honor the same struct tags.
func unmarshalByExtension(filename string, contents []byte, target interface{}) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return yamlConverter.Unmarshal(contents, target)
	default:
		return json.Unmarshal(contents, target)
	}
}

package models

import (
	"fmt"
	"strings"
)

const (
	DefaultGraphQLURL = "https://graphql.useanvil.com"
	DefaultAPIBaseURL = "https://app.useanvil.com"
)

// Anvil holds the credentials and endpoints used to reach the Anvil API.
// Endpoint overrides exist so tests and on-prem proxies can point the
// tools at a different host; empty values fall back to the public API.
type Anvil struct {
	APIKey     string `json:"api_key"`
	GraphQLURL string `json:"graphql_url,omitempty"`  // optional
	APIBaseURL string `json:"api_base_url,omitempty"` // optional
}

func (m Anvil) Validate() error {
	missingFields := []string{}
	if m.APIKey == "" {
		missingFields = append(missingFields, "anvil.api_key")
	}

	if len(missingFields) > 0 {
		for i, value := range missingFields {
			missingFields[i] = fmt.Sprintf("'%s'", value)
		}
		return NewConfigurationError("Missing fields: %s", strings.Join(missingFields, ", "))
	}
	return nil
}

func (m Anvil) GraphQLEndpoint() string {
	if m.GraphQLURL != "" {
		return strings.TrimSuffix(m.GraphQLURL, "/")
	}
	return DefaultGraphQLURL
}

func (m Anvil) APIEndpoint() string {
	if m.APIBaseURL != "" {
		return strings.TrimSuffix(m.APIBaseURL, "/")
	}
	return DefaultAPIBaseURL
}

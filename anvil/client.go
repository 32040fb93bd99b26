package anvil

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/anviltools/anvil-templates/models"
)

type Client interface {
	CreateCast(CreateCastRequest) (Cast, error)
	PublishCast(eid string, title string, description string) (Cast, error)
	Cast(eid string) (Cast, error)
	FillPDF(templateID string, versionNumber int, payload models.FillPayload) ([]byte, error)
}

// Cast is the template object returned by the GraphQL API. ExampleData
// and FieldInfo stay untyped: their shape belongs to the service and is
// passed through to the artifact files unmodified.
type Cast struct {
	EID                      string      `json:"eid"`
	Name                     string      `json:"name"`
	Title                    string      `json:"title"`
	HasBeenPublished         bool        `json:"hasBeenPublished"`
	PublishedNumber          *int        `json:"publishedNumber"`
	LatestDraftVersionNumber int         `json:"latestDraftVersionNumber"`
	ExampleData              interface{} `json:"exampleData"`
	FieldInfo                interface{} `json:"fieldInfo"`
}

type CreateCastRequest struct {
	Title     string
	File      FilePart
	Detectors models.Detectors
}

// APIError is any non-2xx response from the Anvil API. The body is
// carried verbatim since the service returns its diagnostics as JSON
// text.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Anvil API error %d: %s", e.StatusCode, e.Body)
}

// GraphQLError is a 2xx response whose `errors` array is non-empty.
type GraphQLError struct {
	Errors json.RawMessage
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("GraphQL errors: %s", string(e.Errors))
}

const maxErrorBodyLength = 1000

const createCastQuery = `mutation CreateCast(
  $title: String,
  $file: Upload!,
  $isTemplate: Boolean,
  $detectFields: Boolean,
  $detectBoxesAdvanced: Boolean,
  $advancedDetectFields: Boolean,
  $aliasIds: JSON
) {
  createCast(
    title: $title
    file: $file
    isTemplate: $isTemplate
    detectFields: $detectFields
    detectBoxesAdvanced: $detectBoxesAdvanced
    advancedDetectFields: $advancedDetectFields
    aliasIds: $aliasIds
  ) {
    eid
    name
    title
    hasBeenPublished
    publishedNumber
    latestDraftVersionNumber
    exampleData
    fieldInfo
  }
}`

const publishCastQuery = `mutation PublishCast($eid: String!, $title: String!, $description: String) {
  publishCast(eid: $eid, title: $title, description: $description) {
    eid
    name
    title
    hasBeenPublished
    publishedNumber
    latestDraftVersionNumber
    exampleData
    fieldInfo
  }
}`

const castQuery = `query Cast($eid: String!) {
  cast(eid: $eid) {
    eid
    name
    title
    hasBeenPublished
    publishedNumber
    latestDraftVersionNumber
    exampleData
    fieldInfo
  }
}`

type client struct {
	model      models.Anvil
	httpClient *http.Client
}

func NewClient(model models.Anvil) Client {
	return client{
		model:      model,
		httpClient: http.DefaultClient,
	}
}

func (c client) CreateCast(createReq CreateCastRequest) (Cast, error) {
	variables := map[string]interface{}{
		"title":                createReq.Title,
		"file":                 nil,
		"isTemplate":           true,
		"detectFields":         createReq.Detectors.DetectFields,
		"detectBoxesAdvanced":  createReq.Detectors.DetectBoxesAdvanced,
		"advancedDetectFields": createReq.Detectors.AdvancedDetectFields,
		"aliasIds":             aliasIDsOrNull(createReq.Detectors.AliasIDs),
	}

	upload := UploadRequest{
		Query:              createCastQuery,
		Variables:          variables,
		UploadVariablePath: "variables.file",
		File:               createReq.File,
	}
	body, contentType, err := upload.Encode()
	if err != nil {
		return Cast{}, err
	}

	req, err := http.NewRequest("POST", c.model.GraphQLEndpoint(), bytes.NewReader(body))
	if err != nil {
		return Cast{}, fmt.Errorf("Failed to build upload request: %s", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	data, err := c.doGraphQL(req)
	if err != nil {
		return Cast{}, err
	}
	return castFromData(data, "createCast")
}

func (c client) PublishCast(eid string, title string, description string) (Cast, error) {
	variables := map[string]interface{}{
		"eid":         eid,
		"title":       title,
		"description": description,
	}

	data, err := c.graphqlJSON(publishCastQuery, variables)
	if err != nil {
		return Cast{}, err
	}
	return castFromData(data, "publishCast")
}

func (c client) Cast(eid string) (Cast, error) {
	data, err := c.graphqlJSON(castQuery, map[string]interface{}{"eid": eid})
	if err != nil {
		return Cast{}, err
	}
	return castFromData(data, "cast")
}

func (c client) FillPDF(templateID string, versionNumber int, payload models.FillPayload) ([]byte, error) {
	fillURL := fmt.Sprintf("%s/api/v1/fill/%s.pdf", c.model.APIEndpoint(), templateID)
	if versionNumber != 0 {
		fillURL = fmt.Sprintf("%s?versionNumber=%d", fillURL, versionNumber)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("Failed to marshal fill payload: %s", err)
	}

	req, err := http.NewRequest("POST", fillURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("Failed to build fill request: %s", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	return c.do(req)
}

func (c client) graphqlJSON(query string, variables map[string]interface{}) (map[string]json.RawMessage, error) {
	body, err := json.Marshal(graphqlOperations{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("Failed to marshal GraphQL request: %s", err)
	}

	req, err := http.NewRequest("POST", c.model.GraphQLEndpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("Failed to build GraphQL request: %s", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.doGraphQL(req)
}

func (c client) doGraphQL(req *http.Request) (map[string]json.RawMessage, error) {
	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	response := graphqlResponse{}
	if err := json.Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("Non-JSON response: %s", truncate(raw, maxErrorBodyLength))
	}

	var errorList []interface{}
	if response.Errors != nil {
		json.Unmarshal(response.Errors, &errorList)
	}
	if len(errorList) > 0 {
		return nil, &GraphQLError{Errors: response.Errors}
	}

	return response.Data, nil
}

func (c client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", basicAuth(c.model.APIKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Network error: %s", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Failed to read response body: %s", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// graphqlOperations is the JSON envelope shared by plain GraphQL posts
// and the "operations" part of multipart uploads.
type graphqlOperations struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors json.RawMessage            `json:"errors"`
}

func castFromData(data map[string]json.RawMessage, key string) (Cast, error) {
	raw, ok := data[key]
	if !ok || string(raw) == "null" {
		return Cast{}, fmt.Errorf("GraphQL response missing '%s'", key)
	}

	cast := Cast{}
	if err := json.Unmarshal(raw, &cast); err != nil {
		return Cast{}, fmt.Errorf("Failed to parse '%s' response: %s", key, err)
	}
	return cast, nil
}

func aliasIDsOrNull(aliasIDs []string) interface{} {
	if len(aliasIDs) == 0 {
		return nil
	}
	return aliasIDs
}

// basicAuth encodes the API key as HTTP basic auth with an empty
// password, the scheme the Anvil API expects.
func basicAuth(apiKey string) string {
	token := base64.StdEncoding.EncodeToString([]byte(apiKey + ":"))
	return fmt.Sprintf("Basic %s", token)
}

func truncate(raw []byte, limit int) string {
	if len(raw) > limit {
		raw = raw[:limit]
	}
	return string(raw)
}

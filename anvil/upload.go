package anvil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FilePart is an in-memory file destined for a multipart upload.
type FilePart struct {
	Filename string
	Contents []byte
}

// UploadRequest builds the multipart/form-data body for a GraphQL
// multipart upload: an "operations" part carrying the query and
// variables, a "map" part pointing the file at a variable path, and
// the file itself as part "0". The caller is expected to leave the
// mapped variable null in Variables.
type UploadRequest struct {
	Query              string
	Variables          map[string]interface{}
	UploadVariablePath string
	File               FilePart

	// Boundary overrides the generated boundary token so tests can
	// assert on exact body bytes.
	Boundary string
}

// Encode renders the multipart body and returns it along with the
// Content-Type header value that names the boundary.
func (u UploadRequest) Encode() ([]byte, string, error) {
	boundary := u.Boundary
	if boundary == "" {
		boundary = randomBoundary()
	}

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	if err := writer.SetBoundary(boundary); err != nil {
		return nil, "", fmt.Errorf("Failed to set multipart boundary: %s", err)
	}

	operationsJSON, err := json.Marshal(graphqlOperations{Query: u.Query, Variables: u.Variables})
	if err != nil {
		return nil, "", fmt.Errorf("Failed to marshal GraphQL operations: %s", err)
	}
	if err := writeJSONPart(writer, "operations", operationsJSON); err != nil {
		return nil, "", err
	}

	mappingJSON, err := json.Marshal(map[string][]string{"0": {u.UploadVariablePath}})
	if err != nil {
		return nil, "", fmt.Errorf("Failed to marshal upload mapping: %s", err)
	}
	if err := writeJSONPart(writer, "map", mappingJSON); err != nil {
		return nil, "", err
	}

	fileHeader := make(textproto.MIMEHeader)
	fileHeader.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="0"; filename="%s"`, escapeQuotes(u.File.Filename)))
	fileHeader.Set("Content-Type", contentTypeForFilename(u.File.Filename))
	part, err := writer.CreatePart(fileHeader)
	if err != nil {
		return nil, "", fmt.Errorf("Failed to create file part: %s", err)
	}
	if _, err := part.Write(u.File.Contents); err != nil {
		return nil, "", fmt.Errorf("Failed to write file part: %s", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("Failed to finalize multipart body: %s", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

func writeJSONPart(writer *multipart.Writer, name string, contents []byte) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, name))
	header.Set("Content-Type", "application/json")

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("Failed to create '%s' part: %s", name, err)
	}
	if _, err := part.Write(contents); err != nil {
		return fmt.Errorf("Failed to write '%s' part: %s", name, err)
	}
	return nil
}

// contentTypeForFilename guesses from the extension, defaulting to PDF
// since that is the only thing these tools upload.
func contentTypeForFilename(filename string) string {
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		return "application/pdf"
	}
	return contentType
}

func randomBoundary() string {
	return fmt.Sprintf("----anvil-boundary-%s", strings.ReplaceAll(uuid.NewString(), "-", ""))
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, `\"`)

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

package anvil_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/anviltools/anvil-templates/anvil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Upload Request", func() {

	var upload anvil.UploadRequest

	BeforeEach(func() {
		upload = anvil.UploadRequest{
			Query: "mutation { noop }",
			Variables: map[string]interface{}{
				"file":  nil,
				"title": "Test Form",
			},
			UploadVariablePath: "variables.file",
			File: anvil.FilePart{
				Filename: "form.pdf",
				Contents: []byte("%PDF-1.4 fake"),
			},
		}
	})

	It("renders the operations, map, and file parts in order", func() {
		upload.Boundary = "testboundary"

		body, contentType, err := upload.Encode()
		Expect(err).ToNot(HaveOccurred())
		Expect(contentType).To(Equal("multipart/form-data; boundary=testboundary"))

		expected := strings.Join([]string{
			"--testboundary",
			`Content-Disposition: form-data; name="operations"`,
			"Content-Type: application/json",
			"",
			`{"query":"mutation { noop }","variables":{"file":null,"title":"Test Form"}}`,
			"--testboundary",
			`Content-Disposition: form-data; name="map"`,
			"Content-Type: application/json",
			"",
			`{"0":["variables.file"]}`,
			"--testboundary",
			`Content-Disposition: form-data; name="0"; filename="form.pdf"`,
			"Content-Type: application/pdf",
			"",
			"%PDF-1.4 fake",
			"--testboundary--",
			"",
		}, "\r\n")
		Expect(string(body)).To(Equal(expected))
	})

	It("round-trips through a standard multipart reader", func() {
		body, contentType, err := upload.Encode()
		Expect(err).ToNot(HaveOccurred())

		mediaType, params, err := mime.ParseMediaType(contentType)
		Expect(err).ToNot(HaveOccurred())
		Expect(mediaType).To(Equal("multipart/form-data"))
		Expect(params["boundary"]).To(HavePrefix("----anvil-boundary-"))

		reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])

		operationsPart, err := reader.NextPart()
		Expect(err).ToNot(HaveOccurred())
		Expect(operationsPart.FormName()).To(Equal("operations"))
		operations := map[string]interface{}{}
		Expect(json.NewDecoder(operationsPart).Decode(&operations)).To(Succeed())
		Expect(operations["query"]).To(Equal("mutation { noop }"))
		Expect(operations["variables"]).To(Equal(map[string]interface{}{
			"file":  nil,
			"title": "Test Form",
		}))

		mapPart, err := reader.NextPart()
		Expect(err).ToNot(HaveOccurred())
		Expect(mapPart.FormName()).To(Equal("map"))
		mapping := map[string][]string{}
		Expect(json.NewDecoder(mapPart).Decode(&mapping)).To(Succeed())
		Expect(mapping).To(Equal(map[string][]string{"0": {"variables.file"}}))

		filePart, err := reader.NextPart()
		Expect(err).ToNot(HaveOccurred())
		Expect(filePart.FormName()).To(Equal("0"))
		Expect(filePart.FileName()).To(Equal("form.pdf"))
		contents, err := io.ReadAll(filePart)
		Expect(err).ToNot(HaveOccurred())
		Expect(contents).To(Equal([]byte("%PDF-1.4 fake")))

		_, err = reader.NextPart()
		Expect(err).To(Equal(io.EOF))
	})

	It("generates a fresh boundary per request", func() {
		_, first, err := upload.Encode()
		Expect(err).ToNot(HaveOccurred())
		_, second, err := upload.Encode()
		Expect(err).ToNot(HaveOccurred())
		Expect(first).ToNot(Equal(second))
	})

	It("defaults the file content type to PDF when the extension gives no hint", func() {
		upload.Boundary = "testboundary"
		upload.File.Filename = "scanned-form"

		body, _, err := upload.Encode()
		Expect(err).ToNot(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`filename="scanned-form"` + "\r\nContent-Type: application/pdf\r\n"))
	})

	It("escapes quotes in filenames", func() {
		upload.Boundary = "testboundary"
		upload.File.Filename = `weird "name".pdf`

		body, _, err := upload.Encode()
		Expect(err).ToNot(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`filename="weird \"name\".pdf"`))
	})
})

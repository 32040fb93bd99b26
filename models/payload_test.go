package models_test

import (
	"os"
	"path/filepath"

	"github.com/anviltools/anvil-templates/models"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Fill Payload", func() {

	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "payload-test")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tmpDir)
	})

	writeFile := func(filename string, contents string) string {
		fullPath := filepath.Join(tmpDir, filename)
		err := os.WriteFile(fullPath, []byte(contents), 0644)
		Expect(err).ToNot(HaveOccurred())
		return fullPath
	}

	Describe("ParseFillPayloadFile", func() {

		It("parses a JSON object", func() {
			payloadPath := writeFile("payload.json", `{"data": {"name": "Jane Doe"}, "title": "W9"}`)

			payload, err := models.ParseFillPayloadFile(payloadPath)
			Expect(err).ToNot(HaveOccurred())
			Expect(payload).To(Equal(models.FillPayload{
				"data":  map[string]interface{}{"name": "Jane Doe"},
				"title": "W9",
			}))
		})

		It("parses YAML when the extension says so", func() {
			payloadPath := writeFile("payload.yaml", "data:\n  name: Jane Doe\ntitle: W9\n")

			payload, err := models.ParseFillPayloadFile(payloadPath)
			Expect(err).ToNot(HaveOccurred())
			Expect(payload).To(Equal(models.FillPayload{
				"data":  map[string]interface{}{"name": "Jane Doe"},
				"title": "W9",
			}))
		})

		It("rejects payloads that are not objects", func() {
			payloadPath := writeFile("payload.json", `["not", "an", "object"]`)

			_, err := models.ParseFillPayloadFile(payloadPath)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(Equal("Payload JSON must be an object"))
			Expect(models.ExitCode(err)).To(Equal(models.ExitFailure))
		})

		It("returns a configuration error for a missing file", func() {
			_, err := models.ParseFillPayloadFile(filepath.Join(tmpDir, "missing.json"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Payload file not found"))
			Expect(models.ExitCode(err)).To(Equal(models.ExitConfigError))
		})

		It("reports parse failures with the filename", func() {
			payloadPath := writeFile("payload.json", `{"data": `)

			_, err := models.ParseFillPayloadFile(payloadPath)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Failed to parse payload file"))
			Expect(err.Error()).To(ContainSubstring("payload.json"))
			Expect(models.ExitCode(err)).To(Equal(models.ExitFailure))
		})
	})

	Describe("EnableInteractiveFields", func() {

		It("injects the interactive toggles", func() {
			payload := models.FillPayload{"data": map[string]interface{}{"name": "Jane Doe"}}
			payload.EnableInteractiveFields(false)
			Expect(payload).To(Equal(models.FillPayload{
				"data":                 map[string]interface{}{"name": "Jane Doe"},
				"useInteractiveFields": true,
				"defaultReadOnly":      false,
			}))
		})

		It("honors the default-read-only flag", func() {
			payload := models.FillPayload{}
			payload.EnableInteractiveFields(true)
			Expect(payload["defaultReadOnly"]).To(Equal(true))
		})

		It("overrides toggles already present in the file", func() {
			payload := models.FillPayload{"useInteractiveFields": false}
			payload.EnableInteractiveFields(false)
			Expect(payload["useInteractiveFields"]).To(Equal(true))
		})
	})
})

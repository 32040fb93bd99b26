package create

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anviltools/anvil-templates/anvil"
	"github.com/anviltools/anvil-templates/archive"
	"github.com/anviltools/anvil-templates/encoder"
	"github.com/anviltools/anvil-templates/logger"
	"github.com/anviltools/anvil-templates/models"
	"github.com/anviltools/anvil-templates/namer"
)

const (
	publishDescription = "Published via anvil-templates"

	zeroFieldsWarning = "Warning: no fields detected. For scanned/non-fillable PDFs keep --detect-boxes-advanced enabled."
)

type Runner struct {
	LogWriter io.Writer
	Namer     namer.Namer

	// Archiver mirrors the written artifacts to remote storage when
	// set; nil disables archiving.
	Archiver       archive.Archiver
	ArchiveRunName string
}

func (r Runner) Run(req models.CreateRequest) (models.CreateResponse, error) {
	if err := req.Validate(); err != nil {
		return models.CreateResponse{}, err
	}

	pdfContents, err := os.ReadFile(req.PDFPath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.CreateResponse{}, models.NewConfigurationError("PDF not found: %s", req.PDFPath)
		}
		return models.CreateResponse{}, fmt.Errorf("Failed to read PDF at '%s': %s", req.PDFPath, err)
	}

	title := req.Title
	if title == "" {
		title = pdfStem(req.PDFPath)
	}

	log := logger.Logger{Sink: r.LogWriter}
	client := anvil.NewClient(req.Anvil)

	log.Info(fmt.Sprintf("Uploading '%s'...", req.PDFPath))
	cast, err := client.CreateCast(anvil.CreateCastRequest{
		Title: title,
		File: anvil.FilePart{
			Filename: filepath.Base(req.PDFPath),
			Contents: pdfContents,
		},
		Detectors: req.Detectors,
	})
	if err != nil {
		return models.CreateResponse{}, err
	}

	if req.Publish {
		log.Info(fmt.Sprintf("Publishing template '%s'...", cast.EID))
		publishTitle := cast.Title
		if publishTitle == "" {
			publishTitle = title
		}
		cast, err = client.PublishCast(cast.EID, publishTitle, publishDescription)
		if err != nil {
			return models.CreateResponse{}, err
		}
	}

	// re-query so the artifacts reflect the final server-side state,
	// including any processing that happened after the upload
	cast, err = client.Cast(cast.EID)
	if err != nil {
		return models.CreateResponse{}, err
	}

	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return models.CreateResponse{}, fmt.Errorf("Failed to create output dir at '%s': %s", req.OutputDir, err)
	}

	slugSource := cast.Name
	if slugSource == "" {
		slugSource = cast.Title
	}
	if slugSource == "" {
		slugSource = title
	}
	slug := namer.Slugify(slugSource)

	metadataPath := filepath.Join(req.OutputDir, fmt.Sprintf("%s_%s.template.json", slug, cast.EID))
	examplePath := filepath.Join(req.OutputDir, fmt.Sprintf("%s_%s.example-payload.json", slug, cast.EID))

	payloadTitle := cast.Title
	if payloadTitle == "" {
		payloadTitle = title
	}
	examplePayload := models.BuildExamplePayload(cast.ExampleData, payloadTitle)

	fieldInfo := cast.FieldInfo
	if fieldInfo == nil {
		fieldInfo = map[string]interface{}{}
	}
	detectedFieldCount := models.CountDetectedFields(fieldInfo)

	metadata := models.TemplateMetadata{
		TemplateID:               cast.EID,
		TemplateName:             cast.Name,
		TemplateTitle:            cast.Title,
		HasBeenPublished:         cast.HasBeenPublished,
		PublishedNumber:          cast.PublishedNumber,
		LatestDraftVersionNumber: cast.LatestDraftVersionNumber,
		SourcePDFPath:            req.PDFPath,
		FieldInfo:                fieldInfo,
		DetectedFieldCount:       detectedFieldCount,
		Detectors:                req.Detectors,
		ExamplePayloadPath:       examplePath,
	}

	if err := writeJSONFile(metadataPath, metadata); err != nil {
		return models.CreateResponse{}, err
	}
	if err := writeJSONFile(examplePath, examplePayload); err != nil {
		return models.CreateResponse{}, err
	}

	if detectedFieldCount != nil && *detectedFieldCount == 0 {
		log.Warn(zeroFieldsWarning)
	}

	resp := models.CreateResponse{
		TemplateID:         cast.EID,
		TemplateName:       cast.Name,
		TemplateTitle:      cast.Title,
		DetectedFieldCount: detectedFieldCount,
		MetadataPath:       metadataPath,
		ExamplePayloadPath: examplePath,
	}

	if r.Archiver != nil {
		runName, err := archive.ResolveRunName(r.ArchiveRunName, r.Namer, r.Archiver, filepath.Base(metadataPath))
		if err != nil {
			return models.CreateResponse{}, archiveError(err, req.OutputDir)
		}
		archivedTo, err := archive.UploadFiles(r.Archiver, runName, []string{metadataPath, examplePath})
		if err != nil {
			return models.CreateResponse{}, archiveError(err, req.OutputDir)
		}
		log.Success(fmt.Sprintf("Archived template artifacts under '%s'", runName))
		resp.ArchivedTo = archivedTo
	}

	return resp, nil
}

// archiveError notes that the local artifacts are already on disk when
// the archive step fails.
func archiveError(err error, outputDir string) error {
	return fmt.Errorf("Failed to archive template artifacts (local copies remain in '%s'): %s", outputDir, err)
}

func writeJSONFile(filename string, contents interface{}) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("Failed to create file at '%s': %s", filename, err)
	}
	defer file.Close()

	if err := encoder.NewJSONEncoder(file).Encode(contents); err != nil {
		return fmt.Errorf("Failed to write JSON to '%s': %s", filename, err)
	}
	return nil
}

func pdfStem(pdfPath string) string {
	base := filepath.Base(pdfPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

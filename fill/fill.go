package fill

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/anviltools/anvil-templates/anvil"
	"github.com/anviltools/anvil-templates/archive"
	"github.com/anviltools/anvil-templates/logger"
	"github.com/anviltools/anvil-templates/models"
	"github.com/anviltools/anvil-templates/namer"
)

type Runner struct {
	LogWriter io.Writer
	Namer     namer.Namer

	// Archiver mirrors the filled PDF to remote storage when set; nil
	// disables archiving.
	Archiver       archive.Archiver
	ArchiveRunName string
}

func (r Runner) Run(req models.FillRequest) (models.FillResponse, error) {
	if err := req.Validate(); err != nil {
		return models.FillResponse{}, err
	}

	var metadata *models.TemplateMetadata
	if req.MetadataPath != "" {
		var err error
		metadata, err = models.LoadTemplateMetadata(req.MetadataPath)
		if err != nil {
			return models.FillResponse{}, err
		}
	}

	templateID, err := models.ResolveTemplateID(req.TemplateID, metadata)
	if err != nil {
		return models.FillResponse{}, err
	}
	payloadPath, err := models.ResolvePayloadPath(req.PayloadPath, metadata)
	if err != nil {
		return models.FillResponse{}, err
	}

	payload, err := models.ParseFillPayloadFile(payloadPath)
	if err != nil {
		return models.FillResponse{}, err
	}
	if !req.NoInteractive {
		payload.EnableInteractiveFields(req.DefaultReadOnly)
	}

	log := logger.Logger{Sink: r.LogWriter}
	client := anvil.NewClient(req.Anvil)

	log.Info(fmt.Sprintf("Filling template '%s'...", templateID))
	pdfContents, err := client.FillPDF(templateID, req.VersionNumber, payload)
	if err != nil {
		return models.FillResponse{}, err
	}

	outputDir := filepath.Dir(req.OutputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return models.FillResponse{}, fmt.Errorf("Failed to create output dir at '%s': %s", outputDir, err)
	}
	if err := os.WriteFile(req.OutputPath, pdfContents, 0644); err != nil {
		return models.FillResponse{}, fmt.Errorf("Failed to write filled PDF to '%s': %s", req.OutputPath, err)
	}

	resp := models.FillResponse{
		TemplateID:  templateID,
		PayloadPath: payloadPath,
		OutputPath:  req.OutputPath,
	}

	if r.Archiver != nil {
		runName, err := archive.ResolveRunName(r.ArchiveRunName, r.Namer, r.Archiver, filepath.Base(req.OutputPath))
		if err != nil {
			return models.FillResponse{}, archiveError(err, req.OutputPath)
		}
		archivedTo, err := archive.UploadFiles(r.Archiver, runName, []string{req.OutputPath})
		if err != nil {
			return models.FillResponse{}, archiveError(err, req.OutputPath)
		}
		log.Success(fmt.Sprintf("Archived filled PDF under '%s'", runName))
		resp.ArchivedTo = archivedTo
	}

	return resp, nil
}

// archiveError notes that the filled PDF is already on disk when the
// archive step fails.
func archiveError(err error, outputPath string) error {
	return fmt.Errorf("Failed to archive filled PDF (local copy remains at '%s'): %s", outputPath, err)
}

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/anviltools/anvil-templates/archive"
	"github.com/anviltools/anvil-templates/create"
	"github.com/anviltools/anvil-templates/models"
	"github.com/anviltools/anvil-templates/namer"
)

var (
	pdfPath   string
	title     string
	outputDir string
	noPublish bool

	detectFields           bool
	noDetectFields         bool
	detectBoxesAdvanced    bool
	noDetectBoxesAdvanced  bool
	advancedDetectFields   bool
	noAdvancedDetectFields bool
	aliasIDs               []string
)

func main() {
	// missing .env files are fine
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "create-template",
		Short: "Create an Anvil PDF template from a source PDF",
		Long: `Uploads a PDF to Anvil as a reusable template, optionally publishes it,
and writes two artifacts next to it: a *.template.json metadata file and a
*.example-payload.json starter payload for the fill-template tool.

Requires the ANVIL_API_KEY environment variable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return models.NewConfigurationError("%s", err)
	})

	flags := rootCmd.Flags()
	flags.StringVar(&pdfPath, "pdf", "", "Path to source PDF (required)")
	flags.StringVar(&title, "title", "", "Template title (defaults to PDF filename)")
	flags.StringVar(&outputDir, "output-dir", "output/anvil_templates", "Directory for saved files")
	flags.BoolVar(&noPublish, "no-publish", false, "Skip the publish step, leaving the template as a draft")
	flags.BoolVar(&detectFields, "detect-fields", true, "Enable native PDF form-field detection")
	flags.BoolVar(&noDetectFields, "no-detect-fields", false, "Disable native PDF form-field detection")
	flags.BoolVar(&advancedDetectFields, "advanced-detect-fields", true, "Enable advanced field heuristics for native form fields")
	flags.BoolVar(&noAdvancedDetectFields, "no-advanced-detect-fields", false, "Disable advanced field heuristics for native form fields")
	flags.BoolVar(&detectBoxesAdvanced, "detect-boxes-advanced", true, "Enable box detection for scanned or non-fillable PDFs")
	flags.BoolVar(&noDetectBoxesAdvanced, "no-detect-boxes-advanced", false, "Disable box detection for scanned or non-fillable PDFs")
	flags.StringArrayVar(&aliasIDs, "alias-id", nil, "Expected field alias for AI mapping (repeatable)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(models.ExitCode(err))
	}
}

func run(cmd *cobra.Command, args []string) error {
	apiKey := os.Getenv("ANVIL_API_KEY")
	if apiKey == "" {
		return models.NewConfigurationError("Missing ANVIL_API_KEY environment variable")
	}

	req := models.CreateRequest{
		Anvil: models.Anvil{
			APIKey:     apiKey,
			GraphQLURL: os.Getenv("ANVIL_GRAPHQL_URL"),
			APIBaseURL: os.Getenv("ANVIL_API_BASE_URL"),
		},
		PDFPath:   pdfPath,
		Title:     title,
		OutputDir: outputDir,
		Publish:   !noPublish,
		Detectors: models.Detectors{
			DetectFields:         detectFields && !noDetectFields,
			DetectBoxesAdvanced:  detectBoxesAdvanced && !noDetectBoxesAdvanced,
			AdvancedDetectFields: advancedDetectFields && !noAdvancedDetectFields,
			AliasIDs:             aliasIDs,
		},
	}

	runner := create.Runner{
		LogWriter: os.Stderr,
		Namer:     namer.New(),
	}

	archiveModel := archiveModelFromEnv()
	if archiveModel.IsConfigured() {
		if err := archiveModel.Validate(); err != nil {
			return models.NewConfigurationError("Failed to validate archive configuration: %s", err)
		}
		runner.Archiver = archive.BuildDriver(archiveModel)
		runner.ArchiveRunName = archiveModel.RunName
	}

	resp, err := runner.Run(req)
	if err != nil {
		return err
	}

	fmt.Printf("Template created: %s\n", resp.TemplateID)
	fmt.Printf("Template name: %s\n", resp.TemplateName)
	fmt.Printf("Template title: %s\n", resp.TemplateTitle)
	if resp.DetectedFieldCount != nil {
		fmt.Printf("Detected fields: %d\n", *resp.DetectedFieldCount)
	}
	fmt.Printf("Metadata file: %s\n", resp.MetadataPath)
	fmt.Printf("Example payload file: %s\n", resp.ExamplePayloadPath)
	return nil
}

func archiveModelFromEnv() archive.Model {
	return archive.Model{
		Bucket:          os.Getenv("ANVIL_ARCHIVE_BUCKET"),
		BucketPath:      os.Getenv("ANVIL_ARCHIVE_BUCKET_PATH"),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY"),
		SecretAccessKey: os.Getenv("AWS_SECRET_KEY"),
		RegionName:      os.Getenv("AWS_REGION"),
		Endpoint:        os.Getenv("ANVIL_ARCHIVE_ENDPOINT"),
		RunName:         os.Getenv("ANVIL_ARCHIVE_RUN_NAME"),
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/anviltools/anvil-templates/archive"
	"github.com/anviltools/anvil-templates/fill"
	"github.com/anviltools/anvil-templates/models"
	"github.com/anviltools/anvil-templates/namer"
)

var (
	templateID      string
	metadataPath    string
	payloadPath     string
	outputPath      string
	versionNumber   int
	noInteractive   bool
	defaultReadOnly bool
)

func main() {
	// missing .env files are fine
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "fill-template",
		Short: "Fill an Anvil PDF template with a JSON payload",
		Long: `Sends a payload to Anvil's fill endpoint and writes the returned PDF to
disk. The template can be named directly with --template-id or located
through a *.template.json metadata file written by create-template, in
which case the template's example payload is used unless --payload
overrides it.

Requires the ANVIL_API_KEY environment variable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return models.NewConfigurationError("%s", err)
	})

	flags := rootCmd.Flags()
	flags.StringVar(&templateID, "template-id", "", "Anvil PDF template ID")
	flags.StringVar(&metadataPath, "template-metadata", "", "Path to *.template.json file")
	flags.StringVar(&payloadPath, "payload", "", "Path to payload JSON; default is metadata examplePayloadPath")
	flags.StringVar(&outputPath, "out", "output/anvil_filled.pdf", "Output PDF path")
	flags.IntVar(&versionNumber, "version-number", 0, "Fill a specific template version (-1 for the latest draft)")
	flags.BoolVar(&noInteractive, "no-interactive", false, "Flatten output PDF")
	flags.BoolVar(&defaultReadOnly, "default-read-only", false, "When interactive mode is enabled, set fields read-only by default")

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

	req := models.FillRequest{
		Anvil: models.Anvil{
			APIKey:     apiKey,
			GraphQLURL: os.Getenv("ANVIL_GRAPHQL_URL"),
			APIBaseURL: os.Getenv("ANVIL_API_BASE_URL"),
		},
		TemplateID:      templateID,
		MetadataPath:    metadataPath,
		PayloadPath:     payloadPath,
		OutputPath:      outputPath,
		VersionNumber:   versionNumber,
		NoInteractive:   noInteractive,
		DefaultReadOnly: defaultReadOnly,
	}

	runner := fill.Runner{
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

	fmt.Printf("Filled PDF written to: %s\n", resp.OutputPath)
	fmt.Printf("Template ID: %s\n", resp.TemplateID)
	fmt.Printf("Payload used: %s\n", resp.PayloadPath)
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

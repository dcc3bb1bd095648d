package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/docai-showcase/docai/pkg/docai"
	"github.com/spf13/cobra"
	yaml "go.yaml.in/yaml/v3"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a document with a Document AI processor",
	Long: `Send a document for synchronous processing and print summary metrics.

The unified bounding boxes (or the flattened layout for Layout Parser
results) can be saved with --output; .yaml and .json extensions pick the
format.`,
	RunE: runAnalyze,
}

var (
	analyzeFile      string
	analyzeProcessor string
	analyzeProcType  string
	analyzeMime      string
	analyzeOutput    string
	analyzeRaw       bool
)

func init() {
	RootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "Path to the document to analyze (required)")
	analyzeCmd.Flags().StringVar(&analyzeProcessor, "processor", "", "Processor ID (required; see 'docai processors')")
	analyzeCmd.Flags().StringVar(&analyzeProcType, "type", "", "Processor type; LAYOUT_PARSER_PROCESSOR enables layout chunking")
	analyzeCmd.Flags().StringVar(&analyzeMime, "mime", "", "MIME type (inferred from the file extension when omitted)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write boxes/layout to this path (.yaml or .json)")
	analyzeCmd.Flags().BoolVar(&analyzeRaw, "raw", false, "Write the raw document JSON instead of the derived views")

	for _, flag := range []string{"file", "processor"} {
		if err := analyzeCmd.MarkFlagRequired(flag); err != nil {
			slog.Error("Unable to mark flag as required", "flag", flag, "err", err)
			os.Exit(1)
		}
	}
}

// analysisReport is what --output serializes for standard results.
type analysisReport struct {
	Processor string                 `json:"processor" yaml:"processor"`
	Variant   string                 `json:"variant" yaml:"variant"`
	Pages     int                    `json:"pages" yaml:"pages"`
	Boxes     map[string][]docai.Box `json:"boxes,omitempty" yaml:"boxes,omitempty"`
	Layout    []docai.BlockRecord    `json:"layout,omitempty" yaml:"layout,omitempty"`
	Chunks    []docai.Chunk          `json:"chunks,omitempty" yaml:"chunks,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(analyzeFile)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	mimeType := analyzeMime
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(analyzeFile))
		if mimeType == "" {
			mimeType = "application/pdf"
		}
	}

	client, err := docai.NewClientFromEnv()
	if err != nil {
		return err
	}

	opts := &docai.ProcessOptions{
		EnableLayoutChunking: analyzeProcType == "LAYOUT_PARSER_PROCESSOR",
	}
	result, err := client.ProcessDocument(cmd.Context(), analyzeProcessor, data, mimeType, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printSummary(result)

	if analyzeOutput == "" {
		return nil
	}
	return saveReport(result)
}

func printSummary(result *docai.AnalysisResult) {
	if result.IsLayoutParserResult() {
		layout := result.DocumentLayout()
		chars := len(result.Text())
		if chars == 0 {
			for _, block := range layout {
				chars += len(block.Text)
			}
		}
		fmt.Printf("Pages:      %d\n", result.LayoutPageCount())
		fmt.Printf("Blocks:     %d\n", len(layout))
		fmt.Printf("Chunks:     %d\n", len(result.ChunkedDocument()))
		fmt.Printf("Characters: %d\n", chars)
		return
	}

	fmt.Printf("Pages:       %d\n", len(result.Pages()))
	fmt.Printf("Tables:      %d\n", len(result.Tables()))
	fmt.Printf("Form fields: %d\n", len(result.FormFields()))
	fmt.Printf("Entities:    %d\n", len(result.Entities()))

	boxes := result.BoundingBoxes()
	total := 0
	for _, categoryBoxes := range boxes {
		total += len(categoryBoxes)
	}
	fmt.Printf("Boxes:       %d\n", total)
}

func saveReport(result *docai.AnalysisResult) error {
	var payload any
	if analyzeRaw {
		payload = result.ToDict()
	} else {
		report := analysisReport{
			Processor: analyzeProcessor,
			Variant:   result.Variant().String(),
		}
		if result.IsLayoutParserResult() {
			report.Pages = result.LayoutPageCount()
			report.Layout = result.DocumentLayout()
			report.Chunks = result.ChunkedDocument()
		} else {
			report.Pages = len(result.Pages())
			report.Boxes = result.BoundingBoxes()
		}
		payload = report
	}

	var data []byte
	var err error
	if strings.HasSuffix(analyzeOutput, ".yaml") || strings.HasSuffix(analyzeOutput, ".yml") {
		data, err = yaml.Marshal(payload)
	} else {
		data, err = json.MarshalIndent(payload, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(analyzeOutput, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	slog.Info("Report saved", "path", analyzeOutput)
	return nil
}

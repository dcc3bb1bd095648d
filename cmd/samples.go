package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/docai-showcase/docai/pkg/docai"
	"github.com/spf13/cobra"
)

var (
	sampleDownload string
	sampleDir      string
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List or download sample documents",
	Long:  "List the publicly hosted sample documents, or download one by processor type for local testing.",
	RunE:  runSamples,
}

func init() {
	RootCmd.AddCommand(samplesCmd)

	samplesCmd.Flags().StringVar(&sampleDownload, "download", "", "Download the sample for this processor type (e.g. FORM_PARSER_PROCESSOR)")
	samplesCmd.Flags().StringVar(&sampleDir, "dir", ".", "Directory to download into")
}

func runSamples(cmd *cobra.Command, args []string) error {
	if sampleDownload == "" {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PROCESSOR TYPE\tNAME\tURL")
		for _, sample := range docai.SampleDocuments() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", sample.ProcessorType, sample.Name, sample.URL)
		}
		return w.Flush()
	}

	for _, sample := range docai.SampleDocuments() {
		if sample.ProcessorType != sampleDownload {
			continue
		}
		dest := filepath.Join(sampleDir, path.Base(sample.URL))
		if err := downloadFile(sample.URL, dest); err != nil {
			return fmt.Errorf("failed to download sample: %w", err)
		}
		fmt.Printf("Downloaded %s to %s\n", sample.Name, dest)
		return nil
	}
	return fmt.Errorf("no sample document for processor type %s", sampleDownload)
}

func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

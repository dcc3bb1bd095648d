package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/docai-showcase/docai/pkg/docai"
	"github.com/spf13/cobra"
	yaml "go.yaml.in/yaml/v3"
)

var (
	processorsOutput string
	processorsKnown  bool
)

var processorsCmd = &cobra.Command{
	Use:   "processors",
	Short: "List Document AI processors",
	Long: `List the processors configured in the project, discovered via the REST API.

With --known, list the processor type catalog instead of calling the API.`,
	RunE: runProcessors,
}

func init() {
	RootCmd.AddCommand(processorsCmd)

	processorsCmd.Flags().StringVarP(&processorsOutput, "output", "o", "", "Write the listing as YAML to this path instead of printing a table")
	processorsCmd.Flags().BoolVar(&processorsKnown, "known", false, "List the known processor type catalog instead of the project's processors")
}

func runProcessors(cmd *cobra.Command, args []string) error {
	if processorsKnown {
		return listKnownProcessors()
	}

	client, err := docai.NewClientFromEnv()
	if err != nil {
		return err
	}

	processors, err := client.ListProcessors(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list processors: %w", err)
	}

	if processorsOutput != "" {
		data, err := yaml.Marshal(processors)
		if err != nil {
			return fmt.Errorf("failed to marshal processors: %w", err)
		}
		return os.WriteFile(processorsOutput, data, 0o644)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDISPLAY NAME\tTYPE\tSTATE")
	for _, proc := range processors {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", proc.ID, proc.DisplayName, proc.Type, proc.State)
	}
	return w.Flush()
}

func listKnownProcessors() error {
	if processorsOutput != "" {
		data, err := yaml.Marshal(docai.ProcessorTypes)
		if err != nil {
			return fmt.Errorf("failed to marshal processor catalog: %w", err)
		}
		return os.WriteFile(processorsOutput, data, 0o644)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tCATEGORY\tENTITIES")
	for _, pt := range docai.ProcessorTypes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", pt.Type, pt.Name, pt.Category, pt.EntityExtraction)
	}
	return w.Flush()
}

package cli

import (
	"fmt"
	"os"

	"github.com/mocksmith/mocksmith/internal/mockfile"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var routesFile string

// routesCmd prints the effective route table of a definition file.
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Show the effective route table of a definition",
	Long: `Show the route table a definition file would register, with CRUD
bundles unrolled and the route prefix applied.

Example:
  mocksmith routes -f mocks.yaml
  mocksmith routes -f mocks.yaml --json`,
	Run: runRoutes,
}

func init() {
	routesCmd.Flags().StringVarP(&routesFile, "file", "f", "mocks.yaml", "mock definition file")
	routesCmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	routesCmd.Flags().BoolVar(&outputYAML, "yaml", false, "output as YAML")

	rootCmd.AddCommand(routesCmd)
}

func runRoutes(cmd *cobra.Command, args []string) {
	def, err := mockfile.ParseFile(routesFile)
	if err != nil {
		exitError("failed to load mock definition: %v", err)
	}

	if result := mockfile.Validate(def); !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e.Error())
		}
		exitError("invalid mock definition (%d errors)", len(result.Errors))
	}

	routes := mockfile.Expand(def)

	if len(routes) == 0 {
		if outputJSON || outputYAML {
			fmt.Println("[]")
		} else {
			fmt.Println("No routes defined.")
		}
		return
	}

	if printFormatted(routes) {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Method", "Path", "Results", "Delay"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, route := range routes {
		results := "1"
		if route.MaxResults > 0 {
			results = fmt.Sprintf("%d", route.MaxResults)
		}
		delay := route.Delay
		if delay == "" {
			delay = "-"
		}

		table.Append([]string{
			route.Method,
			route.Path,
			results,
			delay,
		})
	}
	table.Render()
}

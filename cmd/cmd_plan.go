// cmd_plan.go - plan Command
// Hauptfunktionen: PlanHandler, formatLines
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/7blacky7/mrimotion/envconfig"
)

// PlanHandler - Zeigt welche k-space Zeilen jeder Shot liefert
func PlanHandler(cmd *cobra.Command, args []string) error {
	shots, err := cmd.Flags().GetInt("shots")
	if err != nil {
		return err
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return err
	}
	traj, err := trajectoryFlag(cmd)
	if err != nil {
		return err
	}

	var data [][]string
	for shot := range shots {
		lines, err := traj.Lines(shot, shots, width)
		if err != nil {
			return err
		}
		data = append(data, []string{strconv.Itoa(shot), strconv.Itoa(len(lines)), formatLines(lines)})
	}
	if len(data) == 0 {
		_, err := traj.Assignment(shots, width)
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"SHOT", "COUNT", "LINES"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}

// formatLines - Fasst aufeinanderfolgende Zeilen zu Bereichen zusammen (0-3,8,10-11)
func formatLines(lines []int) string {
	if len(lines) == 0 {
		return "-"
	}

	var parts []string
	start := lines[0]
	for i := 1; i <= len(lines); i++ {
		if i < len(lines) && lines[i] == lines[i-1]+1 {
			continue
		}
		if end := lines[i-1]; end == start {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, end))
		}
		if i < len(lines) {
			start = lines[i]
		}
	}
	return strings.Join(parts, ",")
}

// newPlanCmd - Erstellt den plan Command
func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the line-to-shot assignment of a trajectory",
		Args:  cobra.NoArgs,
		RunE:  PlanHandler,
	}

	cmd.Flags().Int("shots", 4, "Number of shots")
	cmd.Flags().Int("width", 256, "Number of phase-encode lines")
	cmd.Flags().String("trajectory", envconfig.Trajectory(), "Line ordering: blocked or interleaved")
	return cmd
}

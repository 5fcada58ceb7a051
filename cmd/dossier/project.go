package main

import (
	"github.com/spf13/cobra"

	"github.com/facultymetrics/dossier/internal/rank"
)

var (
	projectRank string
	projectKRA1 float64
	projectKRA2 float64
	projectKRA3 float64
	projectKRA4 float64
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Compute a rank promotion projection",
	Long: `Computes the weighted promotion projection for a faculty member's
current rank and four raw KRA totals, including the cross-rank
recomputation when the projection leaves the current major band.`,
	RunE: runProject,
}

func init() {
	projectCmd.Flags().StringVar(&projectRank, "rank", "Instructor I", "current rank")
	projectCmd.Flags().Float64Var(&projectKRA1, "kra1", 0, "KRA I raw total (instruction)")
	projectCmd.Flags().Float64Var(&projectKRA2, "kra2", 0, "KRA II raw total (research)")
	projectCmd.Flags().Float64Var(&projectKRA3, "kra3", 0, "KRA III raw total (extension)")
	projectCmd.Flags().Float64Var(&projectKRA4, "kra4", 0, "KRA IV raw total (professional development)")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, args []string) error {
	projection := rank.Project(projectRank, rank.Totals{
		KRA1: projectKRA1,
		KRA2: projectKRA2,
		KRA3: projectKRA3,
		KRA4: projectKRA4,
	})
	return printJSON(cmd, projection)
}

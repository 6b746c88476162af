package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/quantmind-br/motionscan/internal/manifest"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Check an existing manifest",
		Long: `Loads a manifest written by motionscan (YAML or JSON) and checks that
every entry has a file, a positive fps, weight 1.0, contiguous idx values
and well-formed timings.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <manifest>",
		Short: "Print a manifest as a table",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	m, err := manifest.NewLoader().Load(args[0])
	if err != nil {
		return err
	}

	total, withTimings := totalDuration(m)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d motions, %d with timings, %s total)\n",
		args[0], m.Len(), withTimings, formatSeconds(total))
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	m, err := manifest.NewLoader().Load(args[0])
	if err != nil {
		return err
	}

	if m.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No motions.")
		return nil
	}

	rows := make([][]string, 0, m.Len())
	for _, e := range m.Motions {
		duration, frames := "-", "-"
		if d, ok := e.Duration(); ok {
			duration = formatSeconds(d)
			frames = strconv.Itoa(int(math.Round(d * float64(e.FPS))))
		}
		rows = append(rows, []string{
			strconv.Itoa(e.Idx),
			e.File,
			strconv.FormatFloat(float64(e.FPS), 'f', 1, 64),
			frames,
			duration,
		})
	}

	total, _ := totalDuration(m)
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Idx", "File", "FPS", "Frames", "Duration"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight},
		[]string{"", fmt.Sprintf("%d motions", m.Len()), "", "", formatSeconds(total)},
	))
	return nil
}

func totalDuration(m *manifest.Manifest) (float64, int) {
	var total float64
	var n int
	for _, e := range m.Motions {
		if d, ok := e.Duration(); ok {
			total += d
			n++
		}
	}
	return total, n
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 2, 64) + "s"
}

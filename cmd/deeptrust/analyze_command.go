package main

import (
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/execute-aditya/Deep-Trust/internal/report"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var noSave bool

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a media file for manipulation indicators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read media file: %w", err)
			}

			analyzer, err := ctx.newAnalyzer()
			if err != nil {
				return err
			}

			filename := filepath.Base(path)
			contentType := mime.TypeByExtension(filepath.Ext(path))
			resp, err := analyzer.Analyze(cmd.Context(), filename, contentType, data)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", filename, err)
			}

			if !noSave {
				store, err := ctx.openStore()
				if err != nil {
					return err
				}
				defer store.Close()

				raw, _ := json.Marshal(resp)
				record := &report.Record{
					Filename:     filename,
					MediaType:    string(resp.Kind),
					SizeBytes:    int64(len(data)),
					SHA256:       resp.SHA256,
					Verdict:      resp.Verdict,
					Confidence:   resp.Confidence,
					ProcessingMs: resp.ProcessingTime,
					ResponseJSON: string(raw),
				}
				if _, err := store.Save(cmd.Context(), record); err != nil {
					return fmt.Errorf("save report: %w", err)
				}
			}

			if jsonOutput {
				return writeJSON(cmd, resp)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Field", "Value"},
				[][]string{
					{"File", filename},
					{"Media type", string(resp.Kind)},
					{"Verdict", resp.Verdict},
					{"Confidence", fmt.Sprintf("%.1f%%", resp.Confidence*100)},
					{"ELA score", fmt.Sprintf("%.1f%%", resp.Visual.Score*100)},
					{"Spectral score", fmt.Sprintf("%.1f%%", resp.Audio.SpectralAnomaly*100)},
					{"Faces", fmt.Sprintf("%d", resp.Detectors.FaceDetection.FaceCount)},
					{"Hash", resp.Blockchain.Hash},
				},
				[]columnAlignment{alignLeft, alignLeft},
			))
			fmt.Fprintln(out)
			fmt.Fprintln(out, resp.Explanation)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full analysis response as JSON")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Skip recording the analysis in the report history")
	return cmd
}

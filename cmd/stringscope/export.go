package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/its-jojoo/stringscope/internal/core"
	"github.com/its-jojoo/stringscope/internal/errors"
	"github.com/its-jojoo/stringscope/internal/logger"
)

var (
	exportOut   string
	exportLimit int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump stored records as JSON, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx := cmd.Context()
		st, err := openStore(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		defer st.Close()

		recs, err := st.Find(ctx, nil)
		if err != nil {
			return errors.Wrap(err, "list records")
		}
		if exportLimit > 0 && len(recs) > exportLimit {
			recs = recs[:exportLimit]
		}
		if recs == nil {
			recs = []core.Record{}
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "-" {
			f, err := os.Create(exportOut)
			if err != nil {
				return errors.Wrapf(err, "create %s", exportOut)
			}
			defer f.Close()
			w = f
		}

		if err := writeExport(w, recs); err != nil {
			return err
		}
		if exportOut != "-" {
			pterm.Success.Printfln("Exported %d records to %s", len(recs), exportOut)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "-", "output json file path (- for stdout)")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "max records to export (0 for all)")
}

func writeExport(w io.Writer, recs []core.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return errors.Wrap(err, "encode export")
	}
	return nil
}

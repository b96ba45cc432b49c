package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/zap-network/zapfoil/internal/core/application"
)

var exportcsv = cli.Command{
	Name:  "export-csv",
	Usage: "export foils as CSV",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "from-batch",
			Usage: "only export batches at or above this number",
		},
		&cli.BoolFlag{
			Name:  "secrets-only",
			Usage: "emit one field per row holding just the foil secret",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "the CSV file to write",
			Value: "foils.csv",
		},
	},
	Action: exportCsvAction,
}

func exportCsvAction(ctx *cli.Context) error {
	var fromBatch *int
	if ctx.IsSet("from-batch") {
		value := ctx.Int("from-batch")
		fromBatch = &value
	}

	net, err := getNetwork(ctx)
	if err != nil {
		return err
	}
	repo, err := getRepository()
	if err != nil {
		return err
	}

	out, err := os.Create(ctx.String("out"))
	if err != nil {
		return err
	}
	defer out.Close()

	exportSvc := application.NewExportService(repo, *net)
	count, err := exportSvc.ExportCSV(
		ctx.Context, out, fromBatch, ctx.Bool("secrets-only"),
	)
	if err != nil {
		return err
	}

	fmt.Printf("exported %d foils to %s\n", count, ctx.String("out"))
	return nil
}

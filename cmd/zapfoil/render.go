package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/zap-network/zapfoil/internal/core/application"
)

var render = cli.Command{
	Name:  "render",
	Usage: "render foils as a multi-page voucher document",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "batch",
			Aliases: []string{"b"},
			Usage:   "the batch to render",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "the document file to write",
			Value: "vouchers.pdf",
		},
	},
	Action: renderAction,
}

func renderAction(ctx *cli.Context) error {
	var batch *int
	if ctx.IsSet("batch") {
		value := ctx.Int("batch")
		batch = &value
	}

	repo, err := getRepository()
	if err != nil {
		return err
	}

	renderSvc := application.NewRenderService(repo)
	count, err := renderSvc.RenderVouchers(ctx.Context, ctx.String("out"), batch)
	if err != nil {
		return err
	}

	fmt.Printf("rendered %d vouchers to %s\n", count, ctx.String("out"))
	return nil
}

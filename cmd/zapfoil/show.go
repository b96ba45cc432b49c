package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mdp/qrterminal/v3"
	"github.com/urfave/cli/v2"

	"github.com/zap-network/zapfoil/internal/config"
	"github.com/zap-network/zapfoil/internal/core/application"
	"github.com/zap-network/zapfoil/pkg/waves"
)

var show = cli.Command{
	Name:  "show",
	Usage: "show foils",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "batch",
			Aliases: []string{"b"},
			Usage:   "the batch to show",
		},
		&cli.BoolFlag{
			Name:  "balance",
			Usage: "annotate each foil with its live on-chain balance",
		},
		&cli.BoolFlag{
			Name:  "qr",
			Usage: "print a terminal QR code of each foil secret",
		},
	},
	Action: showAction,
}

func showAction(ctx *cli.Context) error {
	var batch *int
	if ctx.IsSet("batch") {
		value := ctx.Int("batch")
		batch = &value
	}
	withBalance := ctx.Bool("balance")

	net, err := getNetwork(ctx)
	if err != nil {
		return err
	}
	repo, err := getRepository()
	if err != nil {
		return err
	}
	var wavesSvc waves.Service
	if withBalance {
		if wavesSvc, err = getNodeService(net); err != nil {
			return err
		}
	}

	batchSvc := application.NewBatchService(
		repo, wavesSvc, *net, config.GetInt(config.FirstBatchKey),
	)
	foils, err := batchSvc.ListFoils(ctx.Context, batch, withBalance)
	if err != nil {
		return err
	}

	for _, foil := range foils {
		line, err := json.Marshal(foil)
		if err != nil {
			return err
		}
		fmt.Println(string(line))
		if ctx.Bool("qr") {
			qrterminal.GenerateHalfBlock(
				foil.SecretKey, qrterminal.M, os.Stdout,
			)
		}
	}
	return nil
}

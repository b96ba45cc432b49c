package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/zap-network/zapfoil/internal/config"
	"github.com/zap-network/zapfoil/internal/core/application"
)

var sweep = cli.Command{
	Name:      "sweep",
	Usage:     "return unclaimed funds of expired foils to a recipient address",
	ArgsUsage: "RECIPIENT STARTBATCH ENDBATCH",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "ignore-expiry",
			Usage: "sweep funded foils regardless of their expiry timestamp",
		},
	},
	Action: sweepAction,
}

func sweepAction(ctx *cli.Context) error {
	if ctx.Args().Len() != 3 {
		return fmt.Errorf("expected RECIPIENT, STARTBATCH and ENDBATCH arguments")
	}
	recipient := ctx.Args().Get(0)
	startBatch, endBatch, err := batchRangeArgs(ctx)
	if err != nil {
		return err
	}

	net, err := getNetwork(ctx)
	if err != nil {
		return err
	}
	repo, err := getRepository()
	if err != nil {
		return err
	}
	wavesSvc, err := getNodeService(net)
	if err != nil {
		return err
	}

	sweepSvc := application.NewSweepService(
		repo, wavesSvc, *net, config.GetInt64(config.TxFeeKey),
	)
	report, err := sweepSvc.Sweep(
		ctx.Context, recipient, startBatch, endBatch, ctx.Bool("ignore-expiry"),
	)
	if err != nil {
		return exitForErr(err)
	}

	fmt.Printf(
		"swept %d foils (%s ZAP), skipped %d unfunded, %d not expired, %d empty\n",
		report.Swept,
		decimal.New(int64(report.TotalSwept), -2),
		report.SkippedUnfunded,
		report.SkippedNotExpired,
		report.SkippedZeroBalance,
	)
	return nil
}

package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/zap-network/zapfoil/internal/config"
	"github.com/zap-network/zapfoil/internal/core/application"
)

var reconcile = cli.Command{
	Name:      "reconcile",
	Usage:     "backfill funding data for foils whose funding transfer was never recorded locally",
	ArgsUsage: "STARTBATCH ENDBATCH",
	Action:    reconcileAction,
}

func reconcileAction(ctx *cli.Context) error {
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

	reconcileSvc := application.NewReconcileService(
		repo, wavesSvc, *net,
		config.GetInt(config.ReconcileTxLimitKey),
		config.GetInt64(config.DefaultExpiryKey),
	)
	report, err := reconcileSvc.FillMissingFundingData(
		ctx.Context, startBatch, endBatch,
	)
	if err != nil {
		return exitForErr(err)
	}

	fmt.Printf(
		"backfilled %d foils, skipped %d already funded, %d with no history\n",
		report.Backfilled, report.SkippedFunded, report.SkippedNoHistory,
	)
	return nil
}

func batchRangeArgs(ctx *cli.Context) (int, int, error) {
	args := ctx.Args()
	if args.Len() < 2 {
		return 0, 0, fmt.Errorf("expected STARTBATCH and ENDBATCH arguments")
	}
	startBatch, err := strconv.Atoi(args.Get(args.Len() - 2))
	if err != nil {
		return 0, 0, fmt.Errorf("STARTBATCH must be an integer")
	}
	endBatch, err := strconv.Atoi(args.Get(args.Len() - 1))
	if err != nil {
		return 0, 0, fmt.Errorf("ENDBATCH must be an integer")
	}
	if endBatch < startBatch {
		return 0, 0, fmt.Errorf("ENDBATCH must not precede STARTBATCH")
	}
	return startBatch, endBatch, nil
}

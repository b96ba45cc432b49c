package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/zap-network/zapfoil/internal/config"
	"github.com/zap-network/zapfoil/internal/core/application"
	"github.com/zap-network/zapfoil/pkg/allocator"
)

var fundplan = cli.Command{
	Name:      "fund-plan",
	Usage:     "fund every batch of a plan file with its planned amount",
	ArgsUsage: "PLANFILE",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "expiry",
			Aliases: []string{"e"},
			Usage:   "the expiry time to use if you want to override the default of two months, a number of seconds or '<N>days'",
		},
	},
	Action: fundPlanAction,
}

func fundPlanAction(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("expected a PLANFILE argument")
	}
	plan, err := allocator.Load(ctx.Args().Get(0))
	if err != nil {
		return err
	}

	expiry, err := resolveExpiry(ctx)
	if err != nil {
		return exitForErr(err)
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

	seed, err := promptSeed()
	if err != nil {
		return err
	}

	fundingSvc := application.NewFundingService(
		repo, wavesSvc, *net, config.GetInt64(config.TxFeeKey),
	)
	report, err := fundingSvc.FundPlan(ctx.Context, seed, plan, expiry)
	if err != nil {
		return exitForErr(err)
	}

	printFundingReport(report)
	return nil
}

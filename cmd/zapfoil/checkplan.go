package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/zap-network/zapfoil/internal/config"
	"github.com/zap-network/zapfoil/internal/core/application"
	"github.com/zap-network/zapfoil/pkg/allocator"
)

var checkplan = cli.Command{
	Name:      "check-plan",
	Usage:     "compare a plan file against the stored foils without funding anything",
	ArgsUsage: "PLANFILE",
	Action:    checkPlanAction,
}

func checkPlanAction(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("expected a PLANFILE argument")
	}
	plan, err := allocator.Load(ctx.Args().Get(0))
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

	fundingSvc := application.NewFundingService(
		repo, nil, *net, config.GetInt64(config.TxFeeKey),
	)
	report, err := fundingSvc.CheckPlan(ctx.Context, plan)
	if err != nil {
		return err
	}

	for _, status := range report.Batches {
		if status.Missing {
			fmt.Printf("batch %d: MISSING (planned amount %d)\n",
				status.Batch, status.PlannedAmount)
			continue
		}
		line := fmt.Sprintf("batch %d: %d foils, %d funded, planned amount %d",
			status.Batch, status.Foils, status.Funded, status.PlannedAmount)
		if status.AmountMismatches > 0 {
			line += fmt.Sprintf(", %d AMOUNT MISMATCHES", status.AmountMismatches)
		}
		fmt.Println(line)
	}

	if report.Mismatched() {
		return fmt.Errorf("plan does not match the stored foils")
	}
	fmt.Println("plan matches the stored foils")
	return nil
}

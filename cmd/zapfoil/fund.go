package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/zap-network/zapfoil/internal/config"
	"github.com/zap-network/zapfoil/internal/core/application"
)

var fund = cli.Command{
	Name:      "fund",
	Usage:     "fund the remaining foils of a batch",
	ArgsUsage: "BATCH",
	Flags: []cli.Flag{
		&cli.Int64Flag{
			Name:  "amount",
			Usage: "the amount in minor units to send to each foil, overriding the stored face value",
		},
		&cli.StringFlag{
			Name:    "expiry",
			Aliases: []string{"e"},
			Usage:   "the expiry time to use if you want to override the default of two months, a number of seconds or '<N>days'",
		},
	},
	Action: fundAction,
}

func fundAction(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("expected a BATCH argument")
	}
	batch, err := strconv.Atoi(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("BATCH must be an integer")
	}

	var amount *int64
	if ctx.IsSet("amount") {
		value := ctx.Int64("amount")
		amount = &value
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
	report, err := fundingSvc.FundBatch(ctx.Context, seed, batch, amount, expiry)
	if err != nil {
		return exitForErr(err)
	}

	printFundingReport(report)
	return nil
}

// resolveExpiry turns the --expiry flag into an absolute timestamp, falling
// back to the configured validity window.
func resolveExpiry(ctx *cli.Context) (int64, error) {
	now := time.Now().Unix()
	if override := ctx.String("expiry"); override != "" {
		expiry, err := application.ParseExpiry(override, now)
		if err != nil {
			return 0, err
		}
		return expiry, nil
	}
	return now + config.GetInt64(config.DefaultExpiryKey), nil
}

func printFundingReport(report *application.FundingReport) {
	fmt.Printf(
		"funded %d foils (%s ZAP), skipped %d already funded, %d with a non-zero balance\n",
		report.Funded,
		decimal.New(report.TotalSent, -2),
		report.SkippedFunded,
		report.SkippedBalance,
	)
}

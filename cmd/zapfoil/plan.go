package main

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/zap-network/zapfoil/pkg/allocator"
)

var plan = cli.Command{
	Name:      "plan",
	Usage:     "compute a deterministic face-value distribution for a batch range and write the plan file",
	ArgsUsage: "STARTBATCH ENDBATCH",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "the number of foils in each batch",
			Value: 10,
		},
		&cli.StringFlag{
			Name:  "tiers",
			Usage: "comma separated percent:value allocation tiers, values in whole tokens",
			Value: "80:5,10:10,10:20",
		},
		&cli.IntFlag{
			Name:  "clump-size",
			Usage: "the length of the repeating value pattern",
			Value: 10,
		},
		&cli.Int64Flag{
			Name:  "fee",
			Usage: "the per-transfer fee in minor units added to each planned amount",
			Value: 1,
		},
		&cli.Int64Flag{
			Name:  "minor-units",
			Usage: "minor units per whole token",
			Value: 100,
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "the plan file to write",
			Value: "batches.json",
		},
	},
	Action: planAction,
}

func planAction(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return fmt.Errorf("expected STARTBATCH and ENDBATCH arguments")
	}
	start, err := strconv.Atoi(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("STARTBATCH must be an integer")
	}
	end, err := strconv.Atoi(ctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("ENDBATCH must be an integer")
	}

	tiers, err := parseTiers(ctx.String("tiers"))
	if err != nil {
		return err
	}

	result, summary, err := allocator.Generate(
		start, end,
		ctx.Int("batch-size"),
		tiers,
		ctx.Int("clump-size"),
		ctx.Int64("minor-units"),
		ctx.Int64("fee"),
	)
	if err != nil {
		return err
	}

	fmt.Printf("batch count: %d\n", summary.BatchCount)
	fmt.Println("batch allocations:")
	for _, tier := range summary.Tiers {
		fmt.Printf(" - %d%%, %d ZAP, %d batches, %s ZAP total\n",
			tier.Percent, tier.Value, tier.Batches, tier.TotalTokens)
	}
	fmt.Printf("total zap: %s\n", summary.TotalTokens)
	fmt.Printf("clump length: %d\n", summary.ClumpLen)
	if summary.ClumpShort {
		log.Warn(
			"tier percentages do not fill the clump, the plan under-allocates the missing entries",
		)
	}

	out := ctx.String("out")
	if err := result.Save(out); err != nil {
		return err
	}
	fmt.Printf("wrote %d batches to %s\n", len(result), out)
	return nil
}

func parseTiers(s string) ([]allocator.Tier, error) {
	tiers := make([]allocator.Tier, 0)
	for _, part := range strings.Split(s, ",") {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != 2 {
			return nil, fmt.Errorf("tier %q must be percent:value", part)
		}
		percent, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("tier %q has an invalid percentage", part)
		}
		value, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("tier %q has an invalid value", part)
		}
		tiers = append(tiers, allocator.Tier{Percent: percent, Value: value})
	}
	return tiers, nil
}

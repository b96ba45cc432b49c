package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/zap-network/zapfoil/internal/config"
	"github.com/zap-network/zapfoil/internal/core/application"
)

var create = cli.Command{
	Name:      "create",
	Usage:     "create batches of foils",
	ArgsUsage: "BATCHSIZE BATCHCOUNT",
	Flags: []cli.Flag{
		&cli.Int64Flag{
			Name:  "amount",
			Usage: "the face value of each foil in minor units; may be left unset and filled in at funding time",
		},
	},
	Action: createAction,
}

func createAction(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return fmt.Errorf("expected BATCHSIZE and BATCHCOUNT arguments")
	}
	batchSize, err := strconv.Atoi(ctx.Args().Get(0))
	if err != nil || batchSize <= 0 {
		return fmt.Errorf("BATCHSIZE must be a positive integer")
	}
	batchCount, err := strconv.Atoi(ctx.Args().Get(1))
	if err != nil || batchCount <= 0 {
		return fmt.Errorf("BATCHCOUNT must be a positive integer")
	}

	var amount *int64
	if ctx.IsSet("amount") {
		value := ctx.Int64("amount")
		amount = &value
	}

	net, err := getNetwork(ctx)
	if err != nil {
		return err
	}
	repo, err := getRepository()
	if err != nil {
		return err
	}

	batchSvc := application.NewBatchService(
		repo, nil, *net, config.GetInt(config.FirstBatchKey),
	)
	batches, err := batchSvc.CreateBatches(
		ctx.Context, batchSize, batchCount, amount,
	)
	if err != nil {
		return err
	}

	for _, batch := range batches {
		fmt.Println(batch)
	}
	return nil
}

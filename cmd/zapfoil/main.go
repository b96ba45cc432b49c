package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zap-network/zapfoil/internal/config"
	"github.com/zap-network/zapfoil/internal/core/application"
	"github.com/zap-network/zapfoil/internal/core/domain"
	"github.com/zap-network/zapfoil/internal/infrastructure/storage/db/sqlite"
	"github.com/zap-network/zapfoil/pkg/waves"
	"github.com/zap-network/zapfoil/pkg/waves/node"
)

// Process exit codes. Each user-input or integrity failure gets its own code
// so wrapping scripts can react without parsing output.
const (
	exitNoCommand           = 1
	exitSeedInvalid         = 10
	exitBalanceInsufficient = 11
	exitExpiryInvalid       = 12
	exitRecipientInvalid    = 13
	exitTooManyTransactions = 14
	exitUnexpectedTxType    = 15
	exitUnrecognizedAsset   = 16
	exitRecipientMismatch   = 17
)

func main() {
	if err := config.InitConfig(); err != nil {
		fatal(err)
	}
	setupLogger()

	app := cli.NewApp()
	app.Name = "zapfoil"
	app.Usage = "Manage batches of prefunded ZAP paper wallets (foils)"
	app.Version = "0.2.0"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "mainnet",
			Aliases: []string{"m"},
			Usage:   "use the production network (default: testnet)",
		},
	}
	app.Commands = append(
		app.Commands,
		&create,
		&fund,
		&fundplan,
		&checkplan,
		&plan,
		&reconcile,
		&show,
		&render,
		&exportcsv,
		&sweep,
	)
	app.Action = func(ctx *cli.Context) error {
		cli.ShowAppHelp(ctx)
		return cli.Exit("no command given", exitNoCommand)
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func setupLogger() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))
	if logFile := config.GetString(config.LogFileKey); logFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		}
		log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[zapfoil] %v\n", err)
	os.Exit(1)
}

func getNetwork(ctx *cli.Context) (*waves.Network, error) {
	net, err := config.GetNetwork(ctx.Bool("mainnet"))
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"network": net.Name,
		"node":    net.NodeURL,
	}).Info("selected network")
	return net, nil
}

func getRepository() (domain.FoilRepository, error) {
	return sqlite.NewFoilRepository(config.DbPath())
}

func getNodeService(net *waves.Network) (waves.Service, error) {
	return node.NewService(net.NodeURL)
}

// promptSeed reads the operator seed without echoing it, soft-checks it as a
// bip39 mnemonic and asks for explicit confirmation when the check fails.
func promptSeed() (string, error) {
	fmt.Fprint(os.Stderr, "Seed: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}

	seed := waves.NormalizeMnemonic(string(raw))
	if !waves.IsMnemonicValid(seed) {
		fmt.Fprint(
			os.Stderr,
			"Seed is not a valid bip39 mnemonic, are you sure you wish to continue (y/N): ",
		)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			return "", cli.Exit("seed failed validation", exitSeedInvalid)
		}
	}
	return seed, nil
}

// exitForErr maps application errors onto their exit codes; anything
// unmapped propagates unchanged.
func exitForErr(err error) error {
	if err == nil {
		return nil
	}
	codes := map[error]int{
		application.ErrBalanceInsufficient: exitBalanceInsufficient,
		application.ErrExpiryInvalid:       exitExpiryInvalid,
		application.ErrRecipientInvalid:    exitRecipientInvalid,
		application.ErrTooManyTransactions: exitTooManyTransactions,
		application.ErrUnexpectedTxType:    exitUnexpectedTxType,
		application.ErrUnexpectedAsset:     exitUnrecognizedAsset,
		application.ErrRecipientMismatch:   exitRecipientMismatch,
	}
	for sentinel, code := range codes {
		if errors.Is(err, sentinel) {
			return cli.Exit(err.Error(), code)
		}
	}
	return err
}

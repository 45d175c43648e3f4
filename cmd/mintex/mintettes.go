package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/mintex-network/mintex-daemon/internal/comms"
)

var mintettes = cli.Command{
	Name:   "mintettes",
	Usage:  "list the mintettes of the current period",
	Action: mintettesAction,
	Subcommands: []*cli.Command{
		{
			Name:   "utxo",
			Usage:  "dump the utxo set of the mintette at the given index",
			Action: mintetteUtxoAction,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "index",
					Usage:    "index of the mintette in the current roster",
					Required: true,
				},
			},
		},
		{
			Name:   "logs",
			Usage:  "fetch a slice of the action log of the mintette at the given index",
			Action: mintetteLogsAction,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "index",
					Usage:    "index of the mintette in the current roster",
					Required: true,
				},
				&cli.IntFlag{
					Name:  "from",
					Usage: "first log entry to fetch",
				},
				&cli.IntFlag{
					Name:     "to",
					Usage:    "one past the last log entry to fetch",
					Required: true,
				},
			},
		},
	},
}

func mintettesAction(ctx *cli.Context) error {
	client, err := getBankClient(ctx)
	if err != nil {
		return err
	}

	resp, err := client.GetMintettes(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

func mintetteUtxoAction(ctx *cli.Context) error {
	client, err := getBankClient(ctx)
	if err != nil {
		return err
	}

	roster, err := client.GetMintettes(context.Background())
	if err != nil {
		return err
	}

	resp, err := comms.GetMintetteUtxo(
		context.Background(), getDialer(), roster, ctx.Int("index"),
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

func mintetteLogsAction(ctx *cli.Context) error {
	client, err := getBankClient(ctx)
	if err != nil {
		return err
	}

	roster, err := client.GetMintettes(context.Background())
	if err != nil {
		return err
	}

	resp, err := comms.GetMintetteLogs(
		context.Background(), getDialer(), roster,
		ctx.Int("index"), ctx.Int("from"), ctx.Int("to"),
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

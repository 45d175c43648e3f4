package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var blocks = cli.Command{
	Name:   "blocks",
	Usage:  "fetch a range of higher-level blocks from the bank",
	Action: blocksAction,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:     "from",
			Usage:    "height of the first block to fetch",
			Required: true,
		},
		&cli.IntFlag{
			Name:     "to",
			Usage:    "height of the last block to fetch",
			Required: true,
		},
	},
}

func blocksAction(ctx *cli.Context) error {
	from := ctx.Int("from")
	to := ctx.Int("to")
	if from > to {
		return &invalidUsageError{ctx, "blocks"}
	}

	client, err := getBankClient(ctx)
	if err != nil {
		return err
	}

	resp, err := client.GetBlocks(context.Background(), from, to)
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/mintex-network/mintex-daemon/internal/comms"
	"github.com/mintex-network/mintex-daemon/internal/domain/transaction"
)

var tx = cli.Command{
	Name:   "tx",
	Usage:  "look up a transaction by its id on any active explorer",
	Action: txAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "hex encoded transaction id",
			Required: true,
		},
	},
}

func txAction(ctx *cli.Context) error {
	var id transaction.ID
	if err := id.UnmarshalText([]byte(ctx.String("id"))); err != nil {
		return err
	}

	client, err := getBankClient(ctx)
	if err != nil {
		return err
	}

	roster, err := client.GetExplorers(context.Background())
	if err != nil {
		return err
	}

	resp, err := comms.GetTransactionFromAny(
		context.Background(), getDialer(), roster, id,
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

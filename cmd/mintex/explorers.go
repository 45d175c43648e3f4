package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var explorers = cli.Command{
	Name:   "explorers",
	Usage:  "list the explorers known to the bank",
	Action: explorersAction,
}

func explorersAction(ctx *cli.Context) error {
	client, err := getBankClient(ctx)
	if err != nil {
		return err
	}

	resp, err := client.GetExplorers(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

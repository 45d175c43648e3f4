package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var addresses = cli.Command{
	Name:   "addresses",
	Usage:  "list all known addresses with their signing strategies",
	Action: addressesAction,
}

func addressesAction(ctx *cli.Context) error {
	client, err := getBankClient(ctx)
	if err != nil {
		return err
	}

	resp, err := client.GetAddresses(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

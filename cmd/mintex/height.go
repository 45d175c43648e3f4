package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var height = cli.Command{
	Name:   "height",
	Usage:  "print the current blockchain height reported by the bank",
	Action: heightAction,
}

func heightAction(ctx *cli.Context) error {
	client, err := getBankClient(ctx)
	if err != nil {
		return err
	}

	h, err := client.GetBlockchainHeight(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(h)

	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var notaryperiod = cli.Command{
	Name:   "notary-period",
	Usage:  "print the period the notary is currently in",
	Action: notaryPeriodAction,
}

func notaryPeriodAction(ctx *cli.Context) error {
	client, err := getNotaryClient(ctx)
	if err != nil {
		return err
	}

	period, err := client.GetNotaryPeriod(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(period)

	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mintex-network/mintex-daemon/internal/domain/address"
	"github.com/mintex-network/mintex-daemon/internal/domain/strategy"
)

var pending = cli.Command{
	Name:   "pending",
	Usage:  "list the not yet complete multisig allocations of a party",
	Action: pendingAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "party",
			Usage:    "hex encoded address of the party",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "trust",
			Usage: "the party is a trusted one",
		},
		&cli.StringFlag{
			Name:  "hot",
			Usage: "hex encoded hot public key, required for trusted parties",
		},
	},
}

func pendingAction(ctx *cli.Context) error {
	addr, err := address.Parse(ctx.String("party"))
	if err != nil {
		return err
	}

	var party strategy.PartyAddress
	if ctx.Bool("trust") {
		hot := ctx.String("hot")
		if hot == "" {
			return fmt.Errorf("trusted parties require a --hot key")
		}
		party = strategy.TrustParty(addr, hot)
	} else {
		party = strategy.UserParty(addr)
	}

	client, err := getNotaryClient(ctx)
	if err != nil {
		return err
	}

	resp, err := client.QueryMyMSAllocations(context.Background(), party)
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

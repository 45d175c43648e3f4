package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

var (
	bankRPCFlag = cli.StringFlag{
		Name:  "bank_rpc",
		Usage: "bank RPC endpoint url",
		Value: "http://localhost:9091",
	}

	notaryRPCFlag = cli.StringFlag{
		Name:  "notary_rpc",
		Usage: "notary RPC endpoint url",
		Value: "http://localhost:9092",
	}

	bankPubkeyFlag = cli.StringFlag{
		Name:  "bank_pubkey",
		Usage: "hex encoded bank authority public key",
		Value: "",
	}

	notaryPubkeyFlag = cli.StringFlag{
		Name:  "notary_pubkey",
		Usage: "hex encoded notary authority public key",
		Value: "",
	}
)

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the mintex CLI",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "set",
			Usage:  "set a <key> <value> in the local state",
			Action: configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&bankRPCFlag,
				&notaryRPCFlag,
				&bankPubkeyFlag,
				&notaryPubkeyFlag,
			},
		},
	},
}

func configAction(ctx *cli.Context) error {

	state, err := getState()
	if err != nil {
		return err
	}

	for key, value := range state {
		fmt.Println(key + ": " + value)
	}

	return nil
}

func configInitAction(c *cli.Context) error {
	err := setState(map[string]string{
		"bank_rpc":      c.String("bank_rpc"),
		"notary_rpc":    c.String("notary_rpc"),
		"bank_pubkey":   c.String("bank_pubkey"),
		"notary_pubkey": c.String("notary_pubkey"),
	})

	if err != nil {
		return err
	}

	return nil
}

func configSetAction(c *cli.Context) error {

	if c.NArg() < 2 {
		return errors.New("key and value are missing")
	}

	key := c.Args().Get(0)
	value := c.Args().Get(1)

	err := setState(map[string]string{key: value})
	if err != nil {
		return err
	}

	fmt.Printf("%s %s has been set\n", key, value)

	return nil
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/btcsuite/btcd/btcec/v2"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/mintex-network/mintex-daemon/config"
	"github.com/mintex-network/mintex-daemon/internal/comms"
	"github.com/mintex-network/mintex-daemon/pkg/crypto"
	"github.com/mintex-network/mintex-daemon/pkg/rpc"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	app := cli.NewApp()

	app.Version = "0.0.1" //TODO use goreleaser for setting version
	app.Name = "mintex operator CLI"
	app.Usage = "Command line interface for mintex network operators"
	app.Commands = append(
		app.Commands,
		&configCmd,
		&height,
		&blocks,
		&mintettes,
		&explorers,
		&addresses,
		&tx,
		&notaryperiod,
		&pending,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := ioutil.ReadFile(config.StatePath())
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	json.Unmarshal(file, &data)

	return data, nil
}

func setState(data map[string]string) error {
	statePath := config.StatePath()

	file, err := os.OpenFile(statePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	err = file.Close()
	if err != nil {
		return err
	}

	currentData, err := getState()
	if err != nil {
		fmt.Println(err)
		return err
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	err = ioutil.WriteFile(statePath, jsonString, 0755)
	if err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to encode response: ", err)
		return
	}

	fmt.Println(string(jsonStr))
}

// stateOrConfig resolves an endpoint or key from the local state file,
// falling back to the environment-driven config.
func stateOrConfig(stateKey string, fallback func() string) string {
	state, err := getState()
	if err == nil {
		if v, ok := state[stateKey]; ok && v != "" {
			return v
		}
	}
	return fallback()
}

func newCaller(endpoint string) rpc.Caller {
	return rpc.NewClient(endpoint, config.GetDuration(config.RequestTimeoutKey))
}

func getDialer() comms.Dialer {
	return comms.NewHTTPDialer(config.GetDuration(config.RequestTimeoutKey))
}

func getBankClient(ctx *cli.Context) (*comms.BankClient, error) {
	endpoint := stateOrConfig("bank_rpc", config.BankEndpoint)

	bankKey, err := getAuthorityKey("bank_pubkey", config.BankPublicKey)
	if err != nil {
		return nil, err
	}

	return comms.NewBankClient(newCaller(endpoint), bankKey), nil
}

func getNotaryClient(ctx *cli.Context) (*comms.NotaryClient, error) {
	endpoint := stateOrConfig("notary_rpc", config.NotaryEndpoint)

	notaryKey, err := getAuthorityKey("notary_pubkey", config.NotaryPublicKey)
	if err != nil {
		return nil, err
	}

	return comms.NewNotaryClient(newCaller(endpoint), notaryKey), nil
}

func getAuthorityKey(stateKey string, fallback func() (*btcec.PublicKey, error)) (*btcec.PublicKey, error) {
	state, err := getState()
	if err == nil {
		if raw, ok := state[stateKey]; ok && raw != "" {
			pub, err := crypto.ParsePublicKey(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %s in state: %w", stateKey, err)
			}
			return pub, nil
		}
	}
	return fallback()
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[mintex] %v\n", err)
	}
	os.Exit(1)
}

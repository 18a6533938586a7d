// Command lotteryctl is the operator tool for the lottery API: it creates
// keys and secrets, computes commitments and sends signed calls.
package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"charity-lottery-backend/internal/common/logger"
)

const defaultNetworksFile = "networks.toml"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "lotteryctl"
	app.Usage = "operate charity lottery rounds"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "log request details",
		},
	}
	app.Before = func(c *cli.Context) error {
		logger.InitWithWriter(os.Stderr, app.Name, c.GlobalBool("debug"), false)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:      "keygen",
			Usage:     "generate a secp256k1 key and print its account",
			ArgsUsage: "KEYFILE",
			Action:    keygen,
		},
		{
			Name:   "secret",
			Usage:  "print a fresh random value for a commitment",
			Action: secret,
		},
		{
			Name:  "commit",
			Usage: "print the commitment for a random value held by an account",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "secret, s", Usage: "random value, decimal or 0x hex"},
				cli.StringFlag{Name: "account, a", Usage: "account that will reveal the value"},
			},
			Action: commit,
		},
		{
			Name:      "call",
			Usage:     "send a signed API call",
			ArgsUsage: "METHOD PATH [BODY]",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "network, n", Value: "local", Usage: "network name from the networks file"},
				cli.StringFlag{Name: "networks", Value: defaultNetworksFile, Usage: "TOML file listing networks"},
				cli.StringFlag{Name: "key, k", Usage: "hex private key file of the caller"},
			},
			Action: call,
		},
	}
	return app
}

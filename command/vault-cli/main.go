// SPDX-License-Identifier: ISC
// Copyright (c) 2020-2026 Custodia Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/urfave/cli"

	"github.com/custodia-inc/vaultd/command/vault-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "vault-cli"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " identity `PASSWORD`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate key pair, will not store in config file",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "initialise vault-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, c",
					Value: "",
					Usage: "*vaultd host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " use an existing hex `SEED`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to config file, set it as default",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " use an existing hex `SEED`",
				},
				cli.StringFlag{
					Name:  "principal, P",
					Value: "",
					Usage: " receive-only identity from base58 `PRINCIPAL`",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "create-vault",
			Usage:     "create a new vault, prints the only copy of its capability",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "permissionless, P",
					Usage: " create a vault without an owner",
				},
			},
			Action: runCreateVault,
		},
		{
			Name:      "deposit",
			Usage:     "place an asset into a vault",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "vault, V",
					Value: "",
					Usage: "*vault id `VAULT`",
				},
				cli.StringFlag{
					Name:  "tag, t",
					Value: "",
					Usage: "*asset type tag `TAG`",
				},
				cli.StringFlag{
					Name:  "payload, d",
					Value: "",
					Usage: "*asset payload `DATA`",
				},
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: " read asset payload from `FILE` instead",
				},
				cli.StringFlag{
					Name:  "capability, k",
					Value: "",
					Usage: " owner capability `TOKEN` to bypass policy",
				},
			},
			Action: runDeposit,
		},
		{
			Name:      "policy",
			Usage:     "change the deposit policy of a vault",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "vault, V",
					Value: "",
					Usage: "*vault id `VAULT`",
				},
				cli.StringFlag{
					Name:  "capability, k",
					Value: "",
					Usage: "*owner capability `TOKEN`",
				},
				cli.StringFlag{
					Name:  "allow-all, A",
					Value: "",
					Usage: " set allow-all flag `true|false`",
				},
				cli.StringSliceFlag{
					Name:  "allow, a",
					Usage: " add allowed type `TAG` (repeatable)",
				},
				cli.StringSliceFlag{
					Name:  "disallow, x",
					Usage: " remove allowed type `TAG` (repeatable)",
				},
			},
			Action: runPolicy,
		},
		{
			Name:      "grant",
			Usage:     "list a principal on an asset",
			ArgsUsage: "\n   (* = required)",
			Flags:     authorizeFlags(true),
			Action:    runGrant,
		},
		{
			Name:      "revoke",
			Usage:     "remove a principal from an asset listing",
			ArgsUsage: "\n   (* = required)",
			Flags:     authorizeFlags(false),
			Action:    runRevoke,
		},
		{
			Name:      "release",
			Usage:     "free an exclusive lock held by the current identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "vault, V",
					Value: "",
					Usage: "*vault id `VAULT`",
				},
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset id `ASSET`",
				},
			},
			Action: runRelease,
		},
		{
			Name:      "clear",
			Usage:     "empty an asset listing",
			ArgsUsage: "\n   (* = required)",
			Flags:     authorizeFlags(false),
			Action:    runClear,
		},
		{
			Name:      "withdraw",
			Usage:     "take an asset out of custody",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "vault, V",
					Value: "",
					Usage: "*vault id `VAULT`",
				},
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset id `ASSET`",
				},
				cli.StringFlag{
					Name:  "capability, k",
					Value: "",
					Usage: " owner capability `TOKEN`",
				},
				cli.StringFlag{
					Name:  "output, o",
					Value: "",
					Usage: " write the released payload to `FILE`",
				},
			},
			Action: runWithdraw,
		},
		{
			Name:      "transfer",
			Usage:     "move an asset between two vaults of the same owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "source, s",
					Value: "",
					Usage: "*source vault id `VAULT`",
				},
				cli.StringFlag{
					Name:  "target, t",
					Value: "",
					Usage: "*target vault id `VAULT`",
				},
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset id `ASSET`",
				},
				cli.StringFlag{
					Name:  "capability, k",
					Value: "",
					Usage: " owner capability `TOKEN`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "status",
			Usage:     "display the status of a vault and optionally an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "vault, V",
					Value: "",
					Usage: "*vault id `VAULT`",
				},
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: " asset id `ASSET`",
				},
				cli.StringFlag{
					Name:  "tag, t",
					Value: "",
					Usage: " check if this type `TAG` can be deposited",
				},
			},
			Action: runStatus,
		},
		{
			Name:      "fund",
			Usage:     "add spendable funds to the current identity",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*amount to deposit `NUMBER`",
				},
			},
			Action: runFund,
		},
		{
			Name:   "balance",
			Usage:  "display balance of the current identity",
			Action: runBalance,
		},
		{
			Name:      "bid",
			Usage:     "escrow a bid for an asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset id `ASSET`",
				},
				cli.StringFlag{
					Name:  "vault, V",
					Value: "",
					Usage: "*target vault id `VAULT`",
				},
				cli.Uint64Flag{
					Name:  "price, p",
					Value: 0,
					Usage: "*offered price `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "commission, c",
					Value: 0,
					Usage: " buy-side commission `NUMBER`",
				},
				cli.StringFlag{
					Name:  "beneficiary, b",
					Value: "",
					Usage: " identity or principal receiving the commission `ACCOUNT`",
				},
			},
			Action: runBid,
		},
		{
			Name:      "cancel",
			Usage:     "cancel a bid and release its escrow",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "bid, b",
					Value: "",
					Usage: "*bid id `BID`",
				},
			},
			Action: runCancel,
		},
		{
			Name:      "match",
			Usage:     "settle a bid using the seller's vault capability",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "bid, b",
					Value: "",
					Usage: "*bid id `BID`",
				},
				cli.StringFlag{
					Name:  "capability, k",
					Value: "",
					Usage: "*seller vault capability `TOKEN`",
				},
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset id `ASSET`",
				},
				cli.StringFlag{
					Name:  "seller, s",
					Value: "",
					Usage: "*seller vault id `VAULT`",
				},
				cli.StringFlag{
					Name:  "buyer, B",
					Value: "",
					Usage: "*buyer vault id `VAULT`",
				},
				cli.Uint64Flag{
					Name:  "commission, c",
					Value: 0,
					Usage: " sell-side commission `NUMBER`",
				},
				cli.StringFlag{
					Name:  "beneficiary, y",
					Value: "",
					Usage: " identity or principal receiving the commission `ACCOUNT`",
				},
			},
			Action: runMatch,
		},
		{
			Name:      "trade",
			Usage:     "display the status of a bid",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "bid, b",
					Value: "",
					Usage: "*bid id `BID`",
				},
			},
			Action: runTrade,
		},
		{
			Name:   "recent",
			Usage:  "list recently settled trades",
			Action: runRecent,
		},
		{
			Name:   "info",
			Usage:  "display vault-cli status",
			Action: runInfo,
		},
		{
			Name:   "nodeinfo",
			Usage:  "display vaultd status",
			Action: runNodeInfo,
		},
		{
			Name:  "version",
			Usage: "display vault-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file for certain commands
		command := c.Args().Get(0)
		if "version" == command || "generate" == command {
			return nil
		}

		p := os.Getenv("XDG_CONFIG_HOME")
		if "" == p {
			return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
		dir, err := checkFileExists(p)
		if nil != err {
			return err
		}
		if !dir {
			return fmt.Errorf("not a directory: %q", p)
		}
		file := path.Join(p, app.Name, app.Name+".json")

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				save:    false,
				verbose: verbose,
				e:       e,
				w:       w,
			}

		} else {

			if verbose {
				fmt.Fprintf(e, "reading config file: %s\n", file)
			}

			conf, err := configuration.Load(file)
			if nil != err {
				return err
			}

			c.App.Metadata["config"] = &metadata{
				file:    file,
				config:  conf,
				save:    false,
				verbose: verbose,
				e:       e,
				w:       w,
			}
		}

		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		e := c.App.ErrWriter
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if m.save {
			if c.GlobalBool("verbose") {
				fmt.Fprintf(e, "updating config file: %s\n", m.file)
			}
			err := configuration.Save(m.file, m.config)
			if nil != err {
				return err
			}
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// shared flag set for the listing commands
func authorizeFlags(withExclusive bool) []cli.Flag {
	flags := []cli.Flag{
		cli.StringFlag{
			Name:  "vault, V",
			Value: "",
			Usage: "*vault id `VAULT`",
		},
		cli.StringFlag{
			Name:  "asset, a",
			Value: "",
			Usage: "*asset id `ASSET`",
		},
		cli.StringFlag{
			Name:  "receiver, r",
			Value: "",
			Usage: " identity or principal to act on `ACCOUNT`",
		},
		cli.StringFlag{
			Name:  "capability, k",
			Value: "",
			Usage: " owner capability `TOKEN`",
		},
	}
	if withExclusive {
		flags = append(flags, cli.BoolFlag{
			Name:  "exclusive, e",
			Usage: " lock the listing to this single principal",
		})
	}
	return flags
}

package main

import (
	"github.com/urfave/cli"
)

var (
	filePathPlaceholder = "[path]"
	// configurationFile defines a flag for the path to the main toml configuration file
	configurationFile = cli.StringFlag{
		Name: "config",
		Usage: "The `" + filePathPlaceholder + "` for the main configuration file. This TOML file contains the " +
			"gateway, wallet, retry and polling settings.",
		Value: "./config/config.toml",
	}
	// logLevel defines the logger level
	logLevel = cli.StringFlag{
		Name: "log-level",
		Usage: "This flag specifies the logger `level(s)`. It can contain multiple comma-separated value. For example" +
			", if set to *:INFO the logs for all packages will have the INFO level. However, if set to *:INFO,network:DEBUG" +
			" the logs for all packages will have the INFO level, excepting the network package which will receive a DEBUG" +
			" log level. When empty, the level from the configuration file is used.",
		Value: "",
	}
	// pemFile overrides the wallet PEM file from the configuration
	pemFile = cli.StringFlag{
		Name:  "pem",
		Usage: "The `" + filePathPlaceholder + "` for the PEM file holding the signing key. Overrides the configuration value.",
		Value: "",
	}
	// contractAddress defines the bech32 address of the called contract
	contractAddress = cli.StringFlag{
		Name:  "address",
		Usage: "The bech32 `address` of the smart contract",
	}
	// function defines the called endpoint or view
	function = cli.StringFlag{
		Name:  "function",
		Usage: "The `name` of the smart contract endpoint or view",
	}
	// arguments defines the hex encoded arguments
	arguments = cli.StringSliceFlag{
		Name:  "arg",
		Usage: "A hex encoded `argument`. Can be repeated, arguments are passed in the provided order.",
	}
	// gasLimit defines the gas limit of transactions and deployments
	gasLimit = cli.Uint64Flag{
		Name:  "gas-limit",
		Usage: "The gas `limit` of the transaction",
		Value: 10_000_000,
	}
	// value defines the EGLD value attached to transactions and deployments
	value = cli.StringFlag{
		Name:  "value",
		Usage: "The EGLD `value`, in denominated units, attached to the transaction",
		Value: "0",
	}
	// codeFile defines the path to the wasm file to be deployed
	codeFile = cli.StringFlag{
		Name:  "code",
		Usage: "The `" + filePathPlaceholder + "` for the wasm file to deploy",
	}
	// upgradeable marks the deployed contract as upgradeable
	upgradeable = cli.BoolTFlag{
		Name:  "upgradeable",
		Usage: "Boolean option for marking the deployed contract as upgradeable. Defaults to true.",
	}
	// readable marks the deployed contract as readable by other contracts
	readable = cli.BoolFlag{
		Name:  "readable",
		Usage: "Boolean option for marking the deployed contract storage as readable by other contracts",
	}
	// payable marks the deployed contract as payable
	payable = cli.BoolFlag{
		Name:  "payable",
		Usage: "Boolean option for marking the deployed contract as payable",
	}
	// outputPemFile defines the path of the PEM file written by the new-wallet command
	outputPemFile = cli.StringFlag{
		Name:  "out",
		Usage: "The `" + filePathPlaceholder + "` for the generated PEM file. An existing file is never overwritten.",
		Value: "./wallet.pem",
	}
	// payableBySC marks the deployed contract as payable by other contracts
	payableBySC = cli.BoolFlag{
		Name:  "payable-by-sc",
		Usage: "Boolean option for marking the deployed contract as payable by smart contracts",
	}
)

func getGlobalFlags() []cli.Flag {
	return []cli.Flag{
		configurationFile,
		logLevel,
		pemFile,
	}
}

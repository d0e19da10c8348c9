package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/multiversx/mx-chain-core-go/core/pubkeyConverter"
	"github.com/multiversx/mx-chain-executor-go/abiCodec"
	"github.com/multiversx/mx-chain-executor-go/config"
	"github.com/multiversx/mx-chain-executor-go/data"
	"github.com/multiversx/mx-chain-executor-go/executor"
	"github.com/multiversx/mx-chain-executor-go/factory"
	"github.com/multiversx/mx-chain-executor-go/wallet"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

const (
	defaultLogLevel = "*:INFO"
	addressHRP      = "erd"
)

var (
	helpTemplate = `NAME:
   {{.Name}} - {{.Usage}}
USAGE:
   {{.HelpName}} {{if .VisibleFlags}}[global options]{{end}} command [command options]
   {{if len .Authors}}
AUTHOR:
   {{range .Authors}}{{ . }}{{end}}
   {{end}}{{if .Commands}}
COMMANDS:
{{range .Commands}}{{if not .HideHelp}}   {{join .Names ", "}}{{ "\t"}}{{.Usage}}{{ "\n" }}{{end}}{{end}}{{end}}{{if .VisibleFlags}}
GLOBAL OPTIONS:
   {{range .VisibleFlags}}{{.}}
   {{end}}{{end}}
VERSION:
   {{.Version}}
   {{ "\n"}}
`
	log = logger.GetOrCreate("main")
)

func main() {
	_ = logger.SetDisplayByteSlice(logger.ToHexShort)

	app := cli.NewApp()
	cli.AppHelpTemplate = helpTemplate
	app.Name = "MultiversX smart contract executor"
	app.Version = "v1.0.0"
	app.Usage = "This tool runs queries, calls and deployments of smart contracts through a MultiversX gateway"
	app.Flags = getGlobalFlags()
	app.Commands = []cli.Command{
		{
			Name:   "query",
			Usage:  "runs a read-only query of a smart contract view",
			Flags:  []cli.Flag{contractAddress, function, arguments},
			Action: queryAction,
		},
		{
			Name:   "call",
			Usage:  "signs and sends a smart contract call, waiting for its outcome",
			Flags:  []cli.Flag{contractAddress, function, arguments, gasLimit, value},
			Action: callAction,
		},
		{
			Name:   "deploy",
			Usage:  "signs and sends a contract deployment, printing the new contract address",
			Flags:  []cli.Flag{codeFile, arguments, gasLimit, value, upgradeable, readable, payable, payableBySC},
			Action: deployAction,
		},
		{
			Name:   "new-wallet",
			Usage:  "generates a new signing key and saves it in a PEM file",
			Flags:  []cli.Flag{outputPemFile},
			Action: newWalletAction,
		},
	}
	app.Authors = []cli.Author{
		{
			Name:  "The MultiversX Team",
			Email: "contact@multiversx.com",
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func queryAction(c *cli.Context) error {
	components, err := createQueryComponents(c)
	if err != nil {
		return err
	}

	address, err := components.PubkeyConverter.Decode(c.String(contractAddress.Name))
	if err != nil {
		return errors.Wrap(err, "invalid contract address")
	}
	args, err := decodeArguments(c.StringSlice(arguments.Name))
	if err != nil {
		return err
	}

	ctx, cancel := createContext()
	defer cancel()

	request := data.NewQueryRequest(address, c.String(function.Name), args...)
	returnData, err := executor.Query(ctx, components.Executor, request, abiCodec.RawDecoder())
	if err != nil {
		return err
	}

	printReturnData(returnData)

	return nil
}

func callAction(c *cli.Context) error {
	components, err := createComponents(c)
	if err != nil {
		return err
	}

	receiver, err := components.PubkeyConverter.Decode(c.String(contractAddress.Name))
	if err != nil {
		return errors.Wrap(err, "invalid contract address")
	}
	args, err := decodeArguments(c.StringSlice(arguments.Name))
	if err != nil {
		return err
	}
	callValue, err := parseValue(c.String(value.Name))
	if err != nil {
		return err
	}

	ctx, cancel := createContext()
	defer cancel()

	request := data.NewTransactionRequest(receiver, c.String(function.Name), c.Uint64(gasLimit.Name), callValue, nil, args...)
	returnData, outcome, err := executor.Execute(ctx, components.Executor, request, abiCodec.RawDecoder())
	if outcome != nil {
		fmt.Printf("transaction hash: %s\nstatus: %s\n", outcome.Hash, outcome.Status)
	}
	if err != nil {
		return err
	}

	printReturnData(returnData)

	return nil
}

func deployAction(c *cli.Context) error {
	components, err := createComponents(c)
	if err != nil {
		return err
	}

	code, err := os.ReadFile(c.String(codeFile.Name))
	if err != nil {
		return errors.Wrap(err, "reading contract code")
	}
	args, err := decodeArguments(c.StringSlice(arguments.Name))
	if err != nil {
		return err
	}
	deployValue, err := parseValue(c.String(value.Name))
	if err != nil {
		return err
	}

	metadata := data.CodeMetadata{
		Upgradeable: c.BoolT(upgradeable.Name),
		Readable:    c.Bool(readable.Name),
		Payable:     c.Bool(payable.Name),
		PayableBySC: c.Bool(payableBySC.Name),
	}

	ctx, cancel := createContext()
	defer cancel()

	request := data.NewDeployRequest(code, metadata, c.Uint64(gasLimit.Name), deployValue, args...)
	address, returnData, err := executor.Deploy(ctx, components.Executor, request, abiCodec.RawDecoder())
	if err != nil {
		return err
	}

	bech32Address, err := components.PubkeyConverter.Encode(address)
	if err != nil {
		return err
	}
	fmt.Printf("contract address: %s\n", bech32Address)
	printReturnData(returnData)

	return nil
}

func newWalletAction(c *cli.Context) error {
	w, err := wallet.GenerateWallet()
	if err != nil {
		return err
	}

	converter, err := pubkeyConverter.NewBech32PubkeyConverter(data.AddressLen, addressHRP)
	if err != nil {
		return err
	}
	bech32Address, err := converter.Encode(w.Address())
	if err != nil {
		return err
	}

	pemPath := c.String(outputPemFile.Name)
	err = w.SaveToPemFile(pemPath, bech32Address)
	if err != nil {
		return err
	}

	fmt.Println("File generated successfully.")
	fmt.Printf("\taddress:\t%s\n", bech32Address)
	fmt.Printf("\tpem file:\t%s\n", pemPath)

	return nil
}

func createQueryComponents(c *cli.Context) (*factory.QueryComponents, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	executorFactory, err := factory.NewExecutorFactory(factory.ExecutorFactoryArgs{
		Config: cfg,
	})
	if err != nil {
		return nil, err
	}

	return executorFactory.CreateQueryComponents()
}

func createComponents(c *cli.Context) (*factory.ExecutorComponents, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	pemPath := cfg.Wallet.PemFile
	if c.GlobalIsSet(pemFile.Name) {
		pemPath = c.GlobalString(pemFile.Name)
	}
	w, err := wallet.NewWalletFromPemFile(pemPath, cfg.Wallet.PemIndex)
	if err != nil {
		return nil, err
	}

	executorFactory, err := factory.NewExecutorFactory(factory.ExecutorFactoryArgs{
		Config: cfg,
		Wallet: w,
	})
	if err != nil {
		return nil, err
	}

	return executorFactory.Create()
}

func loadConfig(c *cli.Context) (*config.ExecutorConfig, error) {
	cfg, err := config.LoadExecutorConfig(c.GlobalString(configurationFile.Name))
	if err != nil {
		return nil, err
	}

	level := c.GlobalString(logLevel.Name)
	if len(level) == 0 {
		level = cfg.Logs.LogLevel
	}
	if len(level) == 0 {
		level = defaultLogLevel
	}
	err = logger.SetLogLevel(level)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func createContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func decodeArguments(hexArguments []string) ([][]byte, error) {
	args := make([][]byte, 0, len(hexArguments))
	for index, hexArgument := range hexArguments {
		arg, err := hex.DecodeString(hexArgument)
		if err != nil {
			return nil, fmt.Errorf("invalid argument at index %d: %w", index, err)
		}

		args = append(args, arg)
	}

	return args, nil
}

func parseValue(str string) (*big.Int, error) {
	result, ok := big.NewInt(0).SetString(str, 10)
	if !ok {
		return nil, fmt.Errorf("invalid value %q", str)
	}

	return result, nil
}

func printReturnData(returnData [][]byte) {
	for index, part := range returnData {
		fmt.Printf("return data %d: %s\n", index, hex.EncodeToString(part))
	}
}

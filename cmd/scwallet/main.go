package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bwtcert/scwallet/pkg/cli"
	"github.com/bwtcert/scwallet/types"
)

// scwalletInfo describes this wallet for logging and the version command.
// Its ChainVersion is the build's protocol version, build.Version.
var scwalletInfo = defaultBlockchainInfo()

func defaultBlockchainInfo() types.BlockchainInfo {
	info := types.DefaultBlockchainInfo()
	info.Name = "Sidechain Certificate Wallet"
	info.CoinUnit = "BWT"
	return info
}

func main() {
	cmds := new(commands)

	root := &cobra.Command{
		Use:   "scwallet",
		Short: "Sidechain backward-transfer certificate wallet",
		Long:  "scwallet tracks sidechain backward-transfer certificates and the wallet's own keys. Its commands load, list and erase tracked certificates and generate receiving addresses; none of them reports spendable or immature credit.",
		Args:  cobra.NoArgs,
	}
	root.PersistentFlags().StringVar(&cmds.persistDir, "persist-dir", "./scwallet-data", "directory holding the wallet's database and log")

	root.AddCommand(
		&cobra.Command{
			Use:   "load",
			Short: "Load the wallet's persisted certificate entries",
			Args:  cobra.NoArgs,
			Run:   cmds.loadCommand,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List every tracked certificate with its epoch, quality and ceased flag",
			Args:  cobra.NoArgs,
			Run:   cmds.listCommand,
		},
		&cobra.Command{
			Use:   "newaddress",
			Short: "Generate a new receiving address",
			Args:  cobra.NoArgs,
			Run:   cmds.newAddressCommand,
		},
		&cobra.Command{
			Use:   "zap",
			Short: "Erase all persisted certificate entries",
			Args:  cobra.NoArgs,
			Run:   cmds.zapCommand,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			Run:   cmds.versionCommand,
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cli.DieWithExitCode(cli.ExitCodeUsage, err)
	}
}

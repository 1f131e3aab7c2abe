package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/bwtcert/scwallet/modules"
	scwallet "github.com/bwtcert/scwallet/modules/wallet"
	"github.com/bwtcert/scwallet/pkg/cli"
)

type commands struct {
	persistDir string
}

func (cmds *commands) openWallet() *scwallet.Wallet {
	w, err := scwallet.New(cmds.persistDir, scwalletInfo)
	if err != nil {
		cli.DieWithError("failed to open wallet", err)
	}
	return w
}

func (cmds *commands) loadCommand(*cobra.Command, []string) {
	w := cmds.openWallet()
	defer w.Close()

	if status := w.LoadWallet(); status != modules.StatusOK {
		cli.DieWithExitCode(cli.ExitCodeGeneral, "load failed:", status)
	}
	fmt.Println("wallet loaded:", len(w.List()), "certificate(s) tracked")
}

func (cmds *commands) listCommand(*cobra.Command, []string) {
	w := cmds.openWallet()
	defer w.Close()

	if status := w.LoadWallet(); status != modules.StatusOK {
		cli.DieWithExitCode(cli.ExitCodeGeneral, "load failed:", status)
	}

	entries := w.List()
	if len(entries) == 0 {
		fmt.Println("no certificates tracked")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  epoch=%d  quality=%d  ceased=%v\n",
			e.Certificate.Hash(), e.Certificate.EpochNumber, e.Certificate.Quality, e.AreBwtCeased)
	}
}

func (cmds *commands) newAddressCommand(*cobra.Command, []string) {
	w := cmds.openWallet()
	defer w.Close()

	if status := w.LoadWallet(); status != modules.StatusOK {
		cli.DieWithExitCode(cli.ExitCodeGeneral, "load failed:", status)
	}

	addr, err := w.NewAddress()
	if err != nil {
		cli.DieWithError("failed to generate address", err)
	}
	fmt.Printf("%x\n", []byte(addr))
}

func (cmds *commands) zapCommand(*cobra.Command, []string) {
	w := cmds.openWallet()
	defer w.Close()

	if status := w.ZapWallet(); status != modules.StatusOK {
		cli.DieWithExitCode(cli.ExitCodeGeneral, "zap failed:", status)
	}
	fmt.Println("wallet data erased")
}

func (cmds *commands) versionCommand(*cobra.Command, []string) {
	fmt.Printf("%s v%s\n", scwalletInfo.Name, scwalletInfo.ChainVersion.String())
	fmt.Println()
	fmt.Printf("Go Version   v%s\n", runtime.Version()[2:])
	fmt.Printf("GOOS         %s\n", runtime.GOOS)
	fmt.Printf("GOARCH       %s\n", runtime.GOARCH)
}

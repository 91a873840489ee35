// Package main implements a NES program emulator
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/nesgoemu/internal/config"
	"github.com/retroenv/nesgoemu/internal/emulator"
	"github.com/retroenv/nesgoemu/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts := readArguments()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(opts)

	ctx := app.Context()

	emu := emulator.New(logger)
	if err := emu.Run(ctx, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func readArguments() options.Program {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.Program{}

	flags.BoolVar(&opts.Binary, "binary", false, "treat input as raw binary without iNES header")
	flags.BoolVar(&opts.Debug, "debug", false, "enable trace logging of executed instructions")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner(options.Program{})
		fmt.Printf("usage: nesgoemu [options] <file to run>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	opts.Input = args[0]

	return opts
}

func printBanner(opts options.Program) {
	if !opts.Quiet {
		fmt.Println("[---------------------------------]")
		fmt.Println("[ nesgoemu - NES program emulator ]")
		fmt.Printf("[---------------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}

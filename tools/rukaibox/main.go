package main

import (
	"fmt"
	"log"
	"os"

	"github.com/clktmr/rukaibox/tools/image"
	"github.com/clktmr/rukaibox/tools/inspect"
	"github.com/clktmr/rukaibox/tools/simulate"
	"github.com/spf13/pflag"
)

const usageString = `rukaibox is a tool for configuring rukaibox controllers.

Usage:

	%s <command> [arguments]

The commands are:

	image    convert a profile file to a flashable config image
	inspect  print the configuration stored in an image
	simulate run the firmware against a simulated console
`

func usage() {
	fmt.Fprintf(pflag.CommandLine.Output(), usageString, os.Args[0])
	pflag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	pflag.Usage = usage
	pflag.CommandLine.SetInterspersed(false)
	pflag.Parse()

	if pflag.NArg() < 1 {
		pflag.Usage()
		os.Exit(1)
	}

	switch pflag.Arg(0) {
	case "image":
		image.Main(pflag.Args())
	case "inspect":
		inspect.Main(pflag.Args())
	case "simulate":
		simulate.Main(pflag.Args())
	default:
		fmt.Fprintf(pflag.CommandLine.Output(), "unknown command: %s\n", pflag.Arg(0))
		pflag.Usage()
		os.Exit(1)
	}
}

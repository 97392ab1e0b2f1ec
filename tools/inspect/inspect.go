package inspect

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/clktmr/rukaibox/config"
	"github.com/clktmr/rukaibox/tools/uf2"
	"github.com/spf13/pflag"
)

const usageString = `Print the configuration stored in a config image.

Usage: %s [flags] <image>

The image is either the raw config region or a uf2 file.

`

var flags = pflag.NewFlagSet("inspect", pflag.ExitOnError)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "inspect")
	flags.PrintDefaults()
}

// Region extracts the config region from an image file.
func Region(data []byte) ([]byte, error) {
	if len(data) < uf2.BlockSize || !bytes.HasPrefix(data, []byte("UF2\n")) {
		return data, nil
	}

	blocks, err := uf2.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	region := bytes.Repeat([]byte{0xff}, config.RegionSize)
	base := uint32(config.FlashBase + config.RegionOffset)
	for _, b := range blocks {
		if b.Addr < base || b.Addr >= base+config.RegionSize {
			continue
		}
		copy(region[b.Addr-base:], b.Data)
	}
	return region, nil
}

// Print writes a human readable description of c.
func Print(w io.Writer, c *config.Config) {
	fmt.Fprintf(w, "version %d\n", c.Version)
	for i, p := range c.Profiles {
		combo := make([]string, len(p.Activation))
		for j, b := range p.Activation {
			combo[j] = b.String()
		}
		fmt.Fprintf(w, "profile %d: %v, %v", i, p.Logic, p.Socd)
		if len(combo) > 0 {
			fmt.Fprintf(w, ", activated by %s", strings.Join(combo, " + "))
		}
		fmt.Fprintln(w)
		for l, b := range p.Buttons {
			if b == config.None {
				continue
			}
			fmt.Fprintf(w, "\t%-12v %v", config.LogicalButton(l), b)
			if !p.Logic.Honors(config.LogicalButton(l)) {
				fmt.Fprintf(w, " (ignored by %v)", p.Logic)
			}
			fmt.Fprintln(w)
		}
	}
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() != 1 {
		flags.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(flags.Arg(0))
	if err != nil {
		log.Fatalln(err)
	}
	region, err := Region(data)
	if err != nil {
		log.Fatalln(err)
	}
	c, err := config.Read(bytes.NewReader(region))
	if err != nil {
		log.Fatalln(err)
	}
	Print(os.Stdout, c)
}

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/Fepozopo/histeq/pkg/cli"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("histeq: ")
	if err := cli.Run(os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// main is the entry point for the cmlink command line utility. It is kept
// separate from the *cli.App definition so application() can be driven
// directly from tests with a spoofed writer.
func main() {
	run(os.Args)
}

func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

// application defines the cmlink CLI: the "compare" subcommand runs the
// joint two-model dynamic program; "fetch" downloads Rfam covariance model
// files from an HTML directory listing.
func application() *cli.App {
	return &cli.App{
		Name:  "cmlink",
		Usage: "Compare two Covariance Models and report their Link score and Link sequence.",

		Commands: []*cli.Command{
			{
				Name:      "compare",
				Aliases:   []string{"cmp"},
				Usage:     "Compare two CM files and print their Link score.",
				ArgsUsage: "<model1> <model2>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mode",
						Value: "score",
						Usage: "Algebra selector: score, rna, bracket, nodes, extended, or a \"+\"-joined combination.",
					},
					&cli.BoolFlag{
						Name:  "fast-ins",
						Usage: "Forbid any single-sided insert self-loop, not only the simultaneous double self-loop.",
					},
					&cli.BoolFlag{
						Name:  "hash",
						Usage: "Attach a model/sequence fingerprint to the output line (the extended table does not print it).",
					},
				},
				Action: func(c *cli.Context) error {
					return compareCommand(c)
				},
			},
			{
				Name:      "fetch",
				Usage:     "Download .cm.gz files from an Rfam-style HTML directory listing.",
				ArgsUsage: "<directory-url> <dest-dir>",
				Action: func(c *cli.Context) error {
					return fetchCommand(c)
				},
			},
		},
	}
}

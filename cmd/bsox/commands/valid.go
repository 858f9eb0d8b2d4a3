package commands

import (
	"fmt"

	"github.com/chaisql/bsox"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// NewValidCommand returns a cli.Command for "bsox valid".
func NewValidCommand() *cli.Command {
	return &cli.Command{
		Name:      "valid",
		Usage:     "Check that a file contains a well-formed BSON document",
		UsageText: "bsox valid [file]",
		Action: func(c *cli.Context) error {
			data, err := readInput(c)
			if err != nil {
				return err
			}

			if !bsox.Valid(data) {
				return errors.New("invalid document")
			}

			fmt.Println("valid")
			return nil
		},
	}
}

// NewConvertCommand returns a cli.Command for "bsox convert".
func NewConvertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert JSON to BSON, or back with --json",
		UsageText: "bsox convert [options] [file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "treat the input as BSON and render it as JSON",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the result to `FILE` instead of standard output",
			},
		},
		Action: func(c *cli.Context) error {
			data, err := readInput(c)
			if err != nil {
				return err
			}

			var out []byte
			if c.Bool("json") {
				out, err = bsox.ToJSON(data)
				if err == nil {
					out = append(out, '\n')
				}
			} else {
				out, err = bsox.FromJSON(data)
			}
			if err != nil {
				return err
			}

			return writeOutput(c, out)
		},
	}
}

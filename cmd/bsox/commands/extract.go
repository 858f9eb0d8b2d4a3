package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/chaisql/bsox"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// NewExtractCommand returns a cli.Command for "bsox extract".
func NewExtractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract the value at a path from a BSON document",
		UsageText: "bsox extract [options] path [file]",
		Description: `Extracts the container at the given path and prints it as JSON,
or as raw BSON with --raw. String elements print their text.

   Examples: bsox extract '$.user' doc.bson
             bsox extract '$.user.langs[0]' doc.bson`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "print the extracted container as raw BSON bytes",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the result to `FILE` instead of standard output",
			},
		},
		Action: func(c *cli.Context) error {
			pathArg := c.Args().First()
			if pathArg == "" {
				return errors.New("missing path argument")
			}

			p, err := bsox.ParsePath(pathArg)
			if err != nil {
				return err
			}

			data, err := readSecondArg(c)
			if err != nil {
				return err
			}

			// strings are the common scalar extraction; everything else
			// must be a container
			if s, ok := bsox.ExtractString(data, p); ok {
				fmt.Println(s)
				return nil
			}

			sub, ok := bsox.Extract(data, p)
			if !ok {
				return errors.Newf("path %s not found", p)
			}

			if c.Bool("raw") {
				return writeOutput(c, sub)
			}

			out, err := bsox.ToJSON(sub)
			if err != nil {
				return err
			}

			fmt.Println(string(out))
			return nil
		},
	}
}

// NewTypeCommand returns a cli.Command for "bsox type".
func NewTypeCommand() *cli.Command {
	return &cli.Command{
		Name:      "type",
		Usage:     "Print the type name of the element at a path",
		UsageText: "bsox type path [file]",
		Action: func(c *cli.Context) error {
			pathArg := c.Args().First()
			if pathArg == "" {
				return errors.New("missing path argument")
			}

			p, err := bsox.ParsePath(pathArg)
			if err != nil {
				return err
			}

			data, err := readSecondArg(c)
			if err != nil {
				return err
			}

			name, ok := bsox.TypeOf(data, p)
			if !ok {
				return errors.Newf("path %s not found", p)
			}

			fmt.Println(name)
			return nil
		},
	}
}

// readSecondArg is like readInput but skips the path argument.
func readSecondArg(c *cli.Context) ([]byte, error) {
	if path := c.Args().Get(1); path != "" {
		return os.ReadFile(path)
	}

	return io.ReadAll(os.Stdin)
}

func writeOutput(c *cli.Context, out []byte) error {
	if path := c.String("output"); path != "" {
		return os.WriteFile(path, out, 0644)
	}

	_, err := os.Stdout.Write(out)
	return err
}

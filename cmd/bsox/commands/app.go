package commands

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// NewApp creates the bsox CLI app.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bsox"
	app.Usage = "Validate, inspect and build BSON documents"
	app.EnableBashCompletion = true

	app.Commands = []*cli.Command{
		NewValidCommand(),
		NewConvertCommand(),
		NewExtractCommand(),
		NewTypeCommand(),
	}

	return app
}

// readInput returns the contents of the file named by the first
// argument, or standard input when no argument is given.
func readInput(c *cli.Context) ([]byte, error) {
	if path := c.Args().First(); path != "" {
		return os.ReadFile(path)
	}

	return io.ReadAll(os.Stdin)
}

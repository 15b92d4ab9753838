package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	serime "github.com/Agapurnis/serime"
)

type cli struct {
	Encode encodeCmd `cmd:"" help:"Convert a JSON document to Serime text."`
	Decode decodeCmd `cmd:"" help:"Convert Serime text to a JSON document."`
}

type encodeCmd struct {
	Input string `arg:"" optional:"" default:"-" help:"Input file, or - for stdin."`
}

type decodeCmd struct {
	Input string `arg:"" optional:"" default:"-" help:"Input file, or - for stdin."`
}

func main() {
	log.SetFlags(0)

	var args cli
	ctx := kong.Parse(&args,
		kong.Name("serime"),
		kong.Description("Convert between JSON and the Serime serialization format."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		log.Fatal(err)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func (c *encodeCmd) Run() error {
	data, err := readInput(c.Input)
	if err != nil {
		return err
	}
	value, err := serime.FromJSON(data)
	if err != nil {
		return err
	}
	out, err := serime.Serialize(value)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func (c *decodeCmd) Run() error {
	data, err := readInput(c.Input)
	if err != nil {
		return err
	}
	value, err := serime.Deserialize(strings.TrimSpace(string(data)))
	if err != nil {
		return err
	}
	out, err := serime.ToJSON(value)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

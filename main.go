package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mcncl/dynomarshal/internal/config"
	"github.com/mcncl/dynomarshal/internal/errors"
	"github.com/mcncl/dynomarshal/internal/formatter"
	"github.com/mcncl/dynomarshal/internal/marshaler"
	"github.com/mcncl/dynomarshal/internal/models"
	"github.com/mcncl/dynomarshal/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	MaxNesting  int    `help:"Maximum nesting levels per top-level attribute (1-10). Overrides the config file." short:"n"`
	Pretty      bool   `help:"Indent the marshalled item." short:"p"`
	Levels      bool   `help:"Print the per-attribute nesting level report to stderr." short:"l"`
	Config      string `help:"Path to a config file. Defaults to searching for .dynomarshal.yml." short:"c" type:"path"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	cliParser := kong.Must(&CLI,
		kong.Name("dynomarshal"),
		kong.Description("A tool to convert JSON documents to DynamoDB marshalled items"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	// Parse the command line arguments
	if _, err := cliParser.Parse(os.Args[1:]); err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("dynomarshal version %s\n", Version)
		return
	}

	cfg, err := config.LoadOrDefault(CLI.Config)
	if err == nil {
		err = run(&Context{Config: cfg})
	}
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: dynomarshal --help\n")

		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Parse JSON input
	doc, err := parseInput()
	if err != nil {
		// Error is already wrapped by parseInput
		return err
	}

	// 2. Marshal the document
	opts := marshaler.Options{MaxNestingLevels: ctx.Config.MaxNestingLevels}
	if CLI.MaxNesting != 0 {
		opts.MaxNestingLevels = CLI.MaxNesting
	}
	result, err := marshaler.Marshal(doc, opts)
	if err != nil {
		return err
	}

	// 3. Render the item
	formatterInst := formatter.NewFormatter()
	pretty := CLI.Pretty || ctx.Config.Output.Pretty
	rendered, err := formatterInst.FormatItem(result.Item, pretty)
	if err != nil {
		return errors.NewOutputError("failed to render marshalled item", err)
	}

	// 4. Output the result
	if err := writeOutput(rendered); err != nil {
		return err
	}

	// 5. Nesting level report, if requested
	if CLI.Levels || ctx.Config.Output.ShowLevels {
		fmt.Fprint(os.Stderr, formatterInst.FormatLevels(result.AttributeLevels))
	}
	return nil
}

// parseInput reads JSON from file or stdin
func parseInput() (*models.Document, error) {
	if CLI.Input != "" {
		// Parse from file
		return parser.ParseFile(CLI.Input)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			// Interactive mode
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(jsonData))
}

// writeOutput writes the rendered item to file or stdout
func writeOutput(rendered string) error {
	if CLI.Output != "" {
		// Write to file
		err := os.WriteFile(CLI.Output, []byte(rendered+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Marshalled item written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Println(strings.TrimSpace(rendered))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (*models.Document, error) {
	fmt.Fprintln(os.Stderr, "Dynomarshal Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			// End of input
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
		jsonBuilder.WriteString(line)
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return nil, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return parser.ParseString(jsonData)
}

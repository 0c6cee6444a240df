// Browse99 converts web pages to 99ML, the positioned-text markup for the
// TI-99/4A's 40x24 screen, and previews 99ML documents in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"browse99/config"
	"browse99/converter"
	"browse99/fetcher"
	"browse99/render"
	"browse99/server"
	"browse99/simulator"
	"browse99/viewer"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	src := ""
	if len(args) > 0 {
		src = args[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch cmd {
	case "serve":
		err = runServe(ctx)
	case "convert":
		err = runConvert(ctx, src)
	case "print", "-p", "--print":
		err = runPrint(ctx, src)
	case "view":
		err = runView(ctx, src)
	case "sample":
		fmt.Println(simulator.Sample)
	case "--init-config":
		// Generate default config and exit
		fmt.Print(config.DefaultTOML())
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Browse99 - web pages for the TI-99/4A

Usage: browse99 <command> [source]

Commands:
  serve               Run the HTTP converter (default :7198, PORT overrides)
  convert <src>       Print 99ML for a URL or an .html file
  print <src>         Decode and print the 40x24 screen with its links
  view <src>          Interactive viewer (mouse or tab/enter to follow links)
  sample              Print the sample 99ML document
  --init-config       Output default config
  -h, --help          Show this help

A source is a URL, an .html or .99ml file, or '-' for stdin.

Examples:
  browse99 convert https://example.com > example.99ml
  browse99 print example.99ml
  browse99 view example.com
  browse99 --init-config > ~/.config/browse99/config.toml

Configuration:
  Config file: ~/.config/browse99/config.toml`)
}

// setup loads the configuration and applies it to the fetcher.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	fetcher.Configure(fetcher.Options{
		UserAgent:      cfg.Fetcher.UserAgent,
		TimeoutSeconds: cfg.Fetcher.TimeoutSeconds,
		ChromePath:     cfg.Fetcher.ChromePath,
		Mode:           cfg.Fetcher.Mode,
		ViewportWidth:  cfg.Fetcher.ViewportWidth,
		ViewportHeight: cfg.Fetcher.ViewportHeight,
	})
	return cfg, nil
}

func runServe(ctx context.Context) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	srv := server.New(fetcher.Extract, fetcher.ExtractHTML, cfg.Server.MaxConcurrent)
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func runConvert(ctx context.Context, src string) error {
	if src == "" {
		return fmt.Errorf("convert needs a URL or file")
	}
	if _, err := setup(); err != nil {
		return err
	}
	res, err := convertSource(ctx, src)
	if err != nil {
		return err
	}
	fmt.Println(res.Markup)
	fmt.Fprintf(os.Stderr, "%s: %d text nodes, %d of %d links placed\n",
		res.Metadata.Title, res.Metadata.FragmentsSeen, res.Metadata.LinksPlaced, res.Metadata.LinksFound)
	return nil
}

func runPrint(ctx context.Context, src string) error {
	if src == "" {
		return fmt.Errorf("print needs a source")
	}
	cfg, err := setup()
	if err != nil {
		return err
	}
	doc, err := loadMarkup(ctx, src)
	if err != nil {
		return err
	}

	screen := simulator.Decode(doc)
	color := cfg.Display.Color && term.IsTerminal(int(os.Stdout.Fd()))
	border := cfg.Display.Border
	if w, _, werr := render.TerminalSize(); werr == nil && w < viewer.FrameWidth {
		border = false
	}
	return printScreen(os.Stdout, screen, printOptions{Border: border, Color: color, Title: src})
}

func runView(ctx context.Context, src string) error {
	if _, err := setup(); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	v := viewer.New(screen, loadMarkup)
	if src == "" {
		src = sampleSource
	}
	// A failed first load leaves the error on the status line.
	v.Open(ctx, src)
	return v.Run(ctx)
}

// convertSource runs the converter on a URL or a local HTML file.
func convertSource(ctx context.Context, src string) (converter.Result, error) {
	if isFile(src) {
		b, err := os.ReadFile(src)
		if err != nil {
			return converter.Result{}, err
		}
		data, err := fetcher.ExtractHTML(ctx, string(b))
		if err != nil {
			return converter.Result{}, err
		}
		return converter.Convert(data, fetcher.SourceID(src)), nil
	}

	target := fetcher.NormalizeURL(src)
	data, err := fetcher.Extract(ctx, target)
	if err != nil {
		return converter.Result{}, err
	}
	return converter.Convert(data, fetcher.SourceID(target)), nil
}

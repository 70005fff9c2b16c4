package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/crawl"
	"github.com/fwojciec/cpm/fs"
	"github.com/fwojciec/cpm/goquery"
	"github.com/fwojciec/cpm/htmltomarkdown"
	cpmhttp "github.com/fwojciec/cpm/http"
	cpmslog "github.com/fwojciec/cpm/slog"
	"github.com/fwojciec/cpm/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// DefaultConfigPath is the JSON file flag defaults are read from.
const DefaultConfigPath = "~/.config/cpm/config.json"

// sessionSites are the judges whose stored sessions are loaded on start.
var sessionSites = []cpm.Site{cpm.SiteAtCoder, cpm.SiteCodeforces}

// Main represents the program.
type Main struct {
	// Overrides for the --db and --root flags. Set before calling Run().
	DBPath string
	Root   string

	// JSON configuration file. Missing files are ignored.
	ConfigPath string

	// Terminal credentials are read from.
	Stdin *os.File

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ProblemService cpm.ProblemService
	SessionService cpm.SessionService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: DefaultConfigPath,
		Stdin:      os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cpm"),
		kong.Description("Download sample cases from AtCoder and Codeforces and test solutions against them."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Configuration(kong.JSON, m.ConfigPath),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cpm --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := strings.Fields(kongCtx.Command())[0]

	logger := newLogger(stderr, cli.Verbose)
	deps.Logger = logger

	// Running samples needs neither the network nor the index.
	if command == "run" {
		return kongCtx.Run(deps)
	}

	dbPath := cli.DB
	if m.DBPath != "" {
		dbPath = m.DBPath
	}
	root := cli.Root
	if m.Root != "" {
		root = m.Root
	}

	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CPM_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	m.ProblemService = sqlite.NewProblemService(m.DB)
	m.SessionService = sqlite.NewSessionService(m.DB)
	deps.Problems = m.ProblemService
	deps.Sessions = m.SessionService

	if command == "list" || command == "logout" {
		return kongCtx.Run(deps)
	}

	client := cpmhttp.NewFetcher(cpmhttp.WithTimeout(cli.Timeout))
	defer client.Close()
	if command != "login" {
		if err := m.restoreSessions(ctx, client, cli.Session); err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
	}

	fetcher := cpmslog.NewLoggingFetcher(client, logger)
	deps.Fetcher = fetcher
	deps.Forms = fetcher
	deps.Jar = client
	deps.Parsers = cpmslog.NewLoggingRegistry(goquery.NewDefaultRegistry(), logger)
	deps.Prompt = NewTermPrompter(m.Stdin, stderr)

	if command == "get" {
		deps.Crawler = &crawl.Crawler{
			Parsers:     deps.Parsers,
			Fetcher:     fetcher,
			Store:       fs.NewStore(root),
			RateLimiter: crawl.NewDomainLimiter(1.0),
			Problems:    m.ProblemService,
			Converter:   htmltomarkdown.NewConverter(),
			Logger:      logger,
			Concurrency: cli.Get.Concurrency,
			Force:       cli.Get.Force,
		}
	}

	return kongCtx.Run(deps)
}

// restoreSessions loads the stored cookies of every judge into the jar.
// A raw AtCoder session value replaces the stored AtCoder cookie.
func (m *Main) restoreSessions(ctx context.Context, jar CookieJar, atcoderSession string) error {
	for _, site := range sessionSites {
		cookies, err := m.SessionService.FindCookies(ctx, site.Host())
		if err != nil {
			return err
		}
		if len(cookies) == 0 {
			continue
		}
		if err := jar.SetCookies("https://"+site.Host()+"/", cookies); err != nil {
			return err
		}
	}

	if atcoderSession != "" {
		cookie := &cpm.Cookie{Name: "REVEL_SESSION", Value: atcoderSession}
		return jar.SetCookies("https://"+cpm.SiteAtCoder.Host()+"/", []*cpm.Cookie{cookie})
	}
	return nil
}

// newLogger logs warnings by default and everything in verbose mode.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

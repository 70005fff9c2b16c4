package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Fetcher  cpm.Fetcher
	Forms    cpm.FormPoster
	Jar      CookieJar
	Parsers  cpm.ParserRegistry
	Problems cpm.ProblemService
	Sessions cpm.SessionService
	Crawler  *crawl.Crawler
	Prompt   Prompter
	Runner   Runner
}

// CookieJar exposes the session cookies held by a fetcher.
type CookieJar interface {
	SetCookies(rawURL string, cookies []*cpm.Cookie) error
	Cookies(rawURL string) ([]*cpm.Cookie, error)
}

// Prompter asks the user for login credentials.
type Prompter interface {
	Credentials() (username, password string, err error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool          `short:"v" help:"Log fetches and parser decisions to stderr"`
	Root    string        `type:"path" default:"~/.cpm/src" env:"CPM_ROOT" help:"Directory problems are saved under"`
	DB      string        `name:"db" type:"path" default:"~/.cpm/cpm.db" env:"CPM_DB" help:"Problem index database"`
	Session string        `env:"ATCODER_SESSION" help:"REVEL_SESSION cookie value for AtCoder"`
	Timeout time.Duration `default:"10s" help:"HTTP request timeout"`

	Get      GetCmd      `cmd:"" help:"Download the samples of a problem or of every problem in a contest"`
	Download DownloadCmd `cmd:"" help:"Write the samples of one problem into a directory"`
	Login    LoginCmd    `cmd:"" help:"Log in to a judge and store the session"`
	Logout   LogoutCmd   `cmd:"" help:"Forget the stored session of a judge"`
	List     ListCmd     `cmd:"" help:"List downloaded problems"`
	Run      RunCmd      `cmd:"" help:"Run a command against the samples in a directory"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URL         string `arg:"" help:"Problem or contest URL"`
	Force       bool   `short:"f" help:"Rewrite problems whose samples are unchanged"`
	DryRun      bool   `short:"n" name:"dry-run" help:"Show problem URLs without downloading"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// DownloadCmd is the "download" subcommand.
type DownloadCmd struct {
	URL  string `arg:"" optional:"" help:"Problem URL"`
	HTML string `name:"html" type:"path" placeholder:"FILE" help:"Read a saved problem page instead of fetching one"`
	Dir  string `short:"d" type:"path" default:"." help:"Directory to write sample files into"`
}

// LoginCmd is the "login" subcommand.
type LoginCmd struct {
	URL string `arg:"" optional:"" default:"https://atcoder.jp/login" help:"Login page URL"`
}

// LogoutCmd is the "logout" subcommand.
type LogoutCmd struct {
	Site string `arg:"" optional:"" default:"atcoder" enum:"atcoder,codeforces" help:"Judge to log out of"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Site    string `short:"s" help:"Only list problems of this judge (atcoder or codeforces)"`
	Contest string `short:"c" help:"Only list problems of this contest"`
	Limit   int    `short:"l" help:"Maximum number of problems to list"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Dir     string        `short:"d" type:"path" default:"." help:"Directory holding the sample files"`
	Timeout time.Duration `name:"case-timeout" default:"5s" help:"Time limit per sample"`
	Command []string      `arg:"" passthrough:"" help:"Command to run, after --"`
}

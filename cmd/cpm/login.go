package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/goquery"
	"golang.org/x/term"
)

// Run executes the login command.
func (c *LoginCmd) Run(deps *Dependencies) error {
	if err := c.login(deps); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
		return err
	}
	return nil
}

func (c *LoginCmd) login(deps *Dependencies) error {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return cpm.Errorf(cpm.EINVALID, "invalid login URL %q", c.URL)
	}
	site := cpm.SiteFromHost(u.Hostname())
	if site == cpm.SiteUnknown {
		return cpm.Errorf(cpm.EINVALID, "unsupported judge: %s", u.Host)
	}

	page, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		return err
	}
	token, ok := goquery.CSRFToken(page)
	if !ok {
		return cpm.Errorf(cpm.EFORMAT, "no csrf_token on %s", c.URL)
	}

	username, password, err := deps.Prompt.Credentials()
	if err != nil {
		return err
	}
	if username == "" || password == "" {
		return cpm.Errorf(cpm.EINVALID, "username and password are required")
	}

	answer, err := deps.Forms.PostForm(deps.Ctx, c.URL, loginForm(site, username, password, token))
	if err != nil {
		return err
	}
	if goquery.HasLoginForm(answer) {
		return cpm.Errorf(cpm.EUNAUTHORIZED, "login to %s failed, check username and password", site.Host())
	}

	cookies, err := deps.Jar.Cookies(c.URL)
	if err != nil {
		return err
	}
	if err := deps.Sessions.SaveCookies(deps.Ctx, site.Host(), cookies); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Logged in to %s as %s\n", site.Host(), username)
	return nil
}

// loginForm builds the form each judge expects on its login page.
func loginForm(site cpm.Site, username, password, token string) url.Values {
	if site == cpm.SiteCodeforces {
		return url.Values{
			"action":        {"enter"},
			"handleOrEmail": {username},
			"password":      {password},
			"csrf_token":    {token},
		}
	}
	return url.Values{
		"username":   {username},
		"password":   {password},
		"csrf_token": {token},
	}
}

// Run executes the logout command.
func (c *LogoutCmd) Run(deps *Dependencies) error {
	host := cpm.Site(c.Site).Host()
	if host == "" {
		err := cpm.Errorf(cpm.EINVALID, "unsupported judge: %s", c.Site)
		fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
		return err
	}

	err := deps.Sessions.DeleteCookies(deps.Ctx, host)
	switch {
	case cpm.ErrorCode(err) == cpm.ENOTFOUND:
		fmt.Fprintf(deps.Stdout, "Not logged in to %s\n", host)
		return nil
	case err != nil:
		fmt.Fprintf(deps.Stderr, "error: %s\n", cpm.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Logged out of %s\n", host)
	return nil
}

// TermPrompter reads credentials from a terminal, hiding the password.
// When stdin is not a terminal both values are read as plain lines.
// The password is returned as typed, without its line ending.
type TermPrompter struct {
	in     *os.File
	reader *bufio.Reader
	out    io.Writer
}

// NewTermPrompter creates a TermPrompter reading from in and prompting on out.
func NewTermPrompter(in *os.File, out io.Writer) *TermPrompter {
	return &TermPrompter{in: in, reader: bufio.NewReader(in), out: out}
}

// Credentials prompts for a username and a password.
func (p *TermPrompter) Credentials() (string, string, error) {
	fmt.Fprint(p.out, "Username: ")
	username, err := p.readLine()
	if err != nil {
		return "", "", err
	}
	username = strings.TrimSpace(username)

	fmt.Fprint(p.out, "Password: ")
	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		password, err := p.readLine()
		return username, password, err
	}
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", "", err
	}
	return username, string(b), nil
}

func (p *TermPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

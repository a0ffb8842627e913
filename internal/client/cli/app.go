// Package cli implements the notesctl subcommands.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/notesapp/internal/client/api"
)

// API is satisfied by *api.Client.
type API interface {
	Register(ctx context.Context, username, password, fullname string) (string, error)
	Login(ctx context.Context, username, password string) (*api.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

var ErrUsage = errors.New("usage: notesctl [-a url] [-t timeout] register|login|refresh|logout [flags]")

type App struct {
	api    API
	reader *bufio.Reader
	out    io.Writer
	prompt io.Writer
	fd     int
}

// NewApp reads interactive input from in (fd is its descriptor, used for
// hidden password entry), prints prompts to prompt and results to out.
func NewApp(client API, in io.Reader, fd int, out, prompt io.Writer) *App {
	return &App{api: client, reader: bufio.NewReader(in), out: out, prompt: prompt, fd: fd}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "refresh":
		return a.refresh(ctx, rest)
	case "logout":
		return a.logout(ctx, rest)
	case "help", "-h", "--help":
		_, err := fmt.Fprintln(a.out, ErrUsage.Error())
		return err
	}
	return fmt.Errorf("unknown command %q: %w", cmd, ErrUsage)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// askIfEmpty prompts for v when the flag was not given.
func (a *App) askIfEmpty(v *string, prompt string) error {
	if *v != "" {
		return nil
	}
	s, err := GetSimpleText(a.reader, prompt, a.prompt)
	if err != nil {
		return err
	}
	*v = s
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	username := fs.String("u", "", "username")
	fullname := fs.String("n", "", "full name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.askIfEmpty(username, "Username"); err != nil {
		return err
	}
	if err := a.askIfEmpty(fullname, "Full name"); err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.fd, a.prompt)
	if err != nil {
		return err
	}

	id, err := a.api.Register(ctx, *username, password, *fullname)
	if err != nil {
		return err
	}
	return a.print(map[string]string{"userId": id})
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	username := fs.String("u", "", "username")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.askIfEmpty(username, "Username"); err != nil {
		return err
	}
	password, err := GetPassword(a.reader, a.fd, a.prompt)
	if err != nil {
		return err
	}

	tokens, err := a.api.Login(ctx, *username, password)
	if err != nil {
		return err
	}
	return a.print(tokens)
}

func (a *App) refreshTokenArg(name string, args []string) (string, error) {
	fs := newFlagSet(name)
	token := fs.String("r", "", "refresh token")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if err := a.askIfEmpty(token, "Refresh token"); err != nil {
		return "", err
	}
	return *token, nil
}

func (a *App) refresh(ctx context.Context, args []string) error {
	token, err := a.refreshTokenArg("refresh", args)
	if err != nil {
		return err
	}
	access, err := a.api.Refresh(ctx, token)
	if err != nil {
		return err
	}
	return a.print(map[string]string{"accessToken": access})
}

func (a *App) logout(ctx context.Context, args []string) error {
	token, err := a.refreshTokenArg("logout", args)
	if err != nil {
		return err
	}
	if err := a.api.Logout(ctx, token); err != nil {
		return err
	}
	return a.print(map[string]string{"status": "logged out"})
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/MKhiriev/onelock/internal/auth"
)

type command struct {
	usage   string
	summary string
	run     func(ctx context.Context, args []string) error
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"init":     {"init [-username name]", "create the local profile and master password", a.cmdInit},
		"unlock":   {"unlock", "check the master password", a.cmdUnlock},
		"status":   {"status", "show profile, lock and sync state", a.cmdStatus},
		"passwd":   {"passwd", "change the master password and re-encrypt the vault", a.cmdPasswd},
		"settings": {"settings [-username n] [-theme t] [-auto-lock min] [-biometric=bool]", "show or change settings", a.cmdSettings},
		"reset":    {"reset [-yes]", "erase the profile and every record", a.cmdReset},
		"list":     {"list [-q text] [-category c] [-fav] [-sort f] [-order o]", "list records", a.cmdList},
		"add":      {"add -title t [-username u] [-email e] [-url u] [-notes n] [-category c] [-fav] [-generate]", "add a record", a.cmdAdd},
		"show":     {"show [-reveal] <id>", "show a record", a.cmdShow},
		"edit":     {"edit [-title t] [-username u] [-email e] [-url u] [-notes n] [-category c] [-fav=bool] [-password] <id>", "change a record", a.cmdEdit},
		"fav":      {"fav <id>", "toggle the favorite flag", a.cmdFav},
		"rm":       {"rm <id>", "remove a record", a.cmdRemove},
		"pull":     {"pull", "replace the vault with the remote dataset (master user)", a.cmdPull},
		"push":     {"push", "upload the encrypted vault (master user)", a.cmdPush},
		"serve":    {"serve", "run the local HTTP API", a.cmdServe},
		"gen":      {"gen [-mode random|memorable|pin] [-length n] [-words n] [-no-upper] [-no-lower] [-no-numbers] [-no-symbols]", "generate a password", a.cmdGenerate},
		"strength": {"strength", "score a password", a.cmdStrength},
		"hash":     {"hash", "print a verifier for MASTER_USER_PASSWORD_HASH", a.cmdHash},
		"version":  {"version", "print build information", a.cmdVersion},
	}
}

// Run executes the subcommand in args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	ctx = a.logger.WithContext(ctx)

	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.printUsage(a.out)
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}

	cmd, ok := a.commands()[args[0]]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, args[0])
	}

	a.logger.Debug().Str("func", "*App.Run").Str("command", args[0]).Msg("running command")
	return cmd.run(ctx, args[1:])
}

func (a *App) printUsage(w io.Writer) {
	cmds := a.commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: onelock [global flags] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-9s %s\n", name, cmds[name].summary)
	}
}

// flagSet returns a FlagSet named after the command whose usage goes to
// the app output.
func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.Usage = func() {
		fmt.Fprintf(a.out, "usage: onelock %s\n", a.commands()[name].usage)
		fs.PrintDefaults()
	}
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// oneArg returns the single positional argument, usually a record id.
func oneArg(fs *flag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 || strings.TrimSpace(fs.Arg(0)) == "" {
		return "", fmt.Errorf("%w: %s takes exactly one %s", ErrUsage, fs.Name(), what)
	}
	return fs.Arg(0), nil
}

func noArgs(fs *flag.FlagSet) error {
	if fs.NArg() != 0 {
		return fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}
	return nil
}

// masterPassword reads the master password from the environment or the
// prompter.
func (a *App) masterPassword(prompt string) (string, error) {
	if pw := a.getenv(EnvMasterPassword); pw != "" {
		return pw, nil
	}
	return a.prompt.Password(prompt)
}

// newPassword asks for a password twice.
func (a *App) newPassword(prompt string) (string, error) {
	pw, err := a.prompt.Password(prompt)
	if err != nil {
		return "", err
	}
	confirm, err := a.prompt.Password("Repeat: ")
	if err != nil {
		return "", err
	}
	if pw != confirm {
		return "", ErrPasswordMismatch
	}
	return pw, nil
}

// unlock verifies the master password and leaves the vault unlocked for
// the rest of the process.
func (a *App) unlock(ctx context.Context) error {
	pw, err := a.masterPassword("Master password: ")
	if err != nil {
		return err
	}
	return a.unlockWith(ctx, pw)
}

func (a *App) unlockWith(ctx context.Context, password string) error {
	ok, err := a.auth.Verify(ctx, password)
	if err != nil {
		return err
	}
	if !ok {
		return auth.ErrInvalidCredential
	}
	return nil
}

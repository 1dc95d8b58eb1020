package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/onelock/internal/passwords"
)

const (
	modeRandom    = "random"
	modeMemorable = "memorable"
	modePIN       = "pin"
)

func (a *App) cmdGenerate(_ context.Context, args []string) error {
	fs := a.flagSet("gen")
	mode := fs.String("mode", modeRandom, "random, memorable or pin")
	length := fs.Int("length", 0, "length of a random password or PIN")
	wordCount := fs.Int("words", passwords.DefaultWordCount, "words in a memorable password")
	noUpper := fs.Bool("no-upper", false, "leave out uppercase letters")
	noLower := fs.Bool("no-lower", false, "leave out lowercase letters")
	noNumbers := fs.Bool("no-numbers", false, "leave out digits")
	noSymbols := fs.Bool("no-symbols", false, "leave out symbols")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	var (
		pw  string
		err error
	)
	switch *mode {
	case modeRandom:
		opts := passwords.Options{
			Length:    *length,
			Lowercase: !*noLower,
			Uppercase: !*noUpper,
			Numbers:   !*noNumbers,
			Symbols:   !*noSymbols,
		}
		if opts.Length == 0 {
			opts.Length = passwords.DefaultLength
		}
		pw, err = passwords.Generate(opts)
	case modeMemorable:
		pw, err = passwords.Memorable(*wordCount)
	case modePIN:
		n := *length
		if n == 0 {
			n = passwords.DefaultPINLength
		}
		pw, err = passwords.PIN(n)
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrUsage, *mode)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	fmt.Fprintln(a.out, pw)
	return nil
}

func (a *App) cmdStrength(_ context.Context, args []string) error {
	fs := a.flagSet("strength")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	pw, err := a.prompt.Password("Password to check: ")
	if err != nil {
		return err
	}

	s := passwords.Check(pw)
	fmt.Fprintf(a.out, "Score: %d/100 (%s)\n", s.Score, s.Level)
	for _, f := range s.Feedback {
		fmt.Fprintf(a.out, "- %s\n", f)
	}
	return nil
}

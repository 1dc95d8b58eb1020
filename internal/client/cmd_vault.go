package client

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/onelock/internal/passwords"
	"github.com/MKhiriev/onelock/internal/vault"
	"github.com/MKhiriev/onelock/models"
)

const maskedSecret = "********"

func (a *App) cmdList(ctx context.Context, args []string) error {
	fs := a.flagSet("list")
	query := fs.String("q", "", "search title, username, email, url and notes")
	category := fs.String("category", "", "only records of this category")
	favorites := fs.Bool("fav", false, "only favorites")
	sortBy := fs.String("sort", string(vault.SortByName), "name, createdAt or updatedAt")
	order := fs.String("order", string(vault.Ascending), "asc or desc")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	filter, err := buildFilter(*query, *category, *favorites, *sortBy, *order)
	if err != nil {
		return err
	}

	if err = a.unlock(ctx); err != nil {
		return err
	}
	records, err := a.vault.LoadAll(ctx)
	if err != nil {
		return err
	}
	records = filter.Apply(records)

	if len(records) == 0 {
		fmt.Fprintln(a.out, "No records.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tUSERNAME\tCATEGORY\tFAV\tUPDATED")
	for _, r := range records {
		fav := ""
		if r.IsFavorite {
			fav = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Title, firstNonEmpty(r.Username, r.Email), r.Category, fav, r.UpdatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func buildFilter(query, category string, favorites bool, sortBy, order string) (vault.Filter, error) {
	f := vault.Filter{Query: query, FavoritesOnly: favorites}

	if category != "" {
		c, err := models.ParseCategory(category)
		if err != nil {
			return vault.Filter{}, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		f.Category = c
	}

	var err error
	if f.SortBy, err = vault.ParseSortField(sortBy); err != nil {
		return vault.Filter{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if f.Order, err = vault.ParseSortOrder(order); err != nil {
		return vault.Filter{}, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return f, nil
}

func (a *App) cmdAdd(ctx context.Context, args []string) error {
	fs := a.flagSet("add")
	var in models.CredentialInput
	fs.StringVar(&in.Title, "title", "", "record title (required)")
	fs.StringVar(&in.Username, "username", "", "login name")
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.URL, "url", "", "site address")
	fs.StringVar(&in.Notes, "notes", "", "free text")
	category := fs.String("category", "", "Social, Finance, Work, Shopping, Entertainment or Other")
	fs.BoolVar(&in.IsFavorite, "fav", false, "mark as favorite")
	generate := fs.Bool("generate", false, "generate a random password instead of prompting")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	c, err := models.ParseCategory(*category)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	in.Category = c

	if err = a.unlock(ctx); err != nil {
		return err
	}

	if *generate {
		in.Secret, err = passwords.Generate(passwords.DefaultOptions())
	} else {
		in.Secret, err = a.prompt.Password("Password for the record: ")
	}
	if err != nil {
		return err
	}

	rec, err := a.vault.Add(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %s (%s).\n", rec.ID, rec.Title)
	if *generate {
		fmt.Fprintf(a.out, "Generated password: %s\n", rec.Secret)
	}
	if s := passwords.Check(rec.Secret); s.Level == passwords.LevelWeak {
		fmt.Fprintf(a.out, "Warning: the password is weak (%d/100).\n", s.Score)
	}
	return nil
}

func (a *App) cmdShow(ctx context.Context, args []string) error {
	fs := a.flagSet("show")
	reveal := fs.Bool("reveal", false, "print the password in clear text")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := oneArg(fs, "record id")
	if err != nil {
		return err
	}

	if err = a.unlock(ctx); err != nil {
		return err
	}
	rec, ok, err := a.vault.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return vault.ErrRecordNotFound
	}

	secret := maskedSecret
	if *reveal {
		secret = rec.Secret
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", rec.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", rec.Title)
	printOptional(tw, "Username", rec.Username)
	printOptional(tw, "Email", rec.Email)
	printOptional(tw, "URL", rec.URL)
	fmt.Fprintf(tw, "Password:\t%s\n", secret)
	fmt.Fprintf(tw, "Category:\t%s\n", rec.Category)
	fmt.Fprintf(tw, "Favorite:\t%t\n", rec.IsFavorite)
	printOptional(tw, "Notes", rec.Notes)
	fmt.Fprintf(tw, "Created:\t%s\n", rec.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintf(tw, "Updated:\t%s\n", rec.UpdatedAt.Local().Format(time.DateTime))
	return tw.Flush()
}

func (a *App) cmdEdit(ctx context.Context, args []string) error {
	fs := a.flagSet("edit")
	title := fs.String("title", "", "record title")
	username := fs.String("username", "", "login name")
	email := fs.String("email", "", "email address")
	url := fs.String("url", "", "site address")
	notes := fs.String("notes", "", "free text")
	category := fs.String("category", "", "record category")
	favorite := fs.Bool("fav", false, "favorite flag")
	newSecret := fs.Bool("password", false, "prompt for a new password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := oneArg(fs, "record id")
	if err != nil {
		return err
	}

	var patch models.CredentialPatch
	var visitErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "username":
			patch.Username = username
		case "email":
			patch.Email = email
		case "url":
			patch.URL = url
		case "notes":
			patch.Notes = notes
		case "category":
			c, err := models.ParseCategory(*category)
			if err != nil {
				visitErr = fmt.Errorf("%w: %w", ErrUsage, err)
				return
			}
			patch.Category = &c
		case "fav":
			patch.IsFavorite = favorite
		}
	})
	if visitErr != nil {
		return visitErr
	}
	if patch.IsEmpty() && !*newSecret {
		return fmt.Errorf("%w: nothing to change", ErrUsage)
	}

	if err = a.unlock(ctx); err != nil {
		return err
	}
	if *newSecret {
		s, err := a.prompt.Password("New password for the record: ")
		if err != nil {
			return err
		}
		patch.Secret = &s
	}

	rec, err := a.vault.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s (%s).\n", rec.ID, rec.Title)
	return nil
}

func (a *App) cmdFav(ctx context.Context, args []string) error {
	fs := a.flagSet("fav")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := oneArg(fs, "record id")
	if err != nil {
		return err
	}

	if err = a.unlock(ctx); err != nil {
		return err
	}
	rec, err := a.vault.ToggleFavorite(ctx, id)
	if err != nil {
		return err
	}

	state := "removed from"
	if rec.IsFavorite {
		state = "added to"
	}
	fmt.Fprintf(a.out, "%s %s favorites.\n", rec.Title, state)
	return nil
}

func (a *App) cmdRemove(ctx context.Context, args []string) error {
	fs := a.flagSet("rm")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := oneArg(fs, "record id")
	if err != nil {
		return err
	}

	if err = a.unlock(ctx); err != nil {
		return err
	}
	if err = a.vault.Remove(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed %s.\n", id)
	return nil
}

func printOptional(tw *tabwriter.Writer, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(tw, "%s:\t%s\n", label, value)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

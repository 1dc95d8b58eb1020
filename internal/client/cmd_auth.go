package client

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/onelock/internal/passwords"
	"github.com/MKhiriev/onelock/models"
)

const resetConfirmation = "RESET"

func (a *App) cmdInit(ctx context.Context, args []string) error {
	fs := a.flagSet("init")
	username := fs.String("username", "", "profile name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	name := strings.TrimSpace(*username)
	if name == "" {
		line, err := a.prompt.Line("Username: ")
		if err != nil {
			return err
		}
		name = strings.TrimSpace(line)
	}

	pw, err := a.newPassword("New master password: ")
	if err != nil {
		return err
	}

	if a.master != nil && a.master.IsMasterUser(name) {
		if err = a.master.InitializeMasterUser(ctx, name, pw); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Master profile %q created. Run `onelock pull` to load the shared vault.\n", name)
		return nil
	}

	if err = a.auth.Setup(ctx, name, pw); err != nil {
		return err
	}
	s := passwords.Check(pw)
	fmt.Fprintf(a.out, "Profile %q created. Master password strength: %s (%d/100).\n", name, s.Level, s.Score)
	return nil
}

func (a *App) cmdUnlock(ctx context.Context, args []string) error {
	fs := a.flagSet("unlock")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	if err := a.unlock(ctx); err != nil {
		return err
	}
	records, err := a.vault.LoadAll(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Unlocked. The vault holds %d records.\n", len(records))
	return nil
}

func (a *App) cmdStatus(ctx context.Context, args []string) error {
	fs := a.flagSet("status")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	state, err := a.auth.GetAuthState(ctx)
	if err != nil {
		return err
	}
	if state.IsFirstLaunch {
		fmt.Fprintln(a.out, "No profile yet. Run `onelock init` to create one.")
		return nil
	}

	settings := a.auth.GetSettings(ctx)
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Profile:\t%s\n", settings.Username)
	fmt.Fprintf(tw, "Type:\t%s\n", settings.UserType)
	fmt.Fprintf(tw, "Auto-lock:\t%s\n", autoLockText(settings.AutoLockMinutes))
	fmt.Fprintf(tw, "Biometric:\t%s\n", biometricText(state))
	fmt.Fprintf(tw, "Theme:\t%s\n", settings.Theme)
	if t, ok := a.auth.LastUnlockTime(ctx); ok {
		fmt.Fprintf(tw, "Last unlock:\t%s\n", t.Local().Format(time.DateTime))
	}
	if a.master != nil {
		last := "never"
		if t, ok := a.master.LastSyncTime(ctx); ok {
			last = t.Local().Format(time.DateTime)
		}
		fmt.Fprintf(tw, "Last sync:\t%s\n", last)
	}
	return tw.Flush()
}

func (a *App) cmdPasswd(ctx context.Context, args []string) error {
	fs := a.flagSet("passwd")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	current, err := a.masterPassword("Current master password: ")
	if err != nil {
		return err
	}
	next, err := a.newPassword("New master password: ")
	if err != nil {
		return err
	}
	if err = a.auth.ChangeMasterPassword(ctx, current, next); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Master password changed.")
	return nil
}

func (a *App) cmdSettings(ctx context.Context, args []string) error {
	fs := a.flagSet("settings")
	username := fs.String("username", "", "profile name")
	theme := fs.String("theme", "", "light, dark or system")
	autoLock := fs.Int("auto-lock", 0, "minutes of inactivity before locking, -1 for never")
	biometric := fs.Bool("biometric", false, "enable biometric unlock")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	var patch models.SettingsPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "username":
			patch.Username = username
		case "theme":
			t := models.Theme(strings.ToLower(*theme))
			patch.Theme = &t
		case "auto-lock":
			patch.AutoLockMinutes = autoLock
		case "biometric":
			patch.BiometricEnabled = biometric
		}
	})

	settings := a.auth.GetSettings(ctx)
	if patch != (models.SettingsPatch{}) {
		if err := a.unlock(ctx); err != nil {
			return err
		}
		var err error
		if settings, err = a.auth.UpdateSettings(ctx, patch); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "username\t%s\n", settings.Username)
	fmt.Fprintf(tw, "theme\t%s\n", settings.Theme)
	fmt.Fprintf(tw, "auto-lock\t%s\n", autoLockText(settings.AutoLockMinutes))
	fmt.Fprintf(tw, "biometric\t%t\n", settings.BiometricEnabled)
	return tw.Flush()
}

func (a *App) cmdReset(ctx context.Context, args []string) error {
	fs := a.flagSet("reset")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	if !*yes {
		answer, err := a.prompt.Line(fmt.Sprintf("This erases the profile and every record. Type %s to continue: ", resetConfirmation))
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) != resetConfirmation {
			return ErrAborted
		}
	}

	if err := a.auth.ResetAuthData(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "All data erased.")
	return nil
}

// cmdHash prints a verifier suitable for MASTER_USER_PASSWORD_HASH. It is
// computed with the configured pepper and KDF parameters, so it only
// verifies under the same configuration.
func (a *App) cmdHash(_ context.Context, args []string) error {
	fs := a.flagSet("hash")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	pw, err := a.newPassword("Password to hash: ")
	if err != nil {
		return err
	}
	verifier, err := a.hasher.DeriveVerifier(pw)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, verifier)
	return nil
}

func (a *App) cmdVersion(_ context.Context, _ []string) error {
	fmt.Fprintln(a.out, a.build.String())
	return nil
}

func autoLockText(minutes int) string {
	if minutes == models.NeverLock {
		return "never"
	}
	return fmt.Sprintf("%d min", minutes)
}

func biometricText(state models.AuthState) string {
	switch {
	case !state.BiometricAvailable:
		return "unavailable"
	case state.BiometricEnabled:
		return "enabled"
	}
	return "disabled"
}

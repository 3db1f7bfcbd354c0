package cmd

import (
	"errors"

	clierrors "keysync/internal/cli/errors"
	"keysync/internal/cli/output"
	"keysync/internal/logger"
	"keysync/internal/scan"
	"keysync/internal/syncer"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type syncVariant struct {
	use   string
	short string
	long  string
	mode  syncer.Mode
}

var (
	syncPlain = syncVariant{
		use:   "sync",
		short: "Add every t(\"...\") key found in the project to the locale file",
		long: `Scan every file below --project-dir for calls of the translation function
(scan.call_name, "t" by default) with a single string literal argument, and
add the keys missing from --locale-file with the key as the value.

Files that are not UTF-8 text are skipped. Existing entries are kept as is.`,
		mode: syncer.ModePlain,
	}

	syncHooks = syncVariant{
		use:   "sync-hooks",
		short: "Add keys from files that use the useTranslation hook",
		long: `Scan .ts, .tsx, .js and .jsx files below --project-dir that import
useTranslation from react-i18next. The names the hook result is destructured
into (const { t: translate } = useTranslation()) are treated as the
translation function for that file. Missing keys are added to --locale-file
with the key as the value.

The hook, its module, the destructured member and the extensions can be
changed in the hooks section of the config file.`,
		mode: syncer.ModeHooks,
	}
)

func newSyncCommand(a *app, variant syncVariant) *cobra.Command {
	cmd := &cobra.Command{
		Use:   variant.use,
		Short: variant.short,
		Long:  variant.long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSync(cmd, variant.mode)
		},
	}

	cmd.Flags().AddFlagSet(syncFlags())

	return cmd
}

// syncFlags returns the flags shared by both sync variants. Their values are
// read through the config layer, which binds them to project_dir and
// locale_file.
func syncFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("sync", pflag.ContinueOnError)
	fs.String("project-dir", ".", "root directory of the project to scan")
	fs.String("locale-file", "locales/en.json", "JSON locale file to update")
	return fs
}

func (a *app) runSync(cmd *cobra.Command, mode syncer.Mode) error {
	cfg := a.cfg
	ctx := cmd.Context()

	s := syncer.New(
		afero.NewOsFs(),
		output.NewPrinterTo(cmd.OutOrStdout(), cfg.Log.NoColor),
		logger.LoggerFrom(ctx),
	)

	_, err := s.Run(ctx, syncer.Options{
		ProjectDir: cfg.ProjectDir,
		LocaleFile: cfg.LocaleFile,
		Mode:       mode,
		CallName:   cfg.Scan.CallName,
		Hook: scan.HookSpec{
			Module: cfg.Hooks.Module,
			Hook:   cfg.Hooks.Hook,
			Member: cfg.Hooks.Member,
		},
		Extensions: cfg.Hooks.Extensions,
		Ignore:     cfg.Scan.Ignore,
		Strict:     cfg.Locale.Strict,
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, syncer.ErrLocaleRefused):
		return clierrors.LocaleInvalid(cfg.LocaleFile, err)
	case errors.Is(err, syncer.ErrLocaleWrite):
		return clierrors.LocaleWriteFailed(cfg.LocaleFile, err)
	default:
		return clierrors.Wrap(err, clierrors.CodeInternal, "Sync failed")
	}
}

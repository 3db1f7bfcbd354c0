// Package syncer runs one key synchronization: walk the project, extract
// keys, and merge the new ones into the locale file.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"keysync/internal/cli/output"
	"keysync/internal/locale"
	"keysync/internal/logger"
	"keysync/internal/scan"

	"github.com/spf13/afero"
)

// Mode selects how files are scanned.
type Mode int

const (
	// ModePlain scans every file for calls of a fixed name.
	ModePlain Mode = iota
	// ModeHooks scans script files that import the translation hook, using
	// the names the hook result is destructured into.
	ModeHooks
)

func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeHooks:
		return "hooks"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

var (
	// ErrLocaleRefused is returned in strict mode when the locale file is
	// corrupt and would be overwritten.
	ErrLocaleRefused = errors.New("refusing to overwrite invalid locale file")
	// ErrLocaleWrite is returned when the locale file cannot be written.
	ErrLocaleWrite = errors.New("cannot write locale file")
)

// Options describes one run.
type Options struct {
	ProjectDir string
	LocaleFile string
	Mode       Mode

	// CallName is the translation function recognized in ModePlain.
	CallName string
	// Hook is the hook looked for in ModeHooks.
	Hook scan.HookSpec
	// Extensions restricts the files scanned in ModeHooks.
	Extensions []string

	// Ignore holds glob patterns pruned from the walk.
	Ignore []string
	// Strict refuses to overwrite a locale file that failed to parse.
	Strict bool
}

// Result summarizes a run.
type Result struct {
	FilesScanned  int
	FilesWithKeys int
	FilesSkipped  int
	Keys          scan.KeySet
	Added         []string
	LocaleInvalid bool
	Saved         bool

	// ProjectMissing is set when the project root could not be listed. The
	// run then continues with no keys.
	ProjectMissing bool
}

// Syncer performs runs against a filesystem and reports to a Printer.
type Syncer struct {
	fs      afero.Fs
	printer *output.Printer
	log     *logger.Logger
}

// New creates a Syncer. A nil logger discards diagnostics.
func New(fsys afero.Fs, printer *output.Printer, log *logger.Logger) *Syncer {
	if log == nil {
		log = logger.Discard()
	}
	return &Syncer{fs: fsys, printer: printer, log: log}
}

// Run scans opts.ProjectDir and adds the keys missing from opts.LocaleFile.
// An unreadable project root, unreadable files and a corrupt locale file are
// reported and do not fail the run, except that Strict turns the last into
// ErrLocaleRefused.
func (s *Syncer) Run(ctx context.Context, opts Options) (*Result, error) {
	log := s.log.With("mode", opts.Mode.String())
	res := &Result{Keys: make(scan.KeySet)}

	keysOf, err := s.keyFunc(opts)
	if err != nil {
		return nil, err
	}

	walkOpts := []scan.Option{
		scan.WithIgnore(opts.Ignore...),
		scan.WithLogger(log),
		scan.WithSkipFunc(func(path string, err error) {
			res.FilesSkipped++
			log.Debug("skipping file", "path", path, logger.WithError(err))
			s.printer.Skipped(path, err)
		}),
	}
	if opts.Mode == ModeHooks {
		walkOpts = append(walkOpts, scan.WithExtensions(opts.Extensions...))
	}
	walker, err := scan.NewWalker(s.fs, walkOpts...)
	if err != nil {
		return nil, err
	}

	log.Debug("scanning project", "dir", opts.ProjectDir)
	err = walker.Walk(ctx, opts.ProjectDir, func(f scan.SourceFile) error {
		res.FilesScanned++
		keys, err := keysOf(f)
		if err != nil {
			return err
		}
		if keys.Len() > 0 {
			res.FilesWithKeys++
			s.printer.FileKeys(f.Path, keys.Len())
		}
		res.Keys.Union(keys)
		return nil
	})
	switch {
	case errors.Is(err, scan.ErrRoot):
		res.ProjectMissing = true
		log.Warn("project directory not scanned", "dir", opts.ProjectDir, logger.WithError(err))
		s.printer.ProjectUnreadable(opts.ProjectDir, err)
	case err != nil:
		return nil, err
	}
	s.printer.Total(res.Keys.Len())

	store := locale.NewStore(s.fs)
	dict, loadErr := store.Load(opts.LocaleFile)
	switch {
	case errors.Is(loadErr, locale.ErrInvalid):
		res.LocaleInvalid = true
		log.Debug("locale file is not a JSON object", "path", opts.LocaleFile, logger.WithError(loadErr))
		s.printer.InvalidLocale(opts.LocaleFile)
	case loadErr != nil:
		return nil, logger.WrapError(loadErr, "load locale file")
	}

	_, res.Added = locale.Merge(dict, res.Keys.Sorted())
	if len(res.Added) == 0 {
		s.printer.NoNewKeys()
		return res, nil
	}

	if res.LocaleInvalid && opts.Strict {
		return res, fmt.Errorf("%w %s: %w", ErrLocaleRefused, opts.LocaleFile, loadErr)
	}

	s.printer.Adding(opts.LocaleFile, res.Added)
	if err := store.Save(opts.LocaleFile, dict); err != nil {
		err = logger.WrapError(err, "save locale file")
		log.Error("locale file not written", "path", opts.LocaleFile, logger.WithError(err))
		return res, fmt.Errorf("%w: %w", ErrLocaleWrite, err)
	}
	res.Saved = true
	s.printer.Saved(opts.LocaleFile)
	log.Debug("locale file updated", "path", opts.LocaleFile, "added", len(res.Added))

	return res, nil
}

// keyFunc returns the per-file extraction for opts.Mode.
func (s *Syncer) keyFunc(opts Options) (func(f scan.SourceFile) (scan.KeySet, error), error) {
	switch opts.Mode {
	case ModePlain:
		name := opts.CallName
		if name == "" {
			name = "t"
		}
		ex, err := scan.NewExtractor(name)
		if err != nil {
			return nil, err
		}
		return func(f scan.SourceFile) (scan.KeySet, error) {
			return ex.Extract(f.Text), nil
		}, nil

	case ModeHooks:
		hook := opts.Hook
		if hook == (scan.HookSpec{}) {
			hook = scan.DefaultHookSpec()
		}
		resolver := scan.NewAliasResolver(hook)
		// Most files use the same aliases, so compiled extractors are reused.
		cache := make(map[string]*scan.Extractor)
		return func(f scan.SourceFile) (scan.KeySet, error) {
			res := resolver.Resolve(f.Text)
			if !res.Imported {
				return scan.KeySet{}, nil
			}
			if len(res.Aliases) == 0 {
				s.log.Debug("hook destructured without translate member", "path", f.Path, "member", hook.Member)
				return scan.KeySet{}, nil
			}
			aliases := slices.Clone(res.Aliases)
			slices.Sort(aliases)
			id := strings.Join(aliases, ",")
			ex, ok := cache[id]
			if !ok {
				var err error
				if ex, err = scan.NewExtractor(aliases...); err != nil {
					return nil, err
				}
				cache[id] = ex
			}
			return ex.Extract(f.Text), nil
		}, nil

	default:
		return nil, fmt.Errorf("unknown scan mode %v", opts.Mode)
	}
}

// Package scan discovers translation keys in a source tree.
//
// A Walker enumerates the readable text files under a root, an Extractor pulls
// the literal keys out of each file, and an AliasResolver decides which local
// names count as translation calls in files that use the i18n hook.
package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"keysync/internal/logger"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ErrRoot is returned by Walk when the root cannot be listed as a directory.
var ErrRoot = errors.New("cannot access project directory")

// SourceFile is one decoded file produced by a walk.
type SourceFile struct {
	// Path is the file path as reached from the walk root.
	Path string
	// Text is the file content with line endings normalized to "\n".
	Text string
}

// WalkFunc is called for every file the walk yields. Returning an error
// stops the walk and Walk returns that error.
type WalkFunc func(f SourceFile) error

// SkipFunc is called for every file the walk could not read as text.
type SkipFunc func(path string, err error)

// Option configures a Walker.
type Option func(*Walker) error

// WithExtensions restricts the walk to files with one of the given
// extensions, for example ".ts". Extensions are compared case-sensitively.
func WithExtensions(exts ...string) Option {
	return func(w *Walker) error {
		if len(exts) == 0 {
			return nil
		}
		w.exts = make(map[string]bool, len(exts))
		for _, e := range exts {
			if e == "" {
				continue
			}
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			w.exts[e] = true
		}
		return nil
	}
}

// WithIgnore prunes files and directories whose slash-separated path
// relative to the root matches one of the glob patterns.
func WithIgnore(patterns ...string) Option {
	return func(w *Walker) error {
		for _, p := range patterns {
			g, err := glob.Compile(p, '/')
			if err != nil {
				return fmt.Errorf("invalid ignore pattern %q: %w", p, err)
			}
			w.ignore = append(w.ignore, g)
		}
		return nil
	}
}

// WithSkipFunc sets the callback for unreadable files.
func WithSkipFunc(fn SkipFunc) Option {
	return func(w *Walker) error {
		w.onSkip = fn
		return nil
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(l *logger.Logger) Option {
	return func(w *Walker) error {
		w.log = l
		return nil
	}
}

// Walker enumerates text files below a root directory, following symbolic
// links.
type Walker struct {
	fs     afero.Fs
	exts   map[string]bool
	ignore []glob.Glob
	onSkip SkipFunc
	log    *logger.Logger
}

// NewWalker creates a Walker reading through fsys.
func NewWalker(fsys afero.Fs, opts ...Option) (*Walker, error) {
	w := &Walker{
		fs:     fsys,
		onSkip: func(string, error) {},
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Walk calls fn for every readable text file below root. Entries of each
// directory are visited in lexical order. Files that cannot be read or are
// not valid UTF-8 are reported to the skip callback and the walk continues.
// Walk checks ctx before each file and returns ctx.Err() once it is done.
func (w *Walker) Walk(ctx context.Context, root string, fn WalkFunc) error {
	info, err := w.fs.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRoot, root)
	}

	entered := make(map[string]bool)
	return w.walkDir(ctx, root, "", entered, fn)
}

func (w *Walker) walkDir(ctx context.Context, dir, rel string, entered map[string]bool, fn WalkFunc) error {
	id := w.dirIdentity(dir)
	if entered[id] {
		w.log.Debug("directory already visited, not descending", "path", dir, "resolved", id)
		return nil
	}
	entered[id] = true

	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		if rel == "" {
			return fmt.Errorf("%w: %w", ErrRoot, err)
		}
		w.log.Debug("cannot list directory", "path", dir, logger.WithError(err))
		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		p := filepath.Join(dir, name)
		r := path.Join(rel, name)

		info := entry
		if entry.Mode()&os.ModeSymlink != 0 {
			target, err := w.fs.Stat(p)
			if err != nil {
				// Dangling link: treated as a file that vanished.
				w.onSkip(p, err)
				continue
			}
			info = target
		}

		if info.IsDir() {
			if w.ignored(r+"/") || w.ignored(r) {
				w.log.Debug("ignoring directory", "path", p)
				continue
			}
			if err := w.walkDir(ctx, p, r, entered, fn); err != nil {
				return err
			}
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}
		if w.exts != nil && !w.exts[filepath.Ext(name)] {
			continue
		}
		if w.ignored(r) {
			w.log.Debug("ignoring file", "path", p)
			continue
		}

		text, err := w.readText(p)
		if err != nil {
			w.onSkip(p, err)
			continue
		}
		if err := fn(SourceFile{Path: p, Text: text}); err != nil {
			return err
		}
	}

	return nil
}

// dirIdentity returns the key used to detect directories entered twice
// through symbolic links.
func (w *Walker) dirIdentity(dir string) string {
	if _, ok := w.fs.(*afero.OsFs); ok {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			if abs, err := filepath.Abs(resolved); err == nil {
				return abs
			}
			return resolved
		}
	}
	return filepath.Clean(dir)
}

func (w *Walker) ignored(rel string) bool {
	for _, g := range w.ignore {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// readText reads p and validates it as UTF-8.
func (w *Walker) readText(p string) (string, error) {
	data, err := afero.ReadFile(w.fs, p)
	if err != nil {
		return "", err
	}
	if _, _, err := transform.Bytes(encoding.UTF8Validator, data); err != nil {
		return "", fmt.Errorf("not UTF-8 text: %w", err)
	}
	return newlines.Replace(string(data)), nil
}

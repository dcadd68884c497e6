// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.astrophena.name/licenseheaders/internal/atomicio"
	"go.astrophena.name/licenseheaders/internal/cli"
	"go.astrophena.name/licenseheaders/internal/cli/envflag"
	"go.astrophena.name/licenseheaders/internal/header"
	"go.astrophena.name/licenseheaders/internal/logger"
	"go.astrophena.name/licenseheaders/internal/syncx"
	"go.astrophena.name/licenseheaders/internal/templates"
)

func main() { cli.Main(new(app)) }

type app struct {
	// getenv is consulted for environment overrides of flag defaults.
	// It's a field so tests can inject their own environment.
	getenv func(string) string

	dir          string
	tmpl         string
	owner        *string
	years        *string
	projName     string
	projURL      string
	exclude      []string
	addOnly      bool
	refreshYears bool
	backup       bool
	dry          bool
	jobs         int
	verbose      bool

	// checked memoizes per comment style whether the template renders
	// with the resolved variables, so a missing variable is reported
	// once per style instead of once per file.
	checked syncx.Map[string, *renderCheck]
}

type renderCheck struct{ err error }

func (a *app) Flags(fs *flag.FlagSet) {
	getenv := a.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	fs.StringVar(&a.dir, "dir", ".", "Process files under `directory`.")
	fs.StringVar(&a.tmpl, "tmpl", "", "Header `template`: a predefined name ("+strings.Join(templates.Names(), ", ")+") or a path to a template file.")
	a.owner = envflag.Value("owner", "LICENSEHEADERS_OWNER", "", "Copyright `owner`.", fs, getenv)
	a.years = envflag.Value("years", "LICENSEHEADERS_YEARS", "", "Copyright `years`, a year or a YYYY-YYYY range.", fs, getenv)
	fs.StringVar(&a.projName, "projname", "", "Project `name`.")
	fs.StringVar(&a.projURL, "projurl", "", "Project `URL`.")
	fs.Func("exclude", "Skip paths containing `pattern`. Can be repeated.", func(s string) error {
		a.exclude = append(a.exclude, s)
		return nil
	})
	fs.BoolVar(&a.addOnly, "add-only", false, "Only add missing headers, never touch existing ones.")
	fs.BoolVar(&a.refreshYears, "refresh-years", false, "Extend the year range of existing headers to the current year.")
	fs.BoolVar(&a.backup, "backup", false, "Keep a .bak copy of each rewritten file.")
	fs.BoolVar(&a.dry, "dry", false, "Report what would change, without writing anything.")
	fs.IntVar(&a.jobs, "jobs", runtime.GOMAXPROCS(0), "Process up to `n` files concurrently.")
	fs.BoolVar(&a.verbose, "v", false, "Enable debug logging.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	if a.verbose {
		logger.Get(ctx).Level.Set(slog.LevelDebug)
	}

	if a.tmpl == "" && *a.years == "" {
		return fmt.Errorf("%w: pass -tmpl, -years or both; with neither there is nothing to do", cli.ErrInvalidArgs)
	}
	if a.jobs < 1 {
		return fmt.Errorf("%w: -jobs must be positive", cli.ErrInvalidArgs)
	}

	var tpl header.Template
	if a.tmpl != "" {
		text, err := a.loadTemplate()
		if err != nil {
			return err
		}
		tpl = header.NewTemplate(text)
	}

	vars := header.Vars{}
	if *a.owner != "" {
		vars["owner"] = *a.owner
	}
	if *a.years != "" {
		vars["years"] = *a.years
	} else {
		vars["years"] = strconv.Itoa(time.Now().Year())
	}
	if a.projName != "" {
		vars["projectname"] = a.projName
	}
	if a.projURL != "" {
		vars["projecturl"] = a.projURL
	}
	opts := header.Options{
		Template:     tpl,
		Vars:         vars,
		YearsGiven:   *a.years != "",
		RefreshYears: a.refreshYears,
	}
	if a.addOnly {
		opts.Mode = header.ModeAddOnly
	}

	var (
		lwg     = syncx.NewLimitedWaitGroup(a.jobs)
		fails   = syncx.Protect(&[]error{})
		changed atomic.Int64
	)

	walkErr := filepath.WalkDir(a.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories like .git, but not the root
			// itself (which may well be ".").
			if path != a.dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if a.excluded(path) {
			logger.Debug(ctx, "excluded", slog.String("path", path))
			return nil
		}
		style, ok := header.ByExtension(filepath.Ext(path))
		if !ok {
			logger.Debug(ctx, "no comment style", slog.String("path", path))
			return nil
		}
		fileOpts := opts
		fileOpts.Style = style
		lwg.Go(func() {
			n, err := a.processFile(ctx, path, fileOpts)
			if err != nil {
				fails.WriteAccess(func(errs *[]error) {
					*errs = append(*errs, fmt.Errorf("%s: %w", path, err))
				})
				return
			}
			changed.Add(n)
		})
		return nil
	})
	lwg.Wait()

	var errs []error
	fails.ReadAccess(func(collected *[]error) {
		errs = append(errs, *collected...)
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if n := changed.Load(); n > 0 && !a.dry {
		env.Logf("Updated %d file(s).", n)
	}
	return nil
}

// loadTemplate resolves the -tmpl argument: a predefined template name
// (exact or unique substring match) wins, any other value is read as a
// file path.
func (a *app) loadTemplate() (string, error) {
	text, err := templates.Resolve(a.tmpl)
	if err == nil {
		return text, nil
	}
	var ae *templates.AmbiguousError
	if errors.As(err, &ae) {
		return "", err
	}
	b, rerr := os.ReadFile(a.tmpl)
	if rerr != nil {
		return "", fmt.Errorf("%w (and no such file: %v)", err, rerr)
	}
	return string(b), nil
}

func (a *app) excluded(path string) bool {
	for _, pat := range a.exclude {
		if strings.Contains(path, pat) {
			return true
		}
	}
	return false
}

// checkRender reports whether the template renders for the given style
// with the resolved variables, memoizing the result per style name.
func (a *app) checkRender(style *header.Style, opts header.Options) error {
	if c, ok := a.checked.Load(style.Name); ok {
		return c.err
	}
	_, err := style.Render(opts.Template, opts.Vars)
	c, _ := a.checked.LoadOrStore(style.Name, &renderCheck{err: err})
	return c.err
}

// processFile transforms a single file, returning 1 if it changed (or
// would change, in dry mode).
func (a *app) processFile(ctx context.Context, path string, opts header.Options) (changed int64, err error) {
	env := cli.GetEnv(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var res header.Result
	if a.tmpl == "" {
		res, err = header.UpdateYears(string(data), opts)
	} else {
		if err := a.checkRender(opts.Style, opts); err != nil {
			return 0, err
		}
		res, err = header.Update(string(data), opts)
	}
	if err != nil {
		return 0, err
	}
	if !res.Changed {
		logger.Debug(ctx, "unchanged", slog.String("path", path))
		return 0, nil
	}

	if a.dry {
		env.Logf("Would update %s.", path)
		return 1, nil
	}

	perm := fs.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}
	if a.backup {
		if err := atomicio.Backup(path); err != nil {
			return 0, err
		}
	}
	if err := atomicio.WriteFile(path, []byte(res.Content), perm); err != nil {
		return 0, err
	}
	logger.Info(ctx, "updated", slog.String("path", path), slog.String("style", opts.Style.Name))
	return 1, nil
}

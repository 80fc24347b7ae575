// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

// Command notify listens on filesystem changes and forwards received events to
// user-defined handlers.
//
// # Usage
//
//	usage: notify [--backend=NAME] [-c command] [-f script file] [-i pattern]... [path]...
//	       notify list
//
// The -c flag registers a command handler, which uses the syntax
// of package template. Notify passes struct to the template,
// splits produced string into command and args, and runs it using
// exec.Command(). Additionally the path and event type values are
// accessible to the process via NOTIFY_PATH and NOTIFY_EVENT
// environment variables.
//
// The struct being passed to the template is:
//
//	type Event struct {
//		Path   string
//		Event  string
//		Kind   string
//		Source string
//		RelID  string
//	}
//
// Values for the Event field are:
//
//   - create
//   - remove
//   - rename
//   - write
//   - modify
//   - access
//   - other
//   - any
//
// Kind holds the full event kind, e.g. Modify(Name(From)). RelID is
// "None" unless the event is related to others, e.g. both sides of a rename.
//
// The -f flag registers a file handler, which works similarly
// to the -c handler. The template is read from the given file instead
// of the command line, and the produced script is run with the system
// shell. Template values can be escaped for the shell with the quote
// function, e.g. {{quote .Path}}.
//
// The -i flag ignores events whose paths all match the given glob pattern,
// e.g. '*.swp' or '**/.git/**'. It may be repeated.
//
// The path arguments tell notify which files or directories to listen on,
// non-recursively. By default notify listens in current working directory.
//
// The --backend flag, or the NOTIFY_BACKEND environment variable, selects the
// backend to listen with; by default the most capable one is used. The list
// command prints the available backends.
//
// If no handler is specified notify prints each event to os.Stdout.
//
// # Example usage
//
// Executing event handler from command line:
//
//	~ $ notify -c 'echo "Hello from handler! (event={{.Event}}, path={{.Path}})"'
//	time=2015-02-17T01:17:40 level=INFO msg=received event="Create(File)" paths=[notify.tmp] source=inotify
//	Hello from handler! (event=create, path=notify.tmp)
//	...
//
// Executing event handler from file:
//
//	~ $ cat > handler <<EOF
//	> echo "Hello from handler! (event={{.Event}}, path={{.Path}})"
//	> EOF
//
//	~ $ notify -f handler
//	time=2015-02-17T01:22:26 level=INFO msg=received event="Create(File)" paths=[notify.tmp] source=inotify
//	Hello from handler! (event=create, path=notify.tmp)
//	...
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/JekaMas/notify/v2"
	_ "github.com/JekaMas/notify/v2/fsnotify"
	_ "github.com/JekaMas/notify/v2/inotify"
)

type cli struct {
	LogLevel  slog.Level `name:"log-level" env:"NOTIFY_LOG_LEVEL" default:"info" help:"Log level (debug, info, warn, error)"`
	LogFormat string     `name:"log-format" env:"NOTIFY_LOG_FORMAT" enum:"text,json" default:"text" help:"Log format (text, json)"`

	Watch watchCommand `cmd:"" default:"withargs" help:"Listen on filesystem changes (default)"`
	List  listCommand  `cmd:"" help:"List available backends"`
}

// AfterApply configures logging for the selected command.
func (c *cli) AfterApply(kongCtx *kong.Context) error {
	log := newLogger(os.Stderr, c.LogLevel, c.LogFormat)
	notify.SetLogger(log)
	kongCtx.Bind(log)
	return nil
}

func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

type watchCommand struct {
	Backend string   `short:"b" env:"NOTIFY_BACKEND" placeholder:"NAME" help:"Backend to listen with, the most capable one by default"`
	Command string   `short:"c" placeholder:"COMMAND" help:"Command to run on received event"`
	File    string   `short:"f" type:"existingfile" placeholder:"FILE" help:"Script file to execute on received event"`
	Ignore  []string `short:"i" placeholder:"PATTERN" help:"Glob pattern of paths to ignore, may be repeated"`
	Paths   []string `arg:"" optional:"" default:"." help:"Paths to listen on"`
}

func (w *watchCommand) backend() (string, error) {
	if w.Backend != "" {
		return w.Backend, nil
	}
	d, ok := notify.Best()
	if !ok {
		return "", errors.New("no backend available")
	}
	return d.Name, nil
}

func (w *watchCommand) handlers() ([]*Handler, error) {
	var handlers []*Handler
	if w.Command != "" {
		h, err := NewHandler(w.Command)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
	}
	if w.File != "" {
		p, err := os.ReadFile(w.File)
		if err != nil {
			return nil, err
		}
		h, err := NewScriptHandler(string(p))
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
	}
	return handlers, nil
}

func (w *watchCommand) Run(ctx context.Context, log *slog.Logger) error {
	handlers, err := w.handlers()
	if err != nil {
		return err
	}
	filter, err := NewFilter(w.Ignore)
	if err != nil {
		return err
	}
	name, err := w.backend()
	if err != nil {
		return err
	}
	b, err := notify.Open(name, w.Paths)
	if err != nil {
		return err
	}
	defer b.Close()
	log.Debug("listening", "backend", name, "capabilities", b.Capabilities(), "paths", w.Paths)

	var run []chan<- Event
	for _, h := range handlers {
		c := h.Daemon(log)
		defer close(c)
		run = append(run, c)
	}
	err = notify.Drive(ctx, b, func(ev notify.Event) error {
		if filter.Ignored(ev) {
			log.Debug("ignored", "event", ev.Kind, "paths", ev.Paths)
			return nil
		}
		log.Info("received", "event", ev.Kind, "paths", ev.Paths, "relid", ev.RelID, "source", ev.Source)
		if len(run) == 0 {
			fmt.Println(ev)
			return nil
		}
		for _, e := range NewEvents(ev) {
			for _, c := range run {
				select {
				case c <- e:
				default:
					log.Warn("event dropped due to slow handler", "event", e.Event, "path", e.Path)
				}
			}
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type listCommand struct{}

func (listCommand) Run() error {
	return list(os.Stdout)
}

func list(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tCAPABILITIES")
	for _, d := range notify.Descriptors() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.Version, d.Capabilities())
	}
	return tw.Flush()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var c cli
	kongCtx := kong.Parse(&c,
		kong.Name("notify"),
		kong.Description("Listens on filesystem changes and forwards received events to user-defined handlers."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	kongCtx.FatalIfErrorf(kongCtx.Run())
}

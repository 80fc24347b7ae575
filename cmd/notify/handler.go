// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"text/template"

	"github.com/kballard/go-shellquote"

	"github.com/JekaMas/notify/v2"
)

// Event is the value handler templates are executed with.
type Event struct {
	Path   string
	Event  string
	Kind   string
	Source string
	RelID  string
}

// NewEvents converts ev into one template value per path. An event without
// paths gives a single value with an empty Path.
func NewEvents(ev notify.Event) []Event {
	e := Event{
		Event:  eventName(ev.Kind),
		Kind:   ev.Kind.String(),
		Source: ev.Source,
		RelID:  ev.RelID.String(),
	}
	if len(ev.Paths) == 0 {
		return []Event{e}
	}
	events := make([]Event, 0, len(ev.Paths))
	for _, p := range ev.Paths {
		e.Path = p
		events = append(events, e)
	}
	return events
}

func eventName(k notify.EventKind) string {
	switch k.Class() {
	case notify.ClassCreate:
		return "create"
	case notify.ClassRemove:
		return "remove"
	case notify.ClassModify:
		mk, _ := k.Modify()
		if _, ok := mk.Name(); ok {
			return "rename"
		}
		if _, ok := mk.Data(); ok {
			return "write"
		}
		return "modify"
	case notify.ClassAccess:
		return "access"
	case notify.ClassOther:
		return "other"
	default:
		return "any"
	}
}

// environ gives the process environment without the variables set for
// handlers.
func environ() []string {
	var env []string
	for _, s := range os.Environ() {
		if strings.HasPrefix(s, "NOTIFY_PATH=") || strings.HasPrefix(s, "NOTIFY_EVENT=") {
			continue
		}
		env = append(env, s)
	}
	return env
}

var funcs = template.FuncMap{
	"quote": func(s string) string { return shellquote.Join(s) },
}

// Handler runs a templated command for each event.
type Handler struct {
	tmpl  *template.Template
	env   []string
	shell bool
}

// NewHandler parses text as a handler template. The produced string is split
// into command and args and run directly.
func NewHandler(text string) (*Handler, error) {
	tmpl, err := template.New("main.Handler").Funcs(funcs).Parse(text)
	if err != nil {
		return nil, err
	}
	return &Handler{tmpl: tmpl, env: environ()}, nil
}

// NewScriptHandler parses text as a handler template. The produced script is
// run with the system shell; use the quote function to escape values, e.g.
// {{quote .Path}}.
func NewScriptHandler(text string) (*Handler, error) {
	h, err := NewHandler(text)
	if err != nil {
		return nil, err
	}
	h.shell = true
	return h, nil
}

// Command gives the command run for e.
func (h *Handler) Command(e Event) (*exec.Cmd, error) {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, e); err != nil {
		return nil, err
	}
	s := buf.String()
	var cmd *exec.Cmd
	switch {
	case !h.shell:
		args, err := shellquote.Split(s)
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return nil, errors.New("empty command")
		}
		cmd = exec.Command(args[0], args[1:]...)
	case runtime.GOOS == "windows":
		cmd = exec.Command("cmd", "/c", s)
	default:
		cmd = exec.Command("/bin/sh", "-c", s)
	}
	cmd.Env = append(h.env[:len(h.env):len(h.env)], "NOTIFY_PATH="+e.Path, "NOTIFY_EVENT="+e.Event)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// Run runs the command for e and waits for it to finish.
func (h *Handler) Run(e Event) error {
	cmd, err := h.Command(e)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Daemon runs the handler for each event sent to the returned channel, one at
// a time, until the channel is closed. Sends block while an event is handled.
func (h *Handler) Daemon(log *slog.Logger) chan<- Event {
	c := make(chan Event)
	go func() {
		for e := range c {
			if err := h.Run(e); err != nil {
				log.Error("handler error", "event", e.Event, "path", e.Path, "err", err)
			}
		}
	}()
	return c
}

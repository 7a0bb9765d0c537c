// Package script replays a recorded session through the form controller.
//
// A script is a YAML document with a list of steps. Each step is one user
// interaction: filling fields, picking files, submitting, or clicking an
// item action. Records are targeted by a name bound with `as` on submit,
// or by their 1-based position in the current list.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/form"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/render"
)

var (
	ErrUnknownOp = errors.New("unknown op")
	ErrNoTarget  = errors.New("step needs ref or index")
)

// Op names.
const (
	OpFill       = "fill"
	OpFiles      = "files"
	OpAddFile    = "add_file"
	OpClearFiles = "clear_files"
	OpSubmit     = "submit"
	OpCreate     = "create"
	OpEdit       = "edit"
	OpCancel     = "cancel"
	OpToggle     = "toggle"
	OpDelete     = "delete"
)

type Script struct {
	SeedExample bool   `yaml:"seed_example"`
	Steps       []Step `yaml:"steps"`
}

// Step is one interaction. Nil text fields are left untouched by fill.
type Step struct {
	Op          string   `yaml:"op"`
	Ref         string   `yaml:"ref,omitempty"`
	Index       int      `yaml:"index,omitempty"`
	As          string   `yaml:"as,omitempty"`
	Title       *string  `yaml:"title,omitempty"`
	Description *string  `yaml:"description,omitempty"`
	Due         *string  `yaml:"due,omitempty"`
	Assignee    *string  `yaml:"assignee,omitempty"`
	Files       []string `yaml:"files,omitempty"`
}

// Parse decodes a script. Unknown keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	return &s, nil
}

func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Runner applies steps to a controller, remembering names bound by `as`.
type Runner struct {
	ctrl  *form.Controller
	names map[string]model.ID
	log   *log.Logger
}

func NewRunner(ctrl *form.Controller, l *log.Logger) *Runner {
	if l == nil {
		l = log.New(io.Discard)
	}
	return &Runner{ctrl: ctrl, names: make(map[string]model.ID), log: l}
}

// Run applies every step in order and stops at the first malformed one.
func (r *Runner) Run(s *Script) error {
	for i, st := range s.Steps {
		if err := r.Apply(st); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
	}
	return nil
}

// Apply performs a single step.
func (r *Runner) Apply(st Step) error {
	r.log.Debug("step", "op", st.Op, "ref", st.Ref, "index", st.Index)
	switch st.Op {
	case OpFill:
		r.fill(st)
	case OpFiles:
		r.ctrl.SelectFiles(st.Files...)
	case OpAddFile:
		for _, f := range st.Files {
			r.ctrl.AddFile(f)
		}
	case OpClearFiles:
		r.ctrl.ClearFiles()
	case OpSubmit:
		r.submit(st.As)
	case OpCreate:
		r.fill(st)
		r.ctrl.SelectFiles(st.Files...)
		r.submit(st.As)
	case OpCancel:
		r.ctrl.Reset()
	case OpEdit:
		return r.dispatch(render.Edit, st)
	case OpToggle:
		return r.dispatch(render.ToggleComplete, st)
	case OpDelete:
		return r.dispatch(render.Delete, st)
	default:
		return ErrUnknownOp
	}
	return nil
}

func (r *Runner) fill(st Step) {
	f := r.ctrl.Fields()
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&f.Title, st.Title)
	set(&f.Description, st.Description)
	set(&f.Due, st.Due)
	set(&f.Assignee, st.Assignee)
	r.ctrl.SetFields(f)
}

func (r *Runner) submit(as string) {
	id, ok := r.ctrl.Submit()
	if ok && as != "" {
		r.names[as] = id
	}
}

func (r *Runner) dispatch(kind render.ActionKind, st Step) error {
	id, err := r.resolve(st)
	if err != nil {
		return err
	}
	r.ctrl.Dispatch(render.Action{Kind: kind, ID: id})
	return nil
}

// resolve maps a step target to an id. Targets that match nothing yield an
// id no record has, so the action becomes a no-op.
func (r *Runner) resolve(st Step) (model.ID, error) {
	switch {
	case st.Ref != "":
		if id, ok := r.names[st.Ref]; ok {
			return id, nil
		}
		return model.ID(st.Ref), nil
	case st.Index > 0:
		todos := r.ctrl.Store().Todos()
		if st.Index <= len(todos) {
			return todos[st.Index-1].ID, nil
		}
		return "", nil
	}
	return "", ErrNoTarget
}

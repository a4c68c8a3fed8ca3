// Package js exposes a synthetic document and computePosition to
// JavaScript through goja, so positioning scenarios and custom middleware
// can be scripted.
package js

import (
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"floatpos/pkg/dom"
)

// Engine executes JavaScript against a synthetic document.
type Engine struct {
	vm  *goja.Runtime
	log *zap.Logger
	ctx *domContext
}

// New creates a new JS engine with a fresh goja runtime. console output
// goes to log; a nil log discards it.
func New(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := goja.New()
	e := &Engine{vm: vm, log: log}

	c := &consoleAPI{log: log.Named("console")}
	c.register(vm)

	return e
}

// Bind points the document and window globals at doc and registers the
// positioning functions. Binding again replaces the previous document.
func (e *Engine) Bind(doc *dom.Document) {
	e.ctx = registerDocument(e.vm, doc)
	registerPositioning(e.ctx, e.log)
}

// Execute binds doc and runs the scripts in order, stopping at the first
// error.
func (e *Engine) Execute(doc *dom.Document, scripts ...string) error {
	e.Bind(doc)
	for i, script := range scripts {
		if _, err := e.vm.RunString(script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}

// Run evaluates one script and returns its completion value converted to
// Go (nil for undefined).
func (e *Engine) Run(name, script string) (any, error) {
	v, err := e.vm.RunScript(name, script)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v.Export(), nil
}

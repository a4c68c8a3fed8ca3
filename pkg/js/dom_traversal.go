package js

import (
	"github.com/dop251/goja"

	"floatpos/pkg/dom"
)

// Traversal property methods on elementAccessor

func (e *elementAccessor) firstElementChild() goja.Value {
	if len(e.el.Children) == 0 {
		return goja.Null()
	}
	return e.ctx.elementProxy(e.el.Children[0])
}

func (e *elementAccessor) lastElementChild() goja.Value {
	if len(e.el.Children) == 0 {
		return goja.Null()
	}
	return e.ctx.elementProxy(e.el.Children[len(e.el.Children)-1])
}

func (e *elementAccessor) nextElementSibling() goja.Value {
	siblings, i := e.siblingIndex()
	if i < 0 || i+1 >= len(siblings) {
		return goja.Null()
	}
	return e.ctx.elementProxy(siblings[i+1])
}

func (e *elementAccessor) previousElementSibling() goja.Value {
	siblings, i := e.siblingIndex()
	if i <= 0 {
		return goja.Null()
	}
	return e.ctx.elementProxy(siblings[i-1])
}

// siblingIndex returns the parent's children and the index of this
// element among them, or -1 when detached.
func (e *elementAccessor) siblingIndex() ([]*dom.Element, int) {
	parent, ok := e.el.Parent().(*dom.Element)
	if !ok {
		return nil, -1
	}
	for i, c := range parent.Children {
		if c == e.el {
			return parent.Children, i
		}
	}
	return nil, -1
}

package js

import (
	"github.com/dop251/goja"

	"floatpos/pkg/dom"
)

// appendChildFn returns a JS function that implements node.appendChild(child).
// Moving a popup between containers changes its offset parent and clipping
// ancestors for the next computePosition call.
func (e *elementAccessor) appendChildFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'appendChild': 1 argument required"))
		}
		child := e.ctx.unwrapElement(call.Arguments[0])
		if child == nil {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'appendChild': parameter is not a Node"))
		}
		if child.ContainsElement(e.el) {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'appendChild': The new child element contains the parent"))
		}
		// AddChild detaches child from its old parent.
		e.el.AddChild(child)
		return e.ctx.elementProxy(child)
	}
}

// removeChildFn returns a JS function that implements node.removeChild(child).
func (e *elementAccessor) removeChildFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'removeChild': 1 argument required"))
		}
		child := e.ctx.unwrapElement(call.Arguments[0])
		if child == nil {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'removeChild': parameter is not a Node"))
		}
		removed := e.el.RemoveChild(child)
		if removed == nil {
			panic(e.ctx.vm.NewTypeError("Failed to execute 'removeChild': The node to be removed is not a child of this node"))
		}
		return e.ctx.elementProxy(removed)
	}
}

// removeFn returns a JS function for element.remove().
func (e *elementAccessor) removeFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if parent, ok := e.el.Parent().(*dom.Element); ok {
			parent.RemoveChild(e.el)
		}
		return goja.Undefined()
	}
}

// attachShadowFn returns a JS function for element.attachShadow().
func (e *elementAccessor) attachShadowFn() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		return e.ctx.elementProxy(e.el.AttachShadow())
	}
}

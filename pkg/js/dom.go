package js

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dop251/goja"

	"floatpos/pkg/css"
	"floatpos/pkg/dom"
	"floatpos/pkg/geom"
)

// domContext holds shared state for DOM bindings within a single execution.
// It maintains an element-to-proxy cache so the same JS object is returned
// for the same underlying *dom.Element (needed for === identity checks).
type domContext struct {
	vm    *goja.Runtime
	doc   *dom.Document
	cache map[*dom.Element]goja.Value
}

func newDOMContext(vm *goja.Runtime, doc *dom.Document) *domContext {
	return &domContext{
		vm:    vm,
		doc:   doc,
		cache: make(map[*dom.Element]goja.Value),
	}
}

// registerDocument sets up the `document` and `window` globals.
func registerDocument(vm *goja.Runtime, doc *dom.Document) *domContext {
	ctx := newDOMContext(vm, doc)

	docObj := vm.NewObject()
	docObj.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Null()
		}
		el := doc.GetElementByID(call.Arguments[0].String())
		if el == nil {
			return goja.Null()
		}
		return ctx.elementProxy(el)
	})
	docObj.Set("getElementsByTagName", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return ctx.elementArray(nil)
		}
		tag := strings.ToLower(call.Arguments[0].String())
		var found []*dom.Element
		doc.DocumentElement().Walk(func(e *dom.Element) bool {
			if e.TagName == tag && !e.IsShadowRoot() {
				found = append(found, e)
			}
			return true
		})
		return ctx.elementArray(found)
	})
	docObj.Set("documentElement", ctx.elementProxy(doc.DocumentElement()))
	docObj.Set("body", ctx.elementProxy(doc.Body()))
	vm.Set("document", docObj)

	win := vm.NewObject()
	if w := doc.Window; w != nil {
		win.Set("innerWidth", w.InnerWidth)
		win.Set("innerHeight", w.InnerHeight)
		win.Set("pageXOffset", w.PageXOffset)
		win.Set("pageYOffset", w.PageYOffset)
	}
	vm.Set("window", win)
	return ctx
}

// elementArray creates a JS array of element proxies.
func (ctx *domContext) elementArray(els []*dom.Element) goja.Value {
	arr := ctx.vm.NewArray()
	for i, el := range els {
		arr.Set(strconv.Itoa(i), ctx.elementProxy(el))
	}
	arr.Set("length", len(els))
	return arr
}

// elementProxy creates (or retrieves from cache) a JS DynamicObject wrapping an element.
func (ctx *domContext) elementProxy(el *dom.Element) goja.Value {
	if v, ok := ctx.cache[el]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&elementAccessor{ctx: ctx, el: el})
	ctx.cache[el] = v
	return v
}

// nodeOrNull proxies n when it is one of our elements.
func (ctx *domContext) nodeOrNull(n dom.Node) goja.Value {
	if el, ok := n.(*dom.Element); ok && el != nil {
		return ctx.elementProxy(el)
	}
	return goja.Null()
}

// unwrapElement extracts the *dom.Element behind a proxy, or nil.
func (ctx *domContext) unwrapElement(val goja.Value) *dom.Element {
	if !present(val) {
		return nil
	}
	obj := val.ToObject(ctx.vm)
	for el, cached := range ctx.cache {
		if cached.SameAs(obj) {
			return el
		}
	}
	return nil
}

func present(v goja.Value) bool {
	return v != nil && !goja.IsUndefined(v) && !goja.IsNull(v)
}

// rectObject is the DOMRect shape returned by getBoundingClientRect.
func rectObject(vm *goja.Runtime, r geom.ClientRect) goja.Value {
	obj := vm.NewObject()
	obj.Set("x", r.X)
	obj.Set("y", r.Y)
	obj.Set("width", r.Width)
	obj.Set("height", r.Height)
	obj.Set("top", r.Top)
	obj.Set("right", r.Right)
	obj.Set("bottom", r.Bottom)
	obj.Set("left", r.Left)
	return obj
}

var elementKeys = []string{
	"id", "tagName", "nodeName",
	"parentElement", "parentNode", "host", "shadowRoot", "assignedSlot",
	"children", "childElementCount", "firstElementChild", "lastElementChild",
	"nextElementSibling", "previousElementSibling",
	"style", "getBoundingClientRect",
	"offsetWidth", "offsetHeight", "clientLeft", "clientTop", "clientWidth", "clientHeight",
	"scrollLeft", "scrollTop", "scrollWidth", "scrollHeight",
	"contains", "appendChild", "removeChild", "remove", "attachShadow",
}

// elementAccessor implements goja.DynamicObject to intercept property access
// on element proxies.
type elementAccessor struct {
	ctx *domContext
	el  *dom.Element
}

func (e *elementAccessor) Get(key string) goja.Value {
	vm := e.ctx.vm
	el := e.el

	switch key {
	case "id":
		return vm.ToValue(el.ID)
	case "tagName", "nodeName":
		if el.IsShadowRoot() {
			return vm.ToValue(el.TagName)
		}
		return vm.ToValue(strings.ToUpper(el.TagName))
	case "parentElement":
		if p, ok := el.Parent().(*dom.Element); ok && !p.IsShadowRoot() {
			return e.ctx.elementProxy(p)
		}
		return goja.Null()
	case "parentNode":
		return e.ctx.nodeOrNull(el.Parent())
	case "host":
		return e.ctx.nodeOrNull(el.Host())
	case "shadowRoot":
		if root := el.ShadowRoot(); root != nil {
			return e.ctx.elementProxy(root)
		}
		return goja.Null()
	case "assignedSlot":
		return e.ctx.nodeOrNull(el.AssignedSlot())
	case "style":
		return vm.NewDynamicObject(&styleAccessor{vm: vm, el: el})
	case "getBoundingClientRect":
		return vm.ToValue(func(goja.FunctionCall) goja.Value {
			return rectObject(vm, el.BoundingClientRect())
		})
	case "offsetWidth":
		return vm.ToValue(el.Offset.Width)
	case "offsetHeight":
		return vm.ToValue(el.Offset.Height)
	case "clientLeft":
		return vm.ToValue(el.Client.X)
	case "clientTop":
		return vm.ToValue(el.Client.Y)
	case "clientWidth":
		return vm.ToValue(el.Client.Width)
	case "clientHeight":
		return vm.ToValue(el.Client.Height)
	case "scrollLeft":
		return vm.ToValue(el.ScrollOffset.X)
	case "scrollTop":
		return vm.ToValue(el.ScrollOffset.Y)
	case "scrollWidth":
		return vm.ToValue(el.ScrollExtent.Width)
	case "scrollHeight":
		return vm.ToValue(el.ScrollExtent.Height)
	case "contains":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			other := e.ctx.unwrapElement(call.Argument(0))
			if other == nil {
				return vm.ToValue(false)
			}
			return vm.ToValue(el.ContainsElement(other))
		})

	case "children":
		return e.ctx.elementArray(el.Children)
	case "childElementCount":
		return vm.ToValue(len(el.Children))
	case "firstElementChild":
		return e.firstElementChild()
	case "lastElementChild":
		return e.lastElementChild()
	case "nextElementSibling":
		return e.nextElementSibling()
	case "previousElementSibling":
		return e.previousElementSibling()

	case "appendChild":
		return vm.ToValue(e.appendChildFn())
	case "removeChild":
		return vm.ToValue(e.removeChildFn())
	case "remove":
		return vm.ToValue(e.removeFn())
	case "attachShadow":
		return vm.ToValue(e.attachShadowFn())
	}
	return goja.Undefined()
}

func (e *elementAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "id":
		e.el.ID = val.String()
		return true
	case "scrollLeft":
		e.el.ScrollOffset.X = val.ToFloat()
		return true
	case "scrollTop":
		e.el.ScrollOffset.Y = val.ToFloat()
		return true
	}
	return false
}

func (e *elementAccessor) Has(key string) bool {
	for _, k := range elementKeys {
		if k == key {
			return true
		}
	}
	return false
}

func (e *elementAccessor) Delete(key string) bool {
	return false
}

func (e *elementAccessor) Keys() []string {
	return elementKeys
}

// styleAccessor maps JS camelCase property access to the element's
// computed style. Assigning a shorthand expands it the way an inline style
// declaration would.
type styleAccessor struct {
	vm *goja.Runtime
	el *dom.Element
}

func (s *styleAccessor) Get(key string) goja.Value {
	return s.vm.ToValue(s.el.Style.Value(camelToKebab(key), ""))
}

func (s *styleAccessor) Set(key string, val goja.Value) bool {
	if s.el.Style == nil {
		s.el.Style = css.NewStyle()
	}
	decl := css.ParseInlineStyle(camelToKebab(key) + ": " + val.String())
	for prop, v := range decl.Properties {
		s.el.Style.Set(prop, v)
	}
	return true
}

func (s *styleAccessor) Has(key string) bool {
	return true
}

func (s *styleAccessor) Delete(key string) bool {
	if s.el.Style != nil {
		delete(s.el.Style.Properties, camelToKebab(key))
	}
	return true
}

func (s *styleAccessor) Keys() []string {
	if s.el.Style == nil {
		return nil
	}
	keys := make([]string, 0, len(s.el.Style.Properties))
	for k := range s.el.Style.Properties {
		keys = append(keys, k)
	}
	return keys
}

// camelToKebab converts a JS camelCase property name to CSS kebab-case.
func camelToKebab(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

package js

import (
	"github.com/dop251/goja"
	"go.uber.org/zap"

	"floatpos/pkg/dom"
	"floatpos/pkg/geom"
	"floatpos/pkg/position"
)

// registerPositioning installs computePosition and createVirtualElement.
//
// computePosition(anchor, popup, options) runs synchronously and returns
// {x, y, placement, strategy}. anchor is an element or any object with a
// getBoundingClientRect method (and optionally contextElement). options
// mirrors position.Config: placement, strategy, rtl, autoPlacement (bool
// or {enabled, excludeSides, padding}), offset (number or {mainAxis,
// crossAxis}), middleware (a function) and middlewareOrder.
func registerPositioning(ctx *domContext, log *zap.Logger) {
	vm := ctx.vm

	vm.Set("computePosition", func(call goja.FunctionCall) goja.Value {
		anchor := ctx.anchorArg(call.Argument(0))
		var popup dom.Node
		if el := ctx.unwrapElement(call.Argument(1)); el != nil {
			popup = el
		} else if present(call.Argument(1)) {
			panic(vm.NewTypeError("computePosition: popup is not an element"))
		}
		cfg := ctx.computeOptions(call.Argument(2))
		cfg.Logger = log

		res, err := position.ComputePosition(anchor, popup, cfg)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		strategy := cfg.Strategy
		if strategy == "" {
			strategy = geom.StrategyAbsolute
		}
		out := vm.NewObject()
		out.Set("x", res.X)
		out.Set("y", res.Y)
		out.Set("placement", string(res.Placement))
		out.Set("strategy", string(strategy))
		return out
	})

	vm.Set("createVirtualElement", func(call goja.FunctionCall) goja.Value {
		r := rectArg(vm, call.Argument(0))
		obj := vm.NewObject()
		obj.Set("getBoundingClientRect", func(goja.FunctionCall) goja.Value {
			return rectObject(vm, r.ClientRect())
		})
		if present(call.Argument(1)) {
			obj.Set("contextElement", call.Argument(1))
		}
		return obj
	})
}

// anchorArg resolves an element proxy or a virtual element. Virtual
// elements are measured once, here.
func (ctx *domContext) anchorArg(v goja.Value) dom.Measurer {
	vm := ctx.vm
	if el := ctx.unwrapElement(v); el != nil {
		return el
	}
	if !present(v) {
		return nil
	}
	obj := v.ToObject(vm)
	measure, ok := goja.AssertFunction(obj.Get("getBoundingClientRect"))
	if !ok {
		panic(vm.NewTypeError("computePosition: anchor is neither an element nor a virtual element"))
	}
	rv, err := measure(obj)
	if err != nil {
		panic(vm.NewGoError(err))
	}
	virtual := &dom.VirtualElement{Rect: rectArg(vm, rv)}
	if el := ctx.unwrapElement(obj.Get("contextElement")); el != nil {
		virtual.Context = el
	}
	return virtual
}

// rectArg reads {x, y, width, height}, falling back to left and top.
func rectArg(vm *goja.Runtime, v goja.Value) geom.Rect {
	if !present(v) {
		panic(vm.NewTypeError("expected a rect"))
	}
	obj := v.ToObject(vm)
	num := func(names ...string) float64 {
		for _, n := range names {
			if f := obj.Get(n); present(f) {
				return f.ToFloat()
			}
		}
		return 0
	}
	return geom.NewRect(num("x", "left"), num("y", "top"), num("width"), num("height"))
}

func (ctx *domContext) computeOptions(v goja.Value) position.Config {
	vm := ctx.vm
	var cfg position.Config
	if !present(v) {
		return cfg
	}
	obj := v.ToObject(vm)

	if p := obj.Get("placement"); present(p) {
		placement, err := geom.ParsePlacement(p.String())
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		cfg.Placement = placement
	}
	if s := obj.Get("strategy"); present(s) {
		strategy, err := geom.ParseStrategy(s.String())
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		cfg.Strategy = strategy
	}
	if r := obj.Get("rtl"); present(r) {
		cfg.RTL = r.ToBoolean()
	}
	if a := obj.Get("autoPlacement"); present(a) {
		cfg.AutoPlacement = ctx.autoPlacementOption(a)
	}
	if o := obj.Get("offset"); present(o) {
		cfg.Offset = ctx.offsetOption(o)
	}
	if m := obj.Get("middleware"); present(m) {
		fn, ok := goja.AssertFunction(m)
		if !ok {
			panic(vm.NewTypeError("computePosition: middleware must be a function"))
		}
		cfg.Middleware = ctx.middleware(fn)
	}
	if o := obj.Get("middlewareOrder"); present(o) {
		order, err := position.ParseMiddlewareOrder(o.String())
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		cfg.MiddlewareOrder = order
	}
	return cfg
}

func (ctx *domContext) autoPlacementOption(v goja.Value) position.AutoPlacement {
	vm := ctx.vm
	if b, ok := v.Export().(bool); ok {
		return position.AutoPlacement{Enabled: b}
	}
	obj := v.ToObject(vm)
	auto := position.AutoPlacement{Enabled: true}
	if e := obj.Get("enabled"); present(e) {
		auto.Enabled = e.ToBoolean()
	}
	if p := obj.Get("padding"); present(p) {
		auto.Padding = p.ToFloat()
	}
	if ex := obj.Get("excludeSides"); present(ex) {
		list, ok := ex.Export().([]any)
		if !ok {
			panic(vm.NewTypeError("autoPlacement.excludeSides must be an array"))
		}
		for _, item := range list {
			name, _ := item.(string)
			side, err := geom.ParseSide(name)
			if err != nil {
				panic(vm.NewTypeError(err.Error()))
			}
			auto.ExcludeSides = append(auto.ExcludeSides, side)
		}
	}
	return auto
}

func (ctx *domContext) offsetOption(v goja.Value) geom.OffsetSpec {
	switch v.Export().(type) {
	case int64, float64:
		return geom.Offset(v.ToFloat())
	}
	obj := v.ToObject(ctx.vm)
	var spec geom.OffsetSpec
	if m := obj.Get("mainAxis"); present(m) {
		spec.MainAxis = m.ToFloat()
	}
	if c := obj.Get("crossAxis"); present(c) {
		spec.CrossAxis = c.ToFloat()
	}
	return spec
}

// middleware adapts a JS function to a pipeline stage. The function gets
// the current state and returns undefined, {x, y} (either may be omitted)
// or {placement}.
func (ctx *domContext) middleware(fn goja.Callable) position.Middleware {
	vm := ctx.vm
	return func(s position.State) (position.MiddlewareResult, error) {
		ret, err := fn(goja.Undefined(), ctx.stateObject(s))
		if err != nil {
			return position.MiddlewareResult{}, err
		}
		var res position.MiddlewareResult
		if !present(ret) {
			return res, nil
		}
		obj := ret.ToObject(vm)
		if p := obj.Get("placement"); present(p) {
			res.Placement = geom.Placement(p.String())
		}
		x, y := obj.Get("x"), obj.Get("y")
		if present(x) || present(y) {
			res.Coordinates = &position.PartialCoordinates{}
			if present(x) {
				f := x.ToFloat()
				res.Coordinates.X = &f
			}
			if present(y) {
				f := y.ToFloat()
				res.Coordinates.Y = &f
			}
		}
		return res, nil
	}
}

func (ctx *domContext) stateObject(s position.State) goja.Value {
	vm := ctx.vm
	obj := vm.NewObject()
	obj.Set("x", s.Coordinates.X)
	obj.Set("y", s.Coordinates.Y)
	obj.Set("placement", string(s.Placement))
	obj.Set("strategy", string(s.Strategy))
	obj.Set("rtl", s.RTL)

	rects := vm.NewObject()
	rects.Set("anchor", rectObject(vm, s.Rects.Anchor.ClientRect()))
	rects.Set("popup", rectObject(vm, s.Rects.Popup.ClientRect()))
	obj.Set("rects", rects)

	if el, ok := s.Anchor.(*dom.Element); ok && el != nil {
		obj.Set("anchor", ctx.elementProxy(el))
	}
	obj.Set("popup", ctx.nodeOrNull(s.Popup))

	obj.Set("detectOverflow", func(call goja.FunctionCall) goja.Value {
		o := position.DetectOverflow(s, ctx.overflowOptions(call.Argument(0)))
		out := vm.NewObject()
		out.Set("top", o.Top)
		out.Set("right", o.Right)
		out.Set("bottom", o.Bottom)
		out.Set("left", o.Left)
		return out
	})
	return obj
}

func (ctx *domContext) overflowOptions(v goja.Value) position.OverflowOptions {
	var opts position.OverflowOptions
	if !present(v) {
		return opts
	}
	obj := v.ToObject(ctx.vm)
	if p := obj.Get("padding"); present(p) {
		opts.Padding = p.ToFloat()
	}
	if r := obj.Get("rootBoundary"); present(r) {
		opts.RootBoundary = position.RootBoundary(r.String())
	}
	if c := obj.Get("elementContext"); present(c) {
		opts.ElementContext = position.ElementContext(c.String())
	}
	if a := obj.Get("altBoundary"); present(a) {
		opts.AltBoundary = a.ToBoolean()
	}
	return opts
}

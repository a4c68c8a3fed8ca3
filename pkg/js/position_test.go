package js

import (
	"strings"
	"testing"

	"floatpos/pkg/dom"
	"floatpos/pkg/geom"
)

func TestComputePositionDefaults(t *testing.T) {
	run(t, newDoc(), `
		var pos = computePosition(document.getElementById("anchor"), document.getElementById("popup"));
		if (pos.x !== 110 || pos.y !== 120) throw new Error("coords: " + pos.x + "," + pos.y);
		if (pos.placement !== "bottom") throw new Error("placement: " + pos.placement);
		if (pos.strategy !== "absolute") throw new Error("strategy: " + pos.strategy);
	`)
}

func TestComputePositionAutoPlacement(t *testing.T) {
	doc := dom.NewDocument(&dom.Window{InnerWidth: 1000, InnerHeight: 800})
	container := doc.Body().AddChild(dom.NewElement("div", geom.NewRect(100, 100, 300, 200)).WithStyle("position: relative; overflow: auto"))
	container.AddChild(dom.NewElement("button", geom.NewRect(150, 120, 50, 20)).WithID("anchor"))
	container.AddChild(dom.NewElement("div", geom.NewRect(0, 0, 100, 60)).WithStyle("position: absolute").WithID("popup"))

	run(t, doc, `
		var anchor = document.getElementById("anchor");
		var popup = document.getElementById("popup");
		var pos = computePosition(anchor, popup, {placement: "top", autoPlacement: true});
		if (pos.placement !== "right") throw new Error("placement: " + pos.placement);
		if (pos.x !== 100 || pos.y !== 0) throw new Error("coords: " + pos.x + "," + pos.y);

		var kept = computePosition(anchor, popup, {placement: "top", autoPlacement: {enabled: false}});
		if (kept.placement !== "top") throw new Error("disabled auto placement moved the popup");

		var excluded = computePosition(anchor, popup, {placement: "top", autoPlacement: {excludeSides: ["right", "top"]}});
		if (excluded.placement.indexOf("right") === 0 || excluded.placement.indexOf("top") === 0) {
			throw new Error("excluded side chosen: " + excluded.placement);
		}
	`)
}

func TestComputePositionOffset(t *testing.T) {
	run(t, newDoc(), `
		var anchor = document.getElementById("anchor");
		var popup = document.getElementById("popup");
		var a = computePosition(anchor, popup, {offset: 8});
		if (a.x !== 110 || a.y !== 128) throw new Error("number: " + a.x + "," + a.y);
		var b = computePosition(anchor, popup, {offset: {mainAxis: 4, crossAxis: 6}});
		if (b.x !== 116 || b.y !== 124) throw new Error("object: " + b.x + "," + b.y);
	`)
}

func TestVirtualElements(t *testing.T) {
	run(t, newDoc(), `
		var popup = document.getElementById("popup");
		var cursor = createVirtualElement({x: 500, y: 400, width: 0, height: 0});
		var a = computePosition(cursor, popup, {placement: "right-start"});
		if (a.x !== 500 || a.y !== 400) throw new Error("virtual: " + a.x + "," + a.y);

		var calls = 0;
		var plain = {getBoundingClientRect: function() { calls++; return {left: 200, top: 50, width: 20, height: 20}; }};
		var b = computePosition(plain, popup);
		if (b.x !== 195 || b.y !== 70) throw new Error("plain: " + b.x + "," + b.y);
		if (calls !== 1) throw new Error("measured " + calls + " times");

		var withContext = createVirtualElement({x: 0, y: 0, width: 10, height: 10}, document.body);
		if (withContext.contextElement !== document.body) throw new Error("contextElement");
	`)
}

func TestMiddlewareShift(t *testing.T) {
	doc := dom.NewDocument(&dom.Window{InnerWidth: 1000, InnerHeight: 800})
	doc.Body().AddChild(dom.NewElement("button", geom.NewRect(0, 100, 50, 20)).WithID("anchor"))
	doc.Body().AddChild(dom.NewElement("div", geom.NewRect(0, 0, 100, 10)).WithStyle("position: absolute").WithID("popup"))

	run(t, doc, `
		var seen = null;
		function shift(state) {
			seen = state;
			var o = state.detectOverflow();
			if (o.left > 0) return {x: state.x + o.left};
		}
		var pos = computePosition(document.getElementById("anchor"), document.getElementById("popup"), {middleware: shift});
		if (pos.x !== 0 || pos.y !== 120) throw new Error("coords: " + pos.x + "," + pos.y);
		if (seen.x !== -25) throw new Error("state.x: " + seen.x);
		if (seen.rects.popup.width !== 100) throw new Error("popup rect");
		if (seen.anchor !== document.getElementById("anchor")) throw new Error("state.anchor");
		if (seen.popup !== document.getElementById("popup")) throw new Error("state.popup");
		if (seen.detectOverflow({padding: 5}).left !== 30) throw new Error("padding");
	`)
}

func TestMiddlewarePlacement(t *testing.T) {
	run(t, newDoc(), `
		var pos = computePosition(document.getElementById("anchor"), document.getElementById("popup"), {
			middleware: function(state) { return {placement: "top"}; }
		});
		if (pos.placement !== "top" || pos.x !== 110 || pos.y !== 90) {
			throw new Error("got " + pos.placement + " " + pos.x + "," + pos.y);
		}
	`)
}

func TestComputePositionErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{
			name:   "ambiguous middleware result",
			script: `computePosition(document.getElementById("anchor"), document.getElementById("popup"), {middleware: function() { return {x: 1, placement: "top"}; }});`,
			want:   "sets both coordinates and placement",
		},
		{
			name:   "throwing middleware",
			script: `computePosition(document.getElementById("anchor"), document.getElementById("popup"), {middleware: function() { throw new Error("boom"); }});`,
			want:   "boom",
		},
		{
			name:   "unknown middleware placement",
			script: `computePosition(document.getElementById("anchor"), document.getElementById("popup"), {middleware: function() { return {placement: "sideways"}; }});`,
			want:   "sideways",
		},
		{
			name:   "invalid placement",
			script: `computePosition(document.getElementById("anchor"), document.getElementById("popup"), {placement: "diagonal"});`,
			want:   "TypeError",
		},
		{
			name:   "middleware is not a function",
			script: `computePosition(document.getElementById("anchor"), document.getElementById("popup"), {middleware: 3});`,
			want:   "middleware must be a function",
		},
		{
			name:   "popup is not an element",
			script: `computePosition(document.getElementById("anchor"), {});`,
			want:   "popup is not an element",
		},
		{
			name:   "anchor without a rect",
			script: `computePosition({}, document.getElementById("popup"));`,
			want:   "neither an element nor a virtual element",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(nil).Execute(newDoc(), tt.script)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestComputePositionCatchable(t *testing.T) {
	run(t, newDoc(), `
		var caught = false;
		try {
			computePosition(document.getElementById("anchor"), document.getElementById("popup"), {strategy: "sticky"});
		} catch (e) {
			caught = e instanceof TypeError;
		}
		if (!caught) throw new Error("expected a TypeError");
	`)
}

//go:build js && wasm

// Command mapwasm runs the paint engine inside the dashboard page. Build it
// with GOOS=js GOARCH=wasm and load it next to wasm_exec.js.
package main

import (
	"syscall/js"

	"github.com/abhisek/questmap/internal/config"
	"github.com/abhisek/questmap/internal/engine"
	"github.com/abhisek/questmap/internal/jsdom"
	"github.com/abhisek/questmap/internal/progress"
	"github.com/abhisek/questmap/internal/report"
)

// console reports diagnostics as browser console warnings.
type console struct{}

func (console) Diagnose(d report.Diagnostic) {
	js.Global().Get("console").Call("warn", "questmap: "+d.String())
}

func (console) Painted(report.PaintPass) {}

func main() {
	cfg := config.DefaultConfig()
	p := jsdom.NewPage(cfg.Markable)

	guarded := p.GuardForm()

	// Only the dashboard carries maps. Callbacks die with the program, so
	// stay alive whenever one is registered.
	if len(p.Containers()) == 0 {
		if guarded {
			select {}
		}
		return
	}

	raw, present := p.Payload()
	eng := engine.New(p, raw, present, cfg, console{})

	p.OnLoad(eng.Gate.Loaded)
	p.OnSelect(func(mapType string) {
		eng.SwitchTo(progress.MapType(mapType))
	})
	eng.Start(cfg.InitialMap)

	select {}
}

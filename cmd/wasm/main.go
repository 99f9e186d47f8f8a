//go:build js && wasm

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/goccy/go-json"

	"github.com/himanishpuri/GenreDNA/pkg/genredna"
	"github.com/himanishpuri/GenreDNA/pkg/logger"
)

// Error names surfaced to JavaScript as Error.name.
const (
	errNameInputMissing = "InputMissing"
	errNameRemote       = "RemoteRequestFailed"
	errNameUnreachable  = "TransportUnreachable"
	errNameInternal     = "Error"
)

var backend genredna.PredictionBackend

func errorName(err error) string {
	switch {
	case errors.Is(err, genredna.ErrInputMissing):
		return errNameInputMissing
	case errors.Is(err, genredna.ErrTransportUnreachable):
		return errNameUnreachable
	case errors.Is(err, genredna.ErrRemoteRequestFailed):
		return errNameRemote
	default:
		return errNameInternal
	}
}

func jsError(err error) js.Value {
	e := js.Global().Get("Error").New(err.Error())
	e.Set("name", errorName(err))
	return e
}

// toJS converts v to a plain object by way of its JSON encoding.
func toJS(v any) (js.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return js.Undefined(), err
	}
	return js.Global().Get("JSON").Call("parse", string(data)), nil
}

// promise runs fn on its own goroutine; blocking inside a js.Func callback
// would deadlock the event loop.
func promise(fn func(ctx context.Context) (any, error)) js.Value {
	var executor js.Func
	executor = js.FuncOf(func(this js.Value, args []js.Value) any {
		resolve, reject := args[0], args[1]
		go func() {
			defer executor.Release()

			v, err := fn(context.Background())
			if err != nil {
				reject.Invoke(jsError(err))
				return
			}
			out, err := toJS(v)
			if err != nil {
				reject.Invoke(jsError(err))
				return
			}
			resolve.Invoke(out)
		}()
		return nil
	})
	return js.Global().Get("Promise").New(executor)
}

// predictInput reads {file?: Uint8Array, fileName?, sampleId?}.
func predictInput(args []js.Value) (genredna.PredictInput, error) {
	var in genredna.PredictInput
	if len(args) == 0 || args[0].IsUndefined() || args[0].IsNull() {
		return in, nil
	}
	opts := args[0]
	if opts.Type() != js.TypeObject {
		return in, fmt.Errorf("predict expects an options object")
	}

	if file := opts.Get("file"); !file.IsUndefined() && !file.IsNull() {
		buf := make([]byte, file.Get("length").Int())
		js.CopyBytesToGo(buf, file)
		in.File = bytes.NewReader(buf)
	}
	if name := opts.Get("fileName"); name.Type() == js.TypeString {
		in.FileName = name.String()
	}
	if id := opts.Get("sampleId"); id.Type() == js.TypeString {
		in.SampleID = id.String()
	}
	return in, nil
}

func predict(this js.Value, args []js.Value) any {
	in, err := predictInput(args)
	return promise(func(ctx context.Context) (any, error) {
		if err != nil {
			return nil, err
		}
		return backend.Predict(ctx, in)
	})
}

func listSamples(this js.Value, args []js.Value) any {
	return promise(func(ctx context.Context) (any, error) {
		return backend.ListSamples(ctx)
	})
}

func healthCheck(this js.Value, args []js.Value) any {
	return promise(func(ctx context.Context) (any, error) {
		return backend.HealthCheck(ctx), nil
	})
}

func main() {
	log := logger.GetLogger()

	var baseURL string
	if v := js.Global().Get("GENREDNA_API_URL"); v.Type() == js.TypeString {
		baseURL = v.String()
	}

	var err error
	backend, err = genredna.NewBackend(
		genredna.WithBaseURL(baseURL),
		genredna.WithLogger(log),
	)
	if err != nil {
		log.Errorf("❌ backend setup failed: %v", err)
		return
	}

	api := js.Global().Get("Object").New()
	api.Set("predict", js.FuncOf(predict))
	api.Set("listSamples", js.FuncOf(listSamples))
	api.Set("healthCheck", js.FuncOf(healthCheck))
	api.Set("mode", backend.Mode().String())
	js.Global().Set("genreDNA", api)

	log.Infof("✅ GenreDNA WASM module ready (%s mode)", backend.Mode())

	if target := js.Global().Get("dispatchEvent"); target.Type() == js.TypeFunction {
		event := js.Global().Get("CustomEvent").New("genreDNAReady")
		js.Global().Call("dispatchEvent", event)
	}

	select {}
}

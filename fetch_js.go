package main

import (
	"context"
	"errors"
	"fmt"
	"syscall/js"
)

type fetchError struct {
	path       string
	statusText string
}

func (e *fetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.path, e.statusText)
}

type fetcher struct{}

func (fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b []byte
	var errored bool
	chErr := make(chan error, 2)

	var funcs []js.Func
	funcOf := func(fn func(args []js.Value) interface{}) js.Func {
		f := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			return fn(args)
		})
		funcs = append(funcs, f)
		return f
	}
	defer func() {
		for _, f := range funcs {
			f.Release()
		}
	}()

	js.Global().Call("fetch", path, map[string]interface{}{
		"cache": "no-cache",
	}).Call("then",
		funcOf(func(args []js.Value) interface{} {
			if !args[0].Get("ok").Bool() {
				chErr <- &fetchError{path: path, statusText: args[0].Get("statusText").String()}
				errored = true
				return nil
			}
			return args[0].Call("arrayBuffer")
		}),
		funcOf(func(args []js.Value) interface{} {
			chErr <- &fetchError{path: path, statusText: args[0].Call("toString").String()}
			errored = true
			return nil
		}),
	).Call("then",
		funcOf(func(args []js.Value) interface{} {
			if errored {
				return nil
			}
			array := js.Global().Get("Uint8Array").New(args[0])
			n := array.Get("byteLength").Int()
			b = make([]byte, n)
			js.CopyBytesToGo(b, array)
			chErr <- nil
			return nil
		}),
		funcOf(func(args []js.Value) interface{} {
			chErr <- errors.New("failed to handle received data")
			return nil
		}),
	)

	select {
	case err := <-chErr:
		if err != nil {
			return nil, err
		}
		return b, nil
	case <-ctx.Done():
		// Callbacks may still fire after return. They must stay alive.
		funcs = nil
		return nil, ctx.Err()
	}
}

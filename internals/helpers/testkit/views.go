// Package testkit holds fakes shared by handler tests.
package testkit

import (
	"fmt"
	"io"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// Render is one recorded template render.
type Render struct {
	Name   string
	Layout string
	Bind   fiber.Map
}

// Views is a fiber.Views that records renders instead of executing templates.
type Views struct {
	mu      sync.Mutex
	renders []Render
}

func (v *Views) Load() error { return nil }

func (v *Views) Render(w io.Writer, name string, bind interface{}, layout ...string) error {
	r := Render{Name: name}
	if len(layout) > 0 {
		r.Layout = layout[0]
	}
	if m, ok := bind.(fiber.Map); ok {
		r.Bind = m
	}
	v.mu.Lock()
	v.renders = append(v.renders, r)
	v.mu.Unlock()

	raw, err := sonic.Marshal(r.Bind)
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", r.Bind))
	}
	_, err = fmt.Fprintf(w, "%s %s", name, raw)
	return err
}

// Last returns the most recent render.
func (v *Views) Last() Render {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.renders) == 0 {
		return Render{}
	}
	return v.renders[len(v.renders)-1]
}

// App is a Fiber app wired like production (error handler, locals in
// views) but rendering through v.
func App(v *Views, errorHandler fiber.ErrorHandler) *fiber.App {
	return fiber.New(fiber.Config{
		Views:             v,
		PassLocalsToViews: true,
		ErrorHandler:      errorHandler,
		JSONEncoder:       sonic.Marshal,
		JSONDecoder:       sonic.Unmarshal,
	})
}

// WithLocals sets Locals before the handler chain, standing in for the
// session middleware.
func WithLocals(kv map[string]any) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for k, val := range kv {
			c.Locals(k, val)
		}
		return c.Next()
	}
}

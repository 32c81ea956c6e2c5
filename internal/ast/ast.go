// Package ast defines the expression tree the embedder builds
// programmatically, the structural rewrites it supports before
// lowering, and the Ctx used to drive both.
package ast

import (
	"fmt"

	"exprvm/internal/ir"
)

// Expr is the closed set of expression variants. Every variant supports
// a bottom-up structural rewrite (Optimize) and lowering to IR (Compile).
type Expr interface {
	// Optimize returns a possibly-rewritten tree. Callers pass self so a
	// variant can replace itself wholesale (BinOp(And) becomes an NOp);
	// children must already have been optimized by the time a parent's
	// own rule runs.
	Optimize(self Expr) Expr
	Compile(ctx *Ctx) ir.CompilationResult
}

// Optimize walks e bottom-up: every child is optimized first, then e's
// own rewrite rule (if any) is applied to the result. This is the single
// entry point callers use; Expr.Optimize is the per-variant half of it.
func Optimize(e Expr) Expr {
	return e.Optimize(e)
}

// Ctx is the compile context threaded through lowering: it hands out
// fresh temporaries and labels and tracks which temp a variable name is
// currently bound to.
type Ctx struct {
	nextTemp  ir.TempId
	nextLabel int
	varIds    map[string]ir.TempId
}

// NewCtx creates an empty compile context.
func NewCtx() *Ctx {
	return &Ctx{varIds: make(map[string]ir.TempId)}
}

// NewTemp returns a fresh, never-before-issued temporary.
func (c *Ctx) NewTemp() ir.TempId {
	t := c.nextTemp
	c.nextTemp++
	return t
}

// NewLabel returns a fresh, never-before-issued label name.
func (c *Ctx) NewLabel() string {
	l := fmt.Sprintf("l%d", c.nextLabel)
	c.nextLabel++
	return l
}

// Bind installs name -> t, returning the previous binding (and whether
// one existed) so the caller can restore it on scope exit.
func (c *Ctx) Bind(name string, t ir.TempId) (prev ir.TempId, hadPrev bool) {
	prev, hadPrev = c.varIds[name]
	c.varIds[name] = t
	return prev, hadPrev
}

// Unbind restores a binding captured by Bind, or removes it entirely if
// none existed before.
func (c *Ctx) Unbind(name string, prev ir.TempId, hadPrev bool) {
	if hadPrev {
		c.varIds[name] = prev
	} else {
		delete(c.varIds, name)
	}
}

// Lookup resolves a variable name to its currently bound temp.
func (c *Ctx) Lookup(name string) (ir.TempId, bool) {
	t, ok := c.varIds[name]
	return t, ok
}

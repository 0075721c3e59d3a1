package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/portgraph/internal/ctxlog"
	"github.com/vk/portgraph/internal/node"
	"github.com/vk/portgraph/internal/typesys"
)

var linkOptions = typesys.AssignOptions{AllowTransitive: true, BothDirections: true}

// Connect links an output to an input. The ports may be given in either
// order. Connecting an already linked pair does nothing.
//
// The pair must be assignable, on the live types or else with one or both
// sides taken at their declared types, and the types the bindings leave at
// both ends must still fit; otherwise ErrIncompatible is returned and nothing
// changes. Bindings discovered by the check are propagated to both nodes. If
// the link no longer type-checks once propagation settles it is removed again
// and ErrIncompatible is returned. Afterwards an exec output keeps only this
// link, and so does a data input.
func (g *Graph) Connect(ctx context.Context, a, b *node.Port) error {
	src, dst, err := g.orient(a, b)
	if err != nil {
		return err
	}
	if src.IsLinkedTo(dst) {
		return nil
	}
	check, ok := assignable(src, dst)
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrIncompatible, src, dst)
	}

	logger := ctxlog.FromContext(ctx)
	src.Link(dst)
	if check.assignment.Reversed {
		g.reversed.Insert(portPair{src: src, dst: dst})
	}
	g.canvas.AddLink(src, dst)
	logger.Debug("Link created.",
		"source", src.Ref().String(),
		"target", dst.Ref().String(),
		"used_initial_types", check.assignment.UsedInitialTypes,
	)

	var jobs []job
	found := check.assignment
	if len(found.Source) > 0 {
		jobs = append(jobs, job{node: g.nodes[src.NodeID()], changed: found.Source, useInitial: check.srcInitial, initiating: dst})
	}
	if len(found.Target) > 0 {
		jobs = append(jobs, job{node: g.nodes[dst.NodeID()], changed: found.Target, useInitial: check.dstInitial, initiating: src})
	}
	propagateErr := g.propagate(ctx, jobs...)

	if _, ok := g.linkFits(src, dst); !ok {
		g.unlink(ctx, src, dst)
		g.notify(Change{RefreshUI: false})
		return errors.Join(fmt.Errorf("%w: %s -> %s once propagated", ErrIncompatible, src, dst), propagateErr)
	}

	g.canvas.UpdatePortAppearance(src)
	g.canvas.UpdatePortAppearance(dst)
	g.enforceArity(ctx, src, dst)

	g.notify(Change{RefreshUI: false})
	return propagateErr
}

// CanConnect reports whether Connect would link a and b.
func (g *Graph) CanConnect(a, b *node.Port) bool {
	src, dst, err := g.orient(a, b)
	if err != nil {
		return false
	}
	if src.IsLinkedTo(dst) {
		return true
	}
	_, ok := assignable(src, dst)
	return ok
}

// Disconnect removes the link between a and b, in either order. Ports that
// are not linked are left alone.
func (g *Graph) Disconnect(ctx context.Context, a, b *node.Port) {
	if a == nil || b == nil || !a.IsLinkedTo(b) {
		return
	}
	g.unlink(ctx, a, b)
	g.notify(Change{RefreshUI: false})
}

// orient validates a pair and returns it as (output, input).
func (g *Graph) orient(a, b *node.Port) (src, dst *node.Port, err error) {
	if a == b {
		return nil, nil, ErrSamePort
	}
	if a.IsInput == b.IsInput {
		return nil, nil, fmt.Errorf("%w: %s and %s are both %ss", ErrSameDirection, a.Ref(), b.Ref(), a.Direction())
	}
	for _, p := range []*node.Port{a, b} {
		if _, err := g.owner(p); err != nil {
			return nil, nil, err
		}
	}
	if a.IsInput {
		a, b = b, a
	}
	return a, b, nil
}

// linkCheck is an accepted way of type-checking a new link. srcInitial and
// dstInitial tell which ends were taken at their declared types.
type linkCheck struct {
	assignment typesys.Assignment
	srcInitial bool
	dstInitial bool
}

// linkAttempts is the order in which the ends fall back to declared types.
var linkAttempts = [...]struct{ srcInitial, dstInitial bool }{
	{false, false},
	{false, true},
	{true, false},
	{true, true},
}

// assignable checks src against dst on the live types, then re-deriving one
// end from its declaration, then both. An attempt is accepted only when the
// types its bindings leave at both ends are assignable.
func assignable(src, dst *node.Port) (linkCheck, bool) {
	for _, at := range linkAttempts {
		from, to := src.Type, dst.Type
		if at.srcInitial {
			from = src.InitialType
		}
		if at.dstInitial {
			to = dst.InitialType
		}
		a, ok := typesys.IsAssignableTo(from, to, linkOptions)
		if !ok {
			continue
		}
		settledSrc := settledType(src, a.Source, at.srcInitial)
		settledDst := settledType(dst, a.Target, at.dstInitial)
		if _, ok := fits(settledSrc, settledDst, a.Reversed); !ok {
			continue
		}
		a.UsedInitialTypes = at.srcInitial || at.dstInitial
		return linkCheck{assignment: a, srcInitial: at.srcInitial, dstInitial: at.dstInitial}, true
	}
	return linkCheck{}, false
}

// portPair is a link as (output, input).
type portPair struct {
	src, dst *node.Port
}

// linkFits re-checks the existing link src -> dst on the live types.
func (g *Graph) linkFits(src, dst *node.Port) (typesys.Assignment, bool) {
	return fits(src.Type, dst.Type, g.reversed.Contains(portPair{src: src, dst: dst}))
}

// fits reports whether src can flow into dst. A reversed link also fits while
// dst's chain reaches src; the reversed match's bindings are returned on the
// side they belong to.
func fits(src, dst typesys.Type, reversed bool) (typesys.Assignment, bool) {
	if a, ok := typesys.IsAssignableTo(src, dst, linkOptions); ok || !reversed {
		return a, ok
	}
	a, ok := typesys.IsAssignableTo(dst, src, typesys.AssignOptions{AllowTransitive: true})
	if !ok {
		return typesys.Assignment{}, false
	}
	a.Source, a.Target = a.Target, a.Source
	a.Reversed = true
	return a, true
}

// settledType is the type apply gives p for bindings b.
func settledType(p *node.Port, b typesys.Bindings, useInitial bool) typesys.Type {
	switch {
	case useInitial && typesys.References(p.InitialType, b):
		return typesys.Substitute(p.InitialType, b)
	case typesys.References(p.Type, b):
		return typesys.Substitute(p.Type, b)
	}
	return p.Type
}

// enforceArity drops every other link of an exec output or a data input of
// the new link src -> dst.
func (g *Graph) enforceArity(ctx context.Context, src, dst *node.Port) {
	if src.IsExec() {
		for _, other := range src.Links() {
			if other != dst {
				g.unlink(ctx, src, other)
			}
		}
	}
	if !dst.IsExec() {
		for _, other := range dst.Links() {
			if other != src {
				g.unlink(ctx, other, dst)
			}
		}
	}
}

// unlink removes a link and tells the canvas. It does not notify subscribers.
func (g *Graph) unlink(ctx context.Context, a, b *node.Port) {
	if !a.Unlink(b) {
		return
	}
	src, dst := a, b
	if src.IsInput {
		src, dst = dst, src
	}
	g.reversed.Remove(portPair{src: src, dst: dst})
	g.canvas.RemoveLink(src, dst)
	g.canvas.UpdatePortAppearance(src)
	g.canvas.UpdatePortAppearance(dst)
	ctxlog.FromContext(ctx).Debug("Link removed.", "source", src.Ref().String(), "target", dst.Ref().String())
}

package forge

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/forge/pkg/dom"
)

// ForgeArchetype registers a reusable (tag, options) definition under name.
// The options are snapshotted, so later changes to o, or to the children it
// lists, do not affect the archetype.
func (f *Forge) ForgeArchetype(name, tag string, o Options) {
	f.archetypes.Register(name, tag, o)
	f.logger.Debug("archetype forged", "archetype", name, "tag", tag)
}

// UseArchetype builds a new element from the named archetype with overrides
// merged on top. See UseArchetypeContext.
func (f *Forge) UseArchetype(name string, overrides Options) (*dom.Element, error) {
	return f.UseArchetypeContext(context.Background(), name, overrides)
}

// UseArchetypeContext builds a new element from the named archetype inside a
// trace span. An unknown name fails with UnknownArchetype before anything is
// built. Each call produces an independent element.
func (f *Forge) UseArchetypeContext(ctx context.Context, name string, overrides Options) (*dom.Element, error) {
	return f.useArchetype(ctx, "forge.UseArchetype", name, overrides, false)
}

// PreviewArchetype builds an instance of the named archetype without
// registering its alias, so existing alias entries are left untouched.
// The caller owns the element and should Dispose it when done.
func (f *Forge) PreviewArchetype(ctx context.Context, name string, overrides Options) (*dom.Element, error) {
	return f.useArchetype(ctx, "forge.PreviewArchetype", name, overrides, true)
}

func (f *Forge) useArchetype(ctx context.Context, spanName, name string, overrides Options, detached bool) (*dom.Element, error) {
	ctx, span := f.tracer.Start(ctx, spanName,
		trace.WithAttributes(attribute.String("forge.archetype", name)))
	defer span.End()

	tag, merged, err := f.archetypes.Resolve(name, overrides)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		f.metrics.recordError(err)
		return nil, err
	}
	if detached {
		merged.Alias = ""
	}

	f.logger.Debug("archetype used", "archetype", name)
	el, err := f.RelicContext(ctx, tag, merged)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	f.metrics.recordArchetype(name)
	return el, nil
}

// Archetype returns the tag and a copy of the options registered under name.
func (f *Forge) Archetype(name string) (string, Options, bool) {
	a, ok := f.archetypes.Lookup(name)
	if !ok {
		return "", Options{}, false
	}
	return a.Tag, a.Options, true
}

// Archetypes returns the registered archetype names in sorted order.
func (f *Forge) Archetypes() []string {
	return f.archetypes.Names()
}

// DropArchetype removes the named archetype.
func (f *Forge) DropArchetype(name string) {
	f.archetypes.Delete(name)
}

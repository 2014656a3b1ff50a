package forge

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/forge/internal/errors"
	"github.com/vango-dev/forge/pkg/dom"
	"github.com/vango-dev/forge/pkg/reactive"
)

// Relic builds one detached element from o. See RelicContext.
func (f *Forge) Relic(tag string, o Options) (*dom.Element, error) {
	return f.RelicContext(context.Background(), tag, o)
}

// RelicContext builds one detached element from o inside a trace span.
//
// Interpreters run in a fixed order: text, html, children, class, events,
// style, attrs, then alias registration. Reactive text, class and attribute
// values are rendered once before RelicContext returns and again on every
// write to a state key their accessor read. When any step fails the
// partially built element is disposed and nil is returned, so a failed build
// leaves no alias entry and no live bindings behind.
func (f *Forge) RelicContext(ctx context.Context, tag string, o Options) (*dom.Element, error) {
	_, span := f.tracer.Start(ctx, "forge.Relic",
		trace.WithAttributes(attribute.String("forge.tag", tag)))
	defer span.End()

	el, err := f.build(tag, o)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		f.metrics.recordError(err)
		f.logger.Debug("element build failed", "tag", tag, "error", err)
		return nil, err
	}

	f.metrics.recordBuild(el.Tag())
	f.logger.Debug("element built",
		"tag", el.Tag(),
		"alias", o.Alias,
		"children", len(o.Children),
		"reactive", o.Text.IsReactive() || o.Class.IsReactive())
	return el, nil
}

func (f *Forge) build(tag string, o Options) (*dom.Element, error) {
	for i, child := range o.Children {
		if child == nil {
			return nil, errors.New(errors.CodeNotElement).
				WithSubject(fmt.Sprintf("%s children[%d]", tag, i))
		}
	}
	if o.Alias != "" && f.aliases.Strict() && f.aliases.Bound(o.Alias) {
		return nil, errors.New(errors.CodeDuplicateAlias).WithSubject(o.Alias)
	}

	el := f.doc.CreateElement(tag)

	// fail hands the caller's children back detached before disposing el.
	fail := func(err error) (*dom.Element, error) {
		for _, child := range o.Children {
			if child.Parent() == el {
				child.Remove()
			}
		}
		el.Dispose()
		return nil, err
	}

	if o.Text.IsReactive() {
		f.bind(el, o.Text, el.SetText)
	} else if !o.Text.IsZero() {
		el.SetText(o.Text.Resolve())
	}

	if o.HTML != "" {
		if err := el.SetInnerHTML(o.HTML); err != nil {
			return fail(errors.New(errors.CodeNotElement).
				WithSubject(tag).
				WithDetail("The html option could not be parsed.").
				Wrap(err))
		}
	}

	for _, child := range o.Children {
		if err := el.AppendChild(child); err != nil {
			return fail(err)
		}
	}

	if o.Class.IsReactive() {
		f.bind(el, o.Class, el.SetClassName)
	} else if !o.Class.IsZero() {
		el.SetClassName(o.Class.Resolve())
	}

	for _, name := range sortedKeys(o.Events) {
		el.AddEventListener(name, o.Events[name])
	}

	for _, prop := range sortedKeys(o.Style) {
		el.SetStyle(cssProperty(prop), o.Style[prop])
	}

	for _, key := range sortedKeys(o.Attrs) {
		if reservedAttr(key) {
			f.logger.Debug("attr skipped, key names an option", "tag", tag, "attr", key)
			continue
		}
		v := o.Attrs[key]
		if v.IsReactive() {
			f.bind(el, v, func(s string) { el.SetAttribute(key, s) })
		} else {
			el.SetAttribute(key, v.Resolve())
		}
	}

	if o.Alias != "" {
		if err := f.aliases.Set(o.Alias, el); err != nil {
			return fail(err)
		}
	}

	return el, nil
}

// bind renders v through apply now and on every write to a key v reads.
// The binding is released when el is disposed.
func (f *Forge) bind(el *dom.Element, v reactive.Value, apply func(string)) {
	eff := reactive.NewEffect(f.tracker, func() {
		apply(v.Resolve())
	})
	el.AddCleanup(eff.Dispose)
}

// cssProperty converts snake_case and camelCase property names to the
// hyphenated CSS form. Custom properties ("--x") are left alone.
func cssProperty(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

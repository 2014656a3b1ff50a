package forge

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/forge/internal/errors"
	"github.com/vango-dev/forge/pkg/dom"
	"github.com/vango-dev/forge/pkg/merge"
	"github.com/vango-dev/forge/pkg/reactive"
)

// archetypeFile is the YAML layout read by LoadArchetypes:
//
//	archetypes:
//	  card:
//	    tag: div
//	    options:
//	      class: card
//	      style: {padding: 8px}
//	  wide-card:
//	    extends: card
//	    options:
//	      class: card wide
//	      attrs: {role: article}
//	      children:
//	        - tag: h2
//	          options: {text: Title}
//	  badge:
//	    tag: span
//	    options:
//	      text: {state: cart, key: count}
type archetypeFile struct {
	Archetypes map[string]archetypeSpec `yaml:"archetypes"`
}

type archetypeSpec struct {
	Tag     string         `yaml:"tag"`
	Extends string         `yaml:"extends"`
	Options map[string]any `yaml:"options"`
}

type childSpec struct {
	Tag     string         `yaml:"tag"`
	Options map[string]any `yaml:"options"`
}

type resolvedSpec struct {
	tag     string
	options map[string]any
}

// LoadArchetypeFile reads archetypes from a YAML file. See LoadArchetypes.
func (f *Forge) LoadArchetypeFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidArchetypeFile).WithSubject(path).Wrap(err)
	}
	defer file.Close()

	names, err := f.LoadArchetypes(file)
	if err != nil {
		if fe, ok := err.(*errors.ForgeError); ok && fe.Subject == "" {
			fe.WithSubject(path)
		}
		return nil, err
	}
	return names, nil
}

// LoadArchetypes reads YAML archetype definitions and registers them.
// "extends" names another archetype of the same file whose options are
// deep-merged underneath. Nothing is registered unless the whole file is
// valid: states named by bindings are created only after every archetype
// has decoded. It returns the registered names in sorted order.
func (f *Forge) LoadArchetypes(r io.Reader) ([]string, error) {
	var file archetypeFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, errors.New(errors.CodeInvalidArchetypeFile).Wrap(err)
	}

	resolved := make(map[string]resolvedSpec, len(file.Archetypes))
	for _, name := range sortedKeys(file.Archetypes) {
		if _, err := resolveSpec(file.Archetypes, name, resolved, nil); err != nil {
			return nil, err
		}
	}

	names := sortedKeys(resolved)
	decoded := make(map[string]Options, len(names))
	bound := make(map[string]struct{})
	fail := func(err error) ([]string, error) {
		for _, o := range decoded {
			disposeAll(o.Children)
		}
		return nil, err
	}
	for _, name := range names {
		spec := resolved[name]
		if spec.tag == "" {
			return fail(invalidFile(name, "no tag given and none inherited"))
		}
		o, err := f.decodeOptions(name, spec.options, true, bound)
		if err != nil {
			return fail(err)
		}
		decoded[name] = o
	}

	for _, state := range sortedKeys(bound) {
		if _, ok := f.states[state]; !ok {
			f.InitState(state, nil)
		}
	}
	for _, name := range names {
		f.ForgeArchetype(name, resolved[name].tag, decoded[name])
		// ForgeArchetype stores clones, so the decoded children are spent.
		disposeAll(decoded[name].Children)
	}
	f.logger.Debug("archetypes loaded", "count", len(names), "states", len(bound))
	return names, nil
}

func resolveSpec(specs map[string]archetypeSpec, name string, done map[string]resolvedSpec, chain []string) (resolvedSpec, error) {
	if r, ok := done[name]; ok {
		return r, nil
	}
	for _, seen := range chain {
		if seen == name {
			return resolvedSpec{}, invalidFile(name, "extends cycle: "+strings.Join(append(chain, name), " -> "))
		}
	}
	spec, ok := specs[name]
	if !ok {
		return resolvedSpec{}, invalidFile(name, "extends an unknown archetype")
	}

	out := resolvedSpec{tag: spec.Tag, options: merge.Clone(spec.Options)}
	if spec.Extends != "" {
		if _, ok := specs[spec.Extends]; !ok {
			return resolvedSpec{}, invalidFile(name, fmt.Sprintf("extends unknown archetype %q", spec.Extends))
		}
		base, err := resolveSpec(specs, spec.Extends, done, append(chain, name))
		if err != nil {
			return resolvedSpec{}, err
		}
		out.options = merge.Deep(base.options, spec.Options)
		if out.tag == "" {
			out.tag = base.tag
		}
	}
	if out.options == nil {
		out.options = map[string]any{}
	}

	done[name] = out
	return out, nil
}

// decodeOptions converts one raw options map. Children are built as detached
// elements; they may not carry aliases. State names read by bindings are
// added to bound. On error every child built so far is disposed.
func (f *Forge) decodeOptions(subject string, m map[string]any, top bool, bound map[string]struct{}) (Options, error) {
	var o Options
	fail := func(err error) (Options, error) {
		disposeAll(o.Children)
		return Options{}, err
	}
	for _, key := range sortedKeys(m) {
		v := m[key]
		switch key {
		case keyText:
			val, err := f.decodeValue(subject, v, top, bound)
			if err != nil {
				return fail(err)
			}
			o.Text = val
		case keyHTML:
			o.HTML = scalar(v)
		case keyClass:
			val, err := f.decodeValue(subject, v, top, bound)
			if err != nil {
				return fail(err)
			}
			o.Class = val
		case keyAlias:
			if !top {
				return fail(invalidFile(subject, "children cannot declare an alias"))
			}
			o.Alias = scalar(v)
		case keyStyle:
			style, ok := v.(map[string]any)
			if !ok {
				return fail(invalidFile(subject, "style must be a mapping"))
			}
			o.Style = make(map[string]string, len(style))
			for k, sv := range style {
				o.Style[k] = scalar(sv)
			}
		case keyAttrs:
			attrs, ok := v.(map[string]any)
			if !ok {
				return fail(invalidFile(subject, "attrs must be a mapping"))
			}
			o.Attrs = make(map[string]reactive.Value, len(attrs))
			for k, av := range attrs {
				val, err := f.decodeValue(subject, av, top, bound)
				if err != nil {
					return fail(err)
				}
				o.Attrs[k] = val
			}
		case keyChildren:
			children, err := f.decodeChildren(subject, v)
			if err != nil {
				return fail(err)
			}
			o.Children = children
		default:
			return fail(invalidFile(subject, fmt.Sprintf("unsupported option %q", key)))
		}
	}
	return o, nil
}

func (f *Forge) decodeChildren(subject string, v any) ([]*dom.Element, error) {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidArchetypeFile).WithSubject(subject).Wrap(err)
	}
	var specs []childSpec
	if err := yaml.Unmarshal(raw, &specs); err != nil {
		return nil, invalidFile(subject, "children must be a list of {tag, options}")
	}

	out := make([]*dom.Element, 0, len(specs))
	for i, spec := range specs {
		childSubject := fmt.Sprintf("%s.children[%d]", subject, i)
		if spec.Tag == "" {
			disposeAll(out)
			return nil, invalidFile(childSubject, "child has no tag")
		}
		o, err := f.decodeOptions(childSubject, spec.Options, false, nil)
		if err != nil {
			disposeAll(out)
			return nil, err
		}
		el, err := f.build(spec.Tag, o)
		if err != nil {
			disposeAll(o.Children)
			disposeAll(out)
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

func disposeAll(els []*dom.Element) {
	for _, el := range els {
		el.Dispose()
	}
}

// decodeValue reads a scalar as a literal and a {state, key} mapping as a
// binding to that state key. The binding looks the state up when it renders,
// so decoding creates nothing. Children are cloned per instance without their
// bindings, so only the archetype's own options may bind.
func (f *Forge) decodeValue(subject string, v any, top bool, bound map[string]struct{}) (reactive.Value, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return reactive.Literal(scalar(v)), nil
	}
	if !top {
		return reactive.Value{}, invalidFile(subject, "children cannot bind to state")
	}
	state, _ := m["state"].(string)
	key, _ := m["key"].(string)
	if state == "" || key == "" || len(m) != 2 {
		return reactive.Value{}, invalidFile(subject, "bindings take exactly {state, key}")
	}
	bound[state] = struct{}{}
	return f.stateValue(state, key), nil
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func invalidFile(subject, detail string) *errors.ForgeError {
	return errors.New(errors.CodeInvalidArchetypeFile).
		WithSubject(subject).
		WithDetail(detail)
}

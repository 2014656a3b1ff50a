// Package forge builds document elements from declarative options.
//
// A Forge owns everything that used to be process-wide: the alias table,
// the archetype table, named reactive states and the tracking context.
// Several Forge instances over the same or different documents never see
// each other's entries.
//
// # Building Elements
//
// Relic interprets an Options value into one element:
//
//	f := forge.New(dom.NewDocument())
//	btn, err := f.Button(forge.Options{
//	    Text:   reactive.Literal("Save"),
//	    Class:  reactive.Literal("btn primary"),
//	    Events: map[string]dom.Handler{"click": onSave},
//	    Alias:  "save",
//	})
//	btn.Into(dom.Selector("#toolbar"))
//
// # Reactive Content
//
// Text, Class and Attrs accept reactive values. The accessor is evaluated
// once while the element is built and again on every write to a state key it
// read:
//
//	counter := f.InitState("counter", map[string]any{"n": 1})
//	label, _ := f.Span(forge.Options{
//	    Text: f.Ref(func() any { return counter.Get("n") }),
//	})
//	counter.Set("n", 2) // label now reads "2"
//
// Bindings are released by label.Dispose().
//
// # Archetypes
//
// ForgeArchetype stores a (tag, options) snapshot under a name and
// UseArchetype stamps out a fresh element with overrides merged on top.
// Archetypes can also be loaded from YAML with LoadArchetypes.
package forge

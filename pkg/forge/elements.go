package forge

import "github.com/vango-dev/forge/pkg/dom"

// knownTags are the tags that get a shorthand constructor.
var knownTags = []string{
	"div", "span", "p", "button", "h1", "h2", "h3", "h4", "h5", "h6",
	"ul", "ol", "li", "section", "article", "header", "footer", "main",
	"input", "textarea", "label", "form", "a", "img",
	"nav", "aside", "figure", "figcaption",
	"table", "thead", "tbody", "tr", "th", "td",
	"video", "audio", "source", "canvas", "svg",
	"select", "option", "optgroup", "fieldset", "legend",
}

// Tags returns the tags that have shorthand constructors.
func Tags() []string {
	return append([]string(nil), knownTags...)
}

// Shorthand returns a constructor bound to tag.
func (f *Forge) Shorthand(tag string) func(Options) (*dom.Element, error) {
	return func(o Options) (*dom.Element, error) {
		return f.Relic(tag, o)
	}
}

// Shorthands returns a constructor for every known tag, keyed by tag.
func (f *Forge) Shorthands() map[string]func(Options) (*dom.Element, error) {
	out := make(map[string]func(Options) (*dom.Element, error), len(knownTags))
	for _, tag := range knownTags {
		out[tag] = f.Shorthand(tag)
	}
	return out
}

// Layout

func (f *Forge) Div(o Options) (*dom.Element, error)     { return f.Relic("div", o) }
func (f *Forge) Span(o Options) (*dom.Element, error)    { return f.Relic("span", o) }
func (f *Forge) Section(o Options) (*dom.Element, error) { return f.Relic("section", o) }
func (f *Forge) Article(o Options) (*dom.Element, error) { return f.Relic("article", o) }
func (f *Forge) Header(o Options) (*dom.Element, error)  { return f.Relic("header", o) }
func (f *Forge) Footer(o Options) (*dom.Element, error)  { return f.Relic("footer", o) }
func (f *Forge) Main(o Options) (*dom.Element, error)    { return f.Relic("main", o) }
func (f *Forge) Nav(o Options) (*dom.Element, error)     { return f.Relic("nav", o) }
func (f *Forge) Aside(o Options) (*dom.Element, error)   { return f.Relic("aside", o) }

// Text

func (f *Forge) P(o Options) (*dom.Element, error)  { return f.Relic("p", o) }
func (f *Forge) H1(o Options) (*dom.Element, error) { return f.Relic("h1", o) }
func (f *Forge) H2(o Options) (*dom.Element, error) { return f.Relic("h2", o) }
func (f *Forge) H3(o Options) (*dom.Element, error) { return f.Relic("h3", o) }
func (f *Forge) H4(o Options) (*dom.Element, error) { return f.Relic("h4", o) }
func (f *Forge) H5(o Options) (*dom.Element, error) { return f.Relic("h5", o) }
func (f *Forge) H6(o Options) (*dom.Element, error) { return f.Relic("h6", o) }
func (f *Forge) A(o Options) (*dom.Element, error)  { return f.Relic("a", o) }

// Lists

func (f *Forge) Ul(o Options) (*dom.Element, error) { return f.Relic("ul", o) }
func (f *Forge) Ol(o Options) (*dom.Element, error) { return f.Relic("ol", o) }
func (f *Forge) Li(o Options) (*dom.Element, error) { return f.Relic("li", o) }

// Forms

func (f *Forge) Button(o Options) (*dom.Element, error)   { return f.Relic("button", o) }
func (f *Forge) Input(o Options) (*dom.Element, error)    { return f.Relic("input", o) }
func (f *Forge) Textarea(o Options) (*dom.Element, error) { return f.Relic("textarea", o) }
func (f *Forge) Label(o Options) (*dom.Element, error)    { return f.Relic("label", o) }
func (f *Forge) Form(o Options) (*dom.Element, error)     { return f.Relic("form", o) }
func (f *Forge) Select(o Options) (*dom.Element, error)   { return f.Relic("select", o) }
func (f *Forge) Option(o Options) (*dom.Element, error)   { return f.Relic("option", o) }
func (f *Forge) Optgroup(o Options) (*dom.Element, error) { return f.Relic("optgroup", o) }
func (f *Forge) Fieldset(o Options) (*dom.Element, error) { return f.Relic("fieldset", o) }
func (f *Forge) Legend(o Options) (*dom.Element, error)   { return f.Relic("legend", o) }

// Tables

func (f *Forge) Table(o Options) (*dom.Element, error) { return f.Relic("table", o) }
func (f *Forge) Thead(o Options) (*dom.Element, error) { return f.Relic("thead", o) }
func (f *Forge) Tbody(o Options) (*dom.Element, error) { return f.Relic("tbody", o) }
func (f *Forge) Tr(o Options) (*dom.Element, error)    { return f.Relic("tr", o) }
func (f *Forge) Th(o Options) (*dom.Element, error)    { return f.Relic("th", o) }
func (f *Forge) Td(o Options) (*dom.Element, error)    { return f.Relic("td", o) }

// Media

func (f *Forge) Img(o Options) (*dom.Element, error)        { return f.Relic("img", o) }
func (f *Forge) Figure(o Options) (*dom.Element, error)     { return f.Relic("figure", o) }
func (f *Forge) Figcaption(o Options) (*dom.Element, error) { return f.Relic("figcaption", o) }
func (f *Forge) Video(o Options) (*dom.Element, error)      { return f.Relic("video", o) }
func (f *Forge) Audio(o Options) (*dom.Element, error)      { return f.Relic("audio", o) }
func (f *Forge) Source(o Options) (*dom.Element, error)     { return f.Relic("source", o) }
func (f *Forge) Canvas(o Options) (*dom.Element, error)     { return f.Relic("canvas", o) }
func (f *Forge) Svg(o Options) (*dom.Element, error)        { return f.Relic("svg", o) }

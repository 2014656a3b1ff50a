package dom

import "strings"

type declaration struct {
	prop  string
	value string
}

func parseStyle(s string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(strings.ToLower(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.value)
	}
	return strings.Join(parts, "; ")
}

// SetStyle sets one inline style property, keeping declaration order.
// An empty value removes the property.
func (e *Element) SetStyle(prop, value string) {
	prop = strings.TrimSpace(strings.ToLower(prop))
	current, _ := e.Attribute("style")
	decls := parseStyle(current)

	idx := -1
	for i, d := range decls {
		if d.prop == prop {
			idx = i
			break
		}
	}

	switch {
	case value == "" && idx >= 0:
		decls = append(decls[:idx], decls[idx+1:]...)
	case value == "":
		return
	case idx >= 0:
		decls[idx].value = value
	default:
		decls = append(decls, declaration{prop: prop, value: value})
	}

	if len(decls) == 0 {
		e.RemoveAttribute("style")
		return
	}
	e.SetAttribute("style", formatStyle(decls))
}

// Style returns the value of one inline style property.
func (e *Element) Style(prop string) string {
	prop = strings.TrimSpace(strings.ToLower(prop))
	current, _ := e.Attribute("style")
	for _, d := range parseStyle(current) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

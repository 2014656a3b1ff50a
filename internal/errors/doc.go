// Package errors provides the coded failures returned by forge.
//
// Every failure carries a stable numeric code that maps to a registered
// template:
//   - 1xx: argument errors (non-element argument, unknown archetype)
//   - 2xx: document errors (aliased element gone, parent query unresolved)
//   - 3xx: registry policy errors (duplicate alias under strict mode)
//   - 4xx: input errors (archetype files, configuration, selectors)
//
// # Usage
//
//	err := errors.New(errors.CodeElementGone).WithSubject("sidebar")
//	if errors.Is(err, errors.ErrElementGone) {
//	    // re-create the element
//	}
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR 201: Element doesn't exist anymore
//	//
//	//   subject: sidebar
//	//
//	//   The aliased element is absent or no longer attached to the document.
package errors

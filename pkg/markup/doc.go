// Package markup is the document model and link navigation engine behind a
// terminal hypertext view.
//
// A [Renderer] turns some source (HTML, Markdown, plain text) into a
// [Document] for a given width. The document is a list of lines made of
// styled spans; spans that carry a link target are registered with the
// document's [LinkHandler], which implements keyboard navigation between
// links.
//
// A [View] caches the rendered document and only asks the renderer again when
// the available width changes. It keeps the focused link index across
// re-renders whenever that index is still valid, and turns host input events
// into navigation calls and link callbacks.
//
// # Quick Start
//
//	v := markup.NewView[*MyApp](renderer)
//	v.SetMaximumWidth(120)
//	v.OnLinkFocus(func(app *MyApp, target string) { app.status = target })
//	v.OnLinkSelect(func(app *MyApp, target string) { app.open(target) })
//
//	// On resize:
//	v.Layout(markup.Size{Width: w, Height: h})
//
//	// On key press:
//	v.OnEvent(app, markup.EventDown)
//
//	// When drawing:
//	v.Draw(printer, true)
//
// # Navigation
//
// Left and Right move to the neighbouring link only if it is on the same row.
// Up and Down scan the links in insertion order for the first one on a
// smaller (or larger) row. Because links are registered row by row, left to
// right, Up lands on the last link of the previous row that has links and
// Down on the first link of the next one; the column of the link that had
// focus is not taken into account.
package markup

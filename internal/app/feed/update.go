/*
Package feed contains the per-user homepage state, its update queue, and the session
registry that maps usernames to homepages.

This file defines Update, the message pushed to a browser: either an HTML replacement
for one element or a script to execute.
*/
package feed

// Script is the body of a "js" update.
type Script struct {
	Exec string `json:"exec"`
}

// Update is one UI patch. Exactly one of HTML and JS is set, so the encoded JSON object
// has a single top-level key: {"html": {elementID: fragment}} or {"js": {"exec": script}}.
type Update struct {
	HTML map[string]string `json:"html,omitempty"`
	JS   *Script           `json:"js,omitempty"`
}

// HTMLUpdate replaces the content of the element with the given id.
func HTMLUpdate(elementID, fragment string) Update {
	return Update{HTML: map[string]string{elementID: fragment}}
}

// ExecUpdate asks the browser to execute script.
func ExecUpdate(script string) Update {
	return Update{JS: &Script{Exec: script}}
}

// IsHTML reports whether u is an element replacement.
func (u Update) IsHTML() bool {
	return u.HTML != nil
}

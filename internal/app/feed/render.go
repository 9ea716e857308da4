package feed

import (
	"html"
	"strings"

	"github.com/bradenaw/juniper/xslices"
)

// ResetFormScript clears the add-post form after a post was accepted.
const ResetFormScript = `document.getElementById("addPostForm").reset();`

// ListElementID is the id of the ordered list holding a user's posts.
func ListElementID(username string) string {
	return "ol_" + username
}

// ButtonElementID is the id of a user's generate button.
func ButtonElementID(username string) string {
	return "btn_" + username
}

// RenderPostList renders the complete post list as an ordered list.
// Post content is untrusted and is HTML-escaped.
func RenderPostList(username string, posts []string) string {
	items := xslices.Map(posts, func(post string) string {
		return "<li>" + html.EscapeString(post) + "</li>"
	})

	return `<ol id="` + html.EscapeString(ListElementID(username)) + `">` +
		strings.Join(items, "") +
		`</ol>`
}

// RenderButton renders the generate button, disabled while a burst is running.
func RenderButton(username string, disabled bool) string {
	attr := ""
	if disabled {
		attr = " disabled"
	}

	return ` <button id="` + html.EscapeString(ButtonElementID(username)) +
		`" onclick="fetch('/generate_post')" type="button"` + attr +
		`>Update HTML Element</button> `
}

// PostListUpdate is the update re-rendering the full post list.
func PostListUpdate(username string, posts []string) Update {
	return HTMLUpdate(ListElementID(username), RenderPostList(username, posts))
}

// ButtonUpdate is the update toggling the generate button.
func ButtonUpdate(username string, disabled bool) Update {
	return HTMLUpdate(ButtonElementID(username), RenderButton(username, disabled))
}

package handler

import (
	"context"
	"net/http"

	"livefeed/internal/app/feed"
	"livefeed/internal/pkg/errs"
	"livefeed/internal/pkg/logx"
	"livefeed/internal/pkg/req"
	"livefeed/internal/pkg/resp"
)

// HandleAddPost appends the submitted post and queues two updates: the refreshed post
// list and a script resetting the form.
func HandleAddPost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hp, ok := deps.currentHomepage(r)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if customErr := req.ParseForm(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		content, customErr := req.RequiredField(r, "post_content")
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		posts := hp.AddPost(content)

		for _, u := range []feed.Update{
			feed.PostListUpdate(hp.Username, posts),
			feed.ExecUpdate(feed.ResetFormScript),
		} {
			if err := hp.Enqueue(u); err != nil {
				logx.Warn("add_post: homepage removed while queueing update", "username", hp.Username, "error", err)
				break
			}
		}

		resp.RespondSuccess(w, r)
	}
}

// HandleGeneratePost runs a generate burst and answers only once it has finished.
// The burst is detached from the request so a client disconnect does not cut it short.
func HandleGeneratePost(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hp, ok := deps.currentHomepage(r)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if err := deps.Burst.Run(context.WithoutCancel(r.Context()), hp); err != nil {
			logx.Warn("generate_post: burst ended early", "username", hp.Username, "error", err)
		}

		resp.RespondSuccess(w, r)
	}
}

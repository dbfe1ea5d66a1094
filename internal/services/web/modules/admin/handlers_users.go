package admin

import (
	"context"
	"net/http"

	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	apperrors "github.com/louisbranch/pawprint/internal/services/web/platform/errors"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	"github.com/louisbranch/pawprint/internal/services/web/platform/listview"
	"github.com/louisbranch/pawprint/internal/services/web/platform/pagerender"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/pawprint/internal/services/web/templates"
)

func (h handlers) handleUsers(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	result, err := openList(h, w, r, h.users, UserQuery{}, "", loc)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.WritePage(w, r, loc, pagerender.Page{
		Title:  loc.Sprintf("admin.users"),
		Main:   webtemplates.Users(webtemplates.UsersPage{Users: result.Items, Error: result.Error}, loc),
		Toasts: result.Toasts,
	})
}

// handlePromote grants the admin role. Users are only known through the
// mounted table since the API has no single-user lookup.
func (h handlers) handlePromote(w http.ResponseWriter, r *http.Request) {
	loc := h.Localizer(w, r)
	id, err := pathID(r, "userID")
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	visitor := h.Visitor(w, r)
	user, ok := listview.Find(h.users, visitor, id)
	if !ok {
		h.WriteError(w, r, loc, apperrors.E(apperrors.KindNotFound, "user not found"))
		return
	}
	if user.IsAdmin() {
		h.writeRowChange(w, r, loc, nil, webtemplates.UserRow(user, loc), routepath.AdminUsers, false)
		return
	}
	promoted := user
	promoted.Role = petapi.RoleAdmin
	gateway := h.gateway
	commit := func(ctx context.Context) (*petapi.User, error) {
		return nil, gateway.PromoteToAdmin(ctx, user.ID)
	}
	optimistic, err := listview.Mutate(httpx.RequestContext(r), h.users, visitor, collection.Update[string](promoted), commit)
	if err != nil {
		h.WriteError(w, r, loc, err)
		return
	}
	h.writeRowChange(w, r, loc, listview.Toasts(h.users, visitor, loc), webtemplates.UserRow(promoted, loc), routepath.AdminUsers, optimistic)
}

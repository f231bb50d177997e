package web

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"canteen-web/internal/api"
	"canteen-web/internal/auth"
	"canteen-web/internal/menu"
	"canteen-web/internal/store"
)

// Admin tabs
const (
	TabMenu   = "menu"
	TabUsers  = "users"
	TabGroups = "groups"
)

// Backend error codes with a dedicated message
const (
	codeCannotDeleteSelf = "cannot_delete_self"
	codeLastAdmin        = "last_admin"
)

type adminMenuRow struct {
	api.AdminMenuItem
	Name string
}

type adminView struct {
	Tab        string
	Tabs       []string
	Menu       []adminMenuRow
	Users      []api.AdminUser
	Groups     []auth.Group
	Editing    string
	Roles      []auth.Role
	GroupTypes []auth.GroupType
}

func adminTab(tab string) string {
	switch tab {
	case TabUsers, TabGroups:
		return tab
	default:
		return TabMenu
	}
}

func tabPath(tab string) string {
	return "/admin?tab=" + tab
}

// AdminPage renders one tab of the administration page
// GET /admin?tab=menu|users|groups&edit=<user id>
func (h *Handler) AdminPage(c *gin.Context) {
	p := pageFrom(c)
	ctx := c.Request.Context()
	view := &adminView{
		Tab:        adminTab(c.Query("tab")),
		Tabs:       []string{TabMenu, TabUsers, TabGroups},
		Roles:      auth.Roles,
		GroupTypes: auth.GroupTypes,
	}
	p.Data = view

	switch view.Tab {
	case TabMenu:
		res, err := h.api.AdminMenu(ctx, p.token)
		if err != nil {
			h.renderFailure(c, "admin.tmpl", p, err)
			return
		}
		for _, item := range res.Items {
			view.Menu = append(view.Menu, adminMenuRow{AdminMenuItem: item, Name: menu.AdminName(item, p.Lang)})
		}

	case TabUsers:
		res, err := h.api.AdminUsers(ctx, p.token)
		if err != nil {
			if h.expired(c, p, err) {
				return
			}
			p.Error = p.T("errorLoadingUsers") + ": " + errorDetail(p, err)
			if errors.Is(err, api.ErrNetwork) {
				p.Error = p.T("serverUnavailable")
			}
			h.render(c, "admin.tmpl", p)
			return
		}
		view.Users = res.Users
		view.Editing = c.Query("edit")

	case TabGroups:
		var (
			g      errgroup.Group
			users  *api.UsersResponse
			groups *api.GroupsResponse
		)
		g.Go(func() error {
			var err error
			users, err = h.api.AdminUsers(ctx, p.token)
			return err
		})
		g.Go(func() error {
			var err error
			groups, err = h.api.AdminGroups(ctx, p.token)
			return err
		})
		if err := g.Wait(); err != nil {
			h.renderFailure(c, "admin.tmpl", p, err)
			return
		}
		view.Users = users.Users
		view.Groups = groups.Groups
	}
	h.render(c, "admin.tmpl", p)
}

// AdminSaveMenu saves qty and availability of every row of the menu tab
// POST /admin/menu
func (h *Handler) AdminSaveMenu(c *gin.Context) {
	p := pageFrom(c)
	ids := c.PostFormArray("id")
	items := make([]api.AdminMenuUpdate, 0, len(ids))
	for _, id := range ids {
		qty, err := strconv.Atoi(strings.TrimSpace(c.PostForm("qty_" + id)))
		if err != nil || qty < 0 {
			qty = 0
		}
		items = append(items, api.AdminMenuUpdate{
			ID:        id,
			Qty:       qty,
			Available: c.PostForm("avail_"+id) != "",
		})
	}

	if _, err := h.api.AdminSaveMenu(c.Request.Context(), p.token, items); err != nil {
		h.redirectFailure(c, p, tabPath(TabMenu), err)
		return
	}
	h.redirectFlash(c, p, tabPath(TabMenu), store.FlashSuccess, p.T("saved"))
}

func formRole(c *gin.Context) auth.Role {
	role := auth.Role(c.PostForm("role"))
	if !role.Valid() {
		return auth.RoleUser
	}
	return role
}

// AdminCreateUser creates a user; login and PIN are required
// POST /admin/users
func (h *Handler) AdminCreateUser(c *gin.Context) {
	p := pageFrom(c)
	req := api.CreateUserRequest{
		Login:       strings.TrimSpace(c.PostForm("login")),
		PIN:         c.PostForm("pin"),
		Role:        formRole(c),
		DisplayName: strings.TrimSpace(c.PostForm("display_name")),
	}
	if req.Login == "" || req.PIN == "" {
		h.redirectFlash(c, p, tabPath(TabUsers), store.FlashError, p.T("error")+": "+p.T("loginPinRequired"))
		return
	}

	if _, err := h.api.AdminCreateUser(c.Request.Context(), p.token, req); err != nil {
		h.redirectFailure(c, p, tabPath(TabUsers), err)
		return
	}
	h.redirectFlash(c, p, tabPath(TabUsers), store.FlashSuccess, p.T("userCreated"))
}

// AdminUpdateUser changes role and display name, and the PIN when a new one is given
// POST /admin/users/:id
func (h *Handler) AdminUpdateUser(c *gin.Context) {
	p := pageFrom(c)
	req := api.UpdateUserRequest{
		Role:        formRole(c),
		DisplayName: c.PostForm("display_name"),
		PIN:         c.PostForm("pin"),
	}

	if _, err := h.api.AdminUpdateUser(c.Request.Context(), p.token, c.Param("id"), req); err != nil {
		h.redirectFailure(c, p, tabPath(TabUsers)+"&edit="+c.Param("id"), err)
		return
	}
	h.redirectFlash(c, p, tabPath(TabUsers), store.FlashSuccess, p.T("userUpdated"))
}

// AdminDeleteUser deletes a user
// POST /admin/users/:id/delete
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	p := pageFrom(c)
	_, err := h.api.AdminDeleteUser(c.Request.Context(), p.token, c.Param("id"))
	switch api.CodeOf(err) {
	case "":
	case codeCannotDeleteSelf:
		h.redirectFlash(c, p, tabPath(TabUsers), store.FlashError, p.T("cannotDeleteSelf"))
		return
	case codeLastAdmin:
		h.redirectFlash(c, p, tabPath(TabUsers), store.FlashError, p.T("cannotDeleteLastAdmin"))
		return
	}
	if err != nil {
		h.redirectFailure(c, p, tabPath(TabUsers), err)
		return
	}
	h.redirectFlash(c, p, tabPath(TabUsers), store.FlashSuccess, p.T("userDeleted"))
}

// AdminCreateGroup creates a group of users
// POST /admin/groups
func (h *Handler) AdminCreateGroup(c *gin.Context) {
	p := pageFrom(c)
	req := api.CreateGroupRequest{
		Name: strings.TrimSpace(c.PostForm("name")),
		Type: auth.GroupType(c.PostForm("type")),
	}
	if req.Name == "" {
		h.redirectFlash(c, p, tabPath(TabGroups), store.FlashError, p.T("groupNameRequired"))
		return
	}
	if !req.Type.Valid() {
		req.Type = auth.GroupSchool
	}

	if _, err := h.api.AdminCreateGroup(c.Request.Context(), p.token, req); err != nil {
		h.redirectFailure(c, p, tabPath(TabGroups), err)
		return
	}
	h.redirectFlash(c, p, tabPath(TabGroups), store.FlashSuccess, p.T("groupCreated"))
}

// AdminAssignGroup puts a user into a group. An empty group id removes the user from its group.
// POST /admin/users/:id/group
func (h *Handler) AdminAssignGroup(c *gin.Context) {
	p := pageFrom(c)
	ctx := c.Request.Context()
	userID := c.Param("id")
	groupID := c.PostForm("group_id")

	var err error
	text := p.T("groupAssigned")
	if groupID == "" {
		_, err = h.api.AdminUnassignGroup(ctx, p.token, userID)
		text = p.T("groupUnassigned")
	} else {
		_, err = h.api.AdminAssignGroup(ctx, p.token, userID, groupID)
	}
	if err != nil {
		h.redirectFailure(c, p, tabPath(TabGroups), err)
		return
	}
	h.redirectFlash(c, p, tabPath(TabGroups), store.FlashSuccess, text)
}

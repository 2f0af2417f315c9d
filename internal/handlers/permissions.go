package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/orgauthz/internal/permissions"
	"github.com/charlesng35/orgauthz/internal/services"
	"github.com/charlesng35/orgauthz/pkg/response"
)

// PermissionHandler exposes the catalog and grant resolution.
type PermissionHandler struct {
	catalog   *permissions.Catalog
	templates *permissions.TemplateSet
	roles     *services.RoleService
	checker   *permissions.Checker
}

// NewPermissionHandler constructs a PermissionHandler.
func NewPermissionHandler(catalog *permissions.Catalog, templates *permissions.TemplateSet, roles *services.RoleService) (*PermissionHandler, error) {
	if catalog == nil {
		return nil, errors.New("permission handler: catalog is required")
	}
	if templates == nil {
		return nil, errors.New("permission handler: templates are required")
	}
	if roles == nil {
		return nil, errors.New("permission handler: role service is required")
	}
	checker, err := permissions.NewChecker(catalog, roles)
	if err != nil {
		return nil, err
	}
	return &PermissionHandler{catalog: catalog, templates: templates, roles: roles, checker: checker}, nil
}

type resolveRequest struct {
	Permissions []string `json:"permissions" validate:"max=512,dive,max=128"`
}

type validateRequest struct {
	Permissions []string `json:"permissions" validate:"max=512,dive,max=128"`
	Permission  string   `json:"permission" validate:"required,max=128"`
}

type grantSetView struct {
	Effective   []string `json:"effective"`
	UnknownKeys []string `json:"unknown_keys"`
}

type templateView struct {
	permissions.RoleTemplate
	Effective   []string `json:"effective"`
	UnknownKeys []string `json:"unknown_keys"`
}

func newGrantSetView(set permissions.EffectiveGrantSet) grantSetView {
	return grantSetView{Effective: set.Effective(), UnknownKeys: set.Unknown()}
}

// GET /api/permissions/categories
func (h *PermissionHandler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, h.catalog.Categories())
}

// GET /api/permissions/templates
func (h *PermissionHandler) Templates(c *gin.Context) {
	list := h.templates.List()
	views := make([]templateView, 0, len(list))
	for _, tpl := range list {
		set, _ := h.templates.Resolve(tpl.ID)
		views = append(views, templateView{
			RoleTemplate: tpl,
			Effective:    set.Effective(),
			UnknownKeys:  set.Unknown(),
		})
	}
	response.Success(c, http.StatusOK, views)
}

// POST /api/permissions/resolve
func (h *PermissionHandler) Resolve(c *gin.Context) {
	var body resolveRequest
	if !bindAndValidate(c, &body) {
		return
	}
	set := h.catalog.ResolveKeys(body.Permissions)
	response.Success(c, http.StatusOK, newGrantSetView(set))
}

// POST /api/permissions/validate
// The submitted list is checked as given, without closure, the way a partially edited role would be.
func (h *PermissionHandler) Validate(c *gin.Context) {
	var body validateRequest
	if !bindAndValidate(c, &body) {
		return
	}

	body.Permission = strings.TrimSpace(body.Permission)
	grants := permissions.ParseGrants(body.Permissions)
	set := permissions.NewGrantSet(grants.Keys()...)
	if grants.IsAll() {
		set = h.catalog.Resolve(grants)
	}

	missing := h.catalog.MissingPrerequisites(set, body.Permission)
	if missing == nil {
		missing = []string{}
	}
	response.Success(c, http.StatusOK, gin.H{
		"permission":            body.Permission,
		"known":                 h.catalog.Has(body.Permission),
		"granted":               permissions.IsGranted(set, body.Permission),
		"has_all_prerequisites": h.catalog.HasAllPrerequisites(set, body.Permission),
		"missing":               missing,
	})
}

// GET /api/roles/:id/permissions
func (h *PermissionHandler) RolePermissions(c *gin.Context) {
	roleID := c.Param("id")
	set, err := h.roles.EffectivePermissions(requestContext(c), roleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"role_id":      roleID,
		"effective":    set.Effective(),
		"unknown_keys": set.Unknown(),
	})
}

// GET /api/members/:id/permissions
func (h *PermissionHandler) MemberPermissions(c *gin.Context) {
	memberID := c.Param("id")
	set, err := h.roles.MemberPermissions(requestContext(c), memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"member_id":    memberID,
		"effective":    set.Effective(),
		"unknown_keys": set.Unknown(),
	})
}

// GET /api/members/:id/permissions/:permission
func (h *PermissionHandler) CheckMember(c *gin.Context) {
	memberID := c.Param("id")
	permissionID := c.Param("permission")

	allowed, err := h.checker.Check(requestContext(c), memberID, permissionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"member_id":  memberID,
		"permission": permissionID,
		"allowed":    allowed,
	})
}

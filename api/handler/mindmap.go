package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/teamboard/backend/api/transport"
	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/pkg/httpcontext"
	mindmapUC "github.com/teamboard/backend/usecase/mindmap"
)

type MindmapHandler struct {
	baseHandler
	uc *mindmapUC.UseCase
}

func NewMindmapHandler(uc *mindmapUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MindmapHandler {
	return &MindmapHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List my mindmap projects
// @Tags mindmap
// @Router /api/v1/mindmap/projects [get]
func (h *MindmapHandler) ListProjects(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	projects, err := h.uc.ListProjects(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, projects)
}

// @Summary Create a mindmap project
// @Tags mindmap
// @Router /api/v1/mindmap/projects [post]
func (h *MindmapHandler) CreateProject(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.MindmapProjectRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateProject(stdCtx, userID, &domain.MindmapProject{
		Name:            req.Name,
		Description:     req.Description,
		BackgroundColor: req.BackgroundColor,
		GridEnabled:     req.GridEnabled,
		SnapToGrid:      req.SnapToGrid,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update a mindmap project
// @Tags mindmap
// @Router /api/v1/mindmap/projects/{id} [put]
func (h *MindmapHandler) UpdateProject(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing project id")
		return
	}

	var req transport.MindmapProjectRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateProject(stdCtx, userID, &domain.MindmapProject{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		BackgroundColor: req.BackgroundColor,
		GridEnabled:     req.GridEnabled,
		SnapToGrid:      req.SnapToGrid,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete a mindmap project with its nodes and connections
// @Tags mindmap
// @Router /api/v1/mindmap/projects/{id} [delete]
func (h *MindmapHandler) DeleteProject(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing project id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteProject(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Load the full graph of a mindmap project
// @Tags mindmap
// @Router /api/v1/mindmap/data [get]
func (h *MindmapHandler) Graph(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	projectID := string(ctx.QueryArgs().Peek("project_id"))
	if projectID == "" {
		h.respondInvalid(ctx, "project_id is required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	graph, err := h.uc.Graph(stdCtx, userID, projectID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, graph)
}

// @Summary Create a mindmap node
// @Tags mindmap
// @Router /api/v1/mindmap/nodes [post]
func (h *MindmapHandler) CreateNode(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	node, ok := h.parseNode(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateNode(stdCtx, userID, node)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update a mindmap node
// @Tags mindmap
// @Router /api/v1/mindmap/nodes/{id} [put]
func (h *MindmapHandler) UpdateNode(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	node, ok := h.parseNode(ctx)
	if !ok {
		return
	}
	node.ID = pathParam(ctx, "id")
	if node.ID == "" {
		h.respondInvalid(ctx, "missing node id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateNode(stdCtx, userID, node)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete a mindmap node and its connections
// @Tags mindmap
// @Router /api/v1/mindmap/nodes/{id} [delete]
func (h *MindmapHandler) DeleteNode(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing node id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteNode(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Connect two mindmap nodes
// @Tags mindmap
// @Router /api/v1/mindmap/connections [post]
func (h *MindmapHandler) Connect(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.MindmapConnectionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	conn, err := h.uc.Connect(stdCtx, userID, &domain.MindmapConnection{
		FromNodeID: req.FromNodeID,
		ToNodeID:   req.ToNodeID,
		Type:       req.Type,
		Label:      req.Label,
		Color:      req.Color,
		Thickness:  req.Thickness,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, conn)
}

// @Summary Remove a connection between mindmap nodes
// @Tags mindmap
// @Router /api/v1/mindmap/connections/{id} [delete]
func (h *MindmapHandler) Disconnect(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")
	projectID := string(ctx.QueryArgs().Peek("project_id"))
	if id == "" || projectID == "" {
		h.respondInvalid(ctx, "connection id and project_id are required")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Disconnect(stdCtx, userID, id, projectID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary List child nodes of a node
// @Tags mindmap
// @Router /api/v1/mindmap/nodes/{id}/children [get]
func (h *MindmapHandler) Children(ctx *fasthttp.RequestCtx) {
	h.related(ctx, h.uc.Children)
}

// @Summary List parent nodes of a node
// @Tags mindmap
// @Router /api/v1/mindmap/nodes/{id}/parents [get]
func (h *MindmapHandler) Parents(ctx *fasthttp.RequestCtx) {
	h.related(ctx, h.uc.Parents)
}

func (h *MindmapHandler) related(ctx *fasthttp.RequestCtx, load func(context.Context, string, string) ([]domain.MindmapNode, error)) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id := pathParam(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing node id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	nodes, err := load(stdCtx, userID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nodes)
}

func (h *MindmapHandler) parseNode(ctx *fasthttp.RequestCtx) (*domain.MindmapNode, bool) {
	var req transport.MindmapNodeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}
	return &domain.MindmapNode{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    domain.Priority(req.Priority),
		AssigneeID:  req.AssigneeID,
		X:           req.X,
		Y:           req.Y,
		Width:       req.Width,
		Height:      req.Height,
		Tags:        req.Tags,
	}, true
}

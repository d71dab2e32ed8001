package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"tavola/internal/app/award"
	"tavola/internal/app/history"
	"tavola/internal/app/leaderboard"
	"tavola/internal/app/overview"
	"tavola/internal/app/ports"
	"tavola/internal/app/progress"
	"tavola/internal/domain/progression"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const memberIDHeader = "X-Member-ID"

type Handler struct {
	ProgressUC    progress.UseCase
	OverviewUC    overview.UseCase
	HistoryUC     history.UseCase
	OrderUC       award.OrderUseCase
	QuestUC       award.QuestUseCase
	LeaderboardUC leaderboard.UseCase
	KPI           kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	member := s.Group("/api/member")
	member.GET("/progress", h.progress)
	member.GET("/overview", h.overview)
	member.GET("/history", h.history)

	s.POST("/api/order/settle", h.settleOrder)
	s.POST("/api/quest/claim", h.claimQuest)
	s.GET("/api/leaderboard", h.leaderboard)
	s.GET("/ops/kpi", h.kpi)
}

type settleOrderRequest struct {
	IdempotencyKey string  `json:"idempotency_key"`
	OrderID        string  `json:"order_id"`
	OrderTotal     float64 `json:"order_total"`
}

type claimQuestRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	QuestID        string `json:"quest_id"`
}

func (h Handler) progress(c context.Context, ctx *app.RequestContext) {
	memberID, err := requireMemberID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.ProgressUC.Execute(c, progress.Request{
		MemberID:    memberID,
		BoosterType: string(ctx.Query("booster_type")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) overview(c context.Context, ctx *app.RequestContext) {
	memberID, err := requireMemberID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.OverviewUC.Execute(c, overview.Request{MemberID: memberID})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	memberID, err := requireMemberID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))

	resp, err := h.HistoryUC.Execute(c, history.Request{MemberID: memberID, Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) settleOrder(c context.Context, ctx *app.RequestContext) {
	memberID, err := requireMemberID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body settleOrderRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.OrderUC.Execute(c, award.OrderRequest{
		MemberID:       memberID,
		IdempotencyKey: body.IdempotencyKey,
		OrderID:        body.OrderID,
		OrderTotal:     body.OrderTotal,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) claimQuest(c context.Context, ctx *app.RequestContext) {
	memberID, err := requireMemberID(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body claimQuestRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.QuestUC.Execute(c, award.QuestRequest{
		MemberID:       memberID,
		IdempotencyKey: body.IdempotencyKey,
		QuestID:        body.QuestID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) leaderboard(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))

	resp, err := h.LeaderboardUC.Execute(c, leaderboard.Request{Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingMemberIDHeader = errors.New("missing x-member-id header")

func requireMemberID(ctx *app.RequestContext) (string, error) {
	memberID := strings.TrimSpace(string(ctx.GetHeader(memberIDHeader)))
	if memberID == "" {
		return "", ErrMissingMemberIDHeader
	}
	return memberID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingMemberIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_member_id", err.Error())
	case errors.Is(err, award.ErrQuestLocked):
		writeErrorBody(ctx, consts.StatusConflict, "quest_locked", err.Error())
	case errors.Is(err, award.ErrQuestIncomplete):
		writeErrorBody(ctx, consts.StatusConflict, "quest_incomplete", err.Error())
	case errors.Is(err, award.ErrUnknownQuest):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_quest", err.Error())
	case errors.Is(err, award.ErrInvalidRequest),
		errors.Is(err, progress.ErrInvalidRequest),
		errors.Is(err, overview.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest),
		errors.Is(err, progression.ErrInvalidOrderTotal),
		errors.Is(err, progression.ErrNegativePoints):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

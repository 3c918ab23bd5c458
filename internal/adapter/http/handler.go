package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"runeforge/internal/app/interaction"
	"runeforge/internal/app/journal"
	"runeforge/internal/app/ports"
	"runeforge/internal/app/savegame"
	"runeforge/internal/app/session"
	"runeforge/internal/app/status"
	"runeforge/internal/domain/catalog"
	"runeforge/internal/domain/player"
	"runeforge/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	Session       *session.Session
	InteractionUC interaction.UseCase
	StatusUC      status.UseCase
	JournalUC     journal.UseCase
	SaveGameUC    savegame.UseCase
	Catalog       *catalog.Catalog
	KPI           kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	p := s.Group("/api/player")
	p.POST("/interact", h.interact)
	p.POST("/attack", h.attack)
	p.POST("/craft", h.craft)
	p.POST("/equip", h.equip)
	p.POST("/eat", h.eat)
	p.POST("/drop", h.drop)
	p.POST("/hotbar", h.hotbar)
	p.POST("/move", h.move)
	p.GET("/status", h.status)
	p.GET("/journal", h.journal)

	s.GET("/api/catalog", h.catalog)
	s.POST("/api/save", h.save)
	s.POST("/api/load", h.load)
	s.POST("/api/reset", h.reset)
	s.GET("/ops/kpi", h.kpi)
}

var errInvalidJSON = errors.New("invalid json")

type targetRequest struct {
	TargetID string `json:"target_id"`
}

type recipeRequest struct {
	RecipeID string `json:"recipe_id"`
}

type indexRequest struct {
	Index *int `json:"index"`
}

type dropRequest struct {
	ItemID string `json:"item_id"`
	Qty    int    `json:"qty"`
}

type moveRequest struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

type actionResponse struct {
	ResultCode string `json:"result_code"`
	interaction.Result
}

func (h Handler) interact(c context.Context, ctx *app.RequestContext) {
	var body targetRequest
	if !bind(ctx, &body) {
		return
	}
	res, err := h.InteractionUC.Interact(c, body.TargetID)
	writeAction(ctx, res, err)
}

func (h Handler) attack(c context.Context, ctx *app.RequestContext) {
	var body targetRequest
	if !bind(ctx, &body) {
		return
	}
	res, err := h.InteractionUC.Attack(c, body.TargetID)
	writeAction(ctx, res, err)
}

func (h Handler) craft(c context.Context, ctx *app.RequestContext) {
	var body recipeRequest
	if !bind(ctx, &body) {
		return
	}
	res, err := h.InteractionUC.Craft(c, body.RecipeID)
	writeAction(ctx, res, err)
}

func (h Handler) equip(c context.Context, ctx *app.RequestContext) {
	h.withIndex(ctx, func(i int) (interaction.Result, error) { return h.InteractionUC.Equip(c, i) })
}

func (h Handler) eat(c context.Context, ctx *app.RequestContext) {
	h.withIndex(ctx, func(i int) (interaction.Result, error) { return h.InteractionUC.Eat(c, i) })
}

func (h Handler) hotbar(c context.Context, ctx *app.RequestContext) {
	h.withIndex(ctx, func(i int) (interaction.Result, error) { return h.InteractionUC.SelectHotbar(c, i) })
}

func (h Handler) withIndex(ctx *app.RequestContext, fn func(int) (interaction.Result, error)) {
	var body indexRequest
	if !bind(ctx, &body) {
		return
	}
	if body.Index == nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "index is required")
		return
	}
	res, err := fn(*body.Index)
	writeAction(ctx, res, err)
}

func (h Handler) drop(c context.Context, ctx *app.RequestContext) {
	var body dropRequest
	if !bind(ctx, &body) {
		return
	}
	res, err := h.InteractionUC.Drop(c, body.ItemID, body.Qty)
	writeAction(ctx, res, err)
}

func (h Handler) move(c context.Context, ctx *app.RequestContext) {
	var body moveRequest
	if !bind(ctx, &body) {
		return
	}
	res, err := h.InteractionUC.Move(c, body.X, body.Z)
	writeAction(ctx, res, err)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) journal(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.JournalUC.Execute(c, journal.Request{
		PlayerID:     h.Session.PlayerID(),
		Limit:        limit,
		Kinds:        journal.ParseKinds(string(ctx.Query("kinds"))),
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalog(_ context.Context, ctx *app.RequestContext) {
	if h.Catalog == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "catalog not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.Catalog.File())
}

func (h Handler) save(c context.Context, ctx *app.RequestContext) {
	err := h.Session.Run(c, func(st *session.State) error {
		return h.SaveGameUC.Save(c, st)
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"saved": true})
}

func (h Handler) load(c context.Context, ctx *app.RequestContext) {
	var res savegame.LoadResult
	err := h.Session.Run(c, func(st *session.State) error {
		var err error
		res, err = h.SaveGameUC.Load(c, st)
		return err
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, res)
}

func (h Handler) reset(c context.Context, ctx *app.RequestContext) {
	err := h.Session.Run(c, func(st *session.State) error {
		return h.SaveGameUC.Reset(c, st)
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"reset": true})
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

// bind decodes the body into out and writes a 400 when it is not JSON.
// An empty body leaves out untouched.
func bind(ctx *app.RequestContext, out any) bool {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, out); err != nil {
		writeError(ctx, errInvalidJSON)
		return false
	}
	return true
}

func writeAction(ctx *app.RequestContext, res interaction.Result, err error) {
	if err == nil {
		ctx.JSON(consts.StatusOK, actionResponse{ResultCode: "OK", Result: res})
		return
	}
	if code := interaction.RejectionCode(err); code != "" {
		writeRejected(ctx, code, err, res)
		return
	}
	writeError(ctx, err)
}

func writeError(ctx *app.RequestContext, err error) {
	var unknownRecipe *catalog.UnknownRecipeError
	switch {
	case errors.As(err, &unknownRecipe):
		body := map[string]any{"code": "not_found", "message": err.Error()}
		if unknownRecipe.Suggestion != "" {
			body["suggestion"] = unknownRecipe.Suggestion
		}
		ctx.JSON(consts.StatusNotFound, map[string]any{"error": body})
	case errors.Is(err, errInvalidJSON):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", err.Error())
	case errors.Is(err, interaction.ErrInvalidRequest),
		errors.Is(err, journal.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, world.ErrUnknownEntity),
		errors.Is(err, player.ErrUnknownItem),
		errors.Is(err, ports.ErrNotFound):
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

func writeRejected(ctx *app.RequestContext, code string, err error, res interaction.Result) {
	ctx.JSON(consts.StatusConflict, map[string]any{
		"result_code": "REJECTED",
		"action":      res.Action,
		"target_id":   res.TargetID,
		"events":      res.Events,
		"error": map[string]any{
			"code":      code,
			"message":   err.Error(),
			"retryable": code == "ON_COOLDOWN",
			"details":   rejectionDetails(err),
		},
	})
}

func rejectionDetails(err error) map[string]any {
	var (
		cooldown    *world.CooldownError
		wrongTool   *world.WrongToolError
		requirement *player.RequirementError
		ingredients *player.IngredientsError
		quantity    *player.QuantityError
	)
	switch {
	case errors.As(err, &cooldown):
		return map[string]any{"target_id": cooldown.EntityID, "remaining_ms": cooldown.RemainingMillis()}
	case errors.As(err, &wrongTool):
		return map[string]any{"target_id": wrongTool.EntityID, "required_tool": string(wrongTool.Required)}
	case errors.As(err, &requirement):
		return map[string]any{"item": requirement.Item, "skill": requirement.Skill, "required": requirement.Required, "current": requirement.Current}
	case errors.As(err, &ingredients):
		missing := make([]map[string]any, 0, len(ingredients.Missing))
		for _, m := range ingredients.Missing {
			missing = append(missing, map[string]any{"item": m.Item, "qty": m.Qty})
		}
		return map[string]any{"recipe_id": ingredients.Recipe, "missing": missing}
	case errors.As(err, &quantity):
		return map[string]any{"item": quantity.Item, "want": quantity.Want, "have": quantity.Have}
	default:
		return nil
	}
}

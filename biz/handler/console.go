package handler

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/merchant_console/biz/console"
	"github.com/yi-nology/merchant_console/biz/dal/model"
	"github.com/yi-nology/merchant_console/biz/service"
	"github.com/yi-nology/merchant_console/pkg/common"
)

// ConsoleHandler exposes the console controller over HTTP.
type ConsoleHandler struct {
	ctrl *service.Controller
}

func NewConsoleHandler(ctrl *service.Controller) *ConsoleHandler {
	return &ConsoleHandler{ctrl: ctrl}
}

type queryRequest struct {
	HuifuID string `json:"huifu_id"`
}

type pasteRequest struct {
	Text string `json:"text"`
}

type shortcutRequest struct {
	Chord string `json:"chord"`
}

// ShortcutResult reports whether the chord was bound. Suppressed is set for
// handled chords whose native action must not run.
type ShortcutResult struct {
	Handled    bool      `json:"handled"`
	Suppressed bool      `json:"suppressed"`
	State      StateView `json:"state"`
}

func (h *ConsoleHandler) GetState(ctx context.Context, c *app.RequestContext) {
	RespondState(c, h.ctrl.State())
}

func (h *ConsoleHandler) Refresh(ctx context.Context, c *app.RequestContext) {
	RespondState(c, h.ctrl.Refresh(ctx))
}

// SaveConfig submits the body as the config form, or the current form when the body is empty.
func (h *ConsoleHandler) SaveConfig(ctx context.Context, c *app.RequestContext) {
	var form console.ConfigForm
	present, err := decodeBody(c, &form)
	if err != nil {
		WriteBadRequest(c, err)
		return
	}
	if present {
		RespondState(c, h.ctrl.SaveConfig(ctx, form))
		return
	}
	RespondState(c, h.ctrl.SubmitConfigForm(ctx))
}

func (h *ConsoleHandler) EditForm(ctx context.Context, c *app.RequestContext) {
	var form console.ConfigForm
	if _, err := decodeBody(c, &form); err != nil {
		WriteBadRequest(c, err)
		return
	}
	RespondState(c, h.ctrl.EditConfigForm(form))
}

func (h *ConsoleHandler) SelectConfig(ctx context.Context, c *app.RequestContext) {
	RespondState(c, h.ctrl.Select(ctx, c.Param("sys_id")))
}

// DeleteConfig deletes only with ?confirm=true; otherwise it answers with the
// confirmation prompt and leaves the backend untouched.
func (h *ConsoleHandler) DeleteConfig(ctx context.Context, c *app.RequestContext) {
	sysID := c.Param("sys_id")
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	state := h.ctrl.Delete(ctx, sysID, confirmed)
	if !confirmed {
		c.JSON(consts.StatusOK, common.CommonResponse{
			Code: consts.StatusAccepted,
			Msg:  console.DeletePrompt(sysID),
			Data: NewStateView(state),
		})
		return
	}
	RespondState(c, state)
}

func (h *ConsoleHandler) TestConfig(ctx context.Context, c *app.RequestContext) {
	RespondState(c, h.ctrl.TestConfig(ctx, c.Param("sys_id")))
}

func (h *ConsoleHandler) ConfigureWeChat(ctx context.Context, c *app.RequestContext) {
	var form console.WeChatForm
	if _, err := decodeBody(c, &form); err != nil {
		WriteBadRequest(c, err)
		return
	}
	RespondState(c, h.ctrl.ConfigureWeChat(ctx, form))
}

func (h *ConsoleHandler) QueryWeChat(ctx context.Context, c *app.RequestContext) {
	var req queryRequest
	if _, err := decodeBody(c, &req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	RespondState(c, h.ctrl.QueryWeChat(ctx, req.HuifuID))
}

func (h *ConsoleHandler) PasteRSAKey(ctx context.Context, c *app.RequestContext) {
	var req pasteRequest
	if _, err := decodeBody(c, &req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	RespondState(c, h.ctrl.PasteRSAKey(req.Text))
}

func (h *ConsoleHandler) GenerateTestKey(ctx context.Context, c *app.RequestContext) {
	RespondState(c, h.ctrl.GenerateTestKey(ctx))
}

func (h *ConsoleHandler) ClearForm(ctx context.Context, c *app.RequestContext) {
	RespondState(c, h.ctrl.ClearForm())
}

// Prefill copies sys_id, product_id, rsa_private_key and environment from the query string.
func (h *ConsoleHandler) Prefill(ctx context.Context, c *app.RequestContext) {
	values := make(map[string][]string)
	c.QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		values[k] = append(values[k], string(value))
	})
	RespondState(c, h.ctrl.Prefill(values))
}

func (h *ConsoleHandler) Shortcut(ctx context.Context, c *app.RequestContext) {
	var req shortcutRequest
	if _, err := decodeBody(c, &req); err != nil {
		WriteBadRequest(c, err)
		return
	}
	state, handled := h.ctrl.Shortcut(ctx, req.Chord)
	RespondData(c, ShortcutResult{Handled: handled, Suppressed: handled, State: NewStateView(state)})
}

func (h *ConsoleHandler) DismissAlert(ctx context.Context, c *app.RequestContext) {
	RespondState(c, h.ctrl.DismissAlert())
}

func (h *ConsoleHandler) ListJournal(ctx context.Context, c *app.RequestContext) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	var (
		records []model.ActionRecord
		err     error
	)
	if sysID := c.Query("sys_id"); sysID != "" {
		records, err = h.ctrl.JournalFor(ctx, sysID, limit)
	} else {
		records, err = h.ctrl.Journal(ctx, limit)
	}
	if err != nil {
		if errors.Is(err, service.ErrJournalDisabled) {
			WriteUnavailable(c, err)
			return
		}
		WriteInternalError(c, err)
		return
	}
	RespondData(c, map[string]any{"records": records, "count": len(records)})
}

func (h *ConsoleHandler) ExportSnapshot(ctx context.Context, c *app.RequestContext) {
	ref, err := h.ctrl.ExportSnapshot(ctx)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSnapshotDisabled):
			WriteUnavailable(c, err)
		case errors.Is(err, service.ErrNothingLoaded):
			WriteBadRequest(c, err)
		default:
			WriteInternalError(c, err)
		}
		return
	}
	RespondData(c, ref)
}

// GetSnapshot streams an exported snapshot back to the client.
func (h *ConsoleHandler) GetSnapshot(ctx context.Context, c *app.RequestContext) {
	rc, err := h.ctrl.OpenSnapshot(ctx, snapshotKey(c))
	if err != nil {
		h.writeSnapshotError(c, err)
		return
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		WriteInternalError(c, err)
		return
	}
	c.Data(consts.StatusOK, consts.MIMEApplicationJSON, content)
}

func (h *ConsoleHandler) DeleteSnapshot(ctx context.Context, c *app.RequestContext) {
	if err := h.ctrl.DeleteSnapshot(ctx, snapshotKey(c)); err != nil {
		h.writeSnapshotError(c, err)
		return
	}
	RespondData(c, nil)
}

func (h *ConsoleHandler) writeSnapshotError(c *app.RequestContext, err error) {
	switch {
	case errors.Is(err, service.ErrSnapshotNotFound):
		WriteNotFound(c, err)
	case errors.Is(err, service.ErrSnapshotDisabled):
		WriteUnavailable(c, err)
	default:
		WriteInternalError(c, err)
	}
}

func snapshotKey(c *app.RequestContext) string {
	return strings.TrimPrefix(c.Param("key"), "/")
}

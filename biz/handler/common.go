package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/merchant_console/biz/console"
	"github.com/yi-nology/merchant_console/pkg/common"
)

// StateView is the JSON rendering of the console state.
type StateView struct {
	console.UiState
	AlertLines []string `json:"alert_lines,omitempty"`
	AlertHTML  string   `json:"alert_html,omitempty"`
	AlertClass string   `json:"alert_class,omitempty"`
}

func NewStateView(s console.UiState) StateView {
	view := StateView{UiState: s}
	if s.Alert.Visible {
		view.AlertLines = s.Alert.Lines()
		view.AlertHTML = s.Alert.HTML()
		view.AlertClass = s.Alert.Class()
	}
	return view
}

func RespondState(c *app.RequestContext, s console.UiState) {
	RespondData(c, NewStateView(s))
}

func RespondData(c *app.RequestContext, data any) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code: consts.StatusOK,
		Msg:  http.StatusText(consts.StatusOK),
		Data: data,
	})
}

func WriteBadRequest(c *app.RequestContext, err error) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code:  consts.StatusBadRequest,
		Msg:   err.Error(),
		Error: err.Error(),
	})
}

func WriteInternalError(c *app.RequestContext, err error) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code:  consts.StatusInternalServerError,
		Msg:   "internal error",
		Error: err.Error(),
	})
}

func WriteNotFound(c *app.RequestContext, err error) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code:  consts.StatusNotFound,
		Msg:   err.Error(),
		Error: err.Error(),
	})
}

func WriteUnavailable(c *app.RequestContext, err error) {
	c.JSON(consts.StatusOK, common.CommonResponse{
		Code:  consts.StatusServiceUnavailable,
		Msg:   err.Error(),
		Error: err.Error(),
	})
}

// decodeBody unmarshals a JSON request body into v. An empty body leaves v untouched.
func decodeBody(c *app.RequestContext, v any) (bool, error) {
	body := c.Request.Body()
	if len(body) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return false, fmt.Errorf("invalid json body: %w", err)
	}
	return true, nil
}

// Ping answers liveness probes.
func Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{"message": "pong"})
}

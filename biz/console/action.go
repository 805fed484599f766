package console

import (
	"fmt"
	"net/url"

	"github.com/yi-nology/merchant_console/biz/model/api"
	"github.com/yi-nology/merchant_console/pkg/constants"
	"github.com/yi-nology/merchant_console/pkg/util"
	"github.com/yi-nology/merchant_console/pkg/validator"
)

// The alert tags below must equal constants.MsgSelectConfig, MsgSelectFeeType
// and MsgEnterHuifuID; struct tags cannot reference constants.

// weChatSubmission is the validated shape of a WeChat form submission.
type weChatSubmission struct {
	SysID   string `validate:"required" alert:"请先选择系统配置"`
	FeeType string `validate:"required" alert:"请选择费率类型"`
}

// weChatQuery is the validated shape of a WeChat binding query.
type weChatQuery struct {
	SysID   string `validate:"required" alert:"请先选择系统配置"`
	HuifuID string `validate:"required" alert:"请输入汇付ID"`
}

// Refresh starts a list fetch identified by token. A result carrying any other
// token is discarded when it lands.
func Refresh(s UiState, token string) (UiState, Command) {
	s.RefreshToken = token
	s.SetBusy(true)
	return s, FetchConfigs{Token: token}
}

// EditConfigForm replaces the config form fields.
func EditConfigForm(s UiState, form ConfigForm) UiState {
	s.ConfigForm = form
	return s
}

// SubmitConfigForm saves the config form as a new system configuration.
// The WeChat fields are left empty; they are bound through a separate flow.
func SubmitConfigForm(s UiState) (UiState, Command) {
	form := s.ConfigForm
	s.SetBusy(true)
	return s, CreateConfig{Config: api.SystemConfig{
		SysID:         form.SysID,
		ProductID:     form.ProductID,
		RSAPrivateKey: form.RSAPrivateKey,
		Environment:   form.Environment,
	}}
}

// DeletePrompt is the confirmation text shown before deleting sysID.
func DeletePrompt(sysID string) string {
	return fmt.Sprintf(constants.MsgDeleteConfirm, sysID)
}

// RequestDelete deletes sysID once the user confirmed; a declined prompt is a no-op.
func RequestDelete(s UiState, sysID string, confirmed bool) (UiState, Command) {
	if !confirmed || sysID == "" {
		return s, nil
	}
	s.SetBusy(true)
	return s, DeleteConfig{SysID: sysID}
}

// SelectConfig copies sysID into the selector and moves focus to the WeChat form.
func SelectConfig(s UiState, sysID string) UiState {
	s.Selected = sysID
	s.Focus = constants.FocusWeChatForm
	s.success(fmt.Sprintf(constants.MsgSelected, sysID))
	return s
}

// SubmitWeChatForm binds a WeChat official account to the selected configuration.
func SubmitWeChatForm(s UiState, form WeChatForm) (UiState, Command) {
	if form.SysID != "" {
		s.Selected = form.SysID
	}
	form.SysID = ""
	s.WeChatForm = form

	if msg := validator.Violation(weChatSubmission{SysID: s.Selected, FeeType: form.FeeType}); msg != "" {
		s.fail(msg)
		return s, nil
	}
	s.SetBusy(true)
	return s, ConfigureWeChat{Request: api.WeChatConfigRequest{
		SysID:      s.Selected,
		HuifuID:    form.HuifuID,
		WxWoaAppID: form.WxWoaAppID,
		WxWoaPath:  form.WxWoaPath,
		FeeType:    form.FeeType,
	}}
}

// QueryWeChatConfig reads the WeChat binding of huifuID under the selected configuration.
func QueryWeChatConfig(s UiState, huifuID string) (UiState, Command) {
	if msg := validator.Violation(weChatQuery{SysID: s.Selected, HuifuID: huifuID}); msg != "" {
		s.fail(msg)
		return s, nil
	}
	s.WeChatForm.HuifuID = huifuID
	s.SetBusy(true)
	return s, QueryWeChat{Request: api.WeChatQueryRequest{SysID: s.Selected, HuifuID: huifuID}}
}

// PasteRSAKey stores the RSA field content after a paste, adding PEM boundaries
// when the text has none.
func PasteRSAKey(s UiState, text string) UiState {
	s.ConfigForm.RSAPrivateKey = util.WrapRSAPrivateKey(text)
	return s
}

// Prefill copies the known query parameters into the config form.
func Prefill(s UiState, query url.Values) UiState {
	if query.Has("sys_id") {
		s.ConfigForm.SysID = query.Get("sys_id")
	}
	if query.Has("product_id") {
		s.ConfigForm.ProductID = query.Get("product_id")
	}
	if query.Has("rsa_private_key") {
		s.ConfigForm.RSAPrivateKey = query.Get("rsa_private_key")
	}
	if query.Has("environment") {
		s.ConfigForm.Environment = query.Get("environment")
	}
	return s
}

// DismissAlert hides the alert region.
func DismissAlert(s UiState) UiState {
	s.Clear()
	return s
}

// ClearForm resets the config form.
func ClearForm(s UiState) UiState {
	s.ConfigForm = ConfigForm{}
	s.info(constants.MsgFormCleared)
	return s
}

// RequestTestKey asks the backend for a throwaway key to put in the RSA field.
func RequestTestKey(s UiState) (UiState, Command) {
	s.SetBusy(true)
	return s, GenerateTestKey{}
}

// RequestConfigTest asks the backend to exercise a saved configuration.
// An empty sysID falls back to the current selection.
func RequestConfigTest(s UiState, sysID string) (UiState, Command) {
	if sysID == "" {
		sysID = s.Selected
	}
	if sysID == "" {
		s.fail(constants.MsgSelectConfig)
		return s, nil
	}
	s.SetBusy(true)
	return s, TestConfig{SysID: sysID}
}

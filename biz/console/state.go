// Package console holds the merchant console's UI state and the pure actions
// that transform it. Actions never perform I/O: each returns the next state and,
// when the backend must be called, a Command for the dispatcher to execute.
package console

import (
	"html"
	"strings"

	"github.com/yi-nology/merchant_console/biz/model/api"
	"github.com/yi-nology/merchant_console/pkg/constants"
)

// Severity selects the alert styling.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Alert is the single message region of the console.
type Alert struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Visible  bool     `json:"visible"`
}

// Lines splits the message on newlines for renderers that emit one row per line.
func (a Alert) Lines() []string {
	if a.Message == "" {
		return nil
	}
	return strings.Split(a.Message, "\n")
}

// HTML renders the message with escaped content and <br> line breaks.
func (a Alert) HTML() string {
	lines := a.Lines()
	for i := range lines {
		lines[i] = html.EscapeString(lines[i])
	}
	return strings.Join(lines, "<br>")
}

// Class is the CSS class list for the alert region.
func (a Alert) Class() string {
	return "alert alert-" + string(a.Severity)
}

// ListEntry is one row of the configuration list view.
type ListEntry struct {
	SysID            string `json:"sys_id"`
	ProductID        string `json:"product_id"`
	Environment      string `json:"environment"`
	EnvironmentLabel string `json:"environment_label"`
	Production       bool   `json:"production"`
}

// Option is one choice of the system configuration selector.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ConfigForm mirrors the system configuration form.
type ConfigForm struct {
	SysID         string `json:"sys_id"`
	ProductID     string `json:"product_id"`
	RSAPrivateKey string `json:"rsa_private_key"`
	Environment   string `json:"environment"`
}

// WeChatForm mirrors the WeChat merchant form. SysID, when set, replaces the
// selector value before submission.
type WeChatForm struct {
	SysID      string `json:"sys_id,omitempty"`
	HuifuID    string `json:"huifu_id"`
	WxWoaAppID string `json:"wx_woa_app_id"`
	WxWoaPath  string `json:"wx_woa_path"`
	FeeType    string `json:"fee_type"`
}

// UiState is the complete transient state of one console.
type UiState struct {
	Alert        Alert       `json:"alert"`
	Loading      bool        `json:"loading"`
	Selected     string      `json:"selected"`
	Entries      []ListEntry `json:"entries"`
	Options      []Option    `json:"options"`
	EmptyMessage string      `json:"empty_message,omitempty"`
	ConfigForm   ConfigForm  `json:"config_form"`
	WeChatForm   WeChatForm  `json:"wechat_form"`
	Focus        string      `json:"focus,omitempty"`
	RefreshToken string      `json:"-"`

	busy          int
	pendingSelect string
}

// NewUiState returns the state of a console that has not loaded anything yet.
func NewUiState() UiState {
	return UiState{
		Entries: []ListEntry{},
		Options: []Option{placeholderOption()},
	}
}

// Present replaces the alert content and shows it.
func (s *UiState) Present(a Alert) {
	a.Visible = true
	s.Alert = a
}

// Clear hides the alert.
func (s *UiState) Clear() {
	s.Alert.Visible = false
}

// SetBusy marks one operation as started (true) or finished (false).
// Loading stays on while any operation is outstanding.
func (s *UiState) SetBusy(on bool) {
	if on {
		s.busy++
	} else if s.busy > 0 {
		s.busy--
	}
	s.Loading = s.busy > 0
}

// Busy reports whether any operation is outstanding.
func (s UiState) Busy() bool {
	return s.busy > 0
}

// HasOption reports whether the selector currently offers sysID.
func (s UiState) HasOption(sysID string) bool {
	if sysID == "" {
		return false
	}
	for _, opt := range s.Options {
		if opt.Value == sysID {
			return true
		}
	}
	return false
}

// Snapshot returns a copy whose slices are not shared with s.
func (s UiState) Snapshot() UiState {
	out := s
	out.Entries = make([]ListEntry, len(s.Entries))
	copy(out.Entries, s.Entries)
	out.Options = make([]Option, len(s.Options))
	copy(out.Options, s.Options)
	return out
}

func (s *UiState) info(msg string) {
	s.Present(Alert{Message: msg, Severity: SeverityInfo})
}

func (s *UiState) success(msg string) {
	s.Present(Alert{Message: msg, Severity: SeveritySuccess})
}

func (s *UiState) fail(msg string) {
	s.Present(Alert{Message: msg, Severity: SeverityError})
}

// populate rebuilds the list view and selector from a successful fetch.
func (s *UiState) populate(configs []api.ConfigSummary) {
	s.Entries = make([]ListEntry, 0, len(configs))
	s.Options = make([]Option, 0, len(configs)+1)
	s.Options = append(s.Options, placeholderOption())
	for _, cfg := range configs {
		s.Entries = append(s.Entries, ListEntry{
			SysID:            cfg.SysID,
			ProductID:        cfg.ProductID,
			Environment:      cfg.Environment,
			EnvironmentLabel: constants.EnvironmentLabel(cfg.Environment),
			Production:       cfg.Environment == constants.EnvironmentProduction,
		})
		s.Options = append(s.Options, Option{
			Value: cfg.SysID,
			Label: cfg.SysID + " (" + cfg.Environment + ")",
		})
	}
	s.EmptyMessage = ""
	if len(configs) == 0 {
		s.EmptyMessage = constants.EmptyListMessage
	}
}

func placeholderOption() Option {
	return Option{Value: "", Label: constants.SelectorPlaceholder}
}

// Refreshing reports whether a list fetch is outstanding.
func (s UiState) Refreshing() bool {
	return s.RefreshToken != ""
}

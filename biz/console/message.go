package console

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/yi-nology/merchant_console/biz/model/api"
	"github.com/yi-nology/merchant_console/pkg/constants"
)

// failureText builds the alert for a failed call: "<prefix>: <details>" for
// application failures and the generic fallback for everything else.
func failureText(prefix string, err error, fallback string) string {
	if apiErr, ok := api.AsAPIError(err); ok {
		details := apiErr.Details
		if details == "" {
			details = constants.UnknownError
		}
		return prefix + ": " + details
	}
	return fallback
}

func weChatConfiguredText(resp *api.WeChatConfigResponse) string {
	if resp == nil {
		resp = &api.WeChatConfigResponse{}
	}
	var b strings.Builder
	b.WriteString(constants.MsgWeChatOK)
	b.WriteString("\n" + constants.PrefixHuifuID + resp.HuifuID)
	b.WriteString("\n" + constants.PrefixWxAppID + resp.WxAppID)
	if line := providerStatus(resp.Message); line != "" {
		b.WriteString("\n" + line)
	}
	return b.String()
}

// providerStatus extracts the one-line summary of the provider message.
// Strings are quoted as-is, objects contribute their resp_desc.
func providerStatus(raw json.RawMessage) string {
	msg := gjson.ParseBytes(raw)
	switch {
	case !truthy(msg):
		return ""
	case msg.Type == gjson.String:
		return constants.PrefixResponse + msg.Str
	case msg.IsObject():
		desc := msg.Get("data.resp_desc")
		if !truthy(desc) {
			desc = msg.Get("resp_desc")
		}
		if truthy(desc) {
			return constants.PrefixStatus + desc.String()
		}
		return ""
	case msg.IsArray():
		return ""
	default:
		return constants.PrefixResponse + msg.Raw
	}
}

func weChatQueriedText(resp *api.WeChatQueryResponse) string {
	if resp == nil {
		resp = &api.WeChatQueryResponse{}
	}
	var b strings.Builder
	b.WriteString(constants.MsgQueryResult)
	b.WriteString("\n" + constants.PrefixHuifuID + resp.HuifuID + "\n")

	if msg := gjson.ParseBytes(resp.Message); truthy(msg) {
		if msg.Type == gjson.String {
			b.WriteString(constants.PrefixResponse + msg.Str)
		} else {
			b.WriteString(constants.PrefixResponse + prettyJSON(msg.Raw))
		}
	} else if result := gjson.ParseBytes(resp.Result); truthy(result) {
		b.WriteString(constants.PrefixResponse + prettyJSON(result.Raw))
	}
	return b.String()
}

// truthy mirrors how a loosely typed client would test a JSON value.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	case gjson.True:
		return true
	default:
		return r.Exists() && r.Raw != ""
	}
}

// prettyJSON indents raw JSON by two spaces; invalid input is returned unchanged.
func prettyJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}

package constants

// EnvironmentProduction is the only environment value treated as production;
// anything else is labelled as test.
const EnvironmentProduction = "production"

// EnvironmentTest is the default environment assumed by the backend.
const EnvironmentTest = "test"

// Labels rendered next to each configuration entry.
const (
	LabelProduction = "生产环境"
	LabelTest       = "测试环境"
)

// EnvironmentLabel returns the display label for an environment value.
func EnvironmentLabel(env string) string {
	if env == EnvironmentProduction {
		return LabelProduction
	}
	return LabelTest
}

// Selector and list placeholders.
const (
	SelectorPlaceholder = "请选择系统配置"
	EmptyListMessage    = "暂无配置"
)

// FocusWeChatForm is the focus target set after a configuration is selected.
const FocusWeChatForm = "wechatForm"

// UnknownError is shown when a failed response carries no details.
const UnknownError = "未知错误"

// User-facing alert texts.
const (
	MsgLoadFailed       = "加载配置列表失败"
	MsgNetworkError     = "网络错误，请稍后重试"
	MsgSaved            = "配置保存成功！"
	MsgSaveFailed       = "保存失败"
	MsgDeleteConfirm    = "确定要删除配置 %s 吗？此操作不可恢复。"
	MsgDeleted          = "配置 %s 已删除"
	MsgDeleteFailed     = "删除失败"
	MsgSelected         = "已选择配置: %s"
	MsgSelectConfig     = "请先选择系统配置"
	MsgSelectFeeType    = "请选择费率类型"
	MsgEnterHuifuID     = "请输入汇付ID"
	MsgWeChatOK         = "✅ 微信商户配置成功！"
	MsgWeChatFailed     = "配置失败"
	MsgQueryResult      = "🔍 查询结果："
	MsgQueryFailed      = "查询失败"
	MsgQueryNetwork     = "查询失败，请检查网络连接"
	MsgTestKeyGenerated = "已生成测试密钥（仅供测试，请勿用于生产环境）"
	MsgTestKeyFailed    = "生成失败，请手动输入密钥"
	MsgFormCleared      = "表单已清空"
	MsgConfigValid      = "配置验证通过"
	MsgConfigInvalid    = "验证失败"
)

// Line prefixes used when composing multi-line results.
const (
	PrefixHuifuID  = "汇付ID: "
	PrefixWxAppID  = "微信AppID: "
	PrefixStatus   = "状态: "
	PrefixResponse = "响应: "
)

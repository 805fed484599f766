package common

import (
	"context"
	"strings"
	"unicode/utf8"
)

// CommonResponse is a lightweight response wrapper used by HTTP handlers.
type CommonResponse struct {
	Code  int         `json:"code"`
	Msg   string      `json:"msg,omitempty"`
	Error string      `json:"error,omitempty"`
	Data  interface{} `json:"data,omitempty"`
}

type contextKey string

const operatorKey contextKey = "operator"

// MaxOperatorLength bounds the operator name kept in context and journal rows.
const MaxOperatorLength = 128

// ContextWithOperator stores the name of whoever triggered the action.
func ContextWithOperator(ctx context.Context, operator string) context.Context {
	operator = strings.TrimSpace(operator)
	if operator == "" {
		return ctx
	}
	if len(operator) > MaxOperatorLength {
		n := MaxOperatorLength
		for n > 0 && !utf8.RuneStart(operator[n]) {
			n--
		}
		operator = operator[:n]
	}
	return context.WithValue(ctx, operatorKey, operator)
}

// GetOperator retrieves the operator from context.
func GetOperator(ctx context.Context) string {
	if v, ok := ctx.Value(operatorKey).(string); ok {
		return v
	}
	return ""
}

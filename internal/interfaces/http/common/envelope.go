package common

import "time"

// SuccessEnvelope は全アクション共通の成功レスポンスを組み立てる。
// resultFields は status/timestamp と同じ階層に展開される。
func SuccessEnvelope(now time.Time, resultFields map[string]any) map[string]any {
	payload := map[string]any{
		"status":    "success",
		"timestamp": now.Format(time.RFC3339),
	}
	for key, value := range resultFields {
		payload[key] = value
	}
	return payload
}

// ErrorEnvelope は全アクション共通の失敗レスポンスを組み立てる。
func ErrorEnvelope(now time.Time, message string) map[string]any {
	return map[string]any{
		"status":    "error",
		"message":   message,
		"timestamp": now.Format(time.RFC3339),
	}
}

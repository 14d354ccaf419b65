package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// EvaluationHeader は evaluation テーブルのヘッダー行(13列固定)。
var EvaluationHeader = []string{
	"Timestamp", "Center", "Week", "Day", "Period",
	"Instructor1", "Instructor2",
	"Clarity", "Preparation", "Interaction", "Punctuality", "Satisfaction",
	"Comment",
}

// Evaluation は検証を通過した評価1件。タイムスタンプは永続化層で付与する。
type Evaluation struct {
	Center       string
	Week         string
	Day          string
	Period       string
	Instructor1  string
	Instructor2  string
	Clarity      int
	Preparation  int
	Interaction  int
	Punctuality  int
	Satisfaction int
	Comment      string
}

var requiredEvaluationFields = []string{"center", "week", "day", "period"}

var ratingFields = []string{"clarity", "preparation", "interaction", "punctuality", "satisfaction"}

// ValidateEvaluation は投稿ペイロードを検査し、型を揃えた Evaluation を返す。
// 検査は定義順で行い、最初の違反で打ち切る。キー項目はトリムや正規化をしない。
func ValidateEvaluation(payload map[string]any) (Evaluation, error) {
	for _, field := range requiredEvaluationFields {
		if stringValue(payload[field]) == "" {
			return Evaluation{}, fmt.Errorf("Missing required field: %s", field)
		}
	}

	instructor1 := stringValue(payload["instructor1"])
	instructor2 := stringValue(payload["instructor2"])
	if instructor1 == "" && instructor2 == "" {
		return Evaluation{}, errors.New("At least one instructor is required")
	}

	ratings := make(map[string]int, len(ratingFields))
	for _, field := range ratingFields {
		value, ok := parseLeadingInt(payload[field])
		if !ok || value < 1 || value > 5 {
			return Evaluation{}, fmt.Errorf("Invalid rating for %s: must be a number between 1 and 5", field)
		}
		ratings[field] = value
	}

	return Evaluation{
		Center:       stringValue(payload["center"]),
		Week:         stringValue(payload["week"]),
		Day:          stringValue(payload["day"]),
		Period:       stringValue(payload["period"]),
		Instructor1:  instructor1,
		Instructor2:  instructor2,
		Clarity:      ratings["clarity"],
		Preparation:  ratings["preparation"],
		Interaction:  ratings["interaction"],
		Punctuality:  ratings["punctuality"],
		Satisfaction: ratings["satisfaction"],
		Comment:      stringValue(payload["comment"]),
	}, nil
}

// Row は評価を evaluation テーブルの13列レイアウトへ展開する。
// 先頭列のタイムスタンプは呼び出し側が採番済みの文字列を渡す。
func (e Evaluation) Row(timestamp string) []string {
	return []string{
		timestamp,
		e.Center,
		e.Week,
		e.Day,
		e.Period,
		e.Instructor1,
		e.Instructor2,
		strconv.Itoa(e.Clarity),
		strconv.Itoa(e.Preparation),
		strconv.Itoa(e.Interaction),
		strconv.Itoa(e.Punctuality),
		strconv.Itoa(e.Satisfaction),
		e.Comment,
	}
}

// stringValue は JSON デコード後の値を文字列へ寄せる。
// 欠落・null・空文字はすべて空文字になり、必須チェックの falsy 判定を兼ねる。
func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return ""
	default:
		return ""
	}
}

// parseLeadingInt は先頭一致の整数パースを行う。"5abc" は 5、小数は 0 方向へ切り捨て。
// 数字で始まらない文字列やパース不能な型は失敗を返す。
func parseLeadingInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case string:
		trimmed := strings.TrimLeft(v, " \t\n\r")
		start := 0
		if start < len(trimmed) && (trimmed[start] == '+' || trimmed[start] == '-') {
			start++
		}
		end := start
		for end < len(trimmed) && trimmed[end] >= '0' && trimmed[end] <= '9' {
			end++
		}
		if end == start {
			return 0, false
		}
		parsed, err := strconv.Atoi(trimmed[:end])
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

package domain

import (
	"errors"
	"fmt"
)

// InstructorsHeader は instructors テーブルのヘッダー行(6列固定)。
var InstructorsHeader = []string{"Center", "Week", "Day", "Period", "Instructor1", "Instructor2"}

// Slot は1つのスケジュール枠に割り当てられた講師のペア。
// どちらか一方が空文字でもよいが、キーが欠けた行はスロットとして存在しない。
type Slot struct {
	Instructor1 string `json:"instructor1"`
	Instructor2 string `json:"instructor2"`
}

// NestedSchedule は center → week → day → period の4階層でスロットを引く参照構造。
// 永続化されるのはフラットな行形式のみで、この構造は行から毎回組み立てる。
type NestedSchedule map[string]map[string]map[string]map[string]Slot

const (
	colCenter = iota
	colWeek
	colDay
	colPeriod
	colInstructor1
	colInstructor2
)

// DecodeRows はヘッダー付きの行列を NestedSchedule へ変換する。
// center/week/day/period のいずれかが空の行はエラーにせず読み飛ばす。
// 同一キー4組の行が複数ある場合は後勝ち。
// 戻り値の recordCount はヘッダーを除いた生の行数で、読み飛ばした行も含む。
func DecodeRows(rows [][]string) (NestedSchedule, int) {
	nested := NestedSchedule{}
	if len(rows) <= 1 {
		return nested, 0
	}

	body := rows[1:]
	for _, row := range body {
		center := cellAt(row, colCenter)
		week := cellAt(row, colWeek)
		day := cellAt(row, colDay)
		period := cellAt(row, colPeriod)
		if center == "" || week == "" || day == "" || period == "" {
			continue
		}

		weeks, ok := nested[center]
		if !ok {
			weeks = map[string]map[string]map[string]Slot{}
			nested[center] = weeks
		}
		days, ok := weeks[week]
		if !ok {
			days = map[string]map[string]Slot{}
			weeks[week] = days
		}
		periods, ok := days[day]
		if !ok {
			periods = map[string]Slot{}
			days[day] = periods
		}
		periods[period] = Slot{
			Instructor1: cellAt(row, colInstructor1),
			Instructor2: cellAt(row, colInstructor2),
		}
	}

	return nested, len(body)
}

// EncodeRows は NestedSchedule をヘッダー無しの行列へ展開する。
// map の走査順に依存するため行の順序は保証しない(利用側はキー参照のみ)。
func EncodeRows(nested NestedSchedule) [][]string {
	rows := make([][]string, 0)
	for center, weeks := range nested {
		for week, days := range weeks {
			for day, periods := range days {
				for period, slot := range periods {
					rows = append(rows, []string{center, week, day, period, slot.Instructor1, slot.Instructor2})
				}
			}
		}
	}
	return rows
}

// ParseNestedSchedule は JSON デコード済みの値を NestedSchedule として解釈する。
// トップレベルが null や非オブジェクトの場合、および途中階層が
// オブジェクトでない場合は受理しない。
func ParseNestedSchedule(value any) (NestedSchedule, error) {
	root, ok := value.(map[string]any)
	if !ok || root == nil {
		return nil, errors.New("Invalid input: instructors data must be an object")
	}

	nested := NestedSchedule{}
	for center, weeksValue := range root {
		weeksRaw, ok := weeksValue.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("Invalid input: weeks for center %q must be an object", center)
		}
		weeks := map[string]map[string]map[string]Slot{}
		for week, daysValue := range weeksRaw {
			daysRaw, ok := daysValue.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("Invalid input: days for week %q must be an object", week)
			}
			days := map[string]map[string]Slot{}
			for day, periodsValue := range daysRaw {
				periodsRaw, ok := periodsValue.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("Invalid input: periods for day %q must be an object", day)
				}
				periods := map[string]Slot{}
				for period, slotValue := range periodsRaw {
					slotRaw, ok := slotValue.(map[string]any)
					if !ok {
						return nil, fmt.Errorf("Invalid input: slot for period %q must be an object", period)
					}
					periods[period] = Slot{
						Instructor1: stringValue(slotRaw["instructor1"]),
						Instructor2: stringValue(slotRaw["instructor2"]),
					}
				}
				days[day] = periods
			}
			weeks[week] = days
		}
		nested[center] = weeks
	}

	return nested, nil
}

func cellAt(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}

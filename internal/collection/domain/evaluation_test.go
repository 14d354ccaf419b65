package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullEvaluationPayload() map[string]any {
	return map[string]any{
		"center":       "A",
		"week":         "1",
		"day":          "Mon",
		"period":       "AM",
		"instructor1":  "X",
		"instructor2":  "",
		"clarity":      float64(5),
		"preparation":  float64(4),
		"interaction":  float64(5),
		"punctuality":  float64(4),
		"satisfaction": float64(5),
		"comment":      "ok",
	}
}

func TestValidateEvaluationSuccess(t *testing.T) {
	evaluation, err := ValidateEvaluation(fullEvaluationPayload())
	require.NoError(t, err)

	assert.Equal(t, "A", evaluation.Center)
	assert.Equal(t, "1", evaluation.Week)
	assert.Equal(t, "Mon", evaluation.Day)
	assert.Equal(t, "AM", evaluation.Period)
	assert.Equal(t, "X", evaluation.Instructor1)
	assert.Equal(t, "", evaluation.Instructor2)
	assert.Equal(t, 5, evaluation.Clarity)
	assert.Equal(t, 4, evaluation.Preparation)
	assert.Equal(t, "ok", evaluation.Comment)
}

func TestValidateEvaluationCommentDefaultsToEmpty(t *testing.T) {
	payload := fullEvaluationPayload()
	delete(payload, "comment")

	evaluation, err := ValidateEvaluation(payload)
	require.NoError(t, err)
	assert.Equal(t, "", evaluation.Comment)
}

func TestValidateEvaluationKeyFieldsNotTrimmed(t *testing.T) {
	payload := fullEvaluationPayload()
	payload["center"] = " A "

	evaluation, err := ValidateEvaluation(payload)
	require.NoError(t, err)
	assert.Equal(t, " A ", evaluation.Center)
}

func TestValidateEvaluationMissingFieldsInOrder(t *testing.T) {
	_, err := ValidateEvaluation(map[string]any{})
	require.Error(t, err)
	assert.Equal(t, "Missing required field: center", err.Error())

	payload := fullEvaluationPayload()
	payload["week"] = ""
	_, err = ValidateEvaluation(payload)
	require.Error(t, err)
	assert.Equal(t, "Missing required field: week", err.Error())

	payload = fullEvaluationPayload()
	payload["period"] = nil
	_, err = ValidateEvaluation(payload)
	require.Error(t, err)
	assert.Equal(t, "Missing required field: period", err.Error())
}

func TestValidateEvaluationRequiresAnInstructor(t *testing.T) {
	payload := fullEvaluationPayload()
	payload["instructor1"] = ""
	payload["instructor2"] = ""

	_, err := ValidateEvaluation(payload)
	require.Error(t, err)
	assert.Equal(t, "At least one instructor is required", err.Error())
}

func TestValidateEvaluationSecondInstructorAloneIsEnough(t *testing.T) {
	payload := fullEvaluationPayload()
	payload["instructor1"] = ""
	payload["instructor2"] = "Y"

	evaluation, err := ValidateEvaluation(payload)
	require.NoError(t, err)
	assert.Equal(t, "Y", evaluation.Instructor2)
}

func TestValidateEvaluationRejectsOutOfRangeRatings(t *testing.T) {
	cases := map[string]any{
		"zero":        float64(0),
		"six":         float64(6),
		"negative":    float64(-1),
		"non numeric": "abc",
		"missing":     nil,
		"boolean":     true,
	}

	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			payload := fullEvaluationPayload()
			payload["clarity"] = value

			_, err := ValidateEvaluation(payload)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "clarity")
		})
	}
}

func TestValidateEvaluationNamesTheFailingRatingField(t *testing.T) {
	payload := fullEvaluationPayload()
	payload["punctuality"] = float64(9)

	_, err := ValidateEvaluation(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "punctuality")
}

func TestValidateEvaluationLeadingIntegerParse(t *testing.T) {
	// 先頭一致パースの寛容さは仕様通り残す。"5abc" は 5 として受理する。
	payload := fullEvaluationPayload()
	payload["clarity"] = "5abc"
	payload["preparation"] = " 3"
	payload["interaction"] = float64(4.9)

	evaluation, err := ValidateEvaluation(payload)
	require.NoError(t, err)
	assert.Equal(t, 5, evaluation.Clarity)
	assert.Equal(t, 3, evaluation.Preparation)
	assert.Equal(t, 4, evaluation.Interaction)
}

func TestEvaluationRowLayout(t *testing.T) {
	evaluation := Evaluation{
		Center: "A", Week: "1", Day: "Mon", Period: "AM",
		Instructor1: "X", Instructor2: "",
		Clarity: 5, Preparation: 4, Interaction: 5, Punctuality: 4, Satisfaction: 5,
		Comment: "ok",
	}

	row := evaluation.Row("01/09/2025 10:30:00")

	require.Len(t, row, len(EvaluationHeader))
	assert.Equal(t, []string{
		"01/09/2025 10:30:00",
		"A", "1", "Mon", "AM",
		"X", "",
		"5", "4", "5", "4", "5",
		"ok",
	}, row)
}

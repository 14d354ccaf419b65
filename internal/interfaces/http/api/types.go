package api

import "github.com/classeval/collection-api/internal/collection/domain"

// submittedEvaluationResponse は受理した評価を型を揃えてエコーバックする DTO。
type submittedEvaluationResponse struct {
	Center       string `json:"center"`
	Week         string `json:"week"`
	Day          string `json:"day"`
	Period       string `json:"period"`
	Instructor1  string `json:"instructor1"`
	Instructor2  string `json:"instructor2"`
	Clarity      int    `json:"clarity"`
	Preparation  int    `json:"preparation"`
	Interaction  int    `json:"interaction"`
	Punctuality  int    `json:"punctuality"`
	Satisfaction int    `json:"satisfaction"`
	Comment      string `json:"comment"`
}

func buildSubmittedEvaluation(evaluation domain.Evaluation) submittedEvaluationResponse {
	return submittedEvaluationResponse{
		Center:       evaluation.Center,
		Week:         evaluation.Week,
		Day:          evaluation.Day,
		Period:       evaluation.Period,
		Instructor1:  evaluation.Instructor1,
		Instructor2:  evaluation.Instructor2,
		Clarity:      evaluation.Clarity,
		Preparation:  evaluation.Preparation,
		Interaction:  evaluation.Interaction,
		Punctuality:  evaluation.Punctuality,
		Satisfaction: evaluation.Satisfaction,
		Comment:      evaluation.Comment,
	}
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/classeval/collection-api/internal/collection/domain"
	"github.com/classeval/collection-api/internal/interfaces/http/common"
)

const (
	actionHealth            = "health"
	actionGetInstructors    = "getInstructors"
	actionSubmitEvaluation  = "submitEvaluation"
	actionUpdateInstructors = "updateInstructors"
)

// actionGetHandler は GET の action クエリを照会系アクションへ振り分ける。
// 未知・無指定の場合はエラーではなく案内用のエンベロープを返す。
func (h *Handler) actionGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		switch strings.TrimSpace(r.URL.Query().Get("action")) {
		case actionHealth:
			h.handleHealth(ctx, w)
		case actionGetInstructors:
			h.handleGetInstructors(ctx, w)
		default:
			h.writeSuccess(w, map[string]any{
				"message": "Evaluation collection API",
				"actions": []string{actionHealth, actionGetInstructors, actionSubmitEvaluation, actionUpdateInstructors},
			})
		}
	}
}

// actionPostHandler は JSON ボディの action フィールドで全アクションへ振り分ける。
// どの失敗もエンベロープへ変換し、HTTP ステータスは常に 200 を返す。
func (h *Handler) actionPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var payload map[string]any
		decoder := json.NewDecoder(io.LimitReader(r.Body, common.MaxActionRequestBody))
		if err := decoder.Decode(&payload); err != nil {
			// ボディ無しはプリフライト等の透過リクエストとして受理する。
			if errors.Is(err, io.EOF) {
				h.writeSuccess(w, map[string]any{"message": "Request received"})
				return
			}
			h.writeError(w, fmt.Sprintf("Invalid JSON format: %v", err))
			return
		}

		action, _ := payload["action"].(string)
		action = strings.TrimSpace(action)
		if action == "" {
			h.writeError(w, "Missing required field: action")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		switch action {
		case actionHealth:
			h.handleHealth(ctx, w)
		case actionGetInstructors:
			h.handleGetInstructors(ctx, w)
		case actionSubmitEvaluation:
			h.handleSubmitEvaluation(ctx, w, payload)
		case actionUpdateInstructors:
			h.handleUpdateInstructors(ctx, w, payload)
		default:
			h.writeError(w, fmt.Sprintf("Unknown action: %s", action))
		}
	}
}

func (h *Handler) handleHealth(ctx context.Context, w http.ResponseWriter) {
	stats, err := h.status.Snapshot(ctx)
	if err != nil {
		h.logger.Printf("ストアメタデータの取得に失敗: %v", err)
		h.writeError(w, err.Error())
		return
	}

	tables := make(map[string]int, len(stats))
	for _, entry := range stats {
		tables[entry.Table] = entry.Rows
	}
	h.writeSuccess(w, map[string]any{"tables": tables})
}

func (h *Handler) handleGetInstructors(ctx context.Context, w http.ResponseWriter) {
	nested, recordCount, err := h.schedules.Instructors(ctx)
	if err != nil {
		h.logger.Printf("講師スケジュールの読み出しに失敗: %v", err)
		h.writeError(w, err.Error())
		return
	}
	h.writeSuccess(w, map[string]any{
		"data":        nested,
		"recordCount": recordCount,
	})
}

func (h *Handler) handleSubmitEvaluation(ctx context.Context, w http.ResponseWriter, payload map[string]any) {
	evaluation, err := domain.ValidateEvaluation(payload)
	if err != nil {
		h.writeError(w, err.Error())
		return
	}

	rowNumber, err := h.evaluations.Submit(ctx, evaluation)
	if err != nil {
		h.logger.Printf("評価の保存に失敗: %v", err)
		h.writeError(w, err.Error())
		return
	}

	h.writeSuccess(w, map[string]any{
		"rowNumber":     rowNumber,
		"submittedData": buildSubmittedEvaluation(evaluation),
	})
}

func (h *Handler) handleUpdateInstructors(ctx context.Context, w http.ResponseWriter, payload map[string]any) {
	nested, err := domain.ParseNestedSchedule(payload["data"])
	if err != nil {
		h.writeError(w, err.Error())
		return
	}

	rowsUpdated, err := h.schedules.Replace(ctx, nested)
	if err != nil {
		h.logger.Printf("講師スケジュールの置換に失敗: %v", err)
		h.writeError(w, err.Error())
		return
	}

	h.writeSuccess(w, map[string]any{"rowsUpdated": rowsUpdated})
}

func (h *Handler) writeSuccess(w http.ResponseWriter, resultFields map[string]any) {
	common.WriteJSON(h.logger, w, http.StatusOK, common.SuccessEnvelope(time.Now().In(h.location), resultFields))
}

func (h *Handler) writeError(w http.ResponseWriter, message string) {
	common.WriteJSON(h.logger, w, http.StatusOK, common.ErrorEnvelope(time.Now().In(h.location), message))
}

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Response 是所有接口共用的响应信封。
// 业务失败同样返回 HTTP 200，由 success 字段区分，
// 客户端只需要处理一种响应形状。
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("响应序列化失败", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "服务器内部错误", http.StatusInternalServerError)
	}
}

// translateError 把校验错误翻译成中文提示；其余错误直接取错误文本。
// 校验器一次可能报多个错误，只取第一个，避免提示信息过长。
func (h *Handler) translateError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return validationErrors[0].Translate(h.translator)
	}
	return err.Error()
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: false,
		Message: msg,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	h.errorResponse(w, r, h.translateError(err))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("服务器内部错误", "method", r.Method, "path", r.URL.Path, "error", err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "服务器内部错误",
	})
}

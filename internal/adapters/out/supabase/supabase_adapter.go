package supabase

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/suchimauz/healthchat-backend/internal/config"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/out"
)

// SupabaseAdapter реализует GatewayPort поверх хостингового Supabase:
// аутентификация через GoTrue, данные через PostgREST
type SupabaseAdapter struct {
	client    *http.Client
	baseURL   string
	anonKey   string
	jwtSecret []byte
	logger    out.LoggerPort
}

func NewSupabaseAdapter(cfg *config.Config, logger out.LoggerPort) *SupabaseAdapter {
	return &SupabaseAdapter{
		client:    &http.Client{Timeout: 10 * time.Second},
		baseURL:   cfg.Supabase.URL,
		anonKey:   cfg.Supabase.AnonKey,
		jwtSecret: []byte(cfg.Supabase.JWTSecret),
		logger:    logger.WithModule("SupabaseAdapter"),
	}
}

// setHeaders проставляет ключ проекта и токен авторизации.
// Для анонимных запросов в качестве токена используется anon key
func (a *SupabaseAdapter) setHeaders(req *http.Request, accessToken string) {
	if accessToken == "" {
		accessToken = a.anonKey
	}

	req.Header.Set("apikey", a.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
}

func (a *SupabaseAdapter) do(req *http.Request, expectedStatus int) ([]byte, error) {
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != expectedStatus {
		return body, &httpStatusError{status: resp.StatusCode, body: body}
	}

	return body, nil
}

type httpStatusError struct {
	status int
	body   []byte
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.status)
}

// errorBody — формат тела ошибки GoTrue, поля различаются между версиями
type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error_code"`
	Message          string `json:"msg"`
	MessageAlt       string `json:"message"`
}

func (e *errorBody) text() string {
	for _, s := range []string{e.ErrorDescription, e.Message, e.MessageAlt, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func parseErrorBody(body []byte) *errorBody {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)
	return &parsed
}

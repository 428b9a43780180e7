package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"timeclass-backend/internal/model"
)

// ErrNoClaim is returned when a work-hour record has no claim yet.
var ErrNoClaim = errors.New("no claim for this record")

// APIError carries the HTTP status and the server-provided message so
// callers can distinguish auth failures (forced logout on 401) from
// everything else.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// API is the REST half of the sync layer. Every method takes a
// context and gives up as soon as it is cancelled, so an unmounted
// view never applies a late response.
type API struct {
	baseURL string
	httpc   *http.Client

	mu    sync.RWMutex
	token string
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken and Token are safe to call while requests are in flight,
// so a re-login can overlap a countdown refresh.
func (a *API) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

func (a *API) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *API) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := a.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Error == "" {
			payload.Error = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Login authenticates and stores the bearer token for all later calls.
func (a *API) Login(ctx context.Context, email, password string) (*model.User, error) {
	var out struct {
		Token string     `json:"token"`
		Data  model.User `json:"data"`
	}
	err := a.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	a.SetToken(out.Token)
	return &out.Data, nil
}

func (a *API) WorkHoursByTeacher(ctx context.Context, teacherID uint) ([]model.WorkHour, error) {
	var out struct {
		Data []model.WorkHour `json:"data"`
	}
	path := fmt.Sprintf("/work-hours/teacher/%d", teacherID)
	if err := a.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (a *API) UpdateStatus(ctx context.Context, id uint, status string) (*model.WorkHour, error) {
	var out struct {
		Data model.WorkHour `json:"data"`
	}
	path := fmt.Sprintf("/work-hours/status/%d", id)
	if err := a.do(ctx, http.MethodPut, path, map[string]string{"estado": status}, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

type ClaimDraft struct {
	TeacherID   uint   `json:"teacher_id"`
	WorkHourID  uint   `json:"work_hour_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateClaim files a dispute. The server flips the record to
// REJECTED in the same transaction and returns both sides.
func (a *API) CreateClaim(ctx context.Context, draft ClaimDraft) (*model.Claim, *model.WorkHour, error) {
	var out struct {
		Data     model.Claim    `json:"data"`
		WorkHour model.WorkHour `json:"work_hour"`
	}
	if err := a.do(ctx, http.MethodPost, "/claims", draft, &out); err != nil {
		return nil, nil, err
	}
	return &out.Data, &out.WorkHour, nil
}

func (a *API) ClaimByWorkHour(ctx context.Context, workHourID uint) (*model.Claim, error) {
	var out struct {
		Data model.Claim `json:"data"`
	}
	path := fmt.Sprintf("/claims/work-hour/%d", workHourID)
	err := a.do(ctx, http.MethodGet, path, nil, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrNoClaim
		}
		return nil, err
	}
	return &out.Data, nil
}

func (a *API) Comments(ctx context.Context, claimID uint) ([]model.Comment, error) {
	var out struct {
		Data []model.Comment `json:"data"`
	}
	path := fmt.Sprintf("/claims/comments/%d", claimID)
	if err := a.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (a *API) PostComment(ctx context.Context, claimID uint, commentUUID, content string) (*model.Comment, error) {
	var out struct {
		Data model.Comment `json:"data"`
	}
	err := a.do(ctx, http.MethodPost, "/claims/comments", map[string]interface{}{
		"claim_id": claimID,
		"uuid":     commentUUID,
		"content":  content,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (a *API) Settings(ctx context.Context) (*model.Setting, error) {
	var out struct {
		Data model.Setting `json:"data"`
	}
	if err := a.do(ctx, http.MethodGet, "/setting", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

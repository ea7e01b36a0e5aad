package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/vanshrane27/electrohub-showcase/internal/config"
)

const scope = "https://www.googleapis.com/auth/spreadsheets"

// APIError Sheets 接口返回的非 2xx 响应
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
}

// Permanent 重试也不会成功的错误：除 408/429 以外的 4xx（表未共享、id 错误、范围错误等）
func (e *APIError) Permanent() bool {
	if e.Status == http.StatusRequestTimeout || e.Status == http.StatusTooManyRequests {
		return false
	}
	return e.Status >= 400 && e.Status < 500
}

// IsPermanent 错误链中是否有不可重试的 APIError，或 token 交换被拒绝（密钥失效等）
func IsPermanent(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Permanent()
	}
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) && rErr.Response != nil {
		return (&APIError{Status: rErr.Response.StatusCode}).Permanent()
	}
	return false
}

func apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// LoadKey 读取服务账号 JSON 文件
func LoadKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read service account key")
	}
	return raw, nil
}

// Client Google Sheets v4 REST 客户端，access token 由 oauth2 自动获取和刷新
type Client struct {
	httpc         *http.Client
	spreadsheetID string
	baseURL       string
}

// NewClient 用服务账号 JSON 创建客户端；base 用于 token 交换和接口调用，为 nil 时使用默认客户端
func NewClient(cfg *config.SheetsConfig, keyJSON []byte, base *http.Client) (*Client, error) {
	jwtCfg, err := google.JWTConfigFromJSON(keyJSON, scope)
	if err != nil {
		return nil, errors.Wrap(err, "parse service account key")
	}
	if cfg.TokenURL != "" {
		jwtCfg.TokenURL = cfg.TokenURL
	}
	ctx := context.Background()
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	httpc := jwtCfg.Client(ctx)
	httpc.Timeout = 10 * time.Second
	return &Client{
		httpc:         httpc,
		spreadsheetID: cfg.SpreadsheetID,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpc.Do(req)
}

func (c *Client) rangeURL(sheet string) string {
	return fmt.Sprintf("%s/%s/values/%s", c.baseURL, c.spreadsheetID, url.PathEscape(sheet+"!A:Z"))
}

// Append 在表尾追加若干行
func (c *Client) Append(ctx context.Context, sheet string, rows [][]string) error {
	resp, err := c.do(ctx, http.MethodPost, c.rangeURL(sheet)+":append?valueInputOption=USER_ENTERED", map[string]any{"values": rows})
	if err != nil {
		return errors.Wrapf(err, "append to %s", sheet)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError("Failed to append to sheet", resp)
	}
	return nil
}

// Values 读取整张表，表不存在（API 返回 400）时视为空
func (c *Client) Values(ctx context.Context, sheet string) ([][]string, error) {
	resp, err := c.do(ctx, http.MethodGet, c.rangeURL(sheet), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", sheet)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusBadRequest {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError("Failed to get sheet data", resp)
	}
	var out struct {
		Values [][]string `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode values")
	}
	return out.Values, nil
}

// EnsureHeaders 表为空时先建表再写表头
func (c *Client) EnsureHeaders(ctx context.Context, sheet string, headers []string) error {
	rows, err := c.Values(ctx, sheet)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return nil
	}
	req := map[string]any{
		"requests": []any{
			map[string]any{"addSheet": map[string]any{"properties": map[string]any{"title": sheet}}},
		},
	}
	// 表可能已存在但为空，addSheet 失败不影响写表头
	if resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/%s:batchUpdate", c.baseURL, c.spreadsheetID), req); err == nil {
		resp.Body.Close()
	}
	return c.Append(ctx, sheet, [][]string{headers})
}

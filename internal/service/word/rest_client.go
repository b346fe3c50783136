package word

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kapu/subtitle-vocab-go/internal/constants"
	"github.com/kapu/subtitle-vocab-go/internal/domain"
	"github.com/kapu/subtitle-vocab-go/internal/util"
	"github.com/kapu/subtitle-vocab-go/pkg/errors"
	"go.uber.org/zap"
)

const defaultPageSize = 1000

// RESTClient reads and updates the word table through a PostgREST endpoint
// such as the one Supabase exposes at /rest/v1.
type RESTClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	table      string
	pageSize   int
	logger     *zap.Logger
}

type RESTConfig struct {
	BaseURL  string
	APIKey   string
	Table    string
	PageSize int
}

func NewRESTClient(httpClient *http.Client, cfg RESTConfig, logger *zap.Logger) *RESTClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	return &RESTClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		table:      cfg.Table,
		pageSize:   cfg.PageSize,
		logger:     logger,
	}
}

// ListAll fetches every row, following pages until an empty page is returned.
// The server may cap rows per response below pageSize, so the offset advances
// by what was actually received.
func (c *RESTClient) ListAll(ctx context.Context) ([]*domain.WordRecord, error) {
	records := make([]*domain.WordRecord, 0)

	for offset := 0; ; {
		params := url.Values{}
		params.Set("select", "*")
		params.Set("order", "id.asc")
		params.Set("limit", strconv.Itoa(c.pageSize))
		params.Set("offset", strconv.Itoa(offset))

		body, err := c.do(ctx, http.MethodGet, params, nil, "list", 0)
		if err != nil {
			return nil, err
		}

		var page []*domain.WordRecord
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, errors.NewStoreError("failed to decode words", "list", 0, 0, err)
		}

		if len(page) == 0 {
			break
		}
		records = append(records, page...)
		offset += len(page)
	}

	c.logger.Debug("Words loaded from REST", zap.Int("count", len(records)))
	return records, nil
}

// UpdateClassification PATCHes series_name, status and episode for one row.
// A PATCH that matches no visible row is reported as not found.
func (c *RESTClient) UpdateClassification(ctx context.Context, record *domain.WordRecord) error {
	payload, err := json.Marshal(record.Classification())
	if err != nil {
		return errors.NewStoreError("failed to encode word", "update", record.ID, 0, err)
	}

	params := url.Values{}
	params.Set("id", "eq."+strconv.FormatInt(record.ID, 10))
	params.Set("select", "id")

	body, err := c.do(ctx, http.MethodPatch, params, payload, "update", record.ID)
	if err != nil {
		return err
	}

	var touched []struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &touched); err != nil {
		return errors.NewStoreError("failed to decode update response", "update", record.ID, 0, err)
	}
	if len(touched) == 0 {
		return errors.NewStoreError(fmt.Sprintf("word %d not found", record.ID), "update", record.ID, http.StatusNotFound, nil)
	}
	return nil
}

func (c *RESTClient) do(ctx context.Context, method string, params url.Values, payload []byte, operation string, recordID int64) ([]byte, error) {
	reqURL := c.baseURL + constants.RESTConfig.PathPrefix + url.PathEscape(c.table) + "?" + params.Encode()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, errors.NewStoreError("failed to build request", operation, recordID, 0, err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewStoreError(fmt.Sprintf("%s request failed", operation), operation, recordID, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewStoreError("failed to read response", operation, recordID, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		storeErr := errors.NewStoreError(fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode), operation, recordID, resp.StatusCode, nil)
		storeErr.Context["body"] = util.TruncateString(string(body), constants.RESTConfig.MaxErrorBody)
		return nil, storeErr
	}

	return body, nil
}

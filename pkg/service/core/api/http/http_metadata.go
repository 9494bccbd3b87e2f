package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/navikt/nada-tablemetadata/pkg/errs"
	"github.com/navikt/nada-tablemetadata/pkg/service"
	"github.com/navikt/nada-tablemetadata/pkg/tablemetadata"
)

const (
	ConsumerIDHeader = "Nav-Consumer-Id"
	ConsumerID       = "nada-tablemetadata"

	maxErrorBodyBytes = 4096
)

var (
	_ service.TableMetadataAPI = &metadataAPI{}
	_ service.UserAPI          = &metadataAPI{}
)

type metadataAPI struct {
	client *http.Client
	apiURL string
	log    zerolog.Logger
}

type updateTableOwnerRequest struct {
	Key   string `json:"key"`
	Owner string `json:"owner"`
}

type userResponse struct {
	Msg  string              `json:"msg"`
	User *service.PeopleUser `json:"user"`
}

func (m *metadataAPI) GetTableData(ctx context.Context, params service.TableQueryParams) (*service.TableDataAPI, error) {
	const op errs.Op = "metadataAPI.GetTableData"

	data := &service.TableDataAPI{}

	err := m.request(ctx, http.MethodGet, "/table?"+tablemetadata.QueryParams(params), nil, data)
	if err != nil {
		return nil, errs.E(op, errs.Parameter("key"), err)
	}

	return data, nil
}

func (m *metadataAPI) GetRelatedDashboards(ctx context.Context, tableKey string) (*service.RelatedDashboards, error) {
	const op errs.Op = "metadataAPI.GetRelatedDashboards"

	dashboards := &service.RelatedDashboards{}

	err := m.request(ctx, http.MethodGet, fmt.Sprintf("/table/%s/dashboards", tablemetadata.RelatedDashboardSlug(tableKey)), nil, dashboards)
	if err != nil {
		return nil, errs.E(op, errs.Parameter("key"), err)
	}

	return dashboards, nil
}

func (m *metadataAPI) UpdateTableOwner(ctx context.Context, tableKey, owner string, method service.UpdateMethod) error {
	const op errs.Op = "metadataAPI.UpdateTableOwner"

	err := m.request(ctx, string(method), "/update_table_owner", &updateTableOwnerRequest{
		Key:   tableKey,
		Owner: owner,
	}, nil)
	if err != nil {
		return errs.E(op, err)
	}

	return nil
}

func (m *metadataAPI) GetUser(ctx context.Context, userID string) (*service.PeopleUser, error) {
	const op errs.Op = "metadataAPI.GetUser"

	res := &userResponse{}

	err := m.request(ctx, http.MethodGet, "/user?"+url.Values{"user_id": {userID}}.Encode(), nil, res)
	if err != nil {
		return nil, errs.E(op, errs.Parameter("user_id"), err)
	}

	if res.User == nil {
		return nil, errs.E(errs.NotExist, op, errs.Parameter("user_id"), fmt.Errorf("user %s not found", userID))
	}

	return res.User, nil
}

func (m *metadataAPI) request(ctx context.Context, method, path string, body, into any) error {
	const op errs.Op = "metadataAPI.request"

	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errs.E(errs.Internal, op, err, errs.Parameter("request_body"))
		}

		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.apiURL+path, buf)
	if err != nil {
		return errs.E(errs.Internal, op, fmt.Errorf("creating request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(ConsumerIDHeader, ConsumerID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := m.client.Do(req)
	if err != nil {
		return errs.E(errs.IO, op, fmt.Errorf("sending request: %w", err))
	}
	defer res.Body.Close()

	if res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))

		m.log.Error().Fields(map[string]any{
			"error_message": string(msg),
			"method":        method,
			"path":          path,
			"status":        res.StatusCode,
		}).Msg("metadata_request")

		kind := errs.IO
		if res.StatusCode == http.StatusNotFound {
			kind = errs.NotExist
		}

		return errs.E(kind, op, fmt.Errorf("%s %s: non 2xx status code, got: %d", method, path, res.StatusCode))
	}

	if into == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(into); err != nil {
		return errs.E(errs.IO, op, err, errs.Parameter("response_body"))
	}

	return nil
}

func NewMetadataAPI(apiURL string, client *http.Client, log zerolog.Logger) *metadataAPI {
	return &metadataAPI{
		client: client,
		apiURL: apiURL,
		log:    log,
	}
}

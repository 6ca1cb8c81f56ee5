package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Khan/genqlient/graphql"
	"github.com/bubblemanga/mangamirror/senkuro"
	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// persistedClient is a graphql.Client which only sends persisted-query
// references. The upstream doesn't accept query documents, so the generated
// operation text is used for typing only.
type persistedClient struct {
	url     string
	client  *http.Client
	metrics *gqlMetrics
}

var _ graphql.Client = (*persistedClient)(nil)

type persistedRequest struct {
	OperationName string              `json:"operationName"`
	Variables     any                 `json:"variables"`
	Extensions    persistedExtensions `json:"extensions"`
}

type persistedExtensions struct {
	PersistedQuery persistedQueryRef `json:"persistedQuery"`
}

type persistedQueryRef struct {
	Version    int    `json:"version"`
	Sha256Hash string `json:"sha256Hash"`
}

// NewSenkuroGQL returns a GraphQL client for the upstream at host. Requests
// are spaced at least every apart.
func NewSenkuroGQL(host string, every time.Duration, reg *prometheus.Registry) graphql.Client {
	upstream := NewUpstream(host, every)
	upstream.Transport = &HeaderTransport{
		Key:          "User-Agent",
		Value:        "mangamirror/1.0",
		RoundTripper: upstream.Transport,
	}
	return newPersistedClient("https://"+host+"/graphql", upstream, reg)
}

func newPersistedClient(url string, client *http.Client, reg *prometheus.Registry) *persistedClient {
	return &persistedClient{
		url:     url,
		client:  client,
		metrics: newGQLMetrics(reg),
	}
}

// MakeRequest swaps the query document for its persisted reference and
// decodes the response into resp.
func (c *persistedClient) MakeRequest(ctx context.Context, req *graphql.Request, resp *graphql.Response) error {
	pq, ok := senkuro.PersistedQueries[req.OpName]
	if !ok {
		return fmt.Errorf("no persisted query registered for %q", req.OpName)
	}

	body, err := sonic.ConfigStd.Marshal(persistedRequest{
		OperationName: pq.Name,
		Variables:     req.Variables,
		Extensions: persistedExtensions{
			PersistedQuery: persistedQueryRef{Version: 1, Sha256Hash: pq.Hash},
		},
	})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", pq.Name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	c.metrics.queriesSentInc()

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		c.metrics.errorsInc()
		return fmt.Errorf("doing %s: %w", pq.Name, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode != http.StatusOK {
		c.metrics.errorsInc()
		return statusErr(httpResp.StatusCode)
	}

	// resp.Data holds a pointer to the generated response type, which
	// encoding/json decodes through.
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		c.metrics.errorsInc()
		return fmt.Errorf("decoding %s: %w", pq.Name, err)
	}

	if len(resp.Errors) > 0 {
		c.metrics.errorsInc()
		return gqlerror.List(resp.Errors)
	}

	return nil
}

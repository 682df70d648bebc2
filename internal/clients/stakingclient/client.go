package stakingclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/spritzen-labs/simply-staking/internal/clients/client"
	"github.com/spritzen-labs/simply-staking/internal/config"
	"github.com/spritzen-labs/simply-staking/internal/types"
)

var _ StakingInterface = (*Client)(nil)

type Client struct {
	httpClient *http.Client
	cfg        *config.ClientConfig
}

func (c *Client) GetBaseURL() string {
	return c.cfg.BaseURL
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func NewClient(cfg *config.ClientConfig) *Client {
	if cfg == nil {
		return nil
	}

	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

type EventsQuery struct {
	Account string
	Source  string
	Type    string
	Limit   int64
}

type empty struct{}

func (c *Client) Token(ctx context.Context, symbol string) (*types.TokenResponse, error) {
	return get[types.TokenResponse](ctx, c, tokenPath(symbol), "/v1/tokens/{token}")
}

func (c *Client) Balance(ctx context.Context, symbol, account string) (*types.BalanceResponse, error) {
	path := tokenPath(symbol) + "/balances/" + url.PathEscape(account)
	return get[types.BalanceResponse](ctx, c, path, "/v1/tokens/{token}/balances/{account}")
}

func (c *Client) Allowance(ctx context.Context, symbol, owner, spender string) (*types.AllowanceResponse, error) {
	path := tokenPath(symbol) + "/allowances/" + url.PathEscape(owner) + "/" + url.PathEscape(spender)
	return get[types.AllowanceResponse](ctx, c, path, "/v1/tokens/{token}/allowances/{owner}/{spender}")
}

func (c *Client) Transfer(ctx context.Context, caller, symbol string, req types.TransferRequest) error {
	_, err := send[types.TransferRequest, empty](ctx, c, http.MethodPost, caller,
		tokenPath(symbol)+"/transfer", "/v1/tokens/{token}/transfer", &req)
	return err
}

func (c *Client) Approve(ctx context.Context, caller, symbol string, req types.ApproveRequest) error {
	_, err := send[types.ApproveRequest, empty](ctx, c, http.MethodPost, caller,
		tokenPath(symbol)+"/approve", "/v1/tokens/{token}/approve", &req)
	return err
}

func (c *Client) TransferFrom(ctx context.Context, caller, symbol string, req types.TransferFromRequest) error {
	_, err := send[types.TransferFromRequest, empty](ctx, c, http.MethodPost, caller,
		tokenPath(symbol)+"/transfer-from", "/v1/tokens/{token}/transfer-from", &req)
	return err
}

func (c *Client) Mint(ctx context.Context, caller, symbol string, req types.MintRequest) error {
	_, err := send[types.MintRequest, empty](ctx, c, http.MethodPost, caller,
		tokenPath(symbol)+"/mint", "/v1/tokens/{token}/mint", &req)
	return err
}

func (c *Client) Burn(ctx context.Context, caller, symbol string, req types.BurnRequest) error {
	_, err := send[types.BurnRequest, empty](ctx, c, http.MethodPost, caller,
		tokenPath(symbol)+"/burn", "/v1/tokens/{token}/burn", &req)
	return err
}

func (c *Client) Params(ctx context.Context) (*types.StakingParamsResponse, error) {
	return get[types.StakingParamsResponse](ctx, c, "/v1/staking/params", "/v1/staking/params")
}

func (c *Client) SetParams(
	ctx context.Context, caller string, req types.StakingParamsRequest,
) (*types.StakingParamsResponse, error) {
	return send[types.StakingParamsRequest, types.StakingParamsResponse](ctx, c, http.MethodPut, caller,
		"/v1/staking/params", "/v1/staking/params", &req)
}

func (c *Client) Stake(ctx context.Context, caller, amount string) (*types.PositionResponse, error) {
	return send[types.AmountRequest, types.PositionResponse](ctx, c, http.MethodPost, caller,
		"/v1/staking/stake", "/v1/staking/stake", &types.AmountRequest{Amount: amount})
}

func (c *Client) Unstake(ctx context.Context, caller, amount string) (*types.PositionResponse, error) {
	return send[types.AmountRequest, types.PositionResponse](ctx, c, http.MethodPost, caller,
		"/v1/staking/unstake", "/v1/staking/unstake", &types.AmountRequest{Amount: amount})
}

func (c *Client) Claim(ctx context.Context, caller string) (*types.ClaimResponse, error) {
	return send[empty, types.ClaimResponse](ctx, c, http.MethodPost, caller,
		"/v1/staking/claim", "/v1/staking/claim", nil)
}

func (c *Client) Position(ctx context.Context, account string) (*types.PositionResponse, error) {
	opts := &client.HttpClientOptions{
		Path:         "/v1/staking/position",
		TemplatePath: "/v1/staking/position",
		Headers:      map[string]string{c.cfg.CallerHeader: account},
	}
	return clientCallWithRetry(ctx, c.cfg, func() (*types.PositionResponse, error) {
		return unwrap[types.PositionResponse](client.SendRequest[empty, types.PositionResponse](ctx, c, http.MethodGet, opts, nil))
	})
}

func (c *Client) Events(ctx context.Context, query EventsQuery) ([]types.Event, error) {
	params := url.Values{}
	if query.Account != "" {
		params.Set("account", query.Account)
	}
	if query.Source != "" {
		params.Set("source", query.Source)
	}
	if query.Type != "" {
		params.Set("type", query.Type)
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.FormatInt(query.Limit, 10))
	}

	path := "/v1/events"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	evs, err := get[[]types.Event](ctx, c, path, "/v1/events")
	if err != nil {
		return nil, err
	}
	return *evs, nil
}

func tokenPath(symbol string) string {
	return "/v1/tokens/" + url.PathEscape(symbol)
}

// get sends an idempotent request, retried on server errors.
func get[R any](ctx context.Context, c *Client, path, templatePath string) (*R, error) {
	opts := &client.HttpClientOptions{
		Path:         path,
		TemplatePath: templatePath,
	}
	return clientCallWithRetry(ctx, c.cfg, func() (*R, error) {
		return unwrap[R](client.SendRequest[empty, R](ctx, c, http.MethodGet, opts, nil))
	})
}

// send issues a state changing call on behalf of caller. It is never retried:
// a server error may come after the change was applied.
func send[I any, R any](
	ctx context.Context, c *Client, method, caller, path, templatePath string, input *I,
) (*R, error) {
	opts := &client.HttpClientOptions{
		Path:         path,
		TemplatePath: templatePath,
		Headers:      map[string]string{c.cfg.CallerHeader: caller},
	}
	return unwrap[R](client.SendRequest[I, R](ctx, c, method, opts, input))
}

// unwrap keeps a nil *types.Error from turning into a non-nil error.
func unwrap[R any](result *R, err *types.Error) (*R, error) {
	if err != nil {
		return nil, err
	}
	return result, nil
}

func clientCallWithRetry[T any](
	ctx context.Context,
	cfg *config.ClientConfig,
	call retry.RetryableFuncWithData[T],
) (T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			apiErr, ok := err.(*types.Error)
			return ok && (apiErr.StatusCode >= http.StatusInternalServerError || apiErr.StatusCode == http.StatusRequestTimeout)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("request failed, retrying with exponential backoff")
		}))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("request failed: %w", err)
	}
	return result, nil
}

package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"roomtrooper/internal/domain"
)

const querySiteByID = `
    query getSiteById($id: String!) {
        site(id: $id) {
            id
            name
        }
    }
`

const querySiteByName = `
    query getSiteByName($tenantId: String!, $params: SiteConnectionParams) {
        siteData(tenantId: $tenantId, params: $params) {
            edges {
                node {
                    id
                    name
                }
            }
        }
    }
`

const mutationUpsertSite = `
    mutation upsertSite($fields: UpsertSiteRequest!) {
        upsertSite(fields: $fields) {
            id
            name
        }
    }
`

const mutationUpsertRoom = `
    mutation updateRoomData($fields: UpsertRoomRequest!) {
        upsertRoom(fields: $fields) {
            name
            id
            capacity
            size
            updatedAt
            floor
            site {
                id
                name
            }
        }
    }
`

const queryRoomData = `
    query getRoomData($params: RoomConnectionParams) {
        tenants {
            roomData(params: $params) {
                pageInfo {
                    hasNextPage
                    endCursor
                }
                edges {
                    node {
                        name
                        id
                        capacity
                        size
                        floor
                        site {
                            name
                            id
                        }
                    }
                }
            }
        }
    }
`

const queryClientCredential = `
    query ClientCredential($clientCredentialId: String!) {
        clientCredential(id: $clientCredentialId) {
            name
            accessor {
                grants {
                    roles {
                        name
                    }
                }
            }
        }
    }
`

// exportPageSize limits one page of the room export query.
const exportPageSize = 50

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Config carries the endpoints and credentials the client needs.
type Config struct {
	GraphQLURL   string
	TokenURL     string
	TenantID     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Identity describes the API credential the client authenticated as.
type Identity struct {
	Name string
	Role string
}

// Client talks to the directory's GraphQL API. One client serves a whole
// process; the bearer token is fetched lazily and cached until exit.
type Client struct {
	http     *resty.Client
	tokenURL string
	tenantID string
	clientID string
	secret   string
	logger   *zap.Logger

	mu    sync.Mutex
	token string
}

// NewClient builds a directory client from cfg.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	http := resty.New().
		SetBaseURL(cfg.GraphQLURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:     http,
		tokenURL: cfg.TokenURL,
		tenantID: cfg.TenantID,
		clientID: cfg.ClientID,
		secret:   cfg.ClientSecret,
		logger:   logger,
	}
}

// TenantID exposes the tenant this client is scoped to.
func (c *Client) TenantID() string { return c.tenantID }

// bearer returns the cached access token, fetching one on first use.
func (c *Client) bearer(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}

	var tok tokenResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"client_id":     c.clientID,
			"client_secret": c.secret,
			"grant_type":    "client_credentials",
		}).
		SetResult(&tok).
		Post(c.tokenURL)
	if err != nil {
		return "", &Error{Kind: KindTransport, Op: "token", Err: err}
	}
	if resp.IsError() {
		c.logger.Error("token request failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return "", &Error{Kind: KindTransport, Op: "token", Status: resp.StatusCode()}
	}
	if tok.AccessToken == "" {
		return "", &Error{Kind: KindRemote, Op: "token", Messages: []string{"response carried no access_token"}}
	}
	c.token = tok.AccessToken
	return c.token, nil
}

// execute posts one GraphQL operation and unmarshals data into out.
// Application-level errors come back as *Error with KindRemote; anything
// below that layer is KindTransport.
func (c *Client) execute(ctx context.Context, op, query string, variables map[string]any, out any) error {
	token, err := c.bearer(ctx)
	if err != nil {
		return err
	}

	var body graphQLResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(graphQLRequest{Query: query, Variables: variables}).
		SetResult(&body).
		SetError(&body).
		Post("")
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	if resp.IsError() {
		if len(body.Errors) == 0 {
			c.logger.Debug("unparseable error response", zap.String("op", op), zap.String("body", resp.String()))
			return &Error{Kind: KindTransport, Op: op, Status: resp.StatusCode()}
		}
		return &Error{Kind: KindRemote, Op: op, Status: resp.StatusCode(), Messages: messagesOf(body.Errors)}
	}
	if len(body.Errors) > 0 {
		return &Error{Kind: KindRemote, Op: op, Messages: messagesOf(body.Errors)}
	}
	if out != nil && len(body.Data) > 0 {
		if err := json.Unmarshal(body.Data, out); err != nil {
			return &Error{Kind: KindTransport, Op: op, Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return nil
}

func messagesOf(errs []graphQLError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Message)
	}
	return out
}

// LookupSiteByID fetches the current record for a site id. A missing site is
// reported as KindNotFound, whether the directory answered with a classified
// error payload or a well-formed response carrying a null site.
func (c *Client) LookupSiteByID(ctx context.Context, id string) (*domain.SiteRecord, error) {
	var out struct {
		Site *domain.SiteRecord `json:"site"`
	}
	err := c.execute(ctx, "getSiteById", querySiteByID, map[string]any{"id": id}, &out)
	if err != nil {
		var derr *Error
		if errors.As(err, &derr) && derr.Kind == KindRemote && ClassifyMessages(derr.Messages) == KindNotFound {
			c.logger.Warn("site id failed its lookup with a known not-found payload",
				zap.String("site_id", id),
				zap.Strings("messages", derr.Messages),
			)
			derr.Kind = KindNotFound
		}
		return nil, err
	}
	if out.Site == nil {
		return nil, &Error{
			Kind:     KindNotFound,
			Op:       "getSiteById",
			Messages: []string{fmt.Sprintf("site %q not found", id)},
		}
	}
	if out.Site.Name == "" {
		return nil, &Error{
			Kind:     KindRemote,
			Op:       "getSiteById",
			Messages: []string{fmt.Sprintf("site %q returned without a name", id)},
		}
	}
	return out.Site, nil
}

// LookupSiteByName finds a site by exact name. A missing site is not an
// error here: the return is (nil, nil).
func (c *Client) LookupSiteByName(ctx context.Context, name string) (*domain.SiteRecord, error) {
	variables := map[string]any{
		"tenantId": c.tenantID,
		"params": map[string]any{
			"filter": []map[string]any{
				{"field": "NAME", "comparisonOperator": "EQUALS", "value": name},
			},
			"limit": 1,
		},
	}
	var out struct {
		SiteData struct {
			Edges []struct {
				Node domain.SiteRecord `json:"node"`
			} `json:"edges"`
		} `json:"siteData"`
	}
	if err := c.execute(ctx, "getSiteByName", querySiteByName, variables, &out); err != nil {
		return nil, err
	}
	if len(out.SiteData.Edges) == 0 {
		return nil, nil
	}
	node := out.SiteData.Edges[0].Node
	return &node, nil
}

// UpsertSite creates or renames a site and returns the record the directory
// settled on.
func (c *Client) UpsertSite(ctx context.Context, upsert domain.SiteUpsert) (*domain.SiteRecord, error) {
	fields := map[string]any{
		"tenantId": c.tenantID,
		"name":     upsert.Name,
	}
	if upsert.ID != nil {
		fields["id"] = *upsert.ID
	}
	var out struct {
		UpsertSite *domain.SiteRecord `json:"upsertSite"`
	}
	if err := c.execute(ctx, "upsertSite", mutationUpsertSite, map[string]any{"fields": fields}, &out); err != nil {
		return nil, err
	}
	if out.UpsertSite == nil {
		return nil, &Error{Kind: KindRemote, Op: "upsertSite", Messages: []string{"upsert returned no site"}}
	}
	return out.UpsertSite, nil
}

// UpsertRoom applies one room mutation. A 200 response carrying a GraphQL
// errors array is an application-level rejection, not a transport failure.
func (c *Client) UpsertRoom(ctx context.Context, payload domain.RoomPayload) (*domain.RoomRecord, error) {
	var out struct {
		UpsertRoom *domain.RoomRecord `json:"upsertRoom"`
	}
	if err := c.execute(ctx, "upsertRoom", mutationUpsertRoom, map[string]any{"fields": payload}, &out); err != nil {
		return nil, err
	}
	return out.UpsertRoom, nil
}

// ListRooms walks the cursor-paginated room export for the tenant, sorted by
// room name, and returns every record.
func (c *Client) ListRooms(ctx context.Context) ([]domain.RoomRecord, error) {
	var all []domain.RoomRecord
	var cursor *string

	for {
		params := map[string]any{
			"cursor": cursor,
			"paging": "NEXT_PAGE",
			"limit":  exportPageSize,
			"sort":   []map[string]any{{"field": "ROOM_NAME", "direction": "ASC"}},
		}
		var out struct {
			Tenants []struct {
				RoomData struct {
					PageInfo struct {
						HasNextPage bool    `json:"hasNextPage"`
						EndCursor   *string `json:"endCursor"`
					} `json:"pageInfo"`
					Edges []struct {
						Node domain.RoomRecord `json:"node"`
					} `json:"edges"`
				} `json:"roomData"`
			} `json:"tenants"`
		}
		if err := c.execute(ctx, "getRoomData", queryRoomData, map[string]any{"params": params}, &out); err != nil {
			return all, err
		}
		if len(out.Tenants) == 0 {
			return all, &Error{Kind: KindRemote, Op: "getRoomData", Messages: []string{"no tenants in response"}}
		}

		page := out.Tenants[0].RoomData
		for _, edge := range page.Edges {
			all = append(all, edge.Node)
		}
		c.logger.Debug("room export page",
			zap.Int("rooms", len(page.Edges)),
			zap.Bool("has_next", page.PageInfo.HasNextPage),
		)

		if !page.PageInfo.HasNextPage || page.PageInfo.EndCursor == nil {
			return all, nil
		}
		cursor = page.PageInfo.EndCursor
	}
}

// ClientDetails looks up the display name and first granted role of the
// credential this client runs as.
func (c *Client) ClientDetails(ctx context.Context) (Identity, error) {
	var out struct {
		ClientCredential *struct {
			Name     string `json:"name"`
			Accessor struct {
				Grants []struct {
					Roles []struct {
						Name string `json:"name"`
					} `json:"roles"`
				} `json:"grants"`
			} `json:"accessor"`
		} `json:"clientCredential"`
	}
	err := c.execute(ctx, "clientCredential", queryClientCredential,
		map[string]any{"clientCredentialId": c.clientID}, &out)
	if err != nil {
		return Identity{}, err
	}
	if out.ClientCredential == nil {
		return Identity{}, &Error{Kind: KindRemote, Op: "clientCredential", Messages: []string{"credential not found"}}
	}

	id := Identity{Name: out.ClientCredential.Name}
	for _, grant := range out.ClientCredential.Accessor.Grants {
		for _, role := range grant.Roles {
			if role.Name != "" {
				id.Role = role.Name
				break
			}
		}
		if id.Role != "" {
			break
		}
	}
	return id, nil
}

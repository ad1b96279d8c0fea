package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"character-browser/internal/config"
	"character-browser/internal/domain"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// charactersQuery asks for one filtered page of characters.
const charactersQuery = `query GetCharacters($page: Int, $status: String, $species: String) {
  characters(page: $page, filter: { status: $status, species: $species }) {
    info {
      next
    }
    results {
      id
      name
      status
      species
      gender
      origin {
        name
      }
    }
  }
}`

// ErrMalformedResponse is returned when a successful HTTP response does not
// carry a decodable characters payload.
var ErrMalformedResponse = errors.New("malformed characters response")

// ResponseError reports the errors array of a GraphQL response.
type ResponseError struct {
	Messages []string
}

func (e *ResponseError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

// StatusError reports a non-2xx HTTP status from the endpoint.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

type request struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
}

type response struct {
	Data *struct {
		Characters *struct {
			Info struct {
				Next *int `json:"next"`
			} `json:"info"`
			Results []domain.Character `json:"results"`
		} `json:"characters"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client is a client for the characters GraphQL API.
type Client struct {
	endpoint string
	client   *resty.Client
	limiter  *rate.Limiter
}

// NewClient creates and configures a new Client.
func NewClient(cfg config.APIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
		limiter: rate.NewLimiter(
			rate.Limit(cfg.RequestsPerSecond),
			cfg.BurstLimit,
		),
	}
}

// FetchCharacters fetches a single page of characters matching params.
// It respects the rate limit and never retries on its own.
func (c *Client) FetchCharacters(ctx context.Context, params domain.QueryParams) (*domain.CharacterPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body := request{
		OperationName: "GetCharacters",
		Query:         charactersQuery,
		Variables: map[string]any{
			"page":    params.Page,
			"status":  params.Status,
			"species": params.Species,
		},
	}

	log.Debug("fetching characters", "page", params.Page, "status", params.Status, "species", params.Species)
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		// GraphQL servers often explain a 4xx in the errors array.
		if gqlErr := decodeErrors(resp.Body()); gqlErr != nil {
			return nil, gqlErr
		}
		return nil, &StatusError{Code: resp.StatusCode()}
	}

	return decodePage(resp.Body())
}

func decodePage(body []byte) (*domain.CharacterPage, error) {
	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(out.Errors) > 0 {
		return nil, newResponseError(out)
	}
	if out.Data == nil || out.Data.Characters == nil {
		return nil, fmt.Errorf("%w: missing data.characters", ErrMalformedResponse)
	}

	return &domain.CharacterPage{
		HasMore: out.Data.Characters.Info.Next != nil,
		Results: out.Data.Characters.Results,
	}, nil
}

func decodeErrors(body []byte) error {
	var out response
	if err := json.Unmarshal(body, &out); err != nil || len(out.Errors) == 0 {
		return nil
	}
	return newResponseError(out)
}

func newResponseError(out response) *ResponseError {
	msgs := make([]string, 0, len(out.Errors))
	for _, e := range out.Errors {
		msgs = append(msgs, e.Message)
	}
	return &ResponseError{Messages: msgs}
}

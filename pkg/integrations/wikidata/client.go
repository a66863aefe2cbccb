package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/lahtis/glfm/pkg/httputil"
	"github.com/lahtis/glfm/pkg/integrations"
)

// DefaultEndpoint is the public Wikidata action API.
const DefaultEndpoint = "https://www.wikidata.org/w/api.php"

// ParentProperties are the properties whose values count as genealogy parents:
// subclass of (P279) and part of (P361).
var ParentProperties = []string{"P279", "P361"}

// SearchVariants are the label forms tried, in order, when searching for
// the entity of a family name.
var SearchVariants = []string{
	"%s",
	"%s language",
	"%s languages",
	"%s (language)",
	"%s (languages)",
	"%s family",
	"%s language family",
}

// labelBatch is the maximum number of ids per wbgetentities call.
const labelBatch = 50

// Client provides access to the Wikidata action API.
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	endpoint   string
	properties []string
}

// NewClient creates a Wikidata client. Consecutive calls are spaced at least
// delay apart. Empty endpoint and userAgent select the defaults.
func NewClient(endpoint, userAgent string, delay time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if userAgent == "" {
		userAgent = integrations.DefaultUserAgent
	}
	return &Client{
		Client: integrations.NewClient(httputil.NewThrottle(delay), map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		}),
		endpoint:   endpoint,
		properties: ParentProperties,
	}
}

// Parents returns the ids of the entities qid is a subclass or part of,
// sorted and de-duplicated.
func (c *Client) Parents(ctx context.Context, qid string) ([]string, error) {
	q := url.Values{
		"action": {"wbgetclaims"},
		"entity": {qid},
		"format": {"json"},
	}
	var resp claimsResponse
	if err := c.Get(ctx, c.endpoint+"?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("claims for %s: %w", qid, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("claims for %s: %w: %s", qid, integrations.ErrNotFound, resp.Error.Info)
	}

	seen := make(map[string]bool)
	parents := []string{}
	for _, prop := range c.properties {
		for _, claim := range resp.Claims[prop] {
			id := claim.Mainsnak.Datavalue.entityID()
			if id != "" && id != qid && !seen[id] {
				seen[id] = true
				parents = append(parents, id)
			}
		}
	}
	sort.Strings(parents)
	return parents, nil
}

// Search returns the id of the first entity matching label, trying each of
// SearchVariants in order. found is false when no variant matches.
func (c *Client) Search(ctx context.Context, label string) (id string, found bool, err error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", false, nil
	}
	for _, variant := range SearchVariants {
		id, err := c.searchOne(ctx, fmt.Sprintf(variant, label))
		if err != nil {
			return "", false, err
		}
		if id != "" {
			return id, true, nil
		}
	}
	return "", false, nil
}

func (c *Client) searchOne(ctx context.Context, term string) (string, error) {
	q := url.Values{
		"action":   {"wbsearchentities"},
		"search":   {term},
		"language": {"en"},
		"type":     {"item"},
		"limit":    {"1"},
		"format":   {"json"},
	}
	var resp searchResponse
	if err := c.Get(ctx, c.endpoint+"?"+q.Encode(), &resp); err != nil {
		return "", fmt.Errorf("search %q: %w", term, err)
	}
	if len(resp.Search) == 0 {
		return "", nil
	}
	return resp.Search[0].ID, nil
}

// Labels returns the English labels of ids. Ids without an English label
// are absent from the result.
func (c *Client) Labels(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for start := 0; start < len(ids); start += labelBatch {
		end := min(start+labelBatch, len(ids))
		q := url.Values{
			"action":    {"wbgetentities"},
			"ids":       {strings.Join(ids[start:end], "|")},
			"props":     {"labels"},
			"languages": {"en"},
			"format":    {"json"},
		}
		var resp entitiesResponse
		if err := c.Get(ctx, c.endpoint+"?"+q.Encode(), &resp); err != nil {
			return out, fmt.Errorf("labels: %w", err)
		}
		for id, e := range resp.Entities {
			if l, ok := e.Labels["en"]; ok && l.Value != "" {
				out[id] = l.Value
			}
		}
	}
	return out, nil
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type claimsResponse struct {
	Claims map[string][]struct {
		Mainsnak struct {
			Datavalue datavalue `json:"datavalue"`
		} `json:"mainsnak"`
	} `json:"claims"`
	Error *apiError `json:"error"`
}

// datavalue holds a snak value, which is an entity reference for item
// properties and a string or object of another shape for everything else.
type datavalue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (d datavalue) entityID() string {
	if d.Type != "wikibase-entityid" {
		return ""
	}
	var v struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(d.Value, &v); err != nil {
		return ""
	}
	return v.ID
}

type searchResponse struct {
	Search []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	} `json:"search"`
}

type entitiesResponse struct {
	Entities map[string]struct {
		Labels map[string]struct {
			Value string `json:"value"`
		} `json:"labels"`
	} `json:"entities"`
}

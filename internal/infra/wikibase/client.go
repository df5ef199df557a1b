// Package wikibase talks to a Wikibase instance through its api.php:
// clientlogin for the session, wbeditentity for entity creation, patching
// and clearing.
package wikibase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/domain"
	"github.com/OPEN-NEXT/OKH-LOSH-Ontology-RDF2WB/internal/ports"
)

const defaultTimeout = 30 * time.Second

// loginReturnURL is required by clientlogin but never visited.
const loginReturnURL = "http://127.0.0.1:5000/"

type Client struct {
	apiURL string
	http   *http.Client
	log    *slog.Logger

	csrf string
}

type Option func(*Client)

// WithHTTPClient overrides the underlying client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(apiURL string, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		apiURL: apiURL,
		log:    log,
		http:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	// The MediaWiki session lives in cookies.
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err == nil {
			c.http.Jar = jar
		}
	}
	return c
}

var _ ports.EntityWriter = (*Client)(nil)

// Login fetches a login token and runs the clientlogin flow. Anything but
// status PASS is an authentication failure.
func (c *Client) Login(ctx context.Context, user, password string) error {
	token, err := c.token(ctx, "login", "$.query.tokens.logintoken")
	if err != nil {
		return err
	}

	doc, err := c.call(ctx, url.Values{
		"action":         {"clientlogin"},
		"username":       {user},
		"password":       {password},
		"loginreturnurl": {loginReturnURL},
		"logintoken":     {token},
		"format":         {"json"},
	})
	if err != nil {
		return err
	}

	status, _ := field(doc, "$.clientlogin.status")
	if status != "PASS" {
		code, _ := field(doc, "$.clientlogin.messagecode")
		return &domain.OpError{
			Op:   "wikibase.login",
			Kind: domain.KindAuth,
			Path: c.apiURL,
			Err:  fmt.Errorf("status %q (%s)", status, code),
		}
	}

	c.log.Info("wikibase.login", "user", user, "api", c.apiURL)
	return nil
}

// CreateEntity creates a new item or property from the entity's labels,
// descriptions and datatype. When the instance reports that an entity with
// the same label already exists, that entity is cleared and rewritten, and
// its ID reused.
func (c *Client) CreateEntity(ctx context.Context, e domain.TargetEntity) (domain.EntityID, error) {
	return c.edit(ctx, "wikibase.create", entityData(e), e.Kind, "")
}

// SubmitClaims attaches the claims to an existing entity in one
// wbeditentity patch.
func (c *Client) SubmitClaims(ctx context.Context, id domain.EntityID, claims []domain.Claim) error {
	if len(claims) == 0 {
		return nil
	}

	grouped := map[string]any{}
	for _, cl := range claims {
		st, err := statement(cl)
		if err != nil {
			return &domain.OpError{Op: "wikibase.claims", Kind: domain.KindConsistency, Path: string(id), Err: err}
		}
		key := string(cl.Property)
		list, _ := grouped[key].([]any)
		grouped[key] = append(list, st)
	}

	_, err := c.edit(ctx, "wikibase.claims", map[string]any{"claims": grouped}, id.Kind(), id)
	return err
}

// Clear removes all data from an entity.
func (c *Client) Clear(ctx context.Context, id domain.EntityID) error {
	token, err := c.csrfToken(ctx)
	if err != nil {
		return err
	}

	doc, err := c.call(ctx, url.Values{
		"action": {"wbeditentity"},
		"id":     {string(id)},
		"clear":  {"true"},
		"data":   {"{}"},
		"token":  {token},
		"format": {"json"},
	})
	if err != nil {
		return err
	}
	if code, info, found := apiError(doc); found {
		return &domain.OpError{
			Op:   "wikibase.clear",
			Kind: domain.KindRemote,
			Path: string(id),
			Err:  fmt.Errorf("%s: %s", code, info),
		}
	}

	c.log.Debug("wikibase.cleared", "entity", string(id))
	return nil
}

// edit posts one wbeditentity call; id == "" creates, otherwise patches.
func (c *Client) edit(ctx context.Context, op string, data map[string]any, kind domain.EntityKind, id domain.EntityID) (domain.EntityID, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", &domain.OpError{Op: op, Kind: domain.KindConsistency, Err: err}
	}

	token, err := c.csrfToken(ctx)
	if err != nil {
		return "", err
	}

	form := url.Values{
		"action": {"wbeditentity"},
		"format": {"json"},
		"data":   {string(payload)},
		"token":  {token},
	}
	if id == "" {
		form.Set("new", string(kind))
	} else {
		form.Set("id", string(id))
	}

	doc, err := c.call(ctx, form)
	if err != nil {
		return "", err
	}

	if code, info, found := apiError(doc); found {
		if id == "" && strings.Contains(info, " already has ") {
			if existing := existingID(info, kind); existing != "" {
				c.log.Warn("wikibase.exists", "entity", string(existing), "info", info)
				if err := c.Clear(ctx, existing); err != nil {
					return "", err
				}
				return c.edit(ctx, op, data, kind, existing)
			}
		}
		return "", &domain.OpError{
			Op:   op,
			Kind: domain.KindRemote,
			Path: string(id),
			Err:  fmt.Errorf("%s: %s", code, info),
		}
	}

	got, ok := field(doc, "$.entity.id")
	if !ok {
		return "", &domain.OpError{Op: op, Kind: domain.KindRemote, Err: fmt.Errorf("response carries no entity id")}
	}
	return domain.EntityID(got), nil
}

func (c *Client) csrfToken(ctx context.Context) (string, error) {
	if c.csrf != "" {
		return c.csrf, nil
	}
	token, err := c.token(ctx, "", "$.query.tokens.csrftoken")
	if err != nil {
		return "", err
	}
	c.csrf = token
	return token, nil
}

func (c *Client) token(ctx context.Context, tokenType, path string) (string, error) {
	form := url.Values{
		"action": {"query"},
		"meta":   {"tokens"},
		"format": {"json"},
	}
	if tokenType != "" {
		form.Set("type", tokenType)
	}

	doc, err := c.call(ctx, form)
	if err != nil {
		return "", err
	}
	token, ok := field(doc, path)
	if !ok {
		return "", &domain.OpError{
			Op:   "wikibase.token",
			Kind: domain.KindRemote,
			Path: c.apiURL,
			Err:  fmt.Errorf("response carries no token at %s", path),
		}
	}
	return token, nil
}

// call posts form-encoded parameters to api.php and decodes the JSON
// response into a generic document.
func (c *Client) call(ctx context.Context, form url.Values) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &domain.OpError{Op: "wikibase.call", Kind: domain.KindRemote, Path: c.apiURL, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.OpError{Op: "wikibase.call", Kind: domain.KindRemote, Path: c.apiURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.OpError{Op: "wikibase.call", Kind: domain.KindRemote, Path: c.apiURL, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.OpError{
			Op:   "wikibase.call",
			Kind: domain.KindRemote,
			Path: c.apiURL,
			Err:  fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncateBody(body)),
		}
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &domain.OpError{Op: "wikibase.call", Kind: domain.KindRemote, Path: c.apiURL, Err: err}
	}
	return doc, nil
}

// field reads one string value out of an API response document.
func field(doc any, path string) (string, bool) {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func apiError(doc any) (code, info string, found bool) {
	code, found = field(doc, "$.error.code")
	if !found {
		return "", "", false
	}
	info, _ = field(doc, "$.error.info")
	return code, info, true
}

var (
	itemIDPat     = regexp.MustCompile(`\[\[Item:(Q[0-9]+)`)
	propertyIDPat = regexp.MustCompile(`\[\[Property:(P[0-9]+)`)
)

// existingID pulls the conflicting entity's ID out of the "already has
// label" error message.
func existingID(info string, kind domain.EntityKind) domain.EntityID {
	pat := itemIDPat
	if kind == domain.EntityProperty {
		pat = propertyIDPat
	}
	m := pat.FindStringSubmatch(info)
	if m == nil {
		return ""
	}
	return domain.EntityID(m[1])
}

func entityData(e domain.TargetEntity) map[string]any {
	labels := map[string]any{}
	for lang, v := range e.Labels {
		labels[lang] = map[string]any{"language": lang, "value": v}
	}
	descriptions := map[string]any{}
	for lang, v := range e.Descriptions {
		descriptions[lang] = map[string]any{"language": lang, "value": v}
	}

	data := map[string]any{
		"labels":       labels,
		"descriptions": descriptions,
	}
	if e.Kind == domain.EntityProperty {
		data["datatype"] = e.Datatype
	}
	return data
}

// statement renders one claim as a wbeditentity statement with a single
// value snak.
func statement(cl domain.Claim) (map[string]any, error) {
	var datatype, valueType string
	var value any

	switch cl.Value.Kind {
	case domain.ValueString:
		datatype, valueType = "string", "string"
		value = cl.Value.Text

	case domain.ValueEntity:
		num, err := cl.Value.Entity.Numeric()
		if err != nil {
			return nil, err
		}
		entityType := "item"
		datatype = "wikibase-item"
		if cl.Value.Entity.Kind() == domain.EntityProperty {
			entityType = "property"
			datatype = "wikibase-property"
		}
		valueType = "wikibase-entityid"
		value = map[string]any{
			"entity-type": entityType,
			"id":          string(cl.Value.Entity),
			"numeric-id":  num,
		}

	case domain.ValueQuantity:
		datatype, valueType = "quantity", "quantity"
		value = map[string]any{
			"amount": cl.Value.Amount,
			"unit":   cl.Value.Unit,
		}

	default:
		return nil, fmt.Errorf("unknown claim value kind %q", cl.Value.Kind)
	}

	return map[string]any{
		"mainsnak": map[string]any{
			"snaktype": "value",
			"property": string(cl.Property),
			"datatype": datatype,
			"datavalue": map[string]any{
				"value": value,
				"type":  valueType,
			},
		},
		"type": "statement",
		"rank": "normal",
	}, nil
}

func truncateBody(b []byte) string {
	const max = 200
	s := string(b)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

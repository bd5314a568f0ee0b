package libssk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type (
	// A Client defines all interactions that can be performed on a Shishikan server.
	Client interface {
		Searcher

		// AuthenticateWithGoogle signs in (or up) the user owning the given Google ID token.
		// The returned session is used for the subsequent requests.
		AuthenticateWithGoogle(ctx context.Context, idToken string) (*User, error)
		// Logout terminates the current session.
		Logout(ctx context.Context) error
		// Session returns the authentication session used for requests.
		Session() Session
		// SetSession sets the authentication session used for requests.
		SetSession(session Session)
		// Me returns the current user.
		Me(ctx context.Context) (*User, error)
		// Lists returns the lists of the current user.
		Lists(ctx context.Context) ([]List, error)
		// UserLists returns the lists of the given user readable by the current user.
		UserLists(ctx context.Context, userID string) ([]List, error)
		// List returns the list for the given id.
		List(ctx context.Context, id string) (*List, error)
		// CreateList creates a new list owned by the current user.
		CreateList(ctx context.Context, params CreateListParams) (*List, error)
		// AddFood adds a food to one of the current user's lists.
		AddFood(ctx context.Context, params AddFoodParams) (*Food, error)
		// ListFoods returns a page of the hits belonging to the given list.
		ListFoods(ctx context.Context, listID string, page, hitsPerPage int) (*SearchResult, error)
		// Categories returns all food categories.
		Categories(ctx context.Context) ([]Category, error)
		// UploadImage stores an image and returns its URL.
		UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
	}

	p      map[string]any
	client struct {
		http     *http.Client
		endpoint string
		session  Session
	}
)

// NewDefaultClient returns a new Client with default HTTP client.
func NewDefaultClient(endpoint string) (Client, error) {
	return NewClient(http.DefaultClient, endpoint)
}

// NewClient returns a new Client.
func NewClient(c *http.Client, endpoint string) (Client, error) {
	_, err := url.Parse(endpoint)
	return &client{endpoint: endpoint, http: c}, errors.Wrap(err, "could not parse endpoint")
}

func (c *client) AuthenticateWithGoogle(ctx context.Context, idToken string) (*User, error) {
	var auth struct {
		User    User    `json:"user"`
		Session Session `json:"session"`
	}

	err := c.do(ctx, http.MethodPost, "/auth/google", nil, p{"id_token": idToken}, &auth)
	if err != nil {
		return nil, err
	}

	c.SetSession(auth.Session)
	return &auth.User, nil
}

func (c *client) Logout(ctx context.Context) error {
	if !c.session.Defined() {
		return errors.New("no session defined")
	}

	err := c.do(ctx, http.MethodPost, "/auth/sign_out", nil, nil, nil)
	if err != nil {
		return err
	}

	c.session = Session{}
	return nil
}

func (c *client) Session() Session {
	return c.session
}

func (c *client) SetSession(session Session) {
	c.session = session
}

func (c *client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *client) Lists(ctx context.Context) ([]List, error) {
	var lists []List
	err := c.do(ctx, http.MethodGet, "/lists", nil, nil, &lists)
	return lists, err
}

func (c *client) UserLists(ctx context.Context, userID string) ([]List, error) {
	var lists []List
	err := c.do(ctx, http.MethodGet, path.Join("/users", url.PathEscape(userID), "lists"), nil, nil, &lists)
	return lists, err
}

func (c *client) List(ctx context.Context, id string) (*List, error) {
	var list List
	if err := c.do(ctx, http.MethodGet, path.Join("/lists", url.PathEscape(id)), nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *client) CreateList(ctx context.Context, params CreateListParams) (*List, error) {
	var list List
	if err := c.do(ctx, http.MethodPost, "/lists", nil, params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *client) AddFood(ctx context.Context, params AddFoodParams) (*Food, error) {
	if params.CoverImage == "" && len(params.Images) > 0 {
		params.CoverImage = params.Images[0]
	}

	var food Food
	if err := c.do(ctx, http.MethodPost, path.Join("/lists", url.PathEscape(params.ListID), "foods"), nil, params, &food); err != nil {
		return nil, err
	}
	return &food, nil
}

func (c *client) ListFoods(ctx context.Context, listID string, page, hitsPerPage int) (*SearchResult, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("hits_per_page", strconv.Itoa(hitsPerPage))

	var result SearchResult
	if err := c.do(ctx, http.MethodGet, path.Join("/lists", url.PathEscape(listID), "foods"), query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories)
	return categories, err
}

// Search implements Searcher.
func (c *client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	query := url.Values{}
	if params.Query != "" {
		query.Set("query", params.Query)
	}
	if params.Filters != "" {
		query.Set("filters", params.Filters)
	}
	query.Set("page", strconv.Itoa(params.Page))
	if params.HitsPerPage > 0 {
		query.Set("hits_per_page", strconv.Itoa(params.HitsPerPage))
	}
	if len(params.Facets) > 0 {
		query.Set("facets", strings.Join(params.Facets, ","))
	}

	var result SearchResult
	if err := c.do(ctx, http.MethodGet, "/search", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	u, err := c.url("/images", nil)
	if err != nil {
		return "", err
	}

	//
	// Build request
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", path.Base(filename))
	if err != nil {
		return "", errors.Wrap(err, "could not build multipart form")
	}
	if _, err = io.Copy(fw, r); err != nil {
		return "", errors.Wrap(err, "could not read image")
	}
	if err = mw.Close(); err != nil {
		return "", errors.Wrap(err, "could not build multipart form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &body)
	if err != nil {
		return "", errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", mw.FormDataContentType())
	req.Header.Add("Accept", "application/json")
	c.authorize(req)

	var image struct {
		URL string `json:"url"`
	}
	err = c.perform(req, &image)
	return image.URL, err
}

func (c *client) url(endpoint string, query url.Values) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", errors.Wrap(err, "could not parse endpoint")
	}
	u.Path = path.Join(u.Path, endpoint)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func (c *client) authorize(req *http.Request) {
	if c.session.AccessToken != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.session.AccessToken))
	}
}

func (c *client) do(ctx context.Context, method, endpoint string, query url.Values, payload, v any) error {
	u, err := c.url(endpoint, query)
	if err != nil {
		return err
	}

	//
	// Build request
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "could not serialize request")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	req.Close = true
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	c.authorize(req)

	return c.perform(req, v)
}

func (c *client) perform(req *http.Request, v any) error {
	//
	// Perform request
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not perform request")
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return parseSSKError(res.Body, res.StatusCode)
	}

	if v == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	//
	// Process response
	dec := json.NewDecoder(res.Body)
	return errors.Wrap(dec.Decode(v), "could not parse response")
}

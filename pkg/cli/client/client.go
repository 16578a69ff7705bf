/* Copyright 2025 saasnotes Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package client provides interfaces for interacting with the notes server
// and the data structures for responses
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/saasnotes/saasnotes/pkg/cli/context"
	"github.com/saasnotes/saasnotes/pkg/cli/log"
	"golang.org/x/time/rate"
)

// ErrInvalidLogin is an error for invalid credentials for login
var ErrInvalidLogin = errors.New("wrong email or password")

// ErrContentTypeMismatch is an error for an unexpected response content type
var ErrContentTypeMismatch = errors.New("content type mismatch")

// Roles recognized by the server
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Plans recognized by the server
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// UnlimitedNotes is the sentinel maxNotes value meaning no quota
const UnlimitedNotes = -1

// Tenant is the tenant summary embedded in a user identity
type Tenant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Plan     string `json:"plan"`
	MaxNotes int    `json:"maxNotes"`
}

// User is an identity record resolved from a bearer token
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Tenant Tenant `json:"tenant"`
}

// NoteAuthor is the populated author reference on a note
type NoteAuthor struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// Note is a note in a server response
type Note struct {
	ID        string     `json:"_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Author    NoteAuthor `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TenantStats is the usage summary for a tenant
type TenantStats struct {
	Users          int `json:"users"`
	Notes          int `json:"notes"`
	NotesRemaining int `json:"notesRemaining"`
}

// HTTPError represents an HTTP error response from the server
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf(`response %d "%s"`, e.StatusCode, e.Message)
}

// IsUnauthorized returns true if the error is a 401 Unauthorized error
func (e *HTTPError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// NoteLimitError is the distinct quota failure returned when the tenant's
// note limit is reached. Current and Limit carry the literal counts from
// the server response.
type NoteLimitError struct {
	Message string
	Current int
	Limit   int
}

func (e *NoteLimitError) Error() string {
	return fmt.Sprintf("%s (%d/%d notes)", e.Message, e.Current, e.Limit)
}

var contentTypeApplicationJSON = "application/json"
var contentTypeNone = ""

// errorResp is the error body shape the server uses across endpoints
type errorResp struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Current *int   `json:"current"`
	Limit   *int   `json:"limit"`
}

// requestOptions contains options for requests
type requestOptions struct {
	HTTPClient *http.Client
	// ExpectedContentType is the Content-Type that the client is expecting from the server
	ExpectedContentType *string
}

const (
	// clientRateLimitPerSecond is the max requests per second the client will make
	clientRateLimitPerSecond = 50
	// clientRateLimitBurst is the burst capacity for rate limiting
	clientRateLimitBurst = 100
)

// rateLimitedTransport wraps an http.RoundTripper with rate limiting
type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.transport.RoundTrip(req)
}

// NewRateLimitedHTTPClient creates an HTTP client with rate limiting
func NewRateLimitedHTTPClient() *http.Client {
	interval := time.Second / time.Duration(clientRateLimitPerSecond)

	transport := &rateLimitedTransport{
		transport: http.DefaultTransport,
		limiter:   rate.NewLimiter(rate.Every(interval), clientRateLimitBurst),
	}
	return &http.Client{
		Transport: transport,
	}
}

func getHTTPClient(ctx context.NotesCtx, options *requestOptions) *http.Client {
	if options != nil && options.HTTPClient != nil {
		return options.HTTPClient
	}

	if ctx.HTTPClient != nil {
		return ctx.HTTPClient
	}

	return &http.Client{}
}

func getExpectedContentType(options *requestOptions) string {
	if options != nil && options.ExpectedContentType != nil {
		return *options.ExpectedContentType
	}

	return contentTypeApplicationJSON
}

func getReq(ctx context.NotesCtx, path, method, body string) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s%s", ctx.APIEndpoint, path)
	req, err := http.NewRequest(method, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "constructing http request")
	}

	req.Header.Set("Client-Version", ctx.Version)
	if body != "" {
		req.Header.Set("Content-Type", contentTypeApplicationJSON)
	}

	// Every authenticated call reads the token at call time. It is never
	// cached across a suspension point.
	for key, values := range AuthHeader(ctx.SessionToken) {
		for _, value := range values {
			req.Header.Set(key, value)
		}
	}

	return req, nil
}

// AuthHeader is a pure function of the current token. It returns an empty
// header set when the token is absent, and a single bearer credential
// otherwise.
func AuthHeader(token string) http.Header {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	return header
}

// checkRespErr checks if the given http response indicates an error. A quota
// failure is decoded into a NoteLimitError so that callers can surface the
// literal current/limit counts; any other failure becomes an HTTPError.
func checkRespErr(res *http.Response) error {
	if res.StatusCode < 400 {
		return nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "server responded with %d but client could not read the response body", res.StatusCode)
	}

	var payload errorResp
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		if res.StatusCode == http.StatusForbidden && payload.Current != nil && payload.Limit != nil {
			message := payload.Message
			if message == "" {
				message = payload.Error
			}

			return &NoteLimitError{
				Message: message,
				Current: *payload.Current,
				Limit:   *payload.Limit,
			}
		}

		return &HTTPError{
			StatusCode: res.StatusCode,
			Message:    payload.Error,
		}
	}

	return &HTTPError{
		StatusCode: res.StatusCode,
		Message:    strings.TrimRight(string(body), "\n"),
	}
}

func checkContentType(res *http.Response, options *requestOptions) error {
	expected := getExpectedContentType(options)
	if expected == "" {
		return nil
	}

	got, _, err := mime.ParseMediaType(res.Header.Get("Content-Type"))
	if err != nil || got != expected {
		return errors.Wrapf(ErrContentTypeMismatch, "got: '%s' want: '%s'. Did you configure your endpoint correctly?", res.Header.Get("Content-Type"), expected)
	}

	return nil
}

// doReq does a http request to the given path in the api endpoint
func doReq(ctx context.NotesCtx, method, path, body string, options *requestOptions) (*http.Response, error) {
	req, err := getReq(ctx, path, method, body)
	if err != nil {
		return nil, errors.Wrap(err, "getting request")
	}

	log.Debug("HTTP %s %s\n", method, path)

	hc := getHTTPClient(ctx, options)
	res, err := hc.Do(req)
	if err != nil {
		return res, errors.Wrap(err, "making http request")
	}

	log.Debug("HTTP %d %s\n", res.StatusCode, res.Status)

	if err = checkRespErr(res); err != nil {
		return res, err
	}

	if err = checkContentType(res, options); err != nil {
		return res, errors.Wrap(err, "unexpected Content-Type")
	}

	return res, nil
}

// doAuthorizedReq does a http request to the given path in the api endpoint as a user,
// with the appropriate headers. The given path should include the preceding slash.
func doAuthorizedReq(ctx context.NotesCtx, method, path, body string, options *requestOptions) (*http.Response, error) {
	if ctx.SessionToken == "" {
		return nil, errors.New("no session token found")
	}

	return doReq(ctx, method, path, body, options)
}

// LoginPayload is a payload for /auth/login
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResp is the response from the login endpoint
type LoginResp struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login requests a bearer token for the given credentials
func Login(ctx context.NotesCtx, email, password string) (LoginResp, error) {
	payload := LoginPayload{
		Email:    email,
		Password: password,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return LoginResp{}, errors.Wrap(err, "marshaling payload")
	}

	res, err := doReq(ctx, "POST", "/auth/login", string(b), nil)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.IsUnauthorized() {
			return LoginResp{}, ErrInvalidLogin
		}
		return LoginResp{}, errors.Wrap(err, "making http request")
	}

	var resp LoginResp
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return LoginResp{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// GetMeResp is the response from the identity endpoint
type GetMeResp struct {
	User User `json:"user"`
}

// GetMe resolves the identity behind the session token
func GetMe(ctx context.NotesCtx) (GetMeResp, error) {
	res, err := doAuthorizedReq(ctx, "GET", "/auth/me", "", nil)
	if err != nil {
		return GetMeResp{}, errors.Wrap(err, "making http request")
	}

	var resp GetMeResp
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return GetMeResp{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// GetNotesResp is the response from the note listing endpoint
type GetNotesResp struct {
	Notes []Note `json:"notes"`
}

// GetNotes gets the notes for the current tenant, optionally filtered
// by a search term
func GetNotes(ctx context.NotesCtx, search string) (GetNotesResp, error) {
	path := "/notes"
	if search != "" {
		v := url.Values{}
		v.Set("search", search)
		path = fmt.Sprintf("/notes?%s", v.Encode())
	}

	res, err := doAuthorizedReq(ctx, "GET", path, "", nil)
	if err != nil {
		return GetNotesResp{}, errors.Wrap(err, "making http request")
	}

	var resp GetNotesResp
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return GetNotesResp{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// NotePayload is a payload for creating or updating a note
type NotePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResp is the response from the note mutation endpoints
type NoteResp struct {
	Note Note `json:"note"`
}

// CreateNote creates a note in the server
func CreateNote(ctx context.NotesCtx, title, content string) (NoteResp, error) {
	payload := NotePayload{
		Title:   title,
		Content: content,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return NoteResp{}, errors.Wrap(err, "marshaling payload")
	}

	res, err := doAuthorizedReq(ctx, "POST", "/notes", string(b), nil)
	if err != nil {
		return NoteResp{}, errors.Wrap(err, "posting a note to the server")
	}

	var resp NoteResp
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return NoteResp{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// UpdateNote updates a note in the server
func UpdateNote(ctx context.NotesCtx, id, title, content string) (NoteResp, error) {
	payload := NotePayload{
		Title:   title,
		Content: content,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return NoteResp{}, errors.Wrap(err, "marshaling payload")
	}

	endpoint := fmt.Sprintf("/notes/%s", id)
	res, err := doAuthorizedReq(ctx, "PUT", endpoint, string(b), nil)
	if err != nil {
		return NoteResp{}, errors.Wrap(err, "putting a note to the server")
	}

	var resp NoteResp
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return NoteResp{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// DeleteNote removes a note in the server
func DeleteNote(ctx context.NotesCtx, id string) error {
	// The server may reply with an empty body on success
	opts := requestOptions{ExpectedContentType: &contentTypeNone}

	endpoint := fmt.Sprintf("/notes/%s", id)
	_, err := doAuthorizedReq(ctx, "DELETE", endpoint, "", &opts)
	if err != nil {
		return errors.Wrap(err, "deleting a note in the server")
	}

	return nil
}

// GetTenantStatsResp is the response from the tenant stats endpoint
type GetTenantStatsResp struct {
	Stats TenantStats `json:"stats"`
}

// GetTenantStats gets the usage summary for the tenant with the given slug
func GetTenantStats(ctx context.NotesCtx, slug string) (GetTenantStatsResp, error) {
	endpoint := fmt.Sprintf("/tenants/%s/stats", slug)
	res, err := doAuthorizedReq(ctx, "GET", endpoint, "", nil)
	if err != nil {
		return GetTenantStatsResp{}, errors.Wrap(err, "making http request")
	}

	var resp GetTenantStatsResp
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return GetTenantStatsResp{}, errors.Wrap(err, "decoding payload")
	}

	return resp, nil
}

// UpgradeTenant upgrades the tenant with the given slug to the pro plan
func UpgradeTenant(ctx context.NotesCtx, slug string) error {
	opts := requestOptions{ExpectedContentType: &contentTypeNone}

	endpoint := fmt.Sprintf("/tenants/%s/upgrade", slug)
	_, err := doAuthorizedReq(ctx, "POST", endpoint, "", &opts)
	if err != nil {
		return errors.Wrap(err, "requesting the upgrade")
	}

	return nil
}

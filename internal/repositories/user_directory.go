package repositories

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/enrich"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
)

// AdminUserGetter is the per-id admin lookup of the identity provider SDK.
type AdminUserGetter interface {
	AdminGetUser(req types.AdminGetUserRequest) (*types.AdminGetUserResponse, error)
}

// UserDirectory reads end users from the identity provider. Single users come from the
// SDK; listing goes to the admin REST endpoint because the SDK call takes no paging params.
type UserDirectory struct {
	Admin      AdminUserGetter
	BaseURL    string
	ServiceKey string
	HTTP       *http.Client
}

func (d UserDirectory) httpClient() *http.Client {
	if d.HTTP != nil {
		return d.HTTP
	}
	return &http.Client{Timeout: 15 * time.Second}
}

func toDirectoryUser(u types.User) models.DirectoryUser {
	return models.DirectoryUser{
		ID:           u.ID.String(),
		Email:        u.Email,
		Name:         metadataString(u.UserMetadata, "full_name", "name"),
		AvatarURL:    metadataString(u.UserMetadata, "avatar_url", "picture"),
		CreatedAt:    u.CreatedAt,
		LastSignInAt: u.LastSignInAt,
	}
}

func metadataString(meta map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := meta[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func (d UserDirectory) GetUser(ctx context.Context, id string) (models.DirectoryUser, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return models.DirectoryUser{}, domain.ValidationError{Field: "id", Msg: "must be a uuid", Err: err}
	}
	if d.Admin == nil {
		return models.DirectoryUser{}, domain.UpstreamError{Service: "identity provider"}
	}
	if err := ctx.Err(); err != nil {
		return models.DirectoryUser{}, err
	}
	resp, err := d.Admin.AdminGetUser(types.AdminGetUserRequest{UserID: uid})
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return models.DirectoryUser{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.DirectoryUser{}, domain.UpstreamError{Service: "identity provider", Err: err}
	}
	return toDirectoryUser(resp.User), nil
}

// UserDetails projects a directory user for enrichment. Name falls back to the email.
func (d UserDirectory) UserDetails(ctx context.Context, id string) (enrich.UserDetails, error) {
	u, err := d.GetUser(ctx, id)
	if err != nil {
		return enrich.UserDetails{}, err
	}
	details := enrich.UserDetails{ID: u.ID, Name: u.Name, Email: u.Email}
	if details.Name == "" {
		details.Name = u.Email
	}
	if u.AvatarURL != "" {
		avatar := u.AvatarURL
		details.Avatar = &avatar
	}
	return details, nil
}

type adminUsersPage struct {
	Users []types.User `json:"users"`
}

// ListUsers fetches one page (1-based) of users.
func (d UserDirectory) ListUsers(ctx context.Context, page, perPage int) ([]models.DirectoryUser, error) {
	if strings.TrimSpace(d.BaseURL) == "" {
		return nil, domain.UpstreamError{Service: "identity provider", Err: fmt.Errorf("base url not configured")}
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	endpoint := strings.TrimRight(d.BaseURL, "/") + "/auth/v1/admin/users?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", d.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+d.ServiceKey)
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient().Do(req)
	if err != nil {
		return nil, domain.UpstreamError{Service: "identity provider", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, domain.UpstreamError{
			Service: "identity provider",
			Err:     fmt.Errorf("list users: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var body adminUsersPage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.UpstreamError{Service: "identity provider", Err: err}
	}
	out := make([]models.DirectoryUser, 0, len(body.Users))
	for _, u := range body.Users {
		out = append(out, toDirectoryUser(u))
	}
	return out, nil
}

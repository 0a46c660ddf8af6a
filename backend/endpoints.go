package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const (
	// POST /login to sign an admin in
	LoginEndpoint = "/login"
	// POST /admin/register to create an admin account
	RegisterEndpoint = "/admin/register"
	// POST /logout to invalidate the current session
	LogoutEndpoint = "/logout"
	// GET /admin/get-creators to list creators
	CreatorsEndpoint = "/admin/get-creators"
	// GET /admin/get-brands to list brands
	BrandsEndpoint = "/admin/get-brands"
	// GET /admin/get-collabs to list every collaboration
	CollaborationsEndpoint = "/admin/get-collabs"
	// GET /brand/verify-brand/{companyEmail} to send the brand verification email
	VerifyBrandEndpoint = "/brand/verify-brand/%s"
	// PUT /creator/verify-account/{id} to mark a creator verified
	VerifyCreatorEndpoint = "/creator/verify-account/%s"
	// PUT /creator/social-videos/status/{profileId} to moderate a video
	VideoStatusEndpoint = "/creator/social-videos/status/%s"
	// PUT /admin/collaboration/payment-done/{collaborationId} to close a payment
	PaymentDoneEndpoint = "/admin/collaboration/payment-done/%s"
	// DELETE /admin/delete/{id}/{userType} to delete an account
	DeleteAccountEndpoint = "/admin/delete/%s/%s"
)

// AdminUserType is the userType sent on login.
const AdminUserType = "admin"

// Login authenticates an admin. The returned cookies are the session the
// browser must keep; the backend sets them on the login answer.
func (c *Client) Login(ctx context.Context, email, password string) (*Identity, []*http.Cookie, error) {
	var out loginResponse
	resp, err := c.doJSON(ctx, http.MethodPost, LoginEndpoint, nil, &LoginRequest{
		Email:    email,
		Password: password,
		UserType: AdminUserType,
	}, &out)
	if err != nil {
		return nil, nil, err
	}
	return &out.Data, resp.Cookies(), nil
}

// Register creates a new admin account.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) error {
	_, err := c.doJSON(ctx, http.MethodPost, RegisterEndpoint, nil, req, nil)
	return err
}

// Logout invalidates the session carried by ctx and returns the cookies the
// backend sent to clear it.
func (c *Client) Logout(ctx context.Context) ([]*http.Cookie, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, LogoutEndpoint, nil, struct{}{}, nil)
	if err != nil {
		return nil, err
	}
	return resp.Cookies(), nil
}

// Creators lists creators. Query holds the filter and page parameters and is
// sent unchanged.
func (c *Client) Creators(ctx context.Context, query url.Values) (*CreatorsResponse, error) {
	out := &CreatorsResponse{}
	if _, err := c.doJSON(ctx, http.MethodGet, CreatorsEndpoint, query, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Brands lists brands. Query holds the filter and page parameters.
func (c *Client) Brands(ctx context.Context, query url.Values) (*BrandsResponse, error) {
	out := &BrandsResponse{}
	if _, err := c.doJSON(ctx, http.MethodGet, BrandsEndpoint, query, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Collaborations lists every collaboration. The endpoint has no filters and
// no server side pagination.
func (c *Client) Collaborations(ctx context.Context) (*CollaborationsResponse, error) {
	out := &CollaborationsResponse{}
	if _, err := c.doJSON(ctx, http.MethodGet, CollaborationsEndpoint, nil, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyBrand triggers the verification email of a brand. Unlike creators,
// brands are keyed by their company email on this endpoint, and the call is
// a GET.
func (c *Client) VerifyBrand(ctx context.Context, companyEmail string) error {
	_, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf(VerifyBrandEndpoint, url.PathEscape(companyEmail)), nil, nil, nil)
	return err
}

// VerifyCreator marks a creator account as verified. Creators are keyed by
// account id.
func (c *Client) VerifyCreator(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf(VerifyCreatorEndpoint, url.PathEscape(id)), nil, struct{}{}, nil)
	return err
}

// SetVideoStatus sets the moderation status of one video of a creator
// profile. The path carries the profile id, not the creator account id.
func (c *Client) SetVideoStatus(ctx context.Context, profileID, videoID, status string) error {
	_, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf(VideoStatusEndpoint, url.PathEscape(profileID)), nil,
		&videoStatusRequest{Status: status, VideoID: videoID}, nil)
	return err
}

// PaymentDone marks the payment of a collaboration as completed.
func (c *Client) PaymentDone(ctx context.Context, collaborationID string) error {
	_, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf(PaymentDoneEndpoint, url.PathEscape(collaborationID)), nil, struct{}{}, nil)
	return err
}

// DeleteAccount deletes a creator or brand account. userType is "creator"
// or "brand".
func (c *Client) DeleteAccount(ctx context.Context, id, userType string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf(DeleteAccountEndpoint, url.PathEscape(id), url.PathEscape(userType)), nil, nil, nil)
	return err
}

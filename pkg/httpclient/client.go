package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client provides an HTTP client for the hub API
type Client struct {
	config     Config
	httpClient *http.Client
	token      string
	baseURL    *url.URL
}

// NewClient creates a new hub HTTP client
func NewClient(config Config) (*Client, error) {
	config.SetDefaults()

	// Validate required config
	if config.ServerURL == "" {
		return nil, fmt.Errorf("ServerURL is required")
	}
	if config.Address == "" {
		return nil, fmt.Errorf("Address is required")
	}

	// Parse base URL
	baseURL, err := url.Parse(config.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ServerURL: %w", err)
	}

	// Create HTTP client with timeout
	httpClient := &http.Client{
		Timeout: config.Timeout,
	}

	client := &Client{
		config:     config,
		httpClient: httpClient,
		baseURL:    baseURL,
	}

	return client, nil
}

// Authenticate authenticates with the hub server and stores the token
func (c *Client) Authenticate(ctx context.Context) error {
	authReq := map[string]string{
		"address": c.config.Address,
	}

	var authResp AuthResponse
	err := c.doRequest(ctx, "POST", "/api/v1/auth/login", authReq, &authResp, false)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	c.token = authResp.Token
	return nil
}

// CreateProfile mints a new profile
func (c *Client) CreateProfile(ctx context.Context, req CreateProfileRequest) (*ProfileResponse, error) {
	if c.token == "" {
		return nil, fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	var resp ProfileResponse
	err := c.doRequest(ctx, "POST", "/api/v1/profiles", req, &resp, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &resp, nil
}

// GetProfile returns a profile by ID
func (c *Client) GetProfile(ctx context.Context, profileID uint64) (*ProfileResponse, error) {
	path := fmt.Sprintf("/api/v1/profiles/%d", profileID)

	var resp ProfileResponse
	err := c.doRequest(ctx, "GET", path, nil, &resp, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &resp, nil
}

// GetProfileByHandle returns a profile by its handle
func (c *Client) GetProfileByHandle(ctx context.Context, handle string) (*ProfileResponse, error) {
	path := fmt.Sprintf("/api/v1/profiles/by-handle/%s", url.PathEscape(handle))

	var resp ProfileResponse
	err := c.doRequest(ctx, "GET", path, nil, &resp, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile by handle: %w", err)
	}

	return &resp, nil
}

// GetPublication returns a publication by profile ID and publication ID
func (c *Client) GetPublication(ctx context.Context, profileID, pubID uint64) (*PublicationResponse, error) {
	path := fmt.Sprintf("/api/v1/profiles/%d/publications/%d", profileID, pubID)

	var resp PublicationResponse
	err := c.doRequest(ctx, "GET", path, nil, &resp, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get publication: %w", err)
	}

	return &resp, nil
}

// BurnProfile burns a profile owned by the authenticated address
func (c *Client) BurnProfile(ctx context.Context, profileID uint64) error {
	if c.token == "" {
		return fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	path := fmt.Sprintf("/api/v1/profiles/%d", profileID)
	err := c.doRequest(ctx, "DELETE", path, nil, nil, true)
	if err != nil {
		return fmt.Errorf("failed to burn profile: %w", err)
	}

	return nil
}

// profileMutation posts a body to /api/v1/profiles/{id}/{action}
func (c *Client) profileMutation(ctx context.Context, profileID uint64, action string, req interface{}) (*ProfileResponse, error) {
	if c.token == "" {
		return nil, fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	path := fmt.Sprintf("/api/v1/profiles/%d/%s", profileID, action)

	var resp ProfileResponse
	err := c.doRequest(ctx, "POST", path, req, &resp, true)
	if err != nil {
		return nil, fmt.Errorf("failed to %s profile %d: %w", action, profileID, err)
	}

	return &resp, nil
}

// SetDispatcher sets a profile's dispatcher
func (c *Client) SetDispatcher(ctx context.Context, profileID uint64, dispatcher string) (*ProfileResponse, error) {
	return c.profileMutation(ctx, profileID, "dispatcher", SetDispatcherRequest{Dispatcher: dispatcher})
}

// SetProfileImageURI sets a profile's image URI
func (c *Client) SetProfileImageURI(ctx context.Context, profileID uint64, imageURI string) (*ProfileResponse, error) {
	return c.profileMutation(ctx, profileID, "image-uri", SetImageURIRequest{ImageURI: imageURI})
}

// SetFollowNFTURI sets a profile's follow token URI
func (c *Client) SetFollowNFTURI(ctx context.Context, profileID uint64, followNFTURI string) (*ProfileResponse, error) {
	return c.profileMutation(ctx, profileID, "follow-nft-uri", SetFollowNFTURIRequest{FollowNFTURI: followNFTURI})
}

// SetFollowModule sets a profile's follow module
func (c *Client) SetFollowModule(ctx context.Context, profileID uint64, followModule, initData string) (*ProfileResponse, error) {
	return c.profileMutation(ctx, profileID, "follow-module", SetFollowModuleRequest{FollowModule: followModule, InitData: initData})
}

// TransferProfile transfers a profile to a new owner
func (c *Client) TransferProfile(ctx context.Context, profileID uint64, to string) (*ProfileResponse, error) {
	return c.profileMutation(ctx, profileID, "transfer", TransferRequest{To: to})
}

// ApproveProfile approves an address to transfer a profile
func (c *Client) ApproveProfile(ctx context.Context, profileID uint64, approved string) (*ProfileResponse, error) {
	return c.profileMutation(ctx, profileID, "approve", ApproveRequest{Approved: approved})
}

// SetDefaultProfile sets the default profile for the authenticated address
func (c *Client) SetDefaultProfile(ctx context.Context, profileID uint64) error {
	if c.token == "" {
		return fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	req := SetDefaultProfileRequest{ProfileID: profileID}
	err := c.doRequest(ctx, "POST", "/api/v1/profiles/default", req, nil, true)
	if err != nil {
		return fmt.Errorf("failed to set default profile: %w", err)
	}

	return nil
}

// Post publishes a post
func (c *Client) Post(ctx context.Context, req PostRequest) (*PublicationCreatedResponse, error) {
	if c.token == "" {
		return nil, fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	var resp PublicationCreatedResponse
	err := c.doRequest(ctx, "POST", "/api/v1/publications/post", req, &resp, true)
	if err != nil {
		return nil, fmt.Errorf("failed to post: %w", err)
	}

	return &resp, nil
}

// Comment publishes a comment on an existing publication
func (c *Client) Comment(ctx context.Context, req CommentRequest) (*PublicationCreatedResponse, error) {
	if c.token == "" {
		return nil, fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	var resp PublicationCreatedResponse
	err := c.doRequest(ctx, "POST", "/api/v1/publications/comment", req, &resp, true)
	if err != nil {
		return nil, fmt.Errorf("failed to comment: %w", err)
	}

	return &resp, nil
}

// Mirror republishes an existing publication
func (c *Client) Mirror(ctx context.Context, req MirrorRequest) (*PublicationCreatedResponse, error) {
	if c.token == "" {
		return nil, fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	var resp PublicationCreatedResponse
	err := c.doRequest(ctx, "POST", "/api/v1/publications/mirror", req, &resp, true)
	if err != nil {
		return nil, fmt.Errorf("failed to mirror: %w", err)
	}

	return &resp, nil
}

// Follow follows one or more profiles as the authenticated address
func (c *Client) Follow(ctx context.Context, req FollowRequest) (*FollowResponse, error) {
	if c.token == "" {
		return nil, fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	var resp FollowResponse
	err := c.doRequest(ctx, "POST", "/api/v1/follow", req, &resp, true)
	if err != nil {
		return nil, fmt.Errorf("failed to follow: %w", err)
	}

	return &resp, nil
}

// Collect collects a publication as the authenticated address
func (c *Client) Collect(ctx context.Context, req CollectRequest) (*CollectResponse, error) {
	if c.token == "" {
		return nil, fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	var resp CollectResponse
	err := c.doRequest(ctx, "POST", "/api/v1/collect", req, &resp, true)
	if err != nil {
		return nil, fmt.Errorf("failed to collect: %w", err)
	}

	return &resp, nil
}

// GetNonce returns the current signing nonce for an address
func (c *Client) GetNonce(ctx context.Context, address string) (*NonceResponse, error) {
	path := fmt.Sprintf("/api/v1/nonce/%s", url.PathEscape(address))

	var resp NonceResponse
	err := c.doRequest(ctx, "GET", path, nil, &resp, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	return &resp, nil
}

// CancelSignatures invalidates all outstanding signatures for the
// authenticated address by bumping its nonce
func (c *Client) CancelSignatures(ctx context.Context) (*CancelSignaturesResponse, error) {
	if c.token == "" {
		return nil, fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	var resp CancelSignaturesResponse
	err := c.doRequest(ctx, "POST", "/api/v1/signatures/cancel", nil, &resp, true)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel signatures: %w", err)
	}

	return &resp, nil
}

// RelaySigned submits a signed meta-transaction to /api/v1/sig/{action}.
// No login token is needed: the embedded signature authorizes the call.
func (c *Client) RelaySigned(ctx context.Context, action string, req interface{}, resp interface{}) error {
	path := fmt.Sprintf("/api/v1/sig/%s", url.PathEscape(action))
	if err := c.doRequest(ctx, "POST", path, req, resp, false); err != nil {
		return fmt.Errorf("failed to relay signed %s: %w", action, err)
	}
	return nil
}

// GetHealth returns the health status of the hub server
func (c *Client) GetHealth(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	err := c.doRequest(ctx, "GET", "/api/v1/health", nil, &resp, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get health status: %w", err)
	}

	return &resp, nil
}

// Admin Methods (require admin token)

// AdminSetState changes the protocol state (admin only)
func (c *Client) AdminSetState(ctx context.Context, state string) error {
	if c.token == "" {
		return fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	req := SetStateRequest{State: state}
	err := c.doRequest(ctx, "POST", "/api/v1/admin/state", req, nil, true)
	if err != nil {
		return fmt.Errorf("failed to set state: %w", err)
	}

	return nil
}

// AdminWhitelist mutates a whitelist entry (admin only)
func (c *Client) AdminWhitelist(ctx context.Context, req WhitelistRequest) error {
	if c.token == "" {
		return fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	err := c.doRequest(ctx, "POST", "/api/v1/admin/whitelist", req, nil, true)
	if err != nil {
		return fmt.Errorf("failed to update whitelist: %w", err)
	}

	return nil
}

// AdminSetGovernance changes the governance address (admin only)
func (c *Client) AdminSetGovernance(ctx context.Context, address string) error {
	if c.token == "" {
		return fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	req := SetAddressRequest{Address: address}
	err := c.doRequest(ctx, "POST", "/api/v1/admin/governance", req, nil, true)
	if err != nil {
		return fmt.Errorf("failed to set governance: %w", err)
	}

	return nil
}

// AdminSetEmergencyAdmin changes the emergency admin address (admin only)
func (c *Client) AdminSetEmergencyAdmin(ctx context.Context, address string) error {
	if c.token == "" {
		return fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	req := SetAddressRequest{Address: address}
	err := c.doRequest(ctx, "POST", "/api/v1/admin/emergency-admin", req, nil, true)
	if err != nil {
		return fmt.Errorf("failed to set emergency admin: %w", err)
	}

	return nil
}

// AdminGetStats returns system statistics (admin only)
func (c *Client) AdminGetStats(ctx context.Context) (*AdminStatsResponse, error) {
	if c.token == "" {
		return nil, fmt.Errorf("client not authenticated - call Authenticate() first")
	}

	var resp AdminStatsResponse
	err := c.doRequest(ctx, "GET", "/api/v1/admin/stats", nil, &resp, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &resp, nil
}

// ReadEvents replays protocol events starting at a given sequence number
func (c *Client) ReadEvents(ctx context.Context, from uint64, limit int) (*ReadEventsResponse, error) {
	queryParams := url.Values{}
	queryParams.Set("from", fmt.Sprintf("%d", from))
	if limit > 0 {
		queryParams.Set("limit", fmt.Sprintf("%d", limit))
	}

	var resp ReadEventsResponse
	err := c.doRequestWithQuery(ctx, "GET", "/api/v1/events", queryParams, nil, &resp, false)
	if err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	return &resp, nil
}

// doRequestWithQuery performs an HTTP request with query parameters and optional authentication
func (c *Client) doRequestWithQuery(ctx context.Context, method, path string, queryParams url.Values, reqBody interface{}, respBody interface{}, requireAuth bool) error {
	// Build full URL with query parameters
	u := &url.URL{Path: path}
	if len(queryParams) > 0 {
		u.RawQuery = queryParams.Encode()
	}
	fullURL := c.baseURL.ResolveReference(u)

	// Prepare request body
	var bodyReader io.Reader
	if reqBody != nil {
		jsonBody, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	// Create request
	req, err := http.NewRequestWithContext(ctx, method, fullURL.String(), bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requireAuth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	// Execute request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Check status code
	if resp.StatusCode >= 400 {
		var errResp ErrorResponse
		if err := json.Unmarshal(bodyBytes, &errResp); err != nil {
			return fmt.Errorf("API error (%d): %s", resp.StatusCode, string(bodyBytes))
		}
		return fmt.Errorf("API error (%d): %s - %s", resp.StatusCode, errResp.Error, errResp.Message)
	}

	// Parse successful response
	if respBody != nil && len(bodyBytes) > 0 {
		if err := json.Unmarshal(bodyBytes, respBody); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// doRequest performs an HTTP request with optional authentication
func (c *Client) doRequest(ctx context.Context, method, path string, reqBody interface{}, respBody interface{}, requireAuth bool) error {
	return c.doRequestWithQuery(ctx, method, path, nil, reqBody, respBody, requireAuth)
}

// IsAuthenticated returns whether the client has a valid token
func (c *Client) IsAuthenticated() bool {
	return c.token != ""
}

// GetToken returns the current authentication token
func (c *Client) GetToken() string {
	return c.token
}

// SetToken sets the authentication token (useful for testing or token reuse)
func (c *Client) SetToken(token string) {
	c.token = token
}

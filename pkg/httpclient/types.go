package httpclient

import "time"

// Config holds client configuration
type Config struct {
	// ServerURL is the base URL of the hub HTTP API (e.g., "http://localhost:8081")
	ServerURL string

	// Address is the wallet address this client acts as
	Address string

	// Timeout for HTTP requests
	Timeout time.Duration

	// MaxRetries for failed requests
	MaxRetries int
}

// SetDefaults sets reasonable default values for the config
func (c *Config) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}

// AuthResponse represents the response from authentication
type AuthResponse struct {
	Token     string    `json:"token"`
	Address   string    `json:"address"`
	Admin     bool      `json:"admin"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SignatureInput carries a signed meta-transaction authorization
type SignatureInput struct {
	Signature string `json:"signature"`
	Deadline  uint64 `json:"deadline"`
}

// CreateProfileRequest represents a profile creation request
type CreateProfileRequest struct {
	To                   string `json:"to"`
	Handle               string `json:"handle"`
	ImageURI             string `json:"imageUri"`
	FollowModule         string `json:"followModule,omitempty"`
	FollowModuleInitData string `json:"followModuleInitData,omitempty"`
	FollowNFTURI         string `json:"followNftUri"`
}

// ProfileResponse represents a profile view
type ProfileResponse struct {
	ProfileID    uint64 `json:"profileId"`
	Handle       string `json:"handle"`
	ImageURI     string `json:"imageUri"`
	FollowNFTURI string `json:"followNftUri"`
	FollowModule string `json:"followModule"`
	PubCount     uint64 `json:"pubCount"`
	Owner        string `json:"owner"`
	Dispatcher   string `json:"dispatcher"`
}

// PublicationResponse represents a publication view
type PublicationResponse struct {
	ProfileID           uint64 `json:"profileId"`
	PubID               uint64 `json:"pubId"`
	Type                string `json:"type"`
	ContentURI          string `json:"contentUri"`
	PointedProfileID    uint64 `json:"pointedProfileId"`
	PointedPubID        uint64 `json:"pointedPubId"`
	CollectModule       string `json:"collectModule"`
	ReferenceModule     string `json:"referenceModule"`
	CollectTokensMinted uint64 `json:"collectTokensMinted"`
}

// PostRequest represents a post creation request
type PostRequest struct {
	ProfileID         uint64 `json:"profileId"`
	ContentURI        string `json:"contentUri"`
	CollectModule     string `json:"collectModule"`
	CollectInitData   string `json:"collectInitData,omitempty"`
	ReferenceModule   string `json:"referenceModule,omitempty"`
	ReferenceInitData string `json:"referenceInitData,omitempty"`
}

// CommentRequest represents a comment creation request
type CommentRequest struct {
	ProfileID         uint64 `json:"profileId"`
	ContentURI        string `json:"contentUri"`
	PointedProfileID  uint64 `json:"pointedProfileId"`
	PointedPubID      uint64 `json:"pointedPubId"`
	ReferenceData     string `json:"referenceData,omitempty"`
	CollectModule     string `json:"collectModule"`
	CollectInitData   string `json:"collectInitData,omitempty"`
	ReferenceModule   string `json:"referenceModule,omitempty"`
	ReferenceInitData string `json:"referenceInitData,omitempty"`
}

// MirrorRequest represents a mirror creation request
type MirrorRequest struct {
	ProfileID         uint64 `json:"profileId"`
	PointedProfileID  uint64 `json:"pointedProfileId"`
	PointedPubID      uint64 `json:"pointedPubId"`
	ReferenceData     string `json:"referenceData,omitempty"`
	ReferenceModule   string `json:"referenceModule,omitempty"`
	ReferenceInitData string `json:"referenceInitData,omitempty"`
}

// PublicationCreatedResponse represents a publication creation response
type PublicationCreatedResponse struct {
	ProfileID uint64 `json:"profileId"`
	PubID     uint64 `json:"pubId"`
}

// SetDispatcherRequest represents a dispatcher change request
type SetDispatcherRequest struct {
	Dispatcher string `json:"dispatcher"`
}

// SetImageURIRequest represents a profile image change request
type SetImageURIRequest struct {
	ImageURI string `json:"imageUri"`
}

// SetFollowNFTURIRequest represents a follow token URI change request
type SetFollowNFTURIRequest struct {
	FollowNFTURI string `json:"followNftUri"`
}

// SetFollowModuleRequest represents a follow module change request
type SetFollowModuleRequest struct {
	FollowModule string `json:"followModule"`
	InitData     string `json:"initData,omitempty"`
}

// TransferRequest represents a profile transfer request
type TransferRequest struct {
	To string `json:"to"`
}

// ApproveRequest represents a profile approval request
type ApproveRequest struct {
	Approved string `json:"approved"`
}

// SetDefaultProfileRequest represents a default profile change request
type SetDefaultProfileRequest struct {
	ProfileID uint64 `json:"profileId"`
}

// FollowRequest represents a follow request
type FollowRequest struct {
	ProfileIDs []uint64 `json:"profileIds"`
	Datas      []string `json:"datas,omitempty"`
}

// FollowResponse represents a follow response
type FollowResponse struct {
	TokenIDs []uint64 `json:"tokenIds"`
}

// CollectRequest represents a collect request
type CollectRequest struct {
	ProfileID uint64 `json:"profileId"`
	PubID     uint64 `json:"pubId"`
	Data      string `json:"data,omitempty"`
}

// CollectResponse represents a collect response
type CollectResponse struct {
	ProfileID uint64 `json:"profileId"`
	PubID     uint64 `json:"pubId"`
	TokenID   uint64 `json:"tokenId"`
}

// NonceResponse reports a signer's current meta-transaction nonce
type NonceResponse struct {
	Address string `json:"address"`
	Nonce   uint64 `json:"nonce"`
}

// CancelSignaturesResponse reports the nonce after cancellation
type CancelSignaturesResponse struct {
	Address  string `json:"address"`
	NewNonce uint64 `json:"newNonce"`
}

// SetStateRequest represents a protocol state change request
type SetStateRequest struct {
	State string `json:"state"`
}

// WhitelistRequest represents a whitelist mutation request
type WhitelistRequest struct {
	Kind        string `json:"kind"`
	Address     string `json:"address"`
	Whitelisted bool   `json:"whitelisted"`
}

// SetAddressRequest carries a single address parameter for the governance
// and emergency-admin endpoints
type SetAddressRequest struct {
	Address string `json:"address"`
}

// AdminStatsResponse represents system statistics
type AdminStatsResponse struct {
	State        string `json:"state"`
	Profiles     int    `json:"profiles"`
	Publications int    `json:"publications"`
	FeedEndSeq   uint64 `json:"feedEndSeq"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Healthy      bool   `json:"healthy"`
	State        string `json:"state"`
	Profiles     int    `json:"profiles"`
	Publications int    `json:"publications"`
	FeedEndSeq   uint64 `json:"feedEndSeq"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// EventStreamMessage represents one protocol event, both in SSE frames and
// in replay responses
type EventStreamMessage struct {
	Seq       uint64      `json:"seq"`
	Name      string      `json:"name"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// ReadEventsResponse represents a page of replayed events
type ReadEventsResponse struct {
	Events   []EventStreamMessage `json:"events"`
	StartSeq uint64               `json:"startSeq"`
	Count    int                  `json:"count"`
}

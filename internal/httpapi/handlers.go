package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"

	"github.com/socialhub/socialhub-go/internal/hubnode"
	"github.com/socialhub/socialhub-go/pkg/hub"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	node    *hubnode.Node
	jwtAuth *JWTAuth
	log     zerolog.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(node *hubnode.Node, jwtAuth *JWTAuth, log zerolog.Logger) *Handlers {
	return &Handlers{
		node:    node,
		jwtAuth: jwtAuth,
		log:     log,
	}
}

// Auth endpoints

// Login handles POST /api/v1/auth/login. The issued token binds the given
// wallet address; admin tokens are only issued to the governance address.
//
// The address is taken at the caller's word: no proof of key ownership is
// required, which suits development and trusted deployments. Callers who
// need cryptographic authorization should use the /api/v1/sig endpoints,
// where the signature itself authorizes each action.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := h.validateJSON(r); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	addr, err := parseAddress(req.Address)
	if err != nil || addr == (common.Address{}) {
		h.writeError(w, "A valid wallet address is required", http.StatusBadRequest)
		return
	}

	isAdmin := addr == h.node.GetGovernance()

	token, expiresAt, err := h.jwtAuth.GenerateToken(addr.Hex(), isAdmin)
	if err != nil {
		h.writeError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	resp := AuthResponse{
		Token:     token,
		Address:   addr.Hex(),
		Admin:     isAdmin,
		ExpiresAt: expiresAt,
	}

	h.writeJSON(w, resp, http.StatusOK)
}

// Profile endpoints

// CreateProfile handles POST /api/v1/profiles
func (h *Handlers) CreateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	if err := h.validateJSON(r); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	to, err := parseAddress(req.To)
	if err != nil {
		h.writeError(w, "Invalid to address", http.StatusBadRequest)
		return
	}
	followModule, err := parseAddress(req.FollowModule)
	if err != nil {
		h.writeError(w, "Invalid follow module address", http.StatusBadRequest)
		return
	}
	initData, err := decodeHex(req.FollowModuleInitData)
	if err != nil {
		h.writeError(w, "Invalid follow module init data", http.StatusBadRequest)
		return
	}

	profileID, err := h.node.CreateProfile(r.Context(), caller, hub.CreateProfileInput{
		To:                   to,
		Handle:               req.Handle,
		ImageURI:             req.ImageURI,
		FollowModule:         followModule,
		FollowModuleInitData: initData,
		FollowNFTURI:         req.FollowNFTURI,
	})
	if err != nil {
		h.writeHubError(w, err)
		return
	}

	h.profileJSON(w, profileID, http.StatusCreated)
}

// GetProfile handles GET /api/v1/profiles/{id}
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request, profileID uint64) {
	h.profileJSON(w, profileID, http.StatusOK)
}

// GetProfileByHandle handles GET /api/v1/profiles/by-handle/{handle}
func (h *Handlers) GetProfileByHandle(w http.ResponseWriter, r *http.Request, handle string) {
	profileID := h.node.GetProfileIDByHandle(handle)
	if profileID == 0 {
		h.writeHubError(w, hub.ErrProfileDoesNotExist)
		return
	}
	h.profileJSON(w, profileID, http.StatusOK)
}

// GetPublication handles GET /api/v1/profiles/{id}/publications/{pubId}
func (h *Handlers) GetPublication(w http.ResponseWriter, r *http.Request, profileID, pubID uint64) {
	pub, err := h.node.GetPublication(profileID, pubID)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, PublicationResponse{
		ProfileID:           profileID,
		PubID:               pubID,
		Type:                h.node.GetPublicationType(profileID, pubID).String(),
		ContentURI:          pub.ContentURI,
		PointedProfileID:    pub.PointedProfileID,
		PointedPubID:        pub.PointedPubID,
		CollectModule:       pub.CollectModule.Hex(),
		ReferenceModule:     pub.ReferenceModule.Hex(),
		CollectTokensMinted: pub.CollectTokensMinted,
	}, http.StatusOK)
}

// SetDispatcher handles POST /api/v1/profiles/{id}/dispatcher
func (h *Handlers) SetDispatcher(w http.ResponseWriter, r *http.Request, profileID uint64) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req SetDispatcherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	dispatcher, err := parseAddress(req.Dispatcher)
	if err != nil {
		h.writeError(w, "Invalid dispatcher address", http.StatusBadRequest)
		return
	}
	if err := h.node.SetDispatcher(r.Context(), caller, profileID, dispatcher); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.profileJSON(w, profileID, http.StatusOK)
}

// SetProfileImageURI handles POST /api/v1/profiles/{id}/image-uri
func (h *Handlers) SetProfileImageURI(w http.ResponseWriter, r *http.Request, profileID uint64) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req SetImageURIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.node.SetProfileImageURI(r.Context(), caller, profileID, req.ImageURI); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.profileJSON(w, profileID, http.StatusOK)
}

// SetFollowNFTURI handles POST /api/v1/profiles/{id}/follow-nft-uri
func (h *Handlers) SetFollowNFTURI(w http.ResponseWriter, r *http.Request, profileID uint64) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req SetFollowNFTURIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.node.SetFollowNFTURI(r.Context(), caller, profileID, req.FollowNFTURI); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.profileJSON(w, profileID, http.StatusOK)
}

// SetFollowModule handles POST /api/v1/profiles/{id}/follow-module
func (h *Handlers) SetFollowModule(w http.ResponseWriter, r *http.Request, profileID uint64) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req SetFollowModuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	module, err := parseAddress(req.FollowModule)
	if err != nil {
		h.writeError(w, "Invalid follow module address", http.StatusBadRequest)
		return
	}
	initData, err := decodeHex(req.InitData)
	if err != nil {
		h.writeError(w, "Invalid init data", http.StatusBadRequest)
		return
	}
	if err := h.node.SetFollowModule(r.Context(), caller, profileID, module, initData); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.profileJSON(w, profileID, http.StatusOK)
}

// SetDefaultProfile handles POST /api/v1/profiles/default
func (h *Handlers) SetDefaultProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req SetDefaultProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.node.SetDefaultProfile(r.Context(), caller, req.ProfileID); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, map[string]uint64{"defaultProfileId": req.ProfileID}, http.StatusOK)
}

// TransferProfile handles POST /api/v1/profiles/{id}/transfer
func (h *Handlers) TransferProfile(w http.ResponseWriter, r *http.Request, profileID uint64) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	to, err := parseAddress(req.To)
	if err != nil || to == (common.Address{}) {
		h.writeError(w, "A valid to address is required", http.StatusBadRequest)
		return
	}
	if err := h.node.TransferProfile(r.Context(), caller, profileID, to); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.profileJSON(w, profileID, http.StatusOK)
}

// ApproveProfile handles POST /api/v1/profiles/{id}/approve
func (h *Handlers) ApproveProfile(w http.ResponseWriter, r *http.Request, profileID uint64) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	approved, err := parseAddress(req.Approved)
	if err != nil {
		h.writeError(w, "Invalid approved address", http.StatusBadRequest)
		return
	}
	if err := h.node.ApproveProfile(r.Context(), caller, profileID, approved); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.profileJSON(w, profileID, http.StatusOK)
}

// BurnProfile handles DELETE /api/v1/profiles/{id}
func (h *Handlers) BurnProfile(w http.ResponseWriter, r *http.Request, profileID uint64) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	if err := h.node.BurnProfile(r.Context(), caller, profileID); err != nil {
		h.writeHubError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Publication endpoints

// Post handles POST /api/v1/publications/post
func (h *Handlers) Post(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	input, err := postInput(req)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	pubID, err := h.node.Post(r.Context(), caller, input)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, PublicationCreatedResponse{ProfileID: req.ProfileID, PubID: pubID}, http.StatusCreated)
}

// Comment handles POST /api/v1/publications/comment
func (h *Handlers) Comment(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	input, err := commentInput(req)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	pubID, err := h.node.Comment(r.Context(), caller, input)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, PublicationCreatedResponse{ProfileID: req.ProfileID, PubID: pubID}, http.StatusCreated)
}

// Mirror handles POST /api/v1/publications/mirror
func (h *Handlers) Mirror(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req MirrorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	input, err := mirrorInput(req)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	pubID, err := h.node.Mirror(r.Context(), caller, input)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, PublicationCreatedResponse{ProfileID: req.ProfileID, PubID: pubID}, http.StatusCreated)
}

// Interaction endpoints

// Follow handles POST /api/v1/follow
func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	datas, err := decodeHexSlice(req.Datas, len(req.ProfileIDs))
	if err != nil {
		h.writeError(w, "Invalid module data", http.StatusBadRequest)
		return
	}
	tokenIDs, err := h.node.Follow(r.Context(), caller, req.ProfileIDs, datas)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, FollowResponse{TokenIDs: tokenIDs}, http.StatusOK)
}

// Collect handles POST /api/v1/collect
func (h *Handlers) Collect(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req CollectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	data, err := decodeHex(req.Data)
	if err != nil {
		h.writeError(w, "Invalid module data", http.StatusBadRequest)
		return
	}
	tokenID, err := h.node.Collect(r.Context(), caller, req.ProfileID, req.PubID, data)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, CollectResponse{ProfileID: req.ProfileID, PubID: req.PubID, TokenID: tokenID}, http.StatusOK)
}

// Signature maintenance endpoints

// GetNonce handles GET /api/v1/nonce/{address}
func (h *Handlers) GetNonce(w http.ResponseWriter, r *http.Request, address string) {
	addr, err := parseAddress(address)
	if err != nil {
		h.writeError(w, "Invalid address", http.StatusBadRequest)
		return
	}
	h.writeJSON(w, NonceResponse{Address: addr.Hex(), Nonce: h.node.GetNonce(addr)}, http.StatusOK)
}

// CancelSignatures handles POST /api/v1/signatures/cancel
func (h *Handlers) CancelSignatures(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	newNonce, err := h.node.CancelAllSignatures(r.Context(), caller)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, CancelSignaturesResponse{Address: caller.Hex(), NewNonce: newNonce}, http.StatusOK)
}

// Admin endpoints

// AdminSetState handles POST /api/v1/admin/state
func (h *Handlers) AdminSetState(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req SetStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	newState, err := parseState(req.State)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.node.SetState(r.Context(), caller, newState); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, map[string]string{"state": newState.String()}, http.StatusOK)
}

// AdminWhitelist handles POST /api/v1/admin/whitelist
func (h *Handlers) AdminWhitelist(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req WhitelistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	kind, err := parseWhitelistKind(req.Kind)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	addr, err := parseAddress(req.Address)
	if err != nil || addr == (common.Address{}) {
		h.writeError(w, "A valid address is required", http.StatusBadRequest)
		return
	}
	if err := h.node.Whitelist(r.Context(), caller, kind, addr, req.Whitelisted); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, map[string]bool{"whitelisted": req.Whitelisted}, http.StatusOK)
}

// AdminSetGovernance handles POST /api/v1/admin/governance
func (h *Handlers) AdminSetGovernance(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req SetAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	addr, err := parseAddress(req.Address)
	if err != nil || addr == (common.Address{}) {
		h.writeError(w, "A valid address is required", http.StatusBadRequest)
		return
	}
	if err := h.node.SetGovernance(r.Context(), caller, addr); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, map[string]string{"governance": addr.Hex()}, http.StatusOK)
}

// AdminSetEmergencyAdmin handles POST /api/v1/admin/emergency-admin
func (h *Handlers) AdminSetEmergencyAdmin(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	var req SetAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	addr, err := parseAddress(req.Address)
	if err != nil {
		h.writeError(w, "Invalid address", http.StatusBadRequest)
		return
	}
	if err := h.node.SetEmergencyAdmin(r.Context(), caller, addr); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, map[string]string{"emergencyAdmin": addr.Hex()}, http.StatusOK)
}

// AdminGetStats handles GET /api/v1/admin/stats
func (h *Handlers) AdminGetStats(w http.ResponseWriter, r *http.Request) {
	health, err := h.node.GetHealth(r.Context())
	if err != nil {
		h.writeError(w, "Failed to collect stats", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, AdminStatsResponse{
		State:        health.State.String(),
		Profiles:     health.Profiles,
		Publications: health.Publications,
		FeedEndSeq:   health.FeedEndSeq,
	}, http.StatusOK)
}

// Health endpoint

// Health handles GET /api/v1/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	health, err := h.node.GetHealth(r.Context())
	if err != nil {
		h.writeError(w, "Failed to get health status", http.StatusInternalServerError)
		return
	}

	resp := HealthResponse{
		Healthy:      health.Healthy,
		State:        health.State.String(),
		Profiles:     health.Profiles,
		Publications: health.Publications,
		FeedEndSeq:   health.FeedEndSeq,
	}

	statusCode := http.StatusOK
	if !health.Healthy {
		statusCode = http.StatusServiceUnavailable
	}

	h.writeJSON(w, resp, statusCode)
}

// Helper methods

// caller resolves the authenticated wallet address from the request context.
func (h *Handlers) caller(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	address := GetAddress(r)
	if address == "" {
		h.writeError(w, "Authentication required", http.StatusUnauthorized)
		return common.Address{}, false
	}
	addr, err := parseAddress(address)
	if err != nil {
		h.writeError(w, "Invalid authenticated address", http.StatusUnauthorized)
		return common.Address{}, false
	}
	return addr, true
}

// profileJSON writes the current view of a profile.
func (h *Handlers) profileJSON(w http.ResponseWriter, profileID uint64, statusCode int) {
	profile, err := h.node.GetProfile(profileID)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	owner := common.Address{}
	if o, err := h.node.OwnerOf(profileID); err == nil {
		owner = o
	}
	dispatcher := common.Address{}
	if d, err := h.node.GetDispatcher(profileID); err == nil {
		dispatcher = d
	}
	h.writeJSON(w, ProfileResponse{
		ProfileID:    profileID,
		Handle:       profile.Handle,
		ImageURI:     profile.ImageURI,
		FollowNFTURI: profile.FollowNFTURI,
		FollowModule: profile.FollowModule.Hex(),
		PubCount:     profile.PubCount,
		Owner:        owner.Hex(),
		Dispatcher:   dispatcher.Hex(),
	}, statusCode)
}

// writeHubError maps protocol errors onto HTTP status codes.
func (h *Handlers) writeHubError(w http.ResponseWriter, err error) {
	h.writeError(w, err.Error(), statusForError(err))
}

// statusForError maps a hub error to its HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, hub.ErrProfileDoesNotExist),
		errors.Is(err, hub.ErrPublicationDoesNotExist):
		return http.StatusNotFound
	case errors.Is(err, hub.ErrHandleTaken):
		return http.StatusConflict
	case errors.Is(err, hub.ErrHandleLengthInvalid),
		errors.Is(err, hub.ErrHandleContainsInvalidCharacters),
		errors.Is(err, hub.ErrMintToZeroAddress),
		errors.Is(err, hub.ErrProfileImageURILengthInvalid),
		errors.Is(err, hub.ErrArrayLengthMismatch),
		errors.Is(err, hub.ErrCannotCommentOnSelf),
		errors.Is(err, hub.ErrModuleNotRegistered),
		errors.Is(err, hub.ErrUnknownWhitelistKind):
		return http.StatusBadRequest
	case errors.Is(err, hub.ErrSignatureInvalid),
		errors.Is(err, hub.ErrSignatureExpired):
		return http.StatusUnauthorized
	case errors.Is(err, hub.ErrNotGovernance),
		errors.Is(err, hub.ErrNotGovernanceOrEmergencyAdmin),
		errors.Is(err, hub.ErrNotProfileOwner),
		errors.Is(err, hub.ErrNotProfileOwnerOrDispatcher),
		errors.Is(err, hub.ErrNotOwnerOrApproved),
		errors.Is(err, hub.ErrEmergencyAdminCannotUnpause),
		errors.Is(err, hub.ErrProfileCreatorNotWhitelisted),
		errors.Is(err, hub.ErrFollowModuleNotWhitelisted),
		errors.Is(err, hub.ErrReferenceModuleNotWhitelisted),
		errors.Is(err, hub.ErrCollectModuleNotWhitelisted):
		return http.StatusForbidden
	case errors.Is(err, hub.ErrPaused),
		errors.Is(err, hub.ErrPublishingPaused):
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes an error response as JSON
func (h *Handlers) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response
func (h *Handlers) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// validateJSON validates that the request has valid JSON content-type
func (h *Handlers) validateJSON(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if contentType != "application/json" {
		return fmt.Errorf("Content-Type must be application/json")
	}
	return nil
}

// Input conversion helpers

func postInput(req PostRequest) (hub.PostInput, error) {
	collectModule, err := parseAddress(req.CollectModule)
	if err != nil {
		return hub.PostInput{}, fmt.Errorf("invalid collect module address")
	}
	referenceModule, err := parseAddress(req.ReferenceModule)
	if err != nil {
		return hub.PostInput{}, fmt.Errorf("invalid reference module address")
	}
	collectInit, err := decodeHex(req.CollectInitData)
	if err != nil {
		return hub.PostInput{}, fmt.Errorf("invalid collect init data")
	}
	referenceInit, err := decodeHex(req.ReferenceInitData)
	if err != nil {
		return hub.PostInput{}, fmt.Errorf("invalid reference init data")
	}
	return hub.PostInput{
		ProfileID:         req.ProfileID,
		ContentURI:        req.ContentURI,
		CollectModule:     collectModule,
		CollectInitData:   collectInit,
		ReferenceModule:   referenceModule,
		ReferenceInitData: referenceInit,
	}, nil
}

func commentInput(req CommentRequest) (hub.CommentInput, error) {
	collectModule, err := parseAddress(req.CollectModule)
	if err != nil {
		return hub.CommentInput{}, fmt.Errorf("invalid collect module address")
	}
	referenceModule, err := parseAddress(req.ReferenceModule)
	if err != nil {
		return hub.CommentInput{}, fmt.Errorf("invalid reference module address")
	}
	collectInit, err := decodeHex(req.CollectInitData)
	if err != nil {
		return hub.CommentInput{}, fmt.Errorf("invalid collect init data")
	}
	referenceInit, err := decodeHex(req.ReferenceInitData)
	if err != nil {
		return hub.CommentInput{}, fmt.Errorf("invalid reference init data")
	}
	referenceData, err := decodeHex(req.ReferenceData)
	if err != nil {
		return hub.CommentInput{}, fmt.Errorf("invalid reference data")
	}
	return hub.CommentInput{
		ProfileID:         req.ProfileID,
		ContentURI:        req.ContentURI,
		PointedProfileID:  req.PointedProfileID,
		PointedPubID:      req.PointedPubID,
		ReferenceData:     referenceData,
		CollectModule:     collectModule,
		CollectInitData:   collectInit,
		ReferenceModule:   referenceModule,
		ReferenceInitData: referenceInit,
	}, nil
}

func mirrorInput(req MirrorRequest) (hub.MirrorInput, error) {
	referenceModule, err := parseAddress(req.ReferenceModule)
	if err != nil {
		return hub.MirrorInput{}, fmt.Errorf("invalid reference module address")
	}
	referenceInit, err := decodeHex(req.ReferenceInitData)
	if err != nil {
		return hub.MirrorInput{}, fmt.Errorf("invalid reference init data")
	}
	referenceData, err := decodeHex(req.ReferenceData)
	if err != nil {
		return hub.MirrorInput{}, fmt.Errorf("invalid reference data")
	}
	return hub.MirrorInput{
		ProfileID:         req.ProfileID,
		PointedProfileID:  req.PointedProfileID,
		PointedPubID:      req.PointedPubID,
		ReferenceData:     referenceData,
		ReferenceModule:   referenceModule,
		ReferenceInitData: referenceInit,
	}, nil
}

// Parsing helpers

// parseAddress parses a hex address. The empty string is the zero address.
func parseAddress(s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address: %s", s)
	}
	return common.HexToAddress(s), nil
}

// decodeHex decodes optional hex-encoded bytes; the empty string is nil.
func decodeHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

// decodeHexSlice decodes a slice of optional hex strings, padding with nils
// up to n entries when the slice is shorter.
func decodeHexSlice(ss []string, n int) ([][]byte, error) {
	out := make([][]byte, 0, n)
	for _, s := range ss {
		b, err := decodeHex(s)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	for len(out) < n {
		out = append(out, nil)
	}
	return out, nil
}

// parseState parses a protocol state name.
func parseState(s string) (hub.ProtocolState, error) {
	switch strings.ToLower(s) {
	case "unpaused":
		return hub.Unpaused, nil
	case "publishingpaused", "publishing-paused":
		return hub.PublishingPaused, nil
	case "paused":
		return hub.Paused, nil
	default:
		return 0, fmt.Errorf("unknown protocol state: %s", s)
	}
}

// parseWhitelistKind parses a whitelist kind name.
func parseWhitelistKind(s string) (hub.WhitelistKind, error) {
	switch strings.ToLower(s) {
	case "profile-creator", "profilecreator":
		return hub.ProfileCreatorWhitelist, nil
	case "follow-module", "followmodule":
		return hub.FollowModuleWhitelist, nil
	case "reference-module", "referencemodule":
		return hub.ReferenceModuleWhitelist, nil
	case "collect-module", "collectmodule":
		return hub.CollectModuleWhitelist, nil
	default:
		return 0, fmt.Errorf("unknown whitelist kind: %s", s)
	}
}

package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/socialhub/socialhub-go/pkg/hub"
)

// Relayer endpoints. These accept signed meta-transactions and require no
// login token: the signature itself is the authorization, so anyone may
// submit on a signer's behalf.

// SigPostRequest is PostRequest plus a signature.
type SigPostRequest struct {
	PostRequest
	Sig SignatureInput `json:"sig"`
}

// SigCommentRequest is CommentRequest plus a signature.
type SigCommentRequest struct {
	CommentRequest
	Sig SignatureInput `json:"sig"`
}

// SigMirrorRequest is MirrorRequest plus a signature.
type SigMirrorRequest struct {
	MirrorRequest
	Sig SignatureInput `json:"sig"`
}

// SigFollowRequest is FollowRequest plus the follower and a signature.
type SigFollowRequest struct {
	Follower string `json:"follower"`
	FollowRequest
	Sig SignatureInput `json:"sig"`
}

// SigCollectRequest is CollectRequest plus the collector and a signature.
type SigCollectRequest struct {
	Collector string `json:"collector"`
	CollectRequest
	Sig SignatureInput `json:"sig"`
}

// SigBurnRequest authorizes a profile burn by signature.
type SigBurnRequest struct {
	ProfileID uint64         `json:"profileId"`
	Sig       SignatureInput `json:"sig"`
}

// SigSetDispatcherRequest authorizes a dispatcher change by signature.
type SigSetDispatcherRequest struct {
	ProfileID  uint64         `json:"profileId"`
	Dispatcher string         `json:"dispatcher"`
	Sig        SignatureInput `json:"sig"`
}

// SigSetFollowModuleRequest authorizes a follow module change by signature.
type SigSetFollowModuleRequest struct {
	ProfileID    uint64         `json:"profileId"`
	FollowModule string         `json:"followModule"`
	InitData     string         `json:"initData,omitempty"`
	Sig          SignatureInput `json:"sig"`
}

// SigSetImageURIRequest authorizes a profile image change by signature.
type SigSetImageURIRequest struct {
	ProfileID uint64         `json:"profileId"`
	ImageURI  string         `json:"imageUri"`
	Sig       SignatureInput `json:"sig"`
}

// SigSetFollowNFTURIRequest authorizes a follow token URI change by signature.
type SigSetFollowNFTURIRequest struct {
	ProfileID    uint64         `json:"profileId"`
	FollowNFTURI string         `json:"followNftUri"`
	Sig          SignatureInput `json:"sig"`
}

// SigSetDefaultProfileRequest authorizes a default profile change by signature.
type SigSetDefaultProfileRequest struct {
	Wallet    string         `json:"wallet"`
	ProfileID uint64         `json:"profileId"`
	Sig       SignatureInput `json:"sig"`
}

// parseSig decodes a SignatureInput into the hub's signature bundle.
func parseSig(in SignatureInput) (hub.Signature, error) {
	raw, err := decodeHex(in.Signature)
	if err != nil {
		return hub.Signature{}, fmt.Errorf("invalid signature encoding")
	}
	if len(raw) != 65 {
		return hub.Signature{}, fmt.Errorf("signature must be 65 bytes")
	}
	return hub.Signature{Bytes: raw, Deadline: in.Deadline}, nil
}

// SigPost handles POST /api/v1/sig/post
func (h *Handlers) SigPost(w http.ResponseWriter, r *http.Request) {
	var req SigPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	input, err := postInput(req.PostRequest)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	sig, err := parseSig(req.Sig)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	pubID, err := h.node.PostWithSig(r.Context(), input, sig)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, PublicationCreatedResponse{ProfileID: req.ProfileID, PubID: pubID}, http.StatusCreated)
}

// SigComment handles POST /api/v1/sig/comment
func (h *Handlers) SigComment(w http.ResponseWriter, r *http.Request) {
	var req SigCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	input, err := commentInput(req.CommentRequest)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	sig, err := parseSig(req.Sig)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	pubID, err := h.node.CommentWithSig(r.Context(), input, sig)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, PublicationCreatedResponse{ProfileID: req.ProfileID, PubID: pubID}, http.StatusCreated)
}

// SigMirror handles POST /api/v1/sig/mirror
func (h *Handlers) SigMirror(w http.ResponseWriter, r *http.Request) {
	var req SigMirrorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	input, err := mirrorInput(req.MirrorRequest)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	sig, err := parseSig(req.Sig)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	pubID, err := h.node.MirrorWithSig(r.Context(), input, sig)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, PublicationCreatedResponse{ProfileID: req.ProfileID, PubID: pubID}, http.StatusCreated)
}

// SigFollow handles POST /api/v1/sig/follow
func (h *Handlers) SigFollow(w http.ResponseWriter, r *http.Request) {
	var req SigFollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	follower, err := parseAddress(req.Follower)
	if err != nil || follower == (common.Address{}) {
		h.writeError(w, "A valid follower address is required", http.StatusBadRequest)
		return
	}
	datas, err := decodeHexSlice(req.Datas, len(req.ProfileIDs))
	if err != nil {
		h.writeError(w, "Invalid module data", http.StatusBadRequest)
		return
	}
	sig, err := parseSig(req.Sig)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	tokenIDs, err := h.node.FollowWithSig(r.Context(), follower, req.ProfileIDs, datas, sig)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, FollowResponse{TokenIDs: tokenIDs}, http.StatusOK)
}

// SigCollect handles POST /api/v1/sig/collect
func (h *Handlers) SigCollect(w http.ResponseWriter, r *http.Request) {
	var req SigCollectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	collector, err := parseAddress(req.Collector)
	if err != nil || collector == (common.Address{}) {
		h.writeError(w, "A valid collector address is required", http.StatusBadRequest)
		return
	}
	data, err := decodeHex(req.Data)
	if err != nil {
		h.writeError(w, "Invalid module data", http.StatusBadRequest)
		return
	}
	sig, err := parseSig(req.Sig)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	tokenID, err := h.node.CollectWithSig(r.Context(), collector, req.ProfileID, req.PubID, data, sig)
	if err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, CollectResponse{ProfileID: req.ProfileID, PubID: req.PubID, TokenID: tokenID}, http.StatusOK)
}

// SigBurn handles POST /api/v1/sig/burn
func (h *Handlers) SigBurn(w http.ResponseWriter, r *http.Request) {
	var req SigBurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sig, err := parseSig(req.Sig)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.node.BurnProfileWithSig(r.Context(), req.ProfileID, sig); err != nil {
		h.writeHubError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SigSetDispatcher handles POST /api/v1/sig/set-dispatcher
func (h *Handlers) SigSetDispatcher(w http.ResponseWriter, r *http.Request) {
	var req SigSetDispatcherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	dispatcher, err := parseAddress(req.Dispatcher)
	if err != nil {
		h.writeError(w, "Invalid dispatcher address", http.StatusBadRequest)
		return
	}
	sig, err := parseSig(req.Sig)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.node.SetDispatcherWithSig(r.Context(), req.ProfileID, dispatcher, sig); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.profileJSON(w, req.ProfileID, http.StatusOK)
}

// SigSetFollowModule handles POST /api/v1/sig/set-follow-module
func (h *Handlers) SigSetFollowModule(w http.ResponseWriter, r *http.Request) {
	var req SigSetFollowModuleRequest
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
	sig, err := parseSig(req.Sig)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.node.SetFollowModuleWithSig(r.Context(), req.ProfileID, module, initData, sig); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.profileJSON(w, req.ProfileID, http.StatusOK)
}

// SigSetProfileImageURI handles POST /api/v1/sig/set-profile-image-uri
func (h *Handlers) SigSetProfileImageURI(w http.ResponseWriter, r *http.Request) {
	var req SigSetImageURIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sig, err := parseSig(req.Sig)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.node.SetProfileImageURIWithSig(r.Context(), req.ProfileID, req.ImageURI, sig); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.profileJSON(w, req.ProfileID, http.StatusOK)
}

// SigSetFollowNFTURI handles POST /api/v1/sig/set-follow-nft-uri
func (h *Handlers) SigSetFollowNFTURI(w http.ResponseWriter, r *http.Request) {
	var req SigSetFollowNFTURIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sig, err := parseSig(req.Sig)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.node.SetFollowNFTURIWithSig(r.Context(), req.ProfileID, req.FollowNFTURI, sig); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.profileJSON(w, req.ProfileID, http.StatusOK)
}

// SigSetDefaultProfile handles POST /api/v1/sig/set-default-profile
func (h *Handlers) SigSetDefaultProfile(w http.ResponseWriter, r *http.Request) {
	var req SigSetDefaultProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	wallet, err := parseAddress(req.Wallet)
	if err != nil || wallet == (common.Address{}) {
		h.writeError(w, "A valid wallet address is required", http.StatusBadRequest)
		return
	}
	sig, err := parseSig(req.Sig)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.node.SetDefaultProfileWithSig(r.Context(), wallet, req.ProfileID, sig); err != nil {
		h.writeHubError(w, err)
		return
	}
	h.writeJSON(w, map[string]uint64{"defaultProfileId": req.ProfileID}, http.StatusOK)
}

// Package hub defines the public surface of the SocialHub protocol: the Hub
// interface, the profile and publication data model, the protocol state and
// pause gates, the canonical event payloads consumed by off-chain indexers,
// and the error taxonomy shared by every component.
//
// The Hub is the system of record. It owns all canonical storage (profiles,
// publications, whitelists, nonces) and composes the publishing, interaction,
// state-machine and signature-authorization logic behind a single facade.
// Policy decisions (who may follow, who may collect, how comments and mirrors
// reference their target) are delegated to pluggable modules; see the modules
// package for their call contract.
//
// Design notes carried throughout the implementation:
//   - context.Context on every mutating operation for cancellation
//   - explicit error returns with sentinel errors callers can branch on
//   - addresses are 20-byte go-ethereum common.Address values; the zero
//     address consistently means "none"
//   - every mutating entrypoint is atomic: it either fully applies and emits
//     its events, or leaves no trace (the meta-transaction nonce is the one
//     documented exception, see the sigauth package)
package hub

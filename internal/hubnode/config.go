package hubnode

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

var (
	// ErrZeroHubAddress is returned when the hub address is unset
	ErrZeroHubAddress = errors.New("hub address cannot be the zero address")
	// ErrZeroGovernance is returned when the governance address is unset
	ErrZeroGovernance = errors.New("governance address cannot be the zero address")
	// ErrEmptySignerDomain is returned when the signing domain name is empty
	ErrEmptySignerDomain = errors.New("signer domain name cannot be empty")
)

// Default signing-domain parameters bound into every typed digest.
const (
	DefaultSignerDomainName    = "Social Hub"
	DefaultSignerDomainVersion = "1"
)

// Config represents configuration for a hub Node.
type Config struct {
	// HubAddress identifies this hub deployment. It is bound into the
	// signing domain and passed to module hooks as their sender.
	HubAddress common.Address

	// Governance is the initial governance address. The ledger starts in
	// the Paused state; governance unpauses after deployment wiring.
	Governance common.Address

	// ChainID distinguishes deployments in the signing domain.
	ChainID uint64

	// SignerDomainName and SignerDomainVersion parameterize the typed-data
	// signing domain.
	SignerDomainName    string
	SignerDomainVersion string

	// Logger is the structured logger used by the node. The zero value
	// discards nothing; pass zerolog.Nop() to silence.
	Logger zerolog.Logger

	// Registerer receives the node's metrics. Nil disables metrics.
	Registerer prometheus.Registerer
}

// NewConfig creates a hub configuration with safe defaults.
func NewConfig(hubAddress, governance common.Address, chainID uint64) *Config {
	return &Config{
		HubAddress:          hubAddress,
		Governance:          governance,
		ChainID:             chainID,
		SignerDomainName:    DefaultSignerDomainName,
		SignerDomainVersion: DefaultSignerDomainVersion,
		Logger:              zerolog.Nop(),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.HubAddress == (common.Address{}) {
		return ErrZeroHubAddress
	}
	if c.Governance == (common.Address{}) {
		return ErrZeroGovernance
	}
	if c.SignerDomainName == "" {
		return ErrEmptySignerDomain
	}
	return nil
}

// WithLogger sets the node logger.
func (c *Config) WithLogger(log zerolog.Logger) *Config {
	c.Logger = log
	return c
}

// WithRegisterer sets the metrics registerer.
func (c *Config) WithRegisterer(reg prometheus.Registerer) *Config {
	c.Registerer = reg
	return c
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/socialhub/socialhub-go/internal/httpapi"
	"github.com/socialhub/socialhub-go/internal/hubnode"
	internalmodules "github.com/socialhub/socialhub-go/internal/modules"
	"github.com/socialhub/socialhub-go/pkg/hub"
)

const (
	// Application info
	appName    = "SocialHub"
	appVersion = "0.1.0"
)

// Well-known addresses for the built-in modules. Deployments that bring
// their own modules register them on the node's registry instead.
var (
	freeCollectAddr     = common.HexToAddress("0x0000000000000000000000000000000000000C01")
	revertCollectAddr   = common.HexToAddress("0x0000000000000000000000000000000000000C02")
	followerOnlyRefAddr = common.HexToAddress("0x0000000000000000000000000000000000000E01")
	approvalFollowAddr  = common.HexToAddress("0x0000000000000000000000000000000000000F01")
)

func main() {
	// Pick up .env overrides before reading flag defaults
	_ = godotenv.Load()

	var (
		port        = flag.String("port", envOr("PORT", "8081"), "HTTP API listen port")
		hubAddr     = flag.String("hub-address", envOr("HUB_ADDRESS", "0x00000000000000000000000000000000000Ab1e5"), "Hub deployment address (bound into the signing domain)")
		governance  = flag.String("governance", envOr("GOVERNANCE_ADDRESS", ""), "Governance address (required)")
		chainID     = flag.Uint64("chain-id", envUint("CHAIN_ID", 1), "Chain ID for the signing domain")
		secretKey   = flag.String("jwt-secret", envOr("JWT_SECRET", ""), "JWT secret key for API authentication")
		logLevel    = flag.String("log-level", envOr("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
		bootstrap   = flag.Bool("bootstrap", true, "Whitelist built-in modules and unpause on startup")
		showVersion = flag.Bool("version", false, "Show version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", appName, appVersion)
		os.Exit(0)
	}

	log := newLogger(*logLevel)

	if !common.IsHexAddress(*governance) {
		log.Fatal().Str("governance", *governance).Msg("a valid governance address is required")
	}
	if !common.IsHexAddress(*hubAddr) {
		log.Fatal().Str("hub-address", *hubAddr).Msg("invalid hub address")
	}

	log.Info().Str("version", appVersion).Msg("starting " + appName)
	log.Info().
		Str("port", *port).
		Str("hub", *hubAddr).
		Str("governance", *governance).
		Uint64("chainId", *chainID).
		Msg("configuration loaded")

	// Create hub node
	config := hubnode.NewConfig(common.HexToAddress(*hubAddr), common.HexToAddress(*governance), *chainID).
		WithLogger(log).
		WithRegisterer(prometheus.DefaultRegisterer)

	node, err := hubnode.NewNode(config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create hub node")
	}
	defer func() {
		if err := node.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing node")
		}
	}()

	registerBuiltinModules(node)

	if *bootstrap {
		if err := bootstrapProtocol(node, common.HexToAddress(*governance)); err != nil {
			log.Fatal().Err(err).Msg("bootstrap failed")
		}
		log.Info().Msg("built-in modules whitelisted, protocol unpaused")
	}

	// Create HTTP API server
	server := httpapi.NewServer(node, httpapi.Config{
		Port:      *port,
		SecretKey: *secretKey,
		Logger:    log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ":"+*port).Msg("HTTP API listening")
		errCh <- server.Start()
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		log.Error().Err(err).Msg("server stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("error during graceful stop")
	}

	log.Info().Msg(appName + " stopped")
}

// registerBuiltinModules binds the built-in module implementations to their
// well-known addresses. The node itself serves as the modules' hub view.
func registerBuiltinModules(node *hubnode.Node) {
	registry := node.Registry()
	hubAddr := node.HubAddress()

	registry.RegisterCollectModule(freeCollectAddr, internalmodules.NewFreeCollectModule(hubAddr, node))
	registry.RegisterCollectModule(revertCollectAddr, internalmodules.NewRevertCollectModule(hubAddr))
	registry.RegisterReferenceModule(followerOnlyRefAddr, internalmodules.NewFollowerOnlyReferenceModule(hubAddr, node))
	registry.RegisterFollowModule(approvalFollowAddr, internalmodules.NewApprovalFollowModule(hubAddr, node))
}

// bootstrapProtocol whitelists the built-in modules, whitelists governance as
// a profile creator, and unpauses the protocol.
func bootstrapProtocol(node *hubnode.Node, governance common.Address) error {
	ctx := context.Background()

	whitelists := []struct {
		kind hub.WhitelistKind
		addr common.Address
	}{
		{hub.CollectModuleWhitelist, freeCollectAddr},
		{hub.CollectModuleWhitelist, revertCollectAddr},
		{hub.ReferenceModuleWhitelist, followerOnlyRefAddr},
		{hub.FollowModuleWhitelist, approvalFollowAddr},
		{hub.ProfileCreatorWhitelist, governance},
	}
	for _, w := range whitelists {
		if err := node.Whitelist(ctx, governance, w.kind, w.addr, true); err != nil {
			return fmt.Errorf("whitelist %s %s: %w", w.kind, w.addr.Hex(), err)
		}
	}

	if err := node.SetState(ctx, governance, hub.Unpaused); err != nil {
		return fmt.Errorf("unpause: %w", err)
	}
	return nil
}

// newLogger builds a console logger at the requested level.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

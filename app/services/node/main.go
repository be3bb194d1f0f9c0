package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/ledger/app/services/node/handlers"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/ledger/genesis"
	"github.com/ardanlabs/ledger/foundation/ledger/peer"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/ardanlabs/ledger/foundation/ledger/worker"
	"github.com/ardanlabs/ledger/foundation/logger"
	"github.com/ardanlabs/ledger/foundation/nodenet"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("NODE")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			PublicHost      string        `conf:"default:0.0.0.0:8080"`
			PrivateHost     string        `conf:"default:0.0.0.0:9080"`
		}
		Node struct {
			GenesisPath string        `conf:"default:zblock/genesis.json"`
			KnownPeers  []string      `conf:"default:0.0.0.0:9080;0.0.0.0:9180"`
			PeerTimeout time.Duration `conf:"default:10s"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "NODE"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Ledger Support

	// Load the genesis configuration that pins the chain id and the
	// proof-of-work difficulty for this network.
	gen, err := genesis.Load(cfg.Node.GenesisPath)
	if err != nil {
		return fmt.Errorf("unable to load genesis: %w", err)
	}

	// A peer set is a collection of known nodes in the network so
	// transactions can be shared and chains compared.
	peerSet := peer.NewPeerSet()
	for _, host := range cfg.Node.KnownPeers {
		pr, err := peer.New(host)
		if err != nil {
			return fmt.Errorf("invalid known peer %q: %w", host, err)
		}
		peerSet.Add(pr)
	}

	// The client for talking to peer nodes. Its FetchChain call is the
	// collaborator the consensus resolver depends on.
	client := nodenet.New(cfg.Node.PeerTimeout)

	// The ledger packages accept a function of this signature to allow the
	// application to log. These raw messages are also sent to any websocket
	// client connected through the events package.
	evts := events.New()
	defer evts.Shutdown()

	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
		evts.Send(s)
	}

	// The state value represents the ledger node. It owns the chain and the
	// mempool and provides the API for application support.
	st, err := state.New(state.Config{
		Host:       cfg.Web.PrivateHost,
		Genesis:    gen,
		KnownPeers: peerSet,
		Fetcher:    client.FetchChain,
		EvHandler:  ev,
	})
	if err != nil {
		return err
	}
	defer st.Shutdown()

	// The worker package implements the different workflows such as mining,
	// consensus resolution, and transaction sharing. The worker will
	// register itself with the state.
	worker.Run(st, client, ev)

	// Announce this node to the configured peers so they add us to their
	// registries. A peer that is down just misses the announcement.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Node.PeerTimeout)
		defer cancel()

		for _, pr := range st.RetrieveKnownPeers() {
			if err := client.RegisterSelf(ctx, pr, cfg.Web.PrivateHost); err != nil {
				log.Infow("startup", "status", "peer announcement failed", "peer", pr.Host, "ERROR", err)
			}
		}
	}()

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug router started", "host", cfg.Web.DebugHost)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, handlers.DebugMux(build, log)); err != nil {
			log.Errorw("shutdown", "status", "debug router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 2)

	// =========================================================================
	// Start Public Service

	log.Infow("startup", "status", "initializing public API support")

	publicMux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		State:    st,
		Evts:     evts,
	})

	public := http.Server{
		Addr:         cfg.Web.PublicHost,
		Handler:      publicMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
	}

	go func() {
		log.Infow("startup", "status", "public api router started", "host", public.Addr)
		serverErrors <- public.ListenAndServe()
	}()

	// =========================================================================
	// Start Private Service

	log.Infow("startup", "status", "initializing private API support")

	privateMux := handlers.PrivateMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		State:    st,
	})

	private := http.Server{
		Addr:         cfg.Web.PrivateHost,
		Handler:      privateMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
	}

	go func() {
		log.Infow("startup", "status", "private api router started", "host", private.Addr)
		serverErrors <- private.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listeners to shut down and shed load.
		if err := public.Shutdown(ctx); err != nil {
			public.Close()
			return fmt.Errorf("could not stop public server gracefully: %w", err)
		}

		if err := private.Shutdown(ctx); err != nil {
			private.Close()
			return fmt.Errorf("could not stop private server gracefully: %w", err)
		}
	}

	return nil
}

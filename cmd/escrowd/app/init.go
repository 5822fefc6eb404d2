package escrowd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/coin"
	"github.com/iov-one/nftescrow/commands/server"
	"github.com/iov-one/nftescrow/crypto"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/x/cash"
	"github.com/iov-one/nftescrow/x/escrow"
	"github.com/iov-one/nftescrow/x/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const initialBalance = 123456789

// GenInitOptions will produce the app state for one rich account that also
// owns the escrow configuration and administers schema upgrades, to use for
// dev mode.
//
// Optional arguments are the payment denomination and the hex encoded
// owner address. Without an address a new key is generated and its private
// part printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	denom := "IOV"
	if len(args) > 0 {
		denom = args[0]
		if !coin.IsDenom(denom) {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid denomination %s", denom)
		}
	}

	var addr nftescrow.Address
	if len(args) > 1 {
		var err error
		addr, err = nftescrow.ParseAddress(args[1])
		if err != nil {
			return nil, err
		}
		if err := addr.Validate(); err != nil {
			return nil, err
		}
	} else {
		key := crypto.GenPrivKeyEd25519()
		addr = key.PublicKey().Address()
		fmt.Printf("Generated owner key: %s\n", hex.EncodeToString(key.Ed25519))
	}

	state := struct {
		Cash             []cash.GenesisAccount `json:"cash"`
		Escrow           interface{}           `json:"escrow"`
		Migration        interface{}           `json:"migration"`
		InitializeSchema []string              `json:"initialize_schema"`
	}{
		Cash: []cash.GenesisAccount{
			{Address: addr, Coins: coin.Coins{coin.NewCoinp(initialBalance, denom)}},
		},
		Escrow: map[string]interface{}{
			"owner": addr,
			"denom": denom,
		},
		Migration: map[string]interface{}{
			"admin": addr,
		},
		InitializeSchema: []string{"escrow"},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}

// AppGenerator returns the builder used by the start command. Metrics of the
// application are registered with reg, if not nil.
func AppGenerator(cfg *Config, reg prometheus.Registerer) server.AppGenerator {
	return func(home string, logger log.Logger, debug bool) (abci.Application, error) {
		var metrics *utils.Metrics
		if reg != nil {
			metrics = utils.NewMetrics(cfg.MetricsNamespace)
			if err := reg.Register(metrics); err != nil {
				return nil, errors.Wrap(errors.ErrDuplicate, err.Error())
			}
			if err := escrow.RegisterMetrics(reg); err != nil {
				return nil, errors.Wrap(errors.ErrDuplicate, err.Error())
			}
		}

		// db goes in a subdir, but "" -> "" for memdb
		var dbPath string
		if home != "" {
			dbPath = filepath.Join(home, cfg.DBName)
		}

		application, err := Application(Name, Stack(metrics), TxDecoder, dbPath, debug || cfg.Debug)
		if err != nil {
			return nil, err
		}

		// set the logger and return
		application.WithLogger(logger)
		return application, nil
	}
}

// ServeMetrics exposes all metrics gathered by g under /metrics on given
// address. Serving stops when the returned server is closed.
func ServeMetrics(addr string, g prometheus.Gatherer, logger log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", "err", err)
		}
	}()
	logger.Info("Serving metrics", "address", addr)
	return srv
}

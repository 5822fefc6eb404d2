/*
Package escrowd links together all the various components
to construct the escrow chain application.
*/
package escrowd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/app"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/gconf"
	"github.com/iov-one/nftescrow/migration"
	"github.com/iov-one/nftescrow/store/iavl"
	"github.com/iov-one/nftescrow/x"
	"github.com/iov-one/nftescrow/x/cash"
	"github.com/iov-one/nftescrow/x/escrow"
	"github.com/iov-one/nftescrow/x/sigs"
	"github.com/iov-one/nftescrow/x/utils"
)

// Name is returned by the abci Info call.
const Name = "escrowd"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery. A failing transaction leaves no trace in
// the state, including signature sequences.
func Chain(metrics *utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
		sigs.NewDecorator(),
	)
}

// Router returns a router dispatching escrow and schema upgrade messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	migration.RegisterRoutes(r, authFn)
	escrow.RegisterRoutes(r, authFn, cash.NewController(cash.NewBucket()))
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/escrows", "/escrows/creator", "/wallets", "/auth",
// "/schemas" and "/gconf"
func QueryRouter() nftescrow.QueryRouter {
	r := nftescrow.NewQueryRouter()
	r.RegisterAll(
		escrow.RegisterQuery,
		cash.RegisterQuery,
		sigs.RegisterQuery,
		migration.RegisterQuery,
		gconf.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers of all modules. Migration
// comes first, so the package schemas exist before any module data.
func Initializers() nftescrow.Initializer {
	return nftescrow.ChainInitializers(
		migration.Initializer{},
		cash.Initializer{},
		escrow.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp. A nil metrics disables
// transaction metrics.
func Stack(metrics *utils.Metrics) nftescrow.Handler {
	authFn := Authenticator()
	return Chain(metrics).WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h nftescrow.Handler,
	tx nftescrow.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx).
		WithInit(Initializers())
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (nftescrow.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}

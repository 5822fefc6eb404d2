package migration

import (
	"strconv"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/gconf"
	"github.com/iov-one/nftescrow/x"
	"github.com/tendermint/tendermint/libs/common"
)

const upgradeSchemaCost int64 = 50

// SchemaMigratingHandler returns a handler that brings every message to the
// current schema version of given package before passing it to h. Messages
// that cannot be migrated are rejected.
func SchemaMigratingHandler(packageName string, h nftescrow.Handler) nftescrow.Handler {
	return &schemaMigratingHandler{
		handler:     h,
		packageName: packageName,
		schema:      NewSchemaBucket(),
		migrations:  reg,
	}
}

type schemaMigratingHandler struct {
	handler     nftescrow.Handler
	packageName string
	schema      *SchemaBucket
	migrations  *register
}

func (h *schemaMigratingHandler) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.CheckResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Check(ctx, db, tx)
}

func (h *schemaMigratingHandler) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.DeliverResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Deliver(ctx, db, tx)
}

// migrate upgrades the message in place.
func (h *schemaMigratingHandler) migrate(db nftescrow.ReadOnlyKVStore, tx nftescrow.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	if _, ok := msg.(Migratable); !ok {
		return errors.Wrapf(errors.ErrInvalidMsg, "%T cannot be migrated", msg)
	}
	return migrate(h.migrations, h.schema, h.packageName, db, msg)
}

// SchemaMigratingRegistry returns a registry that wraps every registered
// handler with SchemaMigratingHandler.
func SchemaMigratingRegistry(packageName string, r nftescrow.Registry) nftescrow.Registry {
	return &schemaMigratingRegistry{
		reg:         r,
		packageName: packageName,
	}
}

type schemaMigratingRegistry struct {
	reg         nftescrow.Registry
	packageName string
}

func (r *schemaMigratingRegistry) Handle(path string, h nftescrow.Handler) {
	r.reg.Handle(path, SchemaMigratingHandler(r.packageName, h))
}

// RegisterRoutes registers the schema upgrade handler.
func RegisterRoutes(r nftescrow.Registry, auth x.Authenticator) {
	r = SchemaMigratingRegistry(packageName, r)
	r.Handle(pathUpgradeSchemaMsg, &upgradeSchemaHandler{
		bucket: NewSchemaBucket(),
		auth:   auth,
	})
}

type upgradeSchemaHandler struct {
	bucket *SchemaBucket
	auth   x.Authenticator
}

func (h *upgradeSchemaHandler) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &nftescrow.CheckResult{GasAllocated: upgradeSchemaCost}, nil
}

func (h *upgradeSchemaHandler) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key, err := h.bucket.Create(db, &Schema{
		Metadata: &nftescrow.Metadata{Schema: 1},
		Pkg:      msg.Pkg,
		Version:  msg.ToVersion,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create schema version")
	}
	nftescrow.GetLogger(ctx).Info("schema upgraded", "pkg", msg.Pkg, "version", msg.ToVersion)
	return &nftescrow.DeliverResult{
		Data: key,
		Tags: []common.KVPair{
			nftescrow.Tag("action", "upgrade_schema"),
			nftescrow.Tag("pkg", msg.Pkg),
			nftescrow.Tag("version", strconv.FormatUint(uint64(msg.ToVersion), 10)),
		},
	}, nil
}

// validate refuses upgrades of packages that were never initialized and
// upgrades that skip a version.
func (h *upgradeSchemaHandler) validate(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*UpgradeSchemaMsg, error) {
	var msg UpgradeSchemaMsg
	if err := nftescrow.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if err := gconf.RequireOwner(ctx, h.auth, conf); err != nil {
		return nil, errors.Wrap(err, "admin")
	}
	current, err := h.bucket.CurrentSchema(db, msg.Pkg)
	if err != nil {
		return nil, errors.Wrapf(err, "package %q", msg.Pkg)
	}
	if msg.ToVersion != current+1 {
		return nil, errors.Wrapf(errors.ErrInvalidState, "package %q is at version %d", msg.Pkg, current)
	}
	return &msg, nil
}

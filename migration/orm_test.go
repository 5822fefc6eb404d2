package migration

import (
	"testing"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/orm"
	"github.com/iov-one/nftescrow/store"
	"github.com/iov-one/nftescrow/weavetest/assert"
)

func TestModelBucketMigrates(t *testing.T) {
	const thisPkgName = "testpkg"

	reg := newRegister()
	reg.MustRegister(1, &priceMsg{}, NoModification)
	reg.MustRegister(2, &priceMsg{}, func(db nftescrow.ReadOnlyKVStore, m Migratable) error {
		m.(*priceMsg).Price *= 100
		return nil
	})

	db := store.MemStore()
	MustInitPkg(db, thisPkgName)

	b := NewModelBucket(thisPkgName, orm.NewModelBucket("prices", &priceMsg{}))
	b.migrations = reg

	assert.Nil(t, b.Put(db, []byte("a"), &priceMsg{Metadata: &nftescrow.Metadata{Schema: 1}, Price: 4}))
	// Stored without a schema, takes the current version.
	assert.Nil(t, b.Put(db, []byte("b"), &priceMsg{Metadata: &nftescrow.Metadata{}, Price: 9}))

	var got priceMsg
	assert.Nil(t, b.One(db, []byte("b"), &got))
	assert.Equal(t, uint32(1), got.Metadata.Schema)
	assert.Equal(t, int64(9), got.Price)

	_, err := NewSchemaBucket().Create(db, &Schema{Metadata: &nftescrow.Metadata{Schema: 1}, Pkg: thisPkgName, Version: 2})
	assert.Nil(t, err)

	// Entity stored at version 1 is returned at version 2.
	assert.Nil(t, b.One(db, []byte("a"), &got))
	assert.Equal(t, uint32(2), got.Metadata.Schema)
	assert.Equal(t, int64(400), got.Price)

	// Version 1 entity is migrated before it is stored.
	assert.Nil(t, b.Put(db, []byte("c"), &priceMsg{Metadata: &nftescrow.Metadata{Schema: 1}, Price: 2}))
	var raw priceMsg
	assert.Nil(t, b.ModelBucket.One(db, []byte("c"), &raw))
	assert.Equal(t, uint32(2), raw.Metadata.Schema)
	assert.Equal(t, int64(200), raw.Price)

	err = b.Put(db, []byte("d"), &priceMsg{Metadata: &nftescrow.Metadata{Schema: 3}})
	if !errors.ErrSchema.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if err := b.One(db, []byte("d"), &got); !errors.ErrNotFound.Is(err) {
		t.Fatalf("refused entity must not be stored: %+v", err)
	}
}

func TestModelBucketUninitializedPackage(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("escrow", orm.NewModelBucket("prices", &priceMsg{}))
	err := b.Put(db, []byte("a"), &priceMsg{Metadata: &nftescrow.Metadata{Schema: 1}})
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

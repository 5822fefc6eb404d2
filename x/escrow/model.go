package escrow

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/iov-one/nftescrow/migration"
	"github.com/iov-one/nftescrow/orm"
)

const (
	// BucketName is where the escrow records are stored.
	BucketName = "esc"
	// CreatorBucketName is where the per seller escrow lists are stored.
	CreatorBucketName = "esccreator"
)

func init() {
	migration.MustRegister(1, &Escrow{}, migration.NoModification)
	migration.MustRegister(1, &Creator{}, migration.NoModification)
}

// Escrow holds a single deposited asset until it is paid for or canceled.
type Escrow struct {
	Metadata   *nftescrow.Metadata `json:"metadata"`
	TokenID    string              `json:"token_id"`
	Collection nftescrow.Address   `json:"collection"`
	Price      int64               `json:"price"`
	// Amount is the payment recorded against this escrow.
	Amount     int64              `json:"amount"`
	Seller     nftescrow.Address  `json:"seller"`
	Buyer      nftescrow.Address  `json:"buyer"`
	CreatedAt  nftescrow.UnixTime `json:"created_at"`
	CanceledAt nftescrow.UnixTime `json:"canceled_at"`
	SettledAt  nftescrow.UnixTime `json:"settled_at"`
}

var (
	_ orm.Model            = (*Escrow)(nil)
	_ migration.Migratable = (*Escrow)(nil)
)

func (e *Escrow) GetMetadata() *nftescrow.Metadata {
	return e.Metadata
}

func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "TokenID", validateTokenID(e.TokenID))
	errs = errors.AppendField(errs, "Collection", e.Collection.Validate())
	errs = errors.AppendField(errs, "Seller", e.Seller.Validate())
	errs = errors.AppendField(errs, "Buyer", e.Buyer.Validate())
	if e.Price < 0 {
		errs = errors.AppendField(errs, "Price", errors.ErrInvalidAmount)
	}
	if e.Amount < 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	errs = errors.AppendField(errs, "CreatedAt", e.CreatedAt.Validate())
	errs = errors.AppendField(errs, "CanceledAt", e.CanceledAt.Validate())
	errs = errors.AppendField(errs, "SettledAt", e.SettledAt.Validate())
	if !e.CanceledAt.IsZero() && !e.SettledAt.IsZero() {
		errs = errors.Append(errs, errors.Wrap(errors.ErrInvalidState, "both canceled and settled"))
	}
	return errs
}

func (e *Escrow) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(e)
}

func (e *Escrow) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, e)
}

// IsCanceled returns true if the seller took the asset back.
func (e *Escrow) IsCanceled() bool {
	return !e.CanceledAt.IsZero()
}

// IsSettled returns true if the buyer paid for the asset.
func (e *Escrow) IsSettled() bool {
	return !e.SettledAt.IsZero()
}

// NewBucket returns a bucket of escrows keyed by the encoded escrow ID.
func NewBucket() orm.ModelBucket {
	return migration.NewModelBucket(packageName, orm.NewModelBucket(BucketName, &Escrow{}))
}

// Creator lists, in creation order, the identifiers of all escrows created
// by a single seller. The list is never truncated.
type Creator struct {
	Metadata  *nftescrow.Metadata `json:"metadata"`
	EscrowIDs []uint64            `json:"escrow_ids"`
}

var (
	_ orm.Model            = (*Creator)(nil)
	_ migration.Migratable = (*Creator)(nil)
)

func (c *Creator) GetMetadata() *nftescrow.Metadata {
	return c.Metadata
}

func (c *Creator) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if len(c.EscrowIDs) == 0 {
		errs = errors.AppendField(errs, "EscrowIDs", errors.ErrEmpty)
	}
	return errs
}

func (c *Creator) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(c)
}

func (c *Creator) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, c)
}

// NewCreatorBucket returns a bucket of escrow lists keyed by the seller
// address.
func NewCreatorBucket() orm.ModelBucket {
	return migration.NewModelBucket(packageName, orm.NewModelBucket(CreatorBucketName, &Creator{}))
}

// RegisterQuery will register escrows as "/escrows" and the creator index
// as "/escrows/creator".
func RegisterQuery(qr nftescrow.QueryRouter) {
	NewBucket().Register("escrows", qr)
	NewCreatorBucket().Register("escrows/creator", qr)
}

// GetEscrow returns the escrow with given identifier. It fails with
// ErrNotFound if no such escrow exists.
func GetEscrow(db nftescrow.ReadOnlyKVStore, id uint64) (*Escrow, error) {
	var e Escrow
	if err := NewBucket().One(db, orm.EncodeSequence(id), &e); err != nil {
		return nil, errors.Wrapf(err, "escrow %d", id)
	}
	return &e, nil
}

// EscrowsByCreator returns identifiers of all escrows created by given
// seller, oldest first. An unknown seller has no escrows.
func EscrowsByCreator(db nftescrow.ReadOnlyKVStore, seller nftescrow.Address) ([]uint64, error) {
	var c Creator
	switch err := NewCreatorBucket().One(db, seller, &c); {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, errors.Wrap(err, "creator")
	}
	return c.EscrowIDs, nil
}

// appendCreator adds an escrow identifier to the list of given seller,
// creating the list on first use.
func appendCreator(db nftescrow.KVStore, bucket orm.ModelBucket, seller nftescrow.Address, id uint64) error {
	var c Creator
	switch err := bucket.One(db, seller, &c); {
	case errors.ErrNotFound.Is(err):
		c = Creator{Metadata: &nftescrow.Metadata{Schema: 1}}
	case err != nil:
		return errors.Wrap(err, "creator")
	}
	c.EscrowIDs = append(c.EscrowIDs, id)
	return bucket.Put(db, seller, &c)
}

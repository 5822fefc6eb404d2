package migration

import (
	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

const pathUpgradeSchemaMsg = "migration/upgrade_schema"

func init() {
	MustRegister(1, &UpgradeSchemaMsg{}, NoModification)
}

// UpgradeSchemaMsg bumps the schema version of an initialized package.
type UpgradeSchemaMsg struct {
	Metadata *nftescrow.Metadata `json:"metadata"`
	Pkg      string              `json:"pkg"`
	// ToVersion must directly follow the current package version.
	ToVersion uint32 `json:"to_version"`
}

var (
	_ nftescrow.Msg = (*UpgradeSchemaMsg)(nil)
	_ Migratable    = (*UpgradeSchemaMsg)(nil)
)

func (UpgradeSchemaMsg) Path() string {
	return pathUpgradeSchemaMsg
}

func (m *UpgradeSchemaMsg) GetMetadata() *nftescrow.Metadata {
	return m.Metadata
}

func (m *UpgradeSchemaMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if !isPackageName(m.Pkg) {
		errs = errors.AppendField(errs, "Pkg", errors.Wrapf(errors.ErrInvalidInput, "invalid package name %q", m.Pkg))
	}
	if m.ToVersion < 2 {
		errs = errors.AppendField(errs, "ToVersion", errors.Wrap(errors.ErrInvalidInput, "must be greater than one"))
	}
	return errs
}

func (m *UpgradeSchemaMsg) Marshal() ([]byte, error) {
	return nftescrow.MarshalBinary(m)
}

func (m *UpgradeSchemaMsg) Unmarshal(raw []byte) error {
	return nftescrow.UnmarshalBinary(raw, m)
}

package escrow

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
)

// Directive is the payload attached to an asset notification. Exactly one
// instruction must be set.
type Directive struct {
	CreateEscrow *CreateEscrow `json:"create_escrow"`
}

// CreateEscrow instructs the module to hold the received asset until the
// buyer pays the price.
type CreateEscrow struct {
	Collection nftescrow.Address `json:"collection"`
	Price      int64             `json:"price"`
	Buyer      nftescrow.Address `json:"buyer"`
}

func (c *CreateEscrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Collection", c.Collection.Validate())
	errs = errors.AppendField(errs, "Buyer", c.Buyer.Validate())
	if c.Price < 0 {
		errs = errors.AppendField(errs, "Price", errors.Wrap(errors.ErrInvalidAmount, "negative price"))
	}
	return errs
}

// ParseDirective decodes a notification payload. Unknown instructions,
// unknown fields, trailing data and invalid values are all rejected with
// ErrMalformedDirective.
func ParseDirective(payload []byte) (*Directive, error) {
	var d Directive
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(ErrMalformedDirective, err.Error())
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Wrap(ErrMalformedDirective, "trailing data")
	}
	if d.CreateEscrow == nil {
		return nil, errors.Wrap(ErrMalformedDirective, "no instruction")
	}
	if err := d.CreateEscrow.Validate(); err != nil {
		return nil, errors.Wrap(ErrMalformedDirective, err.Error())
	}
	return &d, nil
}

// Marshal returns the payload representation of this directive.
func (d *Directive) Marshal() ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}

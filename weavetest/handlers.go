package weavetest

import "github.com/iov-one/nftescrow"

// Handler is a mock of a message handler. It returns the configured
// result, or the error if one is set. Calls are counted.
type Handler struct {
	calls

	CheckResult nftescrow.CheckResult
	CheckErr    error

	DeliverResult nftescrow.DeliverResult
	DeliverErr    error
}

var _ nftescrow.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// WriteHandler writes a single key value pair to the store on every call
// before returning Err. Use it to verify that writes of a failed
// transaction are discarded.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ nftescrow.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.CheckResult, error) {
	db.Set(h.Key, h.Value)
	if h.Err != nil {
		return nil, h.Err
	}
	return &nftescrow.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(ctx nftescrow.Context, db nftescrow.KVStore, tx nftescrow.Tx) (*nftescrow.DeliverResult, error) {
	db.Set(h.Key, h.Value)
	if h.Err != nil {
		return nil, h.Err
	}
	return &nftescrow.DeliverResult{}, nil
}

// PanicHandler panics with Msg on every call.
type PanicHandler struct {
	Msg string
}

var _ nftescrow.Handler = PanicHandler{}

func (h PanicHandler) Check(nftescrow.Context, nftescrow.KVStore, nftescrow.Tx) (*nftescrow.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(nftescrow.Context, nftescrow.KVStore, nftescrow.Tx) (*nftescrow.DeliverResult, error) {
	panic(h.Msg)
}

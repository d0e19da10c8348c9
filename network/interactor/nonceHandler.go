package interactor

import (
	"context"
	"sort"
	"sync"

	"github.com/multiversx/mx-chain-executor-go/network"
)

// nonceHandler hands out distinct nonces for one sender. The account nonce is fetched from the
// network on first use; afterwards nonces are incremented locally. A nonce is given back only
// when its transaction definitively never reached the network, and it is then handed out
// before any new one so the sender's sequence stays without gaps.
type nonceHandler struct {
	proxy   network.BlockchainProxy
	address string

	mut      sync.Mutex
	nonce    uint64
	synced   bool
	released []uint64
}

func newNonceHandler(proxy network.BlockchainProxy, address string) *nonceHandler {
	return &nonceHandler{
		proxy:   proxy,
		address: address,
	}
}

func (handler *nonceHandler) acquireNonce(ctx context.Context) (uint64, error) {
	handler.mut.Lock()
	defer handler.mut.Unlock()

	if !handler.synced {
		accountNonce, err := handler.proxy.GetAccountNonce(ctx, handler.address)
		if err != nil {
			return 0, err
		}

		handler.nonce = accountNonce
		handler.synced = true
		log.Debug("account nonce synced", "address", handler.address, "nonce", accountNonce)
	}

	if len(handler.released) > 0 {
		nonce := handler.released[0]
		handler.released = handler.released[1:]

		return nonce, nil
	}

	nonce := handler.nonce
	handler.nonce++

	return nonce, nil
}

// releaseNonce gives back a nonce whose transaction was rejected before entering the network
func (handler *nonceHandler) releaseNonce(nonce uint64) {
	handler.mut.Lock()
	defer handler.mut.Unlock()

	if !handler.synced || nonce >= handler.nonce {
		return
	}
	if nonce+1 == handler.nonce {
		handler.nonce = nonce
		return
	}

	index := sort.Search(len(handler.released), func(i int) bool {
		return handler.released[i] >= nonce
	})
	if index < len(handler.released) && handler.released[index] == nonce {
		return
	}

	handler.released = append(handler.released, 0)
	copy(handler.released[index+1:], handler.released[index:])
	handler.released[index] = nonce

	log.Debug("nonce released", "address", handler.address, "nonce", nonce, "num released", len(handler.released))
}

// resync replaces the local nonce with the account nonce known by the network. Nonces of
// transactions still in flight may be handed out again afterwards.
func (handler *nonceHandler) resync(ctx context.Context) error {
	accountNonce, err := handler.proxy.GetAccountNonce(ctx, handler.address)
	if err != nil {
		return err
	}

	handler.mut.Lock()
	log.Debug("account nonce resynced", "address", handler.address, "local nonce", handler.nonce, "account nonce", accountNonce)
	handler.nonce = accountNonce
	handler.synced = true
	handler.released = nil
	handler.mut.Unlock()

	return nil
}

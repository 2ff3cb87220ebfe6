package ledger

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"aurasocial/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

type fakeBackend struct {
	client   *Client
	outputs  map[string][]interface{}
	receipts map[common.Hash]*types.Receipt
	callErr  error
	lastArgs []interface{}
	calls    int
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	r, ok := f.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (f *fakeBackend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls++
	if f.callErr != nil {
		return nil, f.callErr
	}
	method, err := f.client.abi.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	f.lastArgs, err = method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return nil, err
	}
	return method.Outputs.Pack(f.outputs[method.Name]...)
}

func newTestClient(t *testing.T) (*Client, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{
		outputs:  map[string][]interface{}{},
		receipts: map[common.Hash]*types.Receipt{},
	}
	c, err := NewClient(backend, testContract)
	require.NoError(t, err)
	backend.client = c
	return c, backend
}

func TestNewClient_RejectsBadAddress(t *testing.T) {
	_, err := NewClient(&fakeBackend{}, "0xnope")
	assert.Error(t, err)
}

func TestClient_AddressAndABI(t *testing.T) {
	c, _ := newTestClient(t)
	assert.Equal(t, common.HexToAddress(testContract).Hex(), c.Address())
	assert.Contains(t, string(c.ABI()), `"postCounter"`)
}

func TestClient_PostCounter(t *testing.T) {
	c, backend := newTestClient(t)
	backend.outputs["postCounter"] = []interface{}{big.NewInt(42)}

	counter, err := c.PostCounter(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "42", counter)
}

func TestClient_Post(t *testing.T) {
	c, backend := newTestClient(t)
	author := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	backend.outputs["getPost"] = []interface{}{big.NewInt(7), author, "QmHash", big.NewInt(1730856665)}

	post, err := c.Post(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, &OnChainPost{ID: "7", Author: author.Hex(), ContentHash: "QmHash", Timestamp: "1730856665"}, post)
	require.Len(t, backend.lastArgs, 1)
	assert.Equal(t, big.NewInt(7), backend.lastArgs[0])
}

func TestClient_Profile(t *testing.T) {
	c, backend := newTestClient(t)
	user := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	backend.outputs["getProfile"] = []interface{}{user, "alice", "QmProfile"}

	profile, err := c.Profile(context.Background(), user.Hex())
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, user.Hex(), profile.UserAddress)

	_, err = c.Profile(context.Background(), "0xA")
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestClient_CallError(t *testing.T) {
	c, backend := newTestClient(t)
	backend.callErr = errors.New("rpc unavailable")

	_, err := c.PostCounter(context.Background())
	assert.ErrorContains(t, err, "rpc unavailable")
}

func TestClient_TxStatus(t *testing.T) {
	c, backend := newTestClient(t)
	okHash := common.HexToHash("0x01")
	revertedHash := common.HexToHash("0x02")
	backend.receipts[okHash] = &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(100), GasUsed: 21000}
	backend.receipts[revertedHash] = &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(101), GasUsed: 50000}

	tests := []struct {
		name string
		hash string
		want *TxStatus
	}{
		{"success", okHash.Hex(), &TxStatus{Status: StatusSuccess, BlockNumber: "100", GasUsed: "21000"}},
		{"failed", revertedHash.Hex(), &TxStatus{Status: StatusFailed, BlockNumber: "101", GasUsed: "50000"}},
		{"pending", common.HexToHash("0x03").Hex(), &TxStatus{Status: StatusPending}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.TxStatus(context.Background(), tt.hash)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := c.TxStatus(context.Background(), "0xT1")
	assert.True(t, models.IsCode(err, models.CodeValidation))
}

func TestClient_PostIsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	base, backend := newTestClient(t)
	c := base.WithCache(rdb)
	author := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	backend.outputs["getPost"] = []interface{}{big.NewInt(7), author, "QmHash", big.NewInt(1700000000)}

	first, err := c.Post(context.Background(), 7)
	require.NoError(t, err)
	second, err := c.Post(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.calls)
	assert.True(t, mr.Exists("ledger:post:7"))
}

func TestClient_UnsetPostIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	base, backend := newTestClient(t)
	c := base.WithCache(rdb)
	backend.outputs["getPost"] = []interface{}{big.NewInt(0), common.Address{}, "", big.NewInt(0)}

	_, err := c.Post(context.Background(), 9)
	require.NoError(t, err)
	_, err = c.Post(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, 2, backend.calls)
	assert.False(t, mr.Exists("ledger:post:9"))
}

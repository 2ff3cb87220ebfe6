// Package ledger reads confirmation state and contract views from the chain
// that is the source of record for indexed social events.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"

	"aurasocial/internal/cache"
	"aurasocial/internal/middleware"
	"aurasocial/internal/models"
	"aurasocial/internal/observability"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/redis/go-redis/v9"
)

// Transaction statuses reported by TxStatus.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Backend is the subset of an Ethereum JSON-RPC client used here.
// *ethclient.Client satisfies it.
type Backend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// OnChainPost is the contract's view of a post.
type OnChainPost struct {
	ID          string `json:"id"`
	Author      string `json:"author"`
	ContentHash string `json:"contentHash"`
	Timestamp   string `json:"timestamp"`
}

// OnChainProfile is the contract's view of a profile.
type OnChainProfile struct {
	UserAddress string `json:"userAddress"`
	Username    string `json:"username"`
	ProfileHash string `json:"profileHash"`
}

// TxStatus summarizes a transaction receipt. Block and gas are empty while pending.
type TxStatus struct {
	Status      string `json:"status"`
	BlockNumber string `json:"blockNumber,omitempty"`
	GasUsed     string `json:"gasUsed,omitempty"`
}

// Client performs read-only contract calls.
type Client struct {
	backend  Backend
	contract common.Address
	abi      abi.ABI
	cache    *redis.Client
}

// NewClient binds backend to the contract at contractAddress.
func NewClient(backend Backend, contractAddress string) (*Client, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", contractAddress)
	}
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("parse contract abi: %w", err)
	}
	return &Client{
		backend:  backend,
		contract: common.HexToAddress(contractAddress),
		abi:      parsed,
	}, nil
}

// Dial connects to rpcURL and binds the contract. The returned func closes the connection.
func Dial(ctx context.Context, rpcURL, contractAddress string) (*Client, func(), error) {
	ec, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rpc: %w", err)
	}
	c, err := NewClient(ec, contractAddress)
	if err != nil {
		ec.Close()
		return nil, nil, err
	}
	return c, ec.Close, nil
}

// WithCache returns a copy of c that reuses on-chain post reads through rdb.
// A nil rdb disables caching.
func (c *Client) WithCache(rdb *redis.Client) *Client {
	cp := *c
	cp.cache = rdb
	return &cp
}

// Address returns the checksummed contract address.
func (c *Client) Address() string {
	return c.contract.Hex()
}

// ABI returns the contract ABI as JSON.
func (c *Client) ABI() json.RawMessage {
	return json.RawMessage(contractABI)
}

// PostCounter returns the number of posts created on-chain.
func (c *Client) PostCounter(ctx context.Context) (string, error) {
	out, err := c.call(ctx, "postCounter")
	if err != nil {
		return "", err
	}
	counter, ok := out[0].(*big.Int)
	if !ok {
		return "", fmt.Errorf("postCounter: unexpected output %T", out[0])
	}
	return counter.String(), nil
}

// Post fetches a post by its ledger id. Posts never change once created, so
// reads are cached when a cache is configured.
func (c *Client) Post(ctx context.Context, postID int64) (*OnChainPost, error) {
	if postID < 0 {
		return nil, models.NewValidationError("postId must not be negative")
	}

	key := cache.LedgerPostKey(postID)
	var cached OnChainPost
	found, err := cache.GetJSON(ctx, c.cache, key, &cached)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "ledger cache read failed", slog.String("error", err.Error()))
	}
	if found {
		return &cached, nil
	}

	post, err := c.fetchPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	// Unused ids read back with the zero author and may be filled later.
	if post.Author != (common.Address{}).Hex() {
		if err := cache.SetJSON(ctx, c.cache, key, post, cache.LedgerPostTTL); err != nil {
			middleware.Logger.WarnContext(ctx, "ledger cache write failed", slog.String("error", err.Error()))
		}
	}
	return post, nil
}

func (c *Client) fetchPost(ctx context.Context, postID int64) (*OnChainPost, error) {
	out, err := c.call(ctx, "getPost", big.NewInt(postID))
	if err != nil {
		return nil, err
	}

	id, ok1 := out[0].(*big.Int)
	author, ok2 := out[1].(common.Address)
	hash, ok3 := out[2].(string)
	ts, ok4 := out[3].(*big.Int)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, errors.New("getPost: unexpected output types")
	}
	return &OnChainPost{
		ID:          id.String(),
		Author:      author.Hex(),
		ContentHash: hash,
		Timestamp:   ts.String(),
	}, nil
}

// Profile fetches the on-chain profile of address.
func (c *Client) Profile(ctx context.Context, address string) (*OnChainProfile, error) {
	if !common.IsHexAddress(address) {
		return nil, models.NewValidationError("address must be a 20-byte hex address")
	}
	out, err := c.call(ctx, "getProfile", common.HexToAddress(address))
	if err != nil {
		return nil, err
	}

	user, ok1 := out[0].(common.Address)
	username, ok2 := out[1].(string)
	profileHash, ok3 := out[2].(string)
	if !ok1 || !ok2 || !ok3 {
		return nil, errors.New("getProfile: unexpected output types")
	}
	return &OnChainProfile{
		UserAddress: user.Hex(),
		Username:    username,
		ProfileHash: profileHash,
	}, nil
}

// TxStatus reports whether hash is pending, succeeded, or reverted.
func (c *Client) TxStatus(ctx context.Context, hash string) (*TxStatus, error) {
	raw, err := hexutil.Decode(hash)
	if err != nil || len(raw) != common.HashLength {
		return nil, models.NewValidationError("hash must be a 32-byte hex transaction hash")
	}

	receipt, err := c.backend.TransactionReceipt(ctx, common.BytesToHash(raw))
	if errors.Is(err, ethereum.NotFound) {
		observability.LedgerCallsTotal.WithLabelValues("receipt", observability.ResultOK).Inc()
		return &TxStatus{Status: StatusPending}, nil
	}
	observability.LedgerCallsTotal.WithLabelValues("receipt", observability.ResultLabel(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("transaction receipt: %w", err)
	}

	status := StatusFailed
	if receipt.Status == types.ReceiptStatusSuccessful {
		status = StatusSuccess
	}
	result := &TxStatus{Status: status, GasUsed: strconv.FormatUint(receipt.GasUsed, 10)}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.String()
	}
	return result, nil
}

func (c *Client) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &c.contract, Data: data}, nil)
	observability.LedgerCallsTotal.WithLabelValues(method, observability.ResultLabel(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}

	values, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s returned no values", method)
	}
	return values, nil
}

package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/fortune-cookies-ai/fc-backend/internal/adapter"
	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
)

const (
	scoreABIJSON = `[
		{"type":"function","name":"updatePlayerData","stateMutability":"nonpayable","inputs":[{"name":"player","type":"address"},{"name":"scoreAmount","type":"uint256"},{"name":"transactionAmount","type":"uint256"}],"outputs":[]},
		{"type":"function","name":"totalTransactionsOfPlayer","stateMutability":"view","inputs":[{"name":"player","type":"address"}],"outputs":[{"name":"count","type":"uint256"}]},
		{"type":"function","name":"totalScoreOfPlayer","stateMutability":"view","inputs":[{"name":"player","type":"address"}],"outputs":[{"name":"score","type":"uint256"}]}
	]`

	cookieABIJSON = `[
		{"type":"function","name":"mintedCookies","stateMutability":"view","inputs":[{"name":"minter","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
		{"type":"function","name":"mintedImages","stateMutability":"view","inputs":[{"name":"minter","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
	]`
)

// receiptPollInterval paces the mined-receipt poll loop
const (
	receiptPollInterval = 500 * time.Millisecond
	receiptWaitTimeout  = 60 * time.Second
)

// MintCounts is the per-wallet mint breakdown read from the cookie contract
type MintCounts struct {
	Cookies uint64
	Images  uint64
}

// PlayerTotals is the cumulative score state read from the score contract
type PlayerTotals struct {
	TotalScore        *big.Int
	TotalTransactions *big.Int
}

// TxResult describes a mined score update transaction
type TxResult struct {
	TxHash      string
	BlockNumber uint64
}

// Client defines the interface for chain operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/ethereum_client.go -package=mocks -mock_names=Client=MockChainClient
type Client interface {
	// MintCounts reads the per-wallet cookie and image mint counters
	MintCounts(ctx context.Context, contract, player domain.Address) (*MintCounts, error)

	// PlayerTotals reads the player's cumulative score and transaction count
	PlayerTotals(ctx context.Context, player domain.Address) (*PlayerTotals, error)

	// UpdatePlayerData submits a score update and waits for it to be mined.
	// txDelta is a delta; the contract accumulates internally.
	UpdatePlayerData(ctx context.Context, player domain.Address, score, txDelta uint64) (*TxResult, error)

	// Close closes the connection
	Close()
}

type chainClient struct {
	client        adapter.EthClient
	clock         adapter.Clock
	scoreContract common.Address
	signerKey     *ecdsa.PrivateKey
	scoreABI      abi.ABI
	cookieABI     abi.ABI
}

// Config holds the chain client settings
type Config struct {
	ScoreContract string
	PrivateKey    string
}

// NewClient creates a chain client. PrivateKey may be empty when score
// submission is not needed.
func NewClient(client adapter.EthClient, clock adapter.Clock, cfg Config) (Client, error) {
	scoreABI, err := abi.JSON(strings.NewReader(scoreABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse score ABI: %w", err)
	}
	cookieABI, err := abi.JSON(strings.NewReader(cookieABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse cookie ABI: %w", err)
	}

	c := &chainClient{
		client:        client,
		clock:         clock,
		scoreContract: common.HexToAddress(cfg.ScoreContract),
		scoreABI:      scoreABI,
		cookieABI:     cookieABI,
	}

	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse signer key: %w", err)
		}
		c.signerKey = key
	}

	return c, nil
}

func (c *chainClient) callUint(ctx context.Context, contractABI abi.ABI, contract common.Address, method string, args ...interface{}) (*big.Int, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contract,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}
	if len(result) == 0 {
		return big.NewInt(0), nil
	}

	var value *big.Int
	if err := contractABI.UnpackIntoInterface(&value, method, result); err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if value == nil {
		value = big.NewInt(0)
	}
	return value, nil
}

// MintCounts reads the per-wallet cookie and image mint counters
func (c *chainClient) MintCounts(ctx context.Context, contract, player domain.Address) (*MintCounts, error) {
	contractAddr := common.HexToAddress(contract.String())
	playerAddr := common.HexToAddress(player.String())

	cookies, err := c.callUint(ctx, c.cookieABI, contractAddr, "mintedCookies", playerAddr)
	if err != nil {
		return nil, err
	}
	images, err := c.callUint(ctx, c.cookieABI, contractAddr, "mintedImages", playerAddr)
	if err != nil {
		return nil, err
	}

	return &MintCounts{
		Cookies: cookies.Uint64(),
		Images:  images.Uint64(),
	}, nil
}

// PlayerTotals reads the player's cumulative score and transaction count
func (c *chainClient) PlayerTotals(ctx context.Context, player domain.Address) (*PlayerTotals, error) {
	playerAddr := common.HexToAddress(player.String())

	score, err := c.callUint(ctx, c.scoreABI, c.scoreContract, "totalScoreOfPlayer", playerAddr)
	if err != nil {
		return nil, err
	}
	txs, err := c.callUint(ctx, c.scoreABI, c.scoreContract, "totalTransactionsOfPlayer", playerAddr)
	if err != nil {
		return nil, err
	}

	return &PlayerTotals{
		TotalScore:        score,
		TotalTransactions: txs,
	}, nil
}

// UpdatePlayerData submits a score update and waits for it to be mined
func (c *chainClient) UpdatePlayerData(ctx context.Context, player domain.Address, score, txDelta uint64) (*TxResult, error) {
	if c.signerKey == nil {
		return nil, fmt.Errorf("no signer key configured")
	}

	data, err := c.scoreABI.Pack("updatePlayerData",
		common.HexToAddress(player.String()),
		new(big.Int).SetUint64(score),
		new(big.Int).SetUint64(txDelta))
	if err != nil {
		return nil, fmt.Errorf("failed to pack updatePlayerData: %w", err)
	}

	chainID, err := c.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	from := crypto.PubkeyToAddress(c.signerKey.PublicKey)
	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}
	gas, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From:     from,
		To:       &c.scoreContract,
		Data:     data,
		GasPrice: gasPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx, err := types.SignNewTx(c.signerKey, types.LatestSignerForChainID(chainID), &types.LegacyTx{
		Nonce:    nonce,
		To:       &c.scoreContract,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	receipt, err := c.waitMined(ctx, tx.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}

	return &TxResult{
		TxHash:      tx.Hash().Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}, nil
}

func (c *chainClient) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	deadline := c.clock.Now().Add(receiptWaitTimeout)
	for {
		receipt, err := c.client.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if c.clock.Now().After(deadline) {
			return nil, fmt.Errorf("transaction %s not mined in time", hash.Hex())
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.clock.After(receiptPollInterval):
		}
	}
}

// Close closes the connection
func (c *chainClient) Close() {
	c.client.Close()
}

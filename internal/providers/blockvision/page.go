package blockvision

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fortune-cookies-ai/fc-backend/internal/domain"
)

// flexNumber decodes JSON numbers and numeric strings alike. The indexer API
// is inconsistent about which form it uses for amounts and token identifiers.
type flexNumber string

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = ""
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*n = flexNumber(str)
		return nil
	}
	*n = flexNumber(s)
	return nil
}

// Int64 parses the value as a decimal or 0x-prefixed hex integer
func (n flexNumber) Int64() (int64, bool) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, false
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseInt(s[2:], 16, 64)
		return v, err == nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, true
	}
	// fractional amounts are truncated
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}

func (n flexNumber) String() string {
	return string(n)
}

// TokenHolding is one token row inside an account NFT page
type TokenHolding struct {
	TokenID  int64
	Quantity int64
}

// ContractHoldings groups the tokens of one contract inside an account NFT page
type ContractHoldings struct {
	Contract domain.Address
	Items    []TokenHolding
}

// AccountNFTsPage is one normalized page of the account NFT listing
type AccountNFTsPage struct {
	Collections   []ContractHoldings
	NextPageIndex int
	HasNext       bool
}

// Holder is one normalized collection holder row
type Holder struct {
	Address      domain.Address
	Amount       uint64
	UniqueTokens *uint64
}

// HoldersPage is one normalized page of collection holders
type HoldersPage struct {
	Holders    []Holder
	NextCursor string
}

// Holding is one normalized per-token holding row
type Holding struct {
	Contract domain.Address
	TokenID  string
	Amount   int64
}

// HoldingsPage is one normalized page of per-token account holdings
type HoldingsPage struct {
	Holdings   []Holding
	NextCursor string
}

// rawTokenItem tolerates the field name variants observed across API versions
type rawTokenItem struct {
	TokenID      flexNumber `json:"tokenId"`
	TokenIDSnake flexNumber `json:"token_id"`
	ID           flexNumber `json:"id"`
	Qty          flexNumber `json:"qty"`
	Amount       flexNumber `json:"amount"`
	Balance      flexNumber `json:"balance"`
}

func (r *rawTokenItem) tokenID() (int64, bool) {
	for _, n := range []flexNumber{r.TokenID, r.TokenIDSnake, r.ID} {
		if v, ok := n.Int64(); ok {
			return v, true
		}
	}
	return 0, false
}

func (r *rawTokenItem) quantity() int64 {
	for _, n := range []flexNumber{r.Qty, r.Amount, r.Balance} {
		if v, ok := n.Int64(); ok && v > 0 {
			return v
		}
	}
	return 1
}

type rawCollection struct {
	ContractAddress      string         `json:"contractAddress"`
	ContractAddressSnake string         `json:"contract_address"`
	Items                []rawTokenItem `json:"items"`
	Assets               []rawTokenItem `json:"assets"`
	List                 []rawTokenItem `json:"list"`
	Tokens               []rawTokenItem `json:"tokens"`
}

func (r *rawCollection) contract() domain.Address {
	if r.ContractAddress != "" {
		return domain.NormalizeAddress(r.ContractAddress)
	}
	return domain.NormalizeAddress(r.ContractAddressSnake)
}

func (r *rawCollection) items() []rawTokenItem {
	for _, arr := range [][]rawTokenItem{r.Items, r.Assets, r.List, r.Tokens} {
		if len(arr) > 0 {
			return arr
		}
	}
	return nil
}

type rawPageFields struct {
	Data          []json.RawMessage `json:"data"`
	Collections   []json.RawMessage `json:"collections"`
	NextPageIndex *int              `json:"nextPageIndex"`
	NextPage      *int              `json:"nextPage"`
	HasNext       *bool             `json:"hasNext"`
	NextCursor    string            `json:"nextPageCursor"`
}

func (r *rawPageFields) entries() []json.RawMessage {
	if len(r.Data) > 0 {
		return r.Data
	}
	return r.Collections
}

type rawEnvelope struct {
	Code    *int           `json:"code"`
	Message string         `json:"message"`
	Result  *rawPageFields `json:"result"`
	rawPageFields
}

// page returns the effective page fields, preferring the result envelope
func (r *rawEnvelope) page() *rawPageFields {
	if r.Result != nil && (len(r.Result.entries()) > 0 || r.Result.NextCursor != "" ||
		r.Result.NextPageIndex != nil || r.Result.NextPage != nil || r.Result.HasNext != nil) {
		return r.Result
	}
	return &r.rawPageFields
}

// parseAccountNFTsPage normalizes one account NFT response body.
// currentIndex is the page index that was requested, used to decide whether
// the advertised next index actually advances.
func parseAccountNFTsPage(body []byte, currentIndex int) (*AccountNFTsPage, error) {
	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{cause: err}
	}

	p := env.page()
	page := &AccountNFTsPage{}
	for _, raw := range p.entries() {
		var col rawCollection
		if err := json.Unmarshal(raw, &col); err != nil {
			continue
		}
		entry := ContractHoldings{Contract: col.contract()}
		for _, item := range col.items() {
			it := item
			id, ok := it.tokenID()
			if !ok {
				continue
			}
			entry.Items = append(entry.Items, TokenHolding{TokenID: id, Quantity: it.quantity()})
		}
		page.Collections = append(page.Collections, entry)
	}

	next := 0
	if p.NextPageIndex != nil {
		next = *p.NextPageIndex
	} else if p.NextPage != nil {
		next = *p.NextPage
	}
	advances := next != 0 && next != currentIndex
	hasNext := advances
	if p.HasNext != nil {
		hasNext = *p.HasNext
	}
	if hasNext {
		if advances {
			page.NextPageIndex = next
		} else {
			page.NextPageIndex = currentIndex + 1
		}
		page.HasNext = true
	}

	return page, nil
}

type rawHolder struct {
	OwnerAddress string     `json:"ownerAddress"`
	Amount       flexNumber `json:"amount"`
	UniqueTokens *uint64    `json:"uniqueTokens"`
}

// parseHoldersPage normalizes one collection holders response body
func parseHoldersPage(body []byte) (*HoldersPage, error) {
	var env struct {
		Code    *int   `json:"code"`
		Message string `json:"message"`
		Result  *struct {
			Data       []rawHolder `json:"data"`
			NextCursor string      `json:"nextPageCursor"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{cause: err}
	}
	if env.Code != nil && *env.Code != 0 {
		return nil, &APIError{Code: *env.Code, Message: env.Message}
	}

	page := &HoldersPage{}
	if env.Result == nil {
		return page, nil
	}
	for _, h := range env.Result.Data {
		addr := domain.NormalizeAddress(h.OwnerAddress)
		if !addr.Valid() {
			continue
		}
		amt, ok := h.Amount.Int64()
		if !ok || amt < 0 {
			continue
		}
		page.Holders = append(page.Holders, Holder{
			Address:      addr,
			Amount:       uint64(amt),
			UniqueTokens: h.UniqueTokens,
		})
	}
	page.NextCursor = env.Result.NextCursor
	return page, nil
}

type rawHolding struct {
	NFT *struct {
		ContractAddress string     `json:"contractAddress"`
		TokenID         flexNumber `json:"tokenId"`
	} `json:"nft"`
	Amount flexNumber `json:"amount"`
}

// parseHoldingsPage normalizes one per-token account holdings response body
func parseHoldingsPage(body []byte) (*HoldingsPage, error) {
	var env struct {
		Code    *int   `json:"code"`
		Message string `json:"message"`
		Result  *struct {
			Data       []rawHolding `json:"data"`
			NextCursor string       `json:"nextPageCursor"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{cause: err}
	}
	if env.Code != nil && *env.Code != 0 {
		return nil, &APIError{Code: *env.Code, Message: env.Message}
	}

	page := &HoldingsPage{}
	if env.Result == nil {
		return page, nil
	}
	for _, h := range env.Result.Data {
		if h.NFT == nil {
			continue
		}
		amt, ok := h.Amount.Int64()
		if !ok || amt <= 0 {
			amt = 1
		}
		page.Holdings = append(page.Holdings, Holding{
			Contract: domain.NormalizeAddress(h.NFT.ContractAddress),
			TokenID:  domain.NormalizeTokenID(h.NFT.TokenID.String()),
			Amount:   amt,
		})
	}
	page.NextCursor = env.Result.NextCursor
	return page, nil
}

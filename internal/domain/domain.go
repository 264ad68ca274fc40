package domain

import (
	"fmt"
	"math/big"
	"regexp"
	"sort"
	"strings"
)

var hexAddressRe = regexp.MustCompile(`^0x[0-9a-f]{40}$`)

// Address is a normalized (lowercase hex) account or contract identifier.
type Address string

// NormalizeAddress lowercases and trims an address candidate.
func NormalizeAddress(s string) Address {
	return Address(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether the address is a well-formed 20-byte hex address.
func (a Address) Valid() bool {
	return hexAddressRe.MatchString(string(a))
}

func (a Address) String() string {
	return string(a)
}

// ParseIdentitySet parses a comma-separated address list into a deduplicated
// identity set. The first valid address is the authoritative (primary) one.
// Invalid entries are dropped.
func ParseIdentitySet(s string) []Address {
	var set []Address
	seen := make(map[Address]bool)
	for _, part := range strings.Split(s, ",") {
		addr := NormalizeAddress(part)
		if !addr.Valid() || seen[addr] {
			continue
		}
		seen[addr] = true
		set = append(set, addr)
	}
	return set
}

// HoldingKey identifies one (owner, collection) relationship.
type HoldingKey struct {
	Owner      Address
	Collection Address
}

func (k HoldingKey) String() string {
	return fmt.Sprintf("%s:%s", k.Owner, k.Collection)
}

// ParseHoldingKey parses the "owner:collection" form produced by String
func ParseHoldingKey(s string) (HoldingKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return HoldingKey{}, fmt.Errorf("malformed holding key %q", s)
	}
	key := HoldingKey{
		Owner:      NormalizeAddress(parts[0]),
		Collection: NormalizeAddress(parts[1]),
	}
	if !key.Owner.Valid() || !key.Collection.Valid() {
		return HoldingKey{}, fmt.Errorf("malformed holding key %q", s)
	}
	return key, nil
}

// HolderRow is one entry in a collection-wide holder snapshot.
type HolderRow struct {
	Address Address
	Mints   uint64
}

// NormalizeTokenID canonicalizes a token identifier string ("1" vs "0x1")
// so per-token merging is reliable. Unparseable identifiers are lowercased
// verbatim.
func NormalizeTokenID(id string) string {
	if id == "" {
		return ""
	}
	n := new(big.Int)
	if strings.HasPrefix(id, "0x") || strings.HasPrefix(id, "0X") {
		if _, ok := n.SetString(id[2:], 16); ok {
			return "0x" + n.Text(16)
		}
	} else if _, ok := n.SetString(id, 10); ok {
		return "0x" + n.Text(16)
	}
	return strings.ToLower(id)
}

// SortTokenIDs64 sorts token identifiers ascending in place and returns them.
func SortTokenIDs64(ids []int64) []int64 {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

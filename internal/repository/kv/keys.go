package kv

import "encoding/binary"

// Key layout. Numeric ids are big-endian so that prefix scans return them in
// ascending order; ids are never negative.
var (
	prefixBalance     = []byte("b/")  // address "/" assetId
	prefixReference   = []byte("r/")  // address
	prefixAsset       = []byte("a/")  // assetId
	prefixAssetName   = []byte("an/") // name -> assetId
	prefixGroup       = []byte("g/")  // groupId
	prefixGroupName   = []byte("gn/") // name -> groupId
	prefixMember      = []byte("gm/") // groupId address
	prefixAdmin       = []byte("ga/") // groupId address
	prefixJoinRequest = []byte("gj/") // groupId address
	prefixBan         = []byte("gb/") // groupId address
	prefixPoll        = []byte("p/")  // name
	prefixVote        = []byte("pv/") // len(name) name voterPublicKey
	prefixTransaction = []byte("t/")  // signature
	prefixBlock       = []byte("k/")  // height
	keyChainHeight    = []byte("m/height")
)

func makeKey(prefix []byte, parts ...[]byte) []byte {
	n := len(prefix)
	for _, p := range parts {
		n += len(p)
	}
	k := make([]byte, 0, n)
	k = append(k, prefix...)
	for _, p := range parts {
		k = append(k, p...)
	}
	return k
}

func be32(v int32) []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(v))
}

func be64(v int64) []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(v))
}

func balanceKey(address string, assetID int64) []byte {
	return makeKey(prefixBalance, []byte(address), []byte{'/'}, be64(assetID))
}

func balancePrefix(address string) []byte {
	return makeKey(prefixBalance, []byte(address), []byte{'/'})
}

func groupScoped(prefix []byte, groupID int32, address string) []byte {
	return makeKey(prefix, be32(groupID), []byte(address))
}

func votePrefix(pollName string) []byte {
	return makeKey(prefixVote, be32(int32(len(pollName))), []byte(pollName))
}

func voteKey(pollName string, voterPublicKey []byte) []byte {
	return makeKey(votePrefix(pollName), voterPublicKey)
}

package tx

import "fmt"

// Result is the outcome of validating a transaction against ledger state.
// Every rejection carries a specific reason; OK is the only success value.
type Result int

// Validation result codes. Numeric values are stable and reported to clients.
const (
	OK                            Result = 1
	InvalidAddress                Result = 2
	NegativeAmount                Result = 3
	NegativeFee                   Result = 4
	NoBalance                     Result = 5
	InvalidReference              Result = 6
	InvalidNameLength             Result = 7
	NameNotLowerCase              Result = 11
	InvalidAmount                 Result = 15
	InvalidDescriptionLength      Result = 18
	InvalidOptionsCount           Result = 19
	InvalidOptionLength           Result = 20
	DuplicateOption               Result = 21
	PollAlreadyExists             Result = 22
	PollDoesNotExist              Result = 24
	PollOptionDoesNotExist        Result = 25
	AlreadyVotedForThatOption     Result = 26
	InvalidDataLength             Result = 27
	InvalidQuantity               Result = 28
	AssetDoesNotExist             Result = 29
	InvalidATTransaction          Result = 39
	InsufficientFee               Result = 40
	AssetAlreadyExists            Result = 43
	GroupAlreadyExists            Result = 48
	GroupDoesNotExist             Result = 49
	InvalidGroupOwner             Result = 50
	AlreadyGroupMember            Result = 51
	GroupOwnerCannotLeave         Result = 52
	NotGroupMember                Result = 53
	NotGroupAdmin                 Result = 55
	InvalidLifetime               Result = 56
	BanUnknown                    Result = 59
	BannedFromGroup               Result = 60
	JoinRequestExists             Result = 61
	InvalidGroupApprovalThreshold Result = 62
	InvalidTxGroupID              Result = 67
	TxGroupIDMismatch             Result = 68
	InvalidReasonLength           Result = 70
	InvalidSignature              Result = 71
	NotYetReleased                Result = 1000
)

var resultNames = map[Result]string{
	OK:                            "OK",
	InvalidAddress:                "INVALID_ADDRESS",
	NegativeAmount:                "NEGATIVE_AMOUNT",
	NegativeFee:                   "NEGATIVE_FEE",
	NoBalance:                     "NO_BALANCE",
	InvalidReference:              "INVALID_REFERENCE",
	InvalidNameLength:             "INVALID_NAME_LENGTH",
	NameNotLowerCase:              "NAME_NOT_LOWER_CASE",
	InvalidAmount:                 "INVALID_AMOUNT",
	InvalidDescriptionLength:      "INVALID_DESCRIPTION_LENGTH",
	InvalidOptionsCount:           "INVALID_OPTIONS_COUNT",
	InvalidOptionLength:           "INVALID_OPTION_LENGTH",
	DuplicateOption:               "DUPLICATE_OPTION",
	PollAlreadyExists:             "POLL_ALREADY_EXISTS",
	PollDoesNotExist:              "POLL_DOES_NOT_EXIST",
	PollOptionDoesNotExist:        "POLL_OPTION_DOES_NOT_EXIST",
	AlreadyVotedForThatOption:     "ALREADY_VOTED_FOR_THAT_OPTION",
	InvalidDataLength:             "INVALID_DATA_LENGTH",
	InvalidQuantity:               "INVALID_QUANTITY",
	AssetDoesNotExist:             "ASSET_DOES_NOT_EXIST",
	InvalidATTransaction:          "INVALID_AT_TRANSACTION",
	InsufficientFee:               "INSUFFICIENT_FEE",
	AssetAlreadyExists:            "ASSET_ALREADY_EXISTS",
	GroupAlreadyExists:            "GROUP_ALREADY_EXISTS",
	GroupDoesNotExist:             "GROUP_DOES_NOT_EXIST",
	InvalidGroupOwner:             "INVALID_GROUP_OWNER",
	AlreadyGroupMember:            "ALREADY_GROUP_MEMBER",
	GroupOwnerCannotLeave:         "GROUP_OWNER_CANNOT_LEAVE",
	NotGroupMember:                "NOT_GROUP_MEMBER",
	NotGroupAdmin:                 "NOT_GROUP_ADMIN",
	InvalidLifetime:               "INVALID_LIFETIME",
	BanUnknown:                    "BAN_UNKNOWN",
	BannedFromGroup:               "BANNED_FROM_GROUP",
	JoinRequestExists:             "JOIN_REQUEST_EXISTS",
	InvalidGroupApprovalThreshold: "INVALID_GROUP_APPROVAL_THRESHOLD",
	InvalidTxGroupID:              "INVALID_TX_GROUP_ID",
	TxGroupIDMismatch:             "TX_GROUP_ID_MISMATCH",
	InvalidReasonLength:           "INVALID_REASON_LENGTH",
	InvalidSignature:              "INVALID_SIGNATURE",
	NotYetReleased:                "NOT_YET_RELEASED",
}

// String returns the upper-case result name, e.g. "NO_BALANCE".
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// IsOK returns true if the transaction passed validation.
func (r Result) IsOK() bool {
	return r == OK
}

// MarshalText renders the result by name.
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

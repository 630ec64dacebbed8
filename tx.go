package solbank

// TxHash is a tx id, for Solana the base58 encoding of the first signature
type TxHash string

// TxSignature is a tx signature
type TxSignature []byte

// SignatureRequest is a payload that must be signed by Signer.
// An empty Signer means the main (fee paying) address.
type SignatureRequest struct {
	Signer  Address
	Payload []byte
}

func NewSignatureRequest(payload []byte, signerMaybe ...Address) *SignatureRequest {
	signer := Address("")
	if len(signerMaybe) > 0 {
		signer = signerMaybe[0]
	}
	return &SignatureRequest{
		Signer:  signer,
		Payload: payload,
	}
}

// SignatureResponse is a signature over a SignatureRequest payload.
type SignatureResponse struct {
	Signature TxSignature
	PublicKey PublicKey
	Address   Address
}

// Tx is a transaction
type Tx interface {
	Hash() TxHash
	Sighashes() ([]*SignatureRequest, error)
	SetSignatures(...*SignatureResponse) error
	GetSignatures() []TxSignature
	Serialize() ([]byte, error)
}

// TxStatus is the status of a tx on chain, currently success or failure.
type TxStatus uint8

// TxStatus values
const (
	TxStatusSuccess TxStatus = 0
	TxStatusFailure TxStatus = 1
)

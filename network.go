package solbank

import (
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
)

// Network is the Solana cluster the client talks to.
type Network string

const (
	Localnet Network = "localnet"
	Devnet   Network = "devnet"
	Testnet  Network = "testnet"
	Mainnet  Network = "mainnet"
)

var NetworkList = []Network{
	Localnet,
	Devnet,
	Testnet,
	Mainnet,
}

// ParseNetwork matches a network name case-insensitively.
// Anything unrecognized is treated as localnet.
func ParseNetwork(name string) Network {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "mainnet-beta":
		return Mainnet
	case "localhost":
		return Localnet
	}
	for _, network := range NetworkList {
		if string(network) == name {
			return network
		}
	}
	return Localnet
}

// URL returns the default public RPC endpoint for the network.
func (network Network) URL() string {
	switch network {
	case Devnet:
		return rpc.DevNet_RPC
	case Testnet:
		return rpc.TestNet_RPC
	case Mainnet:
		return rpc.MainNetBeta_RPC
	default:
		return rpc.LocalNet_RPC
	}
}

// Faucets only exist off mainnet.
func (network Network) SupportsAirdrop() bool {
	return network != Mainnet
}

func (network Network) String() string {
	return string(network)
}

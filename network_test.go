package solbank_test

import (
	. "github.com/cordialsys/solbank"
)

func (s *SolbankTestSuite) TestParseNetwork() {
	require := s.Require()

	vectors := []struct {
		input    string
		expected Network
		url      string
	}{
		{"localnet", Localnet, "http://127.0.0.1:8899"},
		{"devnet", Devnet, "https://api.devnet.solana.com"},
		{"DEVNET", Devnet, "https://api.devnet.solana.com"},
		{"testnet", Testnet, "https://api.testnet.solana.com"},
		{"mainnet-beta", Mainnet, "https://api.mainnet-beta.solana.com"},
		{"", Localnet, "http://127.0.0.1:8899"},
		{"unknown", Localnet, "http://127.0.0.1:8899"},
	}
	for _, v := range vectors {
		network := ParseNetwork(v.input)
		require.Equal(v.expected, network, v.input)
		require.Equal(v.url, network.URL(), v.input)
	}
	require.False(Mainnet.SupportsAirdrop())
	require.True(Devnet.SupportsAirdrop())
}

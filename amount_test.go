package solbank_test

import (
	"encoding/json"

	. "github.com/cordialsys/solbank"
	"github.com/shopspring/decimal"
)

func (s *SolbankTestSuite) TestNewAmountBlockchainFromUint64() {
	require := s.Require()
	amount := NewAmountBlockchainFromUint64(123)
	require.NotNil(amount)
	require.Equal(amount.Uint64(), uint64(123))
	require.Equal(amount.String(), "123")
}

func (s *SolbankTestSuite) TestAmountHumanReadable() {
	require := s.Require()
	amountDec, _ := decimal.NewFromString("10.3")
	amount := AmountHumanReadable(amountDec)
	require.NotNil(amount)
	require.Equal(amount.String(), "10.3")
}

func (s *SolbankTestSuite) TestNewAmountHumanReadableFromStr() {
	require := s.Require()
	amount, err := NewAmountHumanReadableFromStr("10.3")
	require.NoError(err)
	require.Equal(amount.String(), "10.3")

	amount, err = NewAmountHumanReadableFromStr("")
	require.Error(err)
	require.Equal(amount.String(), "0")

	amount, err = NewAmountHumanReadableFromStr("invalid")
	require.Error(err)
	require.Equal(amount.String(), "0")
}

func (s *SolbankTestSuite) TestNewBlockchainAmountStr() {
	require := s.Require()
	amount := NewAmountBlockchainFromStr("10")
	require.EqualValues(amount.Uint64(), 10)

	amount = NewAmountBlockchainFromStr("10.1")
	require.EqualValues(amount.Uint64(), 0)

	amount = NewAmountBlockchainFromStr("0x10")
	require.EqualValues(amount.Uint64(), 16)
}

func (s *SolbankTestSuite) TestParseSol() {
	require := s.Require()

	vectors := []struct {
		input    string
		lamports uint64
		err      string
	}{
		{"0.05", 50_000_000, ""},
		{"0.02", 20_000_000, ""},
		{"1", LamportsPerSol, ""},
		{" 2.5 ", 2_500_000_000, ""},
		{"0", 0, ""},
		// truncated past 9 decimals
		{"0.0000000019", 1, ""},
		{"-1", 0, "must not be negative"},
		{"abc", 0, "invalid amount"},
		{"100000000000", 0, "exceeds u64"},
	}
	for _, v := range vectors {
		lamports, err := ParseSol(v.input)
		if v.err != "" {
			require.ErrorContains(err, v.err, v.input)
		} else {
			require.NoError(err, v.input)
			require.Equal(v.lamports, lamports.Uint64(), v.input)
		}
	}
}

func (s *SolbankTestSuite) TestToSol() {
	require := s.Require()
	amount := NewAmountBlockchainFromUint64(30_000_000)
	require.Equal("0.03", amount.ToSol().String())

	a := NewAmountBlockchainFromUint64(50)
	b := NewAmountBlockchainFromUint64(20)
	diff := a.Sub(&b)
	require.EqualValues(30, diff.Uint64())
	sum := a.Add(&b)
	require.EqualValues(70, sum.Uint64())
	require.Equal(1, a.Cmp(&b))
}

func (s *SolbankTestSuite) TestAmountJson() {
	require := s.Require()
	amount := NewAmountBlockchainFromUint64(5000)
	bz, err := json.Marshal(amount)
	require.NoError(err)
	require.Equal(`"5000"`, string(bz))

	var decoded AmountBlockchain
	require.NoError(json.Unmarshal(bz, &decoded))
	require.EqualValues(5000, decoded.Uint64())
	require.Error(json.Unmarshal([]byte(`"x"`), &decoded))
}

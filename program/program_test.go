package program_test

import (
	"encoding/hex"
	"testing"

	"github.com/cordialsys/solbank/program"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestFindUserAccountAddress(t *testing.T) {
	vectors := []struct {
		user string
		pda  string
		bump uint8
	}{
		{"Hzn3n914JaSpnxo5mBbmuCDmGL6mxWN9Ac2HzEXFSGtb", "2vrq5j5todLePqB7vBVbqPNkLyhSmbiDSCJoB8ADgy2v", 255},
		{"BWbmXj5ckAaWCAtzMZ97qnJhBAKegoXtgNrv9BUpAB11", "E68TzJnqDxXxP3TGQZrnBr2fLpoGT2rFo942BMMNWWzK", 255},
	}
	for _, v := range vectors {
		t.Run(v.user, func(t *testing.T) {
			pda, bump, err := program.FindUserAccountAddress(solana.MustPublicKeyFromBase58(v.user), program.ProgramID)
			require.NoError(t, err)
			require.Equal(t, v.pda, pda.String())
			require.Equal(t, v.bump, bump)

			// zero program id falls back to the default deployment
			pda2, _, err := program.FindUserAccountAddress(solana.MustPublicKeyFromBase58(v.user), solana.PublicKey{})
			require.NoError(t, err)
			require.Equal(t, pda, pda2)
		})
	}
}

func TestDiscriminators(t *testing.T) {
	require.Equal(t, "afaf6d1f0d989bed", hex.EncodeToString(program.InitializeDiscriminator[:]))
	require.Equal(t, "f223c68952e1f2b6", hex.EncodeToString(program.DepositDiscriminator[:]))
	require.Equal(t, "b712469c946da122", hex.EncodeToString(program.WithdrawDiscriminator[:]))
	require.Equal(t, "d3218810ba6ef27f", hex.EncodeToString(program.UserAccountDiscriminator[:]))

	require.True(t, program.InitializeDiscriminator.Equals([]byte{0xaf, 0xaf, 0x6d, 0x1f, 0x0d, 0x98, 0x9b, 0xed, 0x01}))
	require.False(t, program.InitializeDiscriminator.Equals([]byte{0xaf, 0xaf}))
}

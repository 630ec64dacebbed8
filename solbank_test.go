package solbank_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SolbankTestSuite struct {
	suite.Suite
	Ctx context.Context
}

func (s *SolbankTestSuite) SetupTest() {
	s.Ctx = context.Background()
}

func TestSolbank(t *testing.T) {
	suite.Run(t, new(SolbankTestSuite))
}

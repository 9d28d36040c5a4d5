package queryserver

import (
	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

var _ types.QueryServer = queryServer{}

// NewQueryServerImpl returns an implementation of the module QueryServer.
func NewQueryServerImpl(k keeper.Keeper) types.QueryServer {
	return queryServer{k}
}

type queryServer struct {
	k keeper.Keeper
}

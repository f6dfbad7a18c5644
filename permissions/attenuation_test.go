package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaito2/panopticon/types"
)

func parentPermissions() types.PermissionSet {
	return types.PermissionSet{
		AllowedActions:             []string{"read", "write", "execute"},
		MaxDelegationDepth:         3,
		MaxCostBudget:              1000.0,
		AllowedDataClassifications: []string{"public", "internal"},
	}
}

func TestAttenuateBasic(t *testing.T) {
	parent := parentPermissions()
	childRequest := types.PermissionSet{
		AllowedActions:             []string{"read", "write"},
		MaxDelegationDepth:         5,
		MaxCostBudget:              500.0,
		AllowedDataClassifications: []string{"public"},
	}

	result, err := Attenuate(parent, childRequest)
	require.NoError(t, err)
	assert.Equal(t, []string{"read", "write"}, result.AllowedActions)
	assert.EqualValues(t, 2, result.MaxDelegationDepth)
	assert.InDelta(t, 500.0, result.MaxCostBudget, 1e-9)
	assert.Equal(t, []string{"public"}, result.AllowedDataClassifications)
}

func TestAttenuateFiltersUnauthorizedActions(t *testing.T) {
	parent := parentPermissions()
	childRequest := types.PermissionSet{
		AllowedActions:             []string{"read", "delete"},
		MaxDelegationDepth:         1,
		MaxCostBudget:              100.0,
		AllowedDataClassifications: []string{"public"},
	}

	result, err := Attenuate(parent, childRequest)
	require.NoError(t, err)
	assert.Equal(t, []string{"read"}, result.AllowedActions)
}

func TestAttenuateCapsCostBudget(t *testing.T) {
	parent := parentPermissions()
	childRequest := types.PermissionSet{
		AllowedActions:             []string{"read"},
		MaxDelegationDepth:         1,
		MaxCostBudget:              5000.0,
		AllowedDataClassifications: []string{"public"},
	}

	result, err := Attenuate(parent, childRequest)
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, result.MaxCostBudget, 1e-9)
}

func TestAttenuateReducesDelegationDepth(t *testing.T) {
	parent := parentPermissions()
	childRequest := types.PermissionSet{
		AllowedActions:             []string{"read"},
		MaxDelegationDepth:         10,
		MaxCostBudget:              100.0,
		AllowedDataClassifications: []string{"public"},
	}

	result, err := Attenuate(parent, childRequest)
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.MaxDelegationDepth)
}

func TestAttenuateFailsWhenNoDepthRemaining(t *testing.T) {
	parent := types.PermissionSet{
		AllowedActions:             []string{"read"},
		MaxDelegationDepth:         0,
		MaxCostBudget:              100.0,
		AllowedDataClassifications: []string{"public"},
	}
	childRequest := types.PermissionSet{
		AllowedActions:             []string{"read"},
		MaxDelegationDepth:         1,
		MaxCostBudget:              50.0,
		AllowedDataClassifications: []string{"public"},
	}

	_, err := Attenuate(parent, childRequest)
	assert.Error(t, err)
}

func TestAttenuateResultIsSubsetOfParent(t *testing.T) {
	parent := parentPermissions()
	childRequest := types.PermissionSet{
		AllowedActions:             []string{"read", "write"},
		MaxDelegationDepth:         1,
		MaxCostBudget:              500.0,
		AllowedDataClassifications: []string{"public", "internal"},
	}

	result, err := Attenuate(parent, childRequest)
	require.NoError(t, err)
	assert.True(t, result.IsSubsetOf(parent))
}

func TestAttenuateChainedDelegation(t *testing.T) {
	parent := parentPermissions()

	child1, err := Attenuate(parent, types.PermissionSet{
		AllowedActions:             []string{"read", "write"},
		MaxDelegationDepth:         5,
		MaxCostBudget:              800.0,
		AllowedDataClassifications: []string{"public", "internal"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, child1.MaxDelegationDepth)

	child2, err := Attenuate(child1, types.PermissionSet{
		AllowedActions:             []string{"read"},
		MaxDelegationDepth:         5,
		MaxCostBudget:              400.0,
		AllowedDataClassifications: []string{"public"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, child2.MaxDelegationDepth)
	assert.True(t, child2.IsSubsetOf(child1))
	assert.True(t, child2.IsSubsetOf(parent))

	child3, err := Attenuate(child2, types.PermissionSet{
		AllowedActions:             []string{"read"},
		MaxDelegationDepth:         5,
		MaxCostBudget:              200.0,
		AllowedDataClassifications: []string{"public"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, child3.MaxDelegationDepth)

	_, err = Attenuate(child3, types.PermissionSet{
		AllowedActions:             []string{"read"},
		MaxDelegationDepth:         1,
		MaxCostBudget:              100.0,
		AllowedDataClassifications: []string{"public"},
	})
	assert.Error(t, err)
}

func TestAttenuateEmptyIntersection(t *testing.T) {
	parent := parentPermissions()
	childRequest := types.PermissionSet{
		AllowedActions:             []string{"delete", "admin"},
		MaxDelegationDepth:         1,
		MaxCostBudget:              100.0,
		AllowedDataClassifications: []string{"secret"},
	}

	result, err := Attenuate(parent, childRequest)
	require.NoError(t, err)
	assert.Empty(t, result.AllowedActions)
	assert.Empty(t, result.AllowedDataClassifications)
}

package permissions

import "github.com/kaito2/panopticon/types"

// Attenuate derives a child's permission set from a parent's, honoring
// whatever the child requested but never exceeding what the parent grants:
//   - allowed_actions and allowed_data_classifications become the
//     intersection of parent and request (in the request's order)
//   - max_delegation_depth is the parent's depth minus one
//   - max_cost_budget is the smaller of the two
//
// An empty intersection is not an error; a parent with no delegation depth
// left is.
func Attenuate(parent, childRequest types.PermissionSet) (types.PermissionSet, error) {
	if parent.MaxDelegationDepth == 0 {
		return types.PermissionSet{}, types.NewPermissionDenied("parent has no delegation depth remaining")
	}

	allowedActions := make([]string, 0, len(childRequest.AllowedActions))
	for _, a := range childRequest.AllowedActions {
		if containsString(parent.AllowedActions, a) {
			allowedActions = append(allowedActions, a)
		}
	}

	allowedData := make([]string, 0, len(childRequest.AllowedDataClassifications))
	for _, d := range childRequest.AllowedDataClassifications {
		if containsString(parent.AllowedDataClassifications, d) {
			allowedData = append(allowedData, d)
		}
	}

	maxCostBudget := childRequest.MaxCostBudget
	if parent.MaxCostBudget < maxCostBudget {
		maxCostBudget = parent.MaxCostBudget
	}

	attenuated := types.PermissionSet{
		AllowedActions:             allowedActions,
		MaxDelegationDepth:         parent.MaxDelegationDepth - 1,
		MaxCostBudget:              maxCostBudget,
		AllowedDataClassifications: allowedData,
	}

	if !attenuated.IsSubsetOf(parent) {
		return types.PermissionSet{}, types.NewPermissionDenied("attenuated permissions are not a subset of parent")
	}

	return attenuated, nil
}

// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package storage

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	"github.com/cesarpv27/Global.Common.Azure.Models-beta.1/pkg/response"
)

// Take drains pager until take items have been collected or no pages are left. items extracts the
// elements of a page. The error of the first failed page is returned with the items read so far.
func Take[T, P any](
	ctx context.Context,
	pager *runtime.Pager[P],
	take int,
	items func(P) ([]T, error),
) ([]T, error) {
	if pager == nil {
		return nil, response.NilArgument("pager")
	}
	if take <= 0 {
		return nil, response.NewArgumentError("take", ReasonTakeNotPositive)
	}

	result := make([]T, 0, min(take, DefaultTake))
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return result, err
		}

		pageItems, err := items(page)
		if err != nil {
			return result, err
		}

		for _, item := range pageItems {
			result = append(result, item)
			if len(result) >= take {
				return result, nil
			}
		}
	}

	return result, nil
}
